package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/widget"
)

const maxHistory = 1000

// FormulaEditor is a multi line entry for formula source with its own
// undo history, so the window can tell whether Undo and Redo are available.
type FormulaEditor struct {
	widget.Entry

	clipboard fyne.Clipboard

	undo []string
	redo []string
	last string

	loading  bool
	applying bool

	shortcuts map[string]func()

	// OnEdited is called after every change made by the user
	OnEdited func(text string)
	// OnSelectionChanged is called when the cursor or selection moves
	OnSelectionChanged func()
}

// NewFormulaEditor creates an editor that cuts, copies and pastes through clip
func NewFormulaEditor(clip fyne.Clipboard) *FormulaEditor {
	e := &FormulaEditor{
		clipboard: clip,
		shortcuts: make(map[string]func()),
	}
	e.ExtendBaseWidget(e)

	e.MultiLine = true
	e.Wrapping = fyne.TextWrapWord
	e.TextStyle = fyne.TextStyle{Monospace: true}
	e.SetPlaceHolder(`\frac{a}{b}`)

	e.Entry.OnChanged = e.changed
	e.Entry.OnCursorChanged = func() {
		if e.OnSelectionChanged != nil {
			e.OnSelectionChanged()
		}
	}
	return e
}

// CurrentText returns the editor contents
func (e *FormulaEditor) CurrentText() string {
	return e.Entry.Text
}

// Load replaces the contents and clears the history. OnEdited is not called.
func (e *FormulaEditor) Load(text string) {
	e.loading = true
	e.SetText(text)
	e.loading = false

	e.last = text
	e.undo = nil
	e.redo = nil
}

func (e *FormulaEditor) changed(text string) {
	if e.loading {
		return
	}

	if !e.applying {
		e.undo = append(e.undo, e.last)
		if len(e.undo) > maxHistory {
			e.undo = e.undo[len(e.undo)-maxHistory:]
		}
		e.redo = nil
	}
	e.last = text

	if e.OnEdited != nil {
		e.OnEdited(text)
	}
}

func (e *FormulaEditor) CanUndo() bool {
	return len(e.undo) > 0
}

func (e *FormulaEditor) CanRedo() bool {
	return len(e.redo) > 0
}

// CanPaste reports whether the clipboard holds text
func (e *FormulaEditor) CanPaste() bool {
	return e.clipboard != nil && e.clipboard.Content() != ""
}

func (e *FormulaEditor) Undo() {
	if len(e.undo) == 0 {
		return
	}
	prev := e.undo[len(e.undo)-1]
	e.undo = e.undo[:len(e.undo)-1]
	e.redo = append(e.redo, e.last)
	e.apply(prev)
}

func (e *FormulaEditor) Redo() {
	if len(e.redo) == 0 {
		return
	}
	next := e.redo[len(e.redo)-1]
	e.redo = e.redo[:len(e.redo)-1]
	e.undo = append(e.undo, e.last)
	e.apply(next)
}

// apply sets text as a user edit that does not touch the history
func (e *FormulaEditor) apply(text string) {
	e.applying = true
	defer func() { e.applying = false }()

	e.SetText(text)
	if e.last != text {
		e.changed(text)
	}
}

func (e *FormulaEditor) Cut() {
	e.Entry.TypedShortcut(&fyne.ShortcutCut{Clipboard: e.clipboard})
}

func (e *FormulaEditor) Copy() {
	e.Entry.TypedShortcut(&fyne.ShortcutCopy{Clipboard: e.clipboard})
}

func (e *FormulaEditor) Paste() {
	e.Entry.TypedShortcut(&fyne.ShortcutPaste{Clipboard: e.clipboard})
}

func (e *FormulaEditor) SelectAll() {
	e.Entry.TypedShortcut(&fyne.ShortcutSelectAll{})
}

// DeleteSelection removes the selected text
func (e *FormulaEditor) DeleteSelection() {
	if e.SelectedText() == "" {
		return
	}
	e.Entry.TypedKey(&fyne.KeyEvent{Name: fyne.KeyDelete})
}

// AddShortcut routes shortcut to fn while the editor has focus
func (e *FormulaEditor) AddShortcut(shortcut fyne.Shortcut, fn func()) {
	e.shortcuts[shortcut.ShortcutName()] = fn
}

// TypedShortcut keeps undo and redo on the editor's own history and lets
// window shortcuts work while the editor is focused.
func (e *FormulaEditor) TypedShortcut(shortcut fyne.Shortcut) {
	switch shortcut.ShortcutName() {
	case "Undo":
		e.Undo()
		return
	case "Redo":
		e.Redo()
		return
	}

	if fn, ok := e.shortcuts[shortcut.ShortcutName()]; ok {
		fn()
		return
	}
	e.Entry.TypedShortcut(shortcut)
}
