package components

import (
	"testing"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type namedShortcut string

func (n namedShortcut) ShortcutName() string { return string(n) }

func newTestEditor(t *testing.T) (*FormulaEditor, *[]string, fyne.Clipboard) {
	t.Helper()

	app := test.NewApp()
	t.Cleanup(app.Quit)

	w := app.NewWindow("editor")
	t.Cleanup(w.Close)

	e := NewFormulaEditor(w.Clipboard())
	w.SetContent(e)

	var edits []string
	e.OnEdited = func(text string) { edits = append(edits, text) }
	return e, &edits, w.Clipboard()
}

func TestLoadDoesNotReportEditOrHistory(t *testing.T) {
	e, edits, _ := newTestEditor(t)

	e.Load(`\alpha`)

	assert.Equal(t, `\alpha`, e.CurrentText())
	assert.Empty(t, *edits)
	assert.False(t, e.CanUndo())
	assert.False(t, e.CanRedo())
}

func TestTypingRecordsHistory(t *testing.T) {
	e, edits, _ := newTestEditor(t)
	e.Load("")

	test.Type(e, "ab")

	require.Equal(t, []string{"a", "ab"}, *edits)
	assert.True(t, e.CanUndo())
	assert.False(t, e.CanRedo())
}

func TestUndoRedo(t *testing.T) {
	e, edits, _ := newTestEditor(t)
	e.Load("")
	test.Type(e, "ab")

	e.Undo()
	assert.Equal(t, "a", e.CurrentText())
	assert.Equal(t, "a", (*edits)[len(*edits)-1])
	assert.True(t, e.CanRedo())

	e.Undo()
	assert.Equal(t, "", e.CurrentText())
	assert.False(t, e.CanUndo())

	e.Undo()
	assert.Equal(t, "", e.CurrentText())

	e.Redo()
	e.Redo()
	assert.Equal(t, "ab", e.CurrentText())
	assert.False(t, e.CanRedo())
	assert.True(t, e.CanUndo())
}

func TestNewEditClearsRedo(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.Load("")
	test.Type(e, "ab")

	e.Undo()
	require.True(t, e.CanRedo())

	test.Type(e, "c")
	assert.False(t, e.CanRedo())
}

func TestUndoShortcutUsesEditorHistory(t *testing.T) {
	e, _, _ := newTestEditor(t)
	e.Load("")
	test.Type(e, "x")

	e.TypedShortcut(namedShortcut("Undo"))
	assert.Equal(t, "", e.CurrentText())

	e.TypedShortcut(namedShortcut("Redo"))
	assert.Equal(t, "x", e.CurrentText())
}

func TestSelectAllCopyAndDelete(t *testing.T) {
	e, edits, clip := newTestEditor(t)
	e.Load(`\sqrt{2}`)

	assert.Empty(t, e.SelectedText())
	e.DeleteSelection()
	assert.Equal(t, `\sqrt{2}`, e.CurrentText())

	e.SelectAll()
	assert.Equal(t, `\sqrt{2}`, e.SelectedText())

	e.Copy()
	assert.Equal(t, `\sqrt{2}`, clip.Content())
	assert.True(t, e.CanPaste())

	e.DeleteSelection()
	assert.Equal(t, "", e.CurrentText())
	assert.Equal(t, []string{""}, *edits)
	assert.True(t, e.CanUndo())
}

func TestCustomShortcutRouting(t *testing.T) {
	e, _, _ := newTestEditor(t)

	called := 0
	sc := &fyne.ShortcutSelectAll{}
	e.AddShortcut(sc, func() { called++ })

	e.TypedShortcut(sc)
	assert.Equal(t, 1, called)
}
