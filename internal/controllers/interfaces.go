package controllers

import (
	"context"
	"image"
	"net/url"
)

// View is the window surface the controller drives. Callbacks passed to the
// dialog methods are invoked on the UI goroutine; a cancelled file chooser
// reports an empty path and a nil error.
type View interface {
	SetTitle(title string)
	SetStatus(message string)
	SetFormulaImage(img image.Image)
	SetCommandState(state CommandState)
	ConfirmSave(title, message string, choice func(SaveChoice))
	ChooseOpenPath(callback func(path string, err error))
	ChooseSavePath(defaultName, defaultExt string, callback func(path string, err error))
	ShowAbout(info AboutInfo)
	OpenURL(u *url.URL) error
	CloseWindow()
	Do(fn func())
}

// TextEditor is the editing widget. Edits made by the user are reported
// back through MainController.TextChanged; Load is not.
type TextEditor interface {
	CurrentText() string
	Load(text string)
	SelectedText() string
	CanUndo() bool
	CanRedo() bool
	CanPaste() bool
	Undo()
	Redo()
	Cut()
	Copy()
	Paste()
	SelectAll()
	DeleteSelection()
}

type Renderer interface {
	Render(ctx context.Context, text string) (image.Image, error)
}

type Clipboard interface {
	SetText(text string) error
	SetImage(img image.Image) error
}

type DocumentStore interface {
	Read(path string) (string, error)
	SaveAndReload(path, text string) (string, error)
}

type ImageExporter interface {
	Export(path string, img image.Image) error
}

type Settings interface {
	AutoRefresh() bool
	SetAutoRefresh(enabled bool)
}

// SaveChoice is the answer to the unsaved changes prompt
type SaveChoice int

const (
	SaveChoiceCancel SaveChoice = iota
	SaveChoiceSave
	SaveChoiceDiscard
)

// CommandState says which commands are currently available
type CommandState struct {
	CanSave     bool
	CanUndo     bool
	CanRedo     bool
	CanCut      bool
	CanCopy     bool
	CanPaste    bool
	CanDelete   bool
	HasImage    bool
	AutoRefresh bool
}

// AboutInfo is shown by the About command
type AboutInfo struct {
	Name        string
	Version     string
	Description string
	Copyright   string
}
