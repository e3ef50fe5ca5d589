package components

import (
	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Toolbar holds the buttons for the most used commands
type Toolbar struct {
	container     *fyne.Container
	newButton     *widget.Button
	openButton    *widget.Button
	saveButton    *widget.Button
	refreshButton *widget.Button
	autoRefresh   *widget.Check

	// Event handlers
	newHandler         func()
	openHandler        func()
	saveHandler        func()
	refreshHandler     func()
	autoRefreshHandler func()

	// set while the check box is updated programmatically
	syncing bool
}

// NewToolbar creates a new toolbar component
func NewToolbar() *Toolbar {
	toolbar := &Toolbar{}
	toolbar.createComponents()
	toolbar.buildLayout()
	return toolbar
}

func (t *Toolbar) createComponents() {
	t.newButton = widget.NewButtonWithIcon("New", theme.DocumentCreateIcon(), func() { call(t.newHandler) })
	t.openButton = widget.NewButtonWithIcon("Open", theme.FolderOpenIcon(), func() { call(t.openHandler) })
	t.saveButton = widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), func() { call(t.saveHandler) })
	t.saveButton.Disable()

	t.refreshButton = widget.NewButtonWithIcon("Refresh", theme.ViewRefreshIcon(), func() { call(t.refreshHandler) })
	t.refreshButton.Importance = widget.HighImportance

	t.autoRefresh = widget.NewCheck("Auto refresh", func(bool) {
		if !t.syncing {
			call(t.autoRefreshHandler)
		}
	})
}

func (t *Toolbar) buildLayout() {
	t.container = container.NewHBox(
		t.newButton,
		t.openButton,
		t.saveButton,
		widget.NewSeparator(),
		t.refreshButton,
		t.autoRefresh,
	)
}

func (t *Toolbar) SetNewHandler(handler func())         { t.newHandler = handler }
func (t *Toolbar) SetOpenHandler(handler func())        { t.openHandler = handler }
func (t *Toolbar) SetSaveHandler(handler func())        { t.saveHandler = handler }
func (t *Toolbar) SetRefreshHandler(handler func())     { t.refreshHandler = handler }
func (t *Toolbar) SetAutoRefreshHandler(handler func()) { t.autoRefreshHandler = handler }

// SetSaveEnabled enables the save button when there is something to save
func (t *Toolbar) SetSaveEnabled(enabled bool) {
	if enabled {
		t.saveButton.Enable()
	} else {
		t.saveButton.Disable()
	}
}

// SetAutoRefresh updates the check box without firing the toggle handler
func (t *Toolbar) SetAutoRefresh(enabled bool) {
	if t.autoRefresh.Checked == enabled {
		return
	}
	t.syncing = true
	t.autoRefresh.SetChecked(enabled)
	t.syncing = false
}

// GetContainer returns the toolbar container
func (t *Toolbar) GetContainer() *fyne.Container {
	return t.container
}

func call(handler func()) {
	if handler != nil {
		handler()
	}
}
