package views

import (
	"fmt"
	"image"
	"net/url"
	"os"
	"path/filepath"

	"formula-pad/internal/controllers"
	"formula-pad/internal/views/components"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
)

// Commands is the set of actions the window can trigger
type Commands interface {
	New()
	Open()
	Save()
	SaveAs()
	CopySnippet()
	CopyImage()
	ExportImage()
	Close()

	Undo()
	Redo()
	Cut()
	Copy()
	Paste()
	SelectAll()
	Delete()

	Refresh()
	ToggleAutoRefresh()

	About()
	GoToHomepage()

	TextChanged(text string)
	SelectionChanged()
}

// MainView is the formula pad window
type MainView struct {
	app    fyne.App
	window fyne.Window

	// UI Components
	mainContainer *fyne.Container
	toolbar       *components.Toolbar
	editor        *components.FormulaEditor
	imageDisplay  *components.ImageDisplay
	statusBar     *components.StatusBar

	mainMenu *fyne.MainMenu
	items    menuItems

	commands Commands
}

type menuItems struct {
	save        *fyne.MenuItem
	copyImage   *fyne.MenuItem
	exportImage *fyne.MenuItem
	undo        *fyne.MenuItem
	redo        *fyne.MenuItem
	cut         *fyne.MenuItem
	copy        *fyne.MenuItem
	paste       *fyne.MenuItem
	delete      *fyne.MenuItem
	autoRefresh *fyne.MenuItem
}

// NewMainView creates the window content
func NewMainView(app fyne.App, window fyne.Window) *MainView {
	view := &MainView{
		app:    app,
		window: window,
	}

	view.initializeComponents()
	view.buildLayout()

	return view
}

func (mv *MainView) initializeComponents() {
	mv.toolbar = components.NewToolbar()
	mv.editor = components.NewFormulaEditor(mv.window.Clipboard())
	mv.imageDisplay = components.NewImageDisplay()
	mv.statusBar = components.NewStatusBar()
}

func (mv *MainView) buildLayout() {
	split := container.NewVSplit(mv.editor, mv.imageDisplay.GetContainer())
	split.SetOffset(0.45)

	mv.mainContainer = container.NewBorder(
		mv.toolbar.GetContainer(),
		mv.statusBar.GetContainer(),
		nil,
		nil,
		split,
	)

	mv.window.SetContent(mv.mainContainer)
}

// Bind connects widgets, menus and shortcuts to commands
func (mv *MainView) Bind(commands Commands) {
	mv.commands = commands

	mv.editor.OnEdited = commands.TextChanged
	mv.editor.OnSelectionChanged = commands.SelectionChanged

	mv.toolbar.SetNewHandler(commands.New)
	mv.toolbar.SetOpenHandler(commands.Open)
	mv.toolbar.SetSaveHandler(commands.Save)
	mv.toolbar.SetRefreshHandler(commands.Refresh)
	mv.toolbar.SetAutoRefreshHandler(commands.ToggleAutoRefresh)

	mv.setupMenus()
	mv.setupShortcuts()
}

func (mv *MainView) setupMenus() {
	c := mv.commands

	mv.items = menuItems{
		save:        fyne.NewMenuItem("Save", c.Save),
		copyImage:   fyne.NewMenuItem("Copy as Image", c.CopyImage),
		exportImage: fyne.NewMenuItem("Export as Image...", c.ExportImage),
		undo:        fyne.NewMenuItem("Undo", c.Undo),
		redo:        fyne.NewMenuItem("Redo", c.Redo),
		cut:         fyne.NewMenuItem("Cut", c.Cut),
		copy:        fyne.NewMenuItem("Copy", c.Copy),
		paste:       fyne.NewMenuItem("Paste", c.Paste),
		delete:      fyne.NewMenuItem("Delete", c.Delete),
		autoRefresh: fyne.NewMenuItem("Auto Refresh", c.ToggleAutoRefresh),
	}

	newItem := fyne.NewMenuItem("New", c.New)
	newItem.Icon = theme.DocumentCreateIcon()
	newItem.Shortcut = shortcutNew

	openItem := fyne.NewMenuItem("Open...", c.Open)
	openItem.Icon = theme.FolderOpenIcon()
	openItem.Shortcut = shortcutOpen

	mv.items.save.Icon = theme.DocumentSaveIcon()
	mv.items.save.Shortcut = shortcutSave

	saveAsItem := fyne.NewMenuItem("Save As...", c.SaveAs)
	saveAsItem.Shortcut = shortcutSaveAs

	closeItem := fyne.NewMenuItem("Close", c.Close)
	closeItem.IsQuit = true

	fileMenu := fyne.NewMenu("File",
		newItem,
		openItem,
		mv.items.save,
		saveAsItem,
		fyne.NewMenuItemSeparator(),
		fyne.NewMenuItem("Copy as Snippet", c.CopySnippet),
		mv.items.copyImage,
		mv.items.exportImage,
		fyne.NewMenuItemSeparator(),
		closeItem,
	)

	mv.items.undo.Shortcut = shortcutUndo
	mv.items.redo.Shortcut = shortcutRedo
	mv.items.cut.Shortcut = &fyne.ShortcutCut{}
	mv.items.copy.Shortcut = &fyne.ShortcutCopy{}
	mv.items.paste.Shortcut = &fyne.ShortcutPaste{}

	selectAllItem := fyne.NewMenuItem("Select All", c.SelectAll)
	selectAllItem.Shortcut = &fyne.ShortcutSelectAll{}

	editMenu := fyne.NewMenu("Edit",
		mv.items.undo,
		mv.items.redo,
		fyne.NewMenuItemSeparator(),
		mv.items.cut,
		mv.items.copy,
		mv.items.paste,
		mv.items.delete,
		fyne.NewMenuItemSeparator(),
		selectAllItem,
	)

	refreshItem := fyne.NewMenuItem("Refresh", c.Refresh)
	refreshItem.Icon = theme.ViewRefreshIcon()
	refreshItem.Shortcut = shortcutRefresh

	toolsMenu := fyne.NewMenu("Tools", refreshItem, mv.items.autoRefresh)

	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", c.About),
		fyne.NewMenuItem("Go to Homepage", c.GoToHomepage),
	)

	mv.mainMenu = fyne.NewMainMenu(fileMenu, editMenu, toolsMenu, helpMenu)
	mv.window.SetMainMenu(mv.mainMenu)
}

var (
	shortcutNew     = &desktop.CustomShortcut{KeyName: fyne.KeyN, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutOpen    = &desktop.CustomShortcut{KeyName: fyne.KeyO, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutSave    = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutSaveAs  = &desktop.CustomShortcut{KeyName: fyne.KeyS, Modifier: fyne.KeyModifierShortcutDefault | fyne.KeyModifierShift}
	shortcutUndo    = &desktop.CustomShortcut{KeyName: fyne.KeyZ, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutRedo    = &desktop.CustomShortcut{KeyName: fyne.KeyY, Modifier: fyne.KeyModifierShortcutDefault}
	shortcutRefresh = &desktop.CustomShortcut{KeyName: fyne.KeyR, Modifier: fyne.KeyModifierShortcutDefault}
)

// setupShortcuts registers window shortcuts on the canvas and on the editor,
// which receives them instead of the canvas while it has focus.
func (mv *MainView) setupShortcuts() {
	c := mv.commands

	bindings := []struct {
		shortcut fyne.Shortcut
		fn       func()
	}{
		{shortcutNew, c.New},
		{shortcutOpen, c.Open},
		{shortcutSave, c.Save},
		{shortcutSaveAs, c.SaveAs},
		{shortcutUndo, c.Undo},
		{shortcutRedo, c.Redo},
		{shortcutRefresh, c.Refresh},
	}

	for _, b := range bindings {
		fn := b.fn
		mv.window.Canvas().AddShortcut(b.shortcut, func(fyne.Shortcut) { fn() })
		mv.editor.AddShortcut(b.shortcut, fn)
	}
}

// Editor returns the formula editor widget
func (mv *MainView) Editor() *components.FormulaEditor {
	return mv.editor
}

// SetTitle updates the window title
func (mv *MainView) SetTitle(title string) {
	mv.window.SetTitle(title)
}

// SetStatus updates the status line
func (mv *MainView) SetStatus(message string) {
	mv.statusBar.SetStatus(message)
}

// Status returns the status line text
func (mv *MainView) Status() string {
	return mv.statusBar.GetStatus()
}

// SetFormulaImage replaces the displayed formula
func (mv *MainView) SetFormulaImage(img image.Image) {
	mv.imageDisplay.SetImage(img)
}

// SetCommandState enables and checks menu items and toolbar buttons
func (mv *MainView) SetCommandState(state controllers.CommandState) {
	mv.toolbar.SetSaveEnabled(state.CanSave)
	mv.toolbar.SetAutoRefresh(state.AutoRefresh)
	mv.statusBar.SetAutoRefresh(state.AutoRefresh)

	if mv.mainMenu == nil {
		return
	}

	mv.items.save.Disabled = !state.CanSave
	mv.items.copyImage.Disabled = !state.HasImage
	mv.items.exportImage.Disabled = !state.HasImage
	mv.items.undo.Disabled = !state.CanUndo
	mv.items.redo.Disabled = !state.CanRedo
	mv.items.cut.Disabled = !state.CanCut
	mv.items.copy.Disabled = !state.CanCopy
	mv.items.paste.Disabled = !state.CanPaste
	mv.items.delete.Disabled = !state.CanDelete
	mv.items.autoRefresh.Checked = state.AutoRefresh

	mv.mainMenu.Refresh()
}

// ConfirmSave asks whether unsaved changes should be saved first
func (mv *MainView) ConfirmSave(title, message string, choice func(controllers.SaveChoice)) {
	content := widget.NewLabel(message)
	content.Wrapping = fyne.TextWrapWord

	d := dialog.NewCustomWithoutButtons(title, content, mv.window)

	answer := func(c controllers.SaveChoice) func() {
		return func() {
			d.Hide()
			choice(c)
		}
	}

	save := widget.NewButtonWithIcon("Save", theme.DocumentSaveIcon(), answer(controllers.SaveChoiceSave))
	save.Importance = widget.HighImportance
	discard := widget.NewButtonWithIcon("Don't Save", theme.DeleteIcon(), answer(controllers.SaveChoiceDiscard))
	cancel := widget.NewButtonWithIcon("Cancel", theme.CancelIcon(), answer(controllers.SaveChoiceCancel))

	d.SetButtons([]fyne.CanvasObject{cancel, discard, save})
	d.Resize(fyne.NewSize(420, 0))
	d.Show()
}

// ChooseOpenPath shows the file open dialog
func (mv *MainView) ChooseOpenPath(callback func(path string, err error)) {
	d := dialog.NewFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			callback("", err)
			return
		}
		if reader == nil {
			callback("", nil)
			return
		}

		path := reader.URI().Path()
		reader.Close()
		callback(path, nil)
	}, mv.window)

	d.Show()
}

// ChooseSavePath shows the file save dialog. The dialog creates the chosen
// file; when the name lacks an extension that empty file is removed because
// the caller will write to the name with defaultExt appended.
func (mv *MainView) ChooseSavePath(defaultName, defaultExt string, callback func(path string, err error)) {
	d := dialog.NewFileSave(func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			callback("", err)
			return
		}
		if writer == nil {
			callback("", nil)
			return
		}

		path := writer.URI().Path()
		if err := writer.Close(); err != nil {
			callback("", fmt.Errorf("failed to create %s: %w", filepath.Base(path), err))
			return
		}

		if filepath.Ext(path) == "" && defaultExt != "" {
			removeIfEmpty(path)
		}
		callback(path, nil)
	}, mv.window)

	d.SetFileName(defaultName)
	d.Show()
}

func removeIfEmpty(path string) {
	if info, err := os.Stat(path); err == nil && info.Size() == 0 {
		os.Remove(path)
	}
}

// ShowAbout displays application information
func (mv *MainView) ShowAbout(info controllers.AboutInfo) {
	content := container.NewVBox(
		widget.NewLabelWithStyle(info.Name, fyne.TextAlignLeading, fyne.TextStyle{Bold: true}),
		widget.NewLabel(fmt.Sprintf("Version: %s", info.Version)),
		widget.NewLabel(info.Description),
		widget.NewLabel(info.Copyright),
	)

	dialog.ShowCustom("About", "Close", content, mv.window)
}

// OpenURL opens u in the default browser
func (mv *MainView) OpenURL(u *url.URL) error {
	return mv.app.OpenURL(u)
}

// CloseWindow closes the window without asking again
func (mv *MainView) CloseWindow() {
	mv.window.Close()
}

// Do runs fn on the UI goroutine
func (mv *MainView) Do(fn func()) {
	fyne.Do(fn)
}

// Show displays the window
func (mv *MainView) Show() {
	mv.window.Show()
	mv.window.Canvas().Focus(mv.editor)
}
