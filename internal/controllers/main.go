package controllers

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/url"
	"time"

	"formula-pad/internal/logger"
	"formula-pad/internal/markup"
	"formula-pad/internal/models"
	"formula-pad/internal/services"
)

const untitledName = "Untitled"

var ErrNoImage = errors.New("no rendered formula")

// Services groups the I/O collaborators of the controller
type Services struct {
	Renderer  Renderer
	Documents DocumentStore
	Exporter  ImageExporter
	Clipboard Clipboard
	Settings  Settings
}

// MainController owns the document and the displayed formula and implements
// every menu command. All methods must be called on the UI goroutine.
type MainController struct {
	// Models
	document *models.Document
	rendered *models.RenderSlot

	// Services
	renderer  Renderer
	documents DocumentStore
	exporter  ImageExporter
	clipboard Clipboard
	settings  Settings

	// Views
	view   View
	editor TextEditor

	logger      logger.Logger
	about       AboutInfo
	homepage    string
	autoRefresh bool

	ctx    context.Context
	cancel context.CancelFunc

	// async runs render fetches off the UI goroutine
	async func(fn func())
}

// NewMainController creates a controller holding the default formula
func NewMainController(ctx context.Context, svc Services, about AboutInfo, homepage string, log logger.Logger) *MainController {
	ctx, cancel := context.WithCancel(ctx)

	return &MainController{
		document:    models.NewDocument(models.DefaultFormula),
		rendered:    models.NewRenderSlot(),
		renderer:    svc.Renderer,
		documents:   svc.Documents,
		exporter:    svc.Exporter,
		clipboard:   svc.Clipboard,
		settings:    svc.Settings,
		logger:      log,
		about:       about,
		homepage:    homepage,
		autoRefresh: svc.Settings.AutoRefresh(),
		ctx:         ctx,
		cancel:      cancel,
		async:       func(fn func()) { go fn() },
	}
}

// SetView associates the window and its editor with this controller
func (mc *MainController) SetView(view View, editor TextEditor) {
	mc.view = view
	mc.editor = editor
}

// Start puts the document into the editor. A non-empty path is opened
// directly, without the unsaved changes prompt.
func (mc *MainController) Start(path string) {
	mc.logger.Info("MainController", "starting", map[string]interface{}{
		"auto_refresh": mc.autoRefresh,
		"path":         path,
	})

	mc.showDocument()
	if path != "" {
		mc.OpenPath(path)
	}
}

// Document exposes the document model
func (mc *MainController) Document() *models.Document {
	return mc.document
}

// RenderedFormula returns the displayed formula, nil before the first render
func (mc *MainController) RenderedFormula() *models.RenderedFormula {
	return mc.rendered.Current()
}

// AutoRefresh reports whether edits trigger a render
func (mc *MainController) AutoRefresh() bool {
	return mc.autoRefresh
}

// TextChanged records a user edit and renders it when auto refresh is on
func (mc *MainController) TextChanged(text string) {
	mc.document.SetText(text)
	mc.updateChrome()

	if mc.autoRefresh {
		mc.Refresh()
	}
}

// SelectionChanged recomputes selection dependent commands
func (mc *MainController) SelectionChanged() {
	mc.updateChrome()
}

// File commands

// New replaces the document with an empty, unsaved one
func (mc *MainController) New() {
	mc.confirmSaveThen(func() {
		mc.document.Replace("", "")
		mc.showDocument()
	})
}

// Open asks for a file and loads it
func (mc *MainController) Open() {
	mc.confirmSaveThen(func() {
		mc.view.ChooseOpenPath(func(path string, err error) {
			if err != nil {
				mc.reportError("Open", err)
				return
			}
			if path == "" {
				return
			}
			mc.OpenPath(path)
		})
	})
}

// OpenPath loads path into the document. On failure the document is kept.
func (mc *MainController) OpenPath(path string) {
	text, err := mc.documents.Read(path)
	if err != nil {
		mc.reportError("Open", err)
		return
	}

	mc.document.Replace(path, text)
	mc.logger.Info("MainController", "document opened", map[string]interface{}{
		"path": path,
	})
	mc.showDocument()
}

// Save writes the document to its file, or asks for one
func (mc *MainController) Save() {
	mc.save(func(bool) {})
}

// SaveAs writes the document to a newly chosen file
func (mc *MainController) SaveAs() {
	mc.saveAs(func(bool) {})
}

// Close closes the window once unsaved changes are dealt with
func (mc *MainController) Close() {
	mc.confirmSaveThen(func() {
		mc.logger.Info("MainController", "closing window", nil)
		mc.cancel()
		mc.view.CloseWindow()
	})
}

// CopySnippet places the formula in wiki tex syntax on the clipboard
func (mc *MainController) CopySnippet() {
	if err := mc.clipboard.SetText(markup.Snippet(mc.document.Text())); err != nil {
		mc.reportError("Clipboard", err)
	}
}

// CopyImage places the displayed formula image on the clipboard
func (mc *MainController) CopyImage() {
	current := mc.rendered.Current()
	if current == nil {
		mc.reportError("Clipboard", ErrNoImage)
		return
	}

	if err := mc.clipboard.SetImage(current.Image); err != nil {
		mc.reportError("Clipboard", err)
	}
}

// ExportImage asks for a file and writes the displayed formula image to it
func (mc *MainController) ExportImage() {
	current := mc.rendered.Current()
	if current == nil {
		mc.reportError("Export", ErrNoImage)
		return
	}

	mc.view.ChooseSavePath("formula"+services.DefaultImageExtension, services.DefaultImageExtension, func(path string, err error) {
		if err != nil {
			mc.reportError("Export", err)
			return
		}
		if path == "" {
			return
		}

		path = services.WithDefaultExtension(path, services.DefaultImageExtension)
		if err := mc.exporter.Export(path, current.Image); err != nil {
			mc.reportError("Export", err)
		}
	})
}

// Edit commands, delegated to the editor widget

func (mc *MainController) Undo() {
	if mc.editor.CanUndo() {
		mc.editor.Undo()
	}
	mc.updateChrome()
}

func (mc *MainController) Redo() {
	if mc.editor.CanRedo() {
		mc.editor.Redo()
	}
	mc.updateChrome()
}

func (mc *MainController) Cut() {
	if mc.editor.SelectedText() != "" {
		mc.editor.Cut()
	}
	mc.updateChrome()
}

func (mc *MainController) Copy() {
	if mc.editor.SelectedText() != "" {
		mc.editor.Copy()
	}
	mc.updateChrome()
}

func (mc *MainController) Paste() {
	if mc.editor.CanPaste() {
		mc.editor.Paste()
	}
	mc.updateChrome()
}

func (mc *MainController) SelectAll() {
	mc.editor.SelectAll()
	mc.updateChrome()
}

func (mc *MainController) Delete() {
	if mc.editor.SelectedText() != "" {
		mc.editor.DeleteSelection()
	}
	mc.updateChrome()
}

// Tools commands

// Refresh sends the current text to the render service. Only the completion
// of the most recent request is displayed.
func (mc *MainController) Refresh() {
	seq := mc.rendered.Next()
	text := mc.document.Text()

	mc.logger.Debug("MainController", "render requested", map[string]interface{}{
		"seq":   seq,
		"chars": len(text),
	})

	mc.async(func() {
		startTime := time.Now()
		img, err := mc.renderer.Render(mc.ctx, text)
		elapsed := time.Since(startTime)

		mc.view.Do(func() {
			mc.completeRender(seq, text, img, err, elapsed)
		})
	})
}

func (mc *MainController) completeRender(seq uint64, text string, img image.Image, err error, elapsed time.Duration) {
	if !mc.rendered.IsCurrent(seq) {
		mc.logger.Debug("MainController", "stale render discarded", map[string]interface{}{
			"seq":    seq,
			"latest": mc.rendered.Latest(),
		})
		return
	}

	if err != nil {
		if mc.ctx.Err() != nil {
			return
		}
		mc.reportError("Render", err)
		return
	}

	mc.rendered.Accept(&models.RenderedFormula{
		Image:      img,
		Source:     text,
		Sequence:   seq,
		RenderedAt: time.Now(),
	})
	mc.view.SetFormulaImage(img)
	mc.view.SetStatus("")
	mc.updateChrome()

	mc.logger.Debug("MainController", "render displayed", map[string]interface{}{
		"seq":         seq,
		"duration_ms": elapsed.Milliseconds(),
	})
}

// ToggleAutoRefresh flips auto refresh and remembers the choice
func (mc *MainController) ToggleAutoRefresh() {
	mc.autoRefresh = !mc.autoRefresh
	mc.settings.SetAutoRefresh(mc.autoRefresh)
	mc.updateChrome()
}

// Help commands

func (mc *MainController) About() {
	mc.view.ShowAbout(mc.about)
}

func (mc *MainController) GoToHomepage() {
	u, err := url.Parse(mc.homepage)
	if err != nil {
		mc.reportError("Homepage", fmt.Errorf("invalid homepage %q: %w", mc.homepage, err))
		return
	}

	if err := mc.view.OpenURL(u); err != nil {
		mc.reportError("Homepage", err)
	}
}

// CommandState computes which commands are currently available
func (mc *MainController) CommandState() CommandState {
	selected := mc.editor.SelectedText() != ""

	return CommandState{
		CanSave:     mc.document.IsModified(),
		CanUndo:     mc.editor.CanUndo(),
		CanRedo:     mc.editor.CanRedo(),
		CanCut:      selected,
		CanCopy:     selected,
		CanPaste:    mc.editor.CanPaste(),
		CanDelete:   selected,
		HasImage:    mc.rendered.Current() != nil,
		AutoRefresh: mc.autoRefresh,
	}
}

// Title is the window title for the current document
func (mc *MainController) Title() string {
	name := mc.document.Name()
	if name == "" {
		name = untitledName
	}

	modified := ""
	if mc.document.IsModified() {
		modified = "*"
	}

	return fmt.Sprintf("%s - %s%s", mc.about.Name, name, modified)
}

// Shutdown cancels in-flight renders
func (mc *MainController) Shutdown() {
	mc.cancel()
}

// confirmSaveThen runs proceed unless the user cancels the unsaved changes
// prompt. Choosing Save proceeds only after the document was written.
func (mc *MainController) confirmSaveThen(proceed func()) {
	state := mc.document.State()
	if !state.IsModified && state.IsSaved {
		proceed()
		return
	}

	message := "The formula has not been saved. Do you want to save it?"
	if summary := services.DescribeChanges(state.Snapshot, state.Text); state.IsModified && !summary.Empty() {
		message = fmt.Sprintf("%s\n\n%s since it was last saved.", message, summary)
	}

	mc.view.ConfirmSave(mc.Title(), message, func(choice SaveChoice) {
		switch choice {
		case SaveChoiceSave:
			mc.save(func(saved bool) {
				if saved {
					proceed()
				}
			})
		case SaveChoiceDiscard:
			proceed()
		default:
			mc.logger.Debug("MainController", "unsaved changes prompt cancelled", nil)
		}
	})
}

func (mc *MainController) save(done func(saved bool)) {
	if !mc.document.IsSaved() {
		mc.saveAs(done)
		return
	}

	path := mc.document.Path()
	persisted, err := mc.documents.SaveAndReload(path, mc.document.Text())
	if err != nil {
		mc.reportError("Save", err)
		done(false)
		return
	}

	mc.adoptSaved(path, persisted)
	done(true)
}

func (mc *MainController) saveAs(done func(saved bool)) {
	suggested := mc.document.Name()
	if suggested == "" {
		suggested = untitledName + services.DefaultDocumentExtension
	}

	mc.view.ChooseSavePath(suggested, services.DefaultDocumentExtension, func(path string, err error) {
		if err != nil {
			mc.reportError("Save", err)
			done(false)
			return
		}
		if path == "" {
			done(false)
			return
		}

		path = services.WithDefaultExtension(path, services.DefaultDocumentExtension)
		persisted, err := mc.documents.SaveAndReload(path, mc.document.Text())
		if err != nil {
			mc.reportError("Save", err)
			done(false)
			return
		}

		mc.adoptSaved(path, persisted)
		done(true)
	})
}

// adoptSaved takes what was read back from disk as the new snapshot. The
// editor is only reloaded when the file differs from what was written.
func (mc *MainController) adoptSaved(path, persisted string) {
	written := mc.document.Text()
	mc.document.MarkSaved(path, persisted)

	mc.logger.Info("MainController", "document saved", map[string]interface{}{
		"path":  path,
		"bytes": len(persisted),
	})

	if persisted != written {
		mc.showDocument()
		return
	}
	mc.updateChrome()
}

// showDocument loads the document text into the editor. A render is issued
// when this changed the editor text and auto refresh is on.
func (mc *MainController) showDocument() {
	text := mc.document.Text()
	changed := mc.editor.CurrentText() != text

	mc.editor.Load(text)
	mc.updateChrome()

	if changed && mc.autoRefresh {
		mc.Refresh()
	}
}

func (mc *MainController) updateChrome() {
	mc.view.SetTitle(mc.Title())
	mc.view.SetCommandState(mc.CommandState())
}

// reportError writes err to the status line, the only error surface of the
// window.
func (mc *MainController) reportError(component string, err error) {
	mc.logger.Error(component, err, nil)
	mc.view.SetStatus(err.Error())
}
