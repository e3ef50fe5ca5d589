package main

import (
	"log"
	"os"
	"runtime"
	"sync/atomic"

	"formula-pad/internal/clipboard"
	"formula-pad/internal/config"
	"formula-pad/internal/controllers"
	"formula-pad/internal/logger"
	"formula-pad/internal/services"
	"formula-pad/internal/shutdown"
	"formula-pad/internal/views"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
)

const (
	AppName        = "Formula Pad"
	AppID          = "net.daruyanagi.formula-pad"
	AppVersion     = "1.0.0"
	AppDescription = "Type a TeX formula and see it rendered by a chart service."
	AppCopyright   = "Copyright (c) daruyanagi"
)

// Application holds the wired window, controller and lifecycle
type Application struct {
	// Core components
	fyneApp fyne.App
	window  fyne.Window
	logger  logger.Logger
	config  config.Config

	// MVC Components
	controller *controllers.MainController
	view       *views.MainView

	shutdown *shutdown.Manager
	running  atomic.Bool
}

func main() {
	cfg, err := config.FromEnv()
	if err != nil {
		log.Fatalf("Configuration invalid: %v", err)
	}

	application := NewApplication(cfg)

	var path string
	if len(os.Args) > 1 {
		path = os.Args[1]
	}

	application.Run(path)
}

// NewApplication creates the Fyne app and wires services, controller and view
func NewApplication(cfg config.Config) *Application {
	appLogger := logger.New(cfg.LogFormat, cfg.LogLevel)

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
	})
	fyneApp := app.NewWithID(AppID)

	window := fyneApp.NewWindow(AppName)
	window.SetMaster()
	window.Resize(fyne.NewSize(720, 560))
	window.CenterOnScreen()

	appLogger.Info("Application", "starting", map[string]interface{}{
		"version":         AppVersion,
		"go_version":      runtime.Version(),
		"render_endpoint": cfg.RenderEndpoint,
		"render_timeout":  cfg.RenderTimeout.String(),
		"log_level":       cfg.LogLevel.String(),
	})

	shutdownManager := shutdown.NewManager(appLogger)

	svc := controllers.Services{
		Renderer:  services.NewRenderService(cfg.RenderEndpoint, cfg.RenderTimeout, appLogger),
		Documents: services.NewDocumentService(appLogger),
		Exporter:  services.NewExportService(appLogger),
		Clipboard: clipboard.NewSystem(),
		Settings:  config.NewSettings(fyneApp.Preferences()),
	}

	about := controllers.AboutInfo{
		Name:        AppName,
		Version:     AppVersion,
		Description: AppDescription,
		Copyright:   AppCopyright,
	}

	mainController := controllers.NewMainController(shutdownManager.Context(), svc, about, cfg.Homepage, appLogger)
	mainView := views.NewMainView(fyneApp, window)

	mainView.Bind(mainController)
	mainController.SetView(mainView, mainView.Editor())

	application := &Application{
		fyneApp:    fyneApp,
		window:     window,
		logger:     appLogger,
		config:     cfg,
		controller: mainController,
		view:       mainView,
		shutdown:   shutdownManager,
	}

	application.setupWindowEvents()
	application.setupShutdown()

	return application
}

// Run shows the window and blocks until the app quits
func (a *Application) Run(path string) {
	a.controller.Start(path)
	a.view.Show()

	a.running.Store(true)
	a.fyneApp.Run()
	a.running.Store(false)

	a.shutdown.Shutdown()
	a.logger.Info("Application", "terminated", nil)
}

func (a *Application) setupWindowEvents() {
	// Closing goes through the unsaved changes prompt
	a.window.SetCloseIntercept(func() {
		a.logger.Debug("Application", "window close requested", nil)
		a.controller.Close()
	})

	a.window.SetOnClosed(func() {
		a.logger.Info("Application", "window closed", nil)
	})
}

func (a *Application) setupShutdown() {
	a.shutdown.Register(shutdown.Func(func() {
		if a.running.Load() {
			fyne.Do(a.fyneApp.Quit)
		}
	}))
	a.shutdown.Register(a.controller)
	a.shutdown.Listen()
}
