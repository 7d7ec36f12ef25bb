package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"
	"time"

	"roi-edge-analyzer/internal/config"
	"roi-edge-analyzer/internal/gui"
	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/opencv/memory"
	"roi-edge-analyzer/internal/pipeline"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
)

const (
	AppName    = "ROI Edge Analyzer"
	AppID      = "com.imageprocessing.roi-edge-analyzer"
	AppVersion = "1.0.0"

	shutdownTimeout = 10 * time.Second
)

type shutdownHandler interface {
	Shutdown()
}

type Application struct {
	fyneApp       fyne.App
	window        fyne.Window
	guiManager    *gui.Manager
	coordinator   *pipeline.Coordinator
	memoryManager *memory.Manager
	config        *config.Config
	logger        logger.Logger
	shutdownables []shutdownHandler
	ctx           context.Context
	cancel        context.CancelFunc
	shutdown      chan struct{}
	once          sync.Once
}

func NewApplication(cfg *config.Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	app.SetMetadata(fyne.AppMetadata{
		ID:      AppID,
		Name:    AppName,
		Version: AppVersion,
		Build:   1,
	})

	fyneApp := app.NewWithID(AppID)
	fyneApp.Settings().SetTheme(gui.NewTheme())

	window := fyneApp.NewWindow(AppName)
	window.Resize(fyne.NewSize(cfg.WindowWidth, cfg.WindowHeight))
	window.CenterOnScreen()
	window.SetMaster()

	log := logger.NewConsoleLogger(logger.ParseLevel(cfg.LogLevel))
	log.Info("Application", "starting application", logger.Fields{
		"version":     AppVersion,
		"export_path": cfg.ExportPath,
		"log_level":   cfg.LogLevel,
	})

	memoryManager := memory.NewManager(log, memory.DefaultBudget)
	coordinator := pipeline.NewCoordinator(memoryManager, log, pipeline.Options{
		ExportPath:  cfg.ExportPath,
		JPEGQuality: cfg.JPEGQuality,
		CannyLow:    cfg.CannyLow,
		CannyHigh:   cfg.CannyHigh,
	})
	guiManager := gui.NewManager(window, coordinator, log)

	ctx, cancel := context.WithCancel(context.Background())
	a := &Application{
		fyneApp:       fyneApp,
		window:        window,
		guiManager:    guiManager,
		coordinator:   coordinator,
		memoryManager: memoryManager,
		config:        cfg,
		logger:        log,
		ctx:           ctx,
		cancel:        cancel,
		shutdown:      make(chan struct{}),
		// closed in reverse order; the coordinator also shuts the memory manager down
		shutdownables: []shutdownHandler{
			coordinator,
			guiManager,
		},
	}

	a.setupMenu()
	a.setupSignalHandling()
	log.Info("Application", "initialization complete", nil)
	return a, nil
}

func (a *Application) setupMenu() {
	fileMenu := fyne.NewMenu("File")
	helpMenu := fyne.NewMenu("Help",
		fyne.NewMenuItem("About", func() { a.showAbout() }),
	)
	a.window.SetMainMenu(fyne.NewMainMenu(fileMenu, helpMenu))
}

func (a *Application) showAbout() {
	metadata := a.fyneApp.Metadata()
	name := metadata.Name
	if name == "" {
		name = AppName
	}
	version := metadata.Version
	if version == "" {
		version = AppVersion
	}

	content := container.NewVBox(
		widget.NewLabel(name),
		widget.NewLabel(fmt.Sprintf("Version: %s", version)),
		widget.NewLabel(fmt.Sprintf("ROI export: %s", a.config.ExportPath)),
		widget.NewLabel(""),
		widget.NewLabel(fmt.Sprintf("Go: %s", runtime.Version())),
		widget.NewLabel(fmt.Sprintf("Platform: %s/%s", runtime.GOOS, runtime.GOARCH)),
	)
	dialog.ShowCustom("About", "Close", content, a.window)
}

func (a *Application) setupSignalHandling() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		select {
		case sig := <-sigChan:
			a.logger.Info("Application", "shutdown signal received", logger.Fields{
				"signal": sig.String(),
			})
			a.initiateShutdown()
		case <-a.ctx.Done():
		}
	}()
}

// Run shows the window, loads the configured source image and blocks until the
// window is closed.
func (a *Application) Run() error {
	a.window.SetCloseIntercept(func() {
		a.logger.Info("Application", "shutdown requested via window close", nil)
		a.initiateShutdown()
		a.window.Close()
	})

	a.guiManager.Show()
	a.guiManager.LoadInitial(a.config.SourcePath)

	go func() {
		<-a.shutdown
		fyne.Do(a.fyneApp.Quit)
	}()

	a.fyneApp.Run()
	a.initiateShutdown()
	return nil
}

func (a *Application) initiateShutdown() {
	a.once.Do(func() {
		close(a.shutdown)
		a.cancel()

		a.logger.Info("Application", "shutdown sequence initiated", logger.Fields{
			"components": len(a.shutdownables),
		})

		for i := len(a.shutdownables) - 1; i >= 0; i-- {
			component := a.shutdownables[i]

			done := make(chan struct{})
			go func() {
				defer close(done)
				component.Shutdown()
			}()

			select {
			case <-done:
			case <-time.After(shutdownTimeout):
				a.logger.Warning("Application", "component shutdown timeout", logger.Fields{
					"component_index": i,
				})
			}
		}

		a.logger.Info("Application", "shutdown sequence completed", nil)
	})
}
