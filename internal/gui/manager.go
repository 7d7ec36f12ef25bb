package gui

import (
	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/pipeline"

	"fyne.io/fyne/v2"
)

// Manager wires the view to the controller and owns their lifetime.
type Manager struct {
	window     fyne.Window
	controller *Controller
	view       *View
	logger     logger.Logger
	isShutdown bool
}

func NewManager(window fyne.Window, coordinator *pipeline.Coordinator, log logger.Logger) *Manager {
	m := &Manager{
		window:     window,
		logger:     log,
		view:       NewView(window, coordinator.Selector(), log),
		controller: NewController(coordinator, log),
	}
	m.view.SetController(m.controller)
	m.controller.SetView(m.view)

	log.Info("GUIManager", "initialized", logger.Fields{"window_title": window.Title()})
	return m
}

// LoadInitial shows the image at path on startup. A failure is logged and
// leaves the window empty.
func (m *Manager) LoadInitial(path string) {
	if path == "" {
		return
	}
	go func() {
		if err := m.controller.LoadPath(path); err != nil {
			m.logger.Warning("GUIManager", "initial image not loaded", logger.Fields{
				"path":  path,
				"error": err.Error(),
			})
		}
	}()
}

func (m *Manager) Show() {
	m.view.Show()
	m.logger.Info("GUIManager", "GUI displayed", nil)
}

func (m *Manager) Shutdown() {
	if m.isShutdown {
		return
	}
	m.isShutdown = true
	m.controller.Shutdown()
	m.logger.Info("GUIManager", "shutdown completed", nil)
}
