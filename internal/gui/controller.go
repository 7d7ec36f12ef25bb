package gui

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"
	"time"

	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/pipeline"
	"roi-edge-analyzer/internal/render"
	"roi-edge-analyzer/internal/roi"

	"fyne.io/fyne/v2"
)

const analyzeTimeout = 60 * time.Second

var (
	errNoSelection = errors.New("no ROI selected")
	errSelectFirst = errors.New("select an ROI first")
	errNoAnalysis  = errors.New("run Process & Analyze first")
)

type Controller struct {
	view        *View
	coordinator *pipeline.Coordinator
	logger      logger.Logger

	mu            sync.Mutex
	processing    bool
	processCancel context.CancelFunc
}

func NewController(coord *pipeline.Coordinator, log logger.Logger) *Controller {
	return &Controller{coordinator: coord, logger: log}
}

func (c *Controller) SetView(view *View) {
	c.view = view
	c.refreshParameters()
}

func (c *Controller) refreshParameters() {
	algs := c.coordinator.Algorithms()
	c.view.UpdateParameterPanel(algs.GetParameters(algs.GetCurrentAlgorithm()))
}

func (c *Controller) LoadImage() {
	c.view.ShowFileDialog(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			c.handleError("File selection error", err)
			return
		}
		if reader == nil {
			return
		}

		go func() {
			defer reader.Close()
			data, err := c.coordinator.LoadFromReader(reader)
			fyne.Do(func() {
				if err != nil {
					c.handleError("Image load error", err)
					return
				}
				c.showSource(data)
			})
		}()
	})
}

// LoadPath loads an image from disk without a dialog.
func (c *Controller) LoadPath(path string) error {
	data, err := c.coordinator.LoadImage(path)
	if err != nil {
		return err
	}
	fyne.Do(func() { c.showSource(data) })
	return nil
}

func (c *Controller) showSource(data *pipeline.ImageData) {
	c.view.SetSourceImage(data.Image, fmt.Sprintf("%s (%dx%d)", data.Path, data.Width, data.Height))
	c.view.SetStatus("Image loaded")
	c.view.SelectTab(tabSelection)
}

func (c *Controller) SelectionCommitted(r roi.ROI) {
	c.view.SetSelection(fmt.Sprintf("ROI: %s  %dx%d", r, r.Width(), r.Height()))
}

func (c *Controller) SaveROI() {
	sel, err := c.coordinator.Selector().Export()
	if err != nil {
		c.handleError("ROI save error", err)
		return
	}
	if sel == nil {
		c.view.ShowError(errNoSelection)
		return
	}

	c.logger.Info("Controller", "roi saved", logger.Fields{
		"roi":  sel.ROI.String(),
		"path": c.coordinator.ExportPath(),
	})
	c.view.ShowInfo("ROI", "ROI saved")
}

func (c *Controller) ProcessAndAnalyze() {
	c.mu.Lock()
	if c.processing {
		c.mu.Unlock()
		return
	}
	ctx, cancel := context.WithTimeout(c.coordinator.Context(), analyzeTimeout)
	c.processing = true
	c.processCancel = cancel
	c.mu.Unlock()

	c.view.SetBusy(true)
	c.view.SetStatus("Processing...")

	go func() {
		defer func() {
			cancel()
			c.mu.Lock()
			c.processing = false
			c.processCancel = nil
			c.mu.Unlock()
		}()

		a, err := c.coordinator.Analyze(ctx)

		fyne.Do(func() {
			c.view.SetBusy(false)
			switch {
			case errors.Is(err, pipeline.ErrNoROIExported):
				c.view.SetStatus("Ready")
				c.view.ShowError(errSelectFirst)
			case err != nil:
				c.view.SetStatus("Processing failed")
				c.handleError("Processing error", fmt.Errorf("processing error: %w", err))
			default:
				c.view.SetAnalysis(a.ROI.Image, a.Processed, a.Result, a.Stats)
				c.view.SetStatus(fmt.Sprintf("Done in %s", a.Elapsed.Round(time.Millisecond)))
			}
		})
	}()
}

func (c *Controller) figure() (image.Image, error) {
	last := c.coordinator.Last()
	if last == nil {
		return nil, errNoAnalysis
	}

	in := render.Input{
		ROI:       last.ROI.Image,
		Processed: last.Processed,
		Edges:     last.Edges,
		Result:    last.Result,
	}
	if src := c.coordinator.Source(); src != nil {
		in.Source = src.Image
	}
	return render.Figure(in), nil
}

func (c *Controller) ShowDetails() {
	fig, err := c.figure()
	if err != nil {
		c.view.ShowError(err)
		return
	}
	c.view.ShowFigure(fig)
}

func (c *Controller) SaveFigure() {
	fig, err := c.figure()
	if err != nil {
		c.view.ShowError(err)
		return
	}

	c.view.ShowSaveDialog("analysis.png", func(writer fyne.URIWriteCloser, err error) {
		if err != nil {
			c.handleError("File save error", err)
			return
		}
		if writer == nil {
			return
		}

		go func() {
			defer writer.Close()
			saveErr := c.coordinator.SaveFigure(writer, fig)
			fyne.Do(func() {
				if saveErr != nil {
					c.handleError("Figure save error", saveErr)
					return
				}
				c.view.SetStatus("Figure saved")
				c.logger.Info("Controller", "figure saved", logger.Fields{"path": writer.URI().Path()})
			})
		}()
	})
}

func (c *Controller) UpdateParameter(name string, value interface{}) {
	algs := c.coordinator.Algorithms()
	if err := algs.SetParameter(algs.GetCurrentAlgorithm(), name, value); err != nil {
		c.handleError("Parameter update error", err)
		c.refreshParameters()
	}
}

func (c *Controller) ResetParameters() {
	algs := c.coordinator.Algorithms()
	if err := algs.ResetParameters(algs.GetCurrentAlgorithm()); err != nil {
		c.handleError("Parameter reset error", err)
		return
	}
	c.refreshParameters()
}

func (c *Controller) CancelProcessing() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.processCancel != nil {
		c.processCancel()
	}
}

func (c *Controller) handleError(title string, err error) {
	c.logger.Error("Controller", err, logger.Fields{"title": title})
	c.view.ShowError(err)
}

func (c *Controller) Shutdown() {
	c.CancelProcessing()
	c.logger.Info("Controller", "shutdown completed", nil)
}
