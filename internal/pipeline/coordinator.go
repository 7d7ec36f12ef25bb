package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"io"
	"io/fs"
	"os"
	"sync"
	"time"

	"roi-edge-analyzer/internal/algorithms"
	"roi-edge-analyzer/internal/analysis"
	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/opencv/memory"
	"roi-edge-analyzer/internal/opencv/safe"
	"roi-edge-analyzer/internal/roi"

	"fyne.io/fyne/v2"
)

var (
	ErrNoImage = errors.New("no image loaded")
	// ErrNoROIExported means the filter stage found nothing at the export path.
	ErrNoROIExported = errors.New("no exported ROI")
	ErrEmptyImage    = errors.New("image file is empty")
)

type ImageData struct {
	Image    image.Image
	Mat      *safe.Mat
	Width    int
	Height   int
	Channels int
	Format   string
	Path     string
}

func (d *ImageData) release() {
	if d != nil && d.Mat != nil {
		d.Mat.Close()
		d.Mat = nil
	}
}

// Analysis is the outcome of one run of the filter stage on the exported ROI.
type Analysis struct {
	ROI       *ImageData
	Processed *image.Gray
	Edges     *image.Gray
	Result    analysis.Result
	Stats     analysis.Stats
	Elapsed   time.Duration
}

type Options struct {
	ExportPath  string
	JPEGQuality int
	CannyLow    float32
	CannyHigh   float32
}

type Coordinator struct {
	mu               sync.RWMutex
	source           *ImageData
	last             *Analysis
	selector         *roi.Selector
	exportPath       string
	memoryManager    *memory.Manager
	logger           logger.Logger
	algorithmManager *algorithms.Manager
	loader           *imageLoader
	processor        *imageProcessor
	saver            *imageSaver
	ctx              context.Context
	cancel           context.CancelFunc
}

func NewCoordinator(memMgr *memory.Manager, log logger.Logger, opts Options) *Coordinator {
	if log == nil {
		log = logger.NewNop()
	}
	if memMgr == nil {
		memMgr = memory.NewManager(log, 0)
	}
	if opts.JPEGQuality <= 0 {
		opts.JPEGQuality = roi.DefaultQuality
	}

	algMgr := algorithms.NewManager(memMgr)
	ctx, cancel := context.WithCancel(context.Background())

	c := &Coordinator{
		exportPath:       opts.ExportPath,
		memoryManager:    memMgr,
		logger:           log,
		algorithmManager: algMgr,
		ctx:              ctx,
		cancel:           cancel,
	}
	c.selector = roi.NewSelector(roi.FileSink{Path: opts.ExportPath, Quality: opts.JPEGQuality}, log)
	c.loader = &imageLoader{memoryManager: memMgr, logger: log}
	c.processor = &imageProcessor{
		memoryManager:    memMgr,
		logger:           log,
		algorithmManager: algMgr,
		cannyLow:         opts.CannyLow,
		cannyHigh:        opts.CannyHigh,
	}
	c.saver = &imageSaver{logger: log, quality: opts.JPEGQuality}

	log.Info("PipelineCoordinator", "initialized", logger.Fields{
		"export_path": opts.ExportPath,
		"algorithm":   algMgr.GetCurrentAlgorithm(),
	})
	return c
}

// Selector is the ROI selector bound to the loaded image and the export path.
func (c *Coordinator) Selector() *roi.Selector { return c.selector }

func (c *Coordinator) Algorithms() *algorithms.Manager { return c.algorithmManager }

func (c *Coordinator) ExportPath() string { return c.exportPath }

func (c *Coordinator) LoadImage(path string) (*ImageData, error) {
	start := time.Now()
	d, err := c.loader.LoadFromPath(path)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, logger.Fields{"operation": "load_image", "path": path})
		return nil, err
	}
	c.setSource(d, time.Since(start))
	return d, nil
}

func (c *Coordinator) LoadFromReader(reader fyne.URIReadCloser) (*ImageData, error) {
	start := time.Now()
	d, err := c.loader.LoadFromReader(reader)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, logger.Fields{"operation": "load_image"})
		return nil, err
	}
	c.setSource(d, time.Since(start))
	return d, nil
}

// setSource swaps the loaded image. The selector is left alone: it belongs
// to the goroutine that delivers gesture events, which binds the new image
// itself.
func (c *Coordinator) setSource(d *ImageData, took time.Duration) {
	c.mu.Lock()
	old := c.source
	c.source = d
	c.last = nil
	c.mu.Unlock()

	old.release()

	c.logger.Info("PipelineCoordinator", "image loaded", logger.Fields{
		"path":      d.Path,
		"width":     d.Width,
		"height":    d.Height,
		"channels":  d.Channels,
		"format":    d.Format,
		"load_time": took.String(),
	})
}

func (c *Coordinator) Source() *ImageData {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.source
}

// Analyze runs the filter chain, Canny and the centerline count on the image
// stored at the export path.
func (c *Coordinator) Analyze(ctx context.Context) (*Analysis, error) {
	if ctx == nil {
		ctx = c.ctx
	}
	start := time.Now()

	info, err := os.Stat(c.exportPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNoROIExported
	}
	if err != nil {
		return nil, fmt.Errorf("checking %s: %w", c.exportPath, err)
	}
	if info.Size() == 0 {
		return nil, fmt.Errorf("%s: %w", c.exportPath, ErrEmptyImage)
	}

	input, err := c.loader.LoadFromPath(c.exportPath)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, logger.Fields{"operation": "analyze"})
		return nil, err
	}
	defer input.release()

	out, err := c.processor.Process(ctx, input)
	if err != nil {
		c.logger.Error("PipelineCoordinator", err, logger.Fields{"operation": "analyze"})
		return nil, err
	}

	a := &Analysis{
		ROI:       &ImageData{Image: input.Image, Width: input.Width, Height: input.Height, Channels: input.Channels, Format: input.Format, Path: input.Path},
		Processed: out.processed,
		Edges:     out.edges,
		Result:    analysis.CountCenterline(out.edges),
		Stats:     analysis.Intensity(out.processed),
		Elapsed:   time.Since(start),
	}

	c.mu.Lock()
	c.last = a
	c.mu.Unlock()

	c.logger.Info("PipelineCoordinator", "analysis completed", logger.Fields{
		"edge_count": a.Result.Count,
		"hits":       a.Result.Hits,
		"roi_size":   fmt.Sprintf("%dx%d", a.Result.Width, a.Result.Height),
		"mean":       a.Stats.Mean,
		"elapsed":    a.Elapsed.String(),
	})
	c.memoryManager.Report(3)
	return a, nil
}

// Last returns the most recent analysis, or nil.
func (c *Coordinator) Last() *Analysis {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.last
}

// SaveFigure writes img as PNG.
func (c *Coordinator) SaveFigure(w io.Writer, img image.Image) error {
	return c.saver.SaveToWriter(w, img, "png")
}

func (c *Coordinator) SaveFigureToPath(path string, img image.Image) error {
	return c.saver.SaveToPath(path, img)
}

func (c *Coordinator) Context() context.Context {
	return c.ctx
}

func (c *Coordinator) Cancel() {
	c.cancel()
}

func (c *Coordinator) Shutdown() {
	c.logger.Info("PipelineCoordinator", "shutdown started", nil)
	c.cancel()

	c.mu.Lock()
	c.source.release()
	c.source = nil
	c.last = nil
	c.mu.Unlock()

	c.memoryManager.Shutdown()
	c.logger.Info("PipelineCoordinator", "shutdown completed", nil)
}
