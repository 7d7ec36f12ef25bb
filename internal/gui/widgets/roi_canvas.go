package widgets

import (
	"image"
	"image/color"
	"math"

	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/roi"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
)

var (
	dragColor      = color.NRGBA{R: 255, A: 110}
	committedColor = color.NRGBA{R: 255, G: 40, B: 40, A: 220}
)

// ROICanvas shows an image letterboxed and turns mouse drags into regions of
// it through a roi.Selector. Positions are handed to the selector with the
// origin at the bottom-left corner of the widget.
type ROICanvas struct {
	widget.BaseWidget

	selector *roi.Selector
	logger   logger.Logger

	image   *canvas.Image
	overlay *canvas.Raster
	last    roi.Point

	onCommit func(roi.ROI)
}

func NewROICanvas(selector *roi.Selector, log logger.Logger) *ROICanvas {
	if log == nil {
		log = logger.NewNop()
	}
	c := &ROICanvas{selector: selector, logger: log}

	c.image = canvas.NewImageFromImage(nil)
	c.image.FillMode = canvas.ImageFillContain
	c.image.ScaleMode = canvas.ImageScaleSmooth
	c.overlay = canvas.NewRaster(c.drawOverlay)

	c.ExtendBaseWidget(c)
	return c
}

// SetOnCommit registers a callback run after every committed drag.
func (c *ROICanvas) SetOnCommit(fn func(roi.ROI)) {
	c.onCommit = fn
}

// SetImage displays img and makes it the selection source. Any earlier
// selection is dropped.
func (c *ROICanvas) SetImage(img image.Image) {
	c.selector.Reset()
	c.selector.SetSource(img)
	c.image.Image = img
	c.image.Refresh()
	c.overlay.Refresh()
}

func (c *ROICanvas) Resize(size fyne.Size) {
	c.BaseWidget.Resize(size)
	c.selector.SetSurface(roi.Size{W: float64(size.Width), H: float64(size.Height)})
	c.overlay.Refresh()
}

func (c *ROICanvas) Cursor() desktop.Cursor {
	return desktop.CrosshairCursor
}

// toDisplay flips fyne's top-left origin.
func (c *ROICanvas) toDisplay(pos fyne.Position) roi.Point {
	return roi.Point{X: float64(pos.X), Y: float64(c.Size().Height - pos.Y)}
}

func (c *ROICanvas) MouseDown(ev *desktop.MouseEvent) {
	if ev.Button != desktop.MouseButtonPrimary {
		return
	}
	p := c.toDisplay(ev.Position)
	c.last = p
	if c.selector.GestureStart(p) {
		c.overlay.Refresh()
	}
}

func (c *ROICanvas) Dragged(ev *fyne.DragEvent) {
	p := c.toDisplay(ev.Position)
	c.last = p
	c.selector.GestureMove(p)
	c.overlay.Refresh()
}

func (c *ROICanvas) DragEnd() {
	c.end(c.last)
}

func (c *ROICanvas) MouseUp(ev *desktop.MouseEvent) {
	c.end(c.toDisplay(ev.Position))
}

// end finishes a drag; whichever of DragEnd and MouseUp arrives second is a
// no-op because the selector is idle by then.
func (c *ROICanvas) end(p roi.Point) {
	r, ok := c.selector.GestureEnd(p)
	c.overlay.Refresh()
	if !ok {
		return
	}
	c.logger.Debug("ROICanvas", "selection committed", logger.Fields{"roi": r.String()})
	if c.onCommit != nil {
		c.onCommit(r)
	}
}

func (c *ROICanvas) drawOverlay(w, h int) image.Image {
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	size := c.Size()
	if size.Width <= 0 || size.Height <= 0 || w == 0 || h == 0 {
		return out
	}
	sx := float64(w) / float64(size.Width)
	sy := float64(h) / float64(size.Height)

	// display coordinates to raster pixels
	toPixel := func(p roi.Point) image.Point {
		return image.Point{
			X: int(math.Round(p.X * sx)),
			Y: int(math.Round((float64(size.Height) - p.Y) * sy)),
		}
	}

	if lo, hi, ok := c.selector.Feedback(); ok {
		fillRect(out, image.Rectangle{Min: toPixel(roi.Point{X: lo.X, Y: hi.Y}), Max: toPixel(roi.Point{X: hi.X, Y: lo.Y})}, dragColor)
		return out
	}

	if r, ok := c.selector.ROI(); ok {
		if t, ok := c.selector.Transform(); ok {
			a := toPixel(t.ToDisplay(roi.Point{X: float64(r.X1), Y: float64(r.Y1)}))
			b := toPixel(t.ToDisplay(roi.Point{X: float64(r.X2), Y: float64(r.Y2)}))
			strokeRect(out, image.Rect(a.X, a.Y, b.X, b.Y), committedColor)
		}
	}
	return out
}

func fillRect(img *image.NRGBA, r image.Rectangle, col color.NRGBA) {
	r = r.Canon().Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetNRGBA(x, y, col)
		}
	}
}

func strokeRect(img *image.NRGBA, r image.Rectangle, col color.NRGBA) {
	r = r.Canon()
	b := img.Bounds()
	set := func(x, y int) {
		if (image.Point{X: x, Y: y}).In(b) {
			img.SetNRGBA(x, y, col)
		}
	}
	for x := r.Min.X; x <= r.Max.X; x++ {
		set(x, r.Min.Y)
		set(x, r.Max.Y)
	}
	for y := r.Min.Y; y <= r.Max.Y; y++ {
		set(r.Min.X, y)
		set(r.Max.X, y)
	}
}

func (c *ROICanvas) CreateRenderer() fyne.WidgetRenderer {
	return &roiCanvasRenderer{canvas: c}
}

type roiCanvasRenderer struct {
	canvas *ROICanvas
}

func (r *roiCanvasRenderer) Layout(size fyne.Size) {
	r.canvas.image.Resize(size)
	r.canvas.overlay.Resize(size)
}

func (r *roiCanvasRenderer) MinSize() fyne.Size {
	return fyne.NewSize(ImageAreaWidth, ImageAreaHeight)
}

func (r *roiCanvasRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.canvas.image, r.canvas.overlay}
}

func (r *roiCanvasRenderer) Refresh() {
	r.canvas.image.Refresh()
	r.canvas.overlay.Refresh()
}

func (r *roiCanvasRenderer) Destroy() {}
