package widgets

import (
	"image"
	"path/filepath"
	"testing"

	"roi-edge-analyzer/internal/roi"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func press(x, y float32) *desktop.MouseEvent {
	return &desktop.MouseEvent{
		PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)},
		Button:     desktop.MouseButtonPrimary,
	}
}

func dragTo(x, y float32) *fyne.DragEvent {
	return &fyne.DragEvent{PointEvent: fyne.PointEvent{Position: fyne.NewPos(x, y)}}
}

func newTestCanvas(t *testing.T) (*ROICanvas, *roi.Selector) {
	t.Helper()
	a := test.NewApp()
	t.Cleanup(a.Quit)

	sel := roi.NewSelector(roi.FileSink{Path: filepath.Join(t.TempDir(), "roi.jpg")}, nil)
	c := NewROICanvas(sel, nil)
	c.Resize(fyne.NewSize(500, 500))
	c.SetImage(image.NewRGBA(image.Rect(0, 0, 1000, 2000)))
	return c, sel
}

func TestROICanvas_FlipsToBottomLeftOrigin(t *testing.T) {
	c, _ := newTestCanvas(t)
	assert.Equal(t, roi.Point{X: 100, Y: 400}, c.toDisplay(fyne.NewPos(100, 100)))
}

func TestROICanvas_DragCommitsRegion(t *testing.T) {
	c, sel := newTestCanvas(t)

	var committed []roi.ROI
	c.SetOnCommit(func(r roi.ROI) { committed = append(committed, r) })

	c.MouseDown(press(100, 100))
	assert.Equal(t, roi.StateDragging, sel.State())

	c.Dragged(dragTo(300, 300))
	c.DragEnd()
	c.MouseUp(press(300, 300))

	require.Len(t, committed, 1)
	assert.Equal(t, roi.ROI{X1: 200, Y1: 1450, X2: 600, Y2: 1850}, committed[0])
	assert.Equal(t, roi.StateIdle, sel.State())
}

func TestROICanvas_ClickWithoutDrag(t *testing.T) {
	c, sel := newTestCanvas(t)

	c.MouseDown(press(250, 250))
	c.MouseUp(press(250, 250))

	r, ok := sel.ROI()
	require.True(t, ok)
	assert.True(t, r.Empty())
}

func TestROICanvas_SecondaryButtonIgnored(t *testing.T) {
	c, sel := newTestCanvas(t)

	ev := press(100, 100)
	ev.Button = desktop.MouseButtonSecondary
	c.MouseDown(ev)
	assert.Equal(t, roi.StateIdle, sel.State())
}

func TestROICanvas_ResizeUpdatesSurface(t *testing.T) {
	c, sel := newTestCanvas(t)

	c.Resize(fyne.NewSize(2000, 1000))
	tr, ok := sel.Transform()
	require.True(t, ok)
	assert.InDelta(t, 0.5, tr.Scale, 1e-9)
	assert.InDelta(t, 750, tr.Offset.X, 1e-9)
}

func TestROICanvas_OverlayShowsDrag(t *testing.T) {
	c, _ := newTestCanvas(t)

	c.MouseDown(press(100, 100))
	c.Dragged(dragTo(300, 300))

	img := c.drawOverlay(500, 500).(*image.NRGBA)
	assert.Equal(t, dragColor, img.NRGBAAt(200, 200))
	assert.Zero(t, img.NRGBAAt(50, 50).A)
}
