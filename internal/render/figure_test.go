package render

import (
	"image"
	"image/color"
	"testing"

	"roi-edge-analyzer/internal/analysis"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func uniform(w, h int, c color.RGBA) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for i := 0; i < len(img.Pix); i += 4 {
		img.Pix[i], img.Pix[i+1], img.Pix[i+2], img.Pix[i+3] = c.R, c.G, c.B, c.A
	}
	return img
}

func TestFigure_Size(t *testing.T) {
	fig := Figure(Input{})
	w, h := FigureSize()
	assert.Equal(t, w, fig.Bounds().Dx())
	assert.Equal(t, h, fig.Bounds().Dy())
}

func TestFigure_PanelsHoldImages(t *testing.T) {
	red := color.RGBA{R: 200, A: 255}
	edges := image.NewGray(image.Rect(0, 0, 40, 40))

	fig := Figure(Input{
		Source: uniform(100, 100, red),
		Edges:  edges,
		Result: analysis.CountCenterline(edges),
	})

	// centre of the first panel carries the source colour
	cx := padding + PanelSize/2
	cy := padding + titleHeight + PanelSize/2
	assert.Equal(t, red, fig.RGBAAt(cx, cy))

	// the last panel shows the counting line in white at its centre
	lx := padding + 4*(PanelSize+padding) + PanelSize/2
	got := fig.RGBAAt(lx, cy)
	assert.Greater(t, got.R, uint8(100))
}

func TestFigure_EmptyPanelsAreBlank(t *testing.T) {
	fig := Figure(Input{})
	cx := padding + 2*(PanelSize+padding) + PanelSize/2
	cy := padding + titleHeight + PanelSize/2
	assert.Equal(t, panelFill, fig.RGBAAt(cx, cy))
}

func TestFit_Letterboxes(t *testing.T) {
	dst := uniform(100, 100, color.RGBA{A: 255})
	Fit(dst, dst.Bounds(), uniform(200, 50, color.RGBA{G: 255, A: 255}))

	// a 4:1 image fills a 100x25 band centred vertically
	assert.Equal(t, uint8(255), dst.RGBAAt(50, 50).G)
	assert.Equal(t, uint8(0), dst.RGBAAt(50, 10).G)
	assert.Equal(t, uint8(0), dst.RGBAAt(50, 90).G)
}

func TestCenterline(t *testing.T) {
	edges := image.NewGray(image.Rect(0, 0, 9, 5))
	edges.SetGray(1, 1, color.Gray{Y: 77})

	out := Centerline(edges)
	require.Equal(t, edges.Bounds(), out.Bounds())
	for y := 0; y < 5; y++ {
		assert.Equal(t, uint8(255), out.GrayAt(4, y).Y)
	}
	assert.Equal(t, uint8(77), out.GrayAt(1, 1).Y)

	// the input is left untouched
	assert.Equal(t, uint8(0), edges.GrayAt(4, 0).Y)
}

func TestCenterline_Empty(t *testing.T) {
	out := Centerline(image.NewGray(image.Rect(0, 0, 0, 0)))
	assert.True(t, out.Bounds().Empty())
}
