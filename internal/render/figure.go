// Package render composes the analysis figure shown in the details dialog
// and written by the headless tool.
package render

import (
	"fmt"
	"image"
	"image/color"

	"roi-edge-analyzer/internal/analysis"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	PanelSize   = 280
	titleHeight = 34
	padding     = 8
	panels      = 5
)

var (
	background = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	panelFill  = color.RGBA{R: 235, G: 235, B: 235, A: 255}
	textColor  = color.RGBA{R: 20, G: 20, B: 20, A: 255}
)

// Input gathers everything the figure shows. Any field may be empty.
type Input struct {
	Source    image.Image
	ROI       image.Image
	Processed image.Image
	Edges     *image.Gray
	Result    analysis.Result
}

// FigureSize returns the pixel size of a figure.
func FigureSize() (w, h int) {
	return panels*PanelSize + (panels+1)*padding, PanelSize + titleHeight + 2*padding
}

// Figure lays out the original image, the selected region, the filtered
// region, its edges and the edges with the counting line side by side.
func Figure(in Input) *image.RGBA {
	w, h := FigureSize()
	out := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(out, out.Bounds(), image.NewUniform(background), image.Point{}, draw.Src)

	var withLine image.Image
	if in.Edges != nil {
		withLine = Centerline(in.Edges)
	}

	items := []struct {
		title []string
		img   image.Image
	}{
		{[]string{"Original Image"}, in.Source},
		{[]string{"Selected ROI"}, in.ROI},
		{[]string{"Processed ROI"}, in.Processed},
		{[]string{"Edge Detection"}, grayOrNil(in.Edges)},
		{[]string{"Edge Count", fmt.Sprintf("%d edges", in.Result.Count)}, withLine},
	}

	for i, it := range items {
		x := padding + i*(PanelSize+padding)
		drawTitle(out, x, padding, it.title)

		panel := image.Rect(x, padding+titleHeight, x+PanelSize, padding+titleHeight+PanelSize)
		draw.Draw(out, panel, image.NewUniform(panelFill), image.Point{}, draw.Src)
		Fit(out, panel, it.img)
	}
	return out
}

// Fit scales src into r preserving its aspect ratio and centering it.
func Fit(dst draw.Image, r image.Rectangle, src image.Image) {
	if src == nil || src.Bounds().Empty() || r.Empty() {
		return
	}
	sb := src.Bounds()
	sw, sh := float64(sb.Dx()), float64(sb.Dy())
	scale := float64(r.Dx()) / sw
	if s := float64(r.Dy()) / sh; s < scale {
		scale = s
	}

	w := int(sw * scale)
	h := int(sh * scale)
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	x := r.Min.X + (r.Dx()-w)/2
	y := r.Min.Y + (r.Dy()-h)/2
	draw.ApproxBiLinear.Scale(dst, image.Rect(x, y, x+w, y+h), src, sb, draw.Src, nil)
}

// Centerline returns a copy of edges with the counting column drawn in.
func Centerline(edges *image.Gray) *image.Gray {
	b := edges.Bounds()
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(out, out.Bounds(), edges, b.Min, draw.Src)
	if b.Empty() {
		return out
	}

	col := b.Dx() / 2
	for y := 0; y < b.Dy(); y++ {
		out.SetGray(col, y, color.Gray{Y: 255})
	}
	return out
}

func drawTitle(dst draw.Image, x, y int, lines []string) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: dst, Src: image.NewUniform(textColor), Face: face}

	lineHeight := face.Metrics().Height.Ceil()
	for i, line := range lines {
		width := d.MeasureString(line).Ceil()
		left := x + (PanelSize-width)/2
		if left < x {
			left = x
		}
		d.Dot = fixed.P(left, y+face.Metrics().Ascent.Ceil()+i*(lineHeight+2))
		d.DrawString(line)
	}
}

// grayOrNil avoids handing a typed nil to Fit.
func grayOrNil(g *image.Gray) image.Image {
	if g == nil {
		return nil
	}
	return g
}
