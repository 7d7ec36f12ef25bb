// Package roi maps pointer gestures on a letterboxed display surface to
// rectangular regions of the source image and extracts those regions.
//
// Display coordinates have their origin at the bottom-left corner of the
// surface with y growing upwards. Image coordinates have their origin at the
// top-left pixel with y growing downwards.
package roi

import (
	"errors"
	"math"
)

var (
	ErrSurfaceNotLaidOut = errors.New("roi: display surface has no size yet")
	ErrImageNotLoaded    = errors.New("roi: no source image")
	ErrPersistence       = errors.New("roi: persisting selection failed")
)

// Size is a width/height pair in either display units or image pixels.
type Size struct {
	W, H float64
}

func (s Size) valid() bool {
	return s.W > 0 && s.H > 0 && !math.IsInf(s.W, 1) && !math.IsInf(s.H, 1)
}

// Point is a position in either display or image coordinates.
type Point struct {
	X, Y float64
}

// Transform places an image inside a display surface: the image is scaled
// uniformly to fit and centered on the under-filled axis.
//
// display = image*Scale + Offset (after flipping the vertical axis).
type Transform struct {
	Scale   float64
	Offset  Point
	Image   Size
	Surface Size
}

// NewTransform fits image into surface. The fitting axis gets a zero offset,
// the other one gets half of the unused space.
func NewTransform(image, surface Size) (Transform, error) {
	if !image.valid() {
		return Transform{}, ErrImageNotLoaded
	}
	if !surface.valid() {
		return Transform{}, ErrSurfaceNotLaidOut
	}

	t := Transform{Image: image, Surface: surface}
	surfaceRatio := surface.W / surface.H
	imageRatio := image.W / image.H

	if surfaceRatio > imageRatio {
		t.Scale = surface.H / image.H
		t.Offset = Point{X: math.Max(0, (surface.W-image.W*t.Scale)/2)}
	} else {
		t.Scale = surface.W / image.W
		t.Offset = Point{Y: math.Max(0, (surface.H-image.H*t.Scale)/2)}
	}
	return t, nil
}

// ToImage converts a display point to image coordinates, clamped to
// [0, W] x [0, H]. NaN components map to 0.
func (t Transform) ToImage(p Point) Point {
	if t.Scale <= 0 {
		return Point{}
	}
	x := (p.X - t.Offset.X) / t.Scale
	y := t.Image.H - (p.Y-t.Offset.Y)/t.Scale
	return Point{
		X: clamp(x, 0, t.Image.W),
		Y: clamp(y, 0, t.Image.H),
	}
}

// ToDisplay is the inverse of ToImage for points inside the image.
func (t Transform) ToDisplay(p Point) Point {
	return Point{
		X: p.X*t.Scale + t.Offset.X,
		Y: (t.Image.H-p.Y)*t.Scale + t.Offset.Y,
	}
}

// ImageRect returns the display-space corners of the area covered by the
// image.
func (t Transform) ImageRect() (lo, hi Point) {
	lo = t.Offset
	hi = Point{
		X: t.Offset.X + t.Image.W*t.Scale,
		Y: t.Offset.Y + t.Image.H*t.Scale,
	}
	return lo, hi
}

func clamp(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(v, hi))
}
