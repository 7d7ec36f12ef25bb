package roi

import (
	"fmt"
	"image"
	"math"
)

// ROI is a region of the source image in pixel coordinates, with X1 <= X2
// and Y1 <= Y2.
type ROI struct {
	X1, Y1, X2, Y2 int
}

// NewROI reduces the two display-space corners of a drag to an image region.
// Because the display y axis points up, the left edge is paired with the
// higher display y and the right edge with the lower one.
func NewROI(start, end Point, t Transform) ROI {
	a := t.ToImage(Point{X: math.Min(start.X, end.X), Y: math.Max(start.Y, end.Y)})
	b := t.ToImage(Point{X: math.Max(start.X, end.X), Y: math.Min(start.Y, end.Y)})

	r := ROI{X1: int(a.X), Y1: int(a.Y), X2: int(b.X), Y2: int(b.Y)}
	if r.Y1 > r.Y2 {
		r.Y1, r.Y2 = r.Y2, r.Y1
	}
	return r
}

func (r ROI) Width() int  { return r.X2 - r.X1 }
func (r ROI) Height() int { return r.Y2 - r.Y1 }

// Empty reports whether the region has zero area.
func (r ROI) Empty() bool {
	return r.Width() <= 0 || r.Height() <= 0
}

func (r ROI) Rectangle() image.Rectangle {
	return image.Rect(r.X1, r.Y1, r.X2, r.Y2)
}

func (r ROI) String() string {
	return fmt.Sprintf("(%d,%d,%d,%d)", r.X1, r.Y1, r.X2, r.Y2)
}
