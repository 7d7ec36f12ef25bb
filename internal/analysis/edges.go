// Package analysis measures the edge maps produced by the filter chain.
package analysis

import "image"

// Result describes the edges crossed by the vertical centerline.
type Result struct {
	Count  int
	Hits   int
	Column int
	Width  int
	Height int
}

// CountCenterline counts edge pixels on the column at width/2. A line
// crossing an edge lights up both of its sides, so the edge count is the
// number of lit pixels halved and rounded up.
func CountCenterline(edges *image.Gray) Result {
	if edges == nil {
		return Result{}
	}
	b := edges.Bounds()
	res := Result{Width: b.Dx(), Height: b.Dy(), Column: b.Dx() / 2}
	if b.Empty() {
		return res
	}

	x := b.Min.X + res.Column
	for y := b.Min.Y; y < b.Max.Y; y++ {
		if edges.GrayAt(x, y).Y > 0 {
			res.Hits++
		}
	}
	res.Count = (res.Hits + 1) / 2
	return res
}
