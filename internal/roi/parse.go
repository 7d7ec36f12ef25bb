package roi

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ParseSize reads "WxH", for example "500x500".
func ParseSize(s string) (Size, error) {
	w, h, ok := strings.Cut(strings.ToLower(strings.TrimSpace(s)), "x")
	if !ok {
		return Size{}, fmt.Errorf("size %q: want WxH", s)
	}
	fw, err := strconv.ParseFloat(w, 64)
	if err != nil {
		return Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	fh, err := strconv.ParseFloat(h, 64)
	if err != nil {
		return Size{}, fmt.Errorf("size %q: %w", s, err)
	}
	size := Size{W: fw, H: fh}
	if !size.valid() {
		return Size{}, fmt.Errorf("size %q: dimensions must be positive and finite", s)
	}
	return size, nil
}

// ParsePoint reads "x,y".
func ParsePoint(s string) (Point, error) {
	x, y, ok := strings.Cut(strings.TrimSpace(s), ",")
	if !ok {
		return Point{}, fmt.Errorf("point %q: want x,y", s)
	}
	fx, err := strconv.ParseFloat(strings.TrimSpace(x), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	fy, err := strconv.ParseFloat(strings.TrimSpace(y), 64)
	if err != nil {
		return Point{}, fmt.Errorf("point %q: %w", s, err)
	}
	if !finite(fx) || !finite(fy) {
		return Point{}, fmt.Errorf("point %q: coordinates must be finite", s)
	}
	return Point{X: fx, Y: fy}, nil
}

// ParseDrag reads "x1,y1:x2,y2" as the start and end of a gesture in display
// coordinates.
func ParseDrag(s string) (start, end Point, err error) {
	a, b, ok := strings.Cut(s, ":")
	if !ok {
		return Point{}, Point{}, fmt.Errorf("drag %q: want x1,y1:x2,y2", s)
	}
	if start, err = ParsePoint(a); err != nil {
		return Point{}, Point{}, err
	}
	if end, err = ParsePoint(b); err != nil {
		return Point{}, Point{}, err
	}
	return start, end, nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
