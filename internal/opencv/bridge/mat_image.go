package bridge

import (
	"fmt"
	"image"

	"roi-edge-analyzer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// ToImage converts an 8-bit Mat into a Go image. Single channel Mats become
// *image.Gray; BGR and BGRA Mats go through gocv's RGBA conversion.
func ToImage(m *safe.Mat) (image.Image, error) {
	if err := safe.ValidateChannels(m, "ToImage", 1, 3, 4); err != nil {
		return nil, err
	}
	if m.Channels() == 1 {
		return ToGray(m)
	}

	img, err := m.Raw().ToImage()
	if err != nil {
		return nil, fmt.Errorf("converting %dx%d Mat: %w", m.Cols(), m.Rows(), err)
	}
	return img, nil
}

// ToGray copies a CV_8UC1 Mat into an *image.Gray.
func ToGray(m *safe.Mat) (*image.Gray, error) {
	if err := safe.ValidateChannels(m, "ToGray", 1); err != nil {
		return nil, err
	}
	if m.Type() != gocv.MatTypeCV8UC1 {
		return nil, fmt.Errorf("ToGray: expected 8-bit Mat, got type %d", m.Type())
	}

	data, err := m.Bytes()
	if err != nil {
		return nil, err
	}
	rows, cols := m.Rows(), m.Cols()
	if len(data) < rows*cols {
		return nil, fmt.Errorf("ToGray: short buffer %d for %dx%d", len(data), cols, rows)
	}

	img := image.NewGray(image.Rect(0, 0, cols, rows))
	copy(img.Pix, data[:rows*cols])
	return img, nil
}

// FromImage loads img into a new BGR Mat, or a single channel Mat when img is
// already grayscale. The tracker may be nil.
func FromImage(img image.Image, tracker safe.Tracker, tag string) (*safe.Mat, error) {
	if img == nil {
		return nil, fmt.Errorf("input image is nil")
	}
	if img.Bounds().Empty() {
		return nil, fmt.Errorf("input image is empty: %v", img.Bounds())
	}

	var (
		mat gocv.Mat
		err error
	)
	if g, ok := img.(*image.Gray); ok {
		mat, err = gocv.ImageGrayToMatGray(normalizeGray(g))
	} else {
		mat, err = gocv.ImageToMatRGB(img)
	}
	if err != nil {
		return nil, fmt.Errorf("converting %T to Mat: %w", img, err)
	}
	return safe.Adopt(mat, tracker, tag)
}

// normalizeGray moves a sub-image to a zero origin with a tight stride.
func normalizeGray(g *image.Gray) *image.Gray {
	b := g.Bounds()
	if b.Min == (image.Point{}) && g.Stride == b.Dx() {
		return g
	}
	out := image.NewGray(image.Rect(0, 0, b.Dx(), b.Dy()))
	for y := 0; y < b.Dy(); y++ {
		copy(out.Pix[y*out.Stride:(y+1)*out.Stride], g.Pix[g.PixOffset(b.Min.X, b.Min.Y+y):])
	}
	return out
}
