package analysis

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func grayWithColumn(w, h int, lit ...int) *image.Gray {
	img := image.NewGray(image.Rect(0, 0, w, h))
	for _, y := range lit {
		img.SetGray(w/2, y, color.Gray{Y: 255})
	}
	return img
}

func TestCountCenterline(t *testing.T) {
	tests := []struct {
		name      string
		img       *image.Gray
		wantHits  int
		wantCount int
	}{
		{"no edges", grayWithColumn(10, 10), 0, 0},
		{"single edge pair", grayWithColumn(10, 10, 3, 4), 2, 1},
		{"odd hits round up", grayWithColumn(10, 10, 1, 2, 7), 3, 2},
		{"two edges", grayWithColumn(9, 20, 2, 3, 10, 11), 4, 2},
		{"single row", grayWithColumn(5, 1, 0), 1, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CountCenterline(tt.img)
			assert.Equal(t, tt.wantHits, got.Hits)
			assert.Equal(t, tt.wantCount, got.Count)
			assert.Equal(t, tt.img.Bounds().Dx()/2, got.Column)
		})
	}
}

func TestCountCenterline_IgnoresOtherColumns(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 10, 10))
	for y := 0; y < 10; y++ {
		img.SetGray(4, y, color.Gray{Y: 255})
		img.SetGray(6, y, color.Gray{Y: 255})
	}
	assert.Zero(t, CountCenterline(img).Hits)
}

func TestCountCenterline_SubImage(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 20, 20))
	img.SetGray(15, 12, color.Gray{Y: 1})
	sub := img.SubImage(image.Rect(10, 10, 20, 20)).(*image.Gray)

	got := CountCenterline(sub)
	assert.Equal(t, 5, got.Column)
	assert.Equal(t, 1, got.Hits)
}

func TestCountCenterline_Empty(t *testing.T) {
	assert.Equal(t, Result{}, CountCenterline(nil))

	got := CountCenterline(image.NewGray(image.Rect(0, 0, 0, 7)))
	assert.Zero(t, got.Count)
	assert.Equal(t, 7, got.Height)
}
