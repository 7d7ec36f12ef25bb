package analysis

import (
	"image"
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntensity(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 2, 2))
	img.SetGray(0, 0, color.Gray{Y: 0})
	img.SetGray(1, 0, color.Gray{Y: 100})
	img.SetGray(0, 1, color.Gray{Y: 100})
	img.SetGray(1, 1, color.Gray{Y: 200})

	s := Intensity(img)
	assert.InDelta(t, 100, s.Mean, 1e-9)
	assert.InDelta(t, 70.7106781, s.StdDev, 1e-6)
	assert.Equal(t, uint8(0), s.Min)
	assert.Equal(t, uint8(200), s.Max)
	assert.InDelta(t, 0.75, s.Fill, 1e-9)
}

func TestIntensity_Uniform(t *testing.T) {
	img := image.NewGray(image.Rect(0, 0, 3, 3))
	for i := range img.Pix {
		img.Pix[i] = 42
	}
	s := Intensity(img)
	assert.InDelta(t, 42, s.Mean, 1e-9)
	assert.InDelta(t, 0, s.StdDev, 1e-9)
	assert.InDelta(t, 1, s.Fill, 1e-9)
}

func TestIntensity_Empty(t *testing.T) {
	assert.Equal(t, Stats{}, Intensity(nil))
	assert.Equal(t, Stats{}, Intensity(image.NewGray(image.Rect(0, 0, 0, 0))))
}
