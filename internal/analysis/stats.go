package analysis

import (
	"image"

	"gonum.org/v1/gonum/stat"
)

// Stats summarizes the intensities of a grayscale image.
type Stats struct {
	Mean   float64
	StdDev float64
	Min    uint8
	Max    uint8
	// Fill is the fraction of nonzero pixels.
	Fill float64
}

func Intensity(img *image.Gray) Stats {
	if img == nil || img.Bounds().Empty() {
		return Stats{}
	}
	b := img.Bounds()
	values := make([]float64, 0, b.Dx()*b.Dy())
	s := Stats{Min: 255}
	nonzero := 0

	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			v := img.GrayAt(x, y).Y
			values = append(values, float64(v))
			if v < s.Min {
				s.Min = v
			}
			if v > s.Max {
				s.Max = v
			}
			if v > 0 {
				nonzero++
			}
		}
	}

	s.Mean, s.StdDev = stat.PopMeanStdDev(values, nil)
	s.Fill = float64(nonzero) / float64(len(values))
	return s
}
