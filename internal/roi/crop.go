package roi

import (
	"image"

	"github.com/disintegration/imaging"
)

// Crop copies the pixels under r out of src. The result never shares memory
// with src. A zero-area region yields an image with a zero dimension and a
// nil src yields a 0x0 image.
func Crop(src image.Image, r ROI) image.Image {
	if src == nil {
		return image.NewNRGBA(image.Rectangle{})
	}
	if r.Empty() {
		w, h := r.Width(), r.Height()
		if w < 0 {
			w = 0
		}
		if h < 0 {
			h = 0
		}
		return image.NewNRGBA(image.Rect(0, 0, w, h))
	}
	rect := r.Rectangle().Add(src.Bounds().Min)
	return imaging.Crop(src, rect)
}
