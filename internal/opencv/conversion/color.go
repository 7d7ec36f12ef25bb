package conversion

import (
	"fmt"

	"roi-edge-analyzer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Allocator hands out destination Mats. *memory.Manager satisfies it.
type Allocator interface {
	NewMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error)
}

// ToGray converts a 1, 3 or 4 channel BGR(A) Mat to single channel 8-bit.
func ToGray(alloc Allocator, src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateChannels(src, "ToGray", 1, 3, 4); err != nil {
		return nil, err
	}
	if src.Channels() == 1 {
		return src.Clone()
	}

	code := gocv.ColorBGRToGray
	if src.Channels() == 4 {
		code = gocv.ColorBGRAToGray
	}
	return convert(alloc, src, gocv.MatTypeCV8UC1, code, "gray")
}

// ToBGR expands gray or BGRA input to three channels.
func ToBGR(alloc Allocator, src *safe.Mat) (*safe.Mat, error) {
	if err := safe.ValidateChannels(src, "ToBGR", 1, 3, 4); err != nil {
		return nil, err
	}
	if src.Channels() == 3 {
		return src.Clone()
	}

	code := gocv.ColorGrayToBGR
	if src.Channels() == 4 {
		code = gocv.ColorBGRAToBGR
	}
	return convert(alloc, src, gocv.MatTypeCV8UC3, code, "bgr")
}

func convert(alloc Allocator, src *safe.Mat, t gocv.MatType, code gocv.ColorConversionCode, tag string) (*safe.Mat, error) {
	dst, err := alloc.NewMat(src.Rows(), src.Cols(), t, tag)
	if err != nil {
		return nil, fmt.Errorf("allocating %s Mat: %w", tag, err)
	}

	out := dst.Raw()
	gocv.CvtColor(src.Raw(), &out, code)
	if out.Empty() {
		dst.Close()
		return nil, fmt.Errorf("color conversion to %s produced no data", tag)
	}
	return dst, nil
}
