// Package recipe holds the parameters of the edge enhancement chain and the
// pure numeric pieces of it that do not need OpenCV.
package recipe

import (
	"fmt"
	"math"
)

// Params configures every stage of the chain. Zero iteration counts skip the
// corresponding morphology step.
type Params struct {
	ClaheClip  float64
	ClaheTiles int

	BlurKernel int

	BilateralDiameter   int
	BilateralSigmaColor float64
	BilateralSigmaSpace float64

	AdaptiveThreshold bool
	ThresholdBlock    int
	ThresholdC        float64

	GaborSize   int
	GaborSigma  float64
	GaborTheta  float64
	GaborLambda float64
	GaborGamma  float64
	GaborPsi    float64

	ErodeKernel  int
	ErodeIter    int
	DilateKernel int
	DilateIter   int
}

func Defaults() Params {
	return Params{
		ClaheClip:           2.0,
		ClaheTiles:          8,
		BlurKernel:          11,
		BilateralDiameter:   9,
		BilateralSigmaColor: 75,
		BilateralSigmaSpace: 75,
		ThresholdBlock:      21,
		ThresholdC:          1,
		GaborSize:           10,
		GaborSigma:          5.7,
		GaborTheta:          math.Pi / 2,
		GaborLambda:         10,
		GaborGamma:          0.5,
		GaborPsi:            0,
		ErodeKernel:         3,
		ErodeIter:           1,
		DilateKernel:        5,
		DilateIter:          1,
	}
}

func (p Params) Validate() error {
	switch {
	case p.ClaheClip <= 0:
		return fmt.Errorf("clahe_clip must be positive, got: %g", p.ClaheClip)
	case p.ClaheTiles < 1 || p.ClaheTiles > 64:
		return fmt.Errorf("clahe_tiles must be between 1 and 64, got: %d", p.ClaheTiles)
	case p.BlurKernel < 1 || p.BlurKernel%2 == 0:
		return fmt.Errorf("blur_kernel must be a positive odd number, got: %d", p.BlurKernel)
	case p.BilateralDiameter < 1:
		return fmt.Errorf("bilateral_diameter must be positive, got: %d", p.BilateralDiameter)
	case p.BilateralSigmaColor <= 0 || p.BilateralSigmaSpace <= 0:
		return fmt.Errorf("bilateral sigmas must be positive, got: %g/%g", p.BilateralSigmaColor, p.BilateralSigmaSpace)
	case p.AdaptiveThreshold && (p.ThresholdBlock < 3 || p.ThresholdBlock%2 == 0):
		return fmt.Errorf("threshold_block must be an odd number >= 3, got: %d", p.ThresholdBlock)
	case p.GaborSize < 1:
		return fmt.Errorf("gabor_ksize must be positive, got: %d", p.GaborSize)
	case p.GaborSigma <= 0:
		return fmt.Errorf("gabor_sigma must be positive, got: %g", p.GaborSigma)
	case p.GaborLambda <= 0:
		return fmt.Errorf("gabor_lambda must be positive, got: %g", p.GaborLambda)
	case p.GaborGamma <= 0:
		return fmt.Errorf("gabor_gamma must be positive, got: %g", p.GaborGamma)
	case p.ErodeIter < 0 || p.DilateIter < 0:
		return fmt.Errorf("morphology iterations must not be negative")
	case p.ErodeIter > 0 && p.ErodeKernel < 1:
		return fmt.Errorf("erode_kernel must be positive, got: %d", p.ErodeKernel)
	case p.DilateIter > 0 && p.DilateKernel < 1:
		return fmt.Errorf("dilate_kernel must be positive, got: %d", p.DilateKernel)
	}
	return nil
}

// ToMap flattens p into the key/value form the algorithm manager stores.
func (p Params) ToMap() map[string]interface{} {
	return map[string]interface{}{
		"clahe_clip":            p.ClaheClip,
		"clahe_tiles":           p.ClaheTiles,
		"blur_kernel":           p.BlurKernel,
		"bilateral_diameter":    p.BilateralDiameter,
		"bilateral_sigma_color": p.BilateralSigmaColor,
		"bilateral_sigma_space": p.BilateralSigmaSpace,
		"adaptive_threshold":    p.AdaptiveThreshold,
		"threshold_block":       p.ThresholdBlock,
		"threshold_c":           p.ThresholdC,
		"gabor_ksize":           p.GaborSize,
		"gabor_sigma":           p.GaborSigma,
		"gabor_theta":           p.GaborTheta,
		"gabor_lambda":          p.GaborLambda,
		"gabor_gamma":           p.GaborGamma,
		"gabor_psi":             p.GaborPsi,
		"erode_kernel":          p.ErodeKernel,
		"erode_iter":            p.ErodeIter,
		"dilate_kernel":         p.DilateKernel,
		"dilate_iter":           p.DilateIter,
	}
}

// FromMap overlays values from m onto the defaults. Numeric values may be
// any Go int or float type; unknown keys are rejected.
func FromMap(m map[string]interface{}) (Params, error) {
	p := Defaults()
	for key, value := range m {
		var err error
		switch key {
		case "clahe_clip":
			p.ClaheClip, err = asFloat(key, value)
		case "clahe_tiles":
			p.ClaheTiles, err = asInt(key, value)
		case "blur_kernel":
			p.BlurKernel, err = asInt(key, value)
		case "bilateral_diameter":
			p.BilateralDiameter, err = asInt(key, value)
		case "bilateral_sigma_color":
			p.BilateralSigmaColor, err = asFloat(key, value)
		case "bilateral_sigma_space":
			p.BilateralSigmaSpace, err = asFloat(key, value)
		case "adaptive_threshold":
			b, ok := value.(bool)
			if !ok {
				err = fmt.Errorf("%s must be a bool, got %T", key, value)
			}
			p.AdaptiveThreshold = b
		case "threshold_block":
			p.ThresholdBlock, err = asInt(key, value)
		case "threshold_c":
			p.ThresholdC, err = asFloat(key, value)
		case "gabor_ksize":
			p.GaborSize, err = asInt(key, value)
		case "gabor_sigma":
			p.GaborSigma, err = asFloat(key, value)
		case "gabor_theta":
			p.GaborTheta, err = asFloat(key, value)
		case "gabor_lambda":
			p.GaborLambda, err = asFloat(key, value)
		case "gabor_gamma":
			p.GaborGamma, err = asFloat(key, value)
		case "gabor_psi":
			p.GaborPsi, err = asFloat(key, value)
		case "erode_kernel":
			p.ErodeKernel, err = asInt(key, value)
		case "erode_iter":
			p.ErodeIter, err = asInt(key, value)
		case "dilate_kernel":
			p.DilateKernel, err = asInt(key, value)
		case "dilate_iter":
			p.DilateIter, err = asInt(key, value)
		default:
			err = fmt.Errorf("unknown parameter: %s", key)
		}
		if err != nil {
			return Params{}, err
		}
	}
	return p, p.Validate()
}

func asFloat(key string, v interface{}) (float64, error) {
	switch n := v.(type) {
	case float64:
		return n, nil
	case float32:
		return float64(n), nil
	case int:
		return float64(n), nil
	case int64:
		return float64(n), nil
	default:
		return 0, fmt.Errorf("%s must be a number, got %T", key, v)
	}
}

func asInt(key string, v interface{}) (int, error) {
	switch n := v.(type) {
	case int:
		return n, nil
	case int64:
		return int(n), nil
	case float64:
		if n != math.Trunc(n) {
			return 0, fmt.Errorf("%s must be a whole number, got %g", key, n)
		}
		return int(n), nil
	default:
		return 0, fmt.Errorf("%s must be an integer, got %T", key, v)
	}
}
