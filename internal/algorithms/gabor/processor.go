package gabor

import (
	"context"
	"fmt"
	"image"

	"roi-edge-analyzer/internal/algorithms/recipe"
	"roi-edge-analyzer/internal/opencv/conversion"
	"roi-edge-analyzer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

// Name is the registry name of the chain.
const Name = "Enhanced Gabor"

// Processor runs CLAHE, blur, bilateral smoothing, an optional adaptive
// threshold, a Gabor convolution and a final erode/dilate on a grayscale
// copy of its input. The output is a single channel 8-bit Mat.
type Processor struct {
	name  string
	alloc conversion.Allocator
}

type untracked struct{}

func (untracked) NewMat(rows, cols int, matType gocv.MatType, tag string) (*safe.Mat, error) {
	return safe.NewTrackedMat(rows, cols, matType, nil, tag)
}

// NewProcessor creates a processor drawing its intermediate Mats from alloc.
// A nil alloc uses untracked Mats.
func NewProcessor(alloc conversion.Allocator) *Processor {
	if alloc == nil {
		alloc = untracked{}
	}
	return &Processor{name: Name, alloc: alloc}
}

func (p *Processor) GetName() string {
	return p.name
}

func (p *Processor) GetDefaultParameters() map[string]interface{} {
	return recipe.Defaults().ToMap()
}

func (p *Processor) ValidateParameters(params map[string]interface{}) error {
	_, err := recipe.FromMap(params)
	return err
}

func (p *Processor) Process(input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	return p.ProcessWithContext(context.Background(), input, params)
}

func (p *Processor) ProcessWithContext(ctx context.Context, input *safe.Mat, params map[string]interface{}) (*safe.Mat, error) {
	if err := safe.Validate(input, "Gabor processing"); err != nil {
		return nil, err
	}

	rp, err := recipe.FromMap(params)
	if err != nil {
		return nil, fmt.Errorf("parameter validation failed: %w", err)
	}

	working, err := conversion.ToGray(p.alloc, input)
	if err != nil {
		return nil, fmt.Errorf("failed to convert to grayscale: %w", err)
	}

	stages := []struct {
		name string
		skip bool
		run  func(src, dst gocv.Mat) error
	}{
		{name: "clahe", run: func(src, dst gocv.Mat) error {
			clahe := gocv.NewCLAHEWithParams(rp.ClaheClip, image.Point{X: rp.ClaheTiles, Y: rp.ClaheTiles})
			defer clahe.Close()
			clahe.Apply(src, &dst)
			return nil
		}},
		{name: "blur", run: func(src, dst gocv.Mat) error {
			k := image.Point{X: rp.BlurKernel, Y: rp.BlurKernel}
			gocv.GaussianBlur(src, &dst, k, 0, 0, gocv.BorderDefault)
			return nil
		}},
		{name: "bilateral", run: func(src, dst gocv.Mat) error {
			gocv.BilateralFilter(src, &dst, rp.BilateralDiameter, rp.BilateralSigmaColor, rp.BilateralSigmaSpace)
			return nil
		}},
		{name: "threshold", skip: !rp.AdaptiveThreshold, run: func(src, dst gocv.Mat) error {
			gocv.AdaptiveThreshold(src, &dst, 255, gocv.AdaptiveThresholdGaussian, gocv.ThresholdBinary,
				rp.ThresholdBlock, float32(rp.ThresholdC))
			return nil
		}},
		{name: "gabor", run: func(src, dst gocv.Mat) error {
			kernel := kernelMat(rp.Kernel())
			defer kernel.Close()
			return gocv.Filter2D(src, &dst, -1, kernel, image.Point{X: -1, Y: -1}, 0, gocv.BorderDefault)
		}},
		{name: "erode", skip: rp.ErodeIter == 0, run: func(src, dst gocv.Mat) error {
			morph(src, dst, rp.ErodeKernel, rp.ErodeIter, false)
			return nil
		}},
		{name: "dilate", skip: rp.DilateIter == 0, run: func(src, dst gocv.Mat) error {
			morph(src, dst, rp.DilateKernel, rp.DilateIter, true)
			return nil
		}},
	}

	for _, st := range stages {
		if st.skip {
			continue
		}
		select {
		case <-ctx.Done():
			working.Close()
			return nil, ctx.Err()
		default:
		}

		next, err := p.alloc.NewMat(working.Rows(), working.Cols(), gocv.MatTypeCV8UC1, st.name)
		if err != nil {
			working.Close()
			return nil, fmt.Errorf("%s stage: %w", st.name, err)
		}
		if err := st.run(working.Raw(), next.Raw()); err != nil {
			working.Close()
			next.Close()
			return nil, fmt.Errorf("%s stage: %w", st.name, err)
		}
		working.Close()
		working = next
	}

	return working, nil
}

func kernelMat(k recipe.Kernel) gocv.Mat {
	m := gocv.NewMatWithSize(k.Size, k.Size, gocv.MatTypeCV32FC1)
	for r := 0; r < k.Size; r++ {
		for c := 0; c < k.Size; c++ {
			m.SetFloatAt(r, c, k.At(r, c))
		}
	}
	return m
}

// morph applies iter passes of erosion or dilation with a square element.
// Passes after the first run in place.
func morph(src, dst gocv.Mat, size, iter int, dilate bool) {
	kernel := gocv.GetStructuringElement(gocv.MorphRect, image.Point{X: size, Y: size})
	defer kernel.Close()

	in := src
	for i := 0; i < iter; i++ {
		if dilate {
			gocv.Dilate(in, &dst, kernel)
		} else {
			gocv.Erode(in, &dst, kernel)
		}
		in = dst
	}
}
