package pipeline

import (
	"context"
	"fmt"
	"image"

	"roi-edge-analyzer/internal/algorithms"
	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/opencv/bridge"
	"roi-edge-analyzer/internal/opencv/memory"
	"roi-edge-analyzer/internal/opencv/safe"

	"gocv.io/x/gocv"
)

type imageProcessor struct {
	memoryManager    *memory.Manager
	logger           logger.Logger
	algorithmManager *algorithms.Manager
	cannyLow         float32
	cannyHigh        float32
}

// filtered carries the outputs of one run as Go images; no Mats escape.
type filtered struct {
	processed *image.Gray
	edges     *image.Gray
}

func (p *imageProcessor) Process(ctx context.Context, input *ImageData) (*filtered, error) {
	if err := safe.Validate(input.Mat, "Process"); err != nil {
		return nil, err
	}

	processedMat, err := p.algorithmManager.Run(ctx, input.Mat)
	if err != nil {
		return nil, fmt.Errorf("algorithm processing failed: %w", err)
	}
	defer processedMat.Close()

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	edgesMat, err := p.memoryManager.NewMat(processedMat.Rows(), processedMat.Cols(), gocv.MatTypeCV8UC1, "edges")
	if err != nil {
		return nil, fmt.Errorf("allocating edge map: %w", err)
	}
	defer edgesMat.Close()

	dst := edgesMat.Raw()
	gocv.Canny(processedMat.Raw(), &dst, p.cannyLow, p.cannyHigh)

	processed, err := bridge.ToGray(processedMat)
	if err != nil {
		return nil, fmt.Errorf("converting processed Mat: %w", err)
	}
	edges, err := bridge.ToGray(edgesMat)
	if err != nil {
		return nil, fmt.Errorf("converting edge Mat: %w", err)
	}

	p.logger.Debug("ImageProcessor", "processing completed", logger.Fields{
		"algorithm":  p.algorithmManager.GetCurrentAlgorithm(),
		"input_size": fmt.Sprintf("%dx%d", input.Width, input.Height),
		"canny_low":  p.cannyLow,
		"canny_high": p.cannyHigh,
	})
	return &filtered{processed: processed, edges: edges}, nil
}
