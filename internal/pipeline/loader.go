package pipeline

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"roi-edge-analyzer/internal/logger"
	"roi-edge-analyzer/internal/opencv/memory"

	"fyne.io/fyne/v2"
	"gocv.io/x/gocv"
	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

type imageLoader struct {
	memoryManager *memory.Manager
	logger        logger.Logger
}

func (l *imageLoader) LoadFromPath(path string) (*ImageData, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	d, err := l.LoadFromBytes(data, filepath.Ext(path))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	d.Path = path
	return d, nil
}

func (l *imageLoader) LoadFromReader(reader fyne.URIReadCloser) (*ImageData, error) {
	uri := reader.URI()
	data, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read image data: %w", err)
	}

	d, err := l.LoadFromBytes(data, uri.Extension())
	if err != nil {
		return nil, err
	}
	d.Path = uri.Path()
	return d, nil
}

// LoadFromBytes decodes data twice: into a Go image for display and into a
// BGR Mat for the filter chain.
func (l *imageLoader) LoadFromBytes(data []byte, ext string) (*ImageData, error) {
	if len(data) == 0 {
		return nil, ErrEmptyImage
	}

	img, stdFormat, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	mat, err := gocv.IMDecode(data, gocv.IMReadColor)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image with OpenCV: %w", err)
	}
	safeMat, err := l.memoryManager.Adopt(mat, "loaded_image")
	if err != nil {
		return nil, fmt.Errorf("failed to wrap decoded Mat: %w", err)
	}

	b := img.Bounds()
	d := &ImageData{
		Image:    img,
		Mat:      safeMat,
		Width:    b.Dx(),
		Height:   b.Dy(),
		Channels: safeMat.Channels(),
		Format:   formatName(ext, stdFormat),
	}

	l.logger.Debug("ImageLoader", "image decoded", logger.Fields{
		"width":    d.Width,
		"height":   d.Height,
		"channels": d.Channels,
		"format":   d.Format,
	})
	return d, nil
}

func formatName(ext, decoded string) string {
	switch strings.ToLower(ext) {
	case ".tiff", ".tif":
		return "tiff"
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	case ".bmp":
		return "bmp"
	case ".webp":
		return "webp"
	}
	if decoded != "" {
		return decoded
	}
	return "unknown"
}
