package pipeline

import (
	"fmt"
	"image"
	"io"
	"os"
	"path/filepath"
	"strings"

	"roi-edge-analyzer/internal/logger"

	"github.com/disintegration/imaging"
)

type imageSaver struct {
	logger  logger.Logger
	quality int
}

// SaveToWriter encodes img as PNG unless format names JPEG.
func (s *imageSaver) SaveToWriter(w io.Writer, img image.Image, format string) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("no image data to save")
	}

	f := imaging.PNG
	if format == "jpeg" || format == "jpg" {
		f = imaging.JPEG
	}
	if err := imaging.Encode(w, img, f, imaging.JPEGQuality(s.quality)); err != nil {
		s.logger.Error("ImageSaver", err, logger.Fields{"format": f.String()})
		return fmt.Errorf("encoding %s: %w", f, err)
	}
	return nil
}

// SaveToPath picks the encoder from the file extension.
func (s *imageSaver) SaveToPath(path string, img image.Image) error {
	if img == nil || img.Bounds().Empty() {
		return fmt.Errorf("no image data to save")
	}
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating %s: %w", dir, err)
		}
	}

	if err := imaging.Save(img, path, imaging.JPEGQuality(s.quality)); err != nil {
		s.logger.Error("ImageSaver", err, logger.Fields{"path": path})
		return fmt.Errorf("saving %s: %w", path, err)
	}

	s.logger.Info("ImageSaver", "image saved", logger.Fields{
		"path":   path,
		"format": strings.TrimPrefix(strings.ToLower(filepath.Ext(path)), "."),
	})
	return nil
}
