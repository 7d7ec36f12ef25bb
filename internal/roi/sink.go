package roi

import (
	"fmt"
	"image"
	"os"
	"path/filepath"

	"github.com/disintegration/imaging"
)

// DefaultQuality matches the encoder default of the downstream filter stage.
const DefaultQuality = 95

// Sink persists an extracted region.
type Sink interface {
	Save(img image.Image) error
}

// FileSink writes JPEG files to a fixed path, replacing earlier content.
type FileSink struct {
	Path    string
	Quality int
}

func (s FileSink) Save(img image.Image) error {
	if s.Path == "" {
		return fmt.Errorf("no export path configured")
	}
	if err := os.MkdirAll(filepath.Dir(s.Path), 0o755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}

	// An empty region has nothing to encode; it is stored as an empty file.
	if img == nil || img.Bounds().Empty() {
		if err := os.WriteFile(s.Path, nil, 0o644); err != nil {
			return fmt.Errorf("writing %s: %w", s.Path, err)
		}
		return nil
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", s.Path, err)
	}

	quality := s.Quality
	if quality <= 0 {
		quality = DefaultQuality
	}
	if err := imaging.Encode(f, img, imaging.JPEG, imaging.JPEGQuality(quality)); err != nil {
		f.Close()
		return fmt.Errorf("encoding JPEG: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing %s: %w", s.Path, err)
	}
	return nil
}
