// Package config holds runtime settings for the analyzer: where the source
// photograph comes from, where the selected ROI is persisted and the fixed
// thresholds used by the edge counter.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	DefaultSourcePath = "assets/4.jpg"
	DefaultExportPath = "assets/roi.jpg"
	DefaultFigurePath = "assets/analysis.png"
)

// Config is loaded from an optional YAML file and then overridden by the
// environment and command-line flags.
type Config struct {
	SourcePath   string  `yaml:"source_path"`
	ExportPath   string  `yaml:"export_path"`
	FigurePath   string  `yaml:"figure_path"`
	LogLevel     string  `yaml:"log_level"`
	JPEGQuality  int     `yaml:"jpeg_quality"`
	CannyLow     float32 `yaml:"canny_low"`
	CannyHigh    float32 `yaml:"canny_high"`
	WindowWidth  float32 `yaml:"window_width"`
	WindowHeight float32 `yaml:"window_height"`
}

// Default returns a Config populated with standard defaults.
func Default() *Config {
	return &Config{
		SourcePath:   DefaultSourcePath,
		ExportPath:   DefaultExportPath,
		FigurePath:   DefaultFigurePath,
		LogLevel:     "info",
		JPEGQuality:  95,
		CannyLow:     50,
		CannyHigh:    150,
		WindowWidth:  1400,
		WindowHeight: 900,
	}
}

// Load reads the YAML file at path on top of the defaults. An empty path or a
// missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return cfg, nil
		}
		return cfg, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return Default(), fmt.Errorf("parsing config %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// ApplyEnv overrides fields from LOG_LEVEL, ROI_SOURCE and ROI_EXPORT_PATH.
func (c *Config) ApplyEnv() {
	if v := strings.TrimSpace(os.Getenv("LOG_LEVEL")); v != "" {
		c.LogLevel = v
	}
	if v := strings.TrimSpace(os.Getenv("ROI_SOURCE")); v != "" {
		c.SourcePath = v
	}
	if v := strings.TrimSpace(os.Getenv("ROI_EXPORT_PATH")); v != "" {
		c.ExportPath = v
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	if c.ExportPath == "" {
		return fmt.Errorf("export_path must not be empty")
	}
	if c.JPEGQuality < 1 || c.JPEGQuality > 100 {
		return fmt.Errorf("jpeg_quality must be between 1 and 100, got %d", c.JPEGQuality)
	}
	if c.CannyLow < 0 || c.CannyHigh <= 0 {
		return fmt.Errorf("canny thresholds must be positive, got %.1f/%.1f", c.CannyLow, c.CannyHigh)
	}
	if c.CannyLow > c.CannyHigh {
		return fmt.Errorf("canny_low (%.1f) must not exceed canny_high (%.1f)", c.CannyLow, c.CannyHigh)
	}
	if c.WindowWidth <= 0 || c.WindowHeight <= 0 {
		return fmt.Errorf("window size must be positive, got %.0fx%.0f", c.WindowWidth, c.WindowHeight)
	}
	return nil
}
