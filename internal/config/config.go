// Package config loads the layerex configuration from .layerex/config.yml
// with environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gobwas/glob"
)

// Config represents the complete layerex configuration.
type Config struct {
	Annotations AnnotationsConfig `yaml:"annotations" mapstructure:"annotations"`
	Export      ExportConfig      `yaml:"export" mapstructure:"export"`
}

// AnnotationsConfig locates the highlight annotation dataset.
type AnnotationsConfig struct {
	File string `yaml:"file" mapstructure:"file"` // project-relative path of the dataset file
}

// ExportConfig defines where and how layers are exported.
type ExportConfig struct {
	SingleFolder bool     `yaml:"single_folder" mapstructure:"single_folder"` // merge all selected layers into one destination
	Path         string   `yaml:"path" mapstructure:"path"`                   // root folder for all exports
	Include      []string `yaml:"include" mapstructure:"include"`             // glob patterns restricting exported files
}

// Default returns a configuration with sensible defaults.
func Default() *Config {
	return &Config{
		Annotations: AnnotationsConfig{
			File: ".layerex/highlights.json",
		},
		Export: ExportConfig{
			SingleFolder: false,
			Path:         "exported_layer",
			Include:      []string{},
		},
	}
}

var (
	// ErrEmptyAnnotationsFile indicates a missing annotations file setting
	ErrEmptyAnnotationsFile = errors.New("empty annotations file path")

	// ErrEmptyExportPath indicates a missing export path setting
	ErrEmptyExportPath = errors.New("empty export path")

	// ErrInvalidIncludePattern indicates a glob pattern that does not compile
	ErrInvalidIncludePattern = errors.New("invalid include pattern")
)

// Validate checks that the configuration is valid and complete.
func Validate(cfg *Config) error {
	var errs []error

	if strings.TrimSpace(cfg.Annotations.File) == "" {
		errs = append(errs, ErrEmptyAnnotationsFile)
	}
	if strings.TrimSpace(cfg.Export.Path) == "" {
		errs = append(errs, ErrEmptyExportPath)
	}
	for _, pattern := range cfg.Export.Include {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			errs = append(errs, fmt.Errorf("%w: %q: %v", ErrInvalidIncludePattern, pattern, err))
		}
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}
