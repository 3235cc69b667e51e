package config

import (
	"errors"
	"fmt"
	"runtime"
	"slices"
	"strings"

	"github.com/dr8co/prism/internal/checksum"
	"github.com/dr8co/prism/internal/jsonfmt"
)

// defaultValidator checks every section of the configuration.
type defaultValidator struct{}

const (
	maxWorkers = 64
	minWorkers = 1

	minWidth = 1
	maxWidth = 100000
)

var (
	validLogLevels     = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats    = []string{"text", "json", "pretty", "discard", "null"}
	validColorModes    = []string{"auto", "always", "never"}
	validOutputFormats = []string{"text", "tag", "json", "yaml"}
)

// Validate validates the configuration.
func (v *defaultValidator) Validate(config *Config) error {
	if err := v.validateLogConfig(&config.Log); err != nil {
		return fmt.Errorf("log config validation failed: %w", err)
	}

	if err := v.validateFormatConfig(&config.Format); err != nil {
		return fmt.Errorf("format config validation failed: %w", err)
	}

	if err := v.validateChecksumConfig(&config.Checksum); err != nil {
		return fmt.Errorf("checksum config validation failed: %w", err)
	}

	return nil
}

func (v *defaultValidator) validateLogConfig(config *LogConfig) error {
	if config.Level == "" {
		return errors.New("log level is required")
	}
	if !contains(validLogLevels, config.Level) {
		return fmt.Errorf("invalid log level: %s, must be one of %v", config.Level, validLogLevels)
	}

	if config.Format != "" && !contains(validLogFormats, config.Format) {
		return fmt.Errorf("invalid log format: %s, must be one of %v", config.Format, validLogFormats)
	}

	return nil
}

func (v *defaultValidator) validateFormatConfig(config *FormatConfig) error {
	if config.Width < minWidth || config.Width > maxWidth {
		return fmt.Errorf("width must be between %d and %d, got: %d", minWidth, maxWidth, config.Width)
	}

	if _, err := jsonfmt.ParseMode(config.Mode); err != nil {
		return err
	}

	if config.Color != "" && !contains(validColorModes, config.Color) {
		return fmt.Errorf("invalid color mode: %s, must be one of %v", config.Color, validColorModes)
	}

	return nil
}

func (v *defaultValidator) validateChecksumConfig(config *ChecksumConfig) error {
	if _, err := checksum.ParseAlgorithm(config.Algorithm); err != nil {
		return err
	}

	if config.OutputFormat != "" && !contains(validOutputFormats, config.OutputFormat) {
		return fmt.Errorf("invalid output format: %s, must be one of %v", config.OutputFormat, validOutputFormats)
	}

	limit := max(maxWorkers, runtime.NumCPU())
	if config.Workers < minWorkers {
		return fmt.Errorf("workers must be positive, got: %d", config.Workers)
	}
	if config.Workers > limit {
		return fmt.Errorf("workers too high: %d (max %d)", config.Workers, limit)
	}

	return nil
}

// contains reports whether item is in slice, ignoring case.
func contains(slice []string, item string) bool {
	return slices.ContainsFunc(slice, func(s string) bool {
		return strings.EqualFold(s, item)
	})
}
