// Package config provides a streamlined, extensible configuration management system.
// It supports multiple configuration sources with priority-based merging and validation.
//
// The default configuration sources include environment variables (prefixed
// with PRISM_) and configuration files in the following formats:
//   - TOML
//   - JSON
//   - YAML
//
// Configuration is loaded from multiple providers, merged based on priority, and validated before use.
// Custom providers, validators, and mergers can be plugged into a [Loader].
//
// Note: initialization of the package-global loader is performed in
// `init()` within `config.go`. For explicit/custom loading use a
// `NewLoader()` instance.
package config

import (
	"context"
	"os"
	"path/filepath"
	"runtime"

	"github.com/dr8co/prism/internal/logger"
)

// EnvPrefix is the prefix of environment variables read by the default loader.
const EnvPrefix = "PRISM_"

// Config represents the application configuration structure.
type Config struct {
	// Log holds the logging configuration.
	Log LogConfig `toml:"log" yaml:"log" json:"log"`

	// Format holds the 'format' command configuration.
	Format FormatConfig `toml:"format" yaml:"format" json:"format"`

	// Checksum holds the 'checksum' command configuration.
	Checksum ChecksumConfig `toml:"checksum" yaml:"checksum" json:"checksum"`
}

// LogConfig holds the logging configuration.
type LogConfig struct {
	// Level sets the logging level (e.g., "debug", "info", "warn", "error").
	Level string `toml:"level" yaml:"level" json:"level"`

	// Format sets the logging format (e.g., "text", "json", "pretty", "discard").
	Format string `toml:"format" yaml:"format" json:"format"`

	// Output sets the logging output (e.g., "stdout", "stderr", "null", or file path).
	Output string `toml:"output" yaml:"output" json:"output"`
}

// FormatConfig holds configuration for the 'format' command.
type FormatConfig struct {
	// Width is the column budget for single-line rendering.
	Width int `toml:"width" yaml:"width" json:"width"`

	// Mode is the layout policy: "layout", "expanded" or "compact".
	Mode string `toml:"mode" yaml:"mode" json:"mode"`

	// Color controls token coloring: "auto", "always" or "never".
	Color string `toml:"color" yaml:"color" json:"color"`
}

// ChecksumConfig holds configuration for the 'checksum' command.
type ChecksumConfig struct {
	// Algorithm is the digest function (e.g., "sha256", "blake3").
	Algorithm string `toml:"algorithm" yaml:"algorithm" json:"algorithm"`

	// OutputFormat sets the report format: "text", "tag", "json" or "yaml".
	OutputFormat string `toml:"output_format" yaml:"output_format" json:"output_format"`

	// Progress shows a spinner on stderr while hashing. Nil means unset,
	// so an explicit false from a later source still wins.
	Progress *bool `toml:"progress" yaml:"progress" json:"progress"`

	// Workers sets the number of inputs hashed concurrently.
	// Default is the number of CPU cores.
	Workers int `toml:"workers" yaml:"workers" json:"workers"`
}

// ShowProgress reports whether the progress spinner is enabled.
func (c *ChecksumConfig) ShowProgress() bool {
	return c.Progress != nil && *c.Progress
}

// Provider defines the interface for configuration providers.
type Provider interface {
	// Name returns the provider name for identification.
	Name() string

	// Priority returns the provider priority (higher numbers = higher priority).
	Priority() int

	// Load loads configuration from the provider.
	Load(ctx context.Context) (*Config, error)
}

// Validator defines the interface for configuration validation.
type Validator interface {
	Validate(config *Config) error
}

// Merger defines the interface for custom configuration merging.
type Merger interface {
	Merge(base, override *Config) *Config
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Log: LogConfig{
			Level:  "info",
			Format: "pretty",
			Output: "stderr",
		},
		Format: FormatConfig{
			Width: 80,
			Mode:  "layout",
			Color: "auto",
		},
		Checksum: ChecksumConfig{
			Algorithm:    "sha256",
			OutputFormat: "text",
			Workers:      runtime.NumCPU(),
		},
	}
}

// Dir returns the directory searched for config.{toml,json,yaml}.
func Dir() string {
	configDir, err := os.UserConfigDir()
	if err != nil {
		configDir = os.TempDir()
	}
	return filepath.Join(configDir, "prism")
}

func init() {
	var err error
	if globalLoader, err = createLoader(Dir()); err != nil {
		logger.Error("Failed to initialize configuration", "error", err)
	}
}
