package config

import (
	"context"
	"os"
	"strconv"
	"strings"
)

// EnvProvider provides configuration from environment variables named
// <prefix><SECTION>_<KEY>, for example PRISM_FORMAT_WIDTH.
type EnvProvider struct {
	prefix   string
	priority int
}

// NewEnvProvider creates a new environment provider.
func NewEnvProvider(prefix string, priority int) *EnvProvider {
	return &EnvProvider{
		prefix:   prefix,
		priority: priority,
	}
}

// Name returns the provider name.
func (p *EnvProvider) Name() string {
	return "env:" + p.prefix
}

// Priority returns the provider priority.
func (p *EnvProvider) Priority() int {
	return p.priority
}

// Load loads configuration from the environment.
func (p *EnvProvider) Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	config := &Config{}

	p.loadString("LOG_LEVEL", &config.Log.Level)
	p.loadString("LOG_FORMAT", &config.Log.Format)
	p.loadString("LOG_OUTPUT", &config.Log.Output)

	p.loadInt("FORMAT_WIDTH", &config.Format.Width)
	p.loadString("FORMAT_MODE", &config.Format.Mode)
	p.loadString("FORMAT_COLOR", &config.Format.Color)

	p.loadString("CHECKSUM_ALGORITHM", &config.Checksum.Algorithm)
	p.loadString("CHECKSUM_OUTPUT_FORMAT", &config.Checksum.OutputFormat)
	p.loadBool("CHECKSUM_PROGRESS", &config.Checksum.Progress)
	p.loadInt("CHECKSUM_WORKERS", &config.Checksum.Workers)

	return config, nil
}

func (p *EnvProvider) loadString(key string, target *string) {
	if value := os.Getenv(p.prefix + key); value != "" {
		*target = value
	}
}

// loadInt ignores values that are not integers.
func (p *EnvProvider) loadInt(key string, target *int) {
	if value := os.Getenv(p.prefix + key); value != "" {
		if parsed, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			*target = parsed
		}
	}
}

func (p *EnvProvider) loadBool(key string, target **bool) {
	if value := os.Getenv(p.prefix + key); value != "" {
		var b bool
		switch strings.ToLower(strings.TrimSpace(value)) {
		case "1", "true", "yes", "on":
			b = true
		case "0", "false", "no", "off":
			b = false
		default:
			return
		}
		*target = &b
	}
}
