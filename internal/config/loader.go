package config

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/dr8co/prism/internal/logger"
)

// LoaderOptions configure a [Loader].
type LoaderOptions struct {
	Validator Validator
	Merger    Merger

	// Timeout bounds a whole Load call. Zero disables it.
	Timeout time.Duration
}

// LoaderOption is a functional option for configuring the loader.
type LoaderOption func(*LoaderOptions)

// Loader merges configuration from providers ordered by priority.
type Loader struct {
	mu        sync.RWMutex
	providers []Provider // highest priority first
	options   LoaderOptions
}

const defaultTimeout = 3 * time.Second

// globalLoader backs [Load]. It is nil when the configuration directory
// could not be read at startup.
var globalLoader *Loader

// NewLoader creates a loader with the default validator and merger.
func NewLoader(opts ...LoaderOption) *Loader {
	l := &Loader{
		options: LoaderOptions{
			Validator: &defaultValidator{},
			Merger:    &defaultMerger{},
			Timeout:   defaultTimeout,
		},
	}
	for _, opt := range opts {
		opt(&l.options)
	}
	return l
}

// WithValidator sets a custom validator.
func WithValidator(v Validator) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Validator = v
	}
}

// WithMerger sets a custom merger.
func WithMerger(m Merger) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Merger = m
	}
}

// WithTimeout sets the operation timeout.
func WithTimeout(timeout time.Duration) LoaderOption {
	return func(opts *LoaderOptions) {
		opts.Timeout = timeout
	}
}

// AddProvider adds a configuration provider.
func (l *Loader) AddProvider(provider Provider) {
	l.mu.Lock()
	defer l.mu.Unlock()

	// Keep providers sorted by priority, highest first.
	i := slices.IndexFunc(l.providers, func(p Provider) bool {
		return provider.Priority() > p.Priority()
	})
	if i < 0 {
		i = len(l.providers)
	}
	l.providers = slices.Insert(l.providers, i, provider)
}

// Load merges every provider over [DefaultConfig], lowest priority first,
// and validates the result. A failing provider is skipped; its error is
// returned alongside the merged configuration.
func (l *Loader) Load(ctx context.Context) (*Config, error) {
	if l.options.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.options.Timeout)
		defer cancel()
	}

	l.mu.RLock()
	providers := slices.Clone(l.providers)
	l.mu.RUnlock()

	merged := DefaultConfig()
	var errs []error
	for _, p := range slices.Backward(providers) {
		cfg, err := p.Load(ctx)
		if err != nil {
			logger.Debug("config provider failed", "provider", p.Name(), "error", err)
			errs = append(errs, fmt.Errorf("provider %s: %w", p.Name(), err))
			continue
		}
		if cfg != nil {
			merged = l.options.Merger.Merge(merged, cfg)
		}
	}

	if err := l.options.Validator.Validate(merged); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}
	if len(errs) > 0 {
		return merged, fmt.Errorf("some providers failed to load: %w", errors.Join(errs...))
	}
	return merged, nil
}

// configFiles lists the files read from the configuration directory, lowest
// priority first.
var configFiles = []string{"config.yaml", "config.toml", "config.json"}

// createLoader creates a loader over configFiles in configDir plus PRISM_*
// environment variables, which override every file.
func createLoader(configDir string) (*Loader, error) {
	loader := NewLoader()
	for i, name := range configFiles {
		loader.AddProvider(NewFileProvider(filepath.Join(configDir, name), (i+1)*10))
	}
	loader.AddProvider(NewEnvProvider(EnvPrefix, (len(configFiles)+1)*10))

	// Fail early on a broken file rather than on first use.
	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	if _, err := loader.Load(ctx); err != nil {
		return nil, err
	}
	return loader, nil
}

// Load reloads the configuration from the user configuration directory and
// the environment.
func Load() (*Config, error) {
	if globalLoader == nil {
		return nil, errors.New("configuration not initialized")
	}

	ctx, cancel := context.WithTimeout(context.Background(), defaultTimeout)
	defer cancel()
	return globalLoader.Load(ctx)
}

// LoadFile loads configuration from an explicit file, with PRISM_* environment
// variables still taking precedence.
func LoadFile(ctx context.Context, path string) (*Config, error) {
	loader := NewLoader(WithTimeout(2 * time.Second))
	loader.AddProvider(NewFileProvider(path, 10))
	loader.AddProvider(NewEnvProvider(EnvPrefix, 100))
	return loader.Load(ctx)
}
