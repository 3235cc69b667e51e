package config

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/goccy/go-json"
	"gopkg.in/yaml.v3"
)

// decoder unmarshals one configuration file format.
type decoder struct {
	name      string
	unmarshal func(data []byte, v any) error
}

var (
	tomlDecoder = decoder{name: "TOML", unmarshal: toml.Unmarshal}
	yamlDecoder = decoder{name: "YAML", unmarshal: yaml.Unmarshal}
	jsonDecoder = decoder{name: "JSON", unmarshal: json.Unmarshal}
)

// decoders maps file extensions to formats. Anything else is read as TOML.
var decoders = map[string]decoder{
	".toml": tomlDecoder,
	".yaml": yamlDecoder,
	".yml":  yamlDecoder,
	".json": jsonDecoder,
}

// FileProvider reads configuration from a TOML, YAML or JSON file.
type FileProvider struct {
	path     string
	decoder  decoder
	priority int
}

// NewFileProvider creates a provider for path, choosing the format from the
// file extension. The path is expected to be sanitized.
func NewFileProvider(path string, priority int) *FileProvider {
	d, ok := decoders[strings.ToLower(filepath.Ext(path))]
	if !ok {
		d = tomlDecoder
	}
	return &FileProvider{path: path, decoder: d, priority: priority}
}

func (p *FileProvider) Name() string { return "file:" + p.path }

func (p *FileProvider) Priority() int { return p.priority }

// Load decodes the file. A missing file yields an empty configuration.
func (p *FileProvider) Load(ctx context.Context) (*Config, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(p.path)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return &Config{}, nil
	case err != nil:
		return nil, fmt.Errorf("failed to read file %s: %w", p.path, err)
	}

	cfg := &Config{}
	if err := p.decoder.unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode %s %s: %w", p.decoder.name, p.path, err)
	}
	return cfg, nil
}
