package config

import (
	"errors"
	"testing"

	"github.com/dr8co/prism/internal/checksum"
)

func TestDefaultValidator(t *testing.T) {
	tests := []struct {
		name    string
		edit    func(c *Config)
		wantErr bool
	}{
		{name: "defaults", edit: func(*Config) {}},
		{name: "upper-case level", edit: func(c *Config) { c.Log.Level = "DEBUG" }},
		{name: "missing level", edit: func(c *Config) { c.Log.Level = "" }, wantErr: true},
		{name: "unknown level", edit: func(c *Config) { c.Log.Level = "trace" }, wantErr: true},
		{name: "text log format", edit: func(c *Config) { c.Log.Format = "text" }},
		{name: "unknown log format", edit: func(c *Config) { c.Log.Format = "xml" }, wantErr: true},
		{name: "zero width", edit: func(c *Config) { c.Format.Width = 0 }, wantErr: true},
		{name: "narrow width", edit: func(c *Config) { c.Format.Width = 1 }},
		{name: "unknown mode", edit: func(c *Config) { c.Format.Mode = "diagonal" }, wantErr: true},
		{name: "empty mode", edit: func(c *Config) { c.Format.Mode = "" }},
		{name: "unknown color", edit: func(c *Config) { c.Format.Color = "sometimes" }, wantErr: true},
		{name: "blake3", edit: func(c *Config) { c.Checksum.Algorithm = "blake3" }},
		{name: "unknown output format", edit: func(c *Config) { c.Checksum.OutputFormat = "csv" }, wantErr: true},
		{name: "no workers", edit: func(c *Config) { c.Checksum.Workers = 0 }, wantErr: true},
		{name: "too many workers", edit: func(c *Config) { c.Checksum.Workers = 1 << 20 }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.edit(cfg)

			err := (&defaultValidator{}).Validate(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestValidatorWrapsAlgorithmError(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Checksum.Algorithm = "crc32"

	err := (&defaultValidator{}).Validate(cfg)
	if !errors.Is(err, checksum.ErrUnknownAlgorithm) {
		t.Errorf("Validate() error = %v, want %v", err, checksum.ErrUnknownAlgorithm)
	}
}
