// Package output renders checksum reports and verification results.
package output

import (
	"errors"
	"fmt"
	"io"
	"slices"

	"github.com/dr8co/prism/internal/model"
)

// ErrUnknownFormat is returned when no formatter is registered under a name.
var ErrUnknownFormat = errors.New("unknown output format")

// ReportFormatter writes a checksum report in one output format.
type ReportFormatter interface {
	Format(report *model.Report, w io.Writer) error
}

// Registry manages available report formatters.
type Registry struct {
	formatters map[string]ReportFormatter
}

// NewRegistry creates an empty Registry.
func NewRegistry() *Registry {
	return &Registry{
		formatters: make(map[string]ReportFormatter),
	}
}

// Register adds a new formatter to the registry
func (r *Registry) Register(name string, formatter ReportFormatter) error {
	if name == "" {
		return errors.New("formatter name cannot be empty")
	}
	if formatter == nil {
		return errors.New("formatter cannot be nil")
	}
	r.formatters[name] = formatter
	return nil
}

// Get retrieves a formatter by name from the registry
func (r *Registry) Get(name string) (ReportFormatter, bool) {
	formatter, exists := r.formatters[name]
	return formatter, exists
}

// List returns the registered formatter names in sorted order.
func (r *Registry) List() []string {
	names := make([]string, 0, len(r.formatters))
	for name := range r.formatters {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Format writes report with the named formatter.
func (r *Registry) Format(name string, report *model.Report, w io.Writer) error {
	formatter, exists := r.formatters[name]
	if !exists {
		return fmt.Errorf("%w: %q (want one of %v)", ErrUnknownFormat, name, r.List())
	}
	return formatter.Format(report, w)
}

// InitFormatters returns a registry holding the text, tag, json and yaml formatters.
func InitFormatters() (*Registry, error) {
	registry := NewRegistry()

	for name, f := range map[string]ReportFormatter{
		"text": NewTextFormatter(),
		"tag":  NewTagFormatter(),
		"json": NewJSONFormatter(),
		"yaml": NewYAMLFormatter(),
	} {
		if err := registry.Register(name, f); err != nil {
			return nil, err
		}
	}
	return registry, nil
}

// FormatBytes converts a byte count to a human-readable string
func FormatBytes(bytes int64) string {
	const unit = 1024
	if bytes < unit {
		return fmt.Sprintf("%d B", bytes)
	}
	div, exp := int64(unit), 0
	for n := bytes / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(bytes)/float64(div), "KMGTPE"[exp])
}
