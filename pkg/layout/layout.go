// Package layout is the public entry point to prism's width-aware JSON
// formatter for programs that want the layout without the CLI.
package layout

import (
	"github.com/dr8co/prism/internal/jsonfmt"
)

// Errors returned by the formatter.
var (
	ErrDepthExceeded   = jsonfmt.ErrDepthExceeded
	ErrUnsupportedType = jsonfmt.ErrUnsupportedType
	ErrTrailingData    = jsonfmt.ErrTrailingData
	ErrSyntax          = jsonfmt.ErrSyntax
)

// Options control a layout. The zero value selects the defaults: a width of
// 80 columns and the width-aware mode.
type Options struct {
	// Width is the column budget for single-line containers.
	Width int

	// Mode is "layout", "expanded" or "compact".
	Mode string
}

// Format renders a decoded JSON value (nil, bool, number, string, []any or
// map[string]any) at the given indentation level with the default options.
func Format(v any, level int) (string, error) {
	return jsonfmt.Format(v, level)
}

// FormatJSON parses a single JSON document and renders it with opts.
func FormatJSON(data []byte, opts Options) (string, error) {
	f, err := opts.formatter()
	if err != nil {
		return "", err
	}

	v, err := jsonfmt.DecodeBytes(data)
	if err != nil {
		return "", err
	}
	return f.Format(v, 0)
}

func (o Options) formatter() (*jsonfmt.Formatter, error) {
	f := *jsonfmt.Default
	if o.Width > 0 {
		f.Width = o.Width
	}
	if o.Mode != "" {
		mode, err := jsonfmt.ParseMode(o.Mode)
		if err != nil {
			return nil, err
		}
		f.Mode = mode
	}
	return &f, nil
}
