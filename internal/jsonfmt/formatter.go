// Package jsonfmt renders parsed JSON values as text.
//
// The layout formatter decides, at every nesting level, whether a value is
// printed on a single line or expanded one element per line. A value stays on
// one line when its compact rendering plus the current indentation fits in the
// width budget; otherwise containers are expanded and each child is evaluated
// again at the deeper indentation. Scalars are never split.
//
// Values follow the shape produced by [Decode]: nil, bool, json.Number, string,
// []any and map[string]any. Object keys are written in sorted order.
package jsonfmt

import (
	"errors"
	"fmt"
	"strings"
)

const (
	// DefaultWidth is the column budget used to decide between compact and
	// expanded rendering.
	DefaultWidth = 80

	// DefaultIndentWidth is the number of spaces per nesting level.
	DefaultIndentWidth = 2

	// DefaultMaxDepth bounds container nesting.
	DefaultMaxDepth = 10000
)

var (
	// ErrDepthExceeded is returned when a value nests deeper than the formatter's MaxDepth.
	ErrDepthExceeded = errors.New("maximum nesting depth exceeded")

	// ErrUnsupportedType is returned when a value holds a Go type outside the JSON value model.
	ErrUnsupportedType = errors.New("unsupported value type")
)

// Default is the formatter used by the package-level [Format] function.
var Default = &Formatter{
	Width:       DefaultWidth,
	IndentWidth: DefaultIndentWidth,
	MaxDepth:    DefaultMaxDepth,
	Mode:        ModeLayout,
}

// Formatter holds the layout parameters. A Formatter is never modified by
// formatting, so one value can be shared between goroutines.
type Formatter struct {
	// Width is the column budget. Indentation counts against it.
	Width int

	// IndentWidth is the number of spaces added per nesting level.
	IndentWidth int

	// MaxDepth limits container nesting. Zero or less disables the check.
	MaxDepth int

	// Mode selects the layout policy.
	Mode Mode
}

// Format renders v at the given indentation level using [Default].
func Format(v any, level int) (string, error) {
	return Default.Format(v, level)
}

// Format renders v at the given indentation level. The level only affects the
// width budget and the indentation of nested lines; the first line is never
// indented, so callers place the result after their own prefix.
func (f *Formatter) Format(v any, level int) (string, error) {
	return f.render(v, level, nil)
}

// FormatPainted is like Format but passes every token through p before it is
// written. Layout decisions are made on the unpainted text, so the line
// structure is identical to Format.
func (f *Formatter) FormatPainted(v any, level int, p Painter) (string, error) {
	return f.render(v, level, p)
}

func (f *Formatter) render(v any, level int, p Painter) (string, error) {
	if level < 0 {
		return "", fmt.Errorf("negative indentation level %d", level)
	}
	r := &renderer{f: f, p: p}
	return r.format(v, level, 0)
}

// renderer carries the per-call painter through the recursion.
type renderer struct {
	f *Formatter
	p Painter
}

func (r *renderer) format(v any, level, depth int) (string, error) {
	compact, err := r.f.compact(v, depth, nil)
	if err != nil {
		return "", err
	}

	indentWidth := level * r.f.IndentWidth
	if r.f.fits(v, indentWidth, len(compact)) {
		if r.p == nil {
			return compact, nil
		}
		return r.f.compact(v, depth, r.p)
	}

	switch val := v.(type) {
	case []any:
		if len(val) == 0 {
			return paint(r.p, TokenDelim, "[]"), nil
		}
		return r.expandArray(val, level, depth)
	case map[string]any:
		if len(val) == 0 {
			return paint(r.p, TokenDelim, "{}"), nil
		}
		return r.expandObject(val, level, depth)
	default:
		if r.p == nil {
			return compact, nil
		}
		return r.f.compact(v, depth, r.p)
	}
}

func (r *renderer) expandArray(arr []any, level, depth int) (string, error) {
	childIndent := strings.Repeat(" ", (level+1)*r.f.IndentWidth)

	var b strings.Builder
	b.WriteString(paint(r.p, TokenDelim, "["))
	b.WriteByte('\n')
	for i, item := range arr {
		s, err := r.format(item, level+1, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString(childIndent)
		b.WriteString(s)
		if i < len(arr)-1 {
			b.WriteString(paint(r.p, TokenPunct, ","))
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", level*r.f.IndentWidth))
	b.WriteString(paint(r.p, TokenDelim, "]"))
	return b.String(), nil
}

func (r *renderer) expandObject(obj map[string]any, level, depth int) (string, error) {
	childIndent := strings.Repeat(" ", (level+1)*r.f.IndentWidth)
	keys := sortedKeys(obj)

	var b strings.Builder
	b.WriteString(paint(r.p, TokenDelim, "{"))
	b.WriteByte('\n')
	for i, k := range keys {
		key, err := quote(k)
		if err != nil {
			return "", err
		}
		s, err := r.format(obj[k], level+1, depth+1)
		if err != nil {
			return "", err
		}
		b.WriteString(childIndent)
		b.WriteString(paint(r.p, TokenKey, key))
		b.WriteString(paint(r.p, TokenPunct, ":"))
		b.WriteByte(' ')
		b.WriteString(s)
		if i < len(keys)-1 {
			b.WriteString(paint(r.p, TokenPunct, ","))
		}
		b.WriteByte('\n')
	}
	b.WriteString(strings.Repeat(" ", level*r.f.IndentWidth))
	b.WriteString(paint(r.p, TokenDelim, "}"))
	return b.String(), nil
}

// fits reports whether a value whose compact form is n bytes long stays on one
// line at the given indentation.
func (f *Formatter) fits(v any, indentWidth, n int) bool {
	switch f.Mode {
	case ModeCompact:
		return true
	case ModeExpanded:
		return !isContainer(v)
	default:
		return indentWidth+n <= f.Width
	}
}

func isContainer(v any) bool {
	switch v.(type) {
	case []any, map[string]any:
		return true
	}
	return false
}
