package jsonfmt

import (
	"bytes"
	"fmt"
	"math"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-json"
)

// Compact renders v on a single line with no insignificant whitespace.
func Compact(v any) (string, error) {
	return Default.compact(v, 0, nil)
}

// compact renders v without whitespace. depth is the nesting depth of v
// relative to the value passed to Format.
func (f *Formatter) compact(v any, depth int, p Painter) (string, error) {
	var b strings.Builder
	if err := f.writeCompact(&b, v, depth, p); err != nil {
		return "", err
	}
	return b.String(), nil
}

func (f *Formatter) writeCompact(b *strings.Builder, v any, depth int, p Painter) error {
	if f.MaxDepth > 0 && depth > f.MaxDepth {
		return fmt.Errorf("%w: %d", ErrDepthExceeded, f.MaxDepth)
	}

	switch val := v.(type) {
	case nil:
		b.WriteString(paint(p, TokenNull, "null"))
	case bool:
		b.WriteString(paint(p, TokenBool, strconv.FormatBool(val)))
	case json.Number:
		if val == "" {
			return fmt.Errorf("%w: empty number", ErrUnsupportedType)
		}
		b.WriteString(paint(p, TokenNumber, val.String()))
	case float64:
		s, err := formatFloat(val)
		if err != nil {
			return err
		}
		b.WriteString(paint(p, TokenNumber, s))
	case int:
		b.WriteString(paint(p, TokenNumber, strconv.Itoa(val)))
	case int64:
		b.WriteString(paint(p, TokenNumber, strconv.FormatInt(val, 10)))
	case uint64:
		b.WriteString(paint(p, TokenNumber, strconv.FormatUint(val, 10)))
	case string:
		s, err := quote(val)
		if err != nil {
			return err
		}
		b.WriteString(paint(p, TokenString, s))
	case []any:
		b.WriteString(paint(p, TokenDelim, "["))
		for i, item := range val {
			if i > 0 {
				b.WriteString(paint(p, TokenPunct, ","))
			}
			if err := f.writeCompact(b, item, depth+1, p); err != nil {
				return err
			}
		}
		b.WriteString(paint(p, TokenDelim, "]"))
	case map[string]any:
		b.WriteString(paint(p, TokenDelim, "{"))
		for i, k := range sortedKeys(val) {
			if i > 0 {
				b.WriteString(paint(p, TokenPunct, ","))
			}
			key, err := quote(k)
			if err != nil {
				return err
			}
			b.WriteString(paint(p, TokenKey, key))
			b.WriteString(paint(p, TokenPunct, ":"))
			if err := f.writeCompact(b, val[k], depth+1, p); err != nil {
				return err
			}
		}
		b.WriteString(paint(p, TokenDelim, "}"))
	default:
		return fmt.Errorf("%w: %T", ErrUnsupportedType, v)
	}
	return nil
}

// quote encodes s as a JSON string literal. HTML characters are left alone.
func quote(s string) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s); err != nil {
		return "", fmt.Errorf("encoding string: %w", err)
	}
	return string(bytes.TrimSuffix(buf.Bytes(), []byte{'\n'})), nil
}

// formatFloat renders f the way encoding/json does for float64 values.
func formatFloat(f float64) (string, error) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "", fmt.Errorf("%w: %v is not representable in JSON", ErrUnsupportedType, f)
	}
	abs := math.Abs(f)
	format := byte('f')
	if abs != 0 && (abs < 1e-6 || abs >= 1e21) {
		format = 'e'
	}
	s := strconv.FormatFloat(f, format, -1, 64)
	if format == 'e' {
		// clean up e-09 to e-9
		n := len(s)
		if n >= 4 && s[n-4] == 'e' && s[n-3] == '-' && s[n-2] == '0' {
			s = s[:n-2] + s[n-1:]
		}
	}
	return s, nil
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}
