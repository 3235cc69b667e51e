package jsonfmt

import (
	"bytes"
	stdjson "encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/goccy/go-json"
)

var (
	// ErrTrailingData is returned by [Decode] when the input holds more than one value.
	ErrTrailingData = errors.New("trailing data after JSON value")

	// ErrSyntax is returned for input that is not valid JSON text.
	ErrSyntax = errors.New("invalid JSON")
)

// Decode reads exactly one JSON value from r. Numbers are kept as json.Number
// so their text survives formatting unchanged.
func Decode(r io.Reader) (any, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, err
	}
	return DecodeBytes(data)
}

// DecodeBytes is like [Decode] for an in-memory document.
func DecodeBytes(data []byte) (any, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, fmt.Errorf("empty input: %w", io.ErrUnexpectedEOF)
	}

	r := bytes.NewReader(data)
	dec := json.NewDecoder(r)
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("truncated input: %w", io.ErrUnexpectedEOF)
		}
		return nil, err
	}

	rest, err := io.ReadAll(io.MultiReader(dec.Buffered(), r))
	if err != nil {
		return nil, err
	}
	if len(bytes.TrimSpace(rest)) > 0 {
		return nil, ErrTrailingData
	}

	// The decoder above accepts truncated literals ("tru") and numbers
	// with leading zeros ("01").
	if err := validate(data); err != nil {
		return nil, err
	}
	return v, nil
}

// validate checks data against the strict RFC 8259 grammar.
func validate(data []byte) error {
	if stdjson.Valid(data) {
		return nil
	}
	var raw stdjson.RawMessage
	if err := stdjson.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("%w: %w", ErrSyntax, err)
	}
	return ErrSyntax
}
