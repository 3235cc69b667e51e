package output

import (
	"bytes"
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/dr8co/prism/internal/model"
)

// sampleReport returns a report with two digests, one of them for standard input.
func sampleReport() *model.Report {
	start := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	return &model.Report{
		Algorithm:   "sha256",
		GeneratedAt: start.Add(time.Second),
		Stats: &model.Stats{
			Inputs:    2,
			Processed: 2,
			Bytes:     11,
			StartTime: start,
			Duration:  3 * time.Millisecond,
		},
		Digests: []model.Digest{
			{Path: "testdata/a.json", Digest: "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824", Size: 5},
			{Path: "-", Digest: "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855", Size: 6},
		},
	}
}

// TestFormatBytes tests the FormatBytes function to ensure it correctly converts byte counts into human-readable formats.
func TestFormatBytes(t *testing.T) {
	tests := []struct {
		name     string
		bytes    int64
		expected string
	}{
		{name: "zero bytes", bytes: 0, expected: "0 B"},
		{name: "bytes", bytes: 500, expected: "500 B"},
		{name: "kilobytes", bytes: 1500, expected: "1.5 KB"},
		{name: "megabytes", bytes: 1500000, expected: "1.4 MB"},
		{name: "gigabytes", bytes: 1 << 30, expected: "1.0 GB"},
		{name: "exabytes", bytes: 1500000000000000000, expected: "1.3 EB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := FormatBytes(tt.bytes)
			if result != tt.expected {
				t.Errorf("FormatBytes(%d) = %s, want %s", tt.bytes, result, tt.expected)
			}
		})
	}
}

func TestRegistry(t *testing.T) {
	registry, err := InitFormatters()
	if err != nil {
		t.Fatalf("InitFormatters() error = %v", err)
	}

	want := []string{"json", "tag", "text", "yaml"}
	if got := registry.List(); !reflect.DeepEqual(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}

	if _, ok := registry.Get("text"); !ok {
		t.Error("Get(text) not found")
	}

	err = registry.Format("xml", sampleReport(), &bytes.Buffer{})
	if !errors.Is(err, ErrUnknownFormat) {
		t.Errorf("Format(xml) error = %v, want %v", err, ErrUnknownFormat)
	}

	if err := registry.Register("", NewTextFormatter()); err == nil {
		t.Error("Register with empty name succeeded")
	}
	if err := registry.Register("nil", nil); err == nil {
		t.Error("Register with nil formatter succeeded")
	}
}

func TestTextFormatter_Format(t *testing.T) {
	var buf bytes.Buffer
	if err := NewTextFormatter().Format(sampleReport(), &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824  testdata/a.json\n" +
		"e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855  -\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestTagFormatter_Format(t *testing.T) {
	report := sampleReport()
	report.Algorithm = "blake3"

	var buf bytes.Buffer
	if err := NewTagFormatter().Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	want := "BLAKE3 (testdata/a.json) = 2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824\n" +
		"BLAKE3 (-) = e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855\n"
	if got := buf.String(); got != want {
		t.Errorf("Format() =\n%s\nwant\n%s", got, want)
	}
}

func TestEscapeName(t *testing.T) {
	tests := []struct {
		name       string
		in         string
		wantPrefix string
		want       string
	}{
		{name: "plain", in: "dir/file.json", want: "dir/file.json"},
		{name: "spaces untouched", in: "my file.json", want: "my file.json"},
		{name: "backslash", in: `a\b`, wantPrefix: `\`, want: `a\\b`},
		{name: "newline", in: "a\nb", wantPrefix: `\`, want: `a\nb`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prefix, got := escapeName(tt.in)
			if prefix != tt.wantPrefix || got != tt.want {
				t.Errorf("escapeName(%q) = (%q, %q), want (%q, %q)", tt.in, prefix, got, tt.wantPrefix, tt.want)
			}
		})
	}
}
