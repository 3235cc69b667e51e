package output

import (
	"bytes"
	"reflect"
	"strings"
	"testing"

	"github.com/goccy/go-json"

	"github.com/dr8co/prism/internal/model"
)

// TestJSONFormatter_Format checks that the output is valid JSON carrying the whole report.
func TestJSONFormatter_Format(t *testing.T) {
	report := sampleReport()

	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	var got model.Report
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("Output is not valid JSON: %v", err)
	}

	if got.Algorithm != report.Algorithm {
		t.Errorf("Algorithm = %q, want %q", got.Algorithm, report.Algorithm)
	}
	if !got.GeneratedAt.Equal(report.GeneratedAt) {
		t.Errorf("GeneratedAt = %v, want %v", got.GeneratedAt, report.GeneratedAt)
	}
	if !reflect.DeepEqual(got.Digests, report.Digests) {
		t.Errorf("Digests mismatch: got %v, want %v", got.Digests, report.Digests)
	}
	if got.Stats == nil || got.Stats.Bytes != report.Stats.Bytes || got.Stats.Duration != report.Stats.Duration {
		t.Errorf("Stats mismatch: got %+v, want %+v", got.Stats, report.Stats)
	}
}

func TestJSONFormatter_NoHTMLEscaping(t *testing.T) {
	report := &model.Report{
		Algorithm: "sha256",
		Digests:   []model.Digest{{Path: "a<b>&c.json", Digest: "00"}},
	}

	var buf bytes.Buffer
	if err := NewJSONFormatter().Format(report, &buf); err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if !strings.Contains(buf.String(), `"a<b>&c.json"`) {
		t.Errorf("path was escaped:\n%s", buf.String())
	}
}
