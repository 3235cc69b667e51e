package output

import (
	"io"

	"github.com/goccy/go-json"

	"github.com/dr8co/prism/internal/model"
)

// JSONFormatter formats checksum reports as JSON.
type JSONFormatter struct{}

// NewJSONFormatter creates a new JSON formatter.
func NewJSONFormatter() *JSONFormatter {
	return &JSONFormatter{}
}

// Format writes the report as indented JSON to the writer.
func (f *JSONFormatter) Format(report *model.Report, w io.Writer) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(report)
}
