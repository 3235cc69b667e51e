package output

import (
	"io"

	"gopkg.in/yaml.v3"

	"github.com/dr8co/prism/internal/model"
)

// YAMLFormatter formats checksum reports as YAML.
type YAMLFormatter struct{}

// NewYAMLFormatter creates a new YAML formatter.
func NewYAMLFormatter() *YAMLFormatter {
	return &YAMLFormatter{}
}

// Format writes the report as YAML to the writer.
func (f *YAMLFormatter) Format(report *model.Report, w io.Writer) error {
	encoder := yaml.NewEncoder(w)
	encoder.SetIndent(2)
	if err := encoder.Encode(report); err != nil {
		_ = encoder.Close()
		return err
	}
	return encoder.Close()
}
