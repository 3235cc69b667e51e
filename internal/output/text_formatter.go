package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/dr8co/prism/internal/model"
)

// TextFormatter writes one "<hex>  <path>" line per digest, the format read
// by sha256sum --check.
type TextFormatter struct{}

// NewTextFormatter creates a new text formatter.
func NewTextFormatter() *TextFormatter {
	return &TextFormatter{}
}

// Format implements [ReportFormatter].
func (f *TextFormatter) Format(report *model.Report, w io.Writer) error {
	bw := bufio.NewWriter(w)
	for _, d := range report.Digests {
		prefix, name := escapeName(d.Path)
		if _, err := fmt.Fprintf(bw, "%s%s  %s\n", prefix, d.Digest, name); err != nil {
			return err
		}
	}
	return bw.Flush()
}

// TagFormatter writes BSD-style "SHA256 (<path>) = <hex>" lines.
type TagFormatter struct{}

// NewTagFormatter creates a new tag formatter.
func NewTagFormatter() *TagFormatter {
	return &TagFormatter{}
}

// Format implements [ReportFormatter].
func (f *TagFormatter) Format(report *model.Report, w io.Writer) error {
	tag := strings.ToUpper(report.Algorithm)

	bw := bufio.NewWriter(w)
	for _, d := range report.Digests {
		prefix, name := escapeName(d.Path)
		if _, err := fmt.Fprintf(bw, "%s%s (%s) = %s\n", prefix, tag, name, d.Digest); err != nil {
			return err
		}
	}
	return bw.Flush()
}

var nameEscaper = strings.NewReplacer(`\`, `\\`, "\n", `\n`, "\r", `\r`)

// escapeName follows the coreutils convention: a name holding a backslash or
// line break is escaped and the whole line is prefixed with a backslash.
func escapeName(name string) (prefix, escaped string) {
	if !strings.ContainsAny(name, "\\\n\r") {
		return "", name
	}
	return `\`, nameEscaper.Replace(name)
}
