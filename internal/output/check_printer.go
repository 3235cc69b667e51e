package output

import (
	"fmt"
	"io"

	"charm.land/lipgloss/v2"

	"github.com/dr8co/prism/internal/model"
)

var (
	okStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#00FF66"))            // green
	failedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3333")).Bold(true) // red
	warningStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FFD700"))            // gold
)

// CheckPrinter writes the outcome of a checksum verification.
//
// Result lines go to Out and the trailing warnings go to Err. Colors are
// downsampled to whatever each writer supports, so plain files and pipes
// receive unstyled text.
type CheckPrinter struct {
	Out io.Writer
	Err io.Writer

	// Quiet suppresses the lines of files that verified successfully.
	Quiet bool
}

// Print writes one "<path>: <status>" line per result followed by the
// coreutils-style warning summary.
func (p *CheckPrinter) Print(results []model.CheckResult, summary model.CheckSummary) error {
	for _, r := range results {
		if r.Status == model.CheckOK && p.Quiet {
			continue
		}

		style := failedStyle
		if r.Status == model.CheckOK {
			style = okStyle
		}
		prefix, name := escapeName(r.Path)
		if _, err := lipgloss.Fprintln(p.Out, prefix+name+": "+style.Render(string(r.Status))); err != nil {
			return err
		}
	}

	for _, w := range summaryWarnings(summary) {
		if _, err := lipgloss.Fprintln(p.Err, warningStyle.Render("WARNING: "+w)); err != nil {
			return err
		}
	}
	return nil
}

func summaryWarnings(s model.CheckSummary) []string {
	var warnings []string
	if s.Malformed > 0 {
		warnings = append(warnings, plural(s.Malformed, "line is", "lines are")+" improperly formatted")
	}
	if s.Unreadable > 0 {
		warnings = append(warnings, plural(s.Unreadable, "listed file", "listed files")+" could not be read")
	}
	if s.Failed > 0 {
		warnings = append(warnings, plural(s.Failed, "computed checksum", "computed checksums")+" did NOT match")
	}
	return warnings
}

func plural(n int, one, many string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, one)
	}
	return fmt.Sprintf("%d %s", n, many)
}
