package model

// CheckStatus is the outcome of verifying one checksum list entry.
type CheckStatus string

const (
	CheckOK         CheckStatus = "OK"
	CheckFailed     CheckStatus = "FAILED"
	CheckUnreadable CheckStatus = "FAILED open or read"
)

// CheckResult is the verification outcome for one listed file.
type CheckResult struct {
	Path     string      `json:"path" yaml:"path"`
	Status   CheckStatus `json:"status" yaml:"status"`
	Expected string      `json:"expected" yaml:"expected"`
	Actual   string      `json:"actual,omitempty" yaml:"actual,omitempty"`
	Err      error       `json:"-" yaml:"-"`
}

// CheckSummary counts the outcomes of a verification run.
type CheckSummary struct {
	Listed     int `json:"listed" yaml:"listed"`
	Failed     int `json:"failed" yaml:"failed"`
	Unreadable int `json:"unreadable" yaml:"unreadable"`
	Malformed  int `json:"malformed" yaml:"malformed"`
}

// OK reports whether every listed file matched and every line was well formed.
func (s CheckSummary) OK() bool {
	return s.Failed == 0 && s.Unreadable == 0 && s.Malformed == 0
}

// Add records r in the summary.
func (s *CheckSummary) Add(r CheckResult) {
	s.Listed++
	switch r.Status {
	case CheckFailed:
		s.Failed++
	case CheckUnreadable:
		s.Unreadable++
	}
}
