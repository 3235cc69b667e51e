package jsonfmt

import (
	"fmt"
	"strings"
)

// Mode selects how containers are laid out.
type Mode int

const (
	// ModeLayout keeps a container on one line when it fits the width budget
	// and expands it otherwise.
	ModeLayout Mode = iota

	// ModeExpanded expands every non-empty container.
	ModeExpanded

	// ModeCompact writes the whole value on one line.
	ModeCompact
)

var modeNames = map[Mode]string{
	ModeLayout:   "layout",
	ModeExpanded: "expanded",
	ModeCompact:  "compact",
}

// String returns the mode name.
func (m Mode) String() string {
	if s, ok := modeNames[m]; ok {
		return s
	}
	return fmt.Sprintf("Mode(%d)", int(m))
}

// ParseMode converts a mode name to a [Mode]. The empty string selects ModeLayout.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "layout", "auto":
		return ModeLayout, nil
	case "expanded", "expand", "pretty":
		return ModeExpanded, nil
	case "compact", "minify":
		return ModeCompact, nil
	default:
		return ModeLayout, fmt.Errorf("unknown mode %q (want layout, expanded or compact)", s)
	}
}
