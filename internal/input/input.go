// Package input resolves command-line arguments into readable sources.
//
// An empty argument list, or the argument "-", selects standard input.
// Directory arguments are skipped with a warning rather than failing the run.
package input

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dr8co/prism/internal/logger"
	"github.com/dr8co/prism/internal/pathutil"
)

// StdinName is the argument and display name for standard input.
const StdinName = "-"

// Source is one input to read.
type Source struct {
	// Name is the path as given on the command line, or "-" for standard input.
	Name string

	stdin io.Reader
}

// IsStdin reports whether the source reads standard input.
func (s Source) IsStdin() bool { return s.stdin != nil }

// Open opens the source for reading. Closing a standard input source does
// not close the underlying reader.
func (s Source) Open() (io.ReadCloser, error) {
	if s.stdin != nil {
		return io.NopCloser(s.stdin), nil
	}
	f, err := os.Open(s.Name)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %s: %w", s.Name, err)
	}
	return f, nil
}

// ReadAll reads the whole source.
func (s Source) ReadAll() ([]byte, error) {
	rc, err := s.Open()
	if err != nil {
		return nil, err
	}
	defer func(rc io.ReadCloser) {
		_ = rc.Close()
	}(rc)

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", s.Name, err)
	}
	return data, nil
}

// Resolver turns arguments into sources.
type Resolver struct {
	// Stdin is read for the "-" argument. Nil means os.Stdin.
	Stdin io.Reader
}

// Resolve maps args to sources in order. Directories are logged and left out;
// their count is returned as skipped. Paths that do not exist are kept so the
// caller reports them when opening.
func (r *Resolver) Resolve(ctx context.Context, args []string) (sources []Source, skipped int) {
	stdin := r.Stdin
	if stdin == nil {
		stdin = os.Stdin
	}

	if len(args) == 0 {
		return []Source{{Name: StdinName, stdin: stdin}}, 0
	}

	sources = make([]Source, 0, len(args))
	for _, arg := range args {
		if arg == StdinName {
			sources = append(sources, Source{Name: StdinName, stdin: stdin})
			continue
		}
		if pathutil.IsDirectory(arg) {
			logger.WarnAttrs(ctx, arg+": Is a directory", slog.String("path", arg))
			skipped++
			continue
		}
		sources = append(sources, Source{Name: arg})
	}
	return sources, skipped
}
