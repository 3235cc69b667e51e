package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"testing"

	"github.com/urfave/cli/v3"

	"github.com/dr8co/prism/internal/config"
	"github.com/dr8co/prism/internal/logger"
)

// result holds everything one command run produced.
type result struct {
	stdout string
	stderr string
	logs   string
	err    error
}

var ansi = regexp.MustCompile("\x1b\\[[0-9;]*m")

// run executes the prism root command with the given standard input and
// arguments, capturing its writers and the default logger.
func run(t *testing.T, stdin string, args ...string) result {
	t.Helper()

	var logs bytes.Buffer
	l, err := logger.New(logger.Config{Level: "info", Format: "text", Writer: &logs})
	if err != nil {
		t.Fatal(err)
	}
	prev := logger.GetDefault()
	if err := logger.SetDefault(l); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = logger.SetDefault(prev) })

	cfg := config.DefaultConfig()
	var stdout, stderr bytes.Buffer
	app := &cli.Command{
		Name:      "prism",
		Usage:     "Format JSON and compute checksums",
		Reader:    strings.NewReader(stdin),
		Writer:    &stdout,
		ErrWriter: &stderr,
		Commands: []*cli.Command{
			FormatCommand(&cfg.Format),
			ChecksumCommand(&cfg.Checksum),
			ManCommand(),
		},
	}

	err = app.Run(context.Background(), append([]string{"prism"}, args...))
	return result{
		stdout: stdout.String(),
		stderr: ansi.ReplaceAllString(stderr.String(), ""),
		logs:   logs.String(),
		err:    err,
	}
}

// writeFile creates dir/name with content and returns its path.
func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()

	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}
