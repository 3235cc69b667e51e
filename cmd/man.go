package cmd

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	docs "github.com/urfave/cli-docs/v3"
	"github.com/urfave/cli/v3"

	"github.com/dr8co/prism/internal/pathutil"
)

// ManCommand returns the man command configuration.
func ManCommand() *cli.Command {
	return &cli.Command{
		Name:      "man",
		Usage:     "Generate the prism(1) manual page",
		ArgsUsage: " ",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "out",
				Aliases: []string{"o"},
				Usage:   "Directory to write prism.1 into",
				Value:   ".",
			},
		},
		Action: manCmd,
	}
}

// manCmd is the action function for the man command.
func manCmd(_ context.Context, c *cli.Command) error {
	dir, err := pathutil.EnsureDirectory(c.String("out"), 0o750)
	if err != nil {
		return fmt.Errorf("invalid output directory: %w", err)
	}

	page, err := docs.ToMan(c.Root())
	if err != nil {
		return fmt.Errorf("failed to generate man page: %w", err)
	}

	path := filepath.Join(dir, c.Root().Name+".1")
	if err := os.WriteFile(path, []byte(page), 0o644); err != nil {
		return fmt.Errorf("failed to write man page: %w", err)
	}

	_, err = fmt.Fprintf(c.Root().Writer, "Man page generated at %s\n", path)
	return err
}
