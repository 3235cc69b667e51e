// Package cmd provides the command-line interface commands for prism.
//
// This package implements the CLI commands using the urfave/cli framework, including
//   - format: Lay out JSON documents to fit a column budget
//   - checksum: Compute or verify file digests
//   - man: Generate the manual page
package cmd

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/urfave/cli/v3"

	"github.com/dr8co/prism/internal/config"
	"github.com/dr8co/prism/internal/input"
	"github.com/dr8co/prism/internal/jsonfmt"
	"github.com/dr8co/prism/internal/logger"
	"github.com/dr8co/prism/internal/pathutil"
)

// FormatCommand returns the format command configuration.
func FormatCommand(cfg *config.FormatConfig) *cli.Command {
	return &cli.Command{
		Name:    "format",
		Aliases: []string{"parse", "fmt"},
		Usage:   "Pretty-print JSON documents within a line width",
		Description: `Parse each JSON document and print it so that every container that fits
within the width stays on one line. Larger containers are split one element
per line. Keys are sorted. With no files, standard input is read.`,
		ArgsUsage:             "[files...]",
		EnableShellCompletion: true,
		Suggest:               true,

		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "width",
				Usage: "Maximum line width for single-line containers",
				Value: jsonfmt.DefaultWidth,
			},
			&cli.StringFlag{
				Name:  "mode",
				Usage: "Layout mode: layout, expanded, compact",
				Value: "layout",
			},
			&cli.StringFlag{
				Name:  "color",
				Usage: "Colorize output: auto, always, never",
				Value: "auto",
			},
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"l"},
				Usage:   "List inputs that are not already formatted and fail if there are any",
			},
			&cli.BoolFlag{
				Name:    "diff",
				Aliases: []string{"d"},
				Usage:   "Print a line diff between each input and its formatted form",
			},
			&cli.BoolFlag{
				Name:    "write",
				Aliases: []string{"w"},
				Usage:   "Rewrite files in place instead of printing them",
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return formatCmd(ctx, c, cfg)
		},
	}
}

// formatOptions are the per-run settings of the format command.
type formatOptions struct {
	formatter *jsonfmt.Formatter
	painter   jsonfmt.Painter
	check     bool
	diff      bool
	write     bool
}

// formatCmd is the action function for the format command.
func formatCmd(ctx context.Context, c *cli.Command, cfg *config.FormatConfig) error {
	// Override with CLI flags
	if c.IsSet("width") {
		cfg.Width = c.Int("width")
	}
	if c.IsSet("mode") {
		cfg.Mode = c.String("mode")
	}
	if c.IsSet("color") {
		cfg.Color = c.String("color")
	}

	if cfg.Width <= 0 {
		return fmt.Errorf("invalid width %d: must be positive", cfg.Width)
	}
	mode, err := jsonfmt.ParseMode(cfg.Mode)
	if err != nil {
		return err
	}

	opts := &formatOptions{
		formatter: &jsonfmt.Formatter{
			Width:       cfg.Width,
			IndentWidth: jsonfmt.DefaultIndentWidth,
			MaxDepth:    jsonfmt.DefaultMaxDepth,
			Mode:        mode,
		},
		check: c.Bool("check"),
		diff:  c.Bool("diff"),
		write: c.Bool("write"),
	}
	if opts.check && opts.write {
		return errors.New("--check and --write cannot be used together")
	}

	out := c.Root().Writer
	color, err := useColor(cfg.Color, out)
	if err != nil {
		return err
	}
	if color {
		opts.painter = jsonfmt.NewColorPainter()
	}

	sources, _ := (&input.Resolver{Stdin: c.Root().Reader}).Resolve(ctx, c.Args().Slice())

	var failed, unformatted int
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}

		changed, err := formatSource(src, opts, out)
		if err != nil {
			logger.ErrorAttrs(ctx, err.Error(), slog.String("path", src.Name))
			failed++
			continue
		}
		if changed {
			unformatted++
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d inputs could not be formatted", failed, len(sources))
	}
	if opts.check && unformatted > 0 {
		return fmt.Errorf("%d of %d inputs are not formatted", unformatted, len(sources))
	}
	return nil
}

// formatSource formats one input according to opts. It reports whether the
// formatted text differs from the input.
func formatSource(src input.Source, opts *formatOptions, out io.Writer) (bool, error) {
	data, err := src.ReadAll()
	if err != nil {
		return false, err
	}

	v, err := jsonfmt.DecodeBytes(data)
	if err != nil {
		return false, fmt.Errorf("failed to parse JSON: %s: %w", src.Name, err)
	}

	text, err := opts.formatter.Format(v, 0)
	if err != nil {
		return false, fmt.Errorf("failed to format JSON: %s: %w", src.Name, err)
	}
	formatted := text + "\n"
	changed := !bytes.Equal(data, []byte(formatted))

	if opts.check {
		if changed {
			_, err = fmt.Fprintln(out, src.Name)
		}
		return changed, err
	}

	if opts.diff && changed {
		if err := writeLineDiff(out, src.Name, string(data), formatted); err != nil {
			return changed, err
		}
	}

	if opts.write {
		if src.IsStdin() {
			_, err = io.WriteString(out, formatted)
			return changed, err
		}
		if !changed {
			return false, nil
		}
		if err := pathutil.ReplaceFile(src.Name, []byte(formatted)); err != nil {
			return changed, err
		}
		logger.Debug("rewrote file", "path", src.Name)
		return changed, nil
	}

	if opts.diff {
		return changed, nil
	}

	if opts.painter != nil {
		text, err = opts.formatter.FormatPainted(v, 0, opts.painter)
		if err != nil {
			return changed, err
		}
	}
	_, err = fmt.Fprintln(out, text)
	return changed, err
}

// useColor resolves a color setting against the output writer.
func useColor(setting string, w io.Writer) (bool, error) {
	switch strings.ToLower(setting) {
	case "always":
		return true, nil
	case "never":
		return false, nil
	case "auto", "":
		if _, ok := os.LookupEnv("NO_COLOR"); ok {
			return false, nil
		}
		f, ok := w.(*os.File)
		if !ok {
			return false, nil
		}
		return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd()), nil
	default:
		return false, fmt.Errorf("invalid color setting %q (want auto, always or never)", setting)
	}
}
