package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/briandowns/spinner"
	"github.com/urfave/cli/v3"

	"github.com/dr8co/prism/internal/checksum"
	"github.com/dr8co/prism/internal/config"
	"github.com/dr8co/prism/internal/input"
	"github.com/dr8co/prism/internal/logger"
	"github.com/dr8co/prism/internal/model"
	"github.com/dr8co/prism/internal/output"
)

// ChecksumCommand returns the checksum command configuration.
func ChecksumCommand(cfg *config.ChecksumConfig) *cli.Command {
	return &cli.Command{
		Name:    "checksum",
		Aliases: []string{"sum"},
		Usage:   "Compute or verify file checksums",
		Description: `Print a checksum for each file, in the format read by sha256sum --check.
With no files, standard input is read and shown as "-". Directories are
skipped with a warning. With --check, each file is read as a checksum list
and every listed file is verified.`,
		ArgsUsage:             "[files...]",
		EnableShellCompletion: true,
		Suggest:               true,

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "algorithm",
				Aliases: []string{"a"},
				Usage:   "Hash algorithm: sha256, sha512, blake3, xxh3",
				Value:   string(checksum.Default),
			},
			&cli.StringFlag{
				Name:  "output-format",
				Usage: "Output format: text, tag, json, yaml",
				Value: "text",
			},
			&cli.StringFlag{
				Name:  "output-file",
				Usage: "Write output to file (default: stdout)",
			},
			&cli.BoolFlag{
				Name:    "check",
				Aliases: []string{"c"},
				Usage:   "Read checksums from the files and verify them",
			},
			&cli.BoolFlag{
				Name:  "quiet",
				Usage: "With --check, do not print OK for each verified file",
			},
			&cli.BoolFlag{
				Name:  "progress",
				Usage: "Show a progress spinner on stderr while hashing",
			},
			&cli.IntFlag{
				Name:  "workers",
				Usage: "Number of files hashed in parallel",
				Value: cfg.Workers,
			},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			return checksumCmd(ctx, c, cfg)
		},
	}
}

// checksumCmd is the action function for the checksum command.
func checksumCmd(ctx context.Context, c *cli.Command, cfg *config.ChecksumConfig) error {
	// Override with CLI flags
	if c.IsSet("algorithm") {
		cfg.Algorithm = c.String("algorithm")
	}
	if c.IsSet("output-format") {
		cfg.OutputFormat = c.String("output-format")
	}
	if c.IsSet("progress") {
		show := c.Bool("progress")
		cfg.Progress = &show
	}
	if c.IsSet("workers") {
		cfg.Workers = c.Int("workers")
	}
	if cfg.Workers < 1 {
		return fmt.Errorf("invalid workers %d: must be at least 1", cfg.Workers)
	}

	algorithm, err := checksum.ParseAlgorithm(cfg.Algorithm)
	if err != nil {
		return err
	}

	args := c.Args().Slice()
	sources, skipped := (&input.Resolver{Stdin: c.Root().Reader}).Resolve(ctx, args)

	if c.Bool("check") {
		return verifyLists(ctx, c, cfg, algorithm, sources)
	}

	reg, err := output.InitFormatters()
	if err != nil {
		return fmt.Errorf("error initializing formatters: %w", err)
	}
	if _, ok := reg.Get(cfg.OutputFormat); !ok {
		return fmt.Errorf("%w: %q (want one of %v)", output.ErrUnknownFormat, cfg.OutputFormat, reg.List())
	}

	s := &model.Stats{
		Inputs:      uint64(max(len(args), 1)),
		SkippedDirs: uint64(skipped),
		StartTime:   time.Now(),
	}

	jobs := make([]checksum.Job, len(sources))
	for i, src := range sources {
		jobs[i] = checksum.Job{Name: src.Name, Open: src.Open}
	}

	progress := startProgress(c.Root().ErrWriter, cfg.ShowProgress(), len(jobs))
	results := checksum.SumAll(ctx, jobs, algorithm, cfg.Workers, progress.update)
	progress.stop()

	report := &model.Report{
		Algorithm: algorithm.String(),
		Stats:     s,
		Digests:   make([]model.Digest, 0, len(results)),
	}
	for _, res := range results {
		if res.Err != nil {
			s.IncrementErrors()
			logger.ErrorAttrs(ctx, res.Err.Error(), slog.String("path", res.Name))
			continue
		}
		s.IncrementProcessed()
		s.AddBytes(res.Size)
		report.Digests = append(report.Digests, model.Digest{Path: res.Name, Digest: res.Digest, Size: res.Size})
	}
	s.Duration = time.Since(s.StartTime)
	report.GeneratedAt = time.Now().UTC()

	if err := ctx.Err(); err != nil {
		return err
	}

	if err := writeReport(ctx, c, reg, cfg.OutputFormat, report); err != nil {
		return err
	}

	logger.DebugAttrs(ctx, "checksum complete",
		slog.String("algorithm", report.Algorithm),
		slog.Uint64("processed", s.GetProcessed()),
		slog.Uint64("errors", s.GetErrors()),
		slog.String("bytes", output.FormatBytes(int64(s.GetBytes()))),
		slog.Duration("duration", s.Duration),
	)

	if n := s.GetErrors(); n > 0 {
		return fmt.Errorf("%d of %d inputs could not be read", n, len(sources))
	}
	return nil
}

// writeReport writes report to the --output-file, or to the command's writer.
func writeReport(ctx context.Context, c *cli.Command, reg *output.Registry, format string, report *model.Report) error {
	outputFile := c.String("output-file")
	if outputFile == "" {
		if err := reg.Format(format, report, c.Root().Writer); err != nil {
			return fmt.Errorf("error formatting report: %w", err)
		}
		return nil
	}

	outputFile, err := filepath.Abs(filepath.Clean(outputFile))
	if err != nil {
		return fmt.Errorf("error getting absolute path for output file: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(outputFile), 0o750); err != nil {
		return fmt.Errorf("error creating output directory: %w", err)
	}

	file, err := os.Create(outputFile)
	if err != nil {
		return fmt.Errorf("error opening output file: %w", err)
	}
	if err := reg.Format(format, report, file); err != nil {
		_ = file.Close()
		return fmt.Errorf("error formatting report: %w", err)
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("error writing output file: %w", err)
	}

	logger.InfoAttrs(ctx, "Results written", slog.String("path", outputFile))
	return nil
}

// verifyLists treats every source as a checksum list and verifies its entries.
func verifyLists(ctx context.Context, c *cli.Command, cfg *config.ChecksumConfig, fallback checksum.Algorithm, lists []input.Source) error {
	var (
		entries    []checksum.Entry
		malformed  int
		listErrors int
	)
	for _, src := range lists {
		rc, err := src.Open()
		if err != nil {
			logger.ErrorAttrs(ctx, err.Error(), slog.String("path", src.Name))
			listErrors++
			continue
		}
		e, bad, err := checksum.ParseList(rc, fallback)
		_ = rc.Close()
		if err != nil {
			logger.ErrorAttrs(ctx, err.Error(), slog.String("path", src.Name))
			listErrors++
		}
		if len(e) == 0 && bad > 0 {
			logger.WarnAttrs(ctx, src.Name+": no properly formatted checksum lines found", slog.String("path", src.Name))
		}
		entries = append(entries, e...)
		malformed += bad
	}

	// A list read from standard input leaves nothing for "-" entries.
	stdin := c.Root().Reader
	for _, src := range lists {
		if src.IsStdin() {
			stdin = nil
		}
	}

	results := checksum.Verify(ctx, entries, cfg.Workers, stdin)
	summary := model.CheckSummary{Malformed: malformed}
	for _, r := range results {
		summary.Add(r)
		if r.Err != nil {
			logger.WarnAttrs(ctx, r.Err.Error(), slog.String("path", r.Path))
		}
	}

	printer := &output.CheckPrinter{
		Out:   c.Root().Writer,
		Err:   c.Root().ErrWriter,
		Quiet: c.Bool("quiet"),
	}
	if err := printer.Print(results, summary); err != nil {
		return err
	}

	if err := ctx.Err(); err != nil {
		return err
	}
	if listErrors > 0 {
		return fmt.Errorf("%d of %d checksum lists could not be read", listErrors, len(lists))
	}
	if !summary.OK() {
		return errors.New("checksum verification failed")
	}
	return nil
}

// progress drives an optional spinner from the hashing workers.
type progress struct {
	s     *spinner.Spinner
	done  int
	total int
}

// startProgress starts a spinner on w when enabled and w is a file. The
// returned value is safe to use when no spinner was started.
func startProgress(w io.Writer, enabled bool, total int) *progress {
	p := &progress{total: total}
	f, ok := w.(*os.File)
	if !enabled || !ok || total == 0 {
		return p
	}

	p.s = spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriterFile(f))
	p.s.Suffix = fmt.Sprintf(" hashing 0/%d", total)
	p.s.Start()
	return p
}

// update is called once per finished job. Calls are serialized by the pool.
func (p *progress) update(checksum.Result) {
	p.done++
	if p.s == nil {
		return
	}
	p.s.Lock()
	p.s.Suffix = fmt.Sprintf(" hashing %d/%d", p.done, p.total)
	p.s.Unlock()
}

func (p *progress) stop() {
	if p.s != nil {
		p.s.Stop()
	}
}
