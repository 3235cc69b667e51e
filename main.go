// Prism is a command-line tool that lays out JSON documents to fit a line width
// and computes or verifies file checksums.
package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/urfave/cli/v3"

	"github.com/dr8co/prism/cmd"
	"github.com/dr8co/prism/internal/config"
	"github.com/dr8co/prism/internal/logger"
	"github.com/dr8co/prism/internal/pathutil"
)

const (
	version = "1.0.0"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	code := run(ctx, os.Args)
	stop()
	os.Exit(code)
}

// run executes the application and returns the process exit status.
func run(ctx context.Context, args []string) int {
	appConfig, err := config.Load()
	if err != nil {
		logger.Error("failed to load the config", "error", err)
		return 1
	}

	var logFile io.Closer
	defer func() {
		if logFile != nil {
			_ = logFile.Close()
		}
	}()

	app := newApp(appConfig, func(c io.Closer) { logFile = c })
	if err := app.Run(ctx, args); err != nil {
		if ctx.Err() != nil {
			logger.Info("Interrupted, shutting down")
			return 130
		}
		logger.Error("application error", "error", err)
		return 1
	}
	return 0
}

// newApp builds the root command. Subcommands share appConfig, which the
// Before hook may replace with the file named by --config. onLogFile receives
// the log file to close on exit, if one was opened.
func newApp(appConfig *config.Config, onLogFile func(io.Closer)) *cli.Command {
	return &cli.Command{
		Name:    "prism",
		Usage:   "Format JSON within a line width and compute file checksums",
		Version: version,
		Authors: []any{
			"Ian Duncan <dr8co@duck.com>",
		},
		Copyright: "(c) 2025 Ian Duncan",
		Description: `Prism pretty-prints JSON so that every container fitting within the line
width stays on one line, and computes sha256sum-compatible checksums.

Configuration is read from config.{yaml,toml,json} in the user configuration
directory and from PRISM_* environment variables. Flags take precedence.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Set the log level (debug, info, warn, error)",
				Value: "info",
			},
			&cli.StringFlag{
				Name:  "log-format",
				Usage: "Set the log format (text, json, pretty, discard)",
				Value: "pretty",
			},
			&cli.StringFlag{
				Name:  "log-output",
				Usage: "Set the log output (stdout, stderr, null, or file path)",
				Value: "stderr",
			},
			&cli.StringFlag{
				Name:  "config",
				Usage: "Path to a TOML, YAML or JSON configuration file",
			},
		},
		Commands: []*cli.Command{
			cmd.FormatCommand(&appConfig.Format),
			cmd.ChecksumCommand(&appConfig.Checksum),
			cmd.ManCommand(),
		},
		Suggest:               true,
		EnableShellCompletion: true,
		Before: func(ctx context.Context, command *cli.Command) (context.Context, error) {
			if command.IsSet("config") {
				configPath, err := pathutil.ValidateRegularFile(command.String("config"))
				if err != nil {
					return ctx, fmt.Errorf("failed to parse the config: %w", err)
				}
				customConfig, err := config.LoadFile(ctx, configPath)
				if err != nil {
					return ctx, err
				}
				*appConfig = *customConfig
			}

			closer, err := initLogging(command, &appConfig.Log)
			if closer != nil {
				onLogFile(closer)
			}
			return ctx, err
		},
	}
}

// initLogging installs the default logger from the configuration, with
// command-line flags taking precedence.
func initLogging(command *cli.Command, cfg *config.LogConfig) (io.Closer, error) {
	if command.IsSet("log-level") {
		cfg.Level = command.String("log-level")
	}
	if command.IsSet("log-format") {
		cfg.Format = command.String("log-format")
	}
	if command.IsSet("log-output") {
		cfg.Output = command.String("log-output")
	}

	logCfg, closer, err := logger.NewConfig(cfg.Level, cfg.Format, cfg.Output)
	if err != nil {
		return nil, err
	}

	l, err := logger.New(logCfg)
	if err != nil {
		return closer, err
	}
	return closer, logger.SetDefault(l)
}
