// Package logger wraps log/slog with the handlers and package-level helpers
// used by prism. Diagnostics go to stderr by default so that standard output
// carries only command results.
package logger

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"sync"
	"sync/atomic"
)

// Config describes how a [Logger] writes records.
type Config struct {
	// Level is one of debug, info, warn or error. Empty means info.
	Level string

	// Format is one of text, json, pretty or discard. Empty means text.
	Format string

	// Writer receives the encoded records. It must not be nil.
	Writer io.Writer
}

// Logger is a thin wrapper around [slog.Logger] that remembers its configuration.
type Logger struct {
	logger *slog.Logger
	config Config
}

var (
	defaultLogger atomic.Pointer[Logger]
	once          sync.Once
)

func init() {
	defaultLogger.Store(&Logger{
		logger: slog.New(NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo})),
		config: Config{Level: "info", Format: "text", Writer: os.Stderr},
	})
}

// NewConfig builds a [Config] for the named output: stdout, stderr (the
// default), null/discard, or a file path opened for appending. The returned
// closer is non-nil only when a file was opened.
func NewConfig(level, format, output string) (Config, io.Closer, error) {
	cfg := Config{Level: level, Format: format}

	switch strings.ToLower(output) {
	case "stderr", "":
		cfg.Writer = os.Stderr
	case "stdout":
		cfg.Writer = os.Stdout
	case "null", "discard":
		cfg.Writer = io.Discard
	default:
		file, err := os.OpenFile(output, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return cfg, nil, fmt.Errorf("failed to open log file %s: %w", output, err)
		}
		cfg.Writer = file
		return cfg, file, nil
	}

	return cfg, nil, nil
}

// New creates a [Logger] from cfg. Debug level enables source locations.
func New(cfg Config) (*Logger, error) {
	if cfg.Writer == nil {
		return nil, errors.New("logger: nil writer")
	}

	level := parseLogLevel(cfg.Level)
	opts := &slog.HandlerOptions{Level: level, AddSource: level == slog.LevelDebug}

	return &Logger{
		logger: slog.New(createHandler(cfg.Writer, cfg.Format, opts)),
		config: cfg,
	}, nil
}

// InitDefault installs a logger built from cfg as the package default.
// Only the first call has any effect.
func InitDefault(cfg Config) error {
	var err error
	once.Do(func() {
		var l *Logger
		l, err = New(cfg)
		if err == nil {
			defaultLogger.Store(l)
		}
	})
	return err
}

// SetDefault replaces the package default logger.
func SetDefault(l *Logger) error {
	if l == nil {
		return errors.New("logger: nil logger")
	}
	defaultLogger.Store(l)
	return nil
}

// GetDefault returns the package default logger.
func GetDefault() *Logger {
	return defaultLogger.Load()
}

// createHandler creates a slog.Handler based on the format string.
func createHandler(writer io.Writer, format string, opts *slog.HandlerOptions) slog.Handler {
	switch strings.ToLower(format) {
	case "text", "":
		return NewTextHandler(writer, opts)
	case "json":
		return NewJsonHandler(writer, opts)
	case "null", "discard":
		return slog.DiscardHandler
	case "pretty", "color", "terminal", "human":
		return NewPrettyHandler(writer, opts)
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown log format '%s'. Using text format.\n", format)
		return NewTextHandler(writer, opts)
	}
}

// parseLogLevel converts string log level to slog.Level
func parseLogLevel(levelStr string) slog.Level {
	switch strings.ToLower(levelStr) {
	case "info", "":
		return slog.LevelInfo
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		_, _ = fmt.Fprintf(os.Stderr, "Unknown log level '%s'. Using info level.\n", levelStr)
		return slog.LevelInfo
	}
}

// Logger returns the underlying [slog.Logger].
func (l *Logger) Logger() *slog.Logger { return l.logger }

// Config returns the configuration the logger was built from.
func (l *Logger) Config() Config { return l.config }

func (l *Logger) Debug(msg string, args ...any) { l.logger.Debug(msg, args...) }
func (l *Logger) Info(msg string, args ...any)  { l.logger.Info(msg, args...) }
func (l *Logger) Warn(msg string, args ...any)  { l.logger.Warn(msg, args...) }
func (l *Logger) Error(msg string, args ...any) { l.logger.Error(msg, args...) }

func (l *Logger) DebugContext(ctx context.Context, msg string, args ...any) {
	l.logger.DebugContext(ctx, msg, args...)
}

func (l *Logger) InfoContext(ctx context.Context, msg string, args ...any) {
	l.logger.InfoContext(ctx, msg, args...)
}

func (l *Logger) WarnContext(ctx context.Context, msg string, args ...any) {
	l.logger.WarnContext(ctx, msg, args...)
}

func (l *Logger) ErrorContext(ctx context.Context, msg string, args ...any) {
	l.logger.ErrorContext(ctx, msg, args...)
}

func (l *Logger) DebugAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(ctx, slog.LevelDebug, msg, attrs...)
}

func (l *Logger) InfoAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(ctx, slog.LevelInfo, msg, attrs...)
}

func (l *Logger) WarnAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(ctx, slog.LevelWarn, msg, attrs...)
}

func (l *Logger) ErrorAttrs(ctx context.Context, msg string, attrs ...slog.Attr) {
	l.logger.LogAttrs(ctx, slog.LevelError, msg, attrs...)
}

// Info logs an informational message.
func Info(msg string, args ...any) {
	GetDefault().Info(msg, args...)
}

// InfoCtx logs an informational message with context.
func InfoCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().InfoContext(ctx, msg, args...)
}

// InfoAttrs logs an informational message with attributes.
func InfoAttrs(ctx context.Context, message string, attrs ...slog.Attr) {
	GetDefault().InfoAttrs(ctx, message, attrs...)
}

// Warn logs a warning message.
func Warn(msg string, args ...any) {
	GetDefault().Warn(msg, args...)
}

// WarnCtx logs a warning message with context.
func WarnCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().WarnContext(ctx, msg, args...)
}

// WarnAttrs logs a warning message with attributes.
func WarnAttrs(ctx context.Context, message string, attrs ...slog.Attr) {
	GetDefault().WarnAttrs(ctx, message, attrs...)
}

// Error logs an error message.
func Error(msg string, args ...any) {
	GetDefault().Error(msg, args...)
}

// ErrorCtx logs an error message with context.
func ErrorCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().ErrorContext(ctx, msg, args...)
}

// ErrorAttrs logs an error message with attributes.
func ErrorAttrs(ctx context.Context, message string, attrs ...slog.Attr) {
	GetDefault().ErrorAttrs(ctx, message, attrs...)
}

// Debug logs a debug message.
func Debug(msg string, args ...any) {
	GetDefault().Debug(msg, args...)
}

// DebugCtx logs a debug message with context.
func DebugCtx(ctx context.Context, msg string, args ...any) {
	GetDefault().DebugContext(ctx, msg, args...)
}

// DebugAttrs logs a debug message with attributes.
func DebugAttrs(ctx context.Context, message string, attrs ...slog.Attr) {
	GetDefault().DebugAttrs(ctx, message, attrs...)
}
