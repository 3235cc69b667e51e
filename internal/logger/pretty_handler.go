package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"runtime"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// PrettyHandler implements slog.Handler for human-friendly terminal output
type PrettyHandler struct {
	opts   slog.HandlerOptions
	writer io.Writer

	// mu serializes writes; it is shared by handlers derived with WithAttrs/WithGroup.
	mu *sync.Mutex

	attrs  []slog.Attr
	groups []string
	colors *prettyColors
}

// prettyColors holds color functions for different elements
type prettyColors struct {
	timestamp *color.Color
	debug     *color.Color
	info      *color.Color
	warn      *color.Color
	error     *color.Color
	source    *color.Color
	message   *color.Color
	attrKey   *color.Color
	attrValue *color.Color
}

func (c *prettyColors) all() []*color.Color {
	return []*color.Color{c.timestamp, c.debug, c.info, c.warn, c.error, c.source, c.message, c.attrKey, c.attrValue}
}

// NewPrettyHandler creates a new pretty handler. Colors are used only when w
// is a terminal.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if opts == nil {
		opts = &slog.HandlerOptions{}
	}

	colors := &prettyColors{
		timestamp: color.New(color.FgHiBlack),
		debug:     color.New(color.FgMagenta, color.Bold),
		info:      color.New(color.FgGreen, color.Bold),
		warn:      color.New(color.FgYellow, color.Bold),
		error:     color.New(color.FgRed, color.Bold),
		source:    color.New(color.FgCyan),
		message:   color.New(color.Bold),
		attrKey:   color.New(color.FgCyan),
		attrValue: color.New(color.FgHiBlack),
	}

	useColor := isTerminal(w)
	for _, c := range colors.all() {
		if useColor {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}

	return &PrettyHandler{
		opts:   *opts,
		writer: w,
		mu:     &sync.Mutex{},
		colors: colors,
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// Enabled reports whether the handler handles records at the given level
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	minLevel := slog.LevelInfo
	if h.opts.Level != nil {
		minLevel = h.opts.Level.Level()
	}
	return level >= minLevel
}

// Handle formats and outputs a log record on a single line:
//
//	15:04:05.000 WARN  message key=value other=1
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	var buf strings.Builder

	_, _ = h.colors.timestamp.Fprint(&buf, r.Time.Format("15:04:05.000"))
	buf.WriteByte(' ')

	_, _ = h.levelColor(r.Level).Fprint(&buf, levelString(r.Level))
	buf.WriteByte(' ')

	if h.opts.AddSource && r.PC != 0 {
		pc := r.PC
		if caller := callerPC(); caller != 0 {
			pc = caller
		}
		frames := runtime.CallersFrames([]uintptr{pc})
		frame, _ := frames.Next()
		file := frame.File
		if idx := strings.LastIndex(file, "/"); idx >= 0 {
			file = file[idx+1:]
		}
		_, _ = h.colors.source.Fprintf(&buf, "[%s:%d]", file, frame.Line)
		buf.WriteByte(' ')
	}

	_, _ = h.colors.message.Fprint(&buf, r.Message)

	for _, attr := range h.attrs {
		buf.WriteByte(' ')
		h.formatAttr(&buf, attr)
	}
	r.Attrs(func(attr slog.Attr) bool {
		buf.WriteByte(' ')
		h.formatAttr(&buf, h.qualify(attr))
		return true
	})

	buf.WriteByte('\n')

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := io.WriteString(h.writer, buf.String())
	return err
}

// WithAttrs returns a new handler with the given attributes
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	newAttrs = append(newAttrs, h.attrs...)
	for _, a := range attrs {
		newAttrs = append(newAttrs, h.qualify(a))
	}

	clone := *h
	clone.attrs = newAttrs
	return &clone
}

// WithGroup returns a new handler with the given group
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	newGroups := make([]string, 0, len(h.groups)+1)
	newGroups = append(newGroups, h.groups...)
	newGroups = append(newGroups, name)

	clone := *h
	clone.groups = newGroups
	return &clone
}

// qualify prefixes the attribute key with the open groups.
func (h *PrettyHandler) qualify(attr slog.Attr) slog.Attr {
	if len(h.groups) == 0 {
		return attr
	}
	attr.Key = strings.Join(h.groups, ".") + "." + attr.Key
	return attr
}

func (h *PrettyHandler) levelColor(level slog.Level) *color.Color {
	switch {
	case level >= slog.LevelError:
		return h.colors.error
	case level >= slog.LevelWarn:
		return h.colors.warn
	case level >= slog.LevelInfo:
		return h.colors.info
	default:
		return h.colors.debug
	}
}

// levelString returns a fixed-width level label.
func levelString(level slog.Level) string {
	switch level {
	case slog.LevelDebug:
		return "DEBUG"
	case slog.LevelInfo:
		return "INFO "
	case slog.LevelWarn:
		return "WARN "
	case slog.LevelError:
		return "ERROR"
	default:
		return strings.ToUpper(level.String())
	}
}

// formatAttr formats a single attribute with colors
func (h *PrettyHandler) formatAttr(buf *strings.Builder, attr slog.Attr) {
	attr.Value = attr.Value.Resolve()

	if attr.Value.Kind() == slog.KindGroup {
		for i, a := range attr.Value.Group() {
			if i > 0 {
				buf.WriteByte(' ')
			}
			a.Key = attr.Key + "." + a.Key
			h.formatAttr(buf, a)
		}
		return
	}

	_, _ = h.colors.attrKey.Fprint(buf, attr.Key)
	_, _ = h.colors.attrValue.Fprint(buf, "=")

	switch attr.Value.Kind() {
	case slog.KindString:
		_, _ = h.colors.attrValue.Fprint(buf, strconv.Quote(attr.Value.String()))
	case slog.KindInt64:
		_, _ = h.colors.attrValue.Fprint(buf, strconv.FormatInt(attr.Value.Int64(), 10))
	case slog.KindUint64:
		_, _ = h.colors.attrValue.Fprint(buf, strconv.FormatUint(attr.Value.Uint64(), 10))
	case slog.KindFloat64:
		_, _ = h.colors.attrValue.Fprint(buf, strconv.FormatFloat(attr.Value.Float64(), 'f', -1, 64))
	case slog.KindBool:
		_, _ = h.colors.attrValue.Fprint(buf, strconv.FormatBool(attr.Value.Bool()))
	case slog.KindDuration:
		_, _ = h.colors.attrValue.Fprint(buf, attr.Value.Duration().String())
	case slog.KindTime:
		_, _ = h.colors.attrValue.Fprint(buf, attr.Value.Time().Format(time.RFC3339))
	default:
		_, _ = h.colors.attrValue.Fprint(buf, strconv.Quote(attr.Value.String()))
	}
}
