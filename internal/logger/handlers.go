package logger

import (
	"context"
	"io"
	"log/slog"
)

// callerFix forwards records to next, first pointing their PC at the code
// that called into this package when source locations are enabled.
type callerFix struct {
	next      slog.Handler
	addSource bool
}

func newCallerFix(next slog.Handler, opts *slog.HandlerOptions) callerFix {
	return callerFix{next: next, addSource: opts.AddSource}
}

// Enabled reports whether the wrapped handler handles records at level.
func (c callerFix) Enabled(ctx context.Context, level slog.Level) bool {
	return c.next.Enabled(ctx, level)
}

// Handle rewrites the record's PC and passes it on.
func (c callerFix) Handle(ctx context.Context, r slog.Record) error {
	if c.addSource && r.PC != 0 {
		if pc := callerPC(); pc != 0 {
			r.PC = pc
		}
	}
	return c.next.Handle(ctx, r)
}

func (c callerFix) withAttrs(attrs []slog.Attr) callerFix {
	return callerFix{next: c.next.WithAttrs(attrs), addSource: c.addSource}
}

func (c callerFix) withGroup(name string) callerFix {
	return callerFix{next: c.next.WithGroup(name), addSource: c.addSource}
}

func orDefault(opts *slog.HandlerOptions) *slog.HandlerOptions {
	if opts == nil {
		return &slog.HandlerOptions{}
	}
	return opts
}

// TextHandler writes key=value lines through [slog.TextHandler].
type TextHandler struct{ callerFix }

// NewTextHandler creates a [TextHandler] writing to w. Nil opts means defaults.
func NewTextHandler(w io.Writer, opts *slog.HandlerOptions) *TextHandler {
	opts = orDefault(opts)
	return &TextHandler{newCallerFix(slog.NewTextHandler(w, opts), opts)}
}

func (h *TextHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &TextHandler{h.withAttrs(attrs)}
}

func (h *TextHandler) WithGroup(name string) slog.Handler {
	return &TextHandler{h.withGroup(name)}
}

// JsonHandler writes one JSON object per record through [slog.JSONHandler].
type JsonHandler struct{ callerFix }

// NewJsonHandler creates a [JsonHandler] writing to w. Nil opts means defaults.
func NewJsonHandler(w io.Writer, opts *slog.HandlerOptions) *JsonHandler {
	opts = orDefault(opts)
	return &JsonHandler{newCallerFix(slog.NewJSONHandler(w, opts), opts)}
}

func (h *JsonHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &JsonHandler{h.withAttrs(attrs)}
}

func (h *JsonHandler) WithGroup(name string) slog.Handler {
	return &JsonHandler{h.withGroup(name)}
}
