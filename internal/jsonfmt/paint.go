package jsonfmt

import "github.com/fatih/color"

// Token identifies the kind of text handed to a [Painter].
type Token int

// Token kinds.
const (
	TokenDelim  Token = iota // [ ] { }
	TokenPunct               // , :
	TokenKey                 // quoted object key
	TokenString              // quoted string value
	TokenNumber
	TokenBool
	TokenNull
)

// Painter decorates output tokens, typically with terminal colors.
// Implementations must not change the visible text.
type Painter interface {
	Paint(kind Token, s string) string
}

// paint applies p to s, or returns s unchanged when p is nil.
func paint(p Painter, kind Token, s string) string {
	if p == nil {
		return s
	}
	return p.Paint(kind, s)
}

// ColorPainter paints tokens with ANSI colors.
type ColorPainter struct {
	colors map[Token]*color.Color
}

// NewColorPainter returns a painter with the default palette: bold delimiters
// and punctuation, blue keys, green strings and gray nulls. Colors are always
// emitted; deciding whether the destination is a terminal is up to the caller.
func NewColorPainter() *ColorPainter {
	colors := map[Token]*color.Color{
		TokenDelim:  color.New(color.Bold),
		TokenPunct:  color.New(color.Bold),
		TokenKey:    color.New(color.FgBlue, color.Bold),
		TokenString: color.New(color.FgGreen),
		TokenNumber: color.New(color.FgCyan),
		TokenBool:   color.New(color.FgYellow),
		TokenNull:   color.New(color.FgBlack, color.Bold),
	}
	for _, c := range colors {
		c.EnableColor()
	}
	return &ColorPainter{colors: colors}
}

// Paint implements [Painter].
func (p *ColorPainter) Paint(kind Token, s string) string {
	c, ok := p.colors[kind]
	if !ok {
		return s
	}
	return c.Sprint(s)
}
