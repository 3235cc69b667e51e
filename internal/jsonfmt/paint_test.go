package jsonfmt

import (
	"math"
	"regexp"
	"strings"
	"testing"
)

func nan() float64 { return math.NaN() }

// bracketPainter wraps every token in visible markers so tests can see which
// pieces of the output were painted.
type bracketPainter struct{}

func (bracketPainter) Paint(kind Token, s string) string {
	return "«" + s + "»"
}

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestFormatPaintedKeepsLayout(t *testing.T) {
	inputs := []string{
		`[1,2,3]`,
		`{"a":[1,2,3],"b":"xyzxyzxyz","c":null,"d":true}`,
		`[[1,2,3,4,5],[6],{"k":{"deep":[false,"s"]}}]`,
		`"scalar"`,
	}
	narrow := &Formatter{Width: 12, IndentWidth: 2}
	strip := strings.NewReplacer("«", "", "»", "")

	for _, in := range inputs {
		v := mustDecode(t, in)

		plain, err := narrow.Format(v, 0)
		if err != nil {
			t.Fatalf("Format(%s) error = %v", in, err)
		}
		painted, err := narrow.FormatPainted(v, 0, bracketPainter{})
		if err != nil {
			t.Fatalf("FormatPainted(%s) error = %v", in, err)
		}
		if got := strip.Replace(painted); got != plain {
			t.Errorf("painted layout differs for %s:\n%s\nwant\n%s", in, got, plain)
		}
	}
}

func TestFormatPaintedTokens(t *testing.T) {
	v := mustDecode(t, `{"k":[1,"s",null,true]}`)

	got, err := Default.FormatPainted(v, 0, bracketPainter{})
	if err != nil {
		t.Fatalf("FormatPainted() error = %v", err)
	}
	want := `«{»«"k"»«:»«[»«1»«,»«"s"»«,»«null»«,»«true»«]»«}»`
	if got != want {
		t.Errorf("FormatPainted() = %s, want %s", got, want)
	}
}

func TestColorPainter(t *testing.T) {
	v := mustDecode(t, `{"name":"prism","tags":["json","cli"],"stars":3,"archived":false,"license":null}`)
	narrow := &Formatter{Width: 20, IndentWidth: 2}

	plain, err := narrow.Format(v, 0)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	colored, err := narrow.FormatPainted(v, 0, NewColorPainter())
	if err != nil {
		t.Fatalf("FormatPainted() error = %v", err)
	}

	if !ansi.MatchString(colored) {
		t.Errorf("FormatPainted() produced no escape sequences: %q", colored)
	}
	if got := ansi.ReplaceAllString(colored, ""); got != plain {
		t.Errorf("stripped colored output differs:\n%s\nwant\n%s", got, plain)
	}
}

func TestColorPainterUnknownToken(t *testing.T) {
	p := NewColorPainter()
	if got := p.Paint(Token(99), "x"); got != "x" {
		t.Errorf("Paint(unknown) = %q, want %q", got, "x")
	}
}
