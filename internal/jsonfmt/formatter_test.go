package jsonfmt

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"testing"
)

// mustDecode parses a JSON document or fails the test.
func mustDecode(t *testing.T, s string) any {
	t.Helper()

	v, err := DecodeBytes([]byte(s))
	if err != nil {
		t.Fatalf("DecodeBytes(%q) error = %v", s, err)
	}
	return v
}

func TestFormatScenarios(t *testing.T) {
	t.Run("short array stays inline", func(t *testing.T) {
		got, err := Format(mustDecode(t, `[1, 2, 3]`), 0)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if got != "[1,2,3]" {
			t.Errorf("Format() = %q, want %q", got, "[1,2,3]")
		}
	})

	t.Run("short object stays inline", func(t *testing.T) {
		got, err := Format(mustDecode(t, `{"b": 2, "a": 1}`), 0)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if want := `{"a":1,"b":2}`; got != want {
			t.Errorf("Format() = %q, want %q", got, want)
		}
	})

	t.Run("thirty integers expand", func(t *testing.T) {
		arr := make([]any, 30)
		for i := range arr {
			arr[i] = i
		}
		got, err := Format(arr, 0)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.HasPrefix(got, "[\n") {
			t.Errorf("Format() = %q, want prefix %q", got, "[\n")
		}
		if !strings.Contains(got, "  0,\n") {
			t.Errorf("Format() = %q, want a line %q", got, "  0,")
		}
		if !strings.HasSuffix(got, "\n]") {
			t.Errorf("Format() = %q, want suffix %q", got, "\n]")
		}
	})

	t.Run("outer array expands, short children stay inline", func(t *testing.T) {
		v := mustDecode(t, `[
			{"id": 1, "name": "Alice"},
			{"id": 2, "name": "Bob"},
			{"id": 3, "name": "Charlie_Long_Name_To_Force_Expansion_Of_Outer_Array"}
		]`)
		got, err := Format(v, 0)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if !strings.HasPrefix(got, "[\n") {
			t.Errorf("Format() = %q, want prefix %q", got, "[\n")
		}
		for _, line := range []string{
			`  {"id":1,"name":"Alice"},`,
			`  {"id":2,"name":"Bob"},`,
			`  {"id":3,"name":"Charlie_Long_Name_To_Force_Expansion_Of_Outer_Array"}`,
		} {
			if !strings.Contains(got, line+"\n") {
				t.Errorf("Format() = %q, missing line %q", got, line)
			}
		}
	})
}

func TestFormatExactLayout(t *testing.T) {
	narrow := &Formatter{Width: 10, IndentWidth: 2}

	tests := []struct {
		name  string
		input string
		level int
		want  string
	}{
		{
			name:  "object with inline child and overflowing scalar",
			input: `{"a":[1,2,3],"b":"xyzxyzxyz"}`,
			want: "{\n" +
				"  \"a\": [1,2,3],\n" +
				"  \"b\": \"xyzxyzxyz\"\n" +
				"}",
		},
		{
			name:  "siblings evaluated independently",
			input: `[[1,2,3,4,5],[6]]`,
			want: "[\n" +
				"  [\n" +
				"    1,\n" +
				"    2,\n" +
				"    3,\n" +
				"    4,\n" +
				"    5\n" +
				"  ],\n" +
				"  [6]\n" +
				"]",
		},
		{
			name:  "single element container still expands",
			input: `["abcdefghijkl"]`,
			want:  "[\n  \"abcdefghijkl\"\n]",
		},
		{
			name:  "indentation level shifts closing bracket",
			input: `[12345,67890]`,
			level: 1,
			want:  "[\n    12345,\n    67890\n  ]",
		},
		{
			name:  "long scalar is never split",
			input: `"a very long string that does not fit"`,
			want:  `"a very long string that does not fit"`,
		},
		{
			name:  "empty containers",
			input: `[[],{}]`,
			want:  `[[],{}]`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := narrow.Format(mustDecode(t, tt.input), tt.level)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}
}

func TestFormatWidthThreshold(t *testing.T) {
	// The compact form of each value is exactly n bytes long.
	stringOfLen := func(n int) string { return `"` + strings.Repeat("x", n-2) + `"` }
	arrayOfLen := func(n int) []any { return []any{strings.Repeat("y", n-4)} }

	for level := 0; level <= 5; level++ {
		budget := DefaultWidth - level*DefaultIndentWidth

		t.Run(fmt.Sprintf("level %d", level), func(t *testing.T) {
			fitting := arrayOfLen(budget)
			got, err := Format(fitting, level)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			want, _ := Compact(fitting)
			if got != want {
				t.Errorf("value of %d bytes at level %d: got %q, want compact %q", budget, level, got, want)
			}

			overflowing := arrayOfLen(budget + 1)
			got, err = Format(overflowing, level)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			closing := "\n" + strings.Repeat(" ", level*DefaultIndentWidth) + "]"
			if !strings.HasPrefix(got, "[\n") || !strings.HasSuffix(got, closing) {
				t.Errorf("value of %d bytes at level %d: got %q, want expanded", budget+1, level, got)
			}

			s := mustDecode(t, stringOfLen(budget+10))
			got, err = Format(s, level)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != stringOfLen(budget+10) {
				t.Errorf("scalar was altered: %q", got)
			}
		})
	}
}

func TestFormatNoTrailingComma(t *testing.T) {
	v := mustDecode(t, `{"alpha":"aaaaaaaaaaaaaaaaaaaa","beta":"bbbbbbbbbbbbbbbbbbbb","gamma":"cccccccccccccccccccc","delta":4}`)
	got, err := Format(v, 0)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}

	if n := strings.Count(got, ",\n"); n != 3 {
		t.Errorf("got %d separators, want 3:\n%s", n, got)
	}
	if regexp.MustCompile(`,\s*[\]}]`).MatchString(got) {
		t.Errorf("trailing comma before closing delimiter:\n%s", got)
	}
}

func TestFormatIsPure(t *testing.T) {
	v := mustDecode(t, `{"list":[1,2,3,4,5,6,7,8,9,10,11,12,13,14,15,16,17,18,19,20,21,22,23,24,25,26],"nested":{"k":"v"}}`)

	first, err := Format(v, 1)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	second, err := Format(v, 1)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	if first != second {
		t.Errorf("repeated Format() differs:\n%s\n---\n%s", first, second)
	}

	// Formatted output parses back to the same compact value.
	reparsed := mustDecode(t, first)
	a, _ := Compact(v)
	b, _ := Compact(reparsed)
	if a != b {
		t.Errorf("round trip changed the value:\n%s\n%s", a, b)
	}
}

func TestFormatModes(t *testing.T) {
	v := mustDecode(t, `{"a":[1,2],"b":{},"c":"x"}`)

	tests := []struct {
		mode Mode
		want string
	}{
		{ModeLayout, `{"a":[1,2],"b":{},"c":"x"}`},
		{ModeCompact, `{"a":[1,2],"b":{},"c":"x"}`},
		{ModeExpanded, "{\n  \"a\": [\n    1,\n    2\n  ],\n  \"b\": {},\n  \"c\": \"x\"\n}"},
	}

	for _, tt := range tests {
		t.Run(tt.mode.String(), func(t *testing.T) {
			f := &Formatter{Width: DefaultWidth, IndentWidth: DefaultIndentWidth, Mode: tt.mode}
			got, err := f.Format(v, 0)
			if err != nil {
				t.Fatalf("Format() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("Format() =\n%s\nwant\n%s", got, tt.want)
			}
		})
	}

	t.Run("compact ignores width", func(t *testing.T) {
		f := &Formatter{Width: 1, IndentWidth: 2, Mode: ModeCompact}
		got, err := f.Format(v, 3)
		if err != nil {
			t.Fatalf("Format() error = %v", err)
		}
		if strings.Contains(got, "\n") {
			t.Errorf("compact mode produced newlines: %q", got)
		}
	})
}

func TestFormatDepthLimit(t *testing.T) {
	nest := func(n int) any {
		var v any = []any{}
		for i := 0; i < n; i++ {
			v = []any{v}
		}
		return v
	}

	f := &Formatter{Width: DefaultWidth, IndentWidth: DefaultIndentWidth, MaxDepth: 5}

	if _, err := f.Format(nest(5), 0); err != nil {
		t.Errorf("Format() at the limit error = %v", err)
	}
	if _, err := f.Format(nest(6), 0); !errors.Is(err, ErrDepthExceeded) {
		t.Errorf("Format() beyond the limit error = %v, want %v", err, ErrDepthExceeded)
	}

	unlimited := &Formatter{Width: DefaultWidth, IndentWidth: DefaultIndentWidth}
	if _, err := unlimited.Format(nest(200), 0); err != nil {
		t.Errorf("Format() without limit error = %v", err)
	}
}

func TestFormatErrors(t *testing.T) {
	tests := []struct {
		name  string
		value any
		level int
		want  error
	}{
		{name: "struct value", value: struct{}{}, want: ErrUnsupportedType},
		{name: "nested channel", value: []any{make(chan int)}, want: ErrUnsupportedType},
		{name: "NaN", value: map[string]any{"x": nan()}, want: ErrUnsupportedType},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Format(tt.value, tt.level)
			if !errors.Is(err, tt.want) {
				t.Errorf("Format() error = %v, want %v", err, tt.want)
			}
		})
	}

	if _, err := Format(nil, -1); err == nil {
		t.Error("Format() with negative level error = nil, want error")
	}
}

func TestFormatGoValues(t *testing.T) {
	v := map[string]any{
		"f":   1.5,
		"i":   42,
		"i64": int64(-7),
		"u":   uint64(9),
		"n":   nil,
		"t":   true,
	}
	got, err := Format(v, 0)
	if err != nil {
		t.Fatalf("Format() error = %v", err)
	}
	want := `{"f":1.5,"i":42,"i64":-7,"n":null,"t":true,"u":9}`
	if got != want {
		t.Errorf("Format() = %q, want %q", got, want)
	}
}

func TestQuote(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`plain`, `"plain"`},
		{`say "hi"`, `"say \"hi\""`},
		{`back\slash`, `"back\\slash"`},
		{"line\nbreak\ttab", `"line\nbreak\ttab"`},
		{`<a href="x">&</a>`, `"<a href=\"x\">&</a>"`},
		{"ünïcödé", `"ünïcödé"`},
	}

	for _, tt := range tests {
		got, err := quote(tt.in)
		if err != nil {
			t.Fatalf("quote(%q) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("quote(%q) = %s, want %s", tt.in, got, tt.want)
		}
	}
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{0, "0"},
		{1.5, "1.5"},
		{-2, "-2"},
		{0.000001, "0.000001"},
		{1e-7, "1e-7"},
		{1e21, "1e+21"},
	}

	for _, tt := range tests {
		got, err := formatFloat(tt.in)
		if err != nil {
			t.Fatalf("formatFloat(%v) error = %v", tt.in, err)
		}
		if got != tt.want {
			t.Errorf("formatFloat(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		in      string
		want    Mode
		wantErr bool
	}{
		{"", ModeLayout, false},
		{"layout", ModeLayout, false},
		{"EXPANDED", ModeExpanded, false},
		{" compact ", ModeCompact, false},
		{"minify", ModeCompact, false},
		{"sideways", ModeLayout, true},
	}

	for _, tt := range tests {
		got, err := ParseMode(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseMode(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseMode(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
