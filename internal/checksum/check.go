package checksum

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/dr8co/prism/internal/model"
)

// Entry is one line of a checksum list.
type Entry struct {
	Path      string
	Digest    string
	Algorithm Algorithm
	Line      int
}

// ErrMalformedLine reports a checksum list line that could not be parsed.
var ErrMalformedLine = errors.New("improperly formatted checksum line")

// ParseLine parses a single checksum list line in either the GNU form
// ("<hex>  <path>", or "<hex> *<path>" for binary mode) or the BSD tag form
// ("SHA256 (<path>) = <hex>"). GNU lines are interpreted with fallback.
// A leading backslash marks a line whose path is escaped.
func ParseLine(line string, fallback Algorithm) (Entry, error) {
	line = strings.TrimRight(line, "\r")

	escaped := strings.HasPrefix(line, `\`)
	if escaped {
		line = line[1:]
	}

	e, err := parseLine(line, fallback)
	if err == nil && escaped {
		e.Path = nameUnescaper.Replace(e.Path)
	}
	return e, err
}

var nameUnescaper = strings.NewReplacer(`\\`, `\`, `\n`, "\n", `\r`, "\r")

func parseLine(line string, fallback Algorithm) (Entry, error) {
	if e, ok := parseTagLine(line); ok {
		return e, nil
	}

	hexPart, rest, found := strings.Cut(line, " ")
	if !found || rest == "" {
		return Entry{}, ErrMalformedLine
	}
	switch rest[0] {
	case ' ', '*':
		rest = rest[1:]
	default:
		return Entry{}, ErrMalformedLine
	}
	if rest == "" || !isHex(hexPart) || len(hexPart) != fallback.HexLen() {
		return Entry{}, ErrMalformedLine
	}
	return Entry{Path: rest, Digest: strings.ToLower(hexPart), Algorithm: fallback}, nil
}

func parseTagLine(line string) (Entry, bool) {
	tag, rest, found := strings.Cut(line, " (")
	if !found {
		return Entry{}, false
	}
	idx := strings.LastIndex(rest, ") = ")
	if idx < 0 {
		return Entry{}, false
	}
	path, digest := rest[:idx], rest[idx+len(") = "):]
	if tag == "" {
		return Entry{}, false
	}

	a, err := ParseAlgorithm(tag)
	if err != nil || path == "" || !isHex(digest) || len(digest) != a.HexLen() {
		return Entry{}, false
	}
	return Entry{Path: path, Digest: strings.ToLower(digest), Algorithm: a}, true
}

func isHex(s string) bool {
	if s == "" {
		return false
	}
	for _, c := range s {
		switch {
		case c >= '0' && c <= '9', c >= 'a' && c <= 'f', c >= 'A' && c <= 'F':
		default:
			return false
		}
	}
	return true
}

// ParseList reads a checksum list. Blank lines are ignored; lines that do not
// parse are counted in malformed and otherwise skipped.
func ParseList(r io.Reader, fallback Algorithm) (entries []Entry, malformed int, err error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for sc.Scan() {
		lineNo++
		text := sc.Text()
		if strings.TrimSpace(text) == "" {
			continue
		}
		e, perr := ParseLine(text, fallback)
		if perr != nil {
			malformed++
			continue
		}
		e.Line = lineNo
		entries = append(entries, e)
	}
	if err := sc.Err(); err != nil {
		return entries, malformed, fmt.Errorf("reading checksum list: %w", err)
	}
	return entries, malformed, nil
}

// ErrStdinUnavailable is the error for a "-" entry when standard input was
// not supplied or an earlier entry already consumed it.
var ErrStdinUnavailable = errors.New("standard input is not available")

// stdinPath is the list entry that names standard input.
const stdinPath = "-"

// sharedStdin hands out its reader at most once.
type sharedStdin struct {
	mu sync.Mutex
	r  io.Reader
}

func (s *sharedStdin) open() (io.ReadCloser, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.r == nil {
		return nil, ErrStdinUnavailable
	}
	r := s.r
	s.r = nil
	return io.NopCloser(r), nil
}

// Verify re-hashes every entry and compares it with the listed digest.
// An entry named "-" is read from stdin, which may be nil when standard
// input is unavailable. Results are returned in list order.
func Verify(ctx context.Context, entries []Entry, workers int, stdin io.Reader) []model.CheckResult {
	shared := &sharedStdin{r: stdin}

	results := make([]model.CheckResult, len(entries))

	// Entries may name different algorithms, so group them.
	groups := make(map[Algorithm][]int)
	for i, e := range entries {
		groups[e.Algorithm] = append(groups[e.Algorithm], i)
	}

	for a, idxs := range groups {
		jobs := make([]Job, len(idxs))
		for j, i := range idxs {
			path := entries[i].Path
			jobs[j] = Job{
				Name: path,
				Open: func() (io.ReadCloser, error) { return os.Open(path) },
			}
			if path == stdinPath {
				jobs[j].Open = shared.open
			}
		}

		for j, res := range SumAll(ctx, jobs, a, workers, nil) {
			e := entries[idxs[j]]
			r := model.CheckResult{Path: e.Path, Expected: e.Digest, Actual: res.Digest}
			switch {
			case res.Err != nil:
				r.Status = model.CheckUnreadable
				r.Err = res.Err
			case res.Digest == e.Digest:
				r.Status = model.CheckOK
			default:
				r.Status = model.CheckFailed
			}
			results[idxs[j]] = r
		}
	}
	return results
}
