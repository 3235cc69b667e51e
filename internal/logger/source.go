package logger

import (
	"runtime"
	"strings"
)

// callerPC returns the program counter of the first frame outside log/slog
// and this package, so records point at the code that logged them rather
// than at the package-level helpers. The result is a raw return address
// as produced by runtime.Callers, which is what slog.Record.PC holds.
func callerPC() uintptr {
	var pcs [32]uintptr
	n := runtime.Callers(2, pcs[:])
	for _, pc := range pcs[:n] {
		// Callers yields one entry per logical frame, inlined calls
		// included, so each pc resolves to exactly the frame it names.
		frame, _ := runtime.CallersFrames([]uintptr{pc}).Next()
		if !isLoggerFrame(frame) && !isSlogFrame(frame) {
			return pc
		}
	}
	return 0
}

// isLoggerFrame checks if the frame belongs to our logger package
func isLoggerFrame(frame runtime.Frame) bool {
	return strings.Contains(frame.Function, "github.com/dr8co/prism/internal/logger.") &&
		!strings.HasSuffix(frame.File, "_test.go")
}

// isSlogFrame checks if the frame belongs to the slog package
func isSlogFrame(frame runtime.Frame) bool {
	return strings.HasPrefix(frame.Function, "log/slog.")
}
