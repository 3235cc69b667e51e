// Package model holds the result types shared by the commands and the output formatters.
package model

import (
	"sync/atomic"
	"time"
)

// Digest is the checksum of one input.
type Digest struct {
	// Path is the input as displayed to the user; standard input is "-".
	Path string `json:"path" yaml:"path"`

	// Digest is the lower-case hex encoding of the hash.
	Digest string `json:"digest" yaml:"digest"`

	// Size is the number of bytes hashed.
	Size int64 `json:"size" yaml:"size"`
}

// Report is the document produced by the checksum command.
type Report struct {
	// Algorithm names the hash function used for every digest.
	Algorithm string `json:"algorithm" yaml:"algorithm"`

	// GeneratedAt is the time the report was assembled.
	GeneratedAt time.Time `json:"generated_at" yaml:"generated_at"`

	// Stats summarizes the run.
	Stats *Stats `json:"stats" yaml:"stats"`

	// Digests are listed in input order.
	Digests []Digest `json:"digests" yaml:"digests"`
}

// Stats track counters for one command run. Counters may be updated from
// several goroutines.
type Stats struct {
	// Inputs is the number of inputs named on the command line (or 1 for stdin).
	Inputs uint64 `json:"inputs" yaml:"inputs"`

	// Processed is the number of inputs handled successfully.
	Processed uint64 `json:"processed" yaml:"processed"`

	// SkippedDirs is the number of directory arguments that were skipped.
	SkippedDirs uint64 `json:"skipped_dirs" yaml:"skipped_dirs"`

	// Errors is the number of inputs that could not be read or parsed.
	Errors uint64 `json:"errors" yaml:"errors"`

	// Bytes is the total number of bytes read.
	Bytes uint64 `json:"bytes" yaml:"bytes"`

	// StartTime is when processing began.
	StartTime time.Time `json:"start_time" yaml:"start_time"`

	// Duration is the wall time of the run.
	Duration time.Duration `json:"duration" yaml:"duration"`
}

// IncrementProcessed atomically increments the processed count.
func (s *Stats) IncrementProcessed() {
	atomic.AddUint64(&s.Processed, 1)
}

// IncrementErrors atomically increments the error count.
func (s *Stats) IncrementErrors() {
	atomic.AddUint64(&s.Errors, 1)
}

// AddBytes atomically adds n to the byte count.
func (s *Stats) AddBytes(n int64) {
	if n > 0 {
		atomic.AddUint64(&s.Bytes, uint64(n))
	}
}

// GetProcessed atomically retrieves the processed count.
func (s *Stats) GetProcessed() uint64 {
	return atomic.LoadUint64(&s.Processed)
}

// GetErrors atomically retrieves the error count.
func (s *Stats) GetErrors() uint64 {
	return atomic.LoadUint64(&s.Errors)
}

// GetBytes atomically retrieves the byte count.
func (s *Stats) GetBytes() uint64 {
	return atomic.LoadUint64(&s.Bytes)
}
