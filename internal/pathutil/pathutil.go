// Package pathutil provides small helpers for validating, resolving and
// rewriting filesystem paths used throughout the project.
package pathutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// Custom error types
var (
	ErrNotExist     = errors.New("path does not exist")
	ErrNotDirectory = errors.New("not a directory")
	ErrIsDirectory  = errors.New("is a directory")
	ErrNotRegular   = errors.New("not a regular file")
)

// cleanAndResolve cleans, makes absolute, and resolves symlinks.
func cleanAndResolve(path string) (string, error) {
	cleaned := filepath.Clean(path)

	abs, err := filepath.Abs(cleaned)
	if err != nil {
		return "", fmt.Errorf("cannot make absolute: %w", err)
	}

	resolved, err := filepath.EvalSymlinks(abs)
	if err != nil {
		return abs, fmt.Errorf("cannot resolve symlinks: %w", err)
	}

	return resolved, nil
}

// stat resolves path and stats the result, mapping a missing path to ErrNotExist.
func stat(path string) (string, os.FileInfo, error) {
	resolved, err := cleanAndResolve(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotExist, resolved)
		}
		return "", nil, err
	}

	info, err := os.Stat(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil, fmt.Errorf("%w: %s", ErrNotExist, resolved)
		}
		return "", nil, err
	}
	return resolved, info, nil
}

// ValidateRegularFile ensures the path exists and is a regular file.
// It resolves symlinks.
func ValidateRegularFile(path string) (string, error) {
	resolved, info, err := stat(path)
	if err != nil {
		return "", err
	}

	if info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrIsDirectory, resolved)
	}

	if !info.Mode().IsRegular() {
		return "", fmt.Errorf("%w: %s", ErrNotRegular, resolved)
	}

	return resolved, nil
}

// EnsureDirectory creates path and any missing parents with mode perm, then
// returns the resolved directory. An existing non-directory is an error.
func EnsureDirectory(path string, perm os.FileMode) (string, error) {
	cleaned := filepath.Clean(path)
	if info, err := os.Stat(cleaned); err == nil && !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, cleaned)
	}

	if err := os.MkdirAll(cleaned, perm); err != nil {
		return "", fmt.Errorf("cannot create directory: %w", err)
	}

	resolved, info, err := stat(cleaned)
	if err != nil {
		return "", err
	}
	if !info.IsDir() {
		return "", fmt.Errorf("%w: %s", ErrNotDirectory, resolved)
	}
	return resolved, nil
}

// IsDirectory reports whether path names an existing directory.
// Errors are treated as "not a directory" so the caller's open reports them.
func IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// ReplaceFile atomically replaces the contents of path with data.
//
// The data is written to a temporary file in the same directory, synced, and
// renamed over path, so readers never observe a partially written file. The
// permission bits of an existing file are kept.
func ReplaceFile(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		if info.IsDir() {
			return fmt.Errorf("%w: %s", ErrIsDirectory, path)
		}
		mode = info.Mode().Perm()
	}

	dirPath := filepath.Dir(path)
	d, err := os.Open(dirPath)
	if err != nil {
		return fmt.Errorf("failed to open directory: %q: %w", dirPath, err)
	}
	defer func(d *os.File) {
		_ = d.Close()
	}(d)

	f, err := os.CreateTemp(dirPath, "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temporary file in %q: %w", dirPath, err)
	}
	tmpPath := f.Name()

	needClose := true
	needRemove := true
	defer func() {
		if needClose {
			_ = f.Close()
		}
		if needRemove {
			_ = os.Remove(tmpPath)
		}
	}()

	if _, err = f.Write(data); err != nil {
		return fmt.Errorf("I/O error: %q: %w", tmpPath, err)
	}
	if err = f.Chmod(mode); err != nil {
		return fmt.Errorf("failed to set permissions: %q: %w", tmpPath, err)
	}
	if err = f.Sync(); err != nil {
		return fmt.Errorf("I/O error: %q: %w", tmpPath, err)
	}

	needClose = false
	if err = f.Close(); err != nil {
		return fmt.Errorf("failed to close file: %q: %w", tmpPath, err)
	}

	if err = os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("failed to replace %q: %w", path, err)
	}
	needRemove = false

	// Persist the rename itself.
	if err = d.Sync(); err != nil {
		return fmt.Errorf("I/O error: %q: %w", dirPath, err)
	}
	return nil
}
