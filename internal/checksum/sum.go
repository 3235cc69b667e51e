package checksum

import (
	"context"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Sum streams r through a and returns the lower-case hex digest together with
// the number of bytes read. Cancelling ctx aborts between chunks.
func Sum(ctx context.Context, r io.Reader, a Algorithm) (string, int64, error) {
	h, err := a.New()
	if err != nil {
		return "", 0, err
	}

	n, err := io.Copy(h, &ctxReader{ctx: ctx, r: r})
	if err != nil {
		return "", n, err
	}
	return hex.EncodeToString(h.Sum(nil)), n, nil
}

// SumFile hashes the file at path.
func SumFile(ctx context.Context, path string, a Algorithm) (string, int64, error) {
	file, err := os.Open(path)
	if err != nil {
		return "", 0, err
	}
	defer func(file *os.File) {
		_ = file.Close()
	}(file)

	digest, n, err := Sum(ctx, file, a)
	if err != nil {
		return "", n, fmt.Errorf("reading %s: %w", path, err)
	}
	return digest, n, nil
}

// ctxReader stops reading once its context is done.
type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (c *ctxReader) Read(p []byte) (int, error) {
	if err := c.ctx.Err(); err != nil {
		return 0, err
	}
	return c.r.Read(p)
}
