package imgsheet

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink delivers a finished document. It returns where the document ended up.
type Sink interface {
	Deliver(ctx context.Context, name, contentType string, r io.Reader) (string, error)
}

// DirSink writes documents into a directory.
type DirSink struct {
	Dir string
}

// Deliver writes to a temporary file next to the target and renames it,
// so a partially written document is never visible under its final name.
// The temporary file is removed on every path.
func (s DirSink) Deliver(ctx context.Context, name, _ string, r io.Reader) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	dir := s.Dir
	if dir == "" {
		dir = "."
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".imgsheet-*.tmp")
	if err != nil {
		return "", fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := io.Copy(tmp, r); err != nil {
		tmp.Close()
		return "", fmt.Errorf("writing document: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("closing document: %w", err)
	}

	target := filepath.Join(dir, name)
	if err := os.Rename(tmp.Name(), target); err != nil {
		return "", fmt.Errorf("moving document into place: %w", err)
	}
	return target, nil
}

// WriterSink streams documents to a single writer, e.g. stdout.
type WriterSink struct {
	W io.Writer
}

// Deliver copies the document to the writer.
func (s WriterSink) Deliver(_ context.Context, name, _ string, r io.Reader) (string, error) {
	if _, err := io.Copy(s.W, r); err != nil {
		return "", fmt.Errorf("writing document: %w", err)
	}
	return name, nil
}
