package publish

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// LocalPublisher copies artifacts into a directory tree rooted at Dir.
type LocalPublisher struct {
	Dir string
}

// NewLocalPublisher creates the root directory if needed.
func NewLocalPublisher(dir string) (*LocalPublisher, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create publish directory: %w", err)
	}
	return &LocalPublisher{Dir: dir}, nil
}

// Publish copies localPath to Dir/key and returns the destination path.
// The copy goes through a temp file and rename so a crash never leaves a
// half-written artifact at the published path.
func (p *LocalPublisher) Publish(_ context.Context, localPath, key string) (string, error) {
	dst := filepath.Join(p.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(dst), 0o755); err != nil {
		return "", fmt.Errorf("create destination directory: %w", err)
	}

	src, err := os.Open(localPath)
	if err != nil {
		return "", fmt.Errorf("open artifact: %w", err)
	}
	defer src.Close()

	tmp, err := os.CreateTemp(filepath.Dir(dst), ".publish-*")
	if err != nil {
		return "", fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := io.Copy(tmp, src); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return "", fmt.Errorf("copy artifact: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("flush artifact: %w", err)
	}
	if err := os.Rename(tmpName, dst); err != nil {
		os.Remove(tmpName)
		return "", fmt.Errorf("place artifact: %w", err)
	}
	return dst, nil
}
