package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
)

// Sink stores a finished export file under a slash separated key.
type Sink interface {
	PutFile(ctx context.Context, reader io.Reader, key, contentType string) error
}

// DirSink writes files below a local directory.
type DirSink struct {
	Dir string
}

func (d DirSink) PutFile(ctx context.Context, reader io.Reader, key, contentType string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	path := filepath.Join(d.Dir, filepath.FromSlash(key))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating %s: %w", filepath.Dir(path), err)
	}
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	if _, err := io.Copy(f, reader); err != nil {
		_ = f.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return f.Close()
}
