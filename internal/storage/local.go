package storage

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// localStorage keeps resumes as plain files under a single directory.
// Writes land in a temporary file first and are renamed into place once complete.
type localStorage struct {
	dir string
}

// NewLocal returns a filesystem-backed Storage rooted at dir. The directory is created lazily by Ensure.
func NewLocal(dir string) (Storage, error) {
	if dir == "" {
		return nil, fmt.Errorf("upload directory is required")
	}
	return &localStorage{dir: filepath.Clean(dir)}, nil
}

func (l *localStorage) Ensure(_ context.Context) error {
	if err := os.MkdirAll(l.dir, 0o755); err != nil {
		return fmt.Errorf("create upload dir: %w", err)
	}
	return nil
}

func (l *localStorage) Put(ctx context.Context, originalFilename string, r io.Reader, opt PutObjectOptions) (ObjectInfo, error) {
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	name := uuid.NewString() + filepath.Ext(originalFilename)
	final := filepath.Join(l.dir, name)

	tmp, err := os.CreateTemp(l.dir, ".upload-*")
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	committed := false
	defer func() {
		if !committed {
			_ = tmp.Close()
			_ = os.Remove(tmpName)
		}
	}()

	n, err := io.Copy(tmp, r)
	if err != nil {
		return ObjectInfo{}, fmt.Errorf("write %s: %w", name, err)
	}
	if opt.Size >= 0 && n != opt.Size {
		return ObjectInfo{}, fmt.Errorf("write %s: wrote %d of %d bytes", name, n, opt.Size)
	}
	if err := tmp.Sync(); err != nil {
		return ObjectInfo{}, fmt.Errorf("sync %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return ObjectInfo{}, fmt.Errorf("close %s: %w", name, err)
	}
	if err := ctx.Err(); err != nil {
		return ObjectInfo{}, err
	}
	if err := os.Rename(tmpName, final); err != nil {
		return ObjectInfo{}, fmt.Errorf("commit %s: %w", name, err)
	}
	committed = true

	return ObjectInfo{
		Key:         filepath.ToSlash(final),
		Size:        n,
		ContentType: opt.ContentType,
	}, nil
}

func (l *localStorage) Delete(_ context.Context, key string) error {
	return os.Remove(filepath.FromSlash(key))
}
