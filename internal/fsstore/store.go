// Package fsstore is the file store used while creating a project:
// directory creation, atomic writes, existence checks and tree removal.
package fsstore

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modu-ai/seedkit/internal/defs"
	"github.com/modu-ai/seedkit/internal/resilience"
)

// Store performs file operations on the local filesystem.
type Store struct {
	removePolicy resilience.RetryPolicy
	logger       *slog.Logger
}

// New creates a Store. A nil logger discards output.
func New(logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Store{
		removePolicy: resilience.DefaultRemovePolicy,
		logger:       logger.With("module", "fsstore"),
	}
}

// EnsureDir creates path and any missing parents.
func (s *Store) EnsureDir(_ context.Context, path string) error {
	if err := os.MkdirAll(path, defs.DirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", path, err)
	}
	return nil
}

// WriteFile writes data to path through a temporary file in the same
// directory, creating parent directories first.
func (s *Store) WriteFile(ctx context.Context, path string, data []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	dir := filepath.Dir(path)
	if err := s.EnsureDir(ctx, dir); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	tmpName := tmp.Name()
	defer func() { _ = os.Remove(tmpName) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write %s: %w", path, err)
	}
	if err := tmp.Chmod(defs.FilePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("chmod %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		return fmt.Errorf("rename %s: %w", path, err)
	}

	s.logger.Debug("file written", "path", path, "bytes", len(data))
	return nil
}

// ReadFile returns the contents of path.
func (s *Store) ReadFile(_ context.Context, path string) ([]byte, error) {
	return os.ReadFile(path)
}

// Exists reports whether path exists. Errors other than not-exist are
// returned so a permission problem is not mistaken for a free path.
func (s *Store) Exists(_ context.Context, path string) (bool, error) {
	_, err := os.Lstat(path)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
}

// RemoveAll deletes path and everything below it, retrying transient
// failures.
func (s *Store) RemoveAll(ctx context.Context, path string) error {
	s.logger.Debug("removing tree", "path", path)
	err := resilience.Retry(ctx, s.removePolicy, func() error {
		return os.RemoveAll(path)
	})
	if err != nil {
		return fmt.Errorf("remove %s: %w", path, err)
	}
	return nil
}
