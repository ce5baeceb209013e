package fsstore

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/aymanbagabas/go-udiff"
)

// Preview returns a unified diff between the file at path and data.
// changed is false only when the file already holds data. A missing file
// is reported as changed with an empty diff.
func (s *Store) Preview(_ context.Context, path string, data []byte) (diff string, changed bool, err error) {
	current, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", true, nil
	}
	if err != nil {
		return "", false, err
	}
	if string(current) == string(data) {
		return "", false, nil
	}
	name := filepath.Base(path)
	return udiff.Unified("a/"+name, "b/"+name, string(current), string(data)), true, nil
}
