package project

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/modu-ai/seedkit/internal/defs"
)

// FindProjectRoot locates the nearest directory at or above start that
// holds a package.json. It returns an absolute path.
func FindProjectRoot(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}

	for {
		info, err := os.Stat(filepath.Join(dir, defs.PackageJSON))
		if err == nil && !info.IsDir() {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%w (searched from %s)", ErrNoProjectRoot, start)
		}
		dir = parent
	}
}

// FindProjectRootOrCurrent is like FindProjectRoot but falls back to the
// working directory when no project is found.
func FindProjectRootOrCurrent() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("get working directory: %w", err)
	}
	if root, err := FindProjectRoot(wd); err == nil {
		return root, nil
	}
	return filepath.Abs(wd)
}
