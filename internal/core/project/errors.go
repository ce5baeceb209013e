// Package project validates project names, decides how to treat an existing
// target directory and builds the initial package.json manifest.
package project

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the project package.
var (
	// ErrInvalidName indicates the project name cannot be used as a package name.
	ErrInvalidName = errors.New("invalid project name")

	// ErrConflictAborted indicates the user cancelled at the directory conflict prompt.
	ErrConflictAborted = errors.New("project creation cancelled at directory conflict")

	// ErrNoProjectRoot indicates no package.json was found in the directory or its parents.
	ErrNoProjectRoot = errors.New("no package.json found in current directory or any parent")
)

// ValidationError describes why a project name was rejected.
type ValidationError struct {
	Name     string
	Problems []string
	Reserved bool // Name collides with a Node.js core module or a reserved word
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid project name %q: %s", e.Name, strings.Join(e.Problems, "; "))
}

// Is reports ErrInvalidName as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidName
}
