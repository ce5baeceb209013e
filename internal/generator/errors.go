// Package generator writes the initial project files for a preset from a
// small fixed set of embedded templates and registers the completion
// hooks those files need.
package generator

import "errors"

// Sentinel errors for the generator package.
var (
	// ErrTemplateNotFound indicates the requested template does not exist.
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingTemplateKey indicates a template referenced a missing data key.
	ErrMissingTemplateKey = errors.New("template references missing key")
)
