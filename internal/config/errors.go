// Package config loads the user rc file (~/.seedrc.yaml) with environment
// overrides and stores presets the user saves from manual configuration.
package config

import (
	"errors"
	"fmt"
)

// Sentinel errors for configuration operations.
var (
	// ErrInvalidConfig indicates the rc file could not be parsed or holds bad values.
	ErrInvalidConfig = errors.New("config: invalid configuration")

	// ErrNotLoaded indicates Settings was called before Load.
	ErrNotLoaded = errors.New("config: not loaded, call Load() first")
)

// ValidationError represents a single invalid setting.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

func (e *ValidationError) Error() string {
	if e.Value != nil {
		return fmt.Sprintf("config: field %q: %s (got: %v)", e.Field, e.Message, e.Value)
	}
	return fmt.Sprintf("config: field %q: %s", e.Field, e.Message)
}

// Unwrap lets callers match with errors.Is(err, ErrInvalidConfig).
func (e *ValidationError) Unwrap() error {
	return ErrInvalidConfig
}
