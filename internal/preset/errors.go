// Package preset resolves the configuration a project is created from:
// a named preset, an inline JSON payload, the default preset, or answers
// collected interactively.
package preset

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for the preset package.
var (
	// ErrInteractionRequired is returned when no preset source was given
	// and no prompter is available to ask the user.
	ErrInteractionRequired = errors.New("preset: no preset given and prompting is unavailable")

	// ErrInvalidPreset is matched by every ValidationError.
	ErrInvalidPreset = errors.New("preset: invalid preset")
)

// NotFoundError reports a named preset that is neither built in nor saved.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("preset %q not found", e.Name)
}

// ValidationError reports a malformed preset payload.
type ValidationError struct {
	Source string   // "inline", a file path, or a preset name
	Issues []string // One line per schema violation
	Err    error    // Underlying decode error, if any
}

func (e *ValidationError) Error() string {
	var b strings.Builder
	fmt.Fprintf(&b, "invalid preset from %s", e.Source)
	switch {
	case len(e.Issues) > 0:
		b.WriteString(": ")
		b.WriteString(strings.Join(e.Issues, "; "))
	case e.Err != nil:
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}

// Is lets callers match with errors.Is(err, ErrInvalidPreset).
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidPreset
}
