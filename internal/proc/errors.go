// Package proc locates external executables and runs them with either
// inherited or captured standard streams.
package proc

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is matched by every ExecutableNotFoundError.
var ErrNotFound = errors.New("proc: executable not found")

// ExecutableNotFoundError reports a command that could not be located on
// the search path or in any fallback directory.
type ExecutableNotFoundError struct {
	Command string
}

func (e *ExecutableNotFoundError) Error() string {
	return fmt.Sprintf("executable %q not found", e.Command)
}

// Is lets callers match with errors.Is(err, ErrNotFound).
func (e *ExecutableNotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// CommandFailedError reports a process that exited with a non-zero code.
// Stdout and Stderr are populated only when output was captured.
type CommandFailedError struct {
	Command  string
	Args     []string
	ExitCode int
	Stdout   string
	Stderr   string
}

func (e *CommandFailedError) Error() string {
	msg := fmt.Sprintf("%s exited with code %d", e.commandLine(), e.ExitCode)
	if detail := firstLine(e.Stderr); detail != "" {
		msg += ": " + detail
	}
	return msg
}

func (e *CommandFailedError) commandLine() string {
	if len(e.Args) == 0 {
		return e.Command
	}
	return e.Command + " " + strings.Join(e.Args, " ")
}

// LaunchError wraps a failure to start a process that was found on disk,
// for example a permission error or a bad interpreter line.
type LaunchError struct {
	Command string
	Err     error
}

func (e *LaunchError) Error() string {
	return fmt.Sprintf("launch %s: %v", e.Command, e.Err)
}

func (e *LaunchError) Unwrap() error {
	return e.Err
}

func firstLine(s string) string {
	s = strings.TrimSpace(s)
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	return strings.TrimSpace(s)
}
