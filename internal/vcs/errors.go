// Package vcs initializes a git repository in a freshly created project.
package vcs

import (
	"fmt"
	"strings"
)

// Error reports a failed git operation. Op is one of "init", "add" or
// "commit".
type Error struct {
	Op     string
	Dir    string
	Stderr string
	Err    error
}

func (e *Error) Error() string {
	msg := fmt.Sprintf("git %s in %s: %v", e.Op, e.Dir, e.Err)
	if s := strings.TrimSpace(e.Stderr); s != "" && !strings.Contains(msg, s) {
		msg += ": " + s
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}
