// Package creator runs a project creation: preset resolution, directory
// conflict handling, file generation, dependency installation, completion
// hooks and git initialization, emitting a lifecycle event for each step.
package creator

import (
	"context"
	"errors"
	"fmt"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/event"
	"github.com/modu-ai/seedkit/internal/hook"
	"github.com/modu-ai/seedkit/internal/preset"
	"github.com/modu-ai/seedkit/internal/proc"
	"github.com/modu-ai/seedkit/internal/vcs"
)

// Error is returned by Create for every fatal failure. Phase names the
// step that failed.
type Error struct {
	Phase event.Phase
	State State // State the run was leaving
	Err   error
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %v", e.Phase, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Kind classifies a creation failure for presentation.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindPresetNotFound
	KindConflictAborted
	KindExecutableNotFound
	KindCommandFailed
	KindHookFailed
	KindVersionControl
	KindCancelled
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindPresetNotFound:
		return "preset-not-found"
	case KindConflictAborted:
		return "conflict-aborted"
	case KindExecutableNotFound:
		return "executable-not-found"
	case KindCommandFailed:
		return "command-failed"
	case KindHookFailed:
		return "hook-failed"
	case KindVersionControl:
		return "version-control"
	case KindCancelled:
		return "cancelled"
	default:
		return "internal"
	}
}

// KindOf classifies err. A hook that failed because its script exited
// non-zero is KindHookFailed.
func KindOf(err error) Kind {
	var (
		nameErr     *project.ValidationError
		notFound    *preset.NotFoundError
		hookErr     *hook.FailedError
		missingExec *proc.ExecutableNotFoundError
		cmdErr      *proc.CommandFailedError
		vcsErr      *vcs.Error
	)
	switch {
	case err == nil:
		return KindInternal
	case errors.As(err, &hookErr):
		return KindHookFailed
	case errors.Is(err, project.ErrConflictAborted):
		return KindConflictAborted
	case errors.As(err, &nameErr),
		errors.Is(err, preset.ErrInvalidPreset),
		errors.Is(err, preset.ErrInteractionRequired):
		return KindValidation
	case errors.As(err, &notFound):
		return KindPresetNotFound
	case errors.As(err, &missingExec):
		return KindExecutableNotFound
	case errors.As(err, &cmdErr):
		return KindCommandFailed
	case errors.As(err, &vcsErr):
		return KindVersionControl
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCancelled
	default:
		return KindInternal
	}
}
