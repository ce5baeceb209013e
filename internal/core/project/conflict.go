package project

import (
	"context"
	"fmt"
	"io"
	"log/slog"
)

// Action is the outcome of directory conflict resolution.
type Action int

const (
	// ProceedClean writes into an empty target. When the target already
	// exists the caller removes it first.
	ProceedClean Action = iota
	// ProceedMerge writes into the existing target, keeping unrelated files.
	ProceedMerge
	// Cancel stops the run. Resolve turns it into ErrConflictAborted.
	Cancel
)

func (a Action) String() string {
	switch a {
	case ProceedClean:
		return "overwrite"
	case ProceedMerge:
		return "merge"
	case Cancel:
		return "cancel"
	default:
		return fmt.Sprintf("Action(%d)", int(a))
	}
}

// Intent carries the conflict-related command line flags.
type Intent struct {
	Force      bool
	Merge      bool
	CurrentDir bool // Target is the working directory ("seed create .")
}

// Decision is the resolved way to proceed.
type Decision struct {
	Action Action
	Exists bool // Target existed when Resolve ran
}

// RemoveExisting reports whether the caller must delete the target tree
// before writing.
func (d Decision) RemoveExisting() bool {
	return d.Action == ProceedClean && d.Exists
}

// Prompter asks the user how to handle an existing target.
type Prompter interface {
	// ConfirmCurrentDir asks whether to generate into the working directory.
	ConfirmCurrentDir(ctx context.Context, path string) (bool, error)
	// ChooseAction asks whether to overwrite, merge or cancel.
	ChooseAction(ctx context.Context, path string) (Action, error)
}

// ExistsFunc reports whether path exists.
type ExistsFunc func(ctx context.Context, path string) (bool, error)

// ConflictResolver decides what to do when the target directory exists.
// It never modifies the filesystem.
type ConflictResolver struct {
	exists   ExistsFunc
	prompter Prompter
	logger   *slog.Logger
}

// NewConflictResolver creates a ConflictResolver. prompter may be nil for
// non-interactive runs; an existing target then requires --force or --merge.
func NewConflictResolver(exists ExistsFunc, prompter Prompter, logger *slog.Logger) *ConflictResolver {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &ConflictResolver{
		exists:   exists,
		prompter: prompter,
		logger:   logger.With("module", "conflict"),
	}
}

// Resolve returns how to proceed with path.
//
// A nonexistent target proceeds clean without prompting. --force proceeds
// clean and --merge proceeds merging. Otherwise the prompter chooses. The
// working directory is never removed: after confirmation it is merged into.
func (r *ConflictResolver) Resolve(ctx context.Context, path string, intent Intent) (Decision, error) {
	if err := ctx.Err(); err != nil {
		return Decision{}, err
	}

	exists, err := r.exists(ctx, path)
	if err != nil {
		return Decision{}, fmt.Errorf("check target %s: %w", path, err)
	}

	if !exists {
		return Decision{Action: ProceedClean}, nil
	}

	if intent.CurrentDir {
		return r.resolveCurrentDir(ctx, path, intent)
	}

	switch {
	case intent.Force:
		r.logger.Debug("target exists, overwriting", "path", path)
		return Decision{Action: ProceedClean, Exists: true}, nil
	case intent.Merge:
		r.logger.Debug("target exists, merging", "path", path)
		return Decision{Action: ProceedMerge, Exists: true}, nil
	}

	if r.prompter == nil {
		return Decision{}, fmt.Errorf("target directory %s already exists, use --force or --merge", path)
	}

	action, err := r.prompter.ChooseAction(ctx, path)
	if err != nil {
		return Decision{}, err
	}
	if action == Cancel {
		return Decision{}, ErrConflictAborted
	}
	return Decision{Action: action, Exists: true}, nil
}

func (r *ConflictResolver) resolveCurrentDir(ctx context.Context, path string, intent Intent) (Decision, error) {
	if !intent.Force && r.prompter != nil {
		ok, err := r.prompter.ConfirmCurrentDir(ctx, path)
		if err != nil {
			return Decision{}, err
		}
		if !ok {
			return Decision{}, ErrConflictAborted
		}
	}
	return Decision{Action: ProceedMerge, Exists: true}, nil
}
