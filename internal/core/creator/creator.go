package creator

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/google/uuid"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/event"
	"github.com/modu-ai/seedkit/internal/hook"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
)

// DefaultGitMessage is the initial commit message when none is given.
const DefaultGitMessage = "init"

// GitOptions controls repository initialization.
type GitOptions struct {
	Skip     bool   // --no-git
	Message  string // Commit message; DefaultGitMessage when empty
	Explicit bool   // --git was given: initialize even inside an existing work tree
}

// Request is one creation invocation.
type Request struct {
	ProjectName string
	TargetDir   string // Defaults to ProjectName relative to the working directory
	CurrentDir  bool   // Creating into the working directory ("seed create .")
	Source      preset.Source
	Force       bool
	Merge       bool
	Install     pkgmgr.InstallOptions
	Git         GitOptions
}

// Result describes a finished run.
type Result struct {
	RunID          string
	ProjectName    string
	Root           string
	Preset         preset.Preset
	PackageManager pkgmgr.Variant
	Files          []string // Relative paths written by project-init and generate-files
	GitInitialized bool
	GitError       error    // Set when git initialization failed; the run still succeeded
	Warnings       []string // Non-fatal problems, such as a failed git commit
	Duration       time.Duration
}

// Deps are the collaborators of a Creator. Presets, Conflicts, Store,
// Generator and Installers are required.
type Deps struct {
	Presets    PresetResolver
	Conflicts  ConflictResolver
	Store      FileStore
	Generator  Generator
	Installers InstallerFactory
	VCS        VersionControl  // nil disables git
	Events     event.Publisher // nil drops events
	Hooks      []hook.Handler  // Registered before generator hooks on every run
	Logger     *slog.Logger
	Clock      func() time.Time
}

// Creator runs creations. A Creator can run any number of creations, one
// at a time or concurrently; each run has its own state.
type Creator struct {
	deps   Deps
	logger *slog.Logger
}

// New creates a Creator.
func New(deps Deps) *Creator {
	logger := deps.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	return &Creator{deps: deps, logger: logger.With("module", "creator")}
}

// run is the per-invocation creation context. Only the preset, manifest
// and decision are attached after construction.
type run struct {
	id        string
	req       Request
	root      string
	started   time.Time
	preset    preset.Preset
	manifest  *project.Manifest
	variant   pkgmgr.Variant
	decision  project.Decision
	installer Installer
	hooks     *hook.Registry
	result    *Result
	logger    *slog.Logger
}

// Create runs the state machine to completion. Every fatal failure emits
// an error event and returns *Error wrapping the cause; no event follows.
func (c *Creator) Create(ctx context.Context, req Request) (*Result, error) {
	r, err := c.newRun(req)
	if err != nil {
		return nil, c.fail(r, StateStart, event.PhaseStart, err)
	}
	r.logger.Info("creation started", "root", r.root)

	state := StateStart
	for state != StateDone {
		step, ok := transitions[state]
		if !ok {
			return nil, c.fail(r, state, event.PhaseError, fmt.Errorf("no transition from state %s", state))
		}
		if err := ctx.Err(); err != nil {
			return nil, c.fail(r, state, step.phase, err)
		}
		next, err := step.fn(c, ctx, r)
		if err != nil {
			return nil, c.fail(r, state, step.phase, err)
		}
		r.logger.Debug("transition", "from", state.String(), "to", next.String())
		state = next
	}

	r.result.Duration = c.deps.Clock().Sub(r.started)
	c.emit(r, event.PhaseDone, nil)
	r.logger.Info("creation finished", "files", len(r.result.Files), "duration", r.result.Duration)
	return r.result, nil
}

func (c *Creator) newRun(req Request) (*run, error) {
	id := uuid.NewString()
	logger := c.logger.With("run_id", id, "project", req.ProjectName)
	r := &run{
		id:      id,
		req:     req,
		started: c.deps.Clock(),
		hooks:   hook.NewRegistry(logger),
		logger:  logger,
	}
	r.result = &Result{RunID: id, ProjectName: req.ProjectName}
	for _, h := range c.deps.Hooks {
		r.hooks.Register(h)
	}

	target := req.TargetDir
	if target == "" {
		target = req.ProjectName
	}
	root, err := filepath.Abs(target)
	if err != nil {
		return r, fmt.Errorf("resolve target directory: %w", err)
	}
	r.root = root
	r.result.Root = root
	return r, nil
}

// fail emits the error event and wraps err.
func (c *Creator) fail(r *run, state State, phase event.Phase, err error) error {
	c.emit(r, event.PhaseError, err)
	if errors.Is(err, project.ErrConflictAborted) {
		r.logger.Info("creation cancelled", "phase", phase)
	} else {
		r.logger.Error("creation failed", "phase", phase, "state", state.String(), "error", err)
	}
	return &Error{Phase: phase, State: state, Err: err}
}

func (c *Creator) emit(r *run, phase event.Phase, err error) {
	if c.deps.Events == nil {
		return
	}
	c.deps.Events.Publish(event.Event{
		Phase:   phase,
		Project: r.req.ProjectName,
		Path:    r.root,
		Err:     err,
		Time:    c.deps.Clock(),
	})
}
