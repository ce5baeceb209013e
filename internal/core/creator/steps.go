package creator

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/defs"
	"github.com/modu-ai/seedkit/internal/event"
	"github.com/modu-ai/seedkit/internal/generator"
	"github.com/modu-ai/seedkit/internal/hook"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
)

// stepFunc performs one transition and returns the next state.
type stepFunc func(c *Creator, ctx context.Context, r *run) (State, error)

type transition struct {
	phase event.Phase // Reported on failure
	fn    stepFunc
}

// transitions holds one edge per non-terminal state.
var transitions = map[State]transition{
	StateStart:              {phase: event.PhaseStart, fn: (*Creator).resolvePreset},
	StatePresetResolved:     {phase: event.PhaseStart, fn: (*Creator).validateDirectory},
	StateDirectoryValidated: {phase: event.PhaseProjectInit, fn: (*Creator).initProject},
	StateProjectInitialized: {phase: event.PhaseGenerateFiles, fn: (*Creator).generateFiles},
	StateFilesGenerated:     {phase: event.PhaseDepsInstall, fn: (*Creator).installDeps},
	StateDepsInstalled:      {phase: event.PhaseCompletionHooks, fn: (*Creator).runHooks},
	StateHooksRun:           {phase: event.PhaseGitInit, fn: (*Creator).initGit},
	StateGitInitialized:     {phase: event.PhaseDone, fn: (*Creator).finish},
}

// resolvePreset validates the name before anything else, then resolves
// the preset and everything derived from it so no later step can fail on
// configuration after the disk was touched.
func (c *Creator) resolvePreset(ctx context.Context, r *run) (State, error) {
	if err := project.ValidateName(r.req.ProjectName); err != nil {
		return StateError, err
	}
	c.emit(r, event.PhaseStart, nil)

	p, err := c.deps.Presets.Resolve(ctx, r.req.Source)
	if err != nil {
		return StateError, err
	}

	variant := pkgmgr.Npm
	if p.Options.PackageManager != "" {
		if variant, err = p.Variant(); err != nil {
			return StateError, err
		}
	}

	manifest, err := project.NewManifest(r.req.ProjectName, p)
	if err != nil {
		return StateError, err
	}

	r.preset = p
	r.variant = variant
	r.manifest = manifest
	r.result.Preset = p.Clone()
	r.result.PackageManager = variant
	r.logger.Debug("preset resolved", "preset", p.Name, "package_manager", variant.String())
	return StatePresetResolved, nil
}

func (c *Creator) validateDirectory(ctx context.Context, r *run) (State, error) {
	intent := project.Intent{
		Force:      r.req.Force,
		Merge:      r.req.Merge,
		CurrentDir: r.req.CurrentDir,
	}
	d, err := c.deps.Conflicts.Resolve(ctx, r.root, intent)
	if err != nil {
		return StateError, err
	}
	r.decision = d
	r.logger.Debug("target directory resolved", "action", d.Action.String(), "exists", d.Exists)
	return StateDirectoryValidated, nil
}

func (c *Creator) initProject(ctx context.Context, r *run) (State, error) {
	c.emit(r, event.PhaseProjectInit, nil)

	if r.decision.RemoveExisting() {
		r.logger.Info("removing existing target", "path", r.root)
		if err := c.deps.Store.RemoveAll(ctx, r.root); err != nil {
			return StateError, err
		}
	}
	if err := c.deps.Store.EnsureDir(ctx, r.root); err != nil {
		return StateError, err
	}

	data, err := r.manifest.Encode()
	if err != nil {
		return StateError, err
	}
	if err := c.deps.Store.WriteFile(ctx, filepath.Join(r.root, defs.PackageJSON), data); err != nil {
		return StateError, err
	}

	meta, err := preset.EncodeMetadata(preset.Metadata{
		Preset:  r.preset,
		Name:    r.manifest.Name,
		Created: c.deps.Clock(),
	})
	if err != nil {
		return StateError, err
	}
	if err := c.deps.Store.WriteFile(ctx, filepath.Join(r.root, defs.MetadataJSON), meta); err != nil {
		return StateError, err
	}

	r.result.Files = append(r.result.Files, defs.PackageJSON, defs.MetadataJSON)
	return StateProjectInitialized, nil
}

func (c *Creator) generateFiles(ctx context.Context, r *run) (State, error) {
	c.emit(r, event.PhaseGenerateFiles, nil)

	written, err := c.deps.Generator.Generate(ctx, generator.GenerateRequest{
		Root:        r.root,
		ProjectName: r.manifest.Name,
		Preset:      r.preset.Clone(),
		Merge:       r.decision.Action == project.ProceedMerge,
		Hooks:       r.hooks,
	})
	if err != nil {
		return StateError, err
	}
	for _, f := range written {
		if f != defs.PackageJSON {
			r.result.Files = append(r.result.Files, f)
		}
	}
	return StateFilesGenerated, nil
}

// installDeps runs install-all with inherited output. There is no
// rollback: a failed install leaves the generated files in place so the
// user can rerun the package manager by hand.
func (c *Creator) installDeps(ctx context.Context, r *run) (State, error) {
	c.emit(r, event.PhaseDepsInstall, nil)

	installer, err := c.deps.Installers(r.variant, r.root, r.preset.Options.Registry)
	if err != nil {
		return StateError, err
	}
	r.installer = installer

	if err := installer.CheckVersion(ctx); err != nil {
		r.logger.Warn("package manager version check failed", "error", err)
		r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("%s version check: %v", r.variant, err))
	}
	if err := installer.InstallAll(ctx, r.req.Install); err != nil {
		return StateError, err
	}
	return StateDepsInstalled, nil
}

func (c *Creator) runHooks(ctx context.Context, r *run) (State, error) {
	c.emit(r, event.PhaseCompletionHooks, nil)

	err := r.hooks.Run(ctx, hook.Context{
		ProjectName:    r.manifest.Name,
		Root:           r.root,
		PackageManager: r.variant.String(),
		Scripts:        r.installer,
	})
	if err != nil {
		return StateError, err
	}
	return StateHooksRun, nil
}

// initGit never fails the run. It is skipped without an event when git is
// disabled, unavailable, or the target already sits in a work tree and
// --git was not given.
func (c *Creator) initGit(ctx context.Context, r *run) (State, error) {
	git := c.deps.VCS
	switch {
	case r.req.Git.Skip || git == nil:
		r.logger.Debug("git disabled")
		return StateDone, nil
	case !r.req.Git.Explicit && git.IsInsideWorkTree(ctx, r.root):
		r.logger.Info("target is inside a git work tree, skipping git init")
		return StateDone, nil
	}

	c.emit(r, event.PhaseGitInit, nil)

	message := r.req.Git.Message
	if message == "" {
		message = DefaultGitMessage
	}
	err := git.Init(ctx, r.root)
	if err == nil {
		err = git.StageAll(ctx, r.root)
	}
	if err == nil {
		err = git.Commit(ctx, r.root, message)
	}
	if err != nil {
		r.logger.Warn("git initialization failed", "error", err)
		r.result.GitError = err
		r.result.Warnings = append(r.result.Warnings, fmt.Sprintf("git: %v", err))
		return StateGitInitialized, nil
	}

	r.result.GitInitialized = true
	return StateGitInitialized, nil
}

func (c *Creator) finish(_ context.Context, _ *run) (State, error) {
	return StateDone, nil
}
