// Package cli provides the Cobra command tree and dependency injection
// wiring for the seed CLI. This file defines the Dependencies struct
// (Composition Root) that wires all domain modules together.
package cli

import (
	"fmt"
	"log/slog"
	"os"
	"sync"

	"github.com/modu-ai/seedkit/internal/config"
	"github.com/modu-ai/seedkit/internal/core/creator"
	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/event"
	"github.com/modu-ai/seedkit/internal/fsstore"
	"github.com/modu-ai/seedkit/internal/generator"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
	"github.com/modu-ai/seedkit/internal/proc"
	"github.com/modu-ai/seedkit/internal/ui"
	"github.com/modu-ai/seedkit/internal/vcs"
)

// logLevel is shared by every logger the CLI builds; --debug lowers it.
var logLevel = new(slog.LevelVar)

// Dependencies holds all domain-level services used by CLI commands.
// This is the Composition Root: the only place where concrete types
// are instantiated and wired together.
type Dependencies struct {
	Config     *config.Manager
	Lookup     proc.Lookup
	Runner     pkgmgr.Runner
	Store      *fsstore.Store
	Generator  *generator.Generator
	Installers creator.InstallerFactory
	VCS        creator.VersionControl
	Theme      *ui.Theme
	Headless   *ui.HeadlessManager
	Logger     *slog.Logger

	settingsOnce sync.Once
	settings     *config.Settings
	settingsErr  error
}

// deps is the global dependencies instance, initialized by InitDependencies.
var deps *Dependencies

// InitDependencies creates and wires all domain dependencies.
// It should be called once during application startup. The rc file is
// read lazily by EnsureSettings so that commands which do not need it
// keep working when it is malformed.
func InitDependencies() {
	logLevel.Set(slog.LevelWarn)
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: logLevel}))

	rcPath, err := config.DefaultPath()
	if err != nil {
		logger.Warn("cannot locate rc file", "error", err)
	}

	lookup := proc.NewResolver()
	runner := proc.NewRunner(lookup, logger)
	store := fsstore.New(logger)

	deps = &Dependencies{
		Config:     config.NewManager(rcPath, logger),
		Lookup:     lookup,
		Runner:     runner,
		Store:      store,
		Generator:  generator.New(store, logger),
		Installers: creator.AdapterFactory(runner, pkgmgr.WithLogger(logger)),
		VCS:        vcs.New(runner, logger),
		Theme:      ui.NewTheme(),
		Headless:   ui.NewHeadlessManager(),
		Logger:     logger,
	}
}

// GetDeps returns the current dependencies instance.
func GetDeps() *Dependencies {
	return deps
}

// SetDeps replaces the global dependencies. Used in tests.
func SetDeps(d *Dependencies) {
	deps = d
}

// requireDeps returns the dependencies or an error when InitDependencies
// was never called.
func requireDeps() (*Dependencies, error) {
	if deps == nil {
		return nil, fmt.Errorf("dependencies not initialized")
	}
	return deps, nil
}

// EnsureSettings loads the rc file once and applies its log level unless
// --debug already lowered it.
func (d *Dependencies) EnsureSettings() (*config.Settings, error) {
	d.settingsOnce.Do(func() {
		if d.Config == nil {
			d.settings = config.NewDefaultSettings()
			return
		}
		d.settings, d.settingsErr = d.Config.Load()
		if d.settingsErr != nil {
			d.settingsErr = fmt.Errorf("load %s: %w", d.Config.Path(), d.settingsErr)
			return
		}
		if logLevel.Level() != slog.LevelDebug {
			var lvl slog.Level
			if err := lvl.UnmarshalText([]byte(d.settings.LogLevel)); err == nil {
				logLevel.Set(lvl)
			}
		}
	})
	return d.settings, d.settingsErr
}

// presetStore returns the rc file as a preset store, or nil when no rc
// file is configured.
func (d *Dependencies) presetStore() preset.Store {
	if d.Config == nil {
		return nil
	}
	return d.Config
}

// DefaultPackageManager picks the manager used when neither the flags
// nor the preset name one: the rc setting, then the first installed of
// yarn, pnpm and npm.
func (d *Dependencies) DefaultPackageManager(settings *config.Settings) string {
	if settings != nil && settings.PackageManager != "" {
		return settings.PackageManager
	}
	return pkgmgr.Detect(d.Lookup).String()
}

// InstalledManagers lists the package managers found on the search path.
func (d *Dependencies) InstalledManagers() []string {
	var out []string
	for _, v := range pkgmgr.Variants() {
		if _, ok := d.Lookup.Resolve(v.Descriptor().Executable); ok {
			out = append(out, v.String())
		}
	}
	return out
}

// creatorOptions carries the per-invocation parts of a Creator.
type creatorOptions struct {
	workDir  string
	settings *config.Settings
	wizard   interface {
		preset.Prompter
		project.Prompter
	}
	events event.Publisher
}

// NewCreator wires a Creator for one command invocation. A nil wizard
// disables prompting: preset selection then fails and conflicts require
// --force or --merge.
func (d *Dependencies) NewCreator(opts creatorOptions) *creator.Creator {
	var (
		presetPrompter   preset.Prompter
		conflictPrompter project.Prompter
	)
	if opts.wizard != nil {
		presetPrompter = opts.wizard
		conflictPrompter = opts.wizard
	}

	resolver := preset.NewResolver(preset.ResolverOptions{
		WorkDir:  opts.workDir,
		Store:    d.presetStore(),
		Prompter: presetPrompter,
		DefaultPackageManager: func() string {
			return d.DefaultPackageManager(opts.settings)
		},
		InlineConfig:      opts.settings != nil && !opts.settings.UseConfigFiles,
		InstalledManagers: d.InstalledManagers,
		Logger:            d.Logger,
	})

	return creator.New(creator.Deps{
		Presets:    resolver,
		Conflicts:  project.NewConflictResolver(d.Store.Exists, conflictPrompter, d.Logger),
		Store:      d.Store,
		Generator:  d.Generator,
		Installers: d.Installers,
		VCS:        d.VCS,
		Events:     opts.events,
		Logger:     d.Logger,
	})
}
