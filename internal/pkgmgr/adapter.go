package pkgmgr

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/modu-ai/seedkit/internal/proc"
)

// Runner runs an external command. *proc.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, name string, args []string, opts proc.RunOptions) (*proc.Output, error)
}

// InstallOptions are the flags accepted by InstallAll.
type InstallOptions struct {
	Production bool // Skip dev dependencies
	Force      bool // Refetch even when cached
	NoOptional bool // Skip optional dependencies
	DryRun     bool // Verify without writing node_modules
}

// AddOptions are the flags accepted by InstallPackages.
type AddOptions struct {
	Dev    bool // Save as a dev dependency
	Global bool // Install globally; Dev is ignored
	Force  bool
}

// Adapter runs one package manager in one project directory.
type Adapter struct {
	variant  Variant
	desc     Descriptor
	dir      string
	registry string
	runner   Runner
	logger   *slog.Logger
}

// Option customizes an Adapter.
type Option func(*Adapter)

// WithRegistry sets the registry URL passed to install, add, update and
// outdated.
func WithRegistry(url string) Option {
	return func(a *Adapter) { a.registry = url }
}

// WithLogger sets the adapter logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Adapter) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// New creates an Adapter bound to variant for the lifetime of the value.
func New(variant Variant, dir string, runner Runner, opts ...Option) (*Adapter, error) {
	if !variant.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrUnknownVariant, uint8(variant))
	}
	a := &Adapter{
		variant: variant,
		desc:    variant.Descriptor(),
		dir:     dir,
		runner:  runner,
		logger:  slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(a)
	}
	a.logger = a.logger.With("module", "pkgmgr", "manager", a.desc.Name)
	return a, nil
}

// Variant returns the bound variant.
func (a *Adapter) Variant() Variant { return a.variant }

// Descriptor returns the bound descriptor.
func (a *Adapter) Descriptor() Descriptor { return a.desc }

// --- argument construction ---

// InstallAllArgs builds the argument vector for InstallAll.
func (a *Adapter) InstallAllArgs(opts InstallOptions) []string {
	args := base(a.desc.InstallAll)
	args = appendIf(args, opts.Production, a.desc.ProductionFlag)
	args = appendIf(args, opts.Force, a.desc.ForceFlag)
	args = appendIf(args, opts.NoOptional, a.desc.NoOptionalFlag)
	args = appendIf(args, opts.DryRun, a.desc.DryRunFlag)
	return append(args, a.desc.registryArgs(a.registry)...)
}

// InstallPackagesArgs builds the argument vector for InstallPackages.
func (a *Adapter) InstallPackagesArgs(pkgs []string, opts AddOptions) []string {
	var args []string
	var devFlag bool
	switch {
	case opts.Global:
		args = base(a.desc.AddGlobal)
	case opts.Dev && len(a.desc.AddDev) > 0:
		args = base(a.desc.AddDev)
	default:
		args = base(a.desc.Add)
		devFlag = opts.Dev
	}
	args = append(args, pkgs...)
	args = appendIf(args, devFlag, a.desc.DevFlag)
	args = appendIf(args, opts.Force, a.desc.ForceFlag)
	return append(args, a.desc.registryArgs(a.registry)...)
}

// UninstallArgs builds the argument vector for Uninstall.
func (a *Adapter) UninstallArgs(pkgs []string) []string {
	return append(base(a.desc.Uninstall), pkgs...)
}

// UpdateArgs builds the argument vector for Update. An empty list updates
// everything and adds no package arguments.
func (a *Adapter) UpdateArgs(pkgs []string) []string {
	args := append(base(a.desc.Update), pkgs...)
	return append(args, a.desc.registryArgs(a.registry)...)
}

// RunScriptArgs builds the argument vector for RunScript.
func (a *Adapter) RunScriptArgs(script string, scriptArgs []string) []string {
	args := append(base(a.desc.Run), script)
	if len(scriptArgs) > 0 {
		args = appendIf(args, true, a.desc.ScriptArgSeparator)
		args = append(args, scriptArgs...)
	}
	return args
}

func appendIf(args []string, cond bool, flag string) []string {
	if cond && flag != "" {
		return append(args, flag)
	}
	return args
}

// --- operations ---

// InstallAll installs every dependency listed in package.json. Output is
// inherited so the user sees the tool's progress.
func (a *Adapter) InstallAll(ctx context.Context, opts InstallOptions) error {
	return a.exec(ctx, a.InstallAllArgs(opts))
}

// InstallPackages adds pkgs to the project (or globally).
func (a *Adapter) InstallPackages(ctx context.Context, pkgs []string, opts AddOptions) error {
	if len(pkgs) == 0 {
		return ErrNoPackages
	}
	return a.exec(ctx, a.InstallPackagesArgs(pkgs, opts))
}

// Uninstall removes pkgs from the project.
func (a *Adapter) Uninstall(ctx context.Context, pkgs []string) error {
	if len(pkgs) == 0 {
		return ErrNoPackages
	}
	return a.exec(ctx, a.UninstallArgs(pkgs))
}

// Update updates pkgs, or everything when pkgs is empty.
func (a *Adapter) Update(ctx context.Context, pkgs []string) error {
	return a.exec(ctx, a.UpdateArgs(pkgs))
}

// RunScript runs a package.json script with optional arguments.
func (a *Adapter) RunScript(ctx context.Context, script string, scriptArgs ...string) error {
	return a.exec(ctx, a.RunScriptArgs(script, scriptArgs))
}

// CleanCache clears the tool's download cache or store.
func (a *Adapter) CleanCache(ctx context.Context) error {
	return a.exec(ctx, base(a.desc.CleanCache))
}

// GenerateLockFile writes the lock file without installing packages.
func (a *Adapter) GenerateLockFile(ctx context.Context) error {
	return a.exec(ctx, base(a.desc.LockOnly))
}

// ValidateLockFile reports whether the lock file exists and agrees with
// package.json. The check never installs packages. A missing lock file is invalid and no
// command is run.
func (a *Adapter) ValidateLockFile(ctx context.Context) bool {
	lockPath := filepath.Join(a.dir, a.desc.LockFile)
	if _, err := os.Stat(lockPath); err != nil {
		a.logger.Debug("lock file missing", "path", lockPath)
		return false
	}
	_, err := a.capture(ctx, base(a.desc.ValidateLock))
	if err != nil {
		a.logger.Debug("lock file validation failed", "error", err)
		return false
	}
	return true
}

// ListInstalled returns installed top-level packages mapped to their
// versions, optionally restricted to name. Unparseable output yields an
// empty map.
func (a *Adapter) ListInstalled(ctx context.Context, name string) (map[string]string, error) {
	args := base(a.desc.List)
	if name != "" {
		args = append(args, name)
	}
	stdout, err := a.advisory(ctx, args)
	if err != nil {
		return map[string]string{}, err
	}
	return parseListing([]byte(stdout)), nil
}

// CheckOutdated returns packages with newer versions available, optionally
// restricted to name. Unparseable output yields an empty slice.
func (a *Adapter) CheckOutdated(ctx context.Context, name string) ([]Outdated, error) {
	args := base(a.desc.Outdated)
	if name != "" {
		args = append(args, name)
	}
	args = append(args, a.desc.registryArgs(a.registry)...)
	stdout, err := a.advisory(ctx, args)
	if err != nil {
		return []Outdated{}, err
	}
	return parseOutdated([]byte(stdout)), nil
}

func (a *Adapter) exec(ctx context.Context, args []string) error {
	a.logger.Debug("exec", "args", args, "dir", a.dir)
	_, err := a.runner.Run(ctx, a.desc.Executable, args, proc.RunOptions{Dir: a.dir})
	return err
}

func (a *Adapter) capture(ctx context.Context, args []string) (*proc.Output, error) {
	a.logger.Debug("capture", "args", args, "dir", a.dir)
	return a.runner.Run(ctx, a.desc.Executable, args, proc.RunOptions{Dir: a.dir, Capture: true})
}

// advisory runs a reporting command. Listing tools exit non-zero when they
// have something to report (npm outdated exits 1 when anything is stale),
// so a CommandFailedError still yields its captured stdout.
func (a *Adapter) advisory(ctx context.Context, args []string) (string, error) {
	out, err := a.capture(ctx, args)
	if err == nil {
		return out.Stdout, nil
	}
	var failed *proc.CommandFailedError
	if errors.As(err, &failed) && failed.Stdout != "" {
		return failed.Stdout, nil
	}
	return "", err
}
