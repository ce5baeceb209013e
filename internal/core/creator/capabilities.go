package creator

import (
	"context"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/generator"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
)

// PresetResolver picks the preset for a run. *preset.Resolver satisfies it.
type PresetResolver interface {
	Resolve(ctx context.Context, src preset.Source) (preset.Preset, error)
}

// ConflictResolver decides how to treat an existing target.
// *project.ConflictResolver satisfies it.
type ConflictResolver interface {
	Resolve(ctx context.Context, path string, intent project.Intent) (project.Decision, error)
}

// FileStore is the filesystem access of a run. *fsstore.Store satisfies it.
type FileStore interface {
	EnsureDir(ctx context.Context, path string) error
	WriteFile(ctx context.Context, path string, data []byte) error
	Exists(ctx context.Context, path string) (bool, error)
	RemoveAll(ctx context.Context, path string) error
}

// Generator writes the preset's project files. *generator.Generator
// satisfies it.
type Generator interface {
	Generate(ctx context.Context, req generator.GenerateRequest) ([]string, error)
}

// Installer drives the package manager inside the new project.
// *pkgmgr.Adapter satisfies it.
type Installer interface {
	InstallAll(ctx context.Context, opts pkgmgr.InstallOptions) error
	RunScript(ctx context.Context, script string, args ...string) error
	CheckVersion(ctx context.Context) error
}

// InstallerFactory binds an Installer to a variant and project directory.
type InstallerFactory func(variant pkgmgr.Variant, dir, registry string) (Installer, error)

// VersionControl initializes the repository. *vcs.Git satisfies it.
type VersionControl interface {
	Init(ctx context.Context, dir string) error
	StageAll(ctx context.Context, dir string) error
	Commit(ctx context.Context, dir, message string) error
	IsInsideWorkTree(ctx context.Context, dir string) bool
}

// AdapterFactory returns an InstallerFactory producing *pkgmgr.Adapter
// values that run through runner.
func AdapterFactory(runner pkgmgr.Runner, opts ...pkgmgr.Option) InstallerFactory {
	return func(variant pkgmgr.Variant, dir, registry string) (Installer, error) {
		all := append([]pkgmgr.Option{}, opts...)
		if registry != "" {
			all = append(all, pkgmgr.WithRegistry(registry))
		}
		return pkgmgr.New(variant, dir, runner, all...)
	}
}
