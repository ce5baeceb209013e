package preset

import (
	"context"
	"errors"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"path/filepath"
	"slices"

	"github.com/modu-ai/seedkit/internal/defs"
)

// ManualChoice is returned by Prompter.SelectPreset to configure
// features by hand.
const ManualChoice = "__manual__"

// Source is the caller's preset intent, usually from command-line flags.
type Source struct {
	Name    string // --preset: registry name or file path
	Inline  string // --inline-preset: JSON payload
	Default bool   // --default

	PackageManager string // Overrides the preset's package manager
	Registry       string // Overrides the preset's registry
}

// Choice is one entry in the preset selection prompt.
type Choice struct {
	Name        string
	Description string
}

// Prompter collects answers for interactive configuration.
type Prompter interface {
	SelectPreset(ctx context.Context, choices []Choice) (string, error)
	SelectFeatures(ctx context.Context, features []Feature) ([]string, error)
	SelectPackageManager(ctx context.Context, names []string) (string, error)
	// SaveAs asks whether to save a manual preset; "" means no.
	SaveAs(ctx context.Context) (string, error)
}

// Store holds presets saved by the user.
type Store interface {
	SavedPresets() map[string]Preset
	SavePreset(name string, p Preset) error
}

// ResolverOptions configures a Resolver. Only WorkDir is required.
type ResolverOptions struct {
	WorkDir  string   // Directory searched for a project-local metadata file
	Store    Store    // Saved presets; may be nil
	Prompter Prompter // Interactive collector; nil disables prompting

	// DefaultPackageManager is used when neither the source nor the
	// preset names one. It is called at most once per Resolve.
	DefaultPackageManager func() string

	// InlineConfig makes manually configured presets keep plugin
	// configuration in package.json instead of dedicated files.
	InlineConfig bool

	// InstalledManagers lists managers offered during manual configuration.
	InstalledManagers func() []string

	Logger *slog.Logger
}

// Resolver picks the preset for a creation run.
type Resolver struct {
	opts   ResolverOptions
	logger *slog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(opts ResolverOptions) *Resolver {
	logger := opts.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Resolver{opts: opts, logger: logger.With("module", "preset")}
}

// Resolve returns the preset for src. Sources are consulted in the order
// named, inline, default, interactive; the first one present wins and the
// prompter is never called when a flag supplied the preset.
func (r *Resolver) Resolve(ctx context.Context, src Source) (Preset, error) {
	var (
		p   Preset
		err error
	)
	switch {
	case src.Name != "":
		p, err = r.Load(src.Name)
	case src.Inline != "":
		p, err = ParseInline(src.Inline)
	case src.Default:
		p, err = r.Load(DefaultName)
	default:
		p, err = r.interactive(ctx)
	}
	if err != nil {
		return Preset{}, err
	}

	p = p.Clone()
	if p.Plugins == nil {
		p.Plugins = map[string]PluginOptions{}
	}
	if src.PackageManager != "" {
		p.Options.PackageManager = src.PackageManager
	}
	if src.Registry != "" {
		p.Options.Registry = src.Registry
	}
	if p.Options.PackageManager == "" && r.opts.DefaultPackageManager != nil {
		p.Options.PackageManager = r.opts.DefaultPackageManager()
	}
	if err := p.Validate(); err != nil {
		return Preset{}, err
	}

	r.logger.Debug("preset resolved", "name", p.Name, "plugins", p.PluginIDs(), "package_manager", p.Options.PackageManager)
	return p, nil
}

// Load finds a named preset: built-ins first, then saved presets, then
// the project-local metadata file, then a preset file on disk.
func (r *Resolver) Load(name string) (Preset, error) {
	if p, ok := Builtin(name); ok {
		return p, nil
	}
	if r.opts.Store != nil {
		if p, ok := r.opts.Store.SavedPresets()[name]; ok {
			if p.Name == "" {
				p.Name = name
			}
			return p, nil
		}
	}
	if p, ok := r.localPreset(name); ok {
		return p, nil
	}
	if IsFileRef(name) {
		path := name
		if !filepath.IsAbs(path) {
			path = filepath.Join(r.opts.WorkDir, path)
		}
		p, err := LoadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			return Preset{}, &NotFoundError{Name: name}
		}
		return p, err
	}
	return Preset{}, &NotFoundError{Name: name}
}

// localPreset reads the metadata file in WorkDir and returns its preset
// when the name matches.
func (r *Resolver) localPreset(name string) (Preset, bool) {
	if r.opts.WorkDir == "" {
		return Preset{}, false
	}
	m, err := ReadMetadata(filepath.Join(r.opts.WorkDir, defs.MetadataJSON))
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			r.logger.Debug("ignoring unreadable metadata", "error", err)
		}
		return Preset{}, false
	}
	if m.Preset.Name != name {
		return Preset{}, false
	}
	return m.Preset, true
}

// Choices lists the presets offered by the selection prompt, saved
// presets first, then built-ins.
func (r *Resolver) Choices() []Choice {
	var out []Choice
	seen := map[string]bool{}
	if r.opts.Store != nil {
		saved := r.opts.Store.SavedPresets()
		for _, name := range slices.Sorted(maps.Keys(saved)) {
			out = append(out, Choice{Name: name, Description: saved[name].Description})
			seen[name] = true
		}
	}
	for _, name := range BuiltinNames() {
		if seen[name] {
			continue
		}
		p, _ := Builtin(name)
		out = append(out, Choice{Name: name, Description: p.Description})
	}
	return out
}

func (r *Resolver) interactive(ctx context.Context) (Preset, error) {
	if r.opts.Prompter == nil {
		return Preset{}, ErrInteractionRequired
	}

	name, err := r.opts.Prompter.SelectPreset(ctx, r.Choices())
	if err != nil {
		return Preset{}, err
	}
	if name != ManualChoice {
		return r.Load(name)
	}
	return r.manual(ctx)
}

func (r *Resolver) manual(ctx context.Context) (Preset, error) {
	ids, err := r.opts.Prompter.SelectFeatures(ctx, Features())
	if err != nil {
		return Preset{}, err
	}
	p := FromFeatures(ids, !r.opts.InlineConfig)

	if r.opts.InstalledManagers != nil {
		if installed := r.opts.InstalledManagers(); len(installed) > 1 {
			pm, err := r.opts.Prompter.SelectPackageManager(ctx, installed)
			if err != nil {
				return Preset{}, err
			}
			p.Options.PackageManager = pm
		} else if len(installed) == 1 {
			p.Options.PackageManager = installed[0]
		}
	}

	if r.opts.Store == nil {
		return p, nil
	}
	saveName, err := r.opts.Prompter.SaveAs(ctx)
	if err != nil {
		return Preset{}, err
	}
	if saveName != "" {
		p.Name = saveName
		if err := r.opts.Store.SavePreset(saveName, p); err != nil {
			// Saving is a convenience; the run continues with the preset.
			r.logger.Warn("could not save preset", "name", saveName, "error", err)
		}
	}
	return p, nil
}
