package preset

import (
	"fmt"
	"maps"
	"slices"

	"github.com/modu-ai/seedkit/internal/pkgmgr"
)

// PluginOptions are free-form options for one plugin. The "version" key,
// when present, is the semver range written to package.json.
type PluginOptions map[string]any

// Options are preset-wide settings.
type Options struct {
	PackageManager string `json:"packageManager,omitempty" yaml:"packageManager,omitempty" mapstructure:"packageManager"`
	Registry       string `json:"registry,omitempty" yaml:"registry,omitempty" mapstructure:"registry"`
}

// Preset is a resolved bundle of project configuration.
type Preset struct {
	Name           string                   `json:"name,omitempty" yaml:"name,omitempty" mapstructure:"name"`
	Description    string                   `json:"description,omitempty" yaml:"description,omitempty" mapstructure:"description"`
	UseConfigFiles bool                     `json:"useConfigFiles" yaml:"useConfigFiles" mapstructure:"useConfigFiles"`
	Plugins        map[string]PluginOptions `json:"plugins" yaml:"plugins" mapstructure:"plugins"`
	Options        Options                  `json:"options" yaml:"options" mapstructure:"options"`
}

// PluginIDs returns plugin ids in sorted order.
func (p Preset) PluginIDs() []string {
	return slices.Sorted(maps.Keys(p.Plugins))
}

// HasPlugin reports whether id is part of the preset.
func (p Preset) HasPlugin(id string) bool {
	_, ok := p.Plugins[id]
	return ok
}

// Variant returns the package manager selected by the preset.
func (p Preset) Variant() (pkgmgr.Variant, error) {
	return pkgmgr.ParseVariant(p.Options.PackageManager)
}

// Clone returns a deep copy so a resolved preset cannot be changed
// through a map shared with its source.
func (p Preset) Clone() Preset {
	out := p
	if p.Plugins != nil {
		out.Plugins = make(map[string]PluginOptions, len(p.Plugins))
		for id, opts := range p.Plugins {
			out.Plugins[id] = cloneValue(map[string]any(opts)).(map[string]any)
		}
	}
	return out
}

func cloneValue(v any) any {
	switch val := v.(type) {
	case map[string]any:
		m := make(map[string]any, len(val))
		for k, item := range val {
			m[k] = cloneValue(item)
		}
		return m
	case PluginOptions:
		return cloneValue(map[string]any(val))
	case []any:
		s := make([]any, len(val))
		for i, item := range val {
			s[i] = cloneValue(item)
		}
		return s
	default:
		return val
	}
}

// Validate checks fields the schema cannot express.
func (p Preset) Validate() error {
	var issues []string
	for id := range p.Plugins {
		if id == "" {
			issues = append(issues, "plugin id must not be empty")
		}
	}
	if p.Options.PackageManager != "" {
		if _, err := pkgmgr.ParseVariant(p.Options.PackageManager); err != nil {
			issues = append(issues, fmt.Sprintf("options.packageManager: %v", err))
		}
	}
	if len(issues) > 0 {
		return &ValidationError{Source: p.source(), Issues: issues}
	}
	return nil
}

func (p Preset) source() string {
	if p.Name != "" {
		return fmt.Sprintf("preset %q", p.Name)
	}
	return "preset"
}
