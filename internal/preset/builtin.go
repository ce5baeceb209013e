package preset

import (
	"maps"
	"slices"
)

// Plugin ids understood by the file generator.
const (
	PluginBabel      = "@babel/core"
	PluginTypeScript = "typescript"
	PluginESLint     = "eslint"
	PluginPrettier   = "prettier"
	PluginVitest     = "vitest"
)

// DefaultName is the preset used by --default.
const DefaultName = "default"

// Feature is one choice offered during manual configuration.
type Feature struct {
	ID          string
	Label       string
	Description string
	Plugin      string
	Options     PluginOptions
	Default     bool // Pre-selected in the prompt
}

// Features returns the features offered during manual configuration.
func Features() []Feature {
	return []Feature{
		{ID: "babel", Label: "Babel", Description: "Transpile modern JavaScript", Plugin: PluginBabel,
			Options: PluginOptions{"version": "^7.24.0"}, Default: true},
		{ID: "typescript", Label: "TypeScript", Description: "Static types and tsc checks", Plugin: PluginTypeScript,
			Options: PluginOptions{"version": "^5.4.0"}},
		{ID: "linter", Label: "Linter", Description: "ESLint with fix on create", Plugin: PluginESLint,
			Options: PluginOptions{"version": "^8.57.0", "lintOnCreate": true}, Default: true},
		{ID: "formatter", Label: "Formatter", Description: "Prettier", Plugin: PluginPrettier,
			Options: PluginOptions{"version": "^3.2.0"}},
		{ID: "unit", Label: "Unit testing", Description: "Vitest", Plugin: PluginVitest,
			Options: PluginOptions{"version": "^1.6.0"}},
	}
}

// FromFeatures builds a preset from selected feature ids. Unknown ids are
// ignored.
func FromFeatures(ids []string, useConfigFiles bool) Preset {
	p := Preset{UseConfigFiles: useConfigFiles, Plugins: map[string]PluginOptions{}}
	for _, f := range Features() {
		if slices.Contains(ids, f.ID) {
			p.Plugins[f.Plugin] = PluginOptions(cloneValue(map[string]any(f.Options)).(map[string]any))
		}
	}
	return p
}

// builtins is the static registry of presets shipped with seed.
var builtins = map[string]Preset{
	DefaultName: {
		Name:        DefaultName,
		Description: "Babel and ESLint",
		Plugins: map[string]PluginOptions{
			PluginBabel:  {"version": "^7.24.0"},
			PluginESLint: {"version": "^8.57.0", "lintOnCreate": true},
		},
	},
	"typescript": {
		Name:           "typescript",
		Description:    "TypeScript, ESLint, Prettier and Vitest",
		UseConfigFiles: true,
		Plugins: map[string]PluginOptions{
			PluginTypeScript: {"version": "^5.4.0"},
			PluginESLint:     {"version": "^8.57.0", "lintOnCreate": true},
			PluginPrettier:   {"version": "^3.2.0"},
			PluginVitest:     {"version": "^1.6.0"},
		},
	},
	"minimal": {
		Name:        "minimal",
		Description: "package.json only",
		Plugins:     map[string]PluginOptions{},
	},
}

// Builtin returns a copy of the built-in preset called name.
func Builtin(name string) (Preset, bool) {
	p, ok := builtins[name]
	if !ok {
		return Preset{}, false
	}
	return p.Clone(), true
}

// BuiltinNames returns the built-in preset names, sorted.
func BuiltinNames() []string {
	return slices.Sorted(maps.Keys(builtins))
}
