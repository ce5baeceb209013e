package generator

import (
	"github.com/modu-ai/seedkit/internal/preset"
)

// pluginSpec describes what a known plugin adds to a project.
type pluginSpec struct {
	scripts      func(d TemplateData) map[string]string
	devDeps      func(d TemplateData) map[string]string // Companion packages beyond the plugin itself
	configFile   string                                 // Written when the preset uses dedicated config files
	manifestKey  string                                 // package.json field otherwise; empty means always a file
	config       func(d TemplateData) any
	templateDirs []string
}

// plugins is keyed by plugin id.
var plugins = map[string]pluginSpec{
	preset.PluginBabel: {
		scripts: func(d TemplateData) map[string]string {
			if d.TypeScript {
				return map[string]string{"build": "babel src -d dist --extensions .ts"}
			}
			return map[string]string{"build": "babel src -d dist"}
		},
		devDeps: func(d TemplateData) map[string]string {
			deps := map[string]string{"@babel/cli": "^7.24.0", "@babel/preset-env": "^7.24.0"}
			if d.TypeScript {
				deps["@babel/preset-typescript"] = "^7.24.0"
			}
			return deps
		},
		configFile:  "babel.config.json",
		manifestKey: "babel",
		config: func(d TemplateData) any {
			presets := []string{"@babel/preset-env"}
			if d.TypeScript {
				presets = append(presets, "@babel/preset-typescript")
			}
			return map[string]any{"presets": presets}
		},
	},
	preset.PluginTypeScript: {
		scripts: func(TemplateData) map[string]string {
			return map[string]string{"typecheck": "tsc --noEmit"}
		},
		configFile: "tsconfig.json",
		config: func(TemplateData) any {
			return map[string]any{
				"compilerOptions": map[string]any{
					"target":           "ES2022",
					"module":           "ESNext",
					"moduleResolution": "Bundler",
					"strict":           true,
					"skipLibCheck":     true,
					"outDir":           "dist",
				},
				"include": []string{"src", "test"},
			}
		},
	},
	preset.PluginESLint: {
		scripts: func(TemplateData) map[string]string {
			return map[string]string{"lint": "eslint ."}
		},
		devDeps: func(d TemplateData) map[string]string {
			if !d.TypeScript {
				return nil
			}
			return map[string]string{
				"@typescript-eslint/parser":        "^7.0.0",
				"@typescript-eslint/eslint-plugin": "^7.0.0",
			}
		},
		configFile:  ".eslintrc.json",
		manifestKey: "eslintConfig",
		config: func(d TemplateData) any {
			cfg := map[string]any{
				"root":          true,
				"env":           map[string]any{"node": true, "es2022": true},
				"parserOptions": map[string]any{"ecmaVersion": "latest", "sourceType": "module"},
				"extends":       []string{"eslint:recommended"},
			}
			if d.TypeScript {
				cfg["parser"] = "@typescript-eslint/parser"
				cfg["plugins"] = []string{"@typescript-eslint"}
				cfg["extends"] = []string{"eslint:recommended", "plugin:@typescript-eslint/recommended"}
			}
			return cfg
		},
	},
	preset.PluginPrettier: {
		scripts: func(TemplateData) map[string]string {
			return map[string]string{"format": "prettier --write ."}
		},
		configFile:  ".prettierrc.json",
		manifestKey: "prettier",
		config: func(TemplateData) any {
			return map[string]any{"semi": true, "singleQuote": false, "trailingComma": "all"}
		},
	},
	preset.PluginVitest: {
		scripts: func(TemplateData) map[string]string {
			return map[string]string{"test": "vitest run"}
		},
		templateDirs: []string{"vitest"},
	},
}

// lintOnCreate reports whether the eslint plugin asked for a fix pass
// after installation.
func lintOnCreate(p preset.Preset) bool {
	opts, ok := p.Plugins[preset.PluginESLint]
	if !ok {
		return false
	}
	v, _ := opts["lintOnCreate"].(bool)
	return v
}
