package generator

import (
	"context"
	"maps"
	"path/filepath"
	"slices"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/defs"
	"github.com/modu-ai/seedkit/internal/hook"
)

const defaultPackageManager = "npm"

func (g *Generator) registerHooks(req GenerateRequest, data TemplateData, manifest *project.Manifest) {
	scripts := make([]Script, 0, len(manifest.Scripts))
	for _, name := range slices.Sorted(maps.Keys(manifest.Scripts)) {
		scripts = append(scripts, Script{Name: name})
	}
	data.Scripts = scripts

	req.Hooks.OnPostInvoke("readme", g.readmeHook(data))
	if lintOnCreate(req.Preset) {
		req.Hooks.OnAfterAny("lint-fix", lintFix)
	}
}

// readmeHook writes README.md once the package manager is known. An
// existing README is kept.
func (g *Generator) readmeHook(data TemplateData) hook.Func {
	return func(ctx context.Context, hc hook.Context) error {
		dest := filepath.Join(hc.Root, defs.ReadmeMD)
		exists, err := g.store.Exists(ctx, dest)
		if err != nil {
			return err
		}
		if exists {
			g.logger.Debug("README exists, keeping it", "path", dest)
			return nil
		}

		pm := hc.PackageManager
		if pm == "" {
			pm = defaultPackageManager
		}
		data.PackageManager = pm
		data.InstallCommand = pm + " install"
		scripts := make([]Script, len(data.Scripts))
		for i, s := range data.Scripts {
			scripts[i] = Script{Name: s.Name, Command: pm + " run " + s.Name}
		}
		data.Scripts = scripts

		content, err := g.renderer.Render("readme/README.md.tmpl", data)
		if err != nil {
			return err
		}
		return g.store.WriteFile(ctx, dest, content)
	}
}

func lintFix(ctx context.Context, hc hook.Context) error {
	return hc.Scripts.RunScript(ctx, "lint", "--fix")
}
