package generator

import (
	"context"
	"embed"
	"encoding/json"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"maps"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/defs"
	"github.com/modu-ai/seedkit/internal/hook"
	"github.com/modu-ai/seedkit/internal/preset"
)

//go:embed all:templates
var embedded embed.FS

// Store is the file access the generator needs.
type Store interface {
	ReadFile(ctx context.Context, path string) ([]byte, error)
	WriteFile(ctx context.Context, path string, data []byte) error
	Exists(ctx context.Context, path string) (bool, error)
	Preview(ctx context.Context, path string, data []byte) (diff string, changed bool, err error)
}

// GenerateRequest describes one generation run.
type GenerateRequest struct {
	Root        string // Absolute project directory; package.json already exists
	ProjectName string
	Preset      preset.Preset
	Merge       bool           // Target held files before this run
	Hooks       *hook.Registry // Receives completion hooks; nil skips registration
}

// TemplateData is passed to every template.
type TemplateData struct {
	ProjectName    string
	TypeScript     bool
	PackageManager string
	InstallCommand string
	Scripts        []Script
}

// Script is one package.json script as shown in the README.
type Script struct {
	Name    string
	Command string
}

// Generator writes project files for a preset.
type Generator struct {
	store    Store
	fsys     fs.FS
	renderer *Renderer
	logger   *slog.Logger
}

// New creates a Generator backed by the embedded templates.
func New(store Store, logger *slog.Logger) *Generator {
	fsys, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(fmt.Sprintf("generator: embedded templates: %v", err))
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Generator{
		store:    store,
		fsys:     fsys,
		renderer: NewRenderer(fsys),
		logger:   logger.With("module", "generator"),
	}
}

// Generate writes the files the preset calls for and returns their paths
// relative to req.Root, sorted. In merge mode files whose content would
// not change are left alone and omitted from the result.
func (g *Generator) Generate(ctx context.Context, req GenerateRequest) ([]string, error) {
	manifestPath := filepath.Join(req.Root, defs.PackageJSON)
	raw, err := g.store.ReadFile(ctx, manifestPath)
	if err != nil {
		return nil, fmt.Errorf("read manifest: %w", err)
	}
	manifest, err := project.DecodeManifest(raw)
	if err != nil {
		return nil, err
	}

	data := TemplateData{
		ProjectName: req.ProjectName,
		TypeScript:  req.Preset.HasPlugin(preset.PluginTypeScript),
	}

	files, err := g.plan(req.Preset, manifest, data)
	if err != nil {
		return nil, err
	}

	var written []string
	for _, rel := range slices.Sorted(maps.Keys(files)) {
		if err := ctx.Err(); err != nil {
			return written, err
		}
		dest := filepath.Join(req.Root, filepath.FromSlash(rel))
		content := files[rel]

		if req.Merge && rel != defs.PackageJSON {
			diff, changed, err := g.store.Preview(ctx, dest, content)
			if err != nil {
				return written, err
			}
			if !changed {
				g.logger.Debug("unchanged, skipping", "file", rel)
				continue
			}
			if diff != "" {
				g.logger.Info("merge replaces existing file", "file", rel, "diff", diff)
			}
		}

		if err := g.store.WriteFile(ctx, dest, content); err != nil {
			return written, err
		}
		written = append(written, rel)
	}

	if req.Hooks != nil {
		g.registerHooks(req, data, manifest)
	}

	g.logger.Debug("files generated", "count", len(written), "merge", req.Merge)
	return written, nil
}

// plan renders every file for p keyed by slash-separated relative path.
// manifest is updated in place and included as package.json.
func (g *Generator) plan(p preset.Preset, manifest *project.Manifest, data TemplateData) (map[string][]byte, error) {
	files := make(map[string][]byte)
	manifest.Set("type", "module")
	if manifest.Scripts == nil {
		manifest.Scripts = map[string]string{}
	}
	if manifest.DevDependencies == nil {
		manifest.DevDependencies = map[string]string{}
	}

	dirs := []string{"base"}
	for _, id := range p.PluginIDs() {
		spec, ok := plugins[id]
		if !ok {
			g.logger.Debug("no files for plugin", "plugin", id)
			continue
		}
		dirs = append(dirs, spec.templateDirs...)

		if spec.scripts != nil {
			maps.Copy(manifest.Scripts, spec.scripts(data))
		}
		if spec.devDeps != nil {
			for name, version := range spec.devDeps(data) {
				if _, exists := manifest.DevDependencies[name]; !exists {
					manifest.DevDependencies[name] = version
				}
			}
		}
		if spec.config == nil {
			continue
		}
		cfg := spec.config(data)
		if p.UseConfigFiles || spec.manifestKey == "" {
			encoded, err := encodeJSON(cfg)
			if err != nil {
				return nil, fmt.Errorf("encode %s: %w", spec.configFile, err)
			}
			files[spec.configFile] = encoded
		} else {
			manifest.Set(spec.manifestKey, cfg)
		}
	}

	for _, dir := range dirs {
		if err := g.renderDir(dir, data, files); err != nil {
			return nil, err
		}
	}

	encoded, err := manifest.Encode()
	if err != nil {
		return nil, err
	}
	files[defs.PackageJSON] = encoded
	return files, nil
}

// renderDir adds every file under dir to files. Names ending in .tmpl are
// rendered and lose the suffix, a leading underscore becomes a dot, and
// .js sources become .ts in TypeScript projects.
func (g *Generator) renderDir(dir string, data TemplateData, files map[string][]byte) error {
	return fs.WalkDir(g.fsys, dir, func(name string, entry fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if entry.IsDir() {
			return nil
		}

		rel := strings.TrimPrefix(name, dir+"/")
		var content []byte
		if strings.HasSuffix(rel, ".tmpl") {
			content, err = g.renderer.Render(name, data)
			if err != nil {
				return err
			}
			rel = strings.TrimSuffix(rel, ".tmpl")
		} else {
			content, err = fs.ReadFile(g.fsys, name)
			if err != nil {
				return fmt.Errorf("read template %q: %w", name, err)
			}
		}

		files[outputName(rel, data.TypeScript)] = content
		return nil
	})
}

func outputName(rel string, typeScript bool) string {
	dir, base := path.Split(rel)
	if strings.HasPrefix(base, "_") {
		base = "." + base[1:]
	}
	if typeScript && strings.HasSuffix(base, ".js") {
		base = strings.TrimSuffix(base, ".js") + ".ts"
	}
	return dir + base
}

func encodeJSON(v any) ([]byte, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(data, '\n'), nil
}
