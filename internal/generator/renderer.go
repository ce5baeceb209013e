package generator

import (
	"bytes"
	"fmt"
	"io/fs"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// templateFuncMap provides custom functions available in all templates.
var templateFuncMap = template.FuncMap{
	"title": Title,
}

// Renderer renders text/template files with strict missing-key checks.
type Renderer struct {
	fsys fs.FS
}

// NewRenderer creates a Renderer backed by fsys.
func NewRenderer(fsys fs.FS) *Renderer {
	return &Renderer{fsys: fsys}
}

// Render parses the named template and executes it with data.
func (r *Renderer) Render(name string, data any) ([]byte, error) {
	content, err := fs.ReadFile(r.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	tmpl, err := template.New(name).
		Funcs(templateFuncMap).
		Option("missingkey=error").
		Parse(string(content))
	if err != nil {
		return nil, fmt.Errorf("template parse %q: %w", name, err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMissingTemplateKey, err)
	}
	return buf.Bytes(), nil
}

// Title turns a package name into a heading: the scope is dropped and
// separators become spaces ("@acme/my-app" -> "My App").
func Title(name string) string {
	if _, pkg, ok := strings.Cut(name, "/"); ok {
		name = pkg
	}
	words := strings.NewReplacer("-", " ", "_", " ", ".", " ").Replace(name)
	return cases.Title(language.English).String(strings.Join(strings.Fields(words), " "))
}
