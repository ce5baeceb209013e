package preset

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/modu-ai/seedkit/internal/defs"
)

// --- Mock implementations for testing ---

type fakePrompter struct {
	preset   string
	features []string
	pm       string
	saveAs   string
	err      error

	presetCalls int
	pmCalls     int
	choices     []Choice
}

func (f *fakePrompter) SelectPreset(_ context.Context, choices []Choice) (string, error) {
	f.presetCalls++
	f.choices = choices
	return f.preset, f.err
}

func (f *fakePrompter) SelectFeatures(context.Context, []Feature) ([]string, error) {
	return f.features, nil
}

func (f *fakePrompter) SelectPackageManager(context.Context, []string) (string, error) {
	f.pmCalls++
	return f.pm, nil
}

func (f *fakePrompter) SaveAs(context.Context) (string, error) {
	return f.saveAs, nil
}

type memStore struct {
	presets map[string]Preset
	saveErr error
}

func (m *memStore) SavedPresets() map[string]Preset { return m.presets }

func (m *memStore) SavePreset(name string, p Preset) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	if m.presets == nil {
		m.presets = map[string]Preset{}
	}
	m.presets[name] = p
	return nil
}

func TestResolve_Priority(t *testing.T) {
	ctx := context.Background()
	inline := `{"name":"from-inline","plugins":{"eslint":{}}}`

	tests := []struct {
		name     string
		src      Source
		wantName string
	}{
		{"named beats inline and default", Source{Name: "minimal", Inline: inline, Default: true}, "minimal"},
		{"inline beats default", Source{Inline: inline, Default: true}, "from-inline"},
		{"default flag", Source{Default: true}, DefaultName},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			prompter := &fakePrompter{preset: "typescript"}
			r := NewResolver(ResolverOptions{WorkDir: t.TempDir(), Prompter: prompter})

			p, err := r.Resolve(ctx, tt.src)
			if err != nil {
				t.Fatalf("Resolve() error = %v", err)
			}
			if p.Name != tt.wantName {
				t.Errorf("Name = %q, want %q", p.Name, tt.wantName)
			}
			if prompter.presetCalls != 0 {
				t.Errorf("prompter called %d times with a flag source", prompter.presetCalls)
			}
		})
	}
}

func TestResolve_InteractiveWhenNoSource(t *testing.T) {
	prompter := &fakePrompter{preset: "typescript"}
	r := NewResolver(ResolverOptions{WorkDir: t.TempDir(), Prompter: prompter})

	p, err := r.Resolve(context.Background(), Source{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if p.Name != "typescript" || prompter.presetCalls != 1 {
		t.Errorf("Name = %q, calls = %d", p.Name, prompter.presetCalls)
	}
}

func TestResolve_NoPrompter(t *testing.T) {
	r := NewResolver(ResolverOptions{WorkDir: t.TempDir()})
	if _, err := r.Resolve(context.Background(), Source{}); !errors.Is(err, ErrInteractionRequired) {
		t.Errorf("Resolve() error = %v, want ErrInteractionRequired", err)
	}
}

func TestResolve_PrompterCancel(t *testing.T) {
	cancel := errors.New("cancelled")
	r := NewResolver(ResolverOptions{WorkDir: t.TempDir(), Prompter: &fakePrompter{err: cancel}})
	if _, err := r.Resolve(context.Background(), Source{}); !errors.Is(err, cancel) {
		t.Errorf("Resolve() error = %v, want prompter error", err)
	}
}

func TestResolve_NotFound(t *testing.T) {
	r := NewResolver(ResolverOptions{WorkDir: t.TempDir(), Store: &memStore{}})

	_, err := r.Resolve(context.Background(), Source{Name: "nope"})
	var nf *NotFoundError
	if !errors.As(err, &nf) || nf.Name != "nope" {
		t.Errorf("Resolve() error = %v, want NotFoundError(nope)", err)
	}

	_, err = r.Resolve(context.Background(), Source{Name: "./missing.json"})
	if !errors.As(err, &nf) {
		t.Errorf("Resolve(missing file) error = %v, want NotFoundError", err)
	}
}

func TestLoad_LookupOrder(t *testing.T) {
	dir := t.TempDir()
	store := &memStore{presets: map[string]Preset{
		"default": {Name: "default", Description: "shadowed"},
		"team":    {Description: "saved team preset"},
	}}

	meta, err := EncodeMetadata(Metadata{
		Name:    "older-app",
		Created: time.Now(),
		Preset:  Preset{Name: "legacy", Plugins: map[string]PluginOptions{"eslint": {}}},
	})
	if err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, defs.MetadataJSON), meta, 0o644); err != nil {
		t.Fatal(err)
	}

	r := NewResolver(ResolverOptions{WorkDir: dir, Store: store})

	p, err := r.Load("default")
	if err != nil || p.Description == "shadowed" {
		t.Errorf("Load(default) = %+v, %v; built-in must win", p, err)
	}
	p, err = r.Load("team")
	if err != nil || p.Name != "team" {
		t.Errorf("Load(team) = %+v, %v", p, err)
	}
	p, err = r.Load("legacy")
	if err != nil || !p.HasPlugin("eslint") {
		t.Errorf("Load(legacy) = %+v, %v; want project-local preset", p, err)
	}
}

func TestResolve_InlineValidation(t *testing.T) {
	r := NewResolver(ResolverOptions{WorkDir: t.TempDir()})
	ctx := context.Background()

	bad := []string{
		`{"plugins": "eslint"}`,
		`{"options": {"packageManager": "yran"}}`,
		`{"unknown": true}`,
		`{not json`,
	}
	for _, payload := range bad {
		_, err := r.Resolve(ctx, Source{Inline: payload})
		var ve *ValidationError
		if !errors.As(err, &ve) {
			t.Errorf("Resolve(%s) error = %v, want ValidationError", payload, err)
			continue
		}
		if ve.Source != "inline" || !errors.Is(err, ErrInvalidPreset) {
			t.Errorf("ValidationError = %+v", ve)
		}
	}
}

func TestResolve_PackageManagerSelection(t *testing.T) {
	ctx := context.Background()
	defaultCalls := 0
	r := NewResolver(ResolverOptions{
		WorkDir: t.TempDir(),
		DefaultPackageManager: func() string {
			defaultCalls++
			return "yarn"
		},
	})

	p, err := r.Resolve(ctx, Source{Default: true})
	if err != nil || p.Options.PackageManager != "yarn" {
		t.Errorf("default pm = %q, %v", p.Options.PackageManager, err)
	}

	p, err = r.Resolve(ctx, Source{Inline: `{"options":{"packageManager":"npm"}}`})
	if err != nil || p.Options.PackageManager != "npm" {
		t.Errorf("preset pm = %q, %v", p.Options.PackageManager, err)
	}

	p, err = r.Resolve(ctx, Source{Default: true, PackageManager: "pnpm", Registry: "https://r.example.com"})
	if err != nil || p.Options.PackageManager != "pnpm" || p.Options.Registry != "https://r.example.com" {
		t.Errorf("override = %+v, %v", p.Options, err)
	}
	if defaultCalls != 1 {
		t.Errorf("default pm func called %d times, want 1", defaultCalls)
	}

	if _, err := r.Resolve(ctx, Source{Default: true, PackageManager: "bun"}); !errors.Is(err, ErrInvalidPreset) {
		t.Errorf("unknown override error = %v, want ErrInvalidPreset", err)
	}
}

func TestResolve_ManualFlow(t *testing.T) {
	store := &memStore{}
	prompter := &fakePrompter{
		preset:   ManualChoice,
		features: []string{"typescript", "linter"},
		pm:       "pnpm",
		saveAs:   "mine",
	}
	r := NewResolver(ResolverOptions{
		WorkDir:           t.TempDir(),
		Store:             store,
		Prompter:          prompter,
		InstalledManagers: func() []string { return []string{"npm", "pnpm"} },
	})

	p, err := r.Resolve(context.Background(), Source{})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}

	if got := p.PluginIDs(); !slices.Equal(got, []string{PluginESLint, PluginTypeScript}) {
		t.Errorf("plugins = %v", got)
	}
	if p.Options.PackageManager != "pnpm" || prompter.pmCalls != 1 {
		t.Errorf("pm = %q after %d prompts", p.Options.PackageManager, prompter.pmCalls)
	}
	if _, ok := store.presets["mine"]; !ok {
		t.Error("manual preset was not saved")
	}
}

func TestResolve_ManualInlineConfig(t *testing.T) {
	prompter := &fakePrompter{preset: ManualChoice, features: []string{"babel"}}

	p, err := NewResolver(ResolverOptions{WorkDir: t.TempDir(), Prompter: prompter}).
		Resolve(context.Background(), Source{})
	if err != nil || !p.UseConfigFiles {
		t.Errorf("UseConfigFiles = %v, %v; want true by default", p.UseConfigFiles, err)
	}

	p, err = NewResolver(ResolverOptions{WorkDir: t.TempDir(), Prompter: prompter, InlineConfig: true}).
		Resolve(context.Background(), Source{})
	if err != nil || p.UseConfigFiles {
		t.Errorf("UseConfigFiles = %v, %v; want false with InlineConfig", p.UseConfigFiles, err)
	}
}

func TestResolve_ManualSaveFailureIsNotFatal(t *testing.T) {
	r := NewResolver(ResolverOptions{
		WorkDir:  t.TempDir(),
		Store:    &memStore{saveErr: errors.New("read-only")},
		Prompter: &fakePrompter{preset: ManualChoice, features: []string{"babel"}, saveAs: "x"},
	})
	if _, err := r.Resolve(context.Background(), Source{}); err != nil {
		t.Errorf("Resolve() error = %v", err)
	}
}

func TestResolve_ReturnsIndependentCopy(t *testing.T) {
	r := NewResolver(ResolverOptions{WorkDir: t.TempDir()})
	p, err := r.Resolve(context.Background(), Source{Default: true})
	if err != nil {
		t.Fatal(err)
	}
	p.Plugins[PluginESLint]["version"] = "mutated"

	again, _ := Builtin(DefaultName)
	if again.Plugins[PluginESLint]["version"] == "mutated" {
		t.Error("mutating a resolved preset changed the built-in registry")
	}
}

func TestChoices_SavedFirst(t *testing.T) {
	r := NewResolver(ResolverOptions{Store: &memStore{presets: map[string]Preset{"zeta": {}, "alpha": {}}}})
	var names []string
	for _, c := range r.Choices() {
		names = append(names, c.Name)
	}
	want := append([]string{"alpha", "zeta"}, BuiltinNames()...)
	if !slices.Equal(names, want) {
		t.Errorf("Choices() = %v, want %v", names, want)
	}
}
