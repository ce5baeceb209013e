package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/modu-ai/seedkit/internal/preset"
)

func writeRC(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), ".seedrc.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write rc: %v", err)
	}
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	m := NewManager(filepath.Join(t.TempDir(), "absent.yaml"), nil)

	s, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", s.LogLevel, DefaultLogLevel)
	}
	if s.Git.Message != DefaultGitMessage {
		t.Errorf("Git.Message = %q, want %q", s.Git.Message, DefaultGitMessage)
	}
	if !s.UseConfigFiles {
		t.Error("UseConfigFiles = false, want true by default")
	}
	if got := m.SavedPresets(); len(got) != 0 {
		t.Errorf("SavedPresets() = %v, want empty", got)
	}
}

func TestLoad_ReadsFileAndPresets(t *testing.T) {
	path := writeRC(t, `packageManager: pnpm
registry: https://registry.example.com
git:
  message: "chore: scaffold"
presets:
  myWebApp:
    useConfigFiles: true
    plugins:
      "@babel/core": {}
      eslint:
        lintOnCreate: true
`)
	m := NewManager(path, nil)

	s, err := m.Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.PackageManager != "pnpm" {
		t.Errorf("PackageManager = %q, want pnpm", s.PackageManager)
	}
	if s.Registry != "https://registry.example.com" {
		t.Errorf("Registry = %q", s.Registry)
	}
	if s.Git.Message != "chore: scaffold" {
		t.Errorf("Git.Message = %q", s.Git.Message)
	}

	presets := m.SavedPresets()
	p, ok := presets["myWebApp"]
	if !ok {
		t.Fatalf("preset myWebApp missing, got %v", presets)
	}
	if p.Name != "myWebApp" {
		t.Errorf("Name = %q, want myWebApp", p.Name)
	}
	if !p.UseConfigFiles {
		t.Error("UseConfigFiles = false, want true")
	}
	if p.Plugins["eslint"]["lintOnCreate"] != true {
		t.Errorf("eslint options = %v, want lintOnCreate case preserved", p.Plugins["eslint"])
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeRC(t, "packageManager: npm\n")
	t.Setenv("SEED_PACKAGE_MANAGER", "yarn")
	t.Setenv("SEED_GIT_SKIP", "true")

	s, err := NewManager(path, nil).Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if s.PackageManager != "yarn" {
		t.Errorf("PackageManager = %q, want yarn", s.PackageManager)
	}
	if !s.Git.Skip {
		t.Error("Git.Skip = false, want true")
	}
}

func TestLoad_InvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
		field   string
	}{
		{name: "unknown package manager", content: "packageManager: bun\n", field: "packageManager"},
		{name: "unknown log level", content: "logLevel: loud\n", field: "logLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewManager(writeRC(t, tt.content), nil).Load()
			if !errors.Is(err, ErrInvalidConfig) {
				t.Fatalf("error = %v, want ErrInvalidConfig", err)
			}
			var ve *ValidationError
			if !errors.As(err, &ve) {
				t.Fatalf("error = %T, want *ValidationError", err)
			}
			if ve.Field != tt.field {
				t.Errorf("Field = %q, want %q", ve.Field, tt.field)
			}
		})
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	_, err := NewManager(writeRC(t, "packageManager: [unterminated\n"), nil).Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestSettings_BeforeLoad(t *testing.T) {
	_, err := NewManager("unused", nil).Settings()
	if !errors.Is(err, ErrNotLoaded) {
		t.Fatalf("error = %v, want ErrNotLoaded", err)
	}
}

func TestSavePreset_KeepsOtherKeys(t *testing.T) {
	path := writeRC(t, "registry: https://registry.example.com\n")
	m := NewManager(path, nil)
	if _, err := m.Load(); err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	p := preset.Preset{
		UseConfigFiles: true,
		Plugins:        map[string]preset.PluginOptions{"typescript": {}},
		Options:        preset.Options{PackageManager: "npm"},
	}
	if err := m.SavePreset("tsOnly", p); err != nil {
		t.Fatalf("SavePreset() error: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read rc: %v", err)
	}
	if !strings.Contains(string(data), "registry: https://registry.example.com") {
		t.Errorf("rc lost registry key:\n%s", data)
	}

	reloaded := NewManager(path, nil)
	if _, err := reloaded.Load(); err != nil {
		t.Fatalf("reload error: %v", err)
	}
	got, ok := reloaded.SavedPresets()["tsOnly"]
	if !ok {
		t.Fatal("saved preset not found after reload")
	}
	if !got.HasPlugin("typescript") {
		t.Errorf("plugins = %v, want typescript", got.PluginIDs())
	}
	if got.Options.PackageManager != "npm" {
		t.Errorf("PackageManager = %q, want npm", got.Options.PackageManager)
	}
}

func TestSavePreset_CreatesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", ".seedrc.yaml")
	m := NewManager(path, nil)

	if err := m.SavePreset("empty", preset.Preset{Plugins: map[string]preset.PluginOptions{}}); err != nil {
		t.Fatalf("SavePreset() error: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("rc file not created: %v", err)
	}
	if _, ok := m.SavedPresets()["empty"]; !ok {
		t.Error("in-memory presets not updated")
	}
}

func TestSavePreset_EmptyName(t *testing.T) {
	err := NewManager(filepath.Join(t.TempDir(), "rc.yaml"), nil).SavePreset("", preset.Preset{})
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("error = %v, want ErrInvalidConfig", err)
	}
}

func TestDefaultPath(t *testing.T) {
	t.Run("env override", func(t *testing.T) {
		want := filepath.Join(t.TempDir(), "custom.yaml")
		t.Setenv("SEED_RC", want)
		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath() error: %v", err)
		}
		if got != want {
			t.Errorf("DefaultPath() = %q, want %q", got, want)
		}
	})

	t.Run("home directory", func(t *testing.T) {
		t.Setenv("SEED_RC", "")
		got, err := DefaultPath()
		if err != nil {
			t.Fatalf("DefaultPath() error: %v", err)
		}
		if filepath.Base(got) != ".seedrc.yaml" {
			t.Errorf("DefaultPath() = %q, want .seedrc.yaml file", got)
		}
	})
}
