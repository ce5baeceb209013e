package cli

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/modu-ai/seedkit/internal/defs"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
)

// newProject writes a package.json, plus the given extra files, into a
// temp directory and changes into it.
func newProject(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	files[defs.PackageJSON] = `{"name":"demo","version":"0.1.0"}`
	for name, content := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	t.Chdir(dir)
	return dir
}

func TestProjectVariant(t *testing.T) {
	meta, err := preset.EncodeMetadata(preset.Metadata{
		Name:   "demo",
		Preset: preset.Preset{Options: preset.Options{PackageManager: "yarn"}},
	})
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		files    map[string]string
		explicit string
		want     pkgmgr.Variant
		wantErr  bool
	}{
		{name: "explicit wins", files: map[string]string{defs.YarnLock: ""}, explicit: "pnpm", want: pkgmgr.Pnpm},
		{name: "pnpm lock", files: map[string]string{defs.PnpmLock: ""}, want: pkgmgr.Pnpm},
		{name: "yarn lock", files: map[string]string{defs.YarnLock: ""}, want: pkgmgr.Yarn},
		{name: "metadata", files: map[string]string{defs.MetadataJSON: string(meta)}, want: pkgmgr.Yarn},
		{name: "fallback", files: map[string]string{}, want: pkgmgr.Npm},
		{name: "unknown explicit", files: map[string]string{}, explicit: "bun", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			for name, content := range tt.files {
				if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
					t.Fatal(err)
				}
			}
			got, err := projectVariant(dir, tt.explicit, func() string { return "npm" })
			if (err != nil) != tt.wantErr {
				t.Fatalf("projectVariant() error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("projectVariant() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPmLock_UsesLockFileVariant(t *testing.T) {
	_, runner := newTestDeps(t, "npm", "pnpm")
	newProject(t, map[string]string{defs.PnpmLock: "lockfileVersion: 9"})

	out, err := execute(t, "pm", "lock")
	if err != nil {
		t.Fatalf("pm lock error: %v", err)
	}
	if !slices.Contains(runner.commands(), "pnpm install --lockfile-only") {
		t.Errorf("runner calls = %v", runner.commands())
	}
	if !strings.Contains(out, defs.PnpmLock) {
		t.Errorf("output = %q", out)
	}
}

func TestPmCleanCache_FlagOverride(t *testing.T) {
	_, runner := newTestDeps(t, "npm", "yarn")
	newProject(t, map[string]string{})

	if _, err := execute(t, "pm", "clean-cache", "-m", "yarn"); err != nil {
		t.Fatalf("pm clean-cache error: %v", err)
	}
	if !slices.Contains(runner.commands(), "yarn cache clean") {
		t.Errorf("runner calls = %v", runner.commands())
	}
}

func TestPmList(t *testing.T) {
	_, runner := newTestDeps(t, "npm")
	runner.stdout["ls"] = `{"dependencies":{"vitest":{"version":"1.6.0"},"eslint":{"version":"8.57.0"}}}`
	newProject(t, map[string]string{})

	out, err := execute(t, "pm", "list")
	if err != nil {
		t.Fatalf("pm list error: %v", err)
	}
	eslint := strings.Index(out, "eslint")
	vitest := strings.Index(out, "vitest")
	if eslint < 0 || vitest < 0 || eslint > vitest {
		t.Errorf("output should list packages sorted:\n%s", out)
	}
}

func TestPmOutdated(t *testing.T) {
	_, runner := newTestDeps(t, "npm")
	runner.stdout["outdated"] = `{"eslint":{"current":"8.0.0","wanted":"8.57.0","latest":"9.1.0"}}`
	runner.fail = map[string]bool{"outdated": true}
	newProject(t, map[string]string{})

	out, err := execute(t, "pm", "outdated", "--registry", "https://r.example.com")
	if err != nil {
		t.Fatalf("pm outdated error: %v", err)
	}
	if !strings.Contains(out, "eslint") || !strings.Contains(out, "9.1.0") {
		t.Errorf("output = %q", out)
	}
	if !slices.Contains(runner.commands(), "npm outdated --json --registry=https://r.example.com") {
		t.Errorf("runner calls = %v", runner.commands())
	}
}

func TestPmValidateLock_Missing(t *testing.T) {
	_, runner := newTestDeps(t, "npm")
	newProject(t, map[string]string{})

	out, err := execute(t, "pm", "validate-lock")
	if err == nil {
		t.Fatal("validate-lock should fail without a lock file")
	}
	if !strings.Contains(out, defs.NpmLock) {
		t.Errorf("output = %q", out)
	}
	if len(runner.commands()) != 0 {
		t.Errorf("no command should run without a lock file, got %v", runner.commands())
	}
}

func TestPmValidateLock_Valid(t *testing.T) {
	_, runner := newTestDeps(t, "npm")
	newProject(t, map[string]string{defs.NpmLock: "{}"})

	if _, err := execute(t, "pm", "validate-lock"); err != nil {
		t.Fatalf("validate-lock error: %v", err)
	}
	if !slices.Contains(runner.commands(), "npm install --dry-run --package-lock-only") {
		t.Errorf("runner calls = %v", runner.commands())
	}
}
