package cli

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/cobra"

	"github.com/modu-ai/seedkit/internal/config"
	"github.com/modu-ai/seedkit/internal/core/creator"
	"github.com/modu-ai/seedkit/internal/preset"
)

func TestCreateCmd_HasFlags(t *testing.T) {
	flags := []string{
		"preset", "default", "inline-preset", "force", "merge", "no-git", "git",
		"package-manager", "registry", "production", "skip-get-started",
	}
	for _, name := range flags {
		if createCmd.Flags().Lookup(name) == nil {
			t.Errorf("create command should have --%s flag", name)
		}
	}
}

func TestBuildCreateRequest(t *testing.T) {
	settings := config.NewDefaultSettings()
	settings.Registry = "https://rc.example.com"
	settings.Git.Message = "chore: scaffold"

	tests := []struct {
		name     string
		args     []string
		project  string
		settings *config.Settings
		check    func(t *testing.T, req creator.Request)
	}{
		{
			name:    "plain name",
			args:    []string{"--default", "--no-git"},
			project: "my-app",
			check: func(t *testing.T, req creator.Request) {
				if req.ProjectName != "my-app" || req.CurrentDir || req.TargetDir != "" {
					t.Errorf("req = %+v", req)
				}
				if !req.Source.Default || !req.Git.Skip || req.Git.Explicit {
					t.Errorf("source/git = %+v / %+v", req.Source, req.Git)
				}
			},
		},
		{
			name:    "current directory",
			args:    []string{"--force"},
			project: ".",
			check: func(t *testing.T, req creator.Request) {
				if !req.CurrentDir || req.ProjectName != "work-dir" || req.TargetDir != "/tmp/work-dir" {
					t.Errorf("req = %+v", req)
				}
				if !req.Force {
					t.Error("Force should be set")
				}
			},
		},
		{
			name:    "bare git flag uses default message",
			args:    []string{"--git"},
			project: "my-app",
			check: func(t *testing.T, req creator.Request) {
				if !req.Git.Explicit || req.Git.Message != creator.DefaultGitMessage {
					t.Errorf("git = %+v", req.Git)
				}
			},
		},
		{
			name:    "git message",
			args:    []string{"--git=first commit", "--production"},
			project: "my-app",
			check: func(t *testing.T, req creator.Request) {
				if req.Git.Message != "first commit" || !req.Install.Production {
					t.Errorf("req = %+v", req)
				}
			},
		},
		{
			name:     "rc settings fill gaps",
			args:     []string{"-p", "team", "-m", "pnpm"},
			project:  "my-app",
			settings: settings,
			check: func(t *testing.T, req creator.Request) {
				want := preset.Source{Name: "team", PackageManager: "pnpm", Registry: "https://rc.example.com"}
				if req.Source != want {
					t.Errorf("source = %+v, want %+v", req.Source, want)
				}
				if req.Git.Message != "chore: scaffold" {
					t.Errorf("git message = %q", req.Git.Message)
				}
			},
		},
		{
			name:     "registry flag wins over rc",
			args:     []string{"-r", "https://flag.example.com"},
			project:  "my-app",
			settings: settings,
			check: func(t *testing.T, req creator.Request) {
				if req.Source.Registry != "https://flag.example.com" {
					t.Errorf("registry = %q", req.Source.Registry)
				}
			},
		},
		{
			name:     "rc git skip yields to explicit --git",
			args:     []string{"--git"},
			project:  "my-app",
			settings: &config.Settings{Git: config.GitSettings{Skip: true}},
			check: func(t *testing.T, req creator.Request) {
				if req.Git.Skip {
					t.Error("explicit --git should override git.skip")
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cmd := &cobra.Command{Use: "create"}
			addCreateFlags(cmd)
			if err := cmd.ParseFlags(tt.args); err != nil {
				t.Fatalf("ParseFlags(%v): %v", tt.args, err)
			}
			tt.check(t, buildCreateRequest(cmd, tt.project, "/tmp/work-dir", tt.settings))
		})
	}
}

func TestCreateCmd_InvalidPackageManager(t *testing.T) {
	newTestDeps(t, "npm")
	t.Chdir(t.TempDir())

	_, err := execute(t, "create", "my-app", "--default", "--package-manager", "bun")
	if err == nil || !strings.Contains(err.Error(), "--package-manager") {
		t.Errorf("error = %v, want invalid --package-manager", err)
	}
}

func TestCreateCmd_MutuallyExclusiveFlags(t *testing.T) {
	newTestDeps(t, "npm")
	t.Chdir(t.TempDir())

	if _, err := execute(t, "create", "my-app", "--default", "--preset", "x"); err == nil {
		t.Error("--default with --preset should be rejected")
	}
	if _, err := execute(t, "create", "my-app", "--default", "--force", "--merge"); err == nil {
		t.Error("--force with --merge should be rejected")
	}
}

func TestCreateCmd_EndToEnd(t *testing.T) {
	_, runner := newTestDeps(t, "npm")
	dir := t.TempDir()
	t.Chdir(dir)

	out, err := execute(t, "create", "my-app", "--default", "--no-git")
	if err != nil {
		t.Fatalf("create error: %v\n%s", err, out)
	}

	for _, name := range []string{"package.json", ".seed.json", "README.md", "src/index.js"} {
		if _, err := os.Stat(filepath.Join(dir, "my-app", name)); err != nil {
			t.Errorf("%s was not generated: %v", name, err)
		}
	}

	cmds := runner.commands()
	for _, want := range []string{"npm install --loglevel error", "npm run lint -- --fix"} {
		if !slices.Contains(cmds, want) {
			t.Errorf("runner calls %v, missing %q", cmds, want)
		}
	}
	if !strings.Contains(out, "Successfully created project") {
		t.Errorf("output missing success line:\n%s", out)
	}
	if !strings.Contains(out, "cd my-app") {
		t.Errorf("output missing get started block:\n%s", out)
	}
}

func TestCreateCmd_SkipGetStarted(t *testing.T) {
	newTestDeps(t, "npm")
	t.Chdir(t.TempDir())

	out, err := execute(t, "create", "my-app", "--default", "--no-git", "--skip-get-started")
	if err != nil {
		t.Fatalf("create error: %v", err)
	}
	if strings.Contains(out, "cd my-app") {
		t.Errorf("get started block should be skipped:\n%s", out)
	}
}

func TestCreateCmd_ExistingTargetNeedsForce(t *testing.T) {
	newTestDeps(t, "npm")
	dir := t.TempDir()
	t.Chdir(dir)
	if err := os.Mkdir(filepath.Join(dir, "my-app"), 0o755); err != nil {
		t.Fatal(err)
	}

	_, err := execute(t, "create", "my-app", "--default", "--no-git")
	if err == nil || !strings.Contains(err.Error(), "--force") {
		t.Fatalf("error = %v, want a hint about --force", err)
	}

	if _, err := execute(t, "create", "my-app", "--default", "--no-git", "--merge"); err != nil {
		t.Errorf("--merge error: %v", err)
	}
}

func TestCreateCmd_CurrentDirectory(t *testing.T) {
	newTestDeps(t, "npm")
	dir := filepath.Join(t.TempDir(), "dot-app")
	if err := os.Mkdir(dir, 0o755); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	if _, err := execute(t, "create", ".", "--default", "--no-git", "--skip-get-started"); err != nil {
		t.Fatalf("create . error: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "package.json"))
	if err != nil {
		t.Fatalf("read package.json: %v", err)
	}
	if !strings.Contains(string(data), `"name": "dot-app"`) {
		t.Errorf("package.json = %s", data)
	}
}

func TestCreateCmd_HeadlessWithoutPreset(t *testing.T) {
	newTestDeps(t, "npm")
	t.Chdir(t.TempDir())

	_, err := execute(t, "create", "my-app", "--no-git")
	if !errors.Is(err, preset.ErrInteractionRequired) {
		t.Fatalf("error = %v, want ErrInteractionRequired", err)
	}
	if creator.KindOf(err) != creator.KindValidation {
		t.Errorf("KindOf = %v, want validation", creator.KindOf(err))
	}
}

func TestCreateCmd_InstallFailure(t *testing.T) {
	_, runner := newTestDeps(t, "npm")
	runner.fail = map[string]bool{"install": true}
	dir := t.TempDir()
	t.Chdir(dir)

	_, err := execute(t, "create", "my-app", "--default", "--no-git")
	if creator.KindOf(err) != creator.KindCommandFailed {
		t.Fatalf("KindOf(%v) = %v, want command failed", err, creator.KindOf(err))
	}
	if _, statErr := os.Stat(filepath.Join(dir, "my-app", "package.json")); statErr != nil {
		t.Error("files written before the failure should be kept")
	}
}
