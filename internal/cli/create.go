package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/modu-ai/seedkit/internal/cli/wizard"
	"github.com/modu-ai/seedkit/internal/config"
	"github.com/modu-ai/seedkit/internal/core/creator"
	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/defs"
	"github.com/modu-ai/seedkit/internal/event"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
	"github.com/modu-ai/seedkit/internal/ui"
)

var createCmd = &cobra.Command{
	Use:   "create <app-name>",
	Short: "Create a new project",
	Long: `Create a new project from a preset.

Usage patterns:
  seed create <app-name>     Create ./<app-name>/ and generate the project inside it
  seed create .              Generate the project in the current directory

Examples:
  seed create my-app --default
  seed create my-app --preset ./team-preset.yaml --package-manager pnpm
  seed create my-app -i '{"plugins":{"typescript":{}}}' --no-git`,
	Args:    cobra.ExactArgs(1),
	PreRunE: validateCreateFlags,
	RunE:    runCreate,
}

func init() {
	rootCmd.AddCommand(createCmd)
	addCreateFlags(createCmd)
}

func addCreateFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("preset", "p", "", "Skip prompts and use a saved, built-in or file preset")
	cmd.Flags().BoolP("default", "d", false, "Skip prompts and use the default preset")
	cmd.Flags().StringP("inline-preset", "i", "", "Skip prompts and use an inline JSON string as preset")
	cmd.Flags().BoolP("force", "f", false, "Overwrite the target directory if it exists")
	cmd.Flags().Bool("merge", false, "Merge into the target directory if it exists")
	cmd.Flags().BoolP("no-git", "n", false, "Skip git initialization")
	cmd.Flags().StringP("git", "g", "", "Force git initialization; --git=<message> sets the initial commit message")
	cmd.Flags().StringP("package-manager", "m", "", "Package manager to use when installing dependencies (npm, yarn, pnpm)")
	cmd.Flags().StringP("registry", "r", "", "Registry URL to use when installing dependencies")
	cmd.Flags().Bool("production", false, "Skip dev dependencies when installing")
	cmd.Flags().Bool("skip-get-started", false, "Skip showing get started instructions")

	cmd.Flags().Lookup("git").NoOptDefVal = creator.DefaultGitMessage
	cmd.MarkFlagsMutuallyExclusive("preset", "default", "inline-preset")
	cmd.MarkFlagsMutuallyExclusive("force", "merge")
	cmd.MarkFlagsMutuallyExclusive("git", "no-git")
}

// validateCreateFlags validates flag values before execution.
func validateCreateFlags(cmd *cobra.Command, _ []string) error {
	if pm := getStringFlag(cmd, "package-manager"); pm != "" {
		if _, err := pkgmgr.ParseVariant(pm); err != nil {
			return fmt.Errorf("invalid --package-manager %q: must be one of %s", pm, strings.Join(pkgmgr.Names(), ", "))
		}
	}
	if cmd.Flags().Changed("git") && strings.TrimSpace(getStringFlag(cmd, "git")) == "" {
		return fmt.Errorf("--git needs a non-empty commit message")
	}
	return nil
}

func runCreate(cmd *cobra.Command, args []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	settings, err := d.EnsureSettings()
	if err != nil {
		return err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("get working directory: %w", err)
	}

	req := buildCreateRequest(cmd, args[0], cwd, settings)

	out := cmd.OutOrStdout()
	bus := event.NewBus(d.Logger)
	reporter := ui.NewReporter(d.Theme, d.Headless, out)
	reporter.Attach(bus)
	defer reporter.Close()

	opts := creatorOptions{workDir: cwd, settings: settings, events: bus}
	if !d.Headless.IsHeadless() {
		opts.wizard = wizard.New(os.Getenv("ACCESSIBLE") != "")
	}

	res, err := d.NewCreator(opts).Create(cmd.Context(), req)
	if err != nil {
		return err
	}
	reporter.Close()

	if hint := hintFor(res.GitError); res.GitError != nil && hint != "" {
		res.Warnings = append(res.Warnings, hint)
	}
	if getBoolFlag(cmd, "skip-get-started") {
		for _, w := range res.Warnings {
			reporter.Warn(w)
		}
		return nil
	}
	return printNextSteps(cmd.Context(), out, d, req, res)
}

// buildCreateRequest turns the command line into a creation request.
// "." creates into the working directory under its base name.
func buildCreateRequest(cmd *cobra.Command, name, cwd string, settings *config.Settings) creator.Request {
	req := creator.Request{
		ProjectName: name,
		Source: preset.Source{
			Name:           getStringFlag(cmd, "preset"),
			Inline:         getStringFlag(cmd, "inline-preset"),
			Default:        getBoolFlag(cmd, "default"),
			PackageManager: getStringFlag(cmd, "package-manager"),
			Registry:       getStringFlag(cmd, "registry"),
		},
		Force:   getBoolFlag(cmd, "force"),
		Merge:   getBoolFlag(cmd, "merge"),
		Install: pkgmgr.InstallOptions{Production: getBoolFlag(cmd, "production")},
		Git: creator.GitOptions{
			Skip:     getBoolFlag(cmd, "no-git"),
			Message:  getStringFlag(cmd, "git"),
			Explicit: cmd.Flags().Changed("git"),
		},
	}

	if name == "." {
		req.CurrentDir = true
		req.ProjectName = filepath.Base(cwd)
		req.TargetDir = cwd
	}

	if settings != nil {
		if req.Source.Registry == "" {
			req.Source.Registry = settings.Registry
		}
		if settings.Git.Skip && !req.Git.Explicit {
			req.Git.Skip = true
		}
		if req.Git.Message == "" {
			req.Git.Message = settings.Git.Message
		}
	}
	return req
}

// getStartedScripts are mentioned in the get started block when the
// generated package.json defines them.
var getStartedScripts = []string{"build", "test", "lint"}

func printNextSteps(ctx context.Context, w io.Writer, d *Dependencies, req creator.Request, res *creator.Result) error {
	steps := ui.NextSteps{
		PackageManager: res.PackageManager.String(),
		Warnings:       res.Warnings,
	}
	if !req.CurrentDir {
		steps.Dir = req.ProjectName
	}

	data, err := d.Store.ReadFile(ctx, filepath.Join(res.Root, defs.PackageJSON))
	if err != nil {
		return fmt.Errorf("read generated manifest: %w", err)
	}
	m, err := project.DecodeManifest(data)
	if err != nil {
		return err
	}
	for _, s := range getStartedScripts {
		if _, ok := m.Scripts[s]; ok {
			steps.Scripts = append(steps.Scripts, s)
		}
	}

	rendered, err := ui.RenderNextSteps(d.Theme, d.Headless, steps)
	if err != nil {
		d.Logger.Debug("glamour render failed", "error", err)
		rendered = steps.Markdown()
	}
	_, _ = fmt.Fprint(w, rendered)
	return nil
}
