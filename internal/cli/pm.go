package cli

import (
	"context"
	"fmt"
	"maps"
	"os"
	"path/filepath"
	"slices"

	"github.com/spf13/cobra"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/defs"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
)

var pmCmd = &cobra.Command{
	Use:   "pm",
	Short: "Run package manager tasks in an existing project",
	Long: `Run package manager tasks in the nearest project containing a package.json.

The package manager is taken from --package-manager, then from the lock file
in the project, then from the project's .seed.json, then from the rc file or
whichever of yarn, pnpm and npm is installed.`,
}

var pmListCmd = &cobra.Command{
	Use:   "list [package]",
	Short: "List installed top-level packages",
	Args:  cobra.MaximumNArgs(1),
	RunE: withAdapter(func(ctx context.Context, cmd *cobra.Command, a *pkgmgr.Adapter, args []string) error {
		pkgs, err := a.ListInstalled(ctx, firstArg(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		for _, name := range slices.Sorted(maps.Keys(pkgs)) {
			_, _ = fmt.Fprintf(out, "  %s %s\n", name, cliMuted.Render(pkgs[name]))
		}
		return nil
	}),
}

var pmOutdatedCmd = &cobra.Command{
	Use:   "outdated [package]",
	Short: "List packages with newer versions available",
	Args:  cobra.MaximumNArgs(1),
	RunE: withAdapter(func(ctx context.Context, cmd *cobra.Command, a *pkgmgr.Adapter, args []string) error {
		list, err := a.CheckOutdated(ctx, firstArg(args))
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(list) == 0 {
			_, _ = fmt.Fprintf(out, "%s All packages are up to date\n", symSuccess())
			return nil
		}
		for _, o := range list {
			_, _ = fmt.Fprintf(out, "  %-24s %s -> %s %s\n",
				o.Name, o.Current, cliSuccess.Render(o.Wanted), cliMuted.Render("(latest "+o.Latest+")"))
		}
		return nil
	}),
}

var pmCleanCacheCmd = &cobra.Command{
	Use:   "clean-cache",
	Short: "Clear the package manager cache",
	Args:  cobra.NoArgs,
	RunE: withAdapter(func(ctx context.Context, cmd *cobra.Command, a *pkgmgr.Adapter, _ []string) error {
		if err := a.CleanCache(ctx); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Cleared the %s cache\n", symSuccess(), a.Variant())
		return nil
	}),
}

var pmValidateLockCmd = &cobra.Command{
	Use:   "validate-lock",
	Short: "Check that the lock file exists and matches package.json",
	Args:  cobra.NoArgs,
	RunE: withAdapter(func(ctx context.Context, cmd *cobra.Command, a *pkgmgr.Adapter, _ []string) error {
		lock := a.Descriptor().LockFile
		if !a.ValidateLockFile(ctx) {
			_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s is missing or out of date\n", symWarning(), lock)
			return fmt.Errorf("%s failed validation", lock)
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s %s is valid\n", symSuccess(), lock)
		return nil
	}),
}

var pmLockCmd = &cobra.Command{
	Use:   "lock",
	Short: "Write the lock file without installing packages",
	Args:  cobra.NoArgs,
	RunE: withAdapter(func(ctx context.Context, cmd *cobra.Command, a *pkgmgr.Adapter, _ []string) error {
		if err := a.GenerateLockFile(ctx); err != nil {
			return err
		}
		_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Wrote %s\n", symSuccess(), a.Descriptor().LockFile)
		return nil
	}),
}

func init() {
	rootCmd.AddCommand(pmCmd)
	pmCmd.AddCommand(pmListCmd, pmOutdatedCmd, pmCleanCacheCmd, pmValidateLockCmd, pmLockCmd)

	pmCmd.PersistentFlags().StringP("package-manager", "m", "", "Package manager to use (npm, yarn, pnpm)")
	pmCmd.PersistentFlags().StringP("registry", "r", "", "Registry URL for commands that contact it")
	pmCmd.PersistentFlags().String("dir", "", "Project directory (default: nearest directory with a package.json)")
}

type adapterFunc func(ctx context.Context, cmd *cobra.Command, a *pkgmgr.Adapter, args []string) error

// withAdapter resolves the project root and package manager, then runs fn
// with an adapter bound to them.
func withAdapter(fn adapterFunc) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		d, err := requireDeps()
		if err != nil {
			return err
		}
		settings, err := d.EnsureSettings()
		if err != nil {
			return err
		}

		root := getStringFlag(cmd, "dir")
		if root == "" {
			root, err = project.FindProjectRootOrCurrent()
		} else {
			root, err = filepath.Abs(root)
		}
		if err != nil {
			return err
		}

		variant, err := projectVariant(root, getStringFlag(cmd, "package-manager"), func() string {
			return d.DefaultPackageManager(settings)
		})
		if err != nil {
			return err
		}

		registry := getStringFlag(cmd, "registry")
		if registry == "" {
			registry = settings.Registry
		}
		opts := []pkgmgr.Option{pkgmgr.WithLogger(d.Logger)}
		if registry != "" {
			opts = append(opts, pkgmgr.WithRegistry(registry))
		}
		a, err := pkgmgr.New(variant, root, d.Runner, opts...)
		if err != nil {
			return err
		}
		d.Logger.Debug("package manager selected", "variant", variant, "root", root)
		return fn(cmd.Context(), cmd, a, args)
	}
}

// projectVariant picks the package manager for an existing project: the
// explicit name, then a lock file in root, then the metadata file, then
// fallback.
func projectVariant(root, explicit string, fallback func() string) (pkgmgr.Variant, error) {
	if explicit != "" {
		return pkgmgr.ParseVariant(explicit)
	}
	for _, v := range pkgmgr.Variants() {
		if _, err := os.Stat(filepath.Join(root, v.Descriptor().LockFile)); err == nil {
			return v, nil
		}
	}
	if m, err := preset.ReadMetadata(filepath.Join(root, defs.MetadataJSON)); err == nil && m.Preset.Options.PackageManager != "" {
		return m.Preset.Variant()
	}
	return pkgmgr.ParseVariant(fallback())
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}
