package cli

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/modu-ai/seedkit/pkg/version"
)

var rootCmd = &cobra.Command{
	Use:   "seed",
	Short: "seed: scaffold JavaScript and TypeScript projects",
	Long: `seed creates a new project from a preset: it writes package.json and
the starter files for the selected plugins, installs dependencies with npm,
yarn or pnpm, runs completion hooks and initializes a git repository.

Presets come from --preset, --inline-preset, --default, or an interactive
prompt. Saved presets live in ~/.seedrc.yaml.`,
	Version:       version.GetVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, _ []string) {
		if getBoolFlag(cmd, "debug") {
			logLevel.Set(slog.LevelDebug)
		}
	},
}

// Execute initializes dependencies and runs the root command. A failure
// is printed to stderr together with a remediation hint when one applies.
// An interrupt cancels the running command and its child processes.
func Execute() error {
	InitDependencies()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(os.Stderr, err)
	}
	return err
}

func init() {
	rootCmd.SetVersionTemplate(fmt.Sprintf("seed %s\n", version.GetVersion()))
	rootCmd.PersistentFlags().Bool("debug", false, "Write debug logs to stderr")
}

// getStringFlag retrieves a string flag value from the command.
func getStringFlag(cmd *cobra.Command, name string) string {
	val, err := cmd.Flags().GetString(name)
	if err != nil {
		return ""
	}
	return val
}

// getBoolFlag retrieves a bool flag value from the command.
func getBoolFlag(cmd *cobra.Command, name string) bool {
	val, err := cmd.Flags().GetBool(name)
	if err != nil {
		return false
	}
	return val
}
