package cli

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/modu-ai/seedkit/internal/preset"
)

var presetCmd = &cobra.Command{
	Use:   "preset",
	Short: "Manage saved presets",
	Long: `List, inspect and save presets.

Saved presets are stored in the rc file (~/.seedrc.yaml, or $SEED_RC) and can
be used with "seed create --preset <name>".`,
}

var presetListCmd = &cobra.Command{
	Use:   "list",
	Short: "List saved and built-in presets",
	Args:  cobra.NoArgs,
	RunE:  runPresetList,
}

var presetShowCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Print a preset as YAML",
	Args:  cobra.ExactArgs(1),
	RunE:  runPresetShow,
}

var presetSaveCmd = &cobra.Command{
	Use:   "save <name>",
	Short: "Save a preset under a name",
	Long: `Save a preset under a name in the rc file.

The preset comes from --from (a built-in, saved or file preset) or from
--inline (a JSON string).

Examples:
  seed preset save team --from ./team-preset.toml
  seed preset save ts -i '{"plugins":{"typescript":{}}}'`,
	Args: cobra.ExactArgs(1),
	RunE: runPresetSave,
}

func init() {
	rootCmd.AddCommand(presetCmd)
	presetCmd.AddCommand(presetListCmd, presetShowCmd, presetSaveCmd)

	presetSaveCmd.Flags().String("from", "", "Preset name or file to copy")
	presetSaveCmd.Flags().StringP("inline", "i", "", "Inline JSON preset")
	presetSaveCmd.MarkFlagsOneRequired("from", "inline")
	presetSaveCmd.MarkFlagsMutuallyExclusive("from", "inline")
}

// newPresetResolver loads the rc file and returns a resolver over it.
func newPresetResolver(d *Dependencies) (*preset.Resolver, error) {
	if _, err := d.EnsureSettings(); err != nil {
		return nil, err
	}
	cwd, err := os.Getwd()
	if err != nil {
		return nil, fmt.Errorf("get working directory: %w", err)
	}
	return preset.NewResolver(preset.ResolverOptions{
		WorkDir: cwd,
		Store:   d.presetStore(),
		Logger:  d.Logger,
	}), nil
}

func runPresetList(cmd *cobra.Command, _ []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	r, err := newPresetResolver(d)
	if err != nil {
		return err
	}

	saved := map[string]bool{}
	if store := d.presetStore(); store != nil {
		for name := range maps.Keys(store.SavedPresets()) {
			saved[name] = true
		}
	}

	out := cmd.OutOrStdout()
	for _, c := range r.Choices() {
		kind := "built-in"
		if saved[c.Name] {
			kind = "saved"
		}
		line := fmt.Sprintf("  %-16s %s", c.Name, cliMuted.Render(kind))
		if c.Description != "" {
			line += "  " + c.Description
		}
		_, _ = fmt.Fprintln(out, line)
	}
	return nil
}

func runPresetShow(cmd *cobra.Command, args []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	r, err := newPresetResolver(d)
	if err != nil {
		return err
	}

	p, err := r.Load(args[0])
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode preset: %w", err)
	}
	_, _ = cmd.OutOrStdout().Write(data)
	return nil
}

func runPresetSave(cmd *cobra.Command, args []string) error {
	d, err := requireDeps()
	if err != nil {
		return err
	}
	r, err := newPresetResolver(d)
	if err != nil {
		return err
	}
	store := d.presetStore()
	if store == nil {
		return errors.New("no rc file configured; set SEED_RC")
	}

	name := args[0]
	if name == preset.ManualChoice || preset.IsFileRef(name) {
		return fmt.Errorf("invalid preset name %q", name)
	}
	if slices.Contains(preset.BuiltinNames(), name) {
		return fmt.Errorf("%q is a built-in preset", name)
	}

	var p preset.Preset
	if inline := getStringFlag(cmd, "inline"); inline != "" {
		p, err = preset.ParseInline(inline)
	} else {
		p, err = r.Load(getStringFlag(cmd, "from"))
	}
	if err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return err
	}

	if err := store.SavePreset(name, p); err != nil {
		return fmt.Errorf("save preset: %w", err)
	}
	_, _ = fmt.Fprintf(cmd.OutOrStdout(), "%s Saved preset %s\n", symSuccess(), cliPrimary.Render(name))
	return nil
}
