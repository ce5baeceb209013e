// Package wizard asks the questions of an interactive creation run:
// preset selection, manual feature selection and directory conflicts.
package wizard

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/huh"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/preset"
)

// ErrCancelled is returned when the user cancels a prompt.
var ErrCancelled = errors.New("wizard cancelled by user")

// manualLabel is the selection entry that opens manual feature selection.
const manualLabel = "Manually select features"

// Wizard implements preset.Prompter and project.Prompter with huh forms.
// Each question runs as its own form.
type Wizard struct {
	theme      *huh.Theme
	accessible bool
	run        func(ctx context.Context, f *huh.Form) error
}

var (
	_ preset.Prompter  = (*Wizard)(nil)
	_ project.Prompter = (*Wizard)(nil)
)

// New creates a Wizard. Accessible mode replaces the TUI with plain
// line prompts, for screen readers and dumb terminals.
func New(accessible bool) *Wizard {
	return &Wizard{
		theme:      newWizardTheme(),
		accessible: accessible,
		run: func(ctx context.Context, f *huh.Form) error {
			return f.RunWithContext(ctx)
		},
	}
}

func (w *Wizard) ask(ctx context.Context, fields ...huh.Field) error {
	form := huh.NewForm(huh.NewGroup(fields...)).
		WithTheme(w.theme).
		WithAccessible(w.accessible)

	if err := w.run(ctx, form); err != nil {
		if errors.Is(err, huh.ErrUserAborted) {
			return ErrCancelled
		}
		return fmt.Errorf("wizard error: %w", err)
	}
	return nil
}

// SelectPreset asks for a preset by name. preset.ManualChoice means the
// user wants to pick features by hand.
func (w *Wizard) SelectPreset(ctx context.Context, choices []preset.Choice) (string, error) {
	opts := presetOptions(choices)
	selected := opts[0].Value

	sel := huh.NewSelect[string]().
		Title("Please pick a preset").
		Options(opts...).
		Value(&selected)
	if err := w.ask(ctx, sel); err != nil {
		return "", err
	}
	return selected, nil
}

func presetOptions(choices []preset.Choice) []huh.Option[string] {
	opts := make([]huh.Option[string], 0, len(choices)+1)
	for _, c := range choices {
		key := c.Name
		if c.Description != "" {
			key = c.Name + " (" + c.Description + ")"
		}
		opts = append(opts, huh.NewOption(key, c.Name))
	}
	return append(opts, huh.NewOption(manualLabel, preset.ManualChoice))
}

// SelectFeatures asks which features to enable. Features marked Default
// start selected.
func (w *Wizard) SelectFeatures(ctx context.Context, features []preset.Feature) ([]string, error) {
	opts, ids := featureOptions(features)

	ms := huh.NewMultiSelect[string]().
		Title("Check the features needed for your project").
		Description("space to toggle, enter to confirm").
		Options(opts...).
		Value(&ids)
	if err := w.ask(ctx, ms); err != nil {
		return nil, err
	}
	return ids, nil
}

func featureOptions(features []preset.Feature) ([]huh.Option[string], []string) {
	opts := make([]huh.Option[string], len(features))
	var selected []string
	for i, f := range features {
		key := f.Label
		if f.Description != "" {
			key = f.Label + " - " + f.Description
		}
		opts[i] = huh.NewOption(key, f.ID).Selected(f.Default)
		if f.Default {
			selected = append(selected, f.ID)
		}
	}
	return opts, selected
}

// SelectPackageManager asks which installed package manager to use.
func (w *Wizard) SelectPackageManager(ctx context.Context, names []string) (string, error) {
	if len(names) == 0 {
		return "", nil
	}
	selected := names[0]

	opts := make([]huh.Option[string], len(names))
	for i, n := range names {
		opts[i] = huh.NewOption("Use "+strings.ToUpper(n[:1])+n[1:], n)
	}
	sel := huh.NewSelect[string]().
		Title("Pick the package manager to use when installing dependencies").
		Options(opts...).
		Value(&selected)
	if err := w.ask(ctx, sel); err != nil {
		return "", err
	}
	return selected, nil
}

// SaveAs asks whether to keep the manual selection as a preset and, if
// so, under what name. An empty name means no.
func (w *Wizard) SaveAs(ctx context.Context) (string, error) {
	save := false
	confirm := huh.NewConfirm().
		Title("Save this as a preset for future projects?").
		Affirmative("Yes").
		Negative("No").
		Value(&save)
	if err := w.ask(ctx, confirm); err != nil {
		return "", err
	}
	if !save {
		return "", nil
	}

	var name string
	input := huh.NewInput().
		Title("Save preset as:").
		Validate(validateSaveName).
		Value(&name)
	if err := w.ask(ctx, input); err != nil {
		return "", err
	}
	return strings.TrimSpace(name), nil
}

func validateSaveName(name string) error {
	name = strings.TrimSpace(name)
	switch {
	case name == "":
		return errors.New("please provide a name")
	case name == preset.ManualChoice:
		return fmt.Errorf("%q is reserved", name)
	case preset.IsFileRef(name):
		return errors.New("preset names cannot look like file paths")
	}
	if _, ok := preset.Builtin(name); ok {
		return fmt.Errorf("%q is a built-in preset", name)
	}
	return nil
}

// ConfirmCurrentDir asks whether to generate into the working directory.
func (w *Wizard) ConfirmCurrentDir(ctx context.Context, path string) (bool, error) {
	ok := true
	confirm := huh.NewConfirm().
		Title("Generate project in current directory?").
		Description(path).
		Value(&ok)
	if err := w.ask(ctx, confirm); err != nil {
		return false, err
	}
	return ok, nil
}

// ChooseAction asks how to treat an existing target directory.
func (w *Wizard) ChooseAction(ctx context.Context, path string) (project.Action, error) {
	action := project.ProceedMerge
	sel := huh.NewSelect[project.Action]().
		Title(fmt.Sprintf("Target directory %s already exists. Pick an action:", path)).
		Options(
			huh.NewOption("Overwrite", project.ProceedClean),
			huh.NewOption("Merge", project.ProceedMerge),
			huh.NewOption("Cancel", project.Cancel),
		).
		Value(&action)
	if err := w.ask(ctx, sel); err != nil {
		return project.Cancel, err
	}
	return action, nil
}
