package wizard

import (
	"context"
	"errors"
	"testing"

	"github.com/charmbracelet/huh"

	"github.com/modu-ai/seedkit/internal/core/project"
	"github.com/modu-ai/seedkit/internal/preset"
)

// newStubWizard returns a Wizard whose forms finish immediately with err,
// leaving every field at its initial value.
func newStubWizard(err error) (*Wizard, *int) {
	calls := 0
	w := New(false)
	w.run = func(context.Context, *huh.Form) error {
		calls++
		return err
	}
	return w, &calls
}

func TestSelectPreset_DefaultsToFirstChoice(t *testing.T) {
	w, calls := newStubWizard(nil)
	choices := []preset.Choice{
		{Name: "mine", Description: "Saved"},
		{Name: "default", Description: "Babel and ESLint"},
	}

	got, err := w.SelectPreset(context.Background(), choices)
	if err != nil {
		t.Fatalf("SelectPreset() error = %v", err)
	}
	if got != "mine" {
		t.Errorf("SelectPreset() = %q, want %q", got, "mine")
	}
	if *calls != 1 {
		t.Errorf("forms run = %d, want 1", *calls)
	}
}

func TestPresetOptions_AppendsManualChoice(t *testing.T) {
	opts := presetOptions([]preset.Choice{{Name: "default", Description: "Babel and ESLint"}})
	if len(opts) != 2 {
		t.Fatalf("len(opts) = %d, want 2", len(opts))
	}
	if opts[0].Key != "default (Babel and ESLint)" {
		t.Errorf("opts[0].Key = %q", opts[0].Key)
	}
	if opts[1].Value != preset.ManualChoice {
		t.Errorf("last option = %q, want manual choice", opts[1].Value)
	}
}

func TestSelectFeatures_PreselectsDefaults(t *testing.T) {
	w, _ := newStubWizard(nil)

	got, err := w.SelectFeatures(context.Background(), preset.Features())
	if err != nil {
		t.Fatalf("SelectFeatures() error = %v", err)
	}

	var want []string
	for _, f := range preset.Features() {
		if f.Default {
			want = append(want, f.ID)
		}
	}
	if len(got) != len(want) {
		t.Fatalf("SelectFeatures() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("SelectFeatures()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestSelectPackageManager(t *testing.T) {
	w, calls := newStubWizard(nil)

	got, err := w.SelectPackageManager(context.Background(), nil)
	if err != nil || got != "" {
		t.Errorf("SelectPackageManager(nil) = %q, %v", got, err)
	}
	if *calls != 0 {
		t.Errorf("empty list should not prompt, forms run = %d", *calls)
	}

	got, err = w.SelectPackageManager(context.Background(), []string{"yarn", "npm"})
	if err != nil {
		t.Fatalf("SelectPackageManager() error = %v", err)
	}
	if got != "yarn" {
		t.Errorf("SelectPackageManager() = %q, want yarn", got)
	}
}

func TestSaveAs_DeclinedByDefault(t *testing.T) {
	w, calls := newStubWizard(nil)

	got, err := w.SaveAs(context.Background())
	if err != nil {
		t.Fatalf("SaveAs() error = %v", err)
	}
	if got != "" {
		t.Errorf("SaveAs() = %q, want empty", got)
	}
	if *calls != 1 {
		t.Errorf("forms run = %d, want only the confirm", *calls)
	}
}

func TestConflictPrompts_Defaults(t *testing.T) {
	w, _ := newStubWizard(nil)

	ok, err := w.ConfirmCurrentDir(context.Background(), "/tmp/app")
	if err != nil || !ok {
		t.Errorf("ConfirmCurrentDir() = %v, %v; want true, nil", ok, err)
	}

	action, err := w.ChooseAction(context.Background(), "/tmp/app")
	if err != nil {
		t.Fatalf("ChooseAction() error = %v", err)
	}
	if action != project.ProceedMerge {
		t.Errorf("ChooseAction() = %v, want %v", action, project.ProceedMerge)
	}
}

func TestAbortMapsToErrCancelled(t *testing.T) {
	w, _ := newStubWizard(huh.ErrUserAborted)
	ctx := context.Background()

	tests := []struct {
		name string
		call func() error
	}{
		{"SelectPreset", func() error {
			_, err := w.SelectPreset(ctx, []preset.Choice{{Name: "default"}})
			return err
		}},
		{"SelectFeatures", func() error {
			_, err := w.SelectFeatures(ctx, preset.Features())
			return err
		}},
		{"SaveAs", func() error {
			_, err := w.SaveAs(ctx)
			return err
		}},
		{"ConfirmCurrentDir", func() error {
			_, err := w.ConfirmCurrentDir(ctx, "/tmp")
			return err
		}},
		{"ChooseAction", func() error {
			action, err := w.ChooseAction(ctx, "/tmp")
			if action != project.Cancel {
				t.Errorf("ChooseAction() action = %v, want Cancel", action)
			}
			return err
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.call(); !errors.Is(err, ErrCancelled) {
				t.Errorf("error = %v, want ErrCancelled", err)
			}
		})
	}
}

func TestFormErrorIsWrapped(t *testing.T) {
	boom := errors.New("tty gone")
	w, _ := newStubWizard(boom)

	_, err := w.SelectPreset(context.Background(), []preset.Choice{{Name: "default"}})
	if !errors.Is(err, boom) {
		t.Errorf("error = %v, want wrapped %v", err, boom)
	}
	if errors.Is(err, ErrCancelled) {
		t.Error("a form failure must not read as cancellation")
	}
}

func TestValidateSaveName(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr bool
	}{
		{"plain", "my-stack", false},
		{"trimmed", "  my-stack  ", false},
		{"empty", "   ", true},
		{"manual marker", preset.ManualChoice, true},
		{"builtin", preset.DefaultName, true},
		{"file path", "./stack.json", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateSaveName(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("validateSaveName(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
		})
	}
}
