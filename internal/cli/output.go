package cli

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"syscall"

	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"

	"github.com/modu-ai/seedkit/internal/cli/wizard"
	"github.com/modu-ai/seedkit/internal/core/creator"
	"github.com/modu-ai/seedkit/internal/pkgmgr"
	"github.com/modu-ai/seedkit/internal/preset"
	"github.com/modu-ai/seedkit/internal/proc"
	"github.com/modu-ai/seedkit/internal/vcs"
)

// CLI output styles.
var (
	cliSuccess = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#059669", Dark: "#10B981"})
	cliWarn    = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#D97706", Dark: "#F59E0B"})
	cliError   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#DC2626", Dark: "#EF4444"})
	cliMuted   = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#9CA3AF", Dark: "#6B7280"})
	cliPrimary = lipgloss.NewStyle().Foreground(lipgloss.AdaptiveColor{Light: "#C45A3C", Dark: "#DA7756"}).Bold(true)
)

func symSuccess() string { return cliSuccess.Render("✓") }
func symError() string   { return cliError.Render("✗") }
func symWarning() string { return cliWarn.Render("!") }

// printError writes err to w followed by a remediation hint when the
// cause is recognized. Cancellation is reported without the error prefix.
func printError(w io.Writer, err error) {
	if isCancellation(err) {
		_, _ = fmt.Fprintln(w, cliMuted.Render("Operation cancelled."))
		return
	}

	_, _ = fmt.Fprintf(w, "%s %v\n", symError(), err)
	if hint := hintFor(err); hint != "" {
		hintColor := color.New(color.FgYellow)
		_, _ = hintColor.Fprintf(w, "  hint: %s\n", hint)
	}
}

func isCancellation(err error) bool {
	if errors.Is(err, wizard.ErrCancelled) {
		return true
	}
	switch creator.KindOf(err) {
	case creator.KindConflictAborted, creator.KindCancelled:
		return true
	}
	return false
}

// hintFor maps an error cause to a suggestion for the user.
func hintFor(err error) string {
	var (
		missing *proc.ExecutableNotFoundError
		vcsErr  *vcs.Error
	)
	switch {
	case errors.As(err, &missing):
		if _, err := pkgmgr.ParseVariant(missing.Command); err == nil {
			return fmt.Sprintf("install %s or add it to PATH, or choose another manager with --package-manager", missing.Command)
		}
		return fmt.Sprintf("install %s or add it to PATH", missing.Command)
	case errors.Is(err, syscall.ENOSPC):
		return "the disk is full; free some space and try again"
	case errors.Is(err, fs.ErrPermission), errors.Is(err, syscall.EACCES):
		return "check that you can write to the target directory, or pick another location"
	case errors.As(err, &vcsErr) && vcsErr.Op == "commit":
		return commitHint
	case errors.Is(err, preset.ErrInteractionRequired):
		return "not a terminal: pass --default, --preset <name> or --inline-preset '<json>'"
	}

	switch creator.KindOf(err) {
	case creator.KindPresetNotFound:
		return "list the available presets with: seed preset list"
	case creator.KindCommandFailed:
		return "the package manager output above has the details; rerun with --debug for more"
	}
	return ""
}

// commitHint is shown when git could not create the initial commit.
const commitHint = `set your identity with: git config --global user.name "Your Name" && git config --global user.email you@example.com`
