// Package ui renders creation progress in the terminal: spinners for each
// lifecycle phase, a result summary and the "get started" block.
package ui

import (
	"os"

	"github.com/charmbracelet/lipgloss"
)

// Colors are hex color strings used by spinners and styled text.
type Colors struct {
	Primary   string
	Secondary string
	Success   string
	Warning   string
	Error     string
	Muted     string
}

// Theme selects colors for UI components.
type Theme struct {
	Colors  Colors
	NoColor bool // Plain output; also forces line-based spinners
}

// NewTheme returns the default theme. NO_COLOR disables color.
func NewTheme() *Theme {
	t := &Theme{
		Colors: Colors{
			Primary:   "#DA7756",
			Secondary: "#C45A3C",
			Success:   "#10B981",
			Warning:   "#F59E0B",
			Error:     "#EF4444",
			Muted:     "#9CA3AF",
		},
	}
	if _, ok := os.LookupEnv("NO_COLOR"); ok {
		t.NoColor = true
	}
	return t
}

func (t *Theme) style(color string) lipgloss.Style {
	if t.NoColor {
		return lipgloss.NewStyle()
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// Success styles s as a success message.
func (t *Theme) Success(s string) string { return t.style(t.Colors.Success).Render(s) }

// Warning styles s as a warning.
func (t *Theme) Warning(s string) string { return t.style(t.Colors.Warning).Render(s) }

// Error styles s as an error.
func (t *Theme) Error(s string) string { return t.style(t.Colors.Error).Render(s) }

// Muted styles s as secondary text.
func (t *Theme) Muted(s string) string { return t.style(t.Colors.Muted).Render(s) }

// Primary styles s in the brand color, bold.
func (t *Theme) Primary(s string) string { return t.style(t.Colors.Primary).Bold(!t.NoColor).Render(s) }
