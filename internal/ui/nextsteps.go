package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/glamour"
)

// NextSteps is the data shown after a successful creation.
type NextSteps struct {
	Dir            string // Directory to cd into; empty when created in place
	PackageManager string
	Scripts        []string // package.json scripts worth mentioning
	Warnings       []string
}

// Markdown renders steps as a markdown document.
func (n NextSteps) Markdown() string {
	var b strings.Builder
	b.WriteString("## Get started\n\n```sh\n")
	if n.Dir != "" {
		fmt.Fprintf(&b, "cd %s\n", n.Dir)
	}
	pm := n.PackageManager
	if pm == "" {
		pm = "npm"
	}
	if len(n.Scripts) == 0 {
		fmt.Fprintf(&b, "%s install\n", pm)
	}
	for _, s := range n.Scripts {
		fmt.Fprintf(&b, "%s run %s\n", pm, s)
	}
	b.WriteString("```\n")

	if len(n.Warnings) > 0 {
		b.WriteString("\n### Warnings\n\n")
		for _, w := range n.Warnings {
			fmt.Fprintf(&b, "- %s\n", w)
		}
	}
	return b.String()
}

// RenderNextSteps renders steps for the terminal. Without color the
// markdown is laid out with glamour's plain style.
func RenderNextSteps(theme *Theme, hm *HeadlessManager, n NextSteps) (string, error) {
	style := glamour.WithAutoStyle()
	if theme.NoColor || !hm.CanAnimate() {
		style = glamour.WithStandardStyle("notty")
	}
	r, err := glamour.NewTermRenderer(style, glamour.WithWordWrap(hm.Width()))
	if err != nil {
		return "", fmt.Errorf("create markdown renderer: %w", err)
	}
	out, err := r.Render(n.Markdown())
	if err != nil {
		return "", fmt.Errorf("render next steps: %w", err)
	}
	return out, nil
}
