package ui

import (
	"os"

	"github.com/mattn/go-isatty"
	"golang.org/x/term"
)

// defaultWidth is used when stdout is not a terminal.
const defaultWidth = 80

// HeadlessManager decides whether the UI may prompt and animate.
// Prompting needs a terminal on stdin; animation needs one on stdout.
type HeadlessManager struct {
	forced *bool
	in     *os.File
	out    *os.File
}

// NewHeadlessManager creates a HeadlessManager for os.Stdin and os.Stdout.
func NewHeadlessManager() *HeadlessManager {
	return &HeadlessManager{in: os.Stdin, out: os.Stdout}
}

// IsHeadless reports whether prompts must be avoided. ForceHeadless
// overrides TTY detection.
func (h *HeadlessManager) IsHeadless() bool {
	if h.forced != nil {
		return *h.forced
	}
	return !isTerminal(h.in)
}

// CanAnimate reports whether spinners may redraw in place.
func (h *HeadlessManager) CanAnimate() bool {
	if h.forced != nil {
		return !*h.forced
	}
	return isTerminal(h.out)
}

// ForceHeadless overrides TTY detection. Pass true to force headless mode,
// or false to force interactive mode regardless of TTY state.
func (h *HeadlessManager) ForceHeadless(force bool) {
	h.forced = &force
}

// ClearForce removes any forced override, reverting to automatic TTY detection.
func (h *HeadlessManager) ClearForce() {
	h.forced = nil
}

// Width returns the column count of stdout, or defaultWidth when it is
// not a terminal.
func (h *HeadlessManager) Width() int {
	if h.out == nil || !isTerminal(h.out) {
		return defaultWidth
	}
	w, _, err := term.GetSize(int(h.out.Fd()))
	if err != nil || w <= 0 {
		return defaultWidth
	}
	return w
}

func isTerminal(f *os.File) bool {
	if f == nil {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
