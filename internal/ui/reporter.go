package ui

import (
	"fmt"
	"io"
	"sync"

	"github.com/modu-ai/seedkit/internal/event"
)

// phaseTitles are shown while a phase runs.
var phaseTitles = map[event.Phase]string{
	event.PhaseProjectInit:     "Writing package.json and project metadata",
	event.PhaseGenerateFiles:   "Generating project files",
	event.PhaseCompletionHooks: "Running completion hooks",
	event.PhaseGitInit:         "Initializing git repository",
}

// Subscriber is the part of event.Bus the Reporter needs.
type Subscriber interface {
	SubscribeAll(h event.Handler)
}

// Reporter turns lifecycle events into terminal output. Each phase gets a
// spinner except deps-install, whose package manager output is shown
// directly.
type Reporter struct {
	mu       sync.Mutex
	theme    *Theme
	headless *HeadlessManager
	out      io.Writer
	spinner  Spinner
	newSpin  func(title string) Spinner
}

// NewReporter creates a Reporter writing to out.
func NewReporter(theme *Theme, hm *HeadlessManager, out io.Writer) *Reporter {
	r := &Reporter{theme: theme, headless: hm, out: out}
	r.newSpin = func(title string) Spinner { return NewSpinner(theme, hm, out, title) }
	return r
}

// Attach subscribes the reporter to every phase.
func (r *Reporter) Attach(bus Subscriber) {
	bus.SubscribeAll(r.Handle)
}

// Handle renders e.
func (r *Reporter) Handle(e event.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.stopSpinner()

	switch e.Phase {
	case event.PhaseStart:
		r.printf("%s Creating project in %s\n", r.theme.Primary(symProgress()), r.theme.Primary(e.Path))
	case event.PhaseDepsInstall:
		r.printf("%s Installing dependencies. This might take a while...\n", r.theme.Primary(symProgress()))
	case event.PhaseDone:
		r.printf("%s Successfully created project %s\n", r.theme.Success(symSuccess()), r.theme.Primary(e.Project))
	case event.PhaseError:
		if e.Err != nil {
			r.printf("%s Creation of %s stopped\n", r.theme.Error(symError()), e.Project)
		}
	default:
		if title, ok := phaseTitles[e.Phase]; ok {
			r.spinner = r.newSpin(title)
		}
	}
}

// Close stops a running spinner.
func (r *Reporter) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.stopSpinner()
}

func (r *Reporter) stopSpinner() {
	if r.spinner != nil {
		r.spinner.Stop()
		r.spinner = nil
	}
}

func (r *Reporter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(r.out, format, args...)
}

// Warn prints a non-fatal warning line.
func (r *Reporter) Warn(msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.printf("%s %s\n", r.theme.Warning(symWarning()), msg)
}
