package event

import "time"

// Phase names one lifecycle checkpoint of a creation run.
type Phase string

const (
	PhaseStart           Phase = "start"
	PhaseProjectInit     Phase = "project-init"
	PhaseGenerateFiles   Phase = "generate-files"
	PhaseDepsInstall     Phase = "deps-install"
	PhaseCompletionHooks Phase = "completion-hooks"
	PhaseGitInit         Phase = "git-init"
	PhaseDone            Phase = "done"
	PhaseError           Phase = "error"
)

// Phases lists every phase in emission order, error last.
func Phases() []Phase {
	return []Phase{
		PhaseStart,
		PhaseProjectInit,
		PhaseGenerateFiles,
		PhaseDepsInstall,
		PhaseCompletionHooks,
		PhaseGitInit,
		PhaseDone,
		PhaseError,
	}
}

// Terminal reports whether no event can follow p.
func (p Phase) Terminal() bool {
	return p == PhaseDone || p == PhaseError
}

// Event is one lifecycle notification. Err is set only for PhaseError.
type Event struct {
	Phase   Phase
	Project string
	Path    string
	Err     error
	Time    time.Time
}

// Publisher receives events from the orchestrator.
type Publisher interface {
	Publish(Event)
}

// Handler handles one event.
type Handler func(Event)
