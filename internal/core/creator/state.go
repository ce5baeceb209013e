package creator

import "fmt"

// State is a node of the creation state machine.
type State int

const (
	StateStart State = iota
	StatePresetResolved
	StateDirectoryValidated
	StateProjectInitialized
	StateFilesGenerated
	StateDepsInstalled
	StateHooksRun
	StateGitInitialized
	StateDone
	StateError
)

var stateNames = [...]string{
	StateStart:              "start",
	StatePresetResolved:     "preset-resolved",
	StateDirectoryValidated: "directory-validated",
	StateProjectInitialized: "project-initialized",
	StateFilesGenerated:     "files-generated",
	StateDepsInstalled:      "deps-installed",
	StateHooksRun:           "hooks-run",
	StateGitInitialized:     "git-initialized",
	StateDone:               "done",
	StateError:              "error",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return fmt.Sprintf("State(%d)", int(s))
	}
	return stateNames[s]
}

// Terminal reports whether the machine stops in s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateError
}
