// Package hook runs completion callbacks after a project's dependencies
// are installed.
package hook

import "context"

// Stage selects when a callback runs. All post-invoke callbacks finish
// before the first after-any callback starts.
type Stage int

const (
	// StagePostInvoke callbacks are registered by generators for their own files.
	StagePostInvoke Stage = iota
	// StageAfterAny callbacks run once every post-invoke callback succeeded.
	StageAfterAny
)

func (s Stage) String() string {
	switch s {
	case StagePostInvoke:
		return "post-invoke"
	case StageAfterAny:
		return "after-any"
	default:
		return "unknown"
	}
}

// ScriptRunner runs a package.json script in the new project.
type ScriptRunner interface {
	RunScript(ctx context.Context, script string, args ...string) error
}

// Context is passed to every callback.
type Context struct {
	ProjectName    string
	Root           string       // Absolute project directory
	PackageManager string       // Name of the package manager that installed dependencies
	Scripts        ScriptRunner // Bound to PackageManager and Root
}

// Func is a completion callback.
type Func func(ctx context.Context, hc Context) error

// Handler is a named callback registered for one stage.
type Handler struct {
	Name  string
	Stage Stage
	Fn    Func
}
