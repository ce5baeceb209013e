package proc

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/exec"
)

// Lookup resolves a command name to an executable path.
type Lookup interface {
	Resolve(name string) (string, bool)
}

// RunOptions controls a single process invocation.
type RunOptions struct {
	Dir     string   // Working directory; empty means the current one
	Capture bool     // Capture stdout/stderr instead of inheriting them
	Env     []string // Extra KEY=VALUE pairs appended to the environment
}

// Output is the result of a finished process.
type Output struct {
	ExitCode int
	Stdout   string
	Stderr   string
}

// Runner starts external processes and waits for them to exit.
type Runner struct {
	lookup Lookup
	stdin  io.Reader
	stdout io.Writer
	stderr io.Writer
	logger *slog.Logger
}

// NewRunner creates a Runner that resolves commands through lookup and
// inherits the current process streams when output is not captured.
// A nil lookup uses NewResolver(); a nil logger discards log output.
func NewRunner(lookup Lookup, logger *slog.Logger) *Runner {
	if lookup == nil {
		lookup = NewResolver()
	}
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Runner{
		lookup: lookup,
		stdin:  os.Stdin,
		stdout: os.Stdout,
		stderr: os.Stderr,
		logger: logger.With("module", "proc"),
	}
}

// SetStreams replaces the streams used for inherited output.
func (r *Runner) SetStreams(stdin io.Reader, stdout, stderr io.Writer) {
	r.stdin, r.stdout, r.stderr = stdin, stdout, stderr
}

// Run resolves name, starts it with args and waits for it to finish.
//
// A missing executable yields *ExecutableNotFoundError without launching
// anything. A non-zero exit yields *CommandFailedError; the returned Output
// is non-nil in that case so callers can still read captured streams.
func (r *Runner) Run(ctx context.Context, name string, args []string, opts RunOptions) (*Output, error) {
	path, ok := r.lookup.Resolve(name)
	if !ok {
		return nil, &ExecutableNotFoundError{Command: name}
	}

	cmd := exec.CommandContext(ctx, path, args...)
	cmd.Dir = opts.Dir
	if len(opts.Env) > 0 {
		cmd.Env = append(os.Environ(), opts.Env...)
	}

	var stdout, stderr bytes.Buffer
	if opts.Capture {
		cmd.Stdout = &stdout
		cmd.Stderr = &stderr
	} else {
		cmd.Stdin = r.stdin
		cmd.Stdout = r.stdout
		cmd.Stderr = r.stderr
	}

	r.logger.Debug("run", "command", name, "path", path, "args", args, "dir", opts.Dir, "capture", opts.Capture)

	err := cmd.Run()
	out := &Output{Stdout: stdout.String(), Stderr: stderr.String()}
	if err == nil {
		return out, nil
	}

	if ctxErr := ctx.Err(); ctxErr != nil {
		return out, fmt.Errorf("%s: %w", name, ctxErr)
	}

	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		out.ExitCode = exitErr.ExitCode()
		r.logger.Debug("command failed", "command", name, "exit_code", out.ExitCode)
		return out, &CommandFailedError{
			Command:  name,
			Args:     args,
			ExitCode: out.ExitCode,
			Stdout:   out.Stdout,
			Stderr:   out.Stderr,
		}
	}

	return out, &LaunchError{Command: name, Err: err}
}
