package vcs

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/modu-ai/seedkit/internal/proc"
)

// Runner runs an external command. *proc.Runner satisfies it.
type Runner interface {
	Run(ctx context.Context, name string, args []string, opts proc.RunOptions) (*proc.Output, error)
}

// Git drives the system git binary.
type Git struct {
	runner Runner
	logger *slog.Logger
}

// New creates a Git. A nil logger discards output.
func New(runner Runner, logger *slog.Logger) *Git {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Git{runner: runner, logger: logger.With("module", "vcs")}
}

// Init runs git init in dir.
func (g *Git) Init(ctx context.Context, dir string) error {
	_, err := g.exec(ctx, "init", dir, "init")
	return err
}

// StageAll stages every file in dir.
func (g *Git) StageAll(ctx context.Context, dir string) error {
	_, err := g.exec(ctx, "add", dir, "add", "-A")
	return err
}

// Commit records the staged files with message. Hooks are skipped since
// the project's own hooks are not installed yet.
func (g *Git) Commit(ctx context.Context, dir, message string) error {
	_, err := g.exec(ctx, "commit", dir, "commit", "-m", message, "--no-verify")
	return err
}

// IsInsideWorkTree reports whether dir already belongs to a git work tree.
// A missing git binary or any failure reports false.
func (g *Git) IsInsideWorkTree(ctx context.Context, dir string) bool {
	out, err := g.exec(ctx, "rev-parse", dir, "rev-parse", "--is-inside-work-tree")
	return err == nil && out == "true"
}

// exec runs git with captured output. GIT_TERMINAL_PROMPT=0 keeps git
// from waiting on credentials; LC_ALL=C keeps messages parseable.
func (g *Git) exec(ctx context.Context, op, dir string, args ...string) (string, error) {
	out, err := g.runner.Run(ctx, "git", args, proc.RunOptions{
		Dir:     dir,
		Capture: true,
		Env:     []string{"GIT_TERMINAL_PROMPT=0", "LC_ALL=C"},
	})
	if err != nil {
		vErr := &Error{Op: op, Dir: dir, Err: err}
		var failed *proc.CommandFailedError
		if errors.As(err, &failed) {
			vErr.Stderr = failed.Stderr
		}
		g.logger.Debug("git failed", "op", op, "dir", dir, "error", err)
		return "", vErr
	}
	return strings.TrimRight(out.Stdout, "\n\r"), nil
}
