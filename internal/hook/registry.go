package hook

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sync"
)

// Registry holds completion callbacks in registration order per stage.
type Registry struct {
	mu       sync.Mutex
	handlers map[Stage][]Handler
	logger   *slog.Logger
}

// NewRegistry creates an empty Registry. A nil logger discards output.
func NewRegistry(logger *slog.Logger) *Registry {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Registry{
		handlers: make(map[Stage][]Handler),
		logger:   logger.With("module", "hook"),
	}
}

// OnPostInvoke registers a post-invoke callback.
func (r *Registry) OnPostInvoke(name string, fn Func) {
	r.Register(Handler{Name: name, Stage: StagePostInvoke, Fn: fn})
}

// OnAfterAny registers an after-any callback.
func (r *Registry) OnAfterAny(name string, fn Func) {
	r.Register(Handler{Name: name, Stage: StageAfterAny, Fn: fn})
}

// Register adds h to its stage.
func (r *Registry) Register(h Handler) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[h.Stage] = append(r.handlers[h.Stage], h)
	r.logger.Debug("hook registered", "name", h.Name, "stage", h.Stage.String(), "count", len(r.handlers[h.Stage]))
}

// Handlers returns a copy of the callbacks registered for stage.
func (r *Registry) Handlers(stage Stage) []Handler {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Handler(nil), r.handlers[stage]...)
}

// Len returns the number of registered callbacks across stages.
func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.handlers[StagePostInvoke]) + len(r.handlers[StageAfterAny])
}

// Run executes post-invoke callbacks, then after-any callbacks, one at a
// time. The first failure stops the run and is returned as *FailedError.
func (r *Registry) Run(ctx context.Context, hc Context) error {
	for _, stage := range []Stage{StagePostInvoke, StageAfterAny} {
		for _, h := range r.Handlers(stage) {
			if err := ctx.Err(); err != nil {
				return err
			}
			r.logger.Debug("running hook", "name", h.Name, "stage", stage.String())
			if err := call(ctx, h, hc); err != nil {
				return &FailedError{Hook: h.Name, Stage: stage, Err: err}
			}
		}
	}
	return nil
}

func call(ctx context.Context, h Handler, hc Context) (err error) {
	defer func() {
		if p := recover(); p != nil {
			err = fmt.Errorf("panic: %v", p)
		}
	}()
	return h.Fn(ctx, hc)
}
