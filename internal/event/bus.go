package event

import (
	"io"
	"log/slog"
	"runtime/debug"
	"sync"
)

// wildcard is the subscription key for handlers that receive every phase.
const wildcard Phase = "*"

// Bus is a synchronous per-phase publish/subscribe hub.
type Bus struct {
	mu       sync.RWMutex
	handlers map[Phase][]Handler
	logger   *slog.Logger
}

var _ Publisher = (*Bus)(nil)

// NewBus creates an empty Bus. A nil logger discards panic reports.
func NewBus(logger *slog.Logger) *Bus {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Bus{
		handlers: make(map[Phase][]Handler),
		logger:   logger.With("module", "event"),
	}
}

// Subscribe registers h for one phase.
func (b *Bus) Subscribe(phase Phase, h Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.handlers[phase] = append(b.handlers[phase], h)
}

// SubscribeAll registers h for every phase.
func (b *Bus) SubscribeAll(h Handler) {
	b.Subscribe(wildcard, h)
}

// Publish delivers e to the handlers of its phase, then to wildcard
// handlers, each group in registration order. A panicking handler is
// logged and skipped.
func (b *Bus) Publish(e Event) {
	b.mu.RLock()
	specific := append([]Handler(nil), b.handlers[e.Phase]...)
	all := append([]Handler(nil), b.handlers[wildcard]...)
	b.mu.RUnlock()

	for _, h := range specific {
		b.safeCall(h, e)
	}
	for _, h := range all {
		b.safeCall(h, e)
	}
}

// Len returns the number of registered handlers.
func (b *Bus) Len() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	n := 0
	for _, hs := range b.handlers {
		n += len(hs)
	}
	return n
}

func (b *Bus) safeCall(h Handler, e Event) {
	defer func() {
		if r := recover(); r != nil {
			b.logger.Error("event handler panicked", "phase", e.Phase, "panic", r, "stack", string(debug.Stack()))
		}
	}()
	h(e)
}

// Recorder is a Publisher that keeps every event it receives.
type Recorder struct {
	mu     sync.Mutex
	events []Event
}

var _ Publisher = (*Recorder)(nil)

// Publish appends e.
func (r *Recorder) Publish(e Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

// Phases returns the recorded phases in order.
func (r *Recorder) Phases() []Phase {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Phase, len(r.events))
	for i, e := range r.events {
		out[i] = e.Phase
	}
	return out
}

// Events returns a copy of the recorded events.
func (r *Recorder) Events() []Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Event(nil), r.events...)
}
