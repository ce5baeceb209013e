package event

import (
	"errors"
	"slices"
	"testing"
)

func TestBus_PhaseThenWildcardOrder(t *testing.T) {
	b := NewBus(nil)
	var got []string

	b.SubscribeAll(func(e Event) { got = append(got, "all:"+string(e.Phase)) })
	b.Subscribe(PhaseStart, func(Event) { got = append(got, "start-1") })
	b.Subscribe(PhaseStart, func(Event) { got = append(got, "start-2") })
	b.Subscribe(PhaseDone, func(Event) { got = append(got, "done") })

	b.Publish(Event{Phase: PhaseStart})

	want := []string{"start-1", "start-2", "all:start"}
	if !slices.Equal(got, want) {
		t.Errorf("delivery = %v, want %v", got, want)
	}
	if b.Len() != 4 {
		t.Errorf("Len() = %d, want 4", b.Len())
	}
}

func TestBus_PanickingHandlerDoesNotStopDelivery(t *testing.T) {
	b := NewBus(nil)
	delivered := false

	b.Subscribe(PhaseError, func(Event) { panic("boom") })
	b.Subscribe(PhaseError, func(e Event) { delivered = e.Err != nil })

	b.Publish(Event{Phase: PhaseError, Err: errors.New("failed")})

	if !delivered {
		t.Error("second handler was not called after a panic")
	}
}

func TestRecorder(t *testing.T) {
	var r Recorder
	r.Publish(Event{Phase: PhaseStart})
	r.Publish(Event{Phase: PhaseDone})

	if got := r.Phases(); !slices.Equal(got, []Phase{PhaseStart, PhaseDone}) {
		t.Errorf("Phases() = %v", got)
	}
	if len(r.Events()) != 2 {
		t.Errorf("Events() len = %d", len(r.Events()))
	}
}

func TestPhase_Terminal(t *testing.T) {
	for _, p := range Phases() {
		want := p == PhaseDone || p == PhaseError
		if p.Terminal() != want {
			t.Errorf("%s.Terminal() = %v, want %v", p, p.Terminal(), want)
		}
	}
}
