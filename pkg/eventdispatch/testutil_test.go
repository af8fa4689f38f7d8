package eventdispatch_test

import (
	"context"
	"sync"

	"github.com/randalmurphal/eventdispatch/pkg/eventdispatch"
)

// orderEvent is a domain event used across tests.
type orderEvent struct {
	eventdispatch.BaseEvent
	ID    string
	Trail []string
}

// trace records listener invocations.
type trace struct {
	mu    sync.Mutex
	calls []string
}

func (tr *trace) add(name string) {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	tr.calls = append(tr.calls, name)
}

func (tr *trace) get() []string {
	tr.mu.Lock()
	defer tr.mu.Unlock()
	return append([]string(nil), tr.calls...)
}

// recording returns a listener that appends its name to tr.
func recording(tr *trace, name string) *eventdispatch.Listener {
	return eventdispatch.NewListener(name, func(ctx context.Context, evt eventdispatch.Event) error {
		tr.add(name)
		return nil
	})
}

// stopping returns a listener that records itself and stops propagation.
func stopping(tr *trace, name string) *eventdispatch.Listener {
	return eventdispatch.NewListener(name, func(ctx context.Context, evt eventdispatch.Event) error {
		tr.add(name)
		evt.StopPropagation()
		return nil
	})
}

func listenerNames(ls []*eventdispatch.Listener) []string {
	out := make([]string, len(ls))
	for i, l := range ls {
		out[i] = l.Name()
	}
	return out
}
