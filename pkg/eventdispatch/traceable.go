package eventdispatch

import (
	"context"
	"slices"
	"sync"
	"time"
)

// ListenerInfo describes one listener registration.
type ListenerInfo struct {
	Event    string
	Listener *Listener
	Priority int
}

// CalledListener records one listener invocation seen by a
// TraceableDispatcher.
type CalledListener struct {
	ListenerInfo

	Duration           time.Duration
	Err                error
	StoppedPropagation bool
}

// TraceableDispatcher wraps an EventDispatcher and records which
// listeners each dispatch invoked, for debugging and tests. Registration
// and introspection go straight to the wrapped dispatcher.
type TraceableDispatcher struct {
	*EventDispatcher

	mu       sync.Mutex
	called   []CalledListener
	orphaned []string
}

// NewTraceable wraps d.
func NewTraceable(d *EventDispatcher) *TraceableDispatcher {
	return &TraceableDispatcher{EventDispatcher: d}
}

// Dispatch behaves like EventDispatcher.Dispatch and records the outcome.
func (t *TraceableDispatcher) Dispatch(ctx context.Context, evt Event, eventName string) (Event, error) {
	if eventName == "" {
		eventName = NameOf(evt)
	}

	listeners := t.registry.Listeners(eventName)
	if len(listeners) == 0 {
		t.mu.Lock()
		t.orphaned = append(t.orphaned, eventName)
		t.mu.Unlock()

		t.orphan(ctx, eventName)
		return evt, nil
	}

	priorities := t.priorities(eventName)
	err := t.callListeners(ctx, eventName, listeners, evt, func(l *Listener, took time.Duration, err error, stopped bool) {
		t.mu.Lock()
		defer t.mu.Unlock()
		t.called = append(t.called, CalledListener{
			ListenerInfo:       ListenerInfo{Event: eventName, Listener: l, Priority: priorities[l]},
			Duration:           took,
			Err:                err,
			StoppedPropagation: stopped,
		})
	})
	return evt, err
}

// priorities maps each listener of eventName to its first registered priority.
func (t *TraceableDispatcher) priorities(eventName string) map[*Listener]int {
	entries := t.registry.Entries(eventName)
	out := make(map[*Listener]int, len(entries))
	for _, e := range entries {
		if _, seen := out[e.Handler]; !seen {
			out[e.Handler] = e.Priority
		}
	}
	return out
}

// CalledListeners returns invocations in the order they happened.
func (t *TraceableDispatcher) CalledListeners() []CalledListener {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.called)
}

// NotCalledListeners returns registrations whose listener has not been
// invoked for that event name since the last Reset, ordered by event name
// and then invocation order.
func (t *TraceableDispatcher) NotCalledListeners() []ListenerInfo {
	type key struct {
		event    string
		listener *Listener
	}

	t.mu.Lock()
	called := make(map[key]struct{}, len(t.called))
	for _, c := range t.called {
		called[key{c.Event, c.Listener}] = struct{}{}
	}
	t.mu.Unlock()

	var out []ListenerInfo
	for _, name := range t.registry.Names() {
		priorities := t.priorities(name)
		for _, l := range t.registry.Listeners(name) {
			if _, ok := called[key{name, l}]; ok {
				continue
			}
			out = append(out, ListenerInfo{Event: name, Listener: l, Priority: priorities[l]})
		}
	}
	return out
}

// OrphanedEvents returns event names dispatched with no listeners, in
// dispatch order, repeats included.
func (t *TraceableDispatcher) OrphanedEvents() []string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return slices.Clone(t.orphaned)
}

// Reset clears everything recorded so far.
func (t *TraceableDispatcher) Reset() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.called = nil
	t.orphaned = nil
}
