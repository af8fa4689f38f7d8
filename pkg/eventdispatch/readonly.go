package eventdispatch

import "context"

// ReadOnlyDispatcher exposes dispatch and introspection of an
// EventDispatcher without any way to change its listeners. Hand it to code
// that should fire events but not register for them.
type ReadOnlyDispatcher struct {
	d *EventDispatcher
}

// NewReadOnly wraps d.
func NewReadOnly(d *EventDispatcher) *ReadOnlyDispatcher {
	return &ReadOnlyDispatcher{d: d}
}

// Dispatch delegates to the wrapped dispatcher.
func (r *ReadOnlyDispatcher) Dispatch(ctx context.Context, evt Event, eventName string) (Event, error) {
	return r.d.Dispatch(ctx, evt, eventName)
}

// HasListeners delegates to the wrapped dispatcher.
func (r *ReadOnlyDispatcher) HasListeners(eventName string) bool {
	return r.d.HasListeners(eventName)
}

// HasAnyListeners delegates to the wrapped dispatcher.
func (r *ReadOnlyDispatcher) HasAnyListeners() bool {
	return r.d.HasAnyListeners()
}

// Listeners delegates to the wrapped dispatcher.
func (r *ReadOnlyDispatcher) Listeners(eventName string) []*Listener {
	return r.d.Listeners(eventName)
}

// AllListeners delegates to the wrapped dispatcher.
func (r *ReadOnlyDispatcher) AllListeners() map[string][]*Listener {
	return r.d.AllListeners()
}

// ListenerPriority delegates to the wrapped dispatcher.
func (r *ReadOnlyDispatcher) ListenerPriority(eventName string, l *Listener) (int, bool) {
	return r.d.ListenerPriority(eventName, l)
}
