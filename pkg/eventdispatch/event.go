package eventdispatch

import (
	"fmt"
	"maps"
	"sync/atomic"
)

// Event is the payload handed to every listener of one dispatch.
// Listeners may read and mutate it; StopPropagation prevents any
// lower-priority listener from running for the rest of that dispatch.
type Event interface {
	StopPropagation()
	IsPropagationStopped() bool
}

// Named is implemented by events that know their own dispatch name.
// It is consulted only when Dispatch is called with an empty name.
type Named interface {
	EventName() string
}

// BaseEvent implements Event. Embed it in domain event types:
//
//	type OrderPlaced struct {
//	    eventdispatch.BaseEvent
//	    OrderID string
//	    Total   int
//	}
type BaseEvent struct {
	stopped atomic.Bool
}

// StopPropagation marks the event so no further listeners are invoked.
func (e *BaseEvent) StopPropagation() {
	e.stopped.Store(true)
}

// IsPropagationStopped reports whether a listener stopped propagation.
func (e *BaseEvent) IsPropagationStopped() bool {
	return e.stopped.Load()
}

// NameOf returns the name an event is dispatched under when no explicit
// name is given: EventName() for Named events, otherwise the Go type
// (for example "*orders.OrderPlaced").
func NameOf(evt Event) string {
	if n, ok := evt.(Named); ok {
		if name := n.EventName(); name != "" {
			return name
		}
	}
	return fmt.Sprintf("%T", evt)
}

// GenericEvent carries an arbitrary subject plus named arguments, for
// callers that do not want to declare a dedicated event type.
type GenericEvent struct {
	BaseEvent

	subject   any
	arguments map[string]any
}

// NewGenericEvent creates a GenericEvent. The arguments map is copied.
func NewGenericEvent(subject any, arguments map[string]any) *GenericEvent {
	e := &GenericEvent{
		subject:   subject,
		arguments: make(map[string]any, len(arguments)),
	}
	maps.Copy(e.arguments, arguments)
	return e
}

// Subject returns the event subject.
func (e *GenericEvent) Subject() any {
	return e.subject
}

// Argument returns the argument stored under key.
func (e *GenericEvent) Argument(key string) (any, bool) {
	v, ok := e.arguments[key]
	return v, ok
}

// HasArgument reports whether key is set.
func (e *GenericEvent) HasArgument(key string) bool {
	_, ok := e.arguments[key]
	return ok
}

// SetArgument stores value under key.
func (e *GenericEvent) SetArgument(key string, value any) {
	if e.arguments == nil {
		e.arguments = make(map[string]any)
	}
	e.arguments[key] = value
}

// RemoveArgument deletes key.
func (e *GenericEvent) RemoveArgument(key string) {
	delete(e.arguments, key)
}

// Arguments returns a copy of all arguments.
func (e *GenericEvent) Arguments() map[string]any {
	return maps.Clone(e.arguments)
}

// SetArguments replaces all arguments with a copy of args.
func (e *GenericEvent) SetArguments(args map[string]any) {
	e.arguments = make(map[string]any, len(args))
	maps.Copy(e.arguments, args)
}
