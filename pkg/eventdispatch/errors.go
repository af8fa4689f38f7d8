package eventdispatch

import "fmt"

// ListenerError wraps the error a listener returned during dispatch.
// errors.Is and errors.As see through it to the listener's error.
type ListenerError struct {
	Event    string // Event name being dispatched
	Listener string // Name of the failing listener
	Err      error  // Error returned by the listener
}

// Error implements the error interface.
func (e *ListenerError) Error() string {
	return fmt.Sprintf("event %s: listener %s: %v", e.Event, e.Listener, e.Err)
}

// Unwrap returns the listener's error.
func (e *ListenerError) Unwrap() error {
	return e.Err
}
