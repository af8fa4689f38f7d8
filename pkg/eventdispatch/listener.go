package eventdispatch

import (
	"context"
	"reflect"
	"runtime"
	"strings"
)

// Handler processes an event. Side effects go through mutation of evt.
// A non-nil error aborts the dispatch: no later listener runs and the
// error reaches the caller of Dispatch.
type Handler func(ctx context.Context, evt Event) error

// Listener binds a Handler to a display name. The *Listener pointer is the
// listener's identity: removal matches by pointer, and the same *Listener
// may be registered several times.
type Listener struct {
	name string
	fn   Handler
}

// NewListener creates a named listener.
func NewListener(name string, fn Handler) *Listener {
	return &Listener{name: name, fn: fn}
}

// ListenerFunc creates a listener named after the function symbol,
// e.g. "orders.(*Mailer).onPlaced-fm".
func ListenerFunc(fn Handler) *Listener {
	return &Listener{name: funcName(fn), fn: fn}
}

// Name returns the display name used in logs, metrics and traces.
func (l *Listener) Name() string {
	return l.name
}

// Handle invokes the handler. A listener without a handler does nothing.
func (l *Listener) Handle(ctx context.Context, evt Event) error {
	if l.fn == nil {
		return nil
	}
	return l.fn(ctx, evt)
}

// String implements fmt.Stringer.
func (l *Listener) String() string {
	return l.name
}

func funcName(fn Handler) string {
	if fn == nil {
		return "<nil>"
	}
	f := runtime.FuncForPC(reflect.ValueOf(fn).Pointer())
	if f == nil {
		return "<unknown>"
	}
	name := f.Name()
	// Trim the import path, keep package.symbol.
	if i := strings.LastIndex(name, "/"); i >= 0 {
		name = name[i+1:]
	}
	return name
}
