package eventdispatch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/randalmurphal/eventdispatch/pkg/eventdispatch/observability"
	"github.com/randalmurphal/eventdispatch/pkg/eventdispatch/registry"
)

// Dispatcher delivers an event to the listeners registered for a name.
type Dispatcher interface {
	// Dispatch invokes the listeners of eventName in priority order and
	// returns evt. An empty eventName resolves through NameOf.
	Dispatch(ctx context.Context, evt Event, eventName string) (Event, error)
}

// Manager is the full dispatcher surface: registration, introspection
// and dispatch.
type Manager interface {
	Dispatcher

	AddListener(eventName string, l *Listener, priority int)
	RemoveListener(eventName string, l *Listener)
	RemoveListenerFromAll(l *Listener)
	AddSubscriber(s Subscriber)
	RemoveSubscriber(s Subscriber)

	HasListeners(eventName string) bool
	HasAnyListeners() bool
	Listeners(eventName string) []*Listener
	AllListeners() map[string][]*Listener
	ListenerPriority(eventName string, l *Listener) (int, bool)
}

// Compile-time interface checks.
var (
	_ Manager    = (*EventDispatcher)(nil)
	_ Manager    = (*TraceableDispatcher)(nil)
	_ Dispatcher = (*ReadOnlyDispatcher)(nil)
)

// errListenerPanicked marks spans and metrics of a dispatch abandoned by a
// panicking listener. It never reaches callers; the panic does.
var errListenerPanicked = errors.New("listener panicked")

// EventDispatcher owns one listener registry and dispatches events
// synchronously in the caller's goroutine.
//
// Registration and introspection are safe for concurrent use. Each dispatch
// works on a snapshot of the listener order taken when it starts, so
// listeners added or removed while it runs only affect later dispatches.
type EventDispatcher struct {
	registry *registry.ListenerRegistry[*Listener]
	logger   *slog.Logger
	metrics  observability.MetricsRecorder
	spans    observability.SpanManager
	tracing  bool
}

// New creates a dispatcher with an empty registry.
func New(opts ...Option) *EventDispatcher {
	cfg := defaultDispatcherConfig()
	for _, opt := range opts {
		opt(&cfg)
	}

	logger := cfg.logger
	if logger != nil && cfg.name != "" {
		logger = logger.With(slog.String("dispatcher", cfg.name))
	}

	return &EventDispatcher{
		registry: registry.New[*Listener](),
		logger:   logger,
		metrics:  cfg.metrics,
		spans:    cfg.spans,
		tracing:  cfg.tracing,
	}
}

// AddListener registers l for eventName. Higher priorities run first;
// equal priorities run in registration order. A nil listener is ignored.
func (d *EventDispatcher) AddListener(eventName string, l *Listener, priority int) {
	if l == nil {
		if d.logger != nil {
			d.logger.Debug("listener not present", slog.String("event", eventName))
		}
		return
	}
	d.registry.Add(eventName, l, priority)
	observability.LogListenerAdded(d.logger, eventName, l.Name(), priority)
}

// RemoveListener removes every registration of l for eventName.
func (d *EventDispatcher) RemoveListener(eventName string, l *Listener) {
	if l == nil {
		return
	}
	d.registry.Remove(eventName, l)
	observability.LogListenerRemoved(d.logger, eventName, l.Name())
}

// RemoveListenerFromAll removes every registration of l for any event name.
func (d *EventDispatcher) RemoveListenerFromAll(l *Listener) {
	if l == nil {
		return
	}
	d.registry.RemoveAll(l)
	observability.LogListenerRemoved(d.logger, "", l.Name())
}

// AddSubscriber registers each binding s declares, in declaration order.
func (d *EventDispatcher) AddSubscriber(s Subscriber) {
	subs := s.SubscribedEvents()
	for _, sub := range subs {
		d.AddListener(sub.Event, sub.Listener, sub.Priority)
	}
	observability.LogSubscriber(d.logger, "added", fmt.Sprintf("%T", s), len(subs))
}

// RemoveSubscriber removes the listeners s declares, whatever their
// current priority.
func (d *EventDispatcher) RemoveSubscriber(s Subscriber) {
	subs := s.SubscribedEvents()
	for _, sub := range subs {
		d.RemoveListener(sub.Event, sub.Listener)
	}
	observability.LogSubscriber(d.logger, "removed", fmt.Sprintf("%T", s), len(subs))
}

// Dispatch invokes the listeners registered for eventName, highest
// priority first, passing evt to each, and returns evt.
//
// Dispatch stops early when a listener stops propagation or returns an
// error; the error is returned wrapped in a *ListenerError. Panics in
// listeners are not recovered. With no listeners registered, evt is
// returned untouched. evt must not be nil.
func (d *EventDispatcher) Dispatch(ctx context.Context, evt Event, eventName string) (Event, error) {
	if eventName == "" {
		eventName = NameOf(evt)
	}

	listeners := d.registry.Listeners(eventName)
	if len(listeners) == 0 {
		d.orphan(ctx, eventName)
		return evt, nil
	}

	return evt, d.callListeners(ctx, eventName, listeners, evt, nil)
}

func (d *EventDispatcher) orphan(ctx context.Context, eventName string) {
	observability.LogOrphanedEvent(d.logger, eventName)
	d.metrics.RecordOrphan(ctx, eventName)
}

// callHook observes each completed listener invocation.
type callHook func(l *Listener, took time.Duration, err error, stopped bool)

// callListeners runs the snapshot in order. It owns the dispatch span,
// dispatch metrics and dispatch log lines.
func (d *EventDispatcher) callListeners(ctx context.Context, eventName string, listeners []*Listener, evt Event, hook callHook) (err error) {
	dispatchID := d.newDispatchID()
	logger := observability.EnrichLogger(d.logger, dispatchID, eventName)

	ctx, span := d.spans.StartDispatchSpan(ctx, eventName, dispatchID)
	done := observability.TimedOperation()

	var (
		called    int
		stopped   bool
		completed bool
	)
	defer func() {
		outcome := err
		if !completed {
			outcome = errListenerPanicked
		}
		took := done()
		d.spans.EndSpanWithError(span, outcome)
		d.metrics.RecordDispatch(ctx, eventName, called, stopped, took, outcome)
		if completed {
			observability.LogDispatchComplete(logger, eventName, observability.Millis(took), called, stopped)
		}
	}()

	observability.LogDispatchStart(logger, eventName, len(listeners))

	for _, l := range listeners {
		if evt.IsPropagationStopped() {
			stopped = true
			break
		}

		took, lerr := d.invoke(ctx, eventName, l, evt)
		called++
		halted := evt.IsPropagationStopped()
		if hook != nil {
			hook(l, took, lerr, halted)
		}

		if lerr != nil {
			observability.LogListenerError(logger, eventName, l.Name(), lerr)
			completed = true
			return &ListenerError{Event: eventName, Listener: l.Name(), Err: lerr}
		}
		observability.LogListenerNotified(logger, eventName, l.Name(), observability.Millis(took))

		if halted {
			stopped = true
			observability.LogPropagationStopped(logger, eventName, l.Name())
			d.spans.AddSpanEvent(ctx, "propagation_stopped", attribute.String("listener", l.Name()))
			break
		}
	}

	completed = true
	return nil
}

// invoke runs a single listener inside its own span.
func (d *EventDispatcher) invoke(ctx context.Context, eventName string, l *Listener, evt Event) (time.Duration, error) {
	lctx, span := d.spans.StartListenerSpan(ctx, eventName, l.Name())
	done := observability.TimedOperation()

	err := l.Handle(lctx, evt)

	took := done()
	d.spans.EndSpanWithError(span, err)
	d.metrics.RecordListenerCall(ctx, eventName, l.Name(), took, err)
	return took, err
}

// newDispatchID returns a correlation ID when something will consume it.
func (d *EventDispatcher) newDispatchID() string {
	if d.logger == nil && !d.tracing {
		return ""
	}
	return uuid.NewString()
}

// HasListeners reports whether eventName has at least one listener.
func (d *EventDispatcher) HasListeners(eventName string) bool {
	return d.registry.Has(eventName)
}

// HasAnyListeners reports whether any event name has a listener.
func (d *EventDispatcher) HasAnyListeners() bool {
	return d.registry.HasAny()
}

// Listeners returns the listeners for eventName in invocation order.
func (d *EventDispatcher) Listeners(eventName string) []*Listener {
	return d.registry.Listeners(eventName)
}

// AllListeners returns every event name with its listeners in invocation order.
func (d *EventDispatcher) AllListeners() map[string][]*Listener {
	return d.registry.All()
}

// ListenerPriority returns the priority l was first registered with for
// eventName. The boolean is false if l is not registered for eventName.
func (d *EventDispatcher) ListenerPriority(eventName string, l *Listener) (int, bool) {
	return d.registry.Priority(eventName, l)
}

// DispatchAs dispatches evt through d and returns it with its concrete type.
//
//	placed, err := eventdispatch.DispatchAs(ctx, d, &OrderPlaced{ID: id}, "order.placed")
func DispatchAs[E Event](ctx context.Context, d Dispatcher, evt E, eventName string) (E, error) {
	_, err := d.Dispatch(ctx, evt, eventName)
	return evt, err
}
