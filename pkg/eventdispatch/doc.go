// Package eventdispatch provides an in-process, synchronous event dispatcher
// with prioritized listeners.
//
// # Overview
//
// Named events are broadcast to the listeners registered for that name.
// Listeners run one after another in the caller's goroutine, highest
// priority first, and may mutate the event they receive. Any listener can
// stop propagation to keep the remaining listeners from running.
//
//   - Event: mutable payload passed by pointer to every listener
//   - Listener: a Handler with a name; its pointer is its identity
//   - Subscriber: declares a batch of listener bindings at once
//   - EventDispatcher: registration, introspection and dispatch
//   - ReadOnlyDispatcher: dispatch without registration rights
//   - TraceableDispatcher: records called listeners and orphaned events
//
// # Events
//
// Embed BaseEvent to get propagation control:
//
//	type OrderPlaced struct {
//	    eventdispatch.BaseEvent
//	    OrderID  string
//	    Discount int
//	}
//
// GenericEvent covers ad-hoc payloads with a subject and named arguments.
//
// # Listeners and Priorities
//
//	d := eventdispatch.New()
//
//	audit := eventdispatch.NewListener("audit", func(ctx context.Context, evt eventdispatch.Event) error {
//	    log.Printf("placed %s", evt.(*OrderPlaced).OrderID)
//	    return nil
//	})
//	d.AddListener("order.placed", audit, -10)
//
// Higher priorities run first. Listeners with equal priority run in the
// order they were added. Registering the same *Listener twice creates two
// entries; RemoveListener drops both.
//
// # Subscribers
//
// A Subscriber returns its bindings from SubscribedEvents. AddSubscriber
// registers them in slice order and RemoveSubscriber removes exactly those
// listeners again. The dispatcher keeps no record of the subscriber itself.
//
// # Dispatching
//
//	evt, err := d.Dispatch(ctx, &OrderPlaced{OrderID: "o-1"}, "order.placed")
//
// Dispatch returns the same event it received. Dispatching a name nobody
// listens to is a cheap no-op. When the name is empty the event's
// EventName() or Go type is used instead.
//
// The listener order is snapshotted when a dispatch starts. Listeners added
// or removed during the dispatch, including by the listeners themselves,
// take effect from the next dispatch on.
//
// # Errors
//
// Listener errors are not retried or swallowed. The first error ends the
// dispatch and is returned as a *ListenerError; listeners that already ran
// keep their effects. Panics propagate unchanged. Unknown names, absent
// listeners and duplicate registrations are never errors.
//
// # Observability
//
// WithLogger, WithMetrics and WithTracing switch on slog logging and
// OpenTelemetry instrumentation. All are off by default. See the
// observability and config sub-packages.
package eventdispatch
