// Package observability provides structured logging, metrics, and tracing
// for event dispatch.
//
// Features:
//   - Structured logging via slog (Go stdlib)
//   - Metrics via OpenTelemetry
//   - Tracing via OpenTelemetry
//
// All features are opt-in and have no-op implementations when disabled.
package observability

import (
	"log/slog"
	"time"
)

// EnrichLogger adds dispatch context to a logger.
// Returns a new logger with dispatch_id and event fields.
//
// Example:
//
//	enriched := EnrichLogger(logger, "7f1c...", "order.placed")
//	enriched.Debug("notifying") // includes dispatch_id, event
func EnrichLogger(logger *slog.Logger, dispatchID, eventName string) *slog.Logger {
	if logger == nil {
		return nil
	}
	return logger.With(
		slog.String("dispatch_id", dispatchID),
		slog.String("event", eventName),
	)
}

// LogListenerAdded logs a listener registration.
func LogListenerAdded(logger *slog.Logger, eventName, listener string, priority int) {
	if logger == nil {
		return
	}
	logger.Debug("listener added",
		slog.String("event", eventName),
		slog.String("listener", listener),
		slog.Int("priority", priority),
	)
}

// LogListenerRemoved logs a listener removal. An empty eventName means
// the listener was removed from every event.
func LogListenerRemoved(logger *slog.Logger, eventName, listener string) {
	if logger == nil {
		return
	}
	if eventName == "" {
		logger.Debug("listener removed from all events",
			slog.String("listener", listener),
		)
		return
	}
	logger.Debug("listener removed",
		slog.String("event", eventName),
		slog.String("listener", listener),
	)
}

// LogSubscriber logs a subscriber being added or removed.
func LogSubscriber(logger *slog.Logger, op string, subscriber string, subscriptions int) {
	if logger == nil {
		return
	}
	logger.Debug("subscriber "+op,
		slog.String("subscriber", subscriber),
		slog.Int("subscriptions", subscriptions),
	)
}

// LogDispatchStart logs the start of a dispatch.
func LogDispatchStart(logger *slog.Logger, eventName string, listeners int) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch starting",
		slog.String("event", eventName),
		slog.Int("listeners", listeners),
	)
}

// LogDispatchComplete logs a finished dispatch.
func LogDispatchComplete(logger *slog.Logger, eventName string, durationMs float64, called int, stopped bool) {
	if logger == nil {
		return
	}
	logger.Debug("dispatch completed",
		slog.String("event", eventName),
		slog.Float64("duration_ms", durationMs),
		slog.Int("listeners_called", called),
		slog.Bool("propagation_stopped", stopped),
	)
}

// LogListenerNotified logs a single listener invocation.
func LogListenerNotified(logger *slog.Logger, eventName, listener string, durationMs float64) {
	if logger == nil {
		return
	}
	logger.Debug("listener notified",
		slog.String("event", eventName),
		slog.String("listener", listener),
		slog.Float64("duration_ms", durationMs),
	)
}

// LogListenerError logs a listener that returned an error.
// The dispatch is abandoned after this.
func LogListenerError(logger *slog.Logger, eventName, listener string, err error) {
	if logger == nil {
		return
	}
	logger.Error("listener failed",
		slog.String("event", eventName),
		slog.String("listener", listener),
		slog.String("error", err.Error()),
	)
}

// LogPropagationStopped logs the listener that stopped propagation.
func LogPropagationStopped(logger *slog.Logger, eventName, listener string) {
	if logger == nil {
		return
	}
	logger.Debug("listener stopped propagation",
		slog.String("event", eventName),
		slog.String("listener", listener),
	)
}

// LogOrphanedEvent logs a dispatch with no registered listeners.
func LogOrphanedEvent(logger *slog.Logger, eventName string) {
	if logger == nil {
		return
	}
	logger.Debug("no listeners for event",
		slog.String("event", eventName),
	)
}

// TimedOperation measures the duration of an operation.
// Returns a function that, when called, returns the elapsed time.
//
// Example:
//
//	done := TimedOperation()
//	// ... do work ...
//	elapsed := done()
func TimedOperation() func() time.Duration {
	start := time.Now()
	return func() time.Duration {
		return time.Since(start)
	}
}

// Millis converts a duration to fractional milliseconds for log fields.
func Millis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
