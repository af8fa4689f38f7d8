package observability

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

// MetricsRecorder records dispatch metrics.
// Use NewMetricsRecorder() for OTel metrics or NoopMetrics{} when disabled.
type MetricsRecorder interface {
	// RecordDispatch records a completed dispatch that reached at least one listener.
	RecordDispatch(ctx context.Context, eventName string, called int, stopped bool, duration time.Duration, err error)

	// RecordListenerCall records one listener invocation.
	RecordListenerCall(ctx context.Context, eventName, listener string, duration time.Duration, err error)

	// RecordOrphan records a dispatch with no listeners.
	RecordOrphan(ctx context.Context, eventName string)
}

// otelMetrics implements MetricsRecorder using OpenTelemetry.
type otelMetrics struct {
	dispatches      metric.Int64Counter
	dispatchLatency metric.Float64Histogram
	listenerCalls   metric.Int64Counter
	listenerLatency metric.Float64Histogram
	listenerErrors  metric.Int64Counter
	orphans         metric.Int64Counter
}

var (
	defaultMetrics     *otelMetrics
	defaultMetricsOnce sync.Once
	defaultMetricsErr  error
)

// getDefaultMetrics lazily initializes the shared OTel instruments.
func getDefaultMetrics() (*otelMetrics, error) {
	defaultMetricsOnce.Do(func() {
		defaultMetrics, defaultMetricsErr = newOtelMetrics()
	})
	return defaultMetrics, defaultMetricsErr
}

func newOtelMetrics() (*otelMetrics, error) {
	meter := otel.Meter("eventdispatch")

	dispatches, err := meter.Int64Counter("eventdispatch.dispatches",
		metric.WithDescription("Number of dispatches that reached at least one listener"),
	)
	if err != nil {
		return nil, err
	}

	dispatchLatency, err := meter.Float64Histogram("eventdispatch.dispatch.latency_ms",
		metric.WithDescription("Dispatch latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	listenerCalls, err := meter.Int64Counter("eventdispatch.listener.calls",
		metric.WithDescription("Number of listener invocations"),
	)
	if err != nil {
		return nil, err
	}

	listenerLatency, err := meter.Float64Histogram("eventdispatch.listener.latency_ms",
		metric.WithDescription("Listener latency in milliseconds"),
		metric.WithUnit("ms"),
	)
	if err != nil {
		return nil, err
	}

	listenerErrors, err := meter.Int64Counter("eventdispatch.listener.errors",
		metric.WithDescription("Number of listener invocations that returned an error"),
	)
	if err != nil {
		return nil, err
	}

	orphans, err := meter.Int64Counter("eventdispatch.orphans",
		metric.WithDescription("Number of dispatches with no registered listeners"),
	)
	if err != nil {
		return nil, err
	}

	return &otelMetrics{
		dispatches:      dispatches,
		dispatchLatency: dispatchLatency,
		listenerCalls:   listenerCalls,
		listenerLatency: listenerLatency,
		listenerErrors:  listenerErrors,
		orphans:         orphans,
	}, nil
}

// NewMetricsRecorder returns a MetricsRecorder that uses OpenTelemetry.
// If metrics initialization fails, returns a no-op recorder.
//
// The recorder uses the global OTel meter provider. Configure the provider
// before calling this function:
//
//	import "go.opentelemetry.io/otel"
//	otel.SetMeterProvider(yourProvider)
func NewMetricsRecorder() MetricsRecorder {
	m, err := getDefaultMetrics()
	if err != nil {
		slog.Warn("metrics initialization failed, using no-op recorder",
			slog.String("error", err.Error()))
		return NoopMetrics{}
	}
	return m
}

// RecordDispatch records a dispatch.
func (m *otelMetrics) RecordDispatch(ctx context.Context, eventName string, called int, stopped bool, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("event", eventName),
		attribute.Bool("propagation_stopped", stopped),
		attribute.Bool("success", err == nil),
	)
	m.dispatches.Add(ctx, 1, attrs)
	m.dispatchLatency.Record(ctx, Millis(duration), attrs)
}

// RecordListenerCall records a listener invocation.
func (m *otelMetrics) RecordListenerCall(ctx context.Context, eventName, listener string, duration time.Duration, err error) {
	attrs := metric.WithAttributes(
		attribute.String("event", eventName),
		attribute.String("listener", listener),
	)
	m.listenerCalls.Add(ctx, 1, attrs)
	m.listenerLatency.Record(ctx, Millis(duration), attrs)

	if err != nil {
		m.listenerErrors.Add(ctx, 1, attrs)
	}
}

// RecordOrphan records a dispatch that found no listeners.
func (m *otelMetrics) RecordOrphan(ctx context.Context, eventName string) {
	m.orphans.Add(ctx, 1, metric.WithAttributes(attribute.String("event", eventName)))
}
