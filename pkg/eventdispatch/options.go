package eventdispatch

import (
	"log/slog"

	"github.com/randalmurphal/eventdispatch/pkg/eventdispatch/observability"
)

// dispatcherConfig holds construction settings for an EventDispatcher.
type dispatcherConfig struct {
	name    string
	logger  *slog.Logger
	metrics observability.MetricsRecorder
	spans   observability.SpanManager
	tracing bool
}

func defaultDispatcherConfig() dispatcherConfig {
	return dispatcherConfig{
		metrics: observability.NoopMetrics{},
		spans:   observability.NoopSpanManager{},
	}
}

// Option configures an EventDispatcher.
type Option func(*dispatcherConfig)

// WithName labels the dispatcher; the name is attached to every log line
// as "dispatcher".
func WithName(name string) Option {
	return func(c *dispatcherConfig) {
		c.name = name
	}
}

// WithLogger enables structured logging. Registration, dispatch and
// propagation stops log at debug; listener errors log at error.
// Default: nil (no logging)
//
// Example:
//
//	logger := slog.New(slog.NewJSONHandler(os.Stderr, nil))
//	d := eventdispatch.New(eventdispatch.WithLogger(logger))
func WithLogger(logger *slog.Logger) Option {
	return func(c *dispatcherConfig) {
		c.logger = logger
	}
}

// WithMetrics enables OpenTelemetry metrics via the global meter provider.
// Default: false
func WithMetrics(enabled bool) Option {
	return func(c *dispatcherConfig) {
		if enabled {
			c.metrics = observability.NewMetricsRecorder()
		} else {
			c.metrics = observability.NoopMetrics{}
		}
	}
}

// WithTracing enables OpenTelemetry spans via the global tracer provider:
// one span per dispatch and a child span per listener.
// Default: false
func WithTracing(enabled bool) Option {
	return func(c *dispatcherConfig) {
		c.tracing = enabled
		if enabled {
			c.spans = observability.NewSpanManager()
		} else {
			c.spans = observability.NoopSpanManager{}
		}
	}
}
