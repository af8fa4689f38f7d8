package eventdispatch

import (
	"io"

	"github.com/randalmurphal/eventdispatch/pkg/eventdispatch/config"
)

// OptionsFromConfig translates cfg into dispatcher options. Log output
// goes to w when logging is enabled.
func OptionsFromConfig(cfg config.Config, w io.Writer) []Option {
	return []Option{
		WithName(cfg.Name),
		WithLogger(cfg.Logging.NewLogger(w)),
		WithMetrics(cfg.Metrics),
		WithTracing(cfg.Tracing),
	}
}

// NewFromConfig builds a dispatcher from cfg. With cfg.Debug set the result
// is a *TraceableDispatcher, otherwise an *EventDispatcher.
func NewFromConfig(cfg config.Config, w io.Writer) Manager {
	d := New(OptionsFromConfig(cfg, w)...)
	if cfg.Debug {
		return NewTraceable(d)
	}
	return d
}
