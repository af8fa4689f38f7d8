package config

import (
	"fmt"
	"io"
	"log/slog"
	"strings"
)

// Config holds dispatcher settings.
type Config struct {
	// Name labels the dispatcher in logs.
	Name string `yaml:"name" json:"name"`

	// Logging controls structured logging.
	Logging LoggingConfig `yaml:"logging" json:"logging"`

	// Metrics enables OpenTelemetry metrics.
	Metrics bool `yaml:"metrics" json:"metrics"`

	// Tracing enables OpenTelemetry spans per dispatch and listener.
	Tracing bool `yaml:"tracing" json:"tracing"`

	// Debug wraps the dispatcher so called listeners and orphaned events
	// are recorded.
	Debug bool `yaml:"debug" json:"debug"`
}

// LoggingConfig controls the slog logger built for the dispatcher.
type LoggingConfig struct {
	Enabled bool   `yaml:"enabled" json:"enabled"`
	Level   string `yaml:"level" json:"level"`
	Format  string `yaml:"format" json:"format"`
}

// Log formats.
const (
	FormatText = "text"
	FormatJSON = "json"
)

// Default returns the settings used when nothing is configured:
// logging off, instrumentation off.
func Default() Config {
	return Config{
		Name: "default",
		Logging: LoggingConfig{
			Level:  "info",
			Format: FormatText,
		},
	}
}

// Validate checks level and format values.
func (c Config) Validate() error {
	if _, err := parseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case FormatText, FormatJSON:
	default:
		return fmt.Errorf("unsupported log format: %q", c.Logging.Format)
	}
	return nil
}

// NewLogger builds a logger writing to w, or returns nil when logging is
// disabled. Invalid settings fall back to info level text output.
func (l LoggingConfig) NewLogger(w io.Writer) *slog.Logger {
	if !l.Enabled {
		return nil
	}

	level, err := parseLevel(l.Level)
	if err != nil {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	if strings.ToLower(l.Format) == FormatJSON {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
