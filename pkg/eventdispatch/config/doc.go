/*
Package config loads dispatcher settings from YAML or JSON.

# Overview

A Config describes how an EventDispatcher is instrumented: whether it logs,
at which level and in which format, whether it records OpenTelemetry
metrics and spans, and whether dispatches are traced for debugging.
Listener wiring stays in code; only the ambient behavior is configurable.

# File Format

	name: checkout
	logging:
	  enabled: true
	  level: debug     # debug, info, warn, error
	  format: json     # json or text
	metrics: true
	tracing: false
	debug: true

Missing keys keep the values from Default().

# Loading

	cfg, err := config.FromFile("dispatcher.yaml")
	if err != nil {
	    log.Fatal(err)
	}

	// Or from bytes
	cfg, err = config.FromYAML(yamlBytes)
	cfg, err = config.FromJSON(jsonBytes)

All loaders validate the result. Use eventdispatch.OptionsFromConfig to turn
a Config into dispatcher options.
*/
package config
