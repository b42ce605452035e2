package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Config holds configuration for metrics collection.
type Config struct {
	// Enabled controls whether metrics collection is active.
	Enabled bool

	// Registry is the Prometheus registry to use. If nil, uses prometheus.DefaultRegisterer.
	Registry prometheus.Registerer

	// Namespace names a metrics namespace. NewRegistry does not read it:
	// metrics are always registered under the "parastate" namespace.
	Namespace string

	// Labels holds additional labels. They are not applied to any metric;
	// each metric carries only its pool_name or timer_name label.
	Labels prometheus.Labels
}

// DefaultConfig returns a default metrics configuration.
func DefaultConfig() Config {
	return Config{
		Enabled:   true,
		Registry:  prometheus.DefaultRegisterer,
		Namespace: "parastate",
		Labels:    nil,
	}
}

// Instrumentable is an interface for components that can be instrumented with metrics.
type Instrumentable interface {
	// EnableMetrics enables metrics collection for this component.
	EnableMetrics(config Config) error
	
	// DisableMetrics disables metrics collection for this component.
	DisableMetrics()
	
	// MetricsEnabled returns true if metrics are currently enabled.
	MetricsEnabled() bool
}