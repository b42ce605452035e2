package timer

import (
	"github.com/vnykmshr/parastate/pkg/metrics"
	"github.com/vnykmshr/parastate/pkg/scheduling/workerpool"
)

// NewWithMetrics constructs a Timer that records task scheduling and
// cancellation counts, plus current queue depth, against name in
// metrics.DefaultRegistry.
func NewWithMetrics(pool workerpool.Pool, maxQueueSize int, name string) *Timer {
	return NewWithConfigAndMetrics(pool, maxQueueSize, name, metrics.Config{
		Enabled:  true,
		Registry: nil,
	})
}

// NewWithConfigAndMetrics constructs a Timer with metrics recorded against a
// caller-supplied registry. If metricsConfig.Enabled is false, this behaves
// exactly like New.
func NewWithConfigAndMetrics(pool workerpool.Pool, maxQueueSize int, name string, metricsConfig metrics.Config) *Timer {
	t := New(pool, maxQueueSize)
	if !metricsConfig.Enabled {
		return t
	}

	registry := metrics.DefaultRegistry
	if metricsConfig.Registry != nil {
		registry = metrics.NewRegistry(metricsConfig.Registry)
	}
	t.metricsName = name
	t.registry = registry
	return t
}

// recordScheduled and recordCancelled are no-ops when the timer wasn't built
// with NewWithMetrics/NewWithConfigAndMetrics.

func (t *Timer) recordScheduled() {
	if t.registry == nil {
		return
	}
	t.registry.TimerTasksScheduled.WithLabelValues(t.metricsName).Inc()
	t.registry.TimerQueueDepth.WithLabelValues(t.metricsName).Set(float64(t.QueueSize()))
}

func (t *Timer) recordCancelled() {
	if t.registry == nil {
		return
	}
	t.registry.TimerTasksCancelled.WithLabelValues(t.metricsName).Inc()
	t.registry.TimerQueueDepth.WithLabelValues(t.metricsName).Set(float64(t.QueueSize()))
}
