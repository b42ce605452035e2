// Package metrics provides Prometheus instrumentation for parastate's
// scheduling components.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Registry holds all metric instances for parastate's scheduling components.
type Registry struct {
	// Worker Pool Metrics
	TasksExecuted         *prometheus.CounterVec
	TasksCompleted        *prometheus.CounterVec
	TasksFailed           *prometheus.CounterVec
	TaskExecutionDuration *prometheus.HistogramVec
	WorkerPoolSize        *prometheus.GaugeVec
	WorkerPoolActive      *prometheus.GaugeVec
	WorkerPoolQueued      *prometheus.GaugeVec

	// Timer / Delayed-task Metrics
	TimerTasksScheduled *prometheus.CounterVec
	TimerTasksCancelled *prometheus.CounterVec
	TimerQueueDepth     *prometheus.GaugeVec
}

// DefaultRegistry is the default metrics registry used by parastate components.
var DefaultRegistry *Registry

func init() {
	DefaultRegistry = NewRegistry(prometheus.DefaultRegisterer)
}

// NewRegistry creates a new metrics registry with the given Prometheus registerer.
func NewRegistry(reg prometheus.Registerer) *Registry {
	factory := promauto.With(reg)

	return &Registry{
		TasksExecuted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parastate",
				Subsystem: "workerpool",
				Name:      "tasks_executed_total",
				Help:      "Total number of tasks executed",
			},
			[]string{"pool_name"},
		),

		TasksCompleted: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parastate",
				Subsystem: "workerpool",
				Name:      "tasks_completed_total",
				Help:      "Total number of tasks completed successfully",
			},
			[]string{"pool_name"},
		),

		TasksFailed: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parastate",
				Subsystem: "workerpool",
				Name:      "tasks_failed_total",
				Help:      "Total number of tasks that failed",
			},
			[]string{"pool_name"},
		),

		TaskExecutionDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "parastate",
				Subsystem: "workerpool",
				Name:      "task_duration_seconds",
				Help:      "Time spent executing tasks",
				Buckets:   prometheus.DefBuckets,
			},
			[]string{"pool_name"},
		),

		WorkerPoolSize: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "parastate",
				Subsystem: "workerpool",
				Name:      "size",
				Help:      "Current worker pool size",
			},
			[]string{"pool_name"},
		),

		WorkerPoolActive: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "parastate",
				Subsystem: "workerpool",
				Name:      "active_workers",
				Help:      "Number of active workers",
			},
			[]string{"pool_name"},
		),

		WorkerPoolQueued: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "parastate",
				Subsystem: "workerpool",
				Name:      "queued_tasks",
				Help:      "Number of queued tasks",
			},
			[]string{"pool_name"},
		),

		TimerTasksScheduled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parastate",
				Subsystem: "timer",
				Name:      "tasks_scheduled_total",
				Help:      "Total number of delayed tasks scheduled",
			},
			[]string{"timer_name"},
		),

		TimerTasksCancelled: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "parastate",
				Subsystem: "timer",
				Name:      "tasks_cancelled_total",
				Help:      "Total number of delayed tasks cancelled before running",
			},
			[]string{"timer_name"},
		),

		TimerQueueDepth: factory.NewGaugeVec(
			prometheus.GaugeOpts{
				Namespace: "parastate",
				Subsystem: "timer",
				Name:      "queue_depth",
				Help:      "Number of tasks currently waiting to become due",
			},
			[]string{"timer_name"},
		),
	}
}
