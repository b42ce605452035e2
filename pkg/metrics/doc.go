// Package metrics provides Prometheus instrumentation for parastate's
// worker pool and timer components.
//
// # Overview
//
// The metrics package provides automatic instrumentation for:
//   - Worker pools (pool size, active workers, queued tasks, task durations)
//   - Delayed-task timers (tasks scheduled, tasks cancelled, queue depth)
//
// # Quick Start
//
// Enable metrics by using the metrics-enabled constructor:
//
//	// Worker pool with metrics
//	pool := workerpool.NewWithMetrics(5, "task_pool")
//
// Then expose metrics via HTTP:
//
//	http.Handle("/metrics", promhttp.Handler())
//	log.Fatal(http.ListenAndServe(":8080", nil))
//
// # Custom Registry
//
// Use a custom Prometheus registry for isolation:
//
//	registry := prometheus.NewRegistry()
//	config := metrics.Config{
//		Enabled:  true,
//		Registry: registry,
//	}
//
//	pool := workerpool.NewWithConfigAndMetrics(
//		workerpool.Config{WorkerCount: 5, QueueSize: 100},
//		"custom_pool",
//		config,
//	)
//
// # Available Metrics
//
// ## Worker Pool Metrics
//
//   - parastate_workerpool_tasks_executed_total
//   - parastate_workerpool_tasks_completed_total
//   - parastate_workerpool_tasks_failed_total
//   - parastate_workerpool_task_duration_seconds
//   - parastate_workerpool_size
//   - parastate_workerpool_active_workers
//   - parastate_workerpool_queued_tasks
//
// ## Timer Metrics
//
//   - parastate_timer_tasks_scheduled_total
//   - parastate_timer_tasks_cancelled_total
//   - parastate_timer_queue_depth
//
// # Labels
//
// Metrics include relevant labels for filtering and aggregation:
//
//   - pool_name: User-provided name for the worker pool instance
//   - timer_name: User-provided name for the timer instance
//
// # Runtime Control
//
// Components implementing the Instrumentable interface support runtime control:
//
//	pool := workerpool.NewWithMetrics(5, "api_pool")
//	pool.(metrics.Instrumentable).DisableMetrics()
//	pool.(metrics.Instrumentable).EnableMetrics(config)
package metrics
