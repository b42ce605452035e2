/*
Package parastate provides guarded-cell concurrency primitives and a
polymorphic state engine built on top of them, plus two concrete clients: a
worker pool task queue and a delayed-task timer with cron-recurring support.

Guarded Cells (pkg/guard):
  - Cell: exclusive-access cell guarded by a single mutex
  - SharedCell: reader/writer access guarded by sync.RWMutex
  - NotifiableCell: exclusive access plus condition-variable waiting
  - RecursiveCell: reentrant access for a single logical caller, bounded by
    a timeout to surface would-be deadlocks instead of hanging forever
  - WithAll2 / WithAll3: deadlock-free access to more than one cell at once

State Engine (pkg/state):
  - Engine: a NotifiableCell of a phase value, mutated only through accepted
    transitions — the "call-and-maybe-swap" discipline that lets concurrent
    callers race to change phase without corrupting it

Task Scheduling (pkg/scheduling):
  - workerpool: a fixed pool of workers draining a guarded FIFO queue
  - timer: due-time ordered delayed tasks, built as a state-engine phase
    machine (waiting/running/done/failed/cancelled), with cron-recurring
    tasks layered on top via repeated self-restart

Metrics (pkg/metrics):
  - Prometheus instrumentation for the worker pool and timer components

Example usage:

	import (
		"github.com/vnykmshr/parastate/pkg/scheduling/timer"
		"github.com/vnykmshr/parastate/pkg/scheduling/workerpool"
	)

	pool := workerpool.New(5, 100) // 5 workers, queue 100
	defer pool.Shutdown()

	tm := timer.New(pool, 1000)
	defer tm.Close()

	handle := tm.AddDelayedTask(5*time.Second, workerpool.TaskFunc(func(ctx context.Context) error {
		return doWork(ctx)
	}))
	defer handle.Cancel()
*/
package parastate
