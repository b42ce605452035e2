/*
Package scheduling provides task execution primitives built on the phase
engine in pkg/state:

  - workerpool: fixed worker pool for concurrent task execution, backed by a
    guarded, notifiable FIFO queue instead of a channel.
  - timer: delayed and cron-recurring task execution, backed by a due-time
    ordered queue and a per-task phase engine (waiting, running, done,
    failed, cancelled).

Worker Pool:

	pool := workerpool.New(4, 100) // 4 workers, queue size 100
	defer pool.Shutdown()

	task := workerpool.TaskFunc(func(ctx context.Context) error {
		// Do work
		return nil
	})

	pool.Submit(task)
	result := <-pool.Results()

Timer:

The timer runs a task once a delay elapses, executing it on a supplied
worker pool:

	t := timer.New(pool, 1000) // dispatch through pool, queue capacity 1000
	defer t.Close()

	handle := t.AddDelayedTask(5*time.Second, task)
	handle.Cancel()

	cronHandle, err := t.AddCronTask("0 9 * * MON-FRI", task) // weekdays at 9 AM

Both components are thread-safe and integrate with context for cancellation
and timeout handling.
*/
package scheduling
