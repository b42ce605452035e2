package timer

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/vnykmshr/parastate/pkg/guard"
	"github.com/vnykmshr/parastate/pkg/metrics"
	"github.com/vnykmshr/parastate/pkg/scheduling/workerpool"
	"github.com/vnykmshr/parastate/pkg/state"
)

// DefaultMaxQueueSize bounds a Timer's queue when New is given a
// non-positive size.
const DefaultMaxQueueSize = 10000

// Timer runs tasks once their delay elapses, dispatching each through pool.
type Timer struct {
	pool  workerpool.Pool
	queue *taskQueue

	dispatcherDone chan struct{}
	closer         *guard.Release

	// metricsName and registry are set only by NewWithMetrics /
	// NewWithConfigAndMetrics; registry stays nil for a plain New, and every
	// recording call checks that before touching it.
	metricsName string
	registry    *metrics.Registry
}

// New constructs a Timer that dispatches due tasks through pool. maxQueueSize
// bounds how many tasks may be waiting at once; non-positive selects
// DefaultMaxQueueSize.
func New(pool workerpool.Pool, maxQueueSize int) *Timer {
	if maxQueueSize <= 0 {
		maxQueueSize = DefaultMaxQueueSize
	}
	t := &Timer{
		pool:           pool,
		queue:          newTaskQueue(maxQueueSize),
		dispatcherDone: make(chan struct{}),
	}
	t.closer = guard.NewRelease(func() {
		t.queue.stop()
		<-t.dispatcherDone
		t.queue.cancelAll()
	})
	go t.dispatch()
	return t
}

func (t *Timer) dispatch() {
	defer close(t.dispatcherDone)
	for {
		task, ok := t.queue.getTask()
		if !ok {
			return
		}
		if err := t.pool.Submit(workerpool.TaskFunc(func(ctx context.Context) error {
			task.run()
			return nil
		})); err != nil {
			task.Cancel()
		}
	}
}

// AddDelayedTask schedules task to run once, after delay elapses.
func (t *Timer) AddDelayedTask(delay time.Duration, task workerpool.Task) *Handle {
	dt := newDelayedTask(delay, task, t)
	if !t.queue.addTask(dt) {
		dt.Cancel()
		t.recordCancelled()
	} else {
		t.recordScheduled()
	}
	return newHandle(dt)
}

// AddCronTask schedules task to run repeatedly according to a standard
// five-field cron expression. After each run that returns without error,
// the task reschedules itself to the schedule's next occurrence through the
// same Restart mechanism a caller would use on a one-shot task. A run that
// fails or panics leaves the task failed and it is not rescheduled.
func (t *Timer) AddCronTask(expr string, task workerpool.Task) (*Handle, error) {
	schedule, err := cron.ParseStandard(expr)
	if err != nil {
		return nil, err
	}

	dt := &DelayedTask{timer: t}
	dt.dueFunc = func() time.Time { return schedule.Next(time.Now()) }
	dt.engine = state.New[taskPhase](waitingPhase{})

	var handle *Handle
	dt.task = workerpool.TaskFunc(func(ctx context.Context) error {
		err := task.Execute(ctx)
		handle.Restart()
		return err
	})
	handle = newHandle(dt)

	if !t.queue.addTask(dt) {
		dt.Cancel()
		t.recordCancelled()
	} else {
		t.recordScheduled()
	}
	return handle, nil
}

// start (re)enqueues dt. It is called from inside a phase method that
// already holds dt's own engine lock (runningPhase.done, on a restart), so
// it must never call back into dt's engine — only the queue's lock is
// touched here.
func (t *Timer) start(dt *DelayedTask) bool {
	return t.queue.addTask(dt)
}

// reschedule moves dt to a fresh due time. Same reentrancy constraint as
// start: never call back into dt's own engine from here.
func (t *Timer) reschedule(dt *DelayedTask) bool {
	return t.queue.rescheduleTask(dt)
}

// QueueSize returns the number of tasks currently waiting to become due.
func (t *Timer) QueueSize() int {
	return t.queue.size()
}

// Close stops accepting new due-task dispatches, waits for the dispatcher
// to drain, and cancels whatever is left in the queue. Tasks already
// handed to the pool keep running to completion. Safe to call more than
// once; only the first call runs the teardown.
func (t *Timer) Close() {
	t.closer.Run()
}
