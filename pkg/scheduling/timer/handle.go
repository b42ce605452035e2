package timer

import (
	"runtime"
	"time"
)

// Handle is the caller-facing view of a scheduled task. A Handle that is
// garbage collected without an explicit Cancel cancels the underlying task
// as a backstop, the same way the reference implementation's destructor
// does — but callers should still call Cancel explicitly rather than rely
// on finalization timing.
type Handle struct {
	task *DelayedTask
}

func newHandle(task *DelayedTask) *Handle {
	h := &Handle{task: task}
	runtime.SetFinalizer(h, func(h *Handle) {
		h.task.Cancel()
	})
	return h
}

// Cancel stops the task. See DelayedTask.Cancel for the exact semantics
// around self-cancellation and cancelling a task running on another
// goroutine.
func (h *Handle) Cancel() (bool, error) {
	runtime.SetFinalizer(h, nil)
	return h.task.Cancel()
}

// Restart re-arms the task. See DelayedTask.Restart.
func (h *Handle) Restart() (bool, error) {
	return h.task.Restart()
}

func (h *Handle) IsWaiting() bool { return h.task.IsWaiting() }

func (h *Handle) IsRunning() bool { return h.task.IsRunning() }

func (h *Handle) IsCancelled() bool { return h.task.IsCancelled() }

// IsDone reports whether the task has reached a terminal phase, and
// surfaces the task's failure (if any) every time it's called, not just
// the first time.
func (h *Handle) IsDone() (bool, error) { return h.task.IsDone() }

// Delay returns the duration this task was originally scheduled with. For
// a cron-recurring task, whose next due time is computed from the cron
// schedule rather than a fixed offset, Delay returns zero.
func (h *Handle) Delay() time.Duration { return h.task.delay }
