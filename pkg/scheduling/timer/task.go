package timer

import (
	"context"
	"fmt"
	"runtime/debug"
	"time"

	"github.com/vnykmshr/parastate/pkg/guard"
	"github.com/vnykmshr/parastate/pkg/scheduling/workerpool"
	"github.com/vnykmshr/parastate/pkg/state"
)

// taskPhase is the phase interface a DelayedTask's engine holds. Every
// concrete phase embeds basePhase and overrides only the transitions it
// accepts; everything else falls back to a reject.
type taskPhase interface {
	run(t *DelayedTask) state.Transition[taskPhase]
	cancel(t *DelayedTask, l *guard.Locked[taskPhase], changed func() bool) (state.Transition[taskPhase], error)
	done(t *DelayedTask) state.Transition[taskPhase]
	exception(t *DelayedTask, err error) state.Transition[taskPhase]
	restart(t *DelayedTask) (state.Transition[taskPhase], error)

	isWaiting() bool
	isRunning() bool
	isCancelled() bool
	isDone() (bool, error)
}

// basePhase rejects every transition and answers every predicate false, so
// concrete phases only have to write down what they actually accept.
type basePhase struct{}

func (basePhase) run(*DelayedTask) state.Transition[taskPhase] { return state.Reject[taskPhase]() }
func (basePhase) cancel(*DelayedTask, *guard.Locked[taskPhase], func() bool) (state.Transition[taskPhase], error) {
	return state.Reject[taskPhase](), nil
}
func (basePhase) done(*DelayedTask) state.Transition[taskPhase]      { return state.Reject[taskPhase]() }
func (basePhase) exception(*DelayedTask, error) state.Transition[taskPhase] {
	return state.Reject[taskPhase]()
}
func (basePhase) restart(*DelayedTask) (state.Transition[taskPhase], error) {
	return state.Reject[taskPhase](), nil
}
func (basePhase) isWaiting() bool       { return false }
func (basePhase) isRunning() bool       { return false }
func (basePhase) isCancelled() bool     { return false }
func (basePhase) isDone() (bool, error) { return false, nil }

// waitingPhase: queued, not yet due or not yet picked up by the dispatcher.
type waitingPhase struct{ basePhase }

func (waitingPhase) isWaiting() bool { return true }

func (waitingPhase) run(t *DelayedTask) state.Transition[taskPhase] {
	return state.AcceptAndSwap[taskPhase](&runningPhase{executor: currentGoroutineID()})
}

func (waitingPhase) cancel(t *DelayedTask, l *guard.Locked[taskPhase], changed func() bool) (state.Transition[taskPhase], error) {
	return state.AcceptAndSwap[taskPhase](cancelledPhase{}), nil
}

func (waitingPhase) restart(t *DelayedTask) (state.Transition[taskPhase], error) {
	// Ask the timer to move this task to a new due time. Whether or not
	// the requeue actually succeeds, the call itself is accepted with no
	// swap: the task is still logically waiting either way. A failed
	// requeue (queue stopped) is resolved later by the queue's own
	// cancelAll during shutdown, not by recursing back into this task's
	// own engine here.
	t.timer.reschedule(t)
	return state.Accept[taskPhase](), nil
}

// runningPhase: currently executing on some goroutine.
type runningPhase struct {
	basePhase
	executor      uint64
	restartWanted bool
}

func (p *runningPhase) isRunning() bool { return true }

func (p *runningPhase) cancel(t *DelayedTask, l *guard.Locked[taskPhase], changed func() bool) (state.Transition[taskPhase], error) {
	if p.executor == currentGoroutineID() {
		return state.AcceptAndSwap[taskPhase](cancelledPhase{}), nil
	}
	// Cancelling from outside: wait for the run to finish one way or
	// another, then report not-accepted — the caller observes whatever
	// phase the task actually landed in via IsDone/IsCancelled.
	l.WaitUntil(changed)
	return state.Reject[taskPhase](), nil
}

func (p *runningPhase) restart(t *DelayedTask) (state.Transition[taskPhase], error) {
	p.restartWanted = true
	return state.Accept[taskPhase](), nil
}

func (p *runningPhase) done(t *DelayedTask) state.Transition[taskPhase] {
	if p.restartWanted {
		if t.timer.start(t) {
			return state.AcceptAndSwap[taskPhase](waitingPhase{})
		}
		return state.Reject[taskPhase]()
	}
	return state.AcceptAndSwap[taskPhase](doneState{})
}

func (p *runningPhase) exception(t *DelayedTask, err error) state.Transition[taskPhase] {
	return state.AcceptAndSwap[taskPhase](&exceptionPhase{err: &TaskError{cause: err}})
}

// doneState: completed successfully.
type doneState struct{ basePhase }

func (doneState) isDone() (bool, error) { return true, nil }

func (doneState) cancel(t *DelayedTask, l *guard.Locked[taskPhase], changed func() bool) (state.Transition[taskPhase], error) {
	return state.AcceptAndSwap[taskPhase](cancelledPhase{}), nil
}

// exceptionPhase: the task body failed. The failure is never lost: it
// resurfaces on every subsequent IsDone, Cancel, and Restart call.
type exceptionPhase struct {
	basePhase
	err *TaskError
}

func (p *exceptionPhase) isDone() (bool, error) { return true, p.err }

func (p *exceptionPhase) cancel(t *DelayedTask, l *guard.Locked[taskPhase], changed func() bool) (state.Transition[taskPhase], error) {
	return state.Reject[taskPhase](), p.err
}

func (p *exceptionPhase) restart(t *DelayedTask) (state.Transition[taskPhase], error) {
	return state.Reject[taskPhase](), p.err
}

// cancelledPhase: terminal, cancelled either by the caller or superseded.
type cancelledPhase struct{ basePhase }

func (cancelledPhase) isCancelled() bool { return true }

// DelayedTask is one task's engine plus the work it wraps. Handle is the
// public, user-facing view of a DelayedTask.
type DelayedTask struct {
	task    workerpool.Task
	timer   *Timer
	delay   time.Duration
	dueFunc func() time.Time
	engine  *state.Engine[taskPhase]
}

func newDelayedTask(delay time.Duration, task workerpool.Task, t *Timer) *DelayedTask {
	return &DelayedTask{
		task:   task,
		timer:  t,
		delay:  delay,
		engine: state.New[taskPhase](waitingPhase{}),
	}
}

func (t *DelayedTask) dueTime() time.Time {
	if t.dueFunc != nil {
		return t.dueFunc()
	}
	return time.Now().Add(t.delay)
}

// Cancel stops the task. Cancelling a waiting or done task moves it to the
// cancelled phase and returns true. Cancelling from another goroutine while
// the task is running waits for the run to finish and returns false. It
// returns false for an already cancelled task, and false plus the task's
// failure for a failed one.
func (t *DelayedTask) Cancel() (bool, error) {
	return state.CallE(t.engine, func(l *guard.Locked[taskPhase], persistent taskPhase) (state.Transition[taskPhase], error) {
		changed := state.Changed(l, persistent)
		return persistent.cancel(t, l, changed)
	})
}

// Restart re-arms the task. On a still-waiting task it reschedules to a
// fresh due time; on a running task it takes effect once the run finishes.
// It returns the task's failure if it had already failed.
func (t *DelayedTask) Restart() (bool, error) {
	return state.CallE(t.engine, func(l *guard.Locked[taskPhase], persistent taskPhase) (state.Transition[taskPhase], error) {
		return persistent.restart(t)
	})
}

func (t *DelayedTask) IsWaiting() bool {
	return state.Query(t.engine, func(p taskPhase) bool { return p.isWaiting() })
}

func (t *DelayedTask) IsRunning() bool {
	return state.Query(t.engine, func(p taskPhase) bool { return p.isRunning() })
}

func (t *DelayedTask) IsCancelled() bool {
	return state.Query(t.engine, func(p taskPhase) bool { return p.isCancelled() })
}

func (t *DelayedTask) IsDone() (bool, error) {
	return state.QueryE(t.engine, func(p taskPhase) (bool, error) { return p.isDone() })
}

// run drives the task through running and into done or failed, invoking the
// wrapped task body. It is called by the timer's dispatcher, never by user
// code directly.
func (t *DelayedTask) run() {
	accepted := state.Call(t.engine, func(l *guard.Locked[taskPhase], persistent taskPhase) state.Transition[taskPhase] {
		return persistent.run(t)
	})
	if !accepted {
		return
	}

	err := t.invoke()

	if err != nil {
		state.Call(t.engine, func(l *guard.Locked[taskPhase], persistent taskPhase) state.Transition[taskPhase] {
			return persistent.exception(t, err)
		})
	} else {
		state.Call(t.engine, func(l *guard.Locked[taskPhase], persistent taskPhase) state.Transition[taskPhase] {
			return persistent.done(t)
		})
	}
	t.engine.NotifyAll()
}

// invoke runs the wrapped task body, converting a panic into an error the
// same way a caught exception would carry the failure forward.
func (t *DelayedTask) invoke() (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}
	}()
	return t.task.Execute(context.Background())
}
