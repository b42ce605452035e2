package workerpool

import (
	"context"
	"fmt"
	"runtime/debug"
	"sync/atomic"
	"time"

	commonctx "github.com/vnykmshr/parastate/pkg/common/context"
	cerrors "github.com/vnykmshr/parastate/pkg/common/errors"
	"github.com/vnykmshr/parastate/pkg/common/validation"
	"github.com/vnykmshr/parastate/pkg/guard"
)

// AddTask enqueues task and returns true, or returns false without
// enqueuing if task is nil or the pool has already been shut down. Unlike
// the Submit family, it never blocks on queue capacity: a bounded queue
// still grows past its configured size rather than stall the caller. Task
// execution uses context.Background().
func (p *workerPool) AddTask(task Task) bool {
	if task == nil {
		return false
	}
	ok := guard.WithCond(p.queueCell, func(l *guard.Locked[poolState]) bool {
		st := l.Value()
		if st.stopped {
			return false
		}
		st.queue = append(st.queue, taskWithContext{task: task, ctx: context.Background()})
		return true
	})
	if !ok {
		return false
	}
	p.queueCell.NotifyOne()
	atomic.AddInt64(&p.totalSubmitted, 1)
	return true
}

// Submit adds a task to the pool for execution.
// The task will be executed with context.Background().
// Use SubmitWithContext to provide a custom context.
func (p *workerPool) Submit(task Task) error {
	return p.SubmitWithContext(context.Background(), task)
}

// SubmitWithTimeout submits a task, waiting up to timeout for room in the
// queue.
func (p *workerPool) SubmitWithTimeout(task Task, timeout time.Duration) error {
	ctx, cancel := commonctx.WithTimeoutOrCancel(context.Background(), timeout)
	defer cancel()
	return p.SubmitWithContext(ctx, task)
}

type submitResult struct {
	ok       bool
	shutdown bool
}

// SubmitWithContext adds a task to the pool for execution with the given context.
// The context also governs the queuing wait itself: if the queue is bounded
// and full, SubmitWithContext blocks until room frees up or ctx is done.
func (p *workerPool) SubmitWithContext(ctx context.Context, task Task) error {
	if task == nil {
		return validation.ValidateNotNil("workerpool", "task", task)
	}
	if ctx == nil {
		ctx = context.Background()
	}

	if commonctx.IsCanceled(ctx) {
		return ctx.Err()
	}

	// WaitUntil has no way to also select on ctx.Done(), so a watcher
	// goroutine nudges the cell's condition variable when ctx ends,
	// forcing the predicate to be reevaluated.
	stopWatching := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			p.queueCell.NotifyAll()
		case <-stopWatching:
		}
	}()
	defer close(stopWatching)

	hasRoom := func(st *poolState) bool {
		return p.config.QueueSize <= 0 || len(st.queue) < p.config.QueueSize
	}

	r := guard.WithCond(p.queueCell, func(l *guard.Locked[poolState]) submitResult {
		l.WaitUntil(func() bool {
			st := l.Value()
			if st.stopped || hasRoom(st) {
				return true
			}
			select {
			case <-ctx.Done():
				return true
			default:
				return false
			}
		})

		st := l.Value()
		if st.stopped {
			return submitResult{shutdown: true}
		}
		select {
		case <-ctx.Done():
			return submitResult{}
		default:
		}
		if !hasRoom(st) {
			return submitResult{}
		}
		st.queue = append(st.queue, taskWithContext{task: task, ctx: ctx})
		return submitResult{ok: true}
	})

	switch {
	case r.shutdown:
		return cerrors.NewOperationError("workerpool", "Submit", cerrors.ErrClosed)
	case !r.ok:
		return ctx.Err()
	}

	p.queueCell.NotifyOne()
	atomic.AddInt64(&p.totalSubmitted, 1)
	return nil
}

// Results returns a channel of task results.
func (p *workerPool) Results() <-chan Result {
	return p.resultQueue
}

// Shutdown initiates a graceful shutdown of the pool. Safe to call more
// than once; only the first call runs the teardown, and every call
// returns the same channel.
func (p *workerPool) Shutdown() <-chan struct{} {
	p.closer.Run()
	return p.shutdownDone
}

// ShutdownWithTimeout shuts down the pool and returns a channel that closes
// either when shutdown completes or when timeout elapses, whichever is
// first. Tasks already running keep going in the background either way.
func (p *workerPool) ShutdownWithTimeout(timeout time.Duration) <-chan struct{} {
	done := p.Shutdown()
	result := make(chan struct{})
	go func() {
		defer close(result)
		select {
		case <-done:
		case <-time.After(timeout):
		}
	}()
	return result
}

// Size returns the number of workers in the pool.
func (p *workerPool) Size() int {
	return p.config.WorkerCount
}

// QueueSize returns the current number of queued tasks waiting for execution.
func (p *workerPool) QueueSize() int {
	return guard.WithCond(p.queueCell, func(l *guard.Locked[poolState]) int {
		return len(l.Value().queue)
	})
}

// ActiveWorkers returns the number of workers currently executing tasks.
func (p *workerPool) ActiveWorkers() int {
	return int(atomic.LoadInt32(&p.activeWorkers))
}

// TotalSubmitted returns the total number of tasks submitted to the pool.
func (p *workerPool) TotalSubmitted() int64 {
	return atomic.LoadInt64(&p.totalSubmitted)
}

// TotalCompleted returns the total number of tasks completed by the pool.
func (p *workerPool) TotalCompleted() int64 {
	return atomic.LoadInt64(&p.totalCompleted)
}

type popResult struct {
	twc taskWithContext
	ok  bool
}

// popTask blocks until a task is queued or the pool is stopped. Once the
// pool is stopped it returns false even if tasks are still queued, so
// Shutdown drops queued work that has not started.
func (p *workerPool) popTask() (taskWithContext, bool) {
	r := guard.WithCond(p.queueCell, func(l *guard.Locked[poolState]) popResult {
		l.WaitUntil(func() bool {
			st := l.Value()
			return st.stopped || len(st.queue) > 0
		})
		st := l.Value()
		if st.stopped || len(st.queue) == 0 {
			return popResult{}
		}
		twc := st.queue[0]
		st.queue = st.queue[1:]
		return popResult{twc: twc, ok: true}
	})
	return r.twc, r.ok
}

// run is the main loop for a worker.
func (w *worker) run() {
	defer w.pool.workerWg.Done()

	if w.pool.config.OnWorkerStart != nil {
		w.pool.config.OnWorkerStart(w.id)
	}
	if w.pool.config.OnWorkerStop != nil {
		defer w.pool.config.OnWorkerStop(w.id)
	}

	for {
		twc, ok := w.pool.popTask()
		if !ok {
			return
		}
		atomic.AddInt32(&w.pool.activeWorkers, 1)
		w.executeTask(twc)
		atomic.AddInt32(&w.pool.activeWorkers, -1)
	}
}

// sendResult sends a task result to the result queue, dropping it after a
// short grace period rather than blocking a worker forever during shutdown.
func (w *worker) sendResult(result Result) {
	select {
	case w.pool.resultQueue <- result:
	case <-time.After(100 * time.Millisecond):
	}
}

// executeTask executes a single task with the provided context. A panic
// with a configured PanicHandler is routed to it and surfaced as a Result
// error; a panic with no handler configured is re-raised, crashing the
// worker goroutine and, by Go's default behavior, the process — there is no
// sink to hand the failure to, so it cannot be silently absorbed.
func (w *worker) executeTask(twc taskWithContext) {
	start := time.Now()

	if w.pool.config.OnTaskStart != nil {
		w.pool.config.OnTaskStart(w.id, twc.task)
	}

	var taskErr error
	func() {
		defer func() {
			r := recover()
			if r == nil {
				return
			}
			if w.pool.config.PanicHandler == nil {
				panic(r)
			}
			w.pool.config.PanicHandler(twc.task, r)
			taskErr = fmt.Errorf("task panicked: %v\nStack trace:\n%s", r, debug.Stack())
		}()

		ctx := twc.ctx
		if ctx == nil {
			ctx = context.Background()
		}
		if w.pool.config.TaskTimeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = commonctx.WithTimeoutOrCancel(ctx, w.pool.config.TaskTimeout)
			defer cancel()
		}
		taskErr = twc.task.Execute(ctx)
	}()

	duration := time.Since(start)
	result := Result{
		Task:     twc.task,
		Error:    taskErr,
		Duration: duration,
		WorkerID: w.id,
	}

	atomic.AddInt64(&w.pool.totalCompleted, 1)
	if w.pool.config.OnTaskComplete != nil {
		w.pool.config.OnTaskComplete(w.id, result)
	}
	w.sendResult(result)
}
