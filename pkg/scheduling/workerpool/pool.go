package workerpool

import (
	"context"
	"sync"
	"time"

	cerrors "github.com/vnykmshr/parastate/pkg/common/errors"
	"github.com/vnykmshr/parastate/pkg/common/validation"
	"github.com/vnykmshr/parastate/pkg/guard"
)

// Task represents a unit of work that can be executed by a worker.
type Task interface {
	// Execute runs the task with the given context.
	// It should respect context cancellation and return any error encountered.
	Execute(ctx context.Context) error
}

// TaskFunc is a function type that implements the Task interface.
type TaskFunc func(ctx context.Context) error

// Execute implements the Task interface for TaskFunc.
func (f TaskFunc) Execute(ctx context.Context) error {
	return f(ctx)
}

// Result represents the result of a task execution.
type Result struct {
	// Task is the original task that was executed
	Task Task

	// Error is any error that occurred during task execution
	Error error

	// Duration is how long the task took to execute
	Duration time.Duration

	// WorkerID identifies which worker executed the task
	WorkerID int
}

// Pool represents a worker pool that can execute tasks concurrently.
type Pool interface {
	// AddTask enqueues task without waiting for queue capacity and returns
	// false iff the pool has already been shut down or task is nil. Submit
	// and its variants enqueue into the same queue themselves, adding
	// context propagation and capacity-aware blocking.
	AddTask(task Task) bool

	// Submit adds a task to the pool for execution.
	// Returns an error if the pool is shut down or if the task cannot be queued.
	Submit(task Task) error

	// SubmitWithTimeout submits a task with a timeout for queuing.
	// If the task cannot be queued within the timeout, it returns an error.
	SubmitWithTimeout(task Task, timeout time.Duration) error

	// SubmitWithContext submits a task with a context for cancellation.
	// The context governs both the queuing wait and the task's execution.
	SubmitWithContext(ctx context.Context, task Task) error

	// Results returns a channel of task results.
	// The channel is closed when the pool is shut down and all tasks are complete.
	Results() <-chan Result

	// Shutdown initiates a graceful shutdown of the pool.
	// No new tasks will be accepted; tasks already running finish, and
	// queued tasks that have not started are dropped.
	// Returns a channel that closes when shutdown is complete. Safe to call
	// more than once; every call returns the same channel.
	Shutdown() <-chan struct{}

	// ShutdownWithTimeout shuts down the pool with a timeout. If shutdown
	// doesn't complete within the timeout, the returned channel closes
	// anyway while running tasks finish in the background.
	ShutdownWithTimeout(timeout time.Duration) <-chan struct{}

	// Size returns the number of workers in the pool.
	Size() int

	// QueueSize returns the current number of queued tasks waiting for execution.
	QueueSize() int

	// ActiveWorkers returns the number of workers currently executing tasks.
	ActiveWorkers() int

	// TotalSubmitted returns the total number of tasks submitted to the pool.
	TotalSubmitted() int64

	// TotalCompleted returns the total number of tasks completed by the pool.
	TotalCompleted() int64
}

// Config holds configuration options for creating a worker pool.
type Config struct {
	// WorkerCount is the number of workers in the pool.
	// Must be greater than 0.
	WorkerCount int

	// QueueSize is the maximum number of tasks that can be queued.
	// If 0 or -1, the queue has no enforced capacity limit.
	QueueSize int

	// TaskTimeout is the default timeout for individual task execution.
	// Zero means no timeout. Can be overridden per task via context.
	TaskTimeout time.Duration

	// BufferedResults determines if results should be buffered.
	// If true, results are sent to a buffered channel to prevent blocking.
	// Buffer size equals worker count.
	BufferedResults bool

	// PanicHandler is the exception sink for a task that panics during
	// Execute. If nil, an unhandled panic is re-raised from the worker
	// goroutine and brings the process down, matching the "no sink
	// configured" behavior of an unguarded task runner.
	PanicHandler func(task Task, recovered interface{})

	// OnWorkerStart is called when a worker starts.
	// Useful for per-worker initialization (e.g., database connections).
	OnWorkerStart func(workerID int)

	// OnWorkerStop is called when a worker stops.
	// Useful for per-worker cleanup.
	OnWorkerStop func(workerID int)

	// OnTaskStart is called before a task begins execution.
	OnTaskStart func(workerID int, task Task)

	// OnTaskComplete is called after a task completes (success or failure).
	OnTaskComplete func(workerID int, result Result)
}

// taskWithContext pairs a submitted task with the context it was submitted
// under.
type taskWithContext struct {
	task Task
	ctx  context.Context
}

// poolState is the value held behind workerPool's notifiable cell: the FIFO
// queue of pending tasks plus the stopped flag. Every access to either goes
// through the cell's lock, so there is exactly one place a data race on the
// queue could occur, and it doesn't.
type poolState struct {
	queue   []taskWithContext
	stopped bool
}

// workerPool implements the Pool interface. The task queue is a guarded,
// notifiable FIFO rather than a channel: workers block in WaitUntil on
// "queue non-empty or stopped" the same way a timer's dispatcher blocks on
// "due task or stopped", so both consumers share one discipline instead of
// channels for one and condition variables for the other.
type workerPool struct {
	config Config

	queueCell    *guard.NotifiableCell[poolState]
	resultQueue  chan Result
	closer       *guard.Release
	shutdownDone chan struct{}

	activeWorkers  int32
	totalSubmitted int64
	totalCompleted int64

	workers  []worker
	workerWg sync.WaitGroup
}

// worker represents a single worker in the pool.
type worker struct {
	id   int
	pool *workerPool
}

// New creates a new worker pool with the specified number of workers and queue size.
func New(workerCount, queueSize int) Pool {
	return NewWithConfig(Config{
		WorkerCount: workerCount,
		QueueSize:   queueSize,
	})
}

// NewWithConfig creates a new worker pool with the specified configuration.
func NewWithConfig(config Config) Pool {
	if err := validation.ValidatePositive("workerpool", "WorkerCount", config.WorkerCount); err != nil {
		panic(err)
	}
	if config.QueueSize < -1 {
		panic(cerrors.NewValidationError("workerpool", "QueueSize", config.QueueSize, "must be >= -1").
			WithHint("use 0 or -1 for no enforced capacity limit"))
	}

	var resultQueue chan Result
	if config.BufferedResults {
		resultQueue = make(chan Result, config.WorkerCount)
	} else {
		resultQueue = make(chan Result)
	}

	pool := &workerPool{
		config:       config,
		queueCell:    guard.NewNotifiableCell(poolState{}),
		resultQueue:  resultQueue,
		shutdownDone: make(chan struct{}),
	}
	pool.closer = guard.NewRelease(func() {
		guard.WithCond(pool.queueCell, func(l *guard.Locked[poolState]) struct{} {
			l.Value().stopped = true
			return struct{}{}
		})
		pool.queueCell.NotifyAll()

		go func() {
			pool.workerWg.Wait()
			close(pool.resultQueue)
			close(pool.shutdownDone)
		}()
	})

	pool.workers = make([]worker, config.WorkerCount)
	for i := 0; i < config.WorkerCount; i++ {
		pool.workers[i] = worker{id: i, pool: pool}
		pool.workerWg.Add(1)
		go pool.workers[i].run()
	}

	return pool
}
