package timer

import (
	"container/heap"
	"time"

	"github.com/vnykmshr/parastate/pkg/guard"
)

// queueItem is one entry in the due-time min-heap.
type queueItem struct {
	task    *DelayedTask
	dueTime time.Time
	seq     uint64
	index   int
}

type taskHeap []*queueItem

func (h taskHeap) Len() int { return len(h) }

func (h taskHeap) Less(i, j int) bool {
	if h[i].dueTime.Equal(h[j].dueTime) {
		return h[i].seq < h[j].seq
	}
	return h[i].dueTime.Before(h[j].dueTime)
}

func (h taskHeap) Swap(i, j int) {
	h[i], h[j] = h[j], h[i]
	h[i].index = i
	h[j].index = j
}

func (h *taskHeap) Push(x any) {
	item := x.(*queueItem)
	item.index = len(*h)
	*h = append(*h, item)
}

func (h *taskHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*h = old[:n-1]
	return item
}

type queueState struct {
	heap    taskHeap
	index   map[*DelayedTask]*queueItem
	stopped bool
	maxSize int
	nextSeq uint64
}

// taskQueue is the timer's due-time ordered queue: a min-heap keyed by due
// time, guarded the same way the workerpool guards its own FIFO, so both
// components share one discipline for "block until there's work or we're
// stopped".
type taskQueue struct {
	cell *guard.NotifiableCell[queueState]
}

func newTaskQueue(maxSize int) *taskQueue {
	return &taskQueue{
		cell: guard.NewNotifiableCell(queueState{
			index:   map[*DelayedTask]*queueItem{},
			maxSize: maxSize,
		}),
	}
}

func (q *taskQueue) stop() {
	guard.WithCond(q.cell, func(l *guard.Locked[queueState]) struct{} {
		l.Value().stopped = true
		return struct{}{}
	})
	q.cell.NotifyAll()
}

type queueAddResult struct {
	ok         bool
	isEarliest bool
}

func (q *taskQueue) addTask(task *DelayedTask) bool {
	r := guard.WithCond(q.cell, func(l *guard.Locked[queueState]) queueAddResult {
		st := l.Value()
		if st.stopped {
			return queueAddResult{}
		}
		if st.maxSize > 0 && len(st.heap) >= st.maxSize {
			return queueAddResult{}
		}
		if _, exists := st.index[task]; exists {
			return queueAddResult{}
		}
		item := &queueItem{task: task, dueTime: task.dueTime(), seq: st.nextSeq}
		st.nextSeq++
		heap.Push(&st.heap, item)
		st.index[task] = item
		return queueAddResult{ok: true, isEarliest: item.index == 0}
	})
	if r.ok && r.isEarliest {
		q.cell.NotifyOne()
	}
	return r.ok
}

func (q *taskQueue) rescheduleTask(task *DelayedTask) bool {
	r := guard.WithCond(q.cell, func(l *guard.Locked[queueState]) queueAddResult {
		st := l.Value()
		if st.stopped {
			return queueAddResult{}
		}
		item, exists := st.index[task]
		if !exists {
			return queueAddResult{}
		}
		heap.Remove(&st.heap, item.index)
		item.dueTime = task.dueTime()
		heap.Push(&st.heap, item)
		return queueAddResult{ok: true, isEarliest: item.index == 0}
	})
	if r.ok && r.isEarliest {
		q.cell.NotifyOne()
	}
	return r.ok
}

type queuePopResult struct {
	task *DelayedTask
	ok   bool
}

// getTask blocks until the earliest queued task is due or the queue is
// stopped. It returns (nil, false) as soon as the queue is stopped, even if
// tasks remain queued.
func (q *taskQueue) getTask() (*DelayedTask, bool) {
	r := guard.WithCond(q.cell, func(l *guard.Locked[queueState]) queuePopResult {
		for {
			st := l.Value()
			if st.stopped {
				return queuePopResult{}
			}
			if len(st.heap) > 0 && !st.heap[0].dueTime.After(time.Now()) {
				item := heap.Pop(&st.heap).(*queueItem)
				delete(st.index, item.task)
				return queuePopResult{task: item.task, ok: true}
			}
			if len(st.heap) > 0 {
				deadline := st.heap[0].dueTime
				l.WaitDeadline(deadline, func() bool {
					s := l.Value()
					return s.stopped || (len(s.heap) > 0 && !s.heap[0].dueTime.After(time.Now()))
				})
			} else {
				l.WaitUntil(func() bool {
					s := l.Value()
					return s.stopped || len(s.heap) > 0
				})
			}
		}
	})
	return r.task, r.ok
}

// cancelAll cancels every task still queued. It snapshots the queued tasks
// under lock, then calls Cancel on each outside the lock, since Cancel
// takes the task's own engine lock and must never be called while holding
// the queue's lock.
func (q *taskQueue) cancelAll() {
	tasks := guard.WithCond(q.cell, func(l *guard.Locked[queueState]) []*DelayedTask {
		st := l.Value()
		out := make([]*DelayedTask, 0, len(st.heap))
		for _, item := range st.heap {
			out = append(out, item.task)
		}
		return out
	})
	for _, task := range tasks {
		task.Cancel()
	}
}

func (q *taskQueue) size() int {
	return guard.WithCond(q.cell, func(l *guard.Locked[queueState]) int {
		return len(l.Value().heap)
	})
}
