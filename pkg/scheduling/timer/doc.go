/*
Package timer runs tasks after a delay, or on a recurring cron schedule,
dispatching each through a workerpool.Pool when it comes due.

Each submitted task is a DelayedTask driven by a pkg/state phase engine
through five phases: waiting, running, done, failed, cancelled. A Handle
lets the caller Cancel or Restart a task and query which phase it's in.
Cancelling a task from within its own running body (a task cancelling
itself) is recognized and takes effect immediately; cancelling a task
running on another goroutine blocks until that run finishes, so a caller
never observes a task as both cancelled and still executing.

Tasks are held in a due-time ordered queue (a container/heap min-heap keyed
by due time, ties broken by submission order) guarded by the same
guard.NotifiableCell discipline the workerpool uses for its own queue: one
dispatcher goroutine blocks on "earliest task due, or stopped" and hands
ready tasks to the pool.

A Timer additionally supports cron-recurring tasks via
github.com/robfig/cron/v3's schedule parser: after each run that returns
without error the task reschedules itself to the schedule's next
occurrence using the same Restart mechanism a caller would use to restart
a one-shot task, rather than a separate recurring code path. A failed run
is not rescheduled.
*/
package timer
