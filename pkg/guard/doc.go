/*
Package guard provides lock-protected value types ("cells") that are the
base primitive the rest of parastate is built on.

A Cell pairs a value with a mutex so the value can never be touched without
the lock held. Four flavors cover the access patterns this module needs:

  - Cell[T]: exclusive access, single writer, backed by sync.Mutex.
  - SharedCell[T]: many readers or one writer, backed by sync.RWMutex.
  - RecursiveCell[T]: same-goroutine reentrant access bounded by a timeout,
    so a runaway lock chain fails fast with ErrDeadlockPossible instead of
    hanging forever.
  - NotifiableCell[T]: exclusive access plus a condition variable, so a
    holder of the lock can wait on a predicate and transparently release
    and reacquire the lock while waiting.

All access goes through free functions (With, WithShared, WithRecursive,
WithCond) rather than methods, because Go methods cannot introduce their own
type parameters — a cell's value type and a callback's return type are
independent and both need to be generic.

Multiple cells can be locked together deadlock-free with WithAll2/WithAll3,
which lock in a fixed global order assigned at cell construction time.

Release supplies the scoped-release idiom: run a callback exactly once, on
an exit path or explicitly via Run, with Take available to move ownership
of the callback elsewhere first. Timer.Close and the worker pool's Shutdown
are both built on it, so a caller that closes either one twice gets a
guaranteed single teardown rather than a second attempt racing the first.

A Locked[T] handed to a WithCond callback is only valid for that callback's
duration; any Wait* call made on it afterward reports ErrInvalidWait
instead of blocking against a lock the handle no longer holds.
*/
package guard
