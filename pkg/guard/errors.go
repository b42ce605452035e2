package guard

import "errors"

// ErrDeadlockPossible is returned by a RecursiveCell acquisition that could
// not obtain the lock within its timeout. It almost always means the same
// goroutine is trying to enter the cell twice without passing the reentry
// token it was handed the first time, or two cells are being locked in
// inconsistent order.
var ErrDeadlockPossible = errors.New("guard: lock not acquired within timeout, deadlock possible")

// ErrInvalidWait is returned by a Locked[T]'s Wait* methods when called
// after the WithCond callback that produced the handle has already
// returned. A Locked is only valid for the duration of that callback; a
// copy of it smuggled out and reused later no longer has any claim on the
// cell's lock, so Wait* refuses to block instead of racing against
// whatever goroutine holds the cell next.
var ErrInvalidWait = errors.New("guard: wait called on a Locked handle that has already gone out of scope")
