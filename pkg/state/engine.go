package state

import "github.com/vnykmshr/parastate/pkg/guard"

// Engine holds one phase value of type P behind a notifiable cell. P is
// typically a small interface with several implementations, one per phase.
type Engine[P comparable] struct {
	cell *guard.NotifiableCell[P]
}

// New constructs an Engine starting in the given phase.
func New[P comparable](initial P) *Engine[P] {
	return &Engine[P]{cell: guard.NewNotifiableCell(initial)}
}

type callResult[E any] struct {
	accepted bool
	extra    E
}

// CallE drives method against the engine's current phase and applies the
// call-and-maybe-swap algorithm:
//
//  1. read the current phase under lock ("persistent"),
//  2. run method, which may release the lock to wait,
//  3. if the phase changed while method was waiting, return method's
//     Accepted bit and extra value without swapping — whatever changed it
//     already decided the outcome,
//  4. otherwise, if method asked to swap, apply the swap,
//  5. return Accepted and extra either way.
//
// The extra return value lets a phase method carry a secondary result (for
// example, an error to surface) alongside the accepted bit, which a plain
// Transition[P] cannot express on its own.
func CallE[P comparable, E any](e *Engine[P], method func(l *guard.Locked[P], persistent P) (Transition[P], E)) (bool, E) {
	r := guard.WithCond(e.cell, func(l *guard.Locked[P]) callResult[E] {
		persistent := *l.Value()
		t, extra := method(l, persistent)
		if *l.Value() != persistent {
			return callResult[E]{accepted: t.Accepted, extra: extra}
		}
		if t.Accepted && t.HasNext {
			*l.Value() = t.Next
		}
		return callResult[E]{accepted: t.Accepted, extra: extra}
	})
	return r.accepted, r.extra
}

// Call is CallE without a secondary return value.
func Call[P comparable](e *Engine[P], method func(l *guard.Locked[P], persistent P) Transition[P]) bool {
	accepted, _ := CallE(e, func(l *guard.Locked[P], persistent P) (Transition[P], struct{}) {
		return method(l, persistent), struct{}{}
	})
	return accepted
}

// QueryE runs a non-mutating predicate against the current phase, carrying
// a secondary value alongside the bool result.
func QueryE[P comparable, E any](e *Engine[P], method func(persistent P) (bool, E)) (bool, E) {
	r := guard.WithCond(e.cell, func(l *guard.Locked[P]) callResult[E] {
		ok, extra := method(*l.Value())
		return callResult[E]{accepted: ok, extra: extra}
	})
	return r.accepted, r.extra
}

// Query is QueryE without a secondary return value.
func Query[P comparable](e *Engine[P], method func(persistent P) bool) bool {
	accepted, _ := QueryE(e, func(persistent P) (bool, struct{}) {
		return method(persistent), struct{}{}
	})
	return accepted
}

// Changed returns a witness closure that reports whether the engine's phase
// is no longer equal to persistent. A phase method that releases the lock
// to wait on some external condition uses this to recognize that it has
// been overtaken by a concurrent Call before it wakes back up.
func Changed[P comparable](l *guard.Locked[P], persistent P) func() bool {
	return func() bool {
		return *l.Value() != persistent
	}
}

// Peek returns the engine's current phase.
func (e *Engine[P]) Peek() P {
	return guard.WithCond(e.cell, func(l *guard.Locked[P]) P { return *l.Value() })
}

// NotifyOne wakes one goroutine waiting on the engine's phase.
func (e *Engine[P]) NotifyOne() { e.cell.NotifyOne() }

// NotifyAll wakes every goroutine waiting on the engine's phase.
func (e *Engine[P]) NotifyAll() { e.cell.NotifyAll() }
