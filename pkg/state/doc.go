/*
Package state implements the phase-swap engine used to build objects whose
behavior changes shape over their lifetime: a task that is waiting, then
running, then done; a pool that is open, then shutting down, then closed.

An Engine holds one "phase" value behind a guard.NotifiableCell. A phase is
any comparable type — typically a small interface implemented by several
concrete structs, one per phase, each embedding a default-reject base so it
only has to override the transitions it actually accepts. Call drives a
phase method and applies whatever phase it returns:

  - the current phase is read under lock ("persistent"),
  - the method runs, possibly releasing the lock to wait on a condition,
  - if the phase changed while the method was waiting, the method's own
    Transition is honored for its Accepted bit but never applied as a swap
    — something else already decided what happens next,
  - otherwise, if the method asked to swap, the engine's value becomes the
    new phase.

This is deliberately not a generic FSM table keyed by event names: phases
decide for themselves, in Go, what they accept and what they become, the
same way a real method on a concrete receiver would.
*/
package state
