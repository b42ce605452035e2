package state

import (
	"testing"

	"github.com/vnykmshr/parastate/pkg/guard"
)

// base is the phase interface for TestBasicPhaseSwap: foo is a predicate
// query, oops is a transition that swaps to whichever concrete phase wants
// to accept it.
type base interface {
	foo() bool
	oops() Transition[base]
}

// child accepts oops and swaps to badChild.
type child struct{}

func (child) foo() bool             { return false }
func (child) oops() Transition[base] { return AcceptAndSwap[base](badChild{}) }

// badChild accepts foo once it has been swapped in.
type badChild struct{}

func (badChild) foo() bool             { return true }
func (badChild) oops() Transition[base] { return Reject[base]() }

func TestBasicPhaseSwap(t *testing.T) {
	e := New[base](child{})

	if got := Query(e, func(p base) bool { return p.foo() }); got {
		t.Fatalf("foo() = %v before oops(), want false", got)
	}

	accepted := Call(e, func(l *guard.Locked[base], persistent base) Transition[base] {
		return persistent.oops()
	})
	if !accepted {
		t.Fatal("oops() was not accepted")
	}

	if got := Query(e, func(p base) bool { return p.foo() }); !got {
		t.Fatalf("foo() = %v after oops(), want true", got)
	}

	// oops() again: badChild rejects it and stays put.
	accepted = Call(e, func(l *guard.Locked[base], persistent base) Transition[base] {
		return persistent.oops()
	})
	if accepted {
		t.Fatal("second oops() should have been rejected by badChild")
	}
}
