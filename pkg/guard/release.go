package guard

import "sync"

// Release runs a callback exactly once, either explicitly via Run or on
// whatever exit path the caller defers it to. It is the scoped-release
// idiom: construct it at the point a resource is acquired, defer its Run,
// and Take it if ownership of the release moves elsewhere. Run, Passed, and
// Take are all safe to call concurrently from multiple goroutines — the
// same one-time guarantee sync.Once gives, but with the callback detachable
// via Take instead of fixed at construction.
type Release struct {
	mu sync.Mutex
	fn func()
}

// NewRelease wraps fn in a Release. A nil fn gives a Release that already
// reports Passed and whose Run does nothing.
func NewRelease(fn func()) *Release {
	return &Release{fn: fn}
}

// Run invokes the wrapped callback if it has not already run or been taken.
func (r *Release) Run() {
	if r == nil {
		return
	}
	r.mu.Lock()
	fn := r.fn
	r.fn = nil
	r.mu.Unlock()
	if fn != nil {
		fn()
	}
}

// Passed reports whether the release has already fired or been taken.
func (r *Release) Passed() bool {
	if r == nil {
		return true
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.fn == nil
}

// Take detaches and returns the wrapped callback, disarming this Release so
// a later Run is a no-op. The caller becomes responsible for invoking (or
// discarding) the returned function.
func (r *Release) Take() func() {
	if r == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	fn := r.fn
	r.fn = nil
	return fn
}
