package timer

import (
	"bytes"
	"runtime"
	"strconv"
)

// currentGoroutineID identifies the calling goroutine well enough to tell
// whether a later call is happening on the same one. Go deliberately
// exposes no public goroutine id, so this parses it out of a stack trace
// the same way runtime/pprof's goroutine profiler does internally. It is
// used for exactly one thing: recognizing that Cancel is being called from
// inside the very task body it would cancel, so that a task can cancel
// itself without deadlocking on its own completion.
func currentGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	trace := buf[:n]

	const prefix = "goroutine "
	if !bytes.HasPrefix(trace, []byte(prefix)) {
		return 0
	}
	trace = trace[len(prefix):]

	end := bytes.IndexByte(trace, ' ')
	if end < 0 {
		return 0
	}

	id, err := strconv.ParseUint(string(trace[:end]), 10, 64)
	if err != nil {
		return 0
	}
	return id
}
