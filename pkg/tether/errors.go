package tether

import "errors"

// ErrUseAfterDispose is the failure for reading or writing a signal whose
// owning scope has been disposed. Disposed state never silently returns
// stale data: Signal.Get panics with this sentinel, Signal.TryGet returns it.
var ErrUseAfterDispose = errors.New("tether: signal used after its owner was disposed")

// ErrNotMounted is the failure for force-unwrapping a Ref before its node
// has been attached. Handlers wired to DOM events that fire after mount may
// assume the ref is set; anything that can run pre-mount must use
// Ref.Current and handle the unset case explicitly.
var ErrNotMounted = errors.New("tether: ref resolved before its element was mounted")

// ErrReentrantUpdateLimit is the failure for a runaway update cycle: an
// effect that keeps rewriting its own dependency re-runs synchronously until
// the fixed depth limit, then the whole cycle aborts with this sentinel.
// The cycle is fatal to that update, not to the process; dispatch boundaries
// recover, log, and carry on.
var ErrReentrantUpdateLimit = errors.New("tether: reentrant update depth limit exceeded")

// MaxUpdateDepth bounds synchronous effect recursion within one update
// cycle. A well-behaved UI rarely nests more than a handful of dependent
// writes; anything past this is an unconditional self-rewrite loop.
const MaxUpdateDepth = 64
