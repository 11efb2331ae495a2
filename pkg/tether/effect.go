package tether

import (
	"sync"
	"sync/atomic"
)

// Effect is a re-runnable unit of side-effecting work.
// The body runs immediately when created and re-runs whenever any signal it
// read during its previous run changes. Re-runs are synchronous: the write
// that triggered them does not return until the effect has completed.
//
// The body may return a Cleanup that runs before the next re-run and on
// disposal.
type Effect struct {
	id uint64

	// fn is the effect body.
	fn func() Cleanup

	// cleanup is the cleanup function from the last run.
	cleanup Cleanup

	// sources are the signals this effect read during its last run.
	// Rebuilt from scratch every run, so an effect that stops reading a
	// signal stops being its subscriber.
	sources   []*signalBase
	sourcesMu sync.Mutex

	// owner is the scope that owns this effect.
	owner *Owner

	// disposed flips when the effect is torn down.
	disposed atomic.Bool
}

// MarkDirty re-runs the effect. Implements Listener.
// Inside a batch the caller has already queued us instead; this path is the
// synchronous one, guarded by the per-goroutine update depth so an effect
// that rewrites its own dependency aborts with ErrReentrantUpdateLimit
// instead of hanging.
func (e *Effect) MarkDirty() {
	if e.disposed.Load() {
		return
	}

	enterUpdate()
	defer exitUpdate()
	e.run()
}

// ID returns the unique identifier for this effect. Implements Listener.
func (e *Effect) ID() uint64 {
	return e.id
}

// run executes the effect body, rebuilding the dependency set.
func (e *Effect) run() {
	if e.disposed.Load() {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	// Unsubscribe from old sources; the run below resubscribes to whatever
	// it actually reads, so no stale subscription persists.
	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = e.sources[:0]
	e.sourcesMu.Unlock()

	// Deferred: a write inside the body can panic out of it (depth bound,
	// disposed access) and the recovery boundary upstream keeps the
	// goroutine alive, so the listener must be restored on unwind too.
	old := setCurrentListener(e)
	defer setCurrentListener(old)
	e.cleanup = e.fn()
}

// addSource records a signal read during the current run.
// Called by signals when they are read while this effect is the listener.
func (e *Effect) addSource(source *signalBase) {
	e.sourcesMu.Lock()
	defer e.sourcesMu.Unlock()

	for _, s := range e.sources {
		if s == source {
			return
		}
	}
	e.sources = append(e.sources, source)
}

// Dispose tears the effect down: runs its cleanup and unsubscribes it from
// every source. Safe to call more than once.
func (e *Effect) Dispose() {
	if e.disposed.Swap(true) {
		return
	}

	if e.cleanup != nil {
		e.cleanup()
		e.cleanup = nil
	}

	e.sourcesMu.Lock()
	for _, source := range e.sources {
		source.unsubscribe(e)
	}
	e.sources = nil
	e.sourcesMu.Unlock()
}

// CreateEffect creates an effect within the current owner scope and runs it
// once immediately. Dependencies are captured implicitly by the reads the
// body performs.
//
// Example:
//
//	CreateEffect(func() Cleanup {
//	    input.SetProperty("value", name.Get())
//	    return nil
//	})
func CreateEffect(fn func() Cleanup) *Effect {
	e := &Effect{
		id:    nextID(),
		fn:    fn,
		owner: getCurrentOwner(),
	}

	if e.owner != nil {
		e.owner.registerEffect(e)
	}

	e.run()

	return e
}

// OnMount runs fn exactly once, when the effect is created.
// Equivalent to an effect with no reactive dependencies.
func OnMount(fn func()) {
	CreateEffect(func() Cleanup {
		fn()
		return nil
	})
}

// OnUnmount registers fn to run when the current owner scope is disposed.
func OnUnmount(fn func()) {
	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(fn)
	}
}

// OnUpdate creates an effect that skips the callback on the first run.
// deps establishes the tracked reads; callback fires only on changes.
func OnUpdate(deps func(), callback func()) {
	first := true
	CreateEffect(func() Cleanup {
		deps()
		if first {
			first = false
			return nil
		}
		callback()
		return nil
	})
}
