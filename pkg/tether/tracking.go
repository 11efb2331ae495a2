package tether

import (
	"runtime"
	"sync"
)

// TrackingContext holds the reactive state for a goroutine.
// Each goroutine has its own tracking context so concurrent sessions can
// run their update cycles without sharing listener state.
type TrackingContext struct {
	// currentOwner is the Owner that will own newly created signals/effects.
	currentOwner *Owner

	// currentListener is what is currently tracking dependencies.
	// When a signal is read, it subscribes this listener.
	// nil means no tracking (reads don't create subscriptions).
	currentListener Listener

	// batchDepth tracks nested Batch() calls.
	// When > 0, signal updates queue notifications instead of firing immediately.
	batchDepth int

	// pendingUpdates accumulates listeners to notify when the batch completes.
	// Deduplicated by ID before notification.
	pendingUpdates []Listener

	// updateDepth counts how deep the current synchronous update cycle has
	// recursed. Every effect run triggered by a signal write increments it;
	// exceeding MaxUpdateDepth aborts the cycle with ErrReentrantUpdateLimit.
	updateDepth int
}

// trackingContexts stores per-goroutine tracking contexts.
var trackingContexts sync.Map

// getGoroutineID returns a unique identifier for the current goroutine,
// parsed from the runtime stack header ("goroutine <id> ...").
// Implementation detail; not exposed.
func getGoroutineID() uint64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)

	var id uint64
	for i := 10; i < n; i++ { // skip "goroutine "
		if buf[i] == ' ' {
			break
		}
		id = id*10 + uint64(buf[i]-'0')
	}
	return id
}

// getTrackingContext returns the tracking context for the current goroutine,
// creating one on first use.
func getTrackingContext() *TrackingContext {
	gid := getGoroutineID()

	if ctx, ok := trackingContexts.Load(gid); ok {
		return ctx.(*TrackingContext)
	}

	ctx := &TrackingContext{}
	trackingContexts.Store(gid, ctx)
	return ctx
}

// getCurrentListener returns the listener currently tracking dependencies,
// or nil if no tracking is active.
func getCurrentListener() Listener {
	return getTrackingContext().currentListener
}

// setCurrentListener sets the current listener for dependency tracking.
// Returns the previous listener so it can be restored.
func setCurrentListener(l Listener) Listener {
	ctx := getTrackingContext()
	old := ctx.currentListener
	ctx.currentListener = l
	return old
}

// getCurrentOwner returns the current owner for the goroutine, or nil.
func getCurrentOwner() *Owner {
	return getTrackingContext().currentOwner
}

// setCurrentOwner sets the current owner for signal/effect creation.
// Returns the previous owner so it can be restored.
func setCurrentOwner(o *Owner) *Owner {
	ctx := getTrackingContext()
	old := ctx.currentOwner
	ctx.currentOwner = o
	return old
}

// getBatchDepth returns the current batch nesting depth.
func getBatchDepth() int {
	return getTrackingContext().batchDepth
}

func incrementBatchDepth() {
	getTrackingContext().batchDepth++
}

// decrementBatchDepth decreases the batch depth by 1.
// Returns true if batch depth reached 0 (batch complete).
func decrementBatchDepth() bool {
	ctx := getTrackingContext()
	ctx.batchDepth--
	return ctx.batchDepth == 0
}

// queuePendingUpdate adds a listener to the pending updates queue.
// Called during batch mode when a signal is updated. Order is preserved so
// the flush notifies in first-write order.
func queuePendingUpdate(l Listener) {
	ctx := getTrackingContext()
	ctx.pendingUpdates = append(ctx.pendingUpdates, l)
}

// drainPendingUpdates returns and clears the pending updates queue.
func drainPendingUpdates() []Listener {
	ctx := getTrackingContext()
	updates := ctx.pendingUpdates
	ctx.pendingUpdates = nil
	return updates
}

// enterUpdate increments the synchronous update depth for the goroutine and
// panics with ErrReentrantUpdateLimit once the fixed bound is crossed.
// Every enterUpdate is paired with exitUpdate by the caller.
func enterUpdate() {
	ctx := getTrackingContext()
	ctx.updateDepth++
	if ctx.updateDepth > MaxUpdateDepth {
		// Reset so the goroutine is usable after the boundary recovers.
		ctx.updateDepth = 0
		panic(ErrReentrantUpdateLimit)
	}
}

func exitUpdate() {
	ctx := getTrackingContext()
	if ctx.updateDepth > 0 {
		ctx.updateDepth--
	}
}

// CleanupGoroutineContext removes the tracking context for the current
// goroutine. Goroutine ids are never reused, so a goroutine that ran
// reactive work must call this before exiting or its entry (and whatever
// listener graph it last referenced) stays in the map forever. The live
// session read loop does this on exit; short-lived helpers that only
// mounted and closed a root should too.
func CleanupGoroutineContext() {
	trackingContexts.Delete(getGoroutineID())
}

// WithOwner runs a function with the specified owner as the current owner.
// Used when spawning goroutines that need to create signals/effects owned
// by an existing scope.
func WithOwner(owner *Owner, fn func()) {
	old := setCurrentOwner(owner)
	defer setCurrentOwner(old)
	fn()
}

// WithListener runs a function with the specified listener for tracking.
// Used internally to set up dependency tracking during effect runs; exposed
// for tests and for custom listener implementations.
func WithListener(l Listener, fn func()) {
	old := setCurrentListener(l)
	defer setCurrentListener(old)
	fn()
}
