package tether

// Listener is anything that can be notified when a dependency changes.
// Effects implement it; so does any external consumer that wants raw
// change notifications. The bind package's one-shot appliers do not:
// attribute bindings never subscribe.
type Listener interface {
	// MarkDirty notifies the listener that one of its dependencies changed.
	// For effects this re-runs the effect body synchronously unless a
	// batch is open, in which case the run is queued until the batch closes.
	MarkDirty()

	// ID returns a unique identifier for this listener.
	// Used for deduplication when a batch flushes.
	ID() uint64
}

// Cleanup is a function returned by effects to release resources.
// It is called before the effect re-runs and when the effect is disposed.
type Cleanup func()
