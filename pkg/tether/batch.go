package tether

// Batch groups multiple signal writes into a single notification phase.
// Writes inside the batch function are collected and deduplicated; affected
// listeners run once when the outermost batch closes, in first-write order.
//
// Without a batch, every write runs its dependents to completion before the
// next statement executes. Batch is the explicit boundary for collapsing a
// burst of related writes into one re-run per effect.
//
// Example:
//
//	Batch(func() {
//	    firstName.Set("Ada")
//	    lastName.Set("Lovelace")
//	})
//	// dependents ran once, after both writes
func Batch(fn func()) {
	incrementBatchDepth()

	defer func() {
		if decrementBatchDepth() {
			processPendingUpdates()
		}
	}()

	fn()
}

// processPendingUpdates deduplicates and notifies all pending listeners.
func processPendingUpdates() {
	updates := drainPendingUpdates()
	if len(updates) == 0 {
		return
	}

	seen := make(map[uint64]bool, len(updates))
	unique := make([]Listener, 0, len(updates))

	for _, listener := range updates {
		id := listener.ID()
		if !seen[id] {
			seen[id] = true
			unique = append(unique, listener)
		}
	}

	for _, listener := range unique {
		listener.MarkDirty()
	}
}

// Untracked runs fn without tracking signal reads as dependencies.
// For a single read, Signal.Peek is clearer.
func Untracked(fn func()) {
	old := setCurrentListener(nil)
	defer setCurrentListener(old)
	fn()
}

// UntrackedGet reads a signal's value without creating a dependency.
// Convenience equivalent of s.Peek().
func UntrackedGet[T any](s *Signal[T]) T {
	return s.Peek()
}
