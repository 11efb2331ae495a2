package tether

import "sync"

// Ref is a late-bound handle to a constructed DOM node.
// It starts empty, is attached exactly once per mount (synchronously, at
// the moment the node joins its parent, before any handler can fire), and
// reads stably thereafter. Unmounting the subtree detaches it.
//
// Handlers driven by DOM events that fire after mount may call MustCurrent;
// anything that can run pre-mount must call Current and handle the unset
// case explicitly.
type Ref[E any] struct {
	value E
	isSet bool
	mu    sync.RWMutex
}

// NewRef creates an empty ref, owned by the current scope if there is one.
// Disposal of the owning scope detaches the ref.
func NewRef[E any]() *Ref[E] {
	r := &Ref[E]{}

	if owner := getCurrentOwner(); owner != nil {
		owner.OnCleanup(r.Detach)
	}

	return r
}

// Current returns the referenced node and whether it is mounted.
// Before mount it returns the zero value and false, never a crash.
func (r *Ref[E]) Current() (E, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.value, r.isSet
}

// MustCurrent returns the referenced node, panicking with ErrNotMounted if
// the ref is still empty. Safe inside handlers for events that can only
// fire after the node exists.
func (r *Ref[E]) MustCurrent() E {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if !r.isSet {
		panic(ErrNotMounted)
	}
	return r.value
}

// IsSet reports whether the ref has been attached.
func (r *Ref[E]) IsSet() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.isSet
}

// Attach sets the ref's value. The runtime calls this once, when the
// element is appended to its parent. A second attach while already set is
// ignored so the first mount wins and reads stay stable.
func (r *Ref[E]) Attach(value E) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.isSet {
		return
	}
	r.value = value
	r.isSet = true
}

// Detach resets the ref to empty. Called when the referenced subtree
// unmounts; a later remount may attach again.
func (r *Ref[E]) Detach() {
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero E
	r.value = zero
	r.isSet = false
}
