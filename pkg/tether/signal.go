package tether

import (
	"sync"
	"sync/atomic"
)

// signalBase provides type-erased subscriber management.
// It is embedded in Signal[T] so the effect machinery can hold sources
// without knowing the value type.
type signalBase struct {
	id uint64

	// subs are the listeners subscribed to this signal, in registration
	// order. Notification order follows registration order, so removal
	// shifts rather than swaps.
	subs []Listener

	// subMu protects the subs slice.
	subMu sync.RWMutex

	// disposed flips when the owning scope is torn down. A disposed signal
	// never serves reads or writes again.
	disposed atomic.Bool
}

// subscribe adds a listener to this signal's subscribers.
// Deduplicates by listener ID: reading a signal twice in one effect run
// registers the effect once.
func (s *signalBase) subscribe(l Listener) {
	if l == nil || s.disposed.Load() {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for _, existing := range s.subs {
		if existing.ID() == lid {
			return
		}
	}

	s.subs = append(s.subs, l)
}

// unsubscribe removes a listener, preserving registration order for the rest.
func (s *signalBase) unsubscribe(l Listener) {
	if l == nil {
		return
	}

	s.subMu.Lock()
	defer s.subMu.Unlock()

	lid := l.ID()
	for i, existing := range s.subs {
		if existing.ID() == lid {
			s.subs = append(s.subs[:i], s.subs[i+1:]...)
			return
		}
	}
}

// notifySubscribers notifies all subscribers that this signal changed.
// Copies before notifying so effect re-runs can resubscribe without
// holding the lock. Outside a batch, notification is synchronous: each
// subscriber runs to completion before the write returns.
func (s *signalBase) notifySubscribers() {
	s.subMu.RLock()
	subs := make([]Listener, len(s.subs))
	copy(subs, s.subs)
	s.subMu.RUnlock()

	if getBatchDepth() > 0 {
		for _, sub := range subs {
			queuePendingUpdate(sub)
		}
		return
	}

	for _, sub := range subs {
		sub.MarkDirty()
	}
}

// clearSubscribers drops every subscription. Called on scope disposal so no
// stale subscriber survives teardown.
func (s *signalBase) clearSubscribers() {
	s.subMu.Lock()
	s.subs = nil
	s.subMu.Unlock()
}

// dispose marks the signal unusable and releases its subscribers.
func (s *signalBase) dispose() {
	if s.disposed.Swap(true) {
		return
	}
	s.clearSubscribers()
}

// Signal is a reactive value container.
// Reading a Signal's value during a tracked context (an effect run)
// automatically subscribes the current listener to change notifications.
//
// A Set always notifies: there is no equality skip. Controlled inputs
// re-apply the DOM property on every keystroke even when the string did
// not change, and the signal layer must not second-guess that.
type Signal[T any] struct {
	base signalBase

	// value is the current signal value.
	value T

	// mu protects the value.
	mu sync.RWMutex
}

// NewSignal creates a new signal with the given initial value.
// The signal is owned by the current owner scope, if any; disposing that
// scope makes further reads and writes fail with ErrUseAfterDispose.
func NewSignal[T any](initial T) *Signal[T] {
	s := &Signal[T]{
		base:  signalBase{id: nextID()},
		value: initial,
	}

	if owner := getCurrentOwner(); owner != nil {
		owner.registerSignal(&s.base)
	}

	return s
}

// Get returns the current value and subscribes the current listener.
// Outside any tracked context this is a plain read with no side effect.
// Panics with ErrUseAfterDispose once the owning scope has been disposed;
// use TryGet for the checked form.
func (s *Signal[T]) Get() T {
	v, err := s.TryGet()
	if err != nil {
		panic(err)
	}
	return v
}

// TryGet is Get with an explicit error instead of a panic for the
// disposed case.
func (s *Signal[T]) TryGet() (T, error) {
	if s.base.disposed.Load() {
		var zero T
		return zero, ErrUseAfterDispose
	}

	s.mu.RLock()
	value := s.value
	s.mu.RUnlock()

	// Track dependency after releasing the value lock.
	if listener := getCurrentListener(); listener != nil {
		s.base.subscribe(listener)

		if e, ok := listener.(*Effect); ok {
			e.addSource(&s.base)
		}
	}

	return value, nil
}

// Peek returns the current value without subscribing.
// Useful for reading inside an effect without creating a dependency.
func (s *Signal[T]) Peek() T {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.value
}

// Set replaces the stored value and notifies every subscriber.
// Subscriber effects re-run synchronously, in registration order, before
// Set returns (unless a batch is open). Panics with ErrUseAfterDispose
// after the owning scope is disposed.
func (s *Signal[T]) Set(value T) {
	if s.base.disposed.Load() {
		panic(ErrUseAfterDispose)
	}

	s.mu.Lock()
	s.value = value
	s.mu.Unlock()

	s.base.notifySubscribers()
}

// Update atomically derives the new value from the current one, then
// notifies like Set.
func (s *Signal[T]) Update(fn func(T) T) {
	if s.base.disposed.Load() {
		panic(ErrUseAfterDispose)
	}

	s.mu.Lock()
	s.value = fn(s.value)
	s.mu.Unlock()

	s.base.notifySubscribers()
}

// ID returns the unique identifier for this signal.
func (s *Signal[T]) ID() uint64 {
	return s.base.id
}
