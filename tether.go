// Package tether provides the public API for the Tether reactive DOM
// binding library.
//
// This is the recommended import for most applications:
//
//	import "github.com/tether-ui/tether"
//
// Usage:
//
//	name := tether.NewSignal("Controlled")
//	root := tether.Mount(doc, func() *dom.Element {
//	    return el.Input(el.Type("text"), el.BindValue(name))
//	})
//	defer root.Close()
package tether

import (
	coretether "github.com/tether-ui/tether/pkg/tether"
)

// =============================================================================
// Reactive primitives (re-export from pkg/tether)
// =============================================================================

// Signal is a reactive value container.
type Signal[T any] = coretether.Signal[T]

// Effect is a re-runnable reactive side effect.
type Effect = coretether.Effect

// Cleanup is a function returned by effects to release resources.
type Cleanup = coretether.Cleanup

// Owner is a disposal scope for reactive primitives.
type Owner = coretether.Owner

// Ref is a late-bound handle to a constructed DOM node.
type Ref[E any] = coretether.Ref[E]

// NewSignal creates a new reactive signal with the given initial value.
//
// Example:
//
//	count := tether.NewSignal(0)
//	count.Set(1)
//	value := count.Get() // 1
func NewSignal[T any](initial T) *Signal[T] {
	return coretether.NewSignal(initial)
}

// NewRef creates an empty node ref, resolvable after mount.
func NewRef[E any]() *Ref[E] {
	return coretether.NewRef[E]()
}

// CreateEffect registers a side effect that re-runs when its dependencies
// change.
var CreateEffect = coretether.CreateEffect

// Batch groups signal writes into a single notification phase.
var Batch = coretether.Batch

// Untracked runs a function without dependency tracking.
var Untracked = coretether.Untracked

// OnMount runs a function once, at effect-creation time.
var OnMount = coretether.OnMount

// OnUnmount runs a function when the current scope is disposed.
var OnUnmount = coretether.OnUnmount

// NewOwner creates a disposal scope.
var NewOwner = coretether.NewOwner

// CleanupGoroutineContext releases the calling goroutine's tracking state.
// Call it before a goroutine that ran reactive work exits.
var CleanupGoroutineContext = coretether.CleanupGoroutineContext

// =============================================================================
// Error taxonomy (re-export)
// =============================================================================

// ErrUseAfterDispose: signal accessed after its scope was torn down.
var ErrUseAfterDispose = coretether.ErrUseAfterDispose

// ErrNotMounted: node ref forced before its element mounted.
var ErrNotMounted = coretether.ErrNotMounted

// ErrReentrantUpdateLimit: runaway effect recursion aborted.
var ErrReentrantUpdateLimit = coretether.ErrReentrantUpdateLimit
