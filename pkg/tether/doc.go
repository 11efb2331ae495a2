// Package tether implements the reactive core: signals, effects, owner
// scopes, refs, and batching.
//
// # Signals and Effects
//
// A Signal is a reactive value container. Reading it inside an effect body
// subscribes the effect; writing it re-runs every subscriber synchronously,
// in registration order, before the write returns. Writes never skip on
// equality: a controlled input re-applies its DOM property on every
// keystroke whether or not the string changed.
//
//	name := tether.NewSignal("Controlled")
//	tether.CreateEffect(func() tether.Cleanup {
//	    input.SetProperty("value", name.Get())
//	    return nil
//	})
//	name.Set("abc") // the property write above has happened by now
//
// # Ownership
//
// Owner scopes form a tree. Disposing a scope disposes every signal,
// effect, and child scope created under it and clears subscriber sets.
// Reads of a disposed signal fail with ErrUseAfterDispose rather than
// returning stale data.
//
// # Reentrancy
//
// An effect that writes its own dependency re-runs immediately. The
// per-goroutine update depth is bounded by MaxUpdateDepth; a runaway cycle
// aborts with ErrReentrantUpdateLimit instead of hanging.
package tether
