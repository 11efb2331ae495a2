package tether

import (
	"sync"
	"sync/atomic"
)

// Owner is a scope that owns reactive primitives. Disposing an Owner
// disposes every signal, effect, and child scope created under it and runs
// registered cleanups. Scopes form a tree mirroring the UI tree: the root
// handle owns one root scope, each mounted subtree gets a child.
type Owner struct {
	id uint64

	// parent is the parent scope, nil for a root.
	parent *Owner

	// children are child scopes.
	children   []*Owner
	childrenMu sync.Mutex

	// effects owned by this scope.
	effects   []*Effect
	effectsMu sync.Mutex

	// signals owned by this scope, held type-erased for disposal.
	signals   []*signalBase
	signalsMu sync.Mutex

	// cleanups are manual cleanup functions registered via OnCleanup.
	cleanups   []func()
	cleanupsMu sync.Mutex

	// disposed flips once Dispose has started.
	disposed atomic.Bool
}

// NewOwner creates a new scope under parent. A nil parent creates a root.
func NewOwner(parent *Owner) *Owner {
	o := &Owner{
		id:     nextID(),
		parent: parent,
	}

	if parent != nil {
		parent.addChild(o)
	}

	return o
}

// ID returns the unique identifier for this scope.
func (o *Owner) ID() uint64 {
	return o.id
}

// Parent returns the parent scope, or nil for a root.
func (o *Owner) Parent() *Owner {
	return o.parent
}

// IsDisposed reports whether this scope has been disposed.
func (o *Owner) IsDisposed() bool {
	return o.disposed.Load()
}

func (o *Owner) addChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()
	o.children = append(o.children, child)
}

func (o *Owner) removeChild(child *Owner) {
	o.childrenMu.Lock()
	defer o.childrenMu.Unlock()

	for i, c := range o.children {
		if c == child {
			o.children = append(o.children[:i], o.children[i+1:]...)
			return
		}
	}
}

// registerEffect adds an effect to this scope for disposal.
func (o *Owner) registerEffect(e *Effect) {
	if o.disposed.Load() {
		return
	}

	o.effectsMu.Lock()
	defer o.effectsMu.Unlock()
	o.effects = append(o.effects, e)
}

// registerSignal adds a signal to this scope for disposal.
func (o *Owner) registerSignal(s *signalBase) {
	if o.disposed.Load() {
		return
	}

	o.signalsMu.Lock()
	defer o.signalsMu.Unlock()
	o.signals = append(o.signals, s)
}

// OnCleanup registers a cleanup function to run when this scope is disposed.
// If the scope is already disposed the cleanup runs immediately.
func (o *Owner) OnCleanup(fn func()) {
	if o.disposed.Load() {
		fn()
		return
	}

	o.cleanupsMu.Lock()
	defer o.cleanupsMu.Unlock()
	o.cleanups = append(o.cleanups, fn)
}

// Run executes fn with this scope as the current owner, so signals and
// effects created inside belong to it.
func (o *Owner) Run(fn func()) {
	WithOwner(o, fn)
}

// Dispose tears down this scope: children first (in reverse creation
// order), then effects, then signals, then cleanups in reverse order.
// Subscriber sets are cleared synchronously so no reactive garbage keeps
// disposed listeners alive.
func (o *Owner) Dispose() {
	if o.disposed.Swap(true) {
		return
	}

	if o.parent != nil {
		o.parent.removeChild(o)
	}

	o.childrenMu.Lock()
	children := make([]*Owner, len(o.children))
	copy(children, o.children)
	o.children = nil
	o.childrenMu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Dispose()
	}

	o.effectsMu.Lock()
	effects := o.effects
	o.effects = nil
	o.effectsMu.Unlock()

	for _, e := range effects {
		e.Dispose()
	}

	o.signalsMu.Lock()
	signals := o.signals
	o.signals = nil
	o.signalsMu.Unlock()

	for _, s := range signals {
		s.dispose()
	}

	o.cleanupsMu.Lock()
	cleanups := o.cleanups
	o.cleanups = nil
	o.cleanupsMu.Unlock()

	for i := len(cleanups) - 1; i >= 0; i-- {
		cleanups[i]()
	}
}
