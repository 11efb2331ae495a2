package tether

import "testing"

func TestOwnerHierarchy(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)

	if child.Parent() != root {
		t.Error("child should have root as parent")
	}
	if root.Parent() != nil {
		t.Error("root should have no parent")
	}
}

func TestOwnerDisposeCascades(t *testing.T) {
	root := NewOwner(nil)
	child := NewOwner(root)
	grandchild := NewOwner(child)

	root.Dispose()

	if !child.IsDisposed() {
		t.Error("child should be disposed with root")
	}
	if !grandchild.IsDisposed() {
		t.Error("grandchild should be disposed with root")
	}
}

func TestOwnerCleanupOrder(t *testing.T) {
	owner := NewOwner(nil)

	var order []int
	owner.OnCleanup(func() { order = append(order, 1) })
	owner.OnCleanup(func() { order = append(order, 2) })
	owner.OnCleanup(func() { order = append(order, 3) })

	owner.Dispose()

	if len(order) != 3 || order[0] != 3 || order[1] != 2 || order[2] != 1 {
		t.Errorf("cleanups should run in reverse order, got %v", order)
	}
}

func TestOwnerCleanupAfterDispose(t *testing.T) {
	owner := NewOwner(nil)
	owner.Dispose()

	ran := false
	owner.OnCleanup(func() { ran = true })

	if !ran {
		t.Error("cleanup registered on a disposed owner should run immediately")
	}
}

func TestOwnerDisposeIdempotent(t *testing.T) {
	owner := NewOwner(nil)

	runs := 0
	owner.OnCleanup(func() { runs++ })

	owner.Dispose()
	owner.Dispose()

	if runs != 1 {
		t.Errorf("cleanup should run once, ran %d times", runs)
	}
}

func TestOwnerDisposesEffects(t *testing.T) {
	owner := NewOwner(nil)
	sig := NewSignal(0)

	ran := 0
	owner.Run(func() {
		CreateEffect(func() Cleanup {
			_ = sig.Get()
			ran++
			return nil
		})
	})

	owner.Dispose()

	sig.Set(1)
	if ran != 1 {
		t.Errorf("effect owned by disposed scope re-ran, ran %d times", ran)
	}
}

func TestOnUnmount(t *testing.T) {
	owner := NewOwner(nil)

	unmounted := false
	owner.Run(func() {
		OnUnmount(func() { unmounted = true })
	})

	if unmounted {
		t.Error("OnUnmount should not fire before dispose")
	}

	owner.Dispose()
	if !unmounted {
		t.Error("OnUnmount should fire on dispose")
	}
}
