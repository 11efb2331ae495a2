package tether

import "testing"

func TestCleanupGoroutineContext(t *testing.T) {
	done := make(chan struct{})
	var gid uint64
	var hadEntry, hasEntry bool

	go func() {
		defer close(done)

		sig := NewSignal(1)
		sig.Set(2)
		if got := sig.Get(); got != 2 {
			t.Errorf("Get() = %d, want 2", got)
		}

		gid = getGoroutineID()
		_, hadEntry = trackingContexts.Load(gid)

		CleanupGoroutineContext()
		_, hasEntry = trackingContexts.Load(gid)
	}()
	<-done

	if !hadEntry {
		t.Fatal("expected a tracking context after reactive work")
	}
	if hasEntry {
		t.Errorf("tracking context for goroutine %d still present after cleanup", gid)
	}
}

func TestCleanupGoroutineContextIsolated(t *testing.T) {
	// Cleanup on one goroutine must not touch another goroutine's context.
	ctx := getTrackingContext()
	ctx.batchDepth = 3

	done := make(chan struct{})
	go func() {
		defer close(done)
		getTrackingContext()
		CleanupGoroutineContext()
	}()
	<-done

	if got := getBatchDepth(); got != 3 {
		t.Errorf("batchDepth = %d, want 3", got)
	}
	ctx.batchDepth = 0
}
