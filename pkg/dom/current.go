package dom

import (
	"runtime"
	"sync"
)

// currentDocs stores the per-goroutine current document, set for the
// duration of a build or event dispatch so element constructors know which
// document owns the nodes they create.
var currentDocs sync.Map

func goroutineID() uint64 {
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

// Current returns the goroutine's current document, or nil outside
// WithCurrent.
func Current() *Document {
	if d, ok := currentDocs.Load(goroutineID()); ok {
		return d.(*Document)
	}
	return nil
}

// WithCurrent runs fn with d as the goroutine's current document.
func WithCurrent(d *Document, fn func()) {
	gid := goroutineID()
	prev, had := currentDocs.Load(gid)
	currentDocs.Store(gid, d)
	defer func() {
		if had {
			currentDocs.Store(gid, prev)
		} else {
			currentDocs.Delete(gid)
		}
	}()
	fn()
}

// Document returns the document that owns this element.
func (e *Element) Document() *Document { return e.doc }
