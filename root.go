package tether

import (
	"errors"
	"fmt"
	"log/slog"

	"github.com/tether-ui/tether/pkg/dom"
	coretether "github.com/tether-ui/tether/pkg/tether"
)

// Root is the explicit process-wide UI root handle: one mounted element
// tree plus the owner scope that holds every signal, effect, and ref the
// build created. There is no ambient mount point; attaching and detaching
// are explicit lifecycle steps.
type Root struct {
	doc    *dom.Document
	owner  *coretether.Owner
	el     *dom.Element
	logger *slog.Logger
	closed bool
}

// Mount runs build with doc as the current document and a fresh root owner
// scope, then attaches the result to the document body. Element
// constructors, bindings, and refs inside build are all wired before Mount
// returns.
func Mount(doc *dom.Document, build func() *dom.Element) *Root {
	owner := coretether.NewOwner(nil)

	var root *dom.Element
	coretether.WithOwner(owner, func() {
		dom.WithCurrent(doc, func() {
			root = build()
		})
	})

	doc.Body().AppendChild(root)

	return &Root{
		doc:    doc,
		owner:  owner,
		el:     root,
		logger: slog.Default(),
	}
}

// WithLogger replaces the root's logger.
func (r *Root) WithLogger(logger *slog.Logger) *Root {
	r.logger = logger
	return r
}

// Document returns the document this root is mounted into.
func (r *Root) Document() *dom.Document { return r.doc }

// Element returns the mounted root element.
func (r *Root) Element() *dom.Element { return r.el }

// Owner returns the root owner scope.
func (r *Root) Owner() *coretether.Owner { return r.owner }

// Dispatch delivers an event into the mounted tree and runs the update
// cycle it triggers to completion. A runaway cycle
// (ErrReentrantUpdateLimit) or a disposed-signal access inside a handler
// is recovered here: the cycle aborts, the error is logged and returned,
// and the root stays usable.
func (r *Root) Dispatch(ev *dom.Event) (err error) {
	defer func() {
		if rec := recover(); rec != nil {
			recErr, ok := rec.(error)
			if !ok || !isUpdateError(recErr) {
				panic(rec)
			}
			r.logger.Error("update cycle aborted",
				"event", ev.Type,
				"error", recErr,
			)
			err = fmt.Errorf("dispatch %s: %w", ev.Type, recErr)
		}
	}()

	dom.WithCurrent(r.doc, func() {
		r.owner.Run(func() {
			r.doc.Dispatch(ev)
		})
	})
	return nil
}

func isUpdateError(err error) bool {
	return errors.Is(err, coretether.ErrReentrantUpdateLimit) ||
		errors.Is(err, coretether.ErrUseAfterDispose) ||
		errors.Is(err, coretether.ErrNotMounted)
}

// Close detaches the root element and disposes the root scope: effects
// stop, signal subscriber sets clear, refs detach. Safe to call twice.
func (r *Root) Close() {
	if r.closed {
		return
	}
	r.closed = true

	r.doc.Body().RemoveChild(r.el)
	r.owner.Dispose()
}
