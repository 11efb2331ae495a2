// Package bind associates reactive signals with DOM attributes and
// properties, and bridges native events back into signal writes.
//
// There are exactly two binding kinds per (element, name) pair, and they
// are mutually exclusive. An attribute binding writes once, at
// registration, and never fires again: it sets the initial rendered value
// and leaves interacted-with state alone (platform behavior that is not
// overridden here). A property binding is kept live by an effect: the DOM
// property equals the latest signal value immediately after every write.
package bind

import (
	"github.com/tether-ui/tether/pkg/dom"
	"github.com/tether-ui/tether/pkg/tether"
)

// Attr applies a one-shot attribute binding. read runs untracked, so later
// writes to whatever signals it consults never re-fire the attribute.
func Attr(el *dom.Element, name string, read func() string) {
	tether.Untracked(func() {
		el.SetAttribute(name, read())
	})
}

// BoolAttr applies a one-shot boolean attribute-presence binding.
func BoolAttr(el *dom.Element, name string, read func() bool) {
	tether.Untracked(func() {
		el.SetBoolAttribute(name, read())
	})
}

// Prop registers a live property binding: an effect that re-applies the
// property write whenever a signal read inside read changes. The write
// happens even when the value is unchanged; re-setting a property is how
// controlled inputs stay authoritative on every keystroke.
func Prop(el *dom.Element, name string, read func() any) *tether.Effect {
	return tether.CreateEffect(func() tether.Cleanup {
		el.SetProperty(name, read())
		return nil
	})
}

// Value binds the element's value property to sig, one way (signal to DOM).
func Value(el *dom.Element, sig *tether.Signal[string]) *tether.Effect {
	return Prop(el, "value", func() any { return sig.Get() })
}

// Checked binds the element's checked property to sig, one way.
func Checked(el *dom.Element, sig *tether.Signal[bool]) *tether.Effect {
	return Prop(el, "checked", func() any { return sig.Get() })
}

// On subscribes a handler to a native event on el. Returns the remover.
func On(el *dom.Element, typ string, h dom.Handler) func() {
	return el.AddEventListener(typ, h)
}

// Ref wires a tether.Ref to an element's mount lifecycle: attached exactly
// once when the element joins its parent, detached when the subtree is
// removed.
func Ref(el *dom.Element, ref *tether.Ref[*dom.Element]) {
	el.OnAttach(func(e *dom.Element) {
		ref.Attach(e)
	})
	el.OnDetach(func(*dom.Element) {
		ref.Detach()
	})
}
