package el

import (
	"github.com/tether-ui/tether/pkg/bind"
	"github.com/tether-ui/tether/pkg/dom"
	"github.com/tether-ui/tether/pkg/tether"
)

// bindArg defers binding work until the element's children exist.
type bindArg struct {
	fn func(e *dom.Element)
}

func (bindArg) apply(*dom.Element) {}

func (b bindArg) bind(e *dom.Element) { b.fn(e) }

// BindValue makes sig the source of truth for the element (controlled
// pattern): the element-appropriate property binding plus the event wire
// back into the signal. On a textarea it also supplies the initial value
// as construction-time child text, since textareas have no value
// attribute.
func BindValue(sig *tether.Signal[string]) Arg {
	return bindArg{fn: func(e *dom.Element) {
		if e.Tag() == "textarea" && len(e.Children()) == 0 {
			e.AppendChild(e.Document().CreateTextNode(sig.Peek()))
		}
		bind.Controlled(e, sig)
	}}
}

// BindChecked makes sig the source of truth for a checkbox.
func BindChecked(sig *tether.Signal[bool]) Arg {
	return bindArg{fn: func(e *dom.Element) {
		bind.ControlledCheckbox(e, sig)
	}}
}

// PropValue binds the value property one way, signal to DOM, with no event
// wire back. The DOM property tracks the signal; user edits flow nowhere.
func PropValue(sig *tether.Signal[string]) Arg {
	return bindArg{fn: func(e *dom.Element) {
		bind.Value(e, sig)
	}}
}

// Prop binds an arbitrary property to a derived read.
func Prop(name string, read func() any) Arg {
	return bindArg{fn: func(e *dom.Element) {
		bind.Prop(e, name, read)
	}}
}

// AttrValue writes the value attribute once from the signal's current
// value: the uncontrolled initial value. Later signal writes never touch
// the attribute.
func AttrValue(sig *tether.Signal[string]) Arg {
	return bindArg{fn: func(e *dom.Element) {
		bind.Attr(e, "value", func() string { return sig.Get() })
	}}
}

// Ref attaches a node ref to the element's mount lifecycle.
func Ref(ref *tether.Ref[*dom.Element]) Arg {
	return bindArg{fn: func(e *dom.Element) {
		bind.Ref(e, ref)
	}}
}
