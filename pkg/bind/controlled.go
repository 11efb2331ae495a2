package bind

import (
	"github.com/tether-ui/tether/pkg/dom"
	"github.com/tether-ui/tether/pkg/tether"
)

// Controlled makes sig the source of truth for el's value, both ways:
// a live property binding keeps the DOM reflecting the signal, and the
// element-appropriate native event writes user input back into the signal.
//
// The wiring is resolved per element kind at registration time:
//
//	input     value property        + input event
//	textarea  value property        + input event (no value attribute exists;
//	          the initial value is the child text set at construction)
//	select    per-option selected   + change event (no native value
//	          property exists on the select element itself)
func Controlled(el *dom.Element, sig *tether.Signal[string]) {
	if el.Tag() == "select" {
		ControlledSelect(el, sig)
		return
	}

	Value(el, sig)
	On(el, "input", func(ev *dom.Event) {
		sig.Set(ev.TargetValue())
	})
}

// ControlledCheckbox makes sig the source of truth for a checkbox.
func ControlledCheckbox(el *dom.Element, sig *tether.Signal[bool]) {
	Checked(el, sig)
	On(el, "change", func(ev *dom.Event) {
		sig.Set(ev.TargetChecked())
	})
}

// ControlledSelect binds a select's options to sig. Each option gets its
// own live selected binding, computed as optionValue == signalValue, bound
// independently: the select element itself has no value attribute or
// property to bind. Exactly one option is selected while the signal matches
// one option's value; none when it matches none.
//
// Only options present at registration are bound. An option appended later
// needs its own OptionSelected call.
func ControlledSelect(sel *dom.Element, sig *tether.Signal[string]) {
	for _, opt := range sel.Options() {
		OptionSelected(opt, sig)
	}
	On(sel, "change", func(ev *dom.Event) {
		sig.Set(ev.TargetValue())
	})
}

// OptionSelected binds one option's selected property to equality between
// its value and the signal. The option's value is captured at registration.
func OptionSelected(opt *dom.Element, sig *tether.Signal[string]) *tether.Effect {
	value := opt.OptionValue()
	return tether.CreateEffect(func() tether.Cleanup {
		opt.SetProperty("selected", value == sig.Get())
		return nil
	})
}
