package dom

// Event is the dispatched event object handed to listeners. It wraps what
// a native browser event would carry: the target, a live value extraction
// helper, and default-action suppression.
type Event struct {
	// Type is the native event name: "input", "change", "submit", ...
	Type string

	// Target is the element the event was dispatched at.
	Target *Element

	// currentTarget is the element whose listener is currently running.
	currentTarget *Element

	defaultPrevented bool
	stopped          bool
}

// NewEvent creates an event for dispatch at target.
func NewEvent(typ string, target *Element) *Event {
	return &Event{Type: typ, Target: target}
}

// CurrentTarget returns the element whose listener is currently running.
func (ev *Event) CurrentTarget() *Element { return ev.currentTarget }

// TargetValue extracts the live value of the target element, resolved per
// element kind (input property/attribute fallback, textarea property or
// child text, select via its selected option).
func (ev *Event) TargetValue() string {
	if ev.Target == nil {
		return ""
	}
	return ev.Target.Value()
}

// TargetChecked extracts the live checked state of the target.
func (ev *Event) TargetChecked() bool {
	if ev.Target == nil {
		return false
	}
	return ev.Target.Checked()
}

// PreventDefault suppresses the default browser action. For submit events
// that is the page navigation/reload.
func (ev *Event) PreventDefault() { ev.defaultPrevented = true }

// DefaultPrevented reports whether PreventDefault was called.
func (ev *Event) DefaultPrevented() bool { return ev.defaultPrevented }

// StopPropagation stops the event from bubbling past the current element.
func (ev *Event) StopPropagation() { ev.stopped = true }

// Dispatch delivers an event at its target and bubbles it to the root.
// Listeners run in registration order per element; the default action (for
// submit: navigation) runs after propagation unless prevented. All of this
// is synchronous: Dispatch returns after every listener, and every
// signal-driven effect those listeners triggered, has completed.
func (d *Document) Dispatch(ev *Event) *Event {
	for node := ev.Target; node != nil; node = node.parent {
		ev.currentTarget = node
		// Copy so a listener removing itself doesn't skip its siblings.
		entries := make([]*listenerEntry, len(node.listeners[ev.Type]))
		copy(entries, node.listeners[ev.Type])
		for _, le := range entries {
			le.h(ev)
		}
		if ev.stopped {
			break
		}
	}

	if !ev.defaultPrevented {
		d.runDefaultAction(ev)
	}
	return ev
}

// runDefaultAction applies the browser's default behavior for the event.
func (d *Document) runDefaultAction(ev *Event) {
	if ev.Type == "submit" {
		action, _ := ev.Target.Attribute("action")
		d.navigate(action)
	}
}
