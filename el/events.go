package el

import "github.com/tether-ui/tether/pkg/dom"

// Listener subscribes a handler to a native event at construction time.
type Listener struct {
	Event   string
	Handler dom.Handler
}

func (l Listener) apply(e *dom.Element) {
	if l.Event != "" && l.Handler != nil {
		e.AddEventListener(l.Event, l.Handler)
	}
}

// On subscribes a handler to an arbitrary native event name.
func On(event string, handler dom.Handler) Listener {
	return Listener{Event: event, Handler: handler}
}

// OnInput handles input events (fired as the value changes).
func OnInput(handler dom.Handler) Listener { return On("input", handler) }

// OnChange handles change events (fired when the value is committed).
func OnChange(handler dom.Handler) Listener { return On("change", handler) }

// OnSubmit handles form submit events.
func OnSubmit(handler dom.Handler) Listener { return On("submit", handler) }

// OnClick handles click events.
func OnClick(handler dom.Handler) Listener { return On("click", handler) }

// OnFocus handles focus events.
func OnFocus(handler dom.Handler) Listener { return On("focus", handler) }

// OnBlur handles blur events.
func OnBlur(handler dom.Handler) Listener { return On("blur", handler) }

// OnReset handles form reset events.
func OnReset(handler dom.Handler) Listener { return On("reset", handler) }
