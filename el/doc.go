// Package el is the declarative element-construction DSL: the surface a
// view-description compiler would emit. Constructors build live dom
// elements, register bindings (which create effects), and attach event
// listeners, all at construction time.
//
//	name := tether.NewSignal("Controlled")
//	form := el.Form(
//	    el.OnSubmit(func(ev *dom.Event) { ev.PreventDefault() }),
//	    el.Input(el.Type("text"), el.BindValue(name)),
//	)
//
// Constructors consult the goroutine's current document (see dom.Current),
// which the root handle establishes during Mount.
package el
