package el

import (
	"github.com/tether-ui/tether/pkg/dom"
)

// Arg is anything an element constructor accepts: attributes, event
// listeners, bindings, refs, child elements, text.
type Arg interface {
	apply(e *dom.Element)
}

// binder is an Arg whose work must run after the element's children exist
// (select option bindings, textarea initial text).
type binder interface {
	Arg
	bind(e *dom.Element)
}

// createElement constructs an element against the current document and
// applies args in order. Attributes, listeners, and children apply
// immediately; bindings are deferred until every child is in place, so a
// select's options exist before its value binding scans them.
func createElement(tag string, args []any) *dom.Element {
	doc := dom.Current()
	if doc == nil {
		panic("el: no current document (construct elements inside Mount)")
	}

	e := doc.CreateElement(tag)
	var binders []binder

	for _, arg := range args {
		switch v := arg.(type) {
		case nil:
			// Allows conditional args.

		case binder:
			v.apply(e)
			binders = append(binders, v)

		case Arg:
			v.apply(e)

		case *dom.Element:
			e.AppendChild(v)

		case []*dom.Element:
			for _, c := range v {
				e.AppendChild(c)
			}

		case string:
			e.AppendChild(doc.CreateTextNode(v))

		default:
			panic("el: unsupported argument type")
		}
	}

	for _, b := range binders {
		b.bind(e)
	}

	return e
}

// Text creates a text node in the current document.
func Text(s string) *dom.Element {
	doc := dom.Current()
	if doc == nil {
		panic("el: no current document (construct elements inside Mount)")
	}
	return doc.CreateTextNode(s)
}

// Structure elements

// Div creates a <div>.
func Div(args ...any) *dom.Element { return createElement("div", args) }

// Span creates a <span>.
func Span(args ...any) *dom.Element { return createElement("span", args) }

// P creates a <p>.
func P(args ...any) *dom.Element { return createElement("p", args) }

// H1 creates an <h1>.
func H1(args ...any) *dom.Element { return createElement("h1", args) }

// H2 creates an <h2>.
func H2(args ...any) *dom.Element { return createElement("h2", args) }

// Form elements

// Form creates a <form>.
func Form(args ...any) *dom.Element { return createElement("form", args) }

// Input creates an <input>.
func Input(args ...any) *dom.Element { return createElement("input", args) }

// Textarea creates a <textarea>.
func Textarea(args ...any) *dom.Element { return createElement("textarea", args) }

// Select creates a <select>.
func Select(args ...any) *dom.Element { return createElement("select", args) }

// Option creates an <option>.
func Option(args ...any) *dom.Element { return createElement("option", args) }

// Button creates a <button>.
func Button(args ...any) *dom.Element { return createElement("button", args) }

// Label creates a <label>.
func Label(args ...any) *dom.Element { return createElement("label", args) }

// Fieldset creates a <fieldset>.
func Fieldset(args ...any) *dom.Element { return createElement("fieldset", args) }

// Legend creates a <legend>.
func Legend(args ...any) *dom.Element { return createElement("legend", args) }
