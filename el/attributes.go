package el

import (
	"strconv"

	"github.com/tether-ui/tether/pkg/dom"
)

// Attr is a one-shot attribute argument: written once at construction,
// never re-fired.
type Attr struct {
	Key string
	Val string
}

func (a Attr) apply(e *dom.Element) {
	if a.Key != "" {
		e.SetAttribute(a.Key, a.Val)
	}
}

// BoolAttr is a one-shot boolean attribute-presence argument.
type BoolAttr struct {
	Key     string
	Present bool
}

func (a BoolAttr) apply(e *dom.Element) {
	if a.Key != "" {
		e.SetBoolAttribute(a.Key, a.Present)
	}
}

func attr(key, val string) Attr { return Attr{Key: key, Val: val} }

// Identity attributes

// ID sets the id attribute.
func ID(id string) Attr { return attr("id", id) }

// Class sets the class attribute.
func Class(class string) Attr { return attr("class", class) }

// Form input attributes

// Type sets the type attribute.
func Type(t string) Attr { return attr("type", t) }

// Name sets the name attribute.
func Name(name string) Attr { return attr("name", name) }

// Placeholder sets the placeholder attribute.
func Placeholder(text string) Attr { return attr("placeholder", text) }

// For sets the for attribute (for labels).
func For(id string) Attr { return attr("for", id) }

// Rows sets the rows attribute.
func Rows(n int) Attr { return attr("rows", strconv.Itoa(n)) }

// Cols sets the cols attribute.
func Cols(n int) Attr { return attr("cols", strconv.Itoa(n)) }

// Action sets the action attribute.
func Action(url string) Attr { return attr("action", url) }

// Method sets the method attribute.
func Method(m string) Attr { return attr("method", m) }

// Form state attributes

// Disabled sets the disabled attribute.
func Disabled() BoolAttr { return BoolAttr{Key: "disabled", Present: true} }

// Readonly sets the readonly attribute.
func Readonly() BoolAttr { return BoolAttr{Key: "readonly", Present: true} }

// Required sets the required attribute.
func Required() BoolAttr { return BoolAttr{Key: "required", Present: true} }

// Checked sets the checked attribute (the default checked state).
func Checked() BoolAttr { return BoolAttr{Key: "checked", Present: true} }

// Selected sets the selected attribute (the default selected option).
func Selected() BoolAttr { return BoolAttr{Key: "selected", Present: true} }

// Multiple sets the multiple attribute.
func Multiple() BoolAttr { return BoolAttr{Key: "multiple", Present: true} }

// Value sets the value attribute on a native element.
//
// The unqualified form is ambiguous, and the ambiguity is preserved rather
// than silently unified: a string argument writes the string-valued value
// attribute (the initial value of an input); a bool argument toggles bare
// attribute presence, the way boolean attributes behave. Callers who mean
// the live value want BindValue or PropValue instead.
func Value(v any) Arg {
	switch t := v.(type) {
	case string:
		return attr("value", t)
	case bool:
		return BoolAttr{Key: "value", Present: t}
	default:
		return attr("value", stringifyAttr(t))
	}
}

func stringifyAttr(v any) string {
	switch t := v.(type) {
	case int:
		return strconv.Itoa(t)
	case float64:
		return strconv.FormatFloat(t, 'g', -1, 64)
	default:
		return ""
	}
}
