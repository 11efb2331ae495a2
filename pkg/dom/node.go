package dom

import "strings"

// Kind is the node type discriminator.
type Kind uint8

const (
	KindElement Kind = iota // <input>, <select>, etc.
	KindText                // plain text node
)

// Handler is an event listener callback.
type Handler func(*Event)

// Element is a live DOM node: tag, attributes, properties, children,
// listeners. Attributes and properties are deliberately separate stores.
// An attribute is the declarative default; a property is live state. For
// value-carrying elements the property wins over the attribute as soon as
// it has ever been written (the browser's value dirtiness rule).
type Element struct {
	kind Kind
	id   uint64
	tag  string
	text string // KindText only

	attrs     map[string]string
	attrOrder []string

	props map[string]any

	children []*Element
	parent   *Element
	doc      *Document

	listeners map[string][]*listenerEntry

	attachHooks []func(*Element)
	detachHooks []func(*Element)

	attached bool
}

// ID returns the document-assigned node identifier.
func (e *Element) ID() uint64 { return e.id }

// Tag returns the element's tag name, lower-cased.
func (e *Element) Tag() string { return e.tag }

// IsText reports whether this is a text node.
func (e *Element) IsText() bool { return e.kind == KindText }

// Text returns the text content of a text node.
func (e *Element) Text() string { return e.text }

// SetText replaces the content of a text node.
func (e *Element) SetText(text string) {
	if e.kind != KindText {
		return
	}
	e.text = text
	if e.doc != nil {
		e.doc.record(Mutation{Node: e.id, Op: OpSetText, Value: text})
	}
}

// Parent returns the parent element, nil when detached.
func (e *Element) Parent() *Element { return e.parent }

// Children returns the child nodes in document order.
func (e *Element) Children() []*Element { return e.children }

// =============================================================================
// Attributes
// =============================================================================

// SetAttribute sets an attribute. For value-carrying elements this is the
// initial rendered value only: once the value property has been written,
// the live value no longer reflects the attribute. That is platform
// behavior, not something the binding layer tries to override.
func (e *Element) SetAttribute(name, value string) {
	name = strings.ToLower(name)
	if _, ok := e.attrs[name]; !ok {
		e.attrOrder = append(e.attrOrder, name)
	}
	e.attrs[name] = value
	if e.doc != nil {
		e.doc.record(Mutation{Node: e.id, Op: OpSetAttr, Name: name, Value: value})
	}
}

// SetBoolAttribute toggles attribute presence. Present boolean attributes
// serialize as the empty string, absent ones are removed.
func (e *Element) SetBoolAttribute(name string, present bool) {
	if present {
		e.SetAttribute(name, "")
	} else {
		e.RemoveAttribute(name)
	}
}

// Attribute returns the attribute value and whether it is present.
func (e *Element) Attribute(name string) (string, bool) {
	v, ok := e.attrs[strings.ToLower(name)]
	return v, ok
}

// RemoveAttribute removes an attribute if present.
func (e *Element) RemoveAttribute(name string) {
	name = strings.ToLower(name)
	if _, ok := e.attrs[name]; !ok {
		return
	}
	delete(e.attrs, name)
	for i, n := range e.attrOrder {
		if n == name {
			e.attrOrder = append(e.attrOrder[:i], e.attrOrder[i+1:]...)
			break
		}
	}
	if e.doc != nil {
		e.doc.record(Mutation{Node: e.id, Op: OpRemoveAttr, Name: name})
	}
}

// =============================================================================
// Properties
// =============================================================================

// SetProperty writes a live DOM property. The write is always visible
// immediately, regardless of interaction history, and from then on it
// shadows the same-named attribute for value and checked.
func (e *Element) SetProperty(name string, value any) {
	name = strings.ToLower(name)
	e.props[name] = value
	if e.doc != nil {
		e.doc.record(Mutation{Node: e.id, Op: OpSetProp, Name: name, Value: propString(value)})
	}
}

// Property returns a property and whether it was ever written.
func (e *Element) Property(name string) (any, bool) {
	v, ok := e.props[strings.ToLower(name)]
	return v, ok
}

// SetUserValue is the user-interaction path: typing writes the value
// property but produces no journal entry (the client that originated the
// input already shows it).
func (e *Element) SetUserValue(value string) {
	e.props["value"] = value
}

// SetUserChecked is the user-interaction path for checkboxes and radios.
func (e *Element) SetUserChecked(checked bool) {
	e.props["checked"] = checked
}

// SetUserSelected is the user-interaction path for select controls:
// picking an option flips every option's selected property to match,
// again without journal entries.
func (e *Element) SetUserSelected(value string) {
	for _, opt := range e.Options() {
		opt.props["selected"] = opt.OptionValue() == value
	}
}

// Value returns the element's live value, resolved per element kind:
//
//   - input: the value property once written, otherwise the value
//     attribute's default, otherwise "".
//   - textarea: the value property once written, otherwise the child text
//     supplied at construction. There is no value attribute.
//   - select: the value of the selected option, "" when none is selected.
//     The select element itself carries no native value.
func (e *Element) Value() string {
	switch e.tag {
	case "select":
		if opt := e.SelectedOption(); opt != nil {
			return opt.OptionValue()
		}
		return ""
	case "textarea":
		if v, ok := e.props["value"]; ok {
			return propString(v)
		}
		return e.textContent()
	default:
		if v, ok := e.props["value"]; ok {
			return propString(v)
		}
		if v, ok := e.attrs["value"]; ok {
			return v
		}
		return ""
	}
}

// Checked returns the live checked state: the property once written,
// otherwise the checked attribute's default.
func (e *Element) Checked() bool {
	if v, ok := e.props["checked"]; ok {
		b, _ := v.(bool)
		return b
	}
	_, ok := e.attrs["checked"]
	return ok
}

// textContent concatenates the direct child text nodes.
func (e *Element) textContent() string {
	var b strings.Builder
	for _, c := range e.children {
		if c.kind == KindText {
			b.WriteString(c.text)
		}
	}
	return b.String()
}

// =============================================================================
// Select / option helpers
// =============================================================================

// Options returns the option children of a select, in document order.
func (e *Element) Options() []*Element {
	var opts []*Element
	for _, c := range e.children {
		if c.kind == KindElement && c.tag == "option" {
			opts = append(opts, c)
		}
	}
	return opts
}

// OptionValue returns an option's value: the value attribute when present,
// otherwise the option's text.
func (e *Element) OptionValue() string {
	if v, ok := e.attrs["value"]; ok {
		return v
	}
	return e.textContent()
}

// Selected returns an option's live selected state: the property once
// written, otherwise the selected attribute's default.
func (e *Element) Selected() bool {
	if v, ok := e.props["selected"]; ok {
		b, _ := v.(bool)
		return b
	}
	_, ok := e.attrs["selected"]
	return ok
}

// SelectedOption returns the first selected option of a select, or nil.
func (e *Element) SelectedOption() *Element {
	for _, opt := range e.Options() {
		if opt.Selected() {
			return opt
		}
	}
	return nil
}

// =============================================================================
// Tree
// =============================================================================

// AppendChild attaches child as the last child of e. Attach hooks for the
// appended subtree fire synchronously, before AppendChild returns, so refs
// are resolvable before any handler on the subtree can run.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child.parent == e {
		return
	}
	if child.parent != nil {
		child.parent.RemoveChild(child)
	}

	child.parent = e
	e.children = append(e.children, child)

	if e.doc != nil {
		e.doc.adopt(child)
		e.doc.record(Mutation{Node: e.id, Op: OpAppend, Value: Render(child)})
	}

	child.fireAttach()
}

// RemoveChild detaches child from e, firing detach hooks for the subtree.
func (e *Element) RemoveChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			child.fireDetach()
			if e.doc != nil {
				e.doc.record(Mutation{Node: child.id, Op: OpRemove})
			}
			return
		}
	}
}

// OnAttach registers fn to run when this element is attached to a parent.
// If the element already has a parent, fn runs immediately.
func (e *Element) OnAttach(fn func(*Element)) {
	if e.attached {
		fn(e)
		return
	}
	e.attachHooks = append(e.attachHooks, fn)
}

// OnDetach registers fn to run when this element's subtree is removed.
func (e *Element) OnDetach(fn func(*Element)) {
	e.detachHooks = append(e.detachHooks, fn)
}

func (e *Element) fireAttach() {
	if !e.attached {
		e.attached = true
		for _, fn := range e.attachHooks {
			fn(e)
		}
	}
	for _, c := range e.children {
		c.fireAttach()
	}
}

func (e *Element) fireDetach() {
	for _, c := range e.children {
		c.fireDetach()
	}
	if e.attached {
		e.attached = false
		for _, fn := range e.detachHooks {
			fn(e)
		}
	}
}

// =============================================================================
// Listeners
// =============================================================================

// AddEventListener subscribes a handler to a native event name ("input",
// "change", "submit", ...). The returned function removes the listener.
func (e *Element) AddEventListener(typ string, h Handler) func() {
	typ = strings.ToLower(typ)
	entry := &listenerEntry{h: h}
	e.listeners[typ] = append(e.listeners[typ], entry)

	return func() {
		hs := e.listeners[typ]
		for i, le := range hs {
			if le == entry {
				e.listeners[typ] = append(hs[:i], hs[i+1:]...)
				return
			}
		}
	}
}

type listenerEntry struct {
	h Handler
}

func propString(v any) string {
	switch t := v.(type) {
	case string:
		return t
	case bool:
		if t {
			return "true"
		}
		return "false"
	case nil:
		return ""
	default:
		return stringify(t)
	}
}
