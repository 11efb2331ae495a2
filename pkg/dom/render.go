package dom

import (
	"fmt"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Render serializes an element subtree to HTML, reflecting live state.
//
// Serialization resolves the attribute/property split the way a fresh page
// load would observe it: a written value property becomes the value attribute
// of the output, a written checked/selected property becomes attribute
// presence, a textarea's live value becomes its child text. Every element
// carries a data-tid attribute so the live client can address it in events
// and patches.
func Render(e *Element) string {
	var b strings.Builder
	if err := html.Render(&b, toHTMLNode(e)); err != nil {
		return ""
	}
	return b.String()
}

// toHTMLNode converts an Element into an x/net/html node tree with
// effective attributes applied.
func toHTMLNode(e *Element) *html.Node {
	if e.kind == KindText {
		return &html.Node{Type: html.TextNode, Data: e.text}
	}

	n := &html.Node{
		Type:     html.ElementNode,
		Data:     e.tag,
		DataAtom: atom.Lookup([]byte(e.tag)),
	}

	for _, attr := range effectiveAttrs(e) {
		n.Attr = append(n.Attr, html.Attribute{Key: attr[0], Val: attr[1]})
	}

	if e.tag == "textarea" {
		// Live value as child text; never serialize the stale children.
		n.AppendChild(&html.Node{Type: html.TextNode, Data: e.Value()})
		return n
	}

	for _, c := range e.children {
		n.AppendChild(toHTMLNode(c))
	}
	return n
}

// effectiveAttrs resolves an element's serialized attributes: declared
// attributes in insertion order, overridden or extended by live property
// state, plus the data-tid addressing attribute.
func effectiveAttrs(e *Element) [][2]string {
	out := make([][2]string, 0, len(e.attrOrder)+2)

	value, valueOverride := e.props["value"]
	checked, checkedOverride := e.props["checked"]
	selected, selectedOverride := e.props["selected"]

	for _, name := range e.attrOrder {
		switch {
		case name == "value" && valueOverride:
			continue // emitted from the property below
		case name == "checked" && checkedOverride:
			continue
		case name == "selected" && selectedOverride:
			continue
		}
		out = append(out, [2]string{name, e.attrs[name]})
	}

	if valueOverride && e.tag != "textarea" && e.tag != "select" {
		out = append(out, [2]string{"value", propString(value)})
	}
	if checkedOverride {
		if b, _ := checked.(bool); b {
			out = append(out, [2]string{"checked", ""})
		}
	}
	if selectedOverride {
		if b, _ := selected.(bool); b {
			out = append(out, [2]string{"selected", ""})
		}
	}

	out = append(out, [2]string{"data-tid", fmt.Sprintf("%d", e.id)})
	return out
}

func stringify(v any) string {
	return fmt.Sprintf("%v", v)
}
