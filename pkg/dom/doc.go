// Package dom provides the in-memory DOM host surface the binding layer
// drives: elements with the browser's attribute/property split, event
// dispatch with bubbling, a mutation journal for the live wire, and an
// HTML serializer.
//
// Elements reproduce the platform behavior the binding contract depends on.
// The value attribute is only the default value of an input: once the value
// property has been written, by a binding or by user input, the attribute no
// longer shows through. Textareas have no value attribute at all; their
// initial value is the child text set at construction time. Selects carry no
// native value on the element; selection lives on the options.
//
// Nothing here talks to a real browser. The live package replays browser
// events into Dispatch and forwards journaled mutations back out as patches.
package dom
