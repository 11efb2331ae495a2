package dom

import (
	"sync"
)

// MutationOp identifies a journal entry kind.
type MutationOp uint8

const (
	OpSetAttr MutationOp = iota + 1
	OpRemoveAttr
	OpSetProp
	OpSetText
	OpAppend
	OpRemove
)

// String returns the wire name of the op.
func (op MutationOp) String() string {
	switch op {
	case OpSetAttr:
		return "set-attr"
	case OpRemoveAttr:
		return "remove-attr"
	case OpSetProp:
		return "set-prop"
	case OpSetText:
		return "set-text"
	case OpAppend:
		return "append"
	case OpRemove:
		return "remove"
	default:
		return "unknown"
	}
}

// Mutation is one journal entry: a DOM change that a connected client has
// not seen yet. For OpAppend, Value carries the rendered HTML of the new
// subtree.
type Mutation struct {
	Node  uint64
	Op    MutationOp
	Name  string
	Value string
}

// Document owns an element tree, assigns node identifiers, journals
// mutations for the live wire, and dispatches events.
type Document struct {
	body *Element

	nextID  uint64
	byID    map[uint64]*Element
	journal []Mutation

	// navigations counts default form-submit navigations that were not
	// prevented. A browser would reload the page here.
	navigations int
	pendingNav  []string

	mu sync.Mutex
}

// NewDocument creates a document with an empty body element.
func NewDocument() *Document {
	d := &Document{
		byID: make(map[uint64]*Element),
	}
	d.body = d.CreateElement("body")
	d.body.attached = true
	return d
}

// Body returns the document's root element.
func (d *Document) Body() *Element { return d.body }

// CreateElement constructs a detached element owned by this document.
func (d *Document) CreateElement(tag string) *Element {
	e := &Element{
		kind:      KindElement,
		tag:       tag,
		attrs:     make(map[string]string),
		props:     make(map[string]any),
		listeners: make(map[string][]*listenerEntry),
		doc:       d,
	}
	d.register(e)
	return e
}

// CreateTextNode constructs a detached text node owned by this document.
func (d *Document) CreateTextNode(text string) *Element {
	e := &Element{
		kind: KindText,
		text: text,
		doc:  d,
	}
	d.register(e)
	return e
}

// ByID returns the element with the given node identifier, or nil.
func (d *Document) ByID(id uint64) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.byID[id]
}

func (d *Document) register(e *Element) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.nextID++
	e.id = d.nextID
	d.byID[e.id] = e
}

// adopt re-registers a subtree created against another document.
func (d *Document) adopt(e *Element) {
	if e.doc == d {
		return
	}
	e.doc = d
	d.register(e)
	for _, c := range e.children {
		d.adopt(c)
	}
}

func (d *Document) record(m Mutation) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.journal = append(d.journal, m)
}

// TakeMutations drains the mutation journal. The live session calls this
// after each dispatch and turns the entries into patch frames.
func (d *Document) TakeMutations() []Mutation {
	d.mu.Lock()
	defer d.mu.Unlock()
	j := d.journal
	d.journal = nil
	return j
}

// NavigationCount returns how many unprevented submits have "navigated".
func (d *Document) NavigationCount() int {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.navigations
}

// TakeNavigations drains the pending navigation URLs in order. A submit
// whose form has no action attribute records an empty URL, meaning
// "reload the current location".
func (d *Document) TakeNavigations() []string {
	d.mu.Lock()
	defer d.mu.Unlock()
	urls := d.pendingNav
	d.pendingNav = nil
	return urls
}

func (d *Document) navigate(url string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.navigations++
	d.pendingNav = append(d.pendingNav, url)
}
