package live

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tether-ui/tether"
	"github.com/tether-ui/tether/el"
	"github.com/tether-ui/tether/pkg/dom"
	"github.com/tether-ui/tether/pkg/protocol"
)

func newTestSession(t *testing.T, build Builder) (*Session, *dom.Document) {
	t.Helper()
	doc := dom.NewDocument()
	root := tether.Mount(doc, build)
	sess := NewSession(root, nil, DefaultSessionConfig(), nil)
	t.Cleanup(sess.Close)
	return sess, doc
}

func patchOps(ps *protocol.PatchSet) []protocol.PatchOp {
	ops := make([]protocol.PatchOp, len(ps.Patches))
	for i, p := range ps.Patches {
		ops[i] = p.Op
	}
	return ops
}

func TestHandleEventControlledInput(t *testing.T) {
	text := tether.NewSignal("")
	var input *dom.Element
	sess, _ := newTestSession(t, func() *dom.Element {
		input = el.Input(el.Type("text"), el.BindValue(text))
		return el.Div(input)
	})

	ps, err := sess.HandleEvent(&protocol.Event{
		Seq: 1, Node: input.ID(), Type: protocol.EventInput, Value: "abc",
	})
	require.NoError(t, err)

	assert.Equal(t, "abc", text.Get())
	assert.Equal(t, "abc", input.Value())

	// The binding effect re-applied the value property, which is the one
	// patch the client needs to stay converged.
	found := false
	for _, p := range ps.Patches {
		if p.Op == protocol.PatchSetProp && p.Node == input.ID() && p.Name == "value" {
			found = true
			assert.Equal(t, "abc", p.Value)
		}
	}
	assert.True(t, found, "expected set-prop value patch, got %v", patchOps(ps))
}

func TestHandleEventCheckbox(t *testing.T) {
	agreed := tether.NewSignal(false)
	var box *dom.Element
	sess, _ := newTestSession(t, func() *dom.Element {
		box = el.Input(el.Type("checkbox"), el.BindChecked(agreed))
		return el.Div(box)
	})

	_, err := sess.HandleEvent(&protocol.Event{
		Node: box.ID(), Type: protocol.EventChange, Checked: true,
	})
	require.NoError(t, err)
	assert.True(t, agreed.Get())
	assert.True(t, box.Checked())
}

func TestHandleEventSelect(t *testing.T) {
	choice := tether.NewSignal("A")
	var sel *dom.Element
	sess, _ := newTestSession(t, func() *dom.Element {
		sel = el.Select(
			el.Option(el.Value("A"), "A"),
			el.Option(el.Value("B"), "B"),
			el.Option(el.Value("C"), "C"),
			el.BindValue(choice),
		)
		return el.Div(sel)
	})

	_, err := sess.HandleEvent(&protocol.Event{
		Node: sel.ID(), Type: protocol.EventChange, Value: "C",
	})
	require.NoError(t, err)
	assert.Equal(t, "C", choice.Get())
	assert.Equal(t, "C", sel.Value())
}

func TestHandleEventSubmitNavigates(t *testing.T) {
	var form *dom.Element
	sess, _ := newTestSession(t, func() *dom.Element {
		form = el.Form(el.Action("/done"), el.Input(el.Type("text")))
		return form
	})

	ps, err := sess.HandleEvent(&protocol.Event{Node: form.ID(), Type: protocol.EventSubmit})
	require.NoError(t, err)

	require.Len(t, ps.Patches, 1)
	assert.Equal(t, protocol.PatchNavigate, ps.Patches[0].Op)
	assert.Equal(t, "/done", ps.Patches[0].Value)
}

func TestHandleEventSubmitPrevented(t *testing.T) {
	var form *dom.Element
	sess, _ := newTestSession(t, func() *dom.Element {
		form = el.Form(
			el.Action("/done"),
			el.OnSubmit(func(ev *dom.Event) { ev.PreventDefault() }),
		)
		return form
	})

	ps, err := sess.HandleEvent(&protocol.Event{Node: form.ID(), Type: protocol.EventSubmit})
	require.NoError(t, err)
	for _, p := range ps.Patches {
		assert.NotEqual(t, protocol.PatchNavigate, p.Op)
	}
}

func TestHandleEventUnknownNode(t *testing.T) {
	sess, _ := newTestSession(t, func() *dom.Element {
		return el.Div()
	})

	_, err := sess.HandleEvent(&protocol.Event{Node: 9999, Type: protocol.EventClick})
	assert.ErrorIs(t, err, ErrUnknownNode)
}

func TestHandleEventSequenceIncrements(t *testing.T) {
	var btn *dom.Element
	sess, _ := newTestSession(t, func() *dom.Element {
		btn = el.Button(el.OnClick(func(ev *dom.Event) {}), "go")
		return btn
	})

	first, err := sess.HandleEvent(&protocol.Event{Node: btn.ID(), Type: protocol.EventClick})
	require.NoError(t, err)
	second, err := sess.HandleEvent(&protocol.Event{Node: btn.ID(), Type: protocol.EventClick})
	require.NoError(t, err)
	assert.Equal(t, first.Seq+1, second.Seq)
}

func TestHandleEventDispatchErrorStillCollects(t *testing.T) {
	var counter *tether.Signal[int]
	var btn *dom.Element
	sess, _ := newTestSession(t, func() *dom.Element {
		counter = tether.NewSignal(0)
		// Once triggered this effect re-arms itself forever; the depth
		// guard aborts the update and Dispatch surfaces the error.
		tether.CreateEffect(func() tether.Cleanup {
			if v := counter.Get(); v > 0 {
				counter.Set(v + 1)
			}
			return nil
		})
		btn = el.Button(el.OnClick(func(ev *dom.Event) {
			counter.Set(1)
		}), "boom")
		return btn
	})

	ps, err := sess.HandleEvent(&protocol.Event{Node: btn.ID(), Type: protocol.EventClick})
	assert.ErrorIs(t, err, tether.ErrReentrantUpdateLimit)
	assert.NotNil(t, ps)
}
