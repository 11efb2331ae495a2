package dom

import "testing"

func TestAttributeIsDefaultOnly(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")

	input.SetAttribute("value", "initial")
	if input.Value() != "initial" {
		t.Errorf("expected attribute default, got %q", input.Value())
	}

	// User edits dirty the element; the attribute no longer shows through.
	input.SetUserValue("edited")
	if input.Value() != "edited" {
		t.Errorf("expected live value, got %q", input.Value())
	}

	input.SetAttribute("value", "too-late")
	if input.Value() != "edited" {
		t.Errorf("attribute write changed a dirty element's live value: %q", input.Value())
	}
	if v, _ := input.Attribute("value"); v != "too-late" {
		t.Errorf("attribute itself should still update, got %q", v)
	}
}

func TestPropertyAlwaysWins(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")

	input.SetAttribute("value", "initial")
	input.SetUserValue("typed")
	input.SetProperty("value", "forced")

	if input.Value() != "forced" {
		t.Errorf("property write should overwrite live value, got %q", input.Value())
	}
}

func TestCheckedSemantics(t *testing.T) {
	d := NewDocument()
	box := d.CreateElement("input")
	box.SetAttribute("type", "checkbox")

	if box.Checked() {
		t.Error("unchecked by default")
	}

	box.SetBoolAttribute("checked", true)
	if !box.Checked() {
		t.Error("checked attribute should set the default")
	}

	box.SetUserChecked(false)
	if box.Checked() {
		t.Error("user uncheck should win over the attribute default")
	}
}

func TestTextareaValue(t *testing.T) {
	d := NewDocument()
	ta := d.CreateElement("textarea")
	ta.AppendChild(d.CreateTextNode("initial text"))

	if ta.Value() != "initial text" {
		t.Errorf("textarea initial value should come from child text, got %q", ta.Value())
	}

	ta.SetProperty("value", "live text")
	if ta.Value() != "live text" {
		t.Errorf("textarea live value should come from the property, got %q", ta.Value())
	}

	// The child text node stays untouched: live updates never re-render it.
	if ta.textContent() != "initial text" {
		t.Errorf("child text should be construction-time only, got %q", ta.textContent())
	}
}

func TestSelectValue(t *testing.T) {
	d := NewDocument()
	sel := d.CreateElement("select")
	for _, v := range []string{"A", "B", "C"} {
		opt := d.CreateElement("option")
		opt.SetAttribute("value", v)
		opt.AppendChild(d.CreateTextNode(v))
		sel.AppendChild(opt)
	}

	if sel.Value() != "" {
		t.Errorf("no option selected, expected empty value, got %q", sel.Value())
	}

	sel.Options()[1].SetProperty("selected", true)
	if sel.Value() != "B" {
		t.Errorf("expected selected option value B, got %q", sel.Value())
	}
}

func TestOptionValueFallsBackToText(t *testing.T) {
	d := NewDocument()
	opt := d.CreateElement("option")
	opt.AppendChild(d.CreateTextNode("Cherry"))

	if opt.OptionValue() != "Cherry" {
		t.Errorf("option without value attribute should use its text, got %q", opt.OptionValue())
	}
}

func TestMutationJournal(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")
	d.Body().AppendChild(input)
	d.TakeMutations() // drop the append entry

	input.SetProperty("value", "abc")
	input.SetAttribute("placeholder", "name")

	muts := d.TakeMutations()
	if len(muts) != 2 {
		t.Fatalf("expected 2 journal entries, got %d", len(muts))
	}
	if muts[0].Op != OpSetProp || muts[0].Name != "value" || muts[0].Value != "abc" {
		t.Errorf("unexpected first mutation: %+v", muts[0])
	}
	if muts[1].Op != OpSetAttr || muts[1].Name != "placeholder" {
		t.Errorf("unexpected second mutation: %+v", muts[1])
	}

	if len(d.TakeMutations()) != 0 {
		t.Error("journal should be drained")
	}
}

func TestUserValueDoesNotJournal(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")
	d.Body().AppendChild(input)
	d.TakeMutations()

	input.SetUserValue("typed")
	if len(d.TakeMutations()) != 0 {
		t.Error("user input must not echo back as a patch")
	}
}
