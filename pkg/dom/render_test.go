package dom

import (
	"strings"
	"testing"
)

func TestRenderReflectsLiveValue(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")
	input.SetAttribute("value", "initial")
	input.SetProperty("value", "live")

	out := Render(input)
	if !strings.Contains(out, `value="live"`) {
		t.Errorf("render should reflect the live property, got %s", out)
	}
	if strings.Contains(out, "initial") {
		t.Errorf("stale attribute default leaked into render: %s", out)
	}
}

func TestRenderTextareaChildText(t *testing.T) {
	d := NewDocument()
	ta := d.CreateElement("textarea")
	ta.AppendChild(d.CreateTextNode("first"))
	ta.SetProperty("value", "second")

	out := Render(ta)
	if !strings.Contains(out, ">second</textarea>") {
		t.Errorf("textarea should serialize its live value as child text, got %s", out)
	}
}

func TestRenderCheckedPresence(t *testing.T) {
	d := NewDocument()
	box := d.CreateElement("input")
	box.SetAttribute("type", "checkbox")
	box.SetProperty("checked", true)

	out := Render(box)
	if !strings.Contains(out, `checked=""`) {
		t.Errorf("checked property should serialize as attribute presence, got %s", out)
	}

	box.SetProperty("checked", false)
	out = Render(box)
	if strings.Contains(out, "checked") {
		t.Errorf("unchecked property should serialize as absent attribute, got %s", out)
	}
}

func TestRenderAssignsNodeIDs(t *testing.T) {
	d := NewDocument()
	input := d.CreateElement("input")

	if !strings.Contains(Render(input), "data-tid=") {
		t.Error("rendered elements should carry their node id")
	}
}
