package components

import (
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"
)

func press(code rune) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: code}
}

func pressText(s string) tea.KeyPressMsg {
	return tea.KeyPressMsg{Code: rune(s[0]), Text: s}
}

func TestMultiChoice_ArrowsAndEnter(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"a", "b", "c", "d"})
	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyDown))
	m, _ = m.Update(press(tea.KeyUp))
	if m.Done() {
		t.Fatal("chose before Enter")
	}
	m, _ = m.Update(press(tea.KeyEnter))
	if m.Chosen != 1 {
		t.Errorf("Chosen = %d, want 1", m.Chosen)
	}

	// Further keys are ignored once chosen.
	m, _ = m.Update(press(tea.KeyDown))
	if m.Selected != 1 {
		t.Errorf("Selected moved after choosing: %d", m.Selected)
	}
}

func TestMultiChoice_NumberKeys(t *testing.T) {
	m := NewMultiChoice("Q?", []string{"a", "b", "c", "d"})
	m, _ = m.Update(pressText("3"))
	if m.Chosen != 2 {
		t.Errorf("Chosen = %d, want 2", m.Chosen)
	}
}

func TestMultiChoice_View(t *testing.T) {
	m := NewMultiChoice("What is a cell?", []string{"unit", "organ", "tissue", "none"})
	view := m.View()
	for _, want := range []string{"What is a cell?", "A)", "D)", "tissue"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestMenu_SkipsDisabled(t *testing.T) {
	picked := ""
	m := NewMenu([]MenuItem{
		{Label: "off", Disabled: true},
		{Label: "one", Action: func() tea.Cmd { picked = "one"; return nil }},
		{Label: "two", Action: func() tea.Cmd { picked = "two"; return nil }},
	})
	if m.Selected != 1 {
		t.Fatalf("Selected = %d, want first enabled item", m.Selected)
	}
	m, _ = m.Update(press(tea.KeyUp))
	if m.Selected != 1 {
		t.Errorf("moved onto disabled item")
	}
	m, _ = m.Update(press(tea.KeyDown))
	m.Update(press(tea.KeyEnter))
	if picked != "two" {
		t.Errorf("picked = %q, want two", picked)
	}
	if cur := m.Current(); cur == nil || cur.Label != "two" {
		t.Errorf("Current = %v", cur)
	}
}

func TestMenu_SetItemsClampsCursor(t *testing.T) {
	m := NewMenu([]MenuItem{{Label: "a"}, {Label: "b"}, {Label: "c"}})
	m.Selected = 2
	m = m.SetItems([]MenuItem{{Label: "x"}})
	if m.Selected != 0 {
		t.Errorf("Selected = %d, want 0", m.Selected)
	}
	m = m.SetItems(nil)
	if m.Current() != nil {
		t.Error("expected no current item in empty menu")
	}
}

func TestProgressBar_Clamps(t *testing.T) {
	full := NewProgressBar("x", 2, true, 20).View()
	if !strings.Contains(full, "200%") {
		t.Errorf("percent label = %q", full)
	}
	if NewProgressBar("", -1, false, 10).View() == "" {
		t.Error("expected a rendered bar")
	}
}
