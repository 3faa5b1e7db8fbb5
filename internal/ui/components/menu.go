package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/socratai/socratai/internal/ui/theme"
)

// MenuItem is one selectable row. Action runs on enter.
type MenuItem struct {
	Label    string
	Action   func() tea.Cmd
	Disabled bool
}

// Menu is a vertical list with a cursor that never rests on a disabled row.
type Menu struct {
	Items    []MenuItem
	Selected int
}

func NewMenu(items []MenuItem) Menu {
	m := Menu{Items: items, Selected: -1}
	m.move(1)
	if m.Selected < 0 {
		m.Selected = 0
	}
	return m
}

// SetItems swaps the rows and clamps the cursor.
func (m Menu) SetItems(items []MenuItem) Menu {
	m.Items = items
	m.Selected = max(min(m.Selected, len(items)-1), 0)
	return m
}

// Current returns the row under the cursor, or nil when the menu is empty.
func (m Menu) Current() *MenuItem {
	if m.Selected < 0 || m.Selected >= len(m.Items) {
		return nil
	}
	return &m.Items[m.Selected]
}

// move steps the cursor towards dir until it lands on an enabled row. It
// stays put when there is none.
func (m *Menu) move(dir int) {
	for i := m.Selected + dir; i >= 0 && i < len(m.Items); i += dir {
		if !m.Items[i].Disabled {
			m.Selected = i
			return
		}
	}
}

func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "enter":
		if cur := m.Current(); cur != nil && !cur.Disabled && cur.Action != nil {
			return m, cur.Action()
		}
	}
	return m, nil
}

func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		switch {
		case i == m.Selected:
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		case item.Disabled:
			b.WriteString(theme.Unselected.Faint(true).Render("    " + item.Label))
		default:
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
