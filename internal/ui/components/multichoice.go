package components

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/ui/theme"
)

var optionLabels = []string{"A", "B", "C", "D"}

// MultiChoice is a multiple-choice selector. Number keys 1-4 choose
// directly; arrows move the cursor and Enter chooses.
type MultiChoice struct {
	Question string
	Options  []string
	Selected int

	// Chosen is the committed option, -1 until the learner picks one.
	Chosen int

	// Correct is revealed by ShowAnswer; -1 keeps it hidden.
	Correct int
}

func NewMultiChoice(question string, options []string) MultiChoice {
	return MultiChoice{
		Question: question,
		Options:  options,
		Chosen:   -1,
		Correct:  -1,
	}
}

// Done reports whether an option has been chosen.
func (m MultiChoice) Done() bool {
	return m.Chosen >= 0
}

// ShowAnswer marks the correct option for review rendering.
func (m MultiChoice) ShowAnswer(correct int) MultiChoice {
	m.Correct = correct
	return m
}

func (m MultiChoice) Update(msg tea.Msg) (MultiChoice, tea.Cmd) {
	if m.Done() {
		return m, nil
	}
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key := kmsg.String(); key {
	case "up", "k":
		if m.Selected > 0 {
			m.Selected--
		}
	case "down", "j":
		if m.Selected < len(m.Options)-1 {
			m.Selected++
		}
	case "enter":
		m.Chosen = m.Selected
	case "1", "2", "3", "4":
		idx := int(key[0] - '1')
		if idx < len(m.Options) {
			m.Selected = idx
			m.Chosen = idx
		}
	}
	return m, nil
}

func (m MultiChoice) View() string {
	var b strings.Builder
	b.WriteString(lipgloss.NewStyle().Foreground(theme.Text).Bold(true).Render(m.Question))
	b.WriteString("\n\n")

	for i, opt := range m.Options {
		label := fmt.Sprint(i + 1)
		if i < len(optionLabels) {
			label = optionLabels[i]
		}
		prefix := "  "
		if i == m.Selected && !m.Done() {
			prefix = "▸ "
		}
		line := fmt.Sprintf("%s%s)  %s", prefix, label, opt)

		style := theme.Unselected
		switch {
		case m.Correct >= 0 && i == m.Correct:
			style = theme.Correct
		case m.Correct >= 0 && i == m.Chosen:
			style = theme.Incorrect
		case i == m.Selected && !m.Done():
			style = theme.Selected
		case m.Done():
			style = lipgloss.NewStyle().Foreground(theme.TextDim)
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}
	return b.String()
}
