package take

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/ui/components"
	"github.com/socratai/socratai/internal/ui/theme"
)

func (s *Screen) View(width, height int) string {
	switch s.phase {
	case phaseLoading:
		return s.renderWaiting(width, "Generating questions...")
	case phaseSubmitting:
		return s.renderWaiting(width, "Grading your answers...")
	case phaseFailed:
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render("\n\n" + s.errMsg)
	}
	return s.renderQuestion(width)
}

func (s *Screen) renderWaiting(width int, label string) string {
	line := s.spin.View() + "  " + lipgloss.NewStyle().Foreground(theme.TextDim).Render(label)
	return "\n\n" + lipgloss.PlaceHorizontal(width, lipgloss.Center, line)
}

func (s *Screen) renderQuestion(width int) string {
	q := s.quiz.Questions[s.index]
	total := len(s.quiz.Questions)

	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render("  " + string(q.CognitiveLevel()))
	infoRight := lipgloss.NewStyle().
		Foreground(theme.TextDim).
		Render(fmt.Sprintf("answered %d of %d", len(s.answers), total))

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", float64(s.index)/float64(total), false, max(width-4, 4))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	card := theme.Card.Width(min(width-4, 90)).Render(s.mc.View())
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, card))
	return b.String()
}
