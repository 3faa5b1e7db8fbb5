// Package summary shows the graded outcome of one quiz attempt.
package summary

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/router"
	"github.com/socratai/socratai/internal/screen"
	"github.com/socratai/socratai/internal/service"
	"github.com/socratai/socratai/internal/ui/layout"
	"github.com/socratai/socratai/internal/ui/theme"
)

// SummaryScreen displays a quiz result with a per-question review.
type SummaryScreen struct {
	quiz   *quiz.Quiz
	result *service.SubmitResult
	next   func() screen.Screen
	offset int
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)
var _ screen.StatusProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen. next builds the follow-up adaptive quiz; a
// nil next hides that option.
func New(q *quiz.Quiz, result *service.SubmitResult, next func() screen.Screen) *SummaryScreen {
	return &SummaryScreen{quiz: q, result: result, next: next}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Quiz Results"
}

func (s *SummaryScreen) Status() string {
	if s.result == nil {
		return ""
	}
	return fmt.Sprintf("next: %s", s.result.NextDifficulty)
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "↑↓", Description: "Scroll"}}
	if s.next != nil {
		hints = append(hints, layout.KeyHint{Key: "N", Description: "Next quiz"})
	}
	return append(hints,
		layout.KeyHint{Key: "Enter", Description: "Continue"},
		layout.KeyHint{Key: "Esc", Description: "Home"},
	)
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}
	switch kmsg.String() {
	case "enter", "esc":
		return s, func() tea.Msg { return router.PopToRootMsg{} }
	case "n":
		if s.next != nil {
			next := s.next()
			return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
		}
	case "up", "k":
		if s.offset > 0 {
			s.offset--
		}
	case "down", "j":
		if s.result != nil && s.offset < len(s.result.Results)-1 {
			s.offset++
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	res := s.result
	if res == nil {
		return ""
	}

	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().
		Width(width).
		Align(lipgloss.Center).
		Foreground(theme.Primary).
		Bold(true).
		Render("Quiz complete!"))
	b.WriteString("\n\n")

	scoreStyle := lipgloss.NewStyle().Width(width).Align(lipgloss.Center).Bold(true).
		Foreground(theme.ScoreColor(res.Score))
	b.WriteString(scoreStyle.Render(fmt.Sprintf("%.0f%%", res.Score)))
	b.WriteString("\n\n")

	statsLine := fmt.Sprintf("Correct: %d of %d        Next quiz: ", res.Correct, res.Total)
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Render(statsLine)+
			theme.DifficultyBadge(string(res.NextDifficulty))))
	b.WriteString("\n\n")

	divider := lipgloss.NewStyle().Foreground(theme.Border).Render(
		strings.Repeat("─", max(min(width-8, 60), 1)))
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.TextDim).Render("Review")))
	b.WriteString("\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, divider))
	b.WriteString("\n\n")

	rows := max(height-10, 3)
	end := min(s.offset+rows, len(res.Results))
	for _, item := range res.Results[s.offset:end] {
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.reviewLine(item, width)))
		b.WriteString("\n")
	}

	return b.String()
}

func (s *SummaryScreen) reviewLine(item quiz.ResultItem, width int) string {
	mark := theme.Correct.Render("✓")
	if !item.IsCorrect {
		mark = theme.Incorrect.Render("✗")
	}

	text := fmt.Sprintf("Question %d", item.QuestionIndex+1)
	if s.quiz != nil && item.QuestionIndex < len(s.quiz.Questions) {
		text = s.quiz.Questions[item.QuestionIndex].Text
	}
	if limit := max(min(width-30, 70), 10); len([]rune(text)) > limit {
		text = string([]rune(text)[:limit-1]) + "…"
	}

	answer := "skipped"
	if item.UserAnswer != nil {
		answer = fmt.Sprintf("you %s", optionLetter(*item.UserAnswer))
	}
	detail := lipgloss.NewStyle().Foreground(theme.TextDim).Render(
		fmt.Sprintf("%s, answer %s, %.1fs", answer, optionLetter(item.CorrectAnswer), item.TimeTaken))

	return fmt.Sprintf("%s %s  %s", mark, text, detail)
}

func optionLetter(i int) string {
	if i < 0 || i > 25 {
		return "?"
	}
	return string(rune('A' + i))
}
