// Package stats renders per-session performance analytics.
package stats

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/analytics"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/router"
	"github.com/socratai/socratai/internal/screen"
	"github.com/socratai/socratai/internal/ui/components"
	"github.com/socratai/socratai/internal/ui/layout"
	"github.com/socratai/socratai/internal/ui/theme"
)

type Service interface {
	Stats(ctx context.Context, userID, sessionID string) (*analytics.PerformanceStats, error)
}

type statsLoadedMsg struct {
	Stats *analytics.PerformanceStats
	Err   error
}

// StatsScreen shows the bloom breakdown and score history of a session.
type StatsScreen struct {
	svc       Service
	userID    string
	sessionID string
	stats     *analytics.PerformanceStats
	loaded    bool
	empty     bool
	errMsg    string
}

var _ screen.Screen = (*StatsScreen)(nil)
var _ screen.KeyHintProvider = (*StatsScreen)(nil)

func New(svc Service, userID, sessionID string) *StatsScreen {
	return &StatsScreen{svc: svc, userID: userID, sessionID: sessionID}
}

func (s *StatsScreen) Init() tea.Cmd {
	svc, user, session := s.svc, s.userID, s.sessionID
	return func() tea.Msg {
		st, err := svc.Stats(context.Background(), user, session)
		return statsLoadedMsg{Stats: st, Err: err}
	}
}

func (s *StatsScreen) Title() string {
	return "Performance"
}

func (s *StatsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "R", Description: "Refresh"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *StatsScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case statsLoadedMsg:
		s.loaded = true
		s.errMsg = ""
		s.empty = false
		switch {
		case errors.Is(msg.Err, quiz.ErrNotFound):
			s.empty = true
		case msg.Err != nil:
			s.errMsg = msg.Err.Error()
		default:
			s.stats = msg.Stats
		}
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "r":
			s.loaded = false
			return s, s.Init()
		}
	}
	return s, nil
}

func (s *StatsScreen) View(width, height int) string {
	center := func(str string) string {
		return lipgloss.PlaceHorizontal(width, lipgloss.Center, str)
	}

	if s.errMsg != "" {
		return center(lipgloss.NewStyle().Foreground(theme.Error).Render("Error: " + s.errMsg))
	}
	if !s.loaded {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Render("Loading..."))
	}
	if s.empty || s.stats == nil {
		return center(lipgloss.NewStyle().Foreground(theme.TextDim).Render(
			"No quizzes submitted yet. Take a quiz to see your performance."))
	}

	st := s.stats
	barWidth := max(min(width-8, 80), 30)

	var b strings.Builder
	b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Primary).Bold(true).Render(
		fmt.Sprintf("Average score %.1f%% across %d quizzes", st.AverageScore, st.TotalQuizzes))))
	b.WriteString("\n\n")

	b.WriteString(center(section("Cognitive levels")))
	b.WriteString("\n")
	for _, level := range quiz.AllLevels() {
		acc, ok := st.BloomPerformance[level]
		if !ok {
			continue
		}
		bar := components.NewProgressBar(string(level), acc/100, true, barWidth)
		bar.LabelWidth = 12
		line := bar.View()
		if secs, ok := st.BloomTimePerformance[level]; ok && secs > 0 {
			line += lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf("  %.1fs", secs))
		}
		b.WriteString(center(line))
		b.WriteString("\n")
	}

	if len(st.TopicPerformance) > 0 {
		b.WriteString("\n")
		b.WriteString(center(section("Topics")))
		b.WriteString("\n")
		topics := make([]string, 0, len(st.TopicPerformance))
		for t := range st.TopicPerformance {
			topics = append(topics, t)
		}
		sort.Strings(topics)
		for _, t := range topics {
			label := t
			if len([]rune(label)) > 28 {
				label = string([]rune(label)[:27]) + "…"
			}
			bar := components.NewProgressBar(label, st.TopicPerformance[t]/100, true, barWidth)
			bar.LabelWidth = 28
			bar.Fill = theme.Primary
			b.WriteString(center(bar.View()))
			b.WriteString("\n")
		}
	}

	if len(st.QuizHistory) > 0 {
		b.WriteString("\n")
		b.WriteString(center(section("History")))
		b.WriteString("\n")
		for _, p := range st.QuizHistory {
			label := fmt.Sprintf("#%d %s", p.QuizNumber, p.Date.Local().Format("Jan 02 15:04"))
			bar := components.NewProgressBar(label, p.Score/100, true, barWidth)
			bar.LabelWidth = 18
			bar.Fill = theme.ScoreColor(p.Score)
			b.WriteString(center(bar.View()))
			b.WriteString("\n")
		}
	}

	if st.SkippedRecords > 0 {
		b.WriteString("\n")
		b.WriteString(center(lipgloss.NewStyle().Foreground(theme.Accent).Render(
			fmt.Sprintf("%d unreadable attempts were left out", st.SkippedRecords))))
	}

	return b.String()
}

func section(title string) string {
	return lipgloss.NewStyle().Foreground(theme.TextDim).Render(title)
}
