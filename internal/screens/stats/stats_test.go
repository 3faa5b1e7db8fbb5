package stats

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/socratai/socratai/internal/analytics"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/router"
)

type mockService struct {
	stats *analytics.PerformanceStats
	err   error
	calls int
}

func (m *mockService) Stats(_ context.Context, _, _ string) (*analytics.PerformanceStats, error) {
	m.calls++
	return m.stats, m.err
}

func sampleStats() *analytics.PerformanceStats {
	return &analytics.PerformanceStats{
		SessionID:    "s1",
		TotalQuizzes: 2,
		AverageScore: 62.5,
		TopicPerformance: map[string]float64{
			"Cell Biology": 62.5,
		},
		BloomPerformance: map[quiz.CognitiveLevel]float64{
			quiz.Remember: 100,
			quiz.Apply:    25,
		},
		BloomTimePerformance: map[quiz.CognitiveLevel]float64{
			quiz.Remember: 4.5,
		},
		QuizHistory: []analytics.HistoryPoint{
			{Score: 50, Date: time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC), QuizNumber: 1},
			{Score: 75, Date: time.Date(2026, 3, 2, 10, 0, 0, 0, time.UTC), QuizNumber: 2},
		},
		SkippedRecords: 1,
	}
}

func load(s *StatsScreen) {
	s.Update(s.Init()())
}

func TestStatsScreen_Loading(t *testing.T) {
	s := New(&mockService{}, "u1", "s1")
	if !strings.Contains(s.View(100, 40), "Loading...") {
		t.Error("expected loading placeholder")
	}
}

func TestStatsScreen_Renders(t *testing.T) {
	s := New(&mockService{stats: sampleStats()}, "u1", "s1")
	load(s)

	view := s.View(120, 40)
	for _, want := range []string{
		"Average score 62.5% across 2 quizzes",
		"Remember",
		"Apply",
		"4.5s",
		"Cell Biology",
		"#2",
		"1 unreadable attempts",
	} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
	if strings.Contains(view, "Create") {
		t.Error("levels without attempts should be omitted")
	}
}

func TestStatsScreen_NoSubmissions(t *testing.T) {
	s := New(&mockService{err: fmt.Errorf("stats: %w", quiz.ErrNotFound)}, "u1", "s1")
	load(s)
	if !strings.Contains(s.View(100, 40), "No quizzes submitted yet") {
		t.Error("expected empty-state message")
	}
}

func TestStatsScreen_Error(t *testing.T) {
	s := New(&mockService{err: errors.New("db closed")}, "u1", "s1")
	load(s)
	if !strings.Contains(s.View(100, 40), "db closed") {
		t.Error("expected error in view")
	}
}

func TestStatsScreen_Keys(t *testing.T) {
	svc := &mockService{stats: sampleStats()}
	s := New(svc, "u1", "s1")
	load(s)

	_, cmd := s.Update(tea.KeyPressMsg{Code: 'r', Text: "r"})
	if cmd == nil {
		t.Fatal("expected refresh command")
	}
	cmd()
	if svc.calls != 2 {
		t.Errorf("calls = %d, want 2", svc.calls)
	}

	_, cmd = s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on esc")
	}
}
