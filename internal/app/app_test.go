package app

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/socratai/socratai/internal/analytics"
	"github.com/socratai/socratai/internal/quiz"
	"github.com/socratai/socratai/internal/router"
	"github.com/socratai/socratai/internal/screens/stats"
	"github.com/socratai/socratai/internal/service"
	"github.com/socratai/socratai/internal/store"
)

type emptyService struct{}

func (emptyService) History(context.Context, string) ([]store.HistoryEntry, error) {
	return nil, nil
}
func (emptyService) GenerateInitial(context.Context, string, string, int) (*quiz.Quiz, error) {
	return nil, quiz.ErrGenerationUnavailable
}
func (emptyService) GenerateAdaptive(context.Context, string, string, int) (*quiz.Quiz, error) {
	return nil, quiz.ErrGenerationUnavailable
}
func (emptyService) Submit(context.Context, string, service.SubmitRequest) (*service.SubmitResult, error) {
	return nil, quiz.ErrNotFound
}
func (emptyService) Stats(context.Context, string, string) (*analytics.PerformanceStats, error) {
	return nil, quiz.ErrNotFound
}

func sized(m AppModel) AppModel {
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 40})
	return updated.(AppModel)
}

func TestAppModel_HomeView(t *testing.T) {
	m := sized(newAppModel(Options{Service: emptyService{}, UserID: "u1", Username: "ada"}))
	v := m.View()

	if v.Content == nil || !v.AltScreen {
		t.Fatal("expected alt-screen content once sized")
	}

	var keys []string
	for _, h := range m.footerHints(m.router.Active()) {
		keys = append(keys, h.Description)
	}
	joined := strings.Join(keys, ",")
	if !strings.Contains(joined, "Refresh") || !strings.Contains(joined, "Quit") {
		t.Errorf("footer hints = %s", joined)
	}
}

func TestAppModel_StartScreen(t *testing.T) {
	start := stats.New(emptyService{}, "u1", "s1")
	m := newAppModel(Options{Service: emptyService{}, Start: start})

	batch, ok := m.Init()().(tea.BatchMsg)
	if !ok {
		t.Fatal("expected batched init")
	}
	var push router.PushScreenMsg
	for _, cmd := range batch {
		if msg, ok := cmd().(router.PushScreenMsg); ok {
			push = msg
		}
	}
	if push.Screen != start {
		t.Fatal("start screen was not pushed")
	}

	m.Update(push)
	if m.router.Depth() != 2 {
		t.Errorf("depth = %d, want 2", m.router.Depth())
	}

	_, cmd := m.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("esc above home should pop")
	}
}

func TestAppModel_TooSmall(t *testing.T) {
	m := newAppModel(Options{Service: emptyService{}})
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 20, Height: 5})
	if updated.(AppModel).View().Content == nil {
		t.Error("expected a minimum-size message")
	}
}
