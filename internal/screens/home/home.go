// Package home is the session picker shown when the terminal app starts.
package home

import (
	"context"
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/socratai/socratai/internal/router"
	"github.com/socratai/socratai/internal/screen"
	"github.com/socratai/socratai/internal/screens/stats"
	"github.com/socratai/socratai/internal/screens/take"
	"github.com/socratai/socratai/internal/store"
	"github.com/socratai/socratai/internal/ui/components"
	"github.com/socratai/socratai/internal/ui/layout"
)

// Service is everything the home screen and the screens it opens need.
type Service interface {
	take.Service
	stats.Service
	History(ctx context.Context, userID string) ([]store.HistoryEntry, error)
}

type historyLoadedMsg struct {
	Entries []store.HistoryEntry
	Err     error
}

// HomeScreen lists the learner's sessions and opens quizzes or stats.
type HomeScreen struct {
	svc      Service
	userID   string
	username string
	count    int

	entries []store.HistoryEntry
	menu    components.Menu
	loaded  bool
	errMsg  string
}

var _ screen.Screen = (*HomeScreen)(nil)
var _ screen.KeyHintProvider = (*HomeScreen)(nil)
var _ screen.Resumer = (*HomeScreen)(nil)

// New creates a HomeScreen. count is the quiz size passed to generation;
// zero means the service default.
func New(svc Service, userID, username string, count int) *HomeScreen {
	return &HomeScreen{svc: svc, userID: userID, username: username, count: count}
}

func (h *HomeScreen) Init() tea.Cmd {
	svc, user := h.svc, h.userID
	return func() tea.Msg {
		entries, err := svc.History(context.Background(), user)
		return historyLoadedMsg{Entries: entries, Err: err}
	}
}

func (h *HomeScreen) Resume() tea.Cmd {
	return h.Init()
}

func (h *HomeScreen) Title() string {
	return "Home"
}

func (h *HomeScreen) KeyHints() []layout.KeyHint {
	if len(h.entries) == 0 {
		return []layout.KeyHint{
			{Key: "R", Description: "Refresh"},
			{Key: "Q", Description: "Quit"},
		}
	}
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Continue"},
		{Key: "I", Description: "Initial quiz"},
		{Key: "S", Description: "Stats"},
		{Key: "Q", Description: "Quit"},
	}
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		h.loaded = true
		if msg.Err != nil {
			h.errMsg = msg.Err.Error()
			return h, nil
		}
		h.errMsg = ""
		h.entries = msg.Entries
		h.menu = h.menu.SetItems(h.menuItems())
		return h, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q":
			return h, tea.Quit
		case "r":
			return h, h.Init()
		case "i":
			if e := h.current(); e != nil {
				return h, push(take.New(h.svc, h.userID, e.SessionID, take.Initial, h.count))
			}
			return h, nil
		case "s":
			if e := h.current(); e != nil {
				return h, push(stats.New(h.svc, h.userID, e.SessionID))
			}
			return h, nil
		}
	}

	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) current() *store.HistoryEntry {
	if h.menu.Selected < 0 || h.menu.Selected >= len(h.entries) {
		return nil
	}
	return &h.entries[h.menu.Selected]
}

func (h *HomeScreen) menuItems() []components.MenuItem {
	items := make([]components.MenuItem, 0, len(h.entries))
	for _, e := range h.entries {
		mode := take.Initial
		if e.LastScore != nil {
			mode = take.Adaptive
		}
		sessionID := e.SessionID
		items = append(items, components.MenuItem{
			Label: entryLabel(e),
			Action: func() tea.Cmd {
				return push(take.New(h.svc, h.userID, sessionID, mode, h.count))
			},
		})
	}
	return items
}

func push(s screen.Screen) tea.Cmd {
	return func() tea.Msg { return router.PushScreenMsg{Screen: s} }
}

func (h *HomeScreen) View(width, height int) string {
	compact := layout.IsCompactWidth(width) || height < 20
	cw := contentWidth(width)

	sections := []string{renderTitle(cw, compact, h.username)}

	switch {
	case h.errMsg != "":
		sections = append(sections, renderNote(cw, "Error: "+h.errMsg, true))
	case !h.loaded:
		sections = append(sections, renderNote(cw, "Loading...", false))
	case len(h.entries) == 0:
		sections = append(sections, renderNote(cw,
			"No syllabi yet. Upload one with: socratai upload <image>", false))
	default:
		sections = append(sections, renderStatsBar(h.entries, cw))
		sections = append(sections, renderSessionList(h.entries, h.menu.Selected, cw, max(height-12, 3)))
	}

	return renderFrame(strings.Join(sections, "\n\n"), width, height)
}
