// Package app hosts the terminal quiz client.
package app

import (
	"context"
	"fmt"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/router"
	"github.com/socratai/socratai/internal/screen"
	"github.com/socratai/socratai/internal/screens/home"
	"github.com/socratai/socratai/internal/ui/layout"
)

// Options configures the terminal client.
type Options struct {
	Service  home.Service
	UserID   string
	Username string

	// QuestionsPerQuiz is passed to generation; zero uses the default.
	QuestionsPerQuiz int

	// Start, when set, opens on top of the home screen.
	Start screen.Screen
}

var quitHint = layout.KeyHint{Key: "Ctrl+C", Description: "Quit"}

// AppModel is the root Bubble Tea model. It owns the global keys and the
// frame; everything else goes through the router.
type AppModel struct {
	router        *router.Router
	start         screen.Screen
	width, height int
}

func newAppModel(opts Options) AppModel {
	return AppModel{
		router: router.New(home.New(opts.Service, opts.UserID, opts.Username, opts.QuestionsPerQuiz)),
		start:  opts.Start,
	}
}

func (m AppModel) Init() tea.Cmd {
	initHome := m.router.Active().Init()
	if m.start == nil {
		return initHome
	}
	start := m.start
	return tea.Batch(initHome, func() tea.Msg { return router.PushScreenMsg{Screen: start} })
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		return m, nil
	case tea.KeyMsg:
		if cmd, handled := m.globalKey(msg.String()); handled {
			return m, cmd
		}
	}
	return m, m.router.Update(msg)
}

// globalKey handles keys that mean the same thing on every screen.
func (m AppModel) globalKey(key string) (tea.Cmd, bool) {
	switch key {
	case "ctrl+c":
		return tea.Quit, true
	case "esc":
		if m.router.Depth() == 1 {
			return nil, true
		}
		return func() tea.Msg { return router.PopScreenMsg{} }, true
	}
	return nil, false
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true
	switch {
	case m.width == 0 || m.height == 0:
	case layout.IsTooSmall(m.width, m.height):
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
	default:
		v.SetContent(m.frame())
	}
	return v
}

func (m AppModel) frame() string {
	active := m.router.Active()

	var status string
	if sp, ok := active.(screen.StatusProvider); ok {
		status = sp.Status()
	}
	header := layout.RenderHeader(active.Title(), status, m.width)
	footer := layout.RenderFooter(m.footerHints(active), m.width)

	bodyHeight := max(m.height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return layout.RenderFrame(header, m.router.View(m.width, bodyHeight), footer, m.width, m.height)
}

func (m AppModel) footerHints(active screen.Screen) []layout.KeyHint {
	if kp, ok := active.(screen.KeyHintProvider); ok {
		return append(kp.KeyHints(), quitHint)
	}
	if m.router.Depth() > 1 {
		return []layout.KeyHint{{Key: "Esc", Description: "Back"}, quitHint}
	}
	return []layout.KeyHint{{Key: "↑↓", Description: "Navigate"}, {Key: "Enter", Description: "Select"}, quitHint}
}

// Run blocks until the user quits or ctx is cancelled.
func Run(ctx context.Context, opts Options) error {
	if _, err := tea.NewProgram(newAppModel(opts), tea.WithContext(ctx)).Run(); err != nil {
		return fmt.Errorf("run terminal client: %w", err)
	}
	return nil
}
