package screen

import (
	tea "charm.land/bubbletea/v2"

	"github.com/socratai/socratai/internal/ui/layout"
)

// Screen is one page of the terminal quiz app.
type Screen interface {
	Init() tea.Cmd

	Update(msg tea.Msg) (Screen, tea.Cmd)

	// View renders the screen content (excluding header/footer).
	View(width, height int) string

	// Title returns the screen name for the header.
	Title() string
}

// KeyHintProvider is an optional interface for screens with their own
// footer key hints.
type KeyHintProvider interface {
	KeyHints() []layout.KeyHint
}

// StatusProvider is an optional interface for screens that show a status
// on the right of the header, such as quiz progress.
type StatusProvider interface {
	Status() string
}

// Resumer is an optional interface for screens that reload their data when
// they become active again after the screens above them are popped.
type Resumer interface {
	Resume() tea.Cmd
}
