// Package theme holds the shared palette and styles for the terminal UI
// and CLI output.
package theme

import (
	"image/color"

	"charm.land/lipgloss/v2"
)

var (
	Primary   = lipgloss.Color("#6366F1") // indigo
	Secondary = lipgloss.Color("#0EA5E9") // sky
	Accent    = lipgloss.Color("#F59E0B") // amber
	Success   = lipgloss.Color("#10B981")
	Error     = lipgloss.Color("#EF4444")
	Text      = lipgloss.Color("#E2E8F0")
	TextDim   = lipgloss.Color("#8391A7")
	BgDark    = lipgloss.Color("#111827")
	BgCard    = lipgloss.Color("#1F2937")
	Border    = lipgloss.Color("#374151")
)

// Card frames a question or a result block.
var Card = lipgloss.NewStyle().
	Background(BgCard).
	Border(lipgloss.RoundedBorder()).
	BorderForeground(Border).
	Padding(1, 2)

// Answer option states.
var (
	Selected   = lipgloss.NewStyle().Foreground(Primary).Bold(true)
	Unselected = lipgloss.NewStyle().Foreground(Text)
	Correct    = lipgloss.NewStyle().Foreground(Success).Bold(true)
	Incorrect  = lipgloss.NewStyle().Foreground(Error).Bold(true)
)

var difficultyColors = map[string]color.Color{
	"easy":   Success,
	"medium": Accent,
	"hard":   Error,
}

// DifficultyBadge renders a difficulty label in its color. Unknown labels
// render as plain text.
func DifficultyBadge(d string) string {
	c, ok := difficultyColors[d]
	if !ok {
		return lipgloss.NewStyle().Foreground(Text).Render(d)
	}
	return lipgloss.NewStyle().Foreground(c).Bold(true).Render(d)
}

// ScoreColor maps a 0-100 score onto the same bands that drive difficulty
// changes: 80 and above promotes, below 60 demotes.
func ScoreColor(score float64) color.Color {
	switch {
	case score >= 80:
		return Success
	case score >= 60:
		return Accent
	default:
		return Error
	}
}
