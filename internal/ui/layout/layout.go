// Package layout composes the fixed frame around every screen: a header
// bar, the screen body and a footer of key hints.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/ui/theme"
)

const (
	MinWidth  = 80
	MinHeight = 24

	// Below this width screens drop secondary columns.
	CompactWidthThreshold = 100
)

// KeyHint is one "key description" pair in the footer.
type KeyHint struct {
	Key         string
	Description string
}

func IsCompactWidth(width int) bool { return width < CompactWidthThreshold }

func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize prompt.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Window is %dx%d.\nSocratAI needs at least %dx%d.\n\nEnlarge the terminal to continue.",
		width, height, MinWidth, MinHeight)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		lipgloss.NewStyle().Foreground(theme.Text).Align(lipgloss.Center).Render(msg))
}

// bar draws a full-width bordered strip.
func bar(width int, content string) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader places the product name on the left, the screen title in
// the middle and an optional status on the right.
func RenderHeader(title, status string, width int) string {
	inner := max(width-4, 0)
	third := inner / 3

	left := lipgloss.NewStyle().Width(third).Foreground(theme.Primary).Bold(true).Render(" SocratAI")
	center := lipgloss.NewStyle().Width(inner - 2*third).Align(lipgloss.Center).Foreground(theme.Text).Render(title)
	right := lipgloss.NewStyle().Width(third).Align(lipgloss.Right).Foreground(theme.Accent).Render(status)

	return bar(width, lipgloss.JoinHorizontal(lipgloss.Top, left, center, right))
}

// RenderFooter lists key hints separated by a dim dot.
func RenderFooter(hints []KeyHint, width int) string {
	key := lipgloss.NewStyle().Foreground(theme.Text).Bold(true)
	desc := lipgloss.NewStyle().Foreground(theme.TextDim)

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = key.Render(h.Key) + " " + desc.Render(h.Description)
	}
	return bar(width, " "+strings.Join(parts, desc.Render("  ·  ")))
}

// RenderFrame stacks header, body and footer, giving the body whatever
// height remains.
func RenderFrame(header, content, footer string, width, height int) string {
	body := max(height-lipgloss.Height(header)-lipgloss.Height(footer), 0)
	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		lipgloss.NewStyle().Width(width).Height(body).Render(content),
		footer,
	)
}
