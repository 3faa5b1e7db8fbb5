package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/store"
	"github.com/socratai/socratai/internal/ui/theme"
)

const titleFull = ` ___              _      _   _   ___
/ __| ___  __ _ _| |_ __| |_/_\ |_ _|
\__ \/ _ \/ _| '_|  _/ _` + "`" + ` |  _/ _ \ | |
|___/\___/\__|_|  \__\__,_|\__/_/ \_\___|`

const titleCompact = "S · O · C · R · A · T · A · I"

// contentWidth returns the uniform inner width used for all sections.
func contentWidth(frameWidth int) int {
	w := frameWidth - 6
	if w > 72 {
		w = 72
	}
	if w < 20 {
		w = 20
	}
	return w
}

func renderTitle(cw int, compact bool, username string) string {
	style := lipgloss.NewStyle().Foreground(theme.Primary).Bold(true)
	art := titleFull
	if compact {
		art = titleCompact
	}
	title := lipgloss.NewStyle().Width(cw).Align(lipgloss.Center).Render(style.Render(art))
	if username == "" {
		return title
	}
	greeting := lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Signed in as " + username)
	return title + "\n" + greeting
}

// renderStatsBar summarizes the session list in a bordered box.
func renderStatsBar(entries []store.HistoryEntry, cw int) string {
	var scored int
	var sum float64
	for _, e := range entries {
		if e.LastScore != nil {
			scored++
			sum += *e.LastScore
		}
	}

	sessions := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true).
		Render(fmt.Sprintf("%d SYLLABI", len(entries)))
	average := lipgloss.NewStyle().Foreground(theme.TextDim).Render("NO SCORES YET")
	if scored > 0 {
		average = lipgloss.NewStyle().Foreground(theme.Accent).Bold(true).
			Render(fmt.Sprintf("AVG LAST SCORE %.0f%%", sum/float64(scored)))
	}

	return lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(theme.Secondary).
		Width(cw - 2).
		Align(lipgloss.Center).
		Padding(0, 1).
		Render(sessions + "   " + average)
}

// renderSessionList draws a window of at most rows entries around the
// selection.
func renderSessionList(entries []store.HistoryEntry, selected, cw, rows int) string {
	start := 0
	if selected >= rows {
		start = selected - rows + 1
	}
	end := min(start+rows, len(entries))

	var lines []string
	for i := start; i < end; i++ {
		label := truncate(entryLabel(entries[i]), cw-4)
		if i == selected {
			lines = append(lines, lipgloss.NewStyle().
				Foreground(theme.BgDark).
				Background(theme.Primary).
				Bold(true).
				Render(" ▸ "+label+" "))
			continue
		}
		lines = append(lines, lipgloss.NewStyle().Foreground(theme.Text).Render("   "+label))
	}

	return lipgloss.NewStyle().Width(cw).Render(strings.Join(lines, "\n"))
}

func entryLabel(e store.HistoryEntry) string {
	topic := "untitled"
	if len(e.Topics) > 0 {
		topic = e.Topics[0]
	}
	if extra := len(e.Topics) - 1; extra > 0 {
		topic = fmt.Sprintf("%s (+%d)", topic, extra)
	}
	score := "new"
	if e.LastScore != nil {
		score = fmt.Sprintf("%.0f%%", *e.LastScore)
	}
	return fmt.Sprintf("%s  %-4s  %s", e.CreatedAt.Local().Format("Jan 02"), score, topic)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if n < 2 || len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func renderNote(cw int, text string, isErr bool) string {
	color := theme.TextDim
	if isErr {
		color = theme.Error
	}
	return lipgloss.NewStyle().Foreground(color).Width(cw).Align(lipgloss.Center).Render(text)
}

// renderFrame wraps content in a rounded border, centered in the given
// dimensions.
func renderFrame(content string, width, height int) string {
	return lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Width(width - 2).
		Height(max(height-2, 1)).
		Align(lipgloss.Center, lipgloss.Center).
		Render(content)
}
