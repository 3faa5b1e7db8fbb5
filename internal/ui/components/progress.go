package components

import (
	"fmt"
	"image/color"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/socratai/socratai/internal/ui/theme"
)

const minBarCells = 4

// ProgressBar draws a labelled horizontal gauge. Percent is a fraction;
// values outside [0, 1] clamp the gauge but are printed as given.
type ProgressBar struct {
	Label       string
	LabelWidth  int // pad labels to line up stacked bars
	Percent     float64
	ShowPercent bool
	Width       int
	Fill        color.Color
}

func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
		Fill:        theme.Secondary,
	}
}

func (p ProgressBar) View() string {
	var label, suffix string
	if p.Label != "" {
		label = lipgloss.NewStyle().Foreground(theme.Text).Width(p.LabelWidth).Render(p.Label) + "  "
	}
	if p.ShowPercent {
		suffix = lipgloss.NewStyle().Foreground(theme.TextDim).Render(fmt.Sprintf(" %4.0f%%", p.Percent*100))
	}

	cells := max(p.Width-lipgloss.Width(label)-lipgloss.Width(suffix), minBarCells)
	filled := int(float64(cells) * min(max(p.Percent, 0), 1))

	gauge := lipgloss.NewStyle().Foreground(p.Fill).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", cells-filled))

	return label + gauge + suffix
}
