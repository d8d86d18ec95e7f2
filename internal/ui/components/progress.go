package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/ssupark/oratio/internal/ui/theme"
)

// ProgressBar displays a horizontal bar. Used for the report's per-category
// score charts and for interview progress.
type ProgressBar struct {
	Label       string
	Percent     float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, percent float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Percent:     percent,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += lipgloss.NewStyle().Foreground(theme.Text).Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // " 100%"
	}

	barWidth := p.Width - labelWidth - percentWidth
	if barWidth < 4 {
		barWidth = 4
	}

	filled := int(float64(barWidth) * p.Percent)
	if filled > barWidth {
		filled = barWidth
	}
	if filled < 0 {
		filled = 0
	}
	empty := barWidth - filled

	filledStr := theme.ProgressFilled.Render(strings.Repeat(" ", filled))
	emptyStr := theme.ProgressEmpty.Render(strings.Repeat(" ", empty))

	result += filledStr + emptyStr

	if p.ShowPercent {
		result += lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Render(fmt.Sprintf("  %d%%", int(p.Percent*100)))
	}

	return result
}

// ScoreBar renders a labeled 0..100 score as a bar, right-padding the label
// to align a column of bars.
func ScoreBar(label string, score, labelWidth, totalWidth int) string {
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}
	padded := label
	if pad := labelWidth - lipgloss.Width(label); pad > 0 {
		padded += strings.Repeat(" ", pad)
	}
	bar := NewProgressBar(padded, float64(score)/100, false, totalWidth-8)
	return bar.View() + lipgloss.NewStyle().
		Foreground(theme.Accent).
		Bold(true).
		Render(fmt.Sprintf("  %3d", score))
}
