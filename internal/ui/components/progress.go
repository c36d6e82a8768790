package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/ui/theme"
)

// ProgressBar displays a horizontal progress bar for a value in [0, Max].
type ProgressBar struct {
	Label       string
	Value       float64
	Max         float64
	ShowPercent bool
	Width       int
}

// NewProgressBar creates a new progress bar.
func NewProgressBar(label string, value, maxValue float64, showPercent bool, width int) ProgressBar {
	return ProgressBar{
		Label:       label,
		Value:       value,
		Max:         maxValue,
		ShowPercent: showPercent,
		Width:       width,
	}
}

// Fraction returns Value/Max clamped to [0,1].
func (p ProgressBar) Fraction() float64 {
	if p.Max <= 0 {
		return 0
	}
	return min(max(p.Value/p.Max, 0), 1)
}

// View renders the progress bar.
func (p ProgressBar) View() string {
	var result string

	if p.Label != "" {
		result += theme.Body.Render(p.Label) + "  "
	}

	labelWidth := lipgloss.Width(result)
	percentWidth := 0
	if p.ShowPercent {
		percentWidth = 6 // "  100%"
	}

	barWidth := max(p.Width-labelWidth-percentWidth, 4)
	filled := int(float64(barWidth) * p.Fraction())

	result += theme.ProgressFilled.Render(strings.Repeat(" ", filled)) +
		theme.ProgressEmpty.Render(strings.Repeat(" ", barWidth-filled))

	if p.ShowPercent {
		result += theme.Dimmed.Render(fmt.Sprintf("  %d%%", int(p.Fraction()*100)))
	}
	return result
}
