package home

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/history"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// Block-letter title.
const titleFull = ` ████████╗██████╗ ██╗██╗   ██╗██╗ █████╗ ███████╗
 ╚══██╔══╝██╔══██╗██║██║   ██║██║██╔══██╗╚══███╔╝
    ██║   ██████╔╝██║██║   ██║██║███████║  ███╔╝
    ██║   ██╔══██╗██║╚██╗ ██╔╝██║██╔══██║ ███╔╝
    ██║   ██║  ██║██║ ╚████╔╝ ██║██║  ██║███████╗
    ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═══╝  ╚═╝╚═╝  ╚═╝╚══════╝`

const titleCompact = "T · R · I · V · I · A · Z"

// renderTitle returns the styled title block or compact fallback.
func renderTitle(cw int, compact bool) string {
	art := titleFull
	if compact {
		art = titleCompact
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(theme.Title.Render(art))
}

// renderSource shows where questions will come from.
func renderSource(source string, cw int) string {
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Foreground(theme.TextDim).
		Render("Questions from " + source)
}

// renderStatsBar renders lifetime stats in a bordered box, or a prompt when
// nothing was played yet. stats is nil until loaded.
func renderStatsBar(stats *history.Stats, enabled bool, cw int, compact bool) string {
	scoreStyle := lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)
	accStyle := lipgloss.NewStyle().Foreground(theme.Secondary).Bold(true)
	dimStyle := lipgloss.NewStyle().Foreground(theme.TextDim)

	var text string
	switch {
	case !enabled:
		text = dimStyle.Render("History off")
	case stats == nil:
		text = dimStyle.Render("Loading stats...")
	case stats.Sessions == 0:
		text = dimStyle.Render("No quizzes yet")
	case compact:
		text = fmt.Sprintf("%s %s %s",
			scoreStyle.Render(fmt.Sprintf("★%d", stats.BestScore)),
			accStyle.Render(fmt.Sprintf("%.0f%%", stats.Accuracy()*100)),
			dimStyle.Render(fmt.Sprintf("×%d", stats.Sessions)),
		)
	default:
		text = fmt.Sprintf("%s  %s  %s",
			scoreStyle.Render(fmt.Sprintf("★ BEST %d", stats.BestScore)),
			accStyle.Render(fmt.Sprintf("%.0f%% ACCURACY", stats.Accuracy()*100)),
			dimStyle.Render(fmt.Sprintf("%d PLAYED", stats.Sessions)),
		)
	}
	return components.Card(text, cw)
}

// renderMenu renders each menu item as a fixed-width button, or as plain
// lines when the terminal is short.
func renderMenu(m components.Menu, cw int, compact bool) string {
	var block string
	if compact {
		block = m.View()
	} else {
		var buttons []string
		for i, label := range m.Labels() {
			buttons = append(buttons, components.Button(label, i == m.Selected))
		}
		block = strings.Join(buttons, "\n")
	}
	return lipgloss.NewStyle().
		Width(cw).
		Align(lipgloss.Center).
		Render(block)
}
