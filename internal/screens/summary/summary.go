package summary

import (
	"fmt"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// SummaryScreen displays the result of a completed quiz.
type SummaryScreen struct {
	st        quiz.State
	duration  time.Duration
	playAgain func() screen.Screen
}

var _ screen.Screen = (*SummaryScreen)(nil)
var _ screen.KeyHintProvider = (*SummaryScreen)(nil)

// New creates a SummaryScreen for the final state st. playAgain builds the
// screen for another round; nil disables replay.
func New(st quiz.State, playAgain func() screen.Screen) *SummaryScreen {
	var d time.Duration
	if !st.StartedAt.IsZero() {
		d = time.Since(st.StartedAt)
	}
	return &SummaryScreen{st: st, duration: d, playAgain: playAgain}
}

func (s *SummaryScreen) Init() tea.Cmd {
	return nil
}

func (s *SummaryScreen) Title() string {
	return "Results"
}

func (s *SummaryScreen) KeyHints() []layout.KeyHint {
	hints := []layout.KeyHint{{Key: "Enter", Description: "Home"}}
	if s.playAgain != nil {
		hints = append(hints, layout.KeyHint{Key: "p", Description: "Play again"})
	}
	return append(hints, layout.KeyHint{Key: "Esc", Description: "Home"})
}

func (s *SummaryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "enter", "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "p":
			if s.playAgain != nil {
				next := s.playAgain()
				return s, func() tea.Msg { return router.ReplaceScreenMsg{Screen: next} }
			}
		}
	}
	return s, nil
}

func (s *SummaryScreen) View(width, height int) string {
	st := s.st
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(layout.Centered("Quiz complete!", width, theme.Title))
	b.WriteString("\n\n")

	b.WriteString(layout.Centered(
		fmt.Sprintf("%d / %d", st.Score, st.Len()), width,
		lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)))
	b.WriteString("\n")
	b.WriteString(layout.Centered(verdict(st.Score, st.Len()), width, theme.Subtitle))
	b.WriteString("\n\n")

	mins := int(s.duration.Minutes())
	secs := int(s.duration.Seconds()) % 60
	stats := fmt.Sprintf("Answered: %d        Accuracy: %.0f%%        Time: %d:%02d",
		st.Answered, st.Accuracy()*100, mins, secs)
	b.WriteString(layout.Centered(stats, width, theme.Body))
	b.WriteString("\n\n")

	b.WriteString(layout.Divider(width))
	b.WriteString("\n")
	b.WriteString(layout.Centered("Source: "+st.Source, width, theme.Dimmed))
	return b.String()
}

// verdict returns a one-line remark for the final score.
func verdict(score, total int) string {
	if total == 0 {
		return ""
	}
	switch ratio := float64(score) / float64(total); {
	case ratio == 1:
		return "Perfect round!"
	case ratio >= 0.7:
		return "Great job!"
	case ratio >= 0.4:
		return "Not bad. Have another go?"
	default:
		return "Tough set. Try again?"
	}
}
