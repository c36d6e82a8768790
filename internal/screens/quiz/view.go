package quiz

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	quizctl "github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/ui/components"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

func (s *QuizScreen) View(width, height int) string {
	switch {
	case s.st.Phase == quizctl.PhaseLoadFailed:
		return s.renderError(width)
	case !s.st.Loaded():
		return s.renderLoading(width)
	default:
		return s.renderQuestion(width)
	}
}

// renderLoading renders the spinner while the first list is fetched.
func (s *QuizScreen) renderLoading(width int) string {
	source := s.ctrl.Source().Describe()
	return "\n\n\n" + layout.Centered(
		fmt.Sprintf("%s Fetching questions from %s", s.spinner.View(), source),
		width, theme.Dimmed)
}

// renderError renders the load failure with the retry prompt.
func (s *QuizScreen) renderError(width int) string {
	var b strings.Builder
	b.WriteString("\n\n\n")
	b.WriteString(layout.Centered("Trivia source unavailable", width, theme.Incorrect))
	b.WriteString("\n\n")
	if le := s.st.LoadErr; le != nil {
		b.WriteString(layout.Centered(le.Detail(), width, theme.Dimmed))
		b.WriteString("\n")
		b.WriteString(layout.Centered(le.Source, width, theme.Dimmed))
		b.WriteString("\n\n")
	}
	b.WriteString(layout.Centered("[r] Retry    [Esc] Back", width, theme.Body))
	return b.String()
}

// renderQuestion renders the info line, progress, question and choices.
func (s *QuizScreen) renderQuestion(width int) string {
	st := s.st
	var b strings.Builder

	infoLeft := lipgloss.NewStyle().
		Foreground(theme.Secondary).
		Bold(true).
		Render(fmt.Sprintf("  Question %d of %d", st.Index+1, st.Len()))

	right := fmt.Sprintf("%s %d", lipgloss.NewStyle().Foreground(theme.Success).Render("✓"), st.Score)
	if st.Phase == quizctl.PhaseLoading {
		right = s.spinner.View() + " reloading  " + right
	}
	infoRight := theme.Dimmed.Render(right)

	infoLine := infoLeft
	if pad := width - lipgloss.Width(infoLeft) - lipgloss.Width(infoRight) - 4; pad > 0 {
		infoLine += strings.Repeat(" ", pad) + infoRight
	}
	b.WriteString(infoLine)
	b.WriteString("\n")

	bar := components.NewProgressBar("", st.ProgressScaled(s.progressMax), s.progressMax, true, max(width-8, 10))
	b.WriteString("  " + bar.View())
	b.WriteString("\n\n")

	b.WriteString(theme.Question.Width(width).Render(st.Question))
	b.WriteString("\n\n")
	b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, s.choices.View()))
	b.WriteString("\n")

	if st.AnswerSelected {
		b.WriteString(s.renderFeedback(width))
	} else {
		b.WriteString(layout.Centered(
			fmt.Sprintf("Select (1-%d) or use arrows + Enter", len(st.Choices)),
			width, theme.Hint))
	}

	if st.LoadErr != nil && st.Phase != quizctl.PhaseLoading {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered("Reload failed: "+st.LoadErr.Detail(), width, theme.Incorrect))
	}
	if s.notice != "" {
		b.WriteString("\n\n")
		b.WriteString(layout.Centered(s.notice, width, theme.Hint))
	}
	return b.String()
}

// renderFeedback renders the verdict for the accepted choice.
func (s *QuizScreen) renderFeedback(width int) string {
	st := s.st
	var b strings.Builder

	if st.Selected >= 0 && st.Selected < len(st.Choices) && st.Choices[st.Selected].IsCorrect {
		b.WriteString(layout.Centered("Correct!", width, theme.Correct))
	} else {
		b.WriteString(layout.Centered("Not quite", width, theme.Incorrect))
		if item, ok := st.Current(); ok {
			if ans, ok := item.CorrectAnswer(); ok {
				b.WriteString("\n")
				b.WriteString(layout.Centered("Correct answer: "+ans.Text, width, theme.Dimmed))
			}
		}
	}
	b.WriteString("\n\n")

	next := "Press Enter for the next question"
	if st.Index+1 >= st.Len() {
		next = "Press Enter to see your results"
	}
	b.WriteString(layout.Centered(next, width, theme.Hint))
	return b.String()
}
