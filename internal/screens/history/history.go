package history

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	hist "github.com/abhisek/triviaz/internal/history"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/ui/layout"
	"github.com/abhisek/triviaz/internal/ui/theme"
)

// recentLimit caps how many sessions the screen lists.
const recentLimit = 50

// Repo is the read side of the history store.
type Repo interface {
	Recent(ctx context.Context, limit int) ([]hist.SessionRecord, error)
	Stats(ctx context.Context) (hist.Stats, error)
	Answers(ctx context.Context, sessionID string) ([]hist.AnswerRecord, error)
}

type historyLoadedMsg struct {
	Sessions []hist.SessionRecord
	Stats    hist.Stats
	Err      error
}

type answersLoadedMsg struct {
	SessionID string
	Answers   []hist.AnswerRecord
	Err       error
}

// HistoryScreen displays past quizzes and their answers.
type HistoryScreen struct {
	repo     Repo
	sessions []hist.SessionRecord
	stats    hist.Stats
	answers  map[string][]hist.AnswerRecord
	selected int
	expanded map[int]bool
	loaded   bool
	errMsg   string
}

var _ screen.Screen = (*HistoryScreen)(nil)
var _ screen.KeyHintProvider = (*HistoryScreen)(nil)

// New creates a new HistoryScreen.
func New(repo Repo) *HistoryScreen {
	return &HistoryScreen{
		repo:     repo,
		answers:  make(map[string][]hist.AnswerRecord),
		expanded: make(map[int]bool),
	}
}

func (s *HistoryScreen) Init() tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()

		sessions, err := s.repo.Recent(ctx, recentLimit)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		stats, err := s.repo.Stats(ctx)
		if err != nil {
			return historyLoadedMsg{Err: err}
		}
		return historyLoadedMsg{Sessions: sessions, Stats: stats}
	}
}

func (s *HistoryScreen) Title() string {
	return "History"
}

func (s *HistoryScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Enter", Description: "Answers"},
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *HistoryScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case historyLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
		} else {
			s.sessions = msg.Sessions
			s.stats = msg.Stats
		}
		s.loaded = true
		return s, nil

	case answersLoadedMsg:
		if msg.Err != nil {
			s.errMsg = msg.Err.Error()
			return s, nil
		}
		s.answers[msg.SessionID] = msg.Answers
		return s, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "esc":
			return s, func() tea.Msg { return router.PopScreenMsg{} }
		case "up", "k":
			if s.selected > 0 {
				s.selected--
			}
			return s, nil
		case "down", "j":
			if s.selected < len(s.sessions)-1 {
				s.selected++
			}
			return s, nil
		case "enter":
			return s, s.toggle()
		}
	}
	return s, nil
}

// toggle expands the selected session, fetching its answers on first use.
func (s *HistoryScreen) toggle() tea.Cmd {
	if s.selected >= len(s.sessions) {
		return nil
	}
	s.expanded[s.selected] = !s.expanded[s.selected]
	id := s.sessions[s.selected].ID
	if !s.expanded[s.selected] {
		return nil
	}
	if _, ok := s.answers[id]; ok {
		return nil
	}
	return func() tea.Msg {
		answers, err := s.repo.Answers(context.Background(), id)
		return answersLoadedMsg{SessionID: id, Answers: answers, Err: err}
	}
}

func (s *HistoryScreen) View(width, height int) string {
	if s.errMsg != "" {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.Error).
			Render(fmt.Sprintf("\n\nError: %s", s.errMsg))
	}
	if !s.loaded {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).
			Render("\n\n  Loading history...")
	}
	if len(s.sessions) == 0 {
		return lipgloss.NewStyle().
			Width(width).Align(lipgloss.Center).Foreground(theme.TextDim).Italic(true).
			Render("\n\n  No quizzes yet. Start one from the home screen!")
	}

	var b strings.Builder
	b.WriteString("\n")

	st := s.stats
	summary := fmt.Sprintf("%d quizzes   %d/%d correct   %.0f%% accuracy   best %d",
		st.Sessions, st.AnswersCorrect, st.AnswersGiven, st.Accuracy()*100, st.BestScore)
	b.WriteString(layout.Centered(summary, width, lipgloss.NewStyle().Foreground(theme.Highlight).Bold(true)))
	b.WriteString("\n")
	b.WriteString(layout.Divider(width))
	b.WriteString("\n\n")

	for i, sess := range s.sessions {
		prefix := "  "
		if i == s.selected {
			prefix = "> "
		}

		line := fmt.Sprintf("%s%s  %d/%d  %.0f%% accuracy  %s",
			prefix, sess.CompletedAt.Local().Format("Jan 02 15:04"),
			sess.Score, sess.Questions, sess.Accuracy()*100, shorten(sess.Source, 32))

		style := lipgloss.NewStyle().Foreground(theme.Text)
		if i == s.selected {
			style = style.Foreground(theme.Primary).Bold(true)
		}
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.Render(line)))
		b.WriteString("\n")

		if s.expanded[i] {
			b.WriteString(s.renderAnswers(sess.ID, width))
		}
	}

	return b.String()
}

func (s *HistoryScreen) renderAnswers(sessionID string, width int) string {
	answers, ok := s.answers[sessionID]
	if !ok {
		return layout.Centered("    Loading answers...", width, theme.Hint) + "\n"
	}
	if len(answers) == 0 {
		return layout.Centered("    No answers recorded", width, theme.Hint) + "\n"
	}

	var b strings.Builder
	for _, a := range answers {
		mark, style := "✓", theme.Correct
		if !a.Correct {
			mark, style = "✗", theme.Incorrect
		}
		line := fmt.Sprintf("    %s %d. %s  %s", mark, a.QuestionIndex+1, shorten(a.Question, 48), a.Answer)
		b.WriteString(lipgloss.PlaceHorizontal(width, lipgloss.Center, style.UnsetBold().Render(line)))
		b.WriteString("\n")
	}
	return b.String()
}

// shorten truncates s to n runes with an ellipsis.
func shorten(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
