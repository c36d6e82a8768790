package summary

import (
	"strings"
	"testing"
	"time"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
	"github.com/abhisek/triviaz/internal/trivia"
)

func testState() quiz.State {
	items := []trivia.Item{
		{Question: "q1", Answers: []trivia.Answer{{Text: "a", IsCorrect: true}}},
		{Question: "q2", Answers: []trivia.Answer{{Text: "b", IsCorrect: true}}},
	}
	return quiz.State{
		Phase:      quiz.PhaseCompleted,
		Items:      items,
		Index:      1,
		Score:      1,
		Answered:   2,
		ReachedEnd: true,
		Source:     "https://example.test/trivia",
		StartedAt:  time.Now().Add(-90 * time.Second),
	}
}

type stubScreen struct{}

func (stubScreen) Init() tea.Cmd                            { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (stubScreen) View(int, int) string                     { return "" }
func (stubScreen) Title() string                            { return "stub" }

func TestSummaryScreen_Title(t *testing.T) {
	s := New(testState(), nil)
	if s.Title() != "Results" {
		t.Errorf("Title = %q, want %q", s.Title(), "Results")
	}
}

func TestSummaryScreen_Display(t *testing.T) {
	view := New(testState(), nil).View(80, 24)
	for _, want := range []string{"1 / 2", "Accuracy: 50%", "Time: 1:30", "example.test"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in summary view", want)
		}
	}
}

func TestSummaryScreen_Navigation_Enter(t *testing.T) {
	s := New(testState(), nil)
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter (pop)")
	}
	if _, ok := cmd().(router.PopScreenMsg); !ok {
		t.Error("expected PopScreenMsg on Enter")
	}
}

func TestSummaryScreen_PlayAgain(t *testing.T) {
	s := New(testState(), func() screen.Screen { return stubScreen{} })
	_, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"})
	if cmd == nil {
		t.Fatal("expected a command on p")
	}
	msg, ok := cmd().(router.ReplaceScreenMsg)
	if !ok {
		t.Fatal("expected ReplaceScreenMsg on p")
	}
	if msg.Screen.Title() != "stub" {
		t.Errorf("replacement = %q, want stub", msg.Screen.Title())
	}
}

func TestSummaryScreen_PlayAgainDisabled(t *testing.T) {
	s := New(testState(), nil)
	if _, cmd := s.Update(tea.KeyPressMsg{Code: 'p', Text: "p"}); cmd != nil {
		t.Error("expected no command without a replay factory")
	}
	if len(s.KeyHints()) != 2 {
		t.Errorf("KeyHints length = %d, want 2", len(s.KeyHints()))
	}
}

func TestVerdict(t *testing.T) {
	if verdict(5, 5) != "Perfect round!" {
		t.Error("expected perfect verdict")
	}
	if verdict(0, 0) != "" {
		t.Error("expected empty verdict for empty quiz")
	}
}
