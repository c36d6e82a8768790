package home

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/abhisek/triviaz/internal/history"
	"github.com/abhisek/triviaz/internal/router"
	"github.com/abhisek/triviaz/internal/screen"
)

type fakeStats struct {
	stats history.Stats
	calls int
}

func (f *fakeStats) Stats(context.Context) (history.Stats, error) {
	f.calls++
	return f.stats, nil
}

type stubScreen struct{ title string }

func (s stubScreen) Init() tea.Cmd                           { return nil }
func (s stubScreen) Update(tea.Msg) (screen.Screen, tea.Cmd) { return s, nil }
func (s stubScreen) View(int, int) string                    { return s.title }
func (s stubScreen) Title() string                           { return s.title }

func testHome(reader StatsReader) *HomeScreen {
	return New(Options{
		Source:     "https://example.test/trivia",
		Stats:      reader,
		NewQuiz:    func() screen.Screen { return stubScreen{title: "quiz"} },
		NewHistory: func() screen.Screen { return stubScreen{title: "history"} },
	})
}

func TestHomeScreen_StartQuizPushesQuiz(t *testing.T) {
	h := testHome(nil)
	_, cmd := h.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	if cmd == nil {
		t.Fatal("expected a command on Enter")
	}
	msg, ok := cmd().(router.PushScreenMsg)
	if !ok {
		t.Fatal("expected PushScreenMsg")
	}
	if msg.Screen.Title() != "quiz" {
		t.Errorf("pushed %q, want quiz", msg.Screen.Title())
	}
}

func TestHomeScreen_HistoryDisabledWithoutStore(t *testing.T) {
	h := New(Options{NewQuiz: func() screen.Screen { return stubScreen{title: "quiz"} }})

	h.Update(tea.KeyPressMsg{Code: tea.KeyDown})
	if h.menu.Selected != 2 {
		t.Errorf("Selected = %d, want 2 (EXIT, HISTORY skipped)", h.menu.Selected)
	}
}

func TestHomeScreen_StatsRefreshOnResume(t *testing.T) {
	reader := &fakeStats{stats: history.Stats{Sessions: 3, AnswersGiven: 10, AnswersCorrect: 7, BestScore: 9}}
	h := testHome(reader)

	h.Update(h.Init()())
	view := h.View(100, 40)
	if !strings.Contains(view, "BEST 9") || !strings.Contains(view, "70% ACCURACY") {
		t.Errorf("expected stats in home view")
	}

	reader.stats.BestScore = 10
	h.Update(h.Resume()())
	if !strings.Contains(h.View(100, 40), "BEST 10") {
		t.Error("expected refreshed stats after resume")
	}
	if reader.calls != 2 {
		t.Errorf("stats calls = %d, want 2", reader.calls)
	}
}

func TestHomeScreen_View(t *testing.T) {
	h := testHome(nil)
	view := h.View(100, 40)
	for _, want := range []string{"START QUIZ", "HISTORY", "EXIT", "example.test"} {
		if !strings.Contains(view, want) {
			t.Errorf("expected %q in home view", want)
		}
	}
	if h.Title() != "Home" {
		t.Errorf("Title = %q", h.Title())
	}
}
