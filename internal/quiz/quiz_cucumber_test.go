//go:build cucumber

package quiz

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/cucumber/godog"

	"github.com/abhisek/triviaz/internal/trivia"
)

// TestQuizScenarios runs the quiz session feature scenarios.
func TestQuizScenarios(t *testing.T) {
	suite := godog.TestSuite{
		Name:                "quiz-session",
		ScenarioInitializer: InitializeQuizScenario,
		Options: &godog.Options{
			Format:   "pretty",
			Paths:    []string{filepath.Join("features", "session.feature")},
			Strict:   true,
			TestingT: t,
		},
	}
	if suite.Run() != 0 {
		t.Fatalf("non-zero godog status")
	}
}

// InitializeQuizScenario wires steps for quiz session scenarios.
func InitializeQuizScenario(ctx *godog.ScenarioContext) {
	state := &quizScenarioState{}
	ctx.Before(func(ctx context.Context, _ *godog.Scenario) (context.Context, error) {
		state.reset()
		return ctx, nil
	})

	ctx.Step(`^the trivia source serves:$`, state.givenSourceServes)
	ctx.Step(`^the trivia source answers with HTTP (\d+)$`, state.givenSourceStatus)
	ctx.Step(`^the quiz is loaded$`, state.whenLoaded)
	ctx.Step(`^I select "([^"]+)"$`, state.whenSelect)
	ctx.Step(`^I advance$`, state.whenAdvance)
	ctx.Step(`^the current question is "([^"]+)"$`, state.thenQuestion)
	ctx.Step(`^the index is (\d+) and the score is (\d+)$`, state.thenIndexAndScore)
	ctx.Step(`^the score is (\d+)$`, state.thenScore)
	ctx.Step(`^an answer is selected$`, state.thenSelected(true))
	ctx.Step(`^no answer is selected$`, state.thenSelected(false))
	ctx.Step(`^the quiz has reached the end at index (\d+)$`, state.thenReachedEnd)
	ctx.Step(`^the selection is rejected as already answered$`, state.thenAlreadyAnswered)
	ctx.Step(`^the load fails with a source unavailable error$`, state.thenLoadFailed)
	ctx.Step(`^the phase is "([^"]+)"$`, state.thenPhase)
}

type quizScenarioState struct {
	src       *staticSource
	ctrl      *Controller
	loadErr   error
	selectErr error
}

// reset clears scenario state.
func (s *quizScenarioState) reset() {
	s.src = &staticSource{}
	s.ctrl = New(s.src)
	s.loadErr = nil
	s.selectErr = nil
}

func (s *quizScenarioState) givenSourceServes(table *godog.Table) error {
	var items []trivia.Item
	for _, row := range table.Rows[1:] {
		if len(row.Cells) != 3 {
			return fmt.Errorf("expected 3 columns, got %d", len(row.Cells))
		}
		items = append(items, trivia.Item{
			Question: row.Cells[0].Value,
			Answers: []trivia.Answer{
				{Text: row.Cells[1].Value, IsCorrect: true},
				{Text: row.Cells[2].Value},
			},
		})
	}
	s.src.set(items, nil)
	return nil
}

func (s *quizScenarioState) givenSourceStatus(status int) error {
	s.src.set(nil, &trivia.LoadError{Kind: trivia.KindStatus, Status: status, Source: "static"})
	return nil
}

func (s *quizScenarioState) whenLoaded() error {
	s.loadErr = s.ctrl.Load(context.Background())
	return nil
}

func (s *quizScenarioState) whenSelect(text string) error {
	for _, a := range s.ctrl.State().Choices {
		if a.Text == text {
			s.selectErr = s.ctrl.Select(a)
			return nil
		}
	}
	return fmt.Errorf("no choice %q", text)
}

func (s *quizScenarioState) whenAdvance() error {
	return s.ctrl.Advance()
}

func (s *quizScenarioState) thenQuestion(want string) error {
	if got := s.ctrl.State().Question; got != want {
		return fmt.Errorf("question = %q, want %q", got, want)
	}
	return nil
}

func (s *quizScenarioState) thenIndexAndScore(index, score int) error {
	st := s.ctrl.State()
	if st.Index != index || st.Score != score {
		return fmt.Errorf("index/score = %d/%d, want %d/%d", st.Index, st.Score, index, score)
	}
	return nil
}

func (s *quizScenarioState) thenScore(want int) error {
	if got := s.ctrl.State().Score; got != want {
		return fmt.Errorf("score = %d, want %d", got, want)
	}
	return nil
}

func (s *quizScenarioState) thenSelected(want bool) func() error {
	return func() error {
		if got := s.ctrl.State().AnswerSelected; got != want {
			return fmt.Errorf("answer selected = %v, want %v", got, want)
		}
		return nil
	}
}

func (s *quizScenarioState) thenReachedEnd(index int) error {
	st := s.ctrl.State()
	if !st.ReachedEnd {
		return errors.New("quiz has not reached the end")
	}
	if st.Index != index {
		return fmt.Errorf("index = %d, want %d", st.Index, index)
	}
	return nil
}

func (s *quizScenarioState) thenAlreadyAnswered() error {
	if !errors.Is(s.selectErr, ErrAlreadyAnswered) {
		return fmt.Errorf("select error = %v, want %v", s.selectErr, ErrAlreadyAnswered)
	}
	return nil
}

func (s *quizScenarioState) thenLoadFailed() error {
	if !errors.Is(s.loadErr, trivia.ErrSourceUnavailable) {
		return fmt.Errorf("load error = %v, want source unavailable", s.loadErr)
	}
	return nil
}

func (s *quizScenarioState) thenPhase(want string) error {
	if got := s.ctrl.State().Phase.String(); got != want {
		return fmt.Errorf("phase = %q, want %q", got, want)
	}
	return nil
}
