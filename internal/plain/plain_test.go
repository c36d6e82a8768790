package plain

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/quiz"
	"github.com/abhisek/triviaz/internal/trivia"
)

type fakeSource struct {
	items []trivia.Item
	err   error
}

func (f fakeSource) Fetch(context.Context) ([]trivia.Item, error) { return f.items, f.err }
func (f fakeSource) Describe() string                              { return "test://fake" }

func twoQuestions() []trivia.Item {
	return []trivia.Item{
		{Question: "2+2?", Answers: []trivia.Answer{{Text: "4", IsCorrect: true}, {Text: "5"}}},
		{Question: "Capital of France?", Answers: []trivia.Answer{{Text: "Lyon"}, {Text: "Paris", IsCorrect: true}}},
	}
}

func run(t *testing.T, src trivia.Source, input string) (string, *quiz.Controller, error) {
	t.Helper()
	ctrl := quiz.New(src)
	var out bytes.Buffer
	err := New(ctrl, strings.NewReader(input), &out, nil).Run(context.Background())
	return out.String(), ctrl, err
}

func TestRunner_PlaysToTheEnd(t *testing.T) {
	out, ctrl, err := run(t, fakeSource{items: twoQuestions()}, "1\n1\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Question 1/2")
	assert.Contains(t, out, "  1) 4")
	assert.Contains(t, out, "Correct!")
	assert.Contains(t, out, "Not quite. Correct answer: Paris")
	assert.Contains(t, out, "Final score: 1/2 (50% of answered)")

	st := ctrl.State()
	assert.True(t, st.ReachedEnd)
	assert.Equal(t, quiz.PhaseCompleted, st.Phase)
}

func TestRunner_RepromptsOnInvalidInput(t *testing.T) {
	out, ctrl, err := run(t, fakeSource{items: twoQuestions()}, "abc\n9\n1\n2\n")
	require.NoError(t, err)

	assert.Equal(t, 2, strings.Count(out, "Enter a number between 1 and 2."))
	assert.Equal(t, 2, ctrl.State().Score)
}

func TestRunner_EOFStopsEarly(t *testing.T) {
	out, ctrl, err := run(t, fakeSource{items: twoQuestions()}, "1\n")
	require.NoError(t, err)

	assert.Contains(t, out, "Stopped early.")
	assert.Contains(t, out, "Final score: 1/2")
	assert.False(t, ctrl.State().ReachedEnd)
}

func TestRunner_LastLineWithoutNewline(t *testing.T) {
	_, ctrl, err := run(t, fakeSource{items: twoQuestions()}, "1\n2")
	require.NoError(t, err)
	assert.Equal(t, 2, ctrl.State().Score)
	assert.True(t, ctrl.State().ReachedEnd)
}

func TestRunner_LoadFailure(t *testing.T) {
	src := fakeSource{err: &trivia.LoadError{Kind: trivia.KindStatus, Status: 503, Source: "test://fake"}}
	out, ctrl, err := run(t, src, "")

	require.Error(t, err)
	assert.ErrorIs(t, err, trivia.ErrSourceUnavailable)
	assert.Contains(t, out, "Trivia source unavailable")
	assert.Equal(t, quiz.PhaseLoadFailed, ctrl.State().Phase)
}

func TestRunner_CanceledContext(t *testing.T) {
	ctrl := quiz.New(fakeSource{items: twoQuestions()})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	var out bytes.Buffer
	err := New(ctrl, strings.NewReader("1\n"), &out, nil).Run(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}
