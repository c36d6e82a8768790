package llm

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/triviaz/internal/trivia"
)

func TestSource_Fetch(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(triviaJSON)})
	src := NewSource(mock, "arithmetic", 5)

	items, err := src.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "What is 2 + 2?", items[0].Question)
	ans, ok := items[0].CorrectAnswer()
	require.True(t, ok)
	assert.Equal(t, "4", ans.Text)

	req := mock.Calls[0]
	assert.Equal(t, systemPrompt, req.System)
	assert.Equal(t, trivia.SchemaName, req.Schema.Name)
	assert.Contains(t, req.Messages[0].Content, "Topic: arithmetic")
	assert.Contains(t, req.Messages[0].Content, "Number of questions: 5")
	assert.Equal(t, 256+160*5, req.MaxTokens)
}

func TestSource_AvoidsEarlierQuestions(t *testing.T) {
	src := NewSource(NewSampleProvider(), "general", 3)

	_, err := src.Fetch(context.Background())
	require.NoError(t, err)
	_, err = src.Fetch(context.Background())
	require.NoError(t, err)

	mock := src.provider.(*MockProvider)
	require.Equal(t, 2, mock.CallCount())
	assert.NotContains(t, mock.Calls[0].Messages[0].Content, "Do not ask these again")
	assert.Contains(t, mock.Calls[1].Messages[0].Content, "1. Which planet is known as the Red Planet?")
}

func TestSource_TruncatesToCount(t *testing.T) {
	src := NewSource(NewSampleProvider(), "general", 2)
	items, err := src.Fetch(context.Background())
	require.NoError(t, err)
	assert.Len(t, items, 2)
}

func TestSource_Describe(t *testing.T) {
	src := NewSource(NewSampleProvider(), "history", 0)
	assert.Equal(t, "llm:mock (history)", src.Describe())
	assert.Equal(t, 10, src.count)
}

func TestSource_ErrorMapping(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantKind   trivia.Kind
		wantStatus int
		retryable  bool
	}{
		{"rate limit", &ErrRateLimit{}, trivia.KindStatus, http.StatusTooManyRequests, true},
		{"bad key", &ErrAuth{Status: http.StatusUnauthorized}, trivia.KindStatus, http.StatusUnauthorized, false},
		{"server error", &ErrProviderUnavailable{Status: http.StatusServiceUnavailable}, trivia.KindStatus, http.StatusServiceUnavailable, true},
		{"unreachable", &ErrProviderUnavailable{Err: errors.New("dial tcp: refused")}, trivia.KindTransport, 0, true},
		{"invalid output", &ErrInvalidResponse{Err: errors.New("bad")}, trivia.KindDecode, 0, false},
		{"truncated", &ErrMaxTokensExceeded{}, trivia.KindDecode, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src := NewSource(NewMockProvider(MockResponse{Err: tt.err}), "general", 3)

			_, err := src.Fetch(context.Background())
			require.Error(t, err)
			assert.ErrorIs(t, err, trivia.ErrSourceUnavailable)

			var le *trivia.LoadError
			require.ErrorAs(t, err, &le)
			assert.Equal(t, tt.wantKind, le.Kind)
			assert.Equal(t, tt.wantStatus, le.Status)
			assert.Equal(t, tt.retryable, le.Retryable())
			assert.Equal(t, src.Describe(), le.Source)
		})
	}
}

func TestSource_RejectsAmbiguousItems(t *testing.T) {
	twoCorrect := `{"results":[{"question":"q","answers":[{"text":"a","is_correct":true},{"text":"b","is_correct":true}]}]}`
	src := NewSource(NewMockProvider(MockResponse{Content: json.RawMessage(twoCorrect)}), "general", 3)

	_, err := src.Fetch(context.Background())
	var le *trivia.LoadError
	require.ErrorAs(t, err, &le)
	assert.Equal(t, trivia.KindDecode, le.Kind)
}
