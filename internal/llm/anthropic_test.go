package llm

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestAnthropicProvider(t *testing.T, handler http.HandlerFunc) *AnthropicProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	p, err := NewAnthropicProvider(AnthropicConfig{
		APIKey:  "test-key",
		Model:   "claude-haiku",
		BaseURL: server.URL,
	})
	require.NoError(t, err)
	return p
}

func anthropicError(status int, kind string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		json.NewEncoder(w).Encode(map[string]any{
			"type":  "error",
			"error": map[string]any{"type": kind, "message": "nope"},
		})
	}
}

func TestAnthropicProvider_HappyPath(t *testing.T) {
	var body map[string]any
	handler := func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": triviaJSON}},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "end_turn",
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	resp, err := p.Generate(context.Background(), Request{
		System:    "You are a quiz master.",
		Messages:  []Message{{Role: RoleUser, Content: "Topic: space"}},
		Schema:    TriviaSchema(),
		MaxTokens: 512,
	})
	require.NoError(t, err)
	assert.JSONEq(t, triviaJSON, string(resp.Content))
	assert.Equal(t, 80, resp.Usage.TotalTokens)
	assert.Equal(t, "end", resp.StopReason)

	assert.Equal(t, "claude-haiku-4-5-20251001", body["model"])
	assert.Contains(t, body, "output_config")
}

func TestAnthropicProvider_MaxTokens(t *testing.T) {
	handler := func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]any{
			"id":          "msg_test",
			"type":        "message",
			"role":        "assistant",
			"content":     []map[string]any{{"type": "text", "text": `{"results":[`}},
			"model":       "claude-haiku-4-5-20251001",
			"stop_reason": "max_tokens",
			"usage":       map[string]any{"input_tokens": 50, "output_tokens": 30},
		})
	}

	p := newTestAnthropicProvider(t, handler)
	_, err := p.Generate(context.Background(), Request{
		Messages:  []Message{{Role: RoleUser, Content: "test"}},
		Schema:    TriviaSchema(),
		MaxTokens: 30,
	})
	var maxTok *ErrMaxTokensExceeded
	assert.ErrorAs(t, err, &maxTok)
}

func TestAnthropicProvider_Errors(t *testing.T) {
	t.Run("rate limit", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicError(http.StatusTooManyRequests, "rate_limit_error"))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 10})
		var rl *ErrRateLimit
		assert.ErrorAs(t, err, &rl)
	})

	t.Run("bad key", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicError(http.StatusUnauthorized, "authentication_error"))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 10})
		var auth *ErrAuth
		require.ErrorAs(t, err, &auth)
		assert.Equal(t, http.StatusUnauthorized, auth.Status)
	})

	t.Run("server error", func(t *testing.T) {
		p := newTestAnthropicProvider(t, anthropicError(http.StatusInternalServerError, "api_error"))
		_, err := p.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "x"}}, MaxTokens: 10})
		var unavail *ErrProviderUnavailable
		require.ErrorAs(t, err, &unavail)
		assert.Equal(t, http.StatusInternalServerError, unavail.Status)
	})
}

func TestNewAnthropicProvider_RequiresKey(t *testing.T) {
	_, err := NewAnthropicProvider(AnthropicConfig{Model: "claude-haiku"})
	assert.Error(t, err)
}

func TestResolveModel(t *testing.T) {
	tests := []struct {
		input  string
		models map[string]string
		want   string
	}{
		{"claude-sonnet", anthropicModels, "claude-sonnet-4-20250514"},
		{"claude-haiku", anthropicModels, "claude-haiku-4-5-20251001"},
		{"claude-sonnet-4-20250514", anthropicModels, "claude-sonnet-4-20250514"},
		{"gemini-flash", geminiModels, "gemini-2.0-flash"},
		{"gemini-2.5-pro", geminiModels, "gemini-2.5-pro"},
		{"gpt-4o-mini", openaiModels, "gpt-4o-mini"},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, resolveModel(tt.input, tt.models))
		})
	}
}
