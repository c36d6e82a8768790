package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"github.com/abhisek/triviaz/internal/trivia"
)

// maxAvoid caps how many earlier questions are sent back as exclusions.
const maxAvoid = 30

// Source is a trivia.Source that asks an LLM for a fresh question set.
// Questions from earlier fetches are excluded from later ones.
type Source struct {
	provider Provider
	topic    string
	count    int

	mu    sync.Mutex
	asked []string
}

// NewSource creates a source generating count questions about topic.
func NewSource(p Provider, topic string, count int) *Source {
	if count <= 0 {
		count = 10
	}
	return &Source{provider: p, topic: topic, count: count}
}

// TriviaSchema is the structured output schema for a question set.
func TriviaSchema() *Schema {
	return &Schema{
		Name:        trivia.SchemaName,
		Description: "A set of multiple-choice trivia questions with exactly one correct answer each",
		Definition:  trivia.Definition(true),
	}
}

func (s *Source) Describe() string {
	return fmt.Sprintf("llm:%s (%s)", s.provider.ModelID(), s.topic)
}

func (s *Source) Fetch(ctx context.Context) ([]trivia.Item, error) {
	s.mu.Lock()
	avoid := s.asked
	if len(avoid) > maxAvoid {
		avoid = avoid[len(avoid)-maxAvoid:]
	}
	msg := buildUserMessage(s.topic, s.count, avoid)
	s.mu.Unlock()

	resp, err := s.provider.Generate(ctx, Request{
		System:      systemPrompt,
		Messages:    []Message{{Role: RoleUser, Content: msg}},
		Schema:      TriviaSchema(),
		MaxTokens:   256 + 160*s.count,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, s.loadError(err)
	}

	items, err := trivia.Decode(resp.Content)
	if err != nil {
		return nil, &trivia.LoadError{Kind: trivia.KindDecode, Source: s.Describe(), Err: err}
	}
	if len(items) > s.count {
		items = items[:s.count]
	}

	s.mu.Lock()
	for _, it := range items {
		s.asked = append(s.asked, it.Question)
	}
	s.mu.Unlock()

	return items, nil
}

// loadError maps provider errors onto the trivia failure taxonomy.
func (s *Source) loadError(err error) *trivia.LoadError {
	le := &trivia.LoadError{Kind: trivia.KindTransport, Source: s.Describe(), Err: err}

	var (
		rl      *ErrRateLimit
		auth    *ErrAuth
		unavail *ErrProviderUnavailable
		invalid *ErrInvalidResponse
		maxTok  *ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &rl):
		le.Kind, le.Status = trivia.KindStatus, http.StatusTooManyRequests
	case errors.As(err, &auth):
		le.Kind, le.Status = trivia.KindStatus, auth.Status
	case errors.As(err, &invalid), errors.As(err, &maxTok):
		le.Kind = trivia.KindDecode
	case errors.As(err, &unavail) && unavail.Status != 0:
		le.Kind, le.Status = trivia.KindStatus, unavail.Status
	}
	return le
}
