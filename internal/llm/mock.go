package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// sampleTrivia is served by the mock provider when nothing else is queued,
// so the llm source can be exercised offline.
const sampleTrivia = `{"results":[
{"question":"Which planet is known as the Red Planet?","answers":[{"text":"Mars","is_correct":true},{"text":"Venus","is_correct":false},{"text":"Jupiter","is_correct":false},{"text":"Mercury","is_correct":false}]},
{"question":"What is the chemical symbol for gold?","answers":[{"text":"Ag","is_correct":false},{"text":"Au","is_correct":true},{"text":"Gd","is_correct":false},{"text":"Go","is_correct":false}]},
{"question":"How many sides does a hexagon have?","answers":[{"text":"5","is_correct":false},{"text":"6","is_correct":true},{"text":"7","is_correct":false},{"text":"8","is_correct":false}]}
]}`

// MockResponse is a canned response for the MockProvider.
type MockResponse struct {
	Content json.RawMessage
	Usage   Usage
	Err     error
}

// MockProvider is a deterministic Provider for tests and offline demos.
// It returns canned responses in FIFO order and records all requests.
type MockProvider struct {
	mu        sync.Mutex
	responses []MockResponse
	fallback  json.RawMessage
	Calls     []Request
}

// NewMockProvider creates a MockProvider with the given canned responses.
func NewMockProvider(responses ...MockResponse) *MockProvider {
	return &MockProvider{responses: responses}
}

// NewSampleProvider creates a MockProvider that always answers with a small
// built-in trivia set.
func NewSampleProvider() *MockProvider {
	return &MockProvider{fallback: json.RawMessage(sampleTrivia)}
}

// Generate returns the next canned response, the fallback when the queue
// is empty, or ErrProviderUnavailable when there is neither.
func (m *MockProvider) Generate(_ context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)

	var resp MockResponse
	switch {
	case len(m.responses) > 0:
		resp = m.responses[0]
		m.responses = m.responses[1:]
	case m.fallback != nil:
		resp = MockResponse{Content: m.fallback}
	default:
		return nil, &ErrProviderUnavailable{}
	}

	if resp.Err != nil {
		return nil, resp.Err
	}
	if err := validateResponse(req.Schema, resp.Content); err != nil {
		return nil, err
	}

	return &Response{
		Content:    resp.Content,
		Usage:      resp.Usage,
		Model:      "mock",
		StopReason: "end",
	}, nil
}

// ModelID returns "mock".
func (m *MockProvider) ModelID() string {
	return "mock"
}

// AddResponse appends a canned response to the queue.
func (m *MockProvider) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
