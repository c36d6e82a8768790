package llm

import "fmt"

const defaultOpenRouterBaseURL = "https://openrouter.ai/api/v1"

// OpenRouterProvider generates trivia sets through OpenRouter's
// chat-completions endpoint, which speaks the OpenAI wire format.
type OpenRouterProvider struct {
	*OpenAIProvider
}

// NewOpenRouterProvider requires an API key; BaseURL defaults to the
// public OpenRouter endpoint.
func NewOpenRouterProvider(cfg OpenRouterConfig) (*OpenRouterProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("llm.api_key (or OPENROUTER_API_KEY) is required for provider %q", ProviderOpenRouter)
	}

	baseURL := cfg.BaseURL
	if baseURL == "" {
		baseURL = defaultOpenRouterBaseURL
	}

	inner, err := NewOpenAIProvider(OpenAIConfig{APIKey: cfg.APIKey, Model: cfg.Model, BaseURL: baseURL})
	if err != nil {
		return nil, fmt.Errorf("openrouter: %w", err)
	}
	return &OpenRouterProvider{OpenAIProvider: inner}, nil
}
