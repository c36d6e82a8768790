package llm

import (
	"fmt"
	"os"
	"time"

	"github.com/abhisek/triviaz/internal/config"
)

// Provider names.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// defaultModels is used when no model is configured.
var defaultModels = map[string]string{
	ProviderAnthropic:  "claude-haiku",
	ProviderOpenAI:     "gpt-4o-mini",
	ProviderGemini:     "gemini-flash",
	ProviderOpenRouter: "google/gemini-2.0-flash-exp",
}

// apiKeyEnv lists the conventional API key variable per provider.
var apiKeyEnv = map[string]string{
	ProviderAnthropic:  "ANTHROPIC_API_KEY",
	ProviderOpenAI:     "OPENAI_API_KEY",
	ProviderGemini:     "GEMINI_API_KEY",
	ProviderOpenRouter: "OPENROUTER_API_KEY",
}

// Config holds LLM provider configuration.
type Config struct {
	Provider string
	Model    string
	APIKey   string
	BaseURL  string // Optional endpoint override.

	// Timeout bounds a single generation request.
	Timeout time.Duration
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Override for OpenRouter or compatible APIs.
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey  string
	Model   string
	BaseURL string
}

// OpenRouterConfig holds OpenRouter-specific configuration.
type OpenRouterConfig struct {
	APIKey  string
	Model   string
	BaseURL string // Default: "https://openrouter.ai/api/v1"
}

// ConfigFrom builds a Config from application settings. An empty API key
// falls back to the provider's conventional environment variable, and an
// empty model to the provider default.
func ConfigFrom(s config.LLM) Config {
	cfg := Config{
		Provider: s.Provider,
		Model:    s.Model,
		APIKey:   s.APIKey,
		BaseURL:  s.BaseURL,
		Timeout:  s.Timeout,
	}
	if cfg.APIKey == "" {
		if env, ok := apiKeyEnv[cfg.Provider]; ok {
			cfg.APIKey = os.Getenv(env)
		}
	}
	if cfg.Model == "" {
		cfg.Model = defaultModels[cfg.Provider]
	}
	return cfg
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter:
		if c.APIKey == "" {
			return fmt.Errorf("%s (or TRIVIAZ_LLM_API_KEY) is required for the %s provider",
				apiKeyEnv[c.Provider], c.Provider)
		}
	case ProviderMock:
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}

func (c Config) anthropic() AnthropicConfig {
	return AnthropicConfig{APIKey: c.APIKey, Model: c.Model, BaseURL: c.BaseURL}
}

func (c Config) openAI() OpenAIConfig {
	return OpenAIConfig{APIKey: c.APIKey, Model: c.Model, BaseURL: c.BaseURL}
}

func (c Config) gemini() GeminiConfig {
	return GeminiConfig{APIKey: c.APIKey, Model: c.Model, BaseURL: c.BaseURL}
}

func (c Config) openRouter() OpenRouterConfig {
	return OpenRouterConfig{APIKey: c.APIKey, Model: c.Model, BaseURL: c.BaseURL}
}
