package llm

import (
	"context"
	"fmt"

	"go.uber.org/zap"
)

// NewProvider creates a Provider from configuration, wrapped with logging.
// Retries are left to the trivia source layer.
func NewProvider(ctx context.Context, cfg Config, logger *zap.Logger) (Provider, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case ProviderAnthropic:
		base, err = NewAnthropicProvider(cfg.anthropic())
	case ProviderOpenAI:
		base, err = NewOpenAIProvider(cfg.openAI())
	case ProviderOpenRouter:
		base, err = NewOpenRouterProvider(cfg.openRouter())
	case ProviderGemini:
		base, err = NewGeminiProvider(ctx, cfg.gemini())
	case ProviderMock:
		base = NewSampleProvider()
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	return WithLogging(base, logger), nil
}
