package cmd

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/triviaz/internal/config"
	"github.com/abhisek/triviaz/internal/llm"
	"github.com/abhisek/triviaz/internal/trivia"
)

// buildSource creates the configured trivia source wrapped with retry and
// logging.
func buildSource(ctx context.Context, cfg *config.Config, logger *zap.Logger) (trivia.Source, error) {
	var src trivia.Source

	switch cfg.Source.Kind {
	case config.SourceHTTP:
		src = trivia.NewHTTPSource(cfg.Source.URL,
			trivia.WithUserAgent(cfg.Source.UserAgent),
			trivia.WithTimeout(cfg.Source.Timeout),
		)
	case config.SourceFile:
		src = trivia.NewFileSource(cfg.Source.Path)
	case config.SourceLLM:
		provider, err := llm.NewProvider(ctx, llm.ConfigFrom(cfg.LLM), logger)
		if err != nil {
			return nil, fmt.Errorf("create LLM provider: %w", err)
		}
		src = llm.NewSource(provider, cfg.LLM.Topic, cfg.LLM.Count)
	default:
		return nil, fmt.Errorf("unknown source kind %q", cfg.Source.Kind)
	}

	src = trivia.WithRetry(src, trivia.RetryConfig{
		MaxAttempts: cfg.Source.Retry.MaxAttempts,
		InitialWait: cfg.Source.Retry.InitialWait,
		MaxWait:     cfg.Source.Retry.MaxWait,
		Multiplier:  cfg.Source.Retry.Multiplier,

		AttemptTimeout: attemptTimeout(cfg),
	})
	return trivia.WithLogging(src, logger), nil
}

// attemptTimeout bounds a single fetch attempt. Generated lists take longer
// than a download.
func attemptTimeout(cfg *config.Config) time.Duration {
	if cfg.Source.Kind == config.SourceLLM && cfg.LLM.Timeout > cfg.Source.Timeout {
		return cfg.LLM.Timeout
	}
	return cfg.Source.Timeout
}

// loadTimeout bounds one load of the configured source, retries included:
// every attempt may use its full timeout and each backoff may reach
// MaxWait plus jitter.
func loadTimeout(cfg *config.Config) time.Duration {
	attempts := max(cfg.Source.Retry.MaxAttempts, 1)
	budget := attemptTimeout(cfg) * time.Duration(attempts)
	if attempts > 1 {
		wait := cfg.Source.Retry.MaxWait
		if wait <= 0 {
			wait = cfg.Source.Retry.InitialWait
		}
		budget += wait * 6 / 5 * time.Duration(attempts-1)
	}
	return budget
}
