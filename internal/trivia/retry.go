package trivia

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryConfig configures retry behavior for transient fetch failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64

	// AttemptTimeout bounds each attempt so a hung one leaves time for
	// the next. Zero leaves attempts bounded only by the caller's context.
	AttemptTimeout time.Duration
}

// DefaultRetryConfig returns the retry policy used when none is configured.
func DefaultRetryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: 500 * time.Millisecond,
		MaxWait:     5 * time.Second,
		Multiplier:  2.0,
	}
}

// RetrySource is a decorator that retries transient failures with
// exponential backoff and jitter.
type RetrySource struct {
	inner  Source
	config RetryConfig
}

// WithRetry wraps a Source with retry logic. A MaxAttempts of 1 or less
// returns src unchanged.
func WithRetry(src Source, cfg RetryConfig) Source {
	if cfg.MaxAttempts <= 1 {
		return src
	}
	return &RetrySource{inner: src, config: cfg}
}

func (r *RetrySource) Describe() string { return r.inner.Describe() }

func (r *RetrySource) Fetch(ctx context.Context) ([]Item, error) {
	var lastErr error

	for attempt := range r.config.MaxAttempts {
		items, err := r.fetchOnce(ctx)
		if err == nil {
			return items, nil
		}
		lastErr = err

		if !shouldRetry(ctx, err) {
			return nil, err
		}
		if attempt == r.config.MaxAttempts-1 {
			break
		}

		select {
		case <-ctx.Done():
			return nil, lastErr
		case <-time.After(r.backoff(attempt)):
		}
	}

	return nil, lastErr
}

func (r *RetrySource) fetchOnce(ctx context.Context) ([]Item, error) {
	if r.config.AttemptTimeout <= 0 {
		return r.inner.Fetch(ctx)
	}
	attemptCtx, cancel := context.WithTimeout(ctx, r.config.AttemptTimeout)
	defer cancel()
	return r.inner.Fetch(attemptCtx)
}

func shouldRetry(ctx context.Context, err error) bool {
	if ctx.Err() != nil {
		return false
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le.Retryable()
	}
	return !errors.Is(err, context.Canceled)
}

func (r *RetrySource) backoff(attempt int) time.Duration {
	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt))
	if r.config.MaxWait > 0 && wait > float64(r.config.MaxWait) {
		wait = float64(r.config.MaxWait)
	}

	// ±20% jitter.
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	if wait < 0 {
		wait = 0
	}
	return time.Duration(wait)
}
