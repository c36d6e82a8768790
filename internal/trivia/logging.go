package trivia

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"
)

// LoggingSource is a decorator that logs every fetch.
type LoggingSource struct {
	inner  Source
	logger *zap.Logger
}

// WithLogging wraps a Source with fetch logging.
func WithLogging(src Source, logger *zap.Logger) Source {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LoggingSource{inner: src, logger: logger}
}

func (l *LoggingSource) Describe() string { return l.inner.Describe() }

func (l *LoggingSource) Fetch(ctx context.Context) ([]Item, error) {
	start := time.Now()
	l.logger.Debug("fetching trivia", zap.String("source", l.inner.Describe()))

	items, err := l.inner.Fetch(ctx)

	fields := []zap.Field{
		zap.String("source", l.inner.Describe()),
		zap.Duration("latency", time.Since(start)),
	}
	if err != nil {
		var le *LoadError
		if errors.As(err, &le) {
			fields = append(fields, zap.Stringer("kind", le.Kind))
			if le.Status != 0 {
				fields = append(fields, zap.Int("status", le.Status))
			}
		}
		l.logger.Warn("trivia fetch failed", append(fields, zap.Error(err))...)
		return nil, err
	}

	l.logger.Info("trivia fetched", append(fields, zap.Int("items", len(items)))...)
	return items, nil
}
