package trivia

import (
	"context"
	"errors"
	"fmt"
	"net/http"
)

// ErrSourceUnavailable matches every *LoadError via errors.Is.
var ErrSourceUnavailable = errors.New("trivia source unavailable")

// ErrNoQuestions indicates a payload that decoded cleanly but held no items.
var ErrNoQuestions = errors.New("trivia payload contains no questions")

// Kind classifies why a fetch attempt failed.
type Kind int

const (
	KindTransport Kind = iota + 1 // network, file or provider failure
	KindStatus                    // non-200 HTTP status
	KindDecode                    // payload failed validation or decoding
)

func (k Kind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindStatus:
		return "status"
	case KindDecode:
		return "decode"
	default:
		return "unknown"
	}
}

// LoadError reports a failed fetch attempt.
type LoadError struct {
	Kind   Kind
	Status int // HTTP status for KindStatus
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	switch e.Kind {
	case KindStatus:
		return fmt.Sprintf("trivia source %s: HTTP %d", e.Source, e.Status)
	default:
		if e.Err != nil {
			return fmt.Sprintf("trivia source %s: %s: %v", e.Source, e.Kind, e.Err)
		}
		return fmt.Sprintf("trivia source %s: %s failure", e.Source, e.Kind)
	}
}

func (e *LoadError) Unwrap() error { return e.Err }

func (e *LoadError) Is(target error) bool {
	return target == ErrSourceUnavailable
}

// Detail returns the diagnostic string shown next to the
// "source unavailable" message.
func (e *LoadError) Detail() string {
	switch e.Kind {
	case KindStatus:
		if text := http.StatusText(e.Status); text != "" {
			return fmt.Sprintf("server answered %d %s", e.Status, text)
		}
		return fmt.Sprintf("server answered %d", e.Status)
	case KindDecode:
		return fmt.Sprintf("unreadable question data: %v", e.Err)
	default:
		if errors.Is(e.Err, context.DeadlineExceeded) {
			return "request timed out"
		}
		if e.Err != nil {
			return e.Err.Error()
		}
		return "connection failed"
	}
}

// Retryable reports whether another attempt could succeed.
// Decode failures and client errors are permanent; cancellation is final.
func (e *LoadError) Retryable() bool {
	if errors.Is(e.Err, context.Canceled) {
		return false
	}
	switch e.Kind {
	case KindTransport:
		return true
	case KindStatus:
		return e.Status == http.StatusTooManyRequests || e.Status >= 500
	default:
		return false
	}
}

// AsLoadError returns err as a *LoadError, wrapping foreign errors as
// transport failures of the named source.
func AsLoadError(err error, source string) *LoadError {
	if err == nil {
		return nil
	}
	var le *LoadError
	if errors.As(err, &le) {
		return le
	}
	return &LoadError{Kind: KindTransport, Source: source, Err: err}
}
