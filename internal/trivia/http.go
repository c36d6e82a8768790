package trivia

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

// maxBodyBytes caps how much of a response body is read.
const maxBodyBytes = 4 << 20

// HTTPSource fetches a trivia payload with a single GET request.
type HTTPSource struct {
	url       string
	client    *http.Client
	userAgent string
	timeout   time.Duration
}

// HTTPOption configures an HTTPSource.
type HTTPOption func(*HTTPSource)

// WithHTTPClient replaces the default HTTP client.
func WithHTTPClient(c *http.Client) HTTPOption {
	return func(s *HTTPSource) { s.client = c }
}

// WithUserAgent sets the User-Agent header.
func WithUserAgent(ua string) HTTPOption {
	return func(s *HTTPSource) { s.userAgent = ua }
}

// WithTimeout bounds a single request. Zero means no per-request limit
// beyond the caller's context.
func WithTimeout(d time.Duration) HTTPOption {
	return func(s *HTTPSource) { s.timeout = d }
}

// NewHTTPSource creates a source for the given URL.
func NewHTTPSource(url string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		url:       url,
		client:    http.DefaultClient,
		userAgent: "triviaz",
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *HTTPSource) Describe() string { return s.url }

func (s *HTTPSource) Fetch(ctx context.Context) ([]Item, error) {
	if s.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, nil)
	if err != nil {
		return nil, &LoadError{Kind: KindTransport, Source: s.url, Err: fmt.Errorf("build request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	if s.userAgent != "" {
		req.Header.Set("User-Agent", s.userAgent)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, &LoadError{Kind: KindTransport, Source: s.url, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		// Drain so the connection can be reused.
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxBodyBytes))
		return nil, &LoadError{Kind: KindStatus, Status: resp.StatusCode, Source: s.url}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes+1))
	if err != nil {
		return nil, &LoadError{Kind: KindTransport, Source: s.url, Err: fmt.Errorf("read body: %w", err)}
	}
	if len(body) > maxBodyBytes {
		return nil, &LoadError{Kind: KindDecode, Source: s.url, Err: fmt.Errorf("payload exceeds %d MiB", maxBodyBytes>>20)}
	}

	items, err := Decode(body)
	if err != nil {
		return nil, &LoadError{Kind: KindDecode, Source: s.url, Err: err}
	}
	return items, nil
}
