// Package fetch implements the PageSession interface.
// A session owns one page-rendering backend for the lifetime of an
// extraction run: a plain HTTP client for static pages, or a headless
// Chrome instance for script-rendered ones.
package fetch

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gaurav-prasanna/deckpipe/core"
)

const (
	defaultTimeout = 30 * time.Second
	// Marketing sites routinely block obvious bots, so sessions present a
	// browser user agent.
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
)

// StaticSession loads pages over plain HTTP.
type StaticSession struct {
	client    *http.Client
	userAgent string
}

// Option configures a session.
type Option func(*StaticSession)

// WithTimeout sets the per-load timeout.
func WithTimeout(d time.Duration) Option {
	return func(s *StaticSession) {
		s.client.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(s *StaticSession) {
		s.userAgent = ua
	}
}

// NewStatic creates a StaticSession with sensible defaults.
func NewStatic(opts ...Option) *StaticSession {
	s := &StaticSession{
		client:    &http.Client{Timeout: defaultTimeout},
		userAgent: defaultUserAgent,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Load retrieves the HTML content of the given URL.
func (s *StaticSession) Load(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", s.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("%w: loading %s: %v", core.ErrFetchFailed, url, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", fmt.Errorf("%w: unexpected status %d for %s", core.ErrFetchFailed, resp.StatusCode, url)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("%w: reading response body: %v", core.ErrFetchFailed, err)
	}
	return string(body), nil
}

// Close releases session resources. The HTTP session holds none.
func (s *StaticSession) Close() error {
	s.client.CloseIdleConnections()
	return nil
}
