// Package fetcher downloads pages for extraction.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/net/html/charset"
)

// ErrTooLarge is returned when a page exceeds the configured byte limit.
var ErrTooLarge = errors.New("page exceeds size limit")

// StatusError reports a non-2xx page response.
type StatusError struct {
	StatusCode int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("failed to fetch HTML, status code: %d", e.StatusCode)
}

type Fetcher struct {
	client    *http.Client
	userAgent string
	maxBytes  int64
}

type Option func(*Fetcher)

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) { f.userAgent = ua }
}

// WithMaxBytes caps the decoded body size. Zero or negative means unlimited.
func WithMaxBytes(n int64) Option {
	return func(f *Fetcher) { f.maxBytes = n }
}

// WithTimeout sets the client timeout. Zero disables it.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) { f.client.Timeout = d }
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(c *http.Client) Option {
	return func(f *Fetcher) { f.client = c }
}

func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		client: &http.Client{},
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// GetHtmlString fetches url and returns its body decoded to UTF-8.
func (f *Fetcher) GetHtmlString(ctx context.Context, url string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}
	req.Header.Set("Accept", "text/html,application/xhtml+xml;q=0.9,*/*;q=0.8")

	resp, err := f.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to make HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return "", &StatusError{StatusCode: resp.StatusCode}
	}

	reader, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return "", fmt.Errorf("failed to decode charset: %w", err)
	}

	if f.maxBytes > 0 {
		reader = io.LimitReader(reader, f.maxBytes+1)
	}

	bodyBytes, err := io.ReadAll(reader)
	if err != nil {
		return "", fmt.Errorf("failed to read response body: %w", err)
	}
	if f.maxBytes > 0 && int64(len(bodyBytes)) > f.maxBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrTooLarge, f.maxBytes)
	}

	return string(bodyBytes), nil
}
