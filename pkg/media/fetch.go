package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// ErrBadSource marks a source URL the fetcher refuses to open.
var ErrBadSource = errors.New("source url is not fetchable")

// Fetcher opens an audio stream from a source URL.
type Fetcher interface {
	Open(ctx context.Context, sourceURL string) (io.ReadCloser, error)
}

// HTTPFetcher streams media over plain HTTP(S) GET.
type HTTPFetcher struct {
	Client *http.Client
}

// NewHTTPFetcher returns a fetcher with a connect-bounded client. No overall
// request timeout: stream reads can legitimately take tens of seconds and are
// interruptible through ctx instead.
func NewHTTPFetcher() *HTTPFetcher {
	return &HTTPFetcher{
		Client: &http.Client{
			Transport: &http.Transport{
				ResponseHeaderTimeout: 30 * time.Second,
			},
		},
	}
}

// Open validates the URL and returns the response body stream. The caller
// owns closing it.
func (f *HTTPFetcher) Open(ctx context.Context, sourceURL string) (io.ReadCloser, error) {
	if err := ValidateSource(sourceURL); err != nil {
		return nil, err
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return nil, fmt.Errorf("build fetch request: %w", err)
	}

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	response, err := client.Do(request)
	if err != nil {
		return nil, fmt.Errorf("fetch source stream: %w", err)
	}

	if response.StatusCode != http.StatusOK {
		response.Body.Close()
		return nil, fmt.Errorf("fetch source stream: unexpected status %s", response.Status)
	}

	return response.Body, nil
}

// ValidateSource checks that a raw argument looks like a fetchable URL.
func ValidateSource(sourceURL string) error {
	trimmed := strings.TrimSpace(sourceURL)
	if trimmed == "" {
		return fmt.Errorf("%w: empty", ErrBadSource)
	}

	parsed, err := url.Parse(trimmed)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrBadSource, err)
	}

	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: unsupported scheme %q", ErrBadSource, parsed.Scheme)
	}
	if parsed.Host == "" {
		return fmt.Errorf("%w: missing host", ErrBadSource)
	}

	return nil
}
