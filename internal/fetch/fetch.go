// Package fetch retrieves remote asset bytes over HTTP.
package fetch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const (
	// Timeout bounds connect plus read for a single fetch.
	Timeout = 10 * time.Second

	// UserAgent is sent with every request.
	UserAgent = "Mozilla/5.0 (compatible; Genkan/1.0)"

	// MaxBodySize caps a downloaded asset.
	MaxBodySize = 20 << 20
)

// ErrFetchFailed wraps every transport, status, timeout and size failure.
var ErrFetchFailed = errors.New("fetch failed")

// Fetcher returns the raw bytes behind a URL.
type Fetcher interface {
	Fetch(ctx context.Context, url string) ([]byte, error)
}

// HTTPFetcher fetches with a bounded timeout and no retries.
type HTTPFetcher struct {
	client *http.Client
}

// New creates an HTTPFetcher. A nil client gets one with Timeout applied.
func New(client *http.Client) *HTTPFetcher {
	if client == nil {
		client = &http.Client{Timeout: Timeout}
	}
	return &HTTPFetcher{client: client}
}

// Normalize turns a protocol-relative reference into an https URL.
func Normalize(url string) string {
	if strings.HasPrefix(url, "//") {
		return "https:" + url
	}
	return url
}

func (f *HTTPFetcher) Fetch(ctx context.Context, url string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, Timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, Normalize(url), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetchFailed, url, resp.Status)
	}

	data, err := io.ReadAll(io.LimitReader(resp.Body, MaxBodySize+1))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrFetchFailed, err)
	}
	if len(data) > MaxBodySize {
		return nil, fmt.Errorf("%w: %s exceeds %d bytes", ErrFetchFailed, url, MaxBodySize)
	}
	return data, nil
}
