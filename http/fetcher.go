// Package http provides the HTTP implementation of crawldoc.Fetcher.
package http

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/fwojciec/crawldoc"
)

// DefaultFetchTimeout bounds worst-case blocking on network I/O.
const DefaultFetchTimeout = 15 * time.Second

// browserHeaders is the request header set sent with every fetch. Some
// servers gate content on these and must still be served successfully.
var browserHeaders = map[string]string{
	"User-Agent":                "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36",
	"Accept":                    "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8",
	"Accept-Language":           "en-US,en;q=0.5",
	"Referer":                   "https://www.google.com/",
	"DNT":                       "1",
	"Connection":                "keep-alive",
	"Upgrade-Insecure-Requests": "1",
}

// Ensure Fetcher implements crawldoc.Fetcher at compile time.
var _ crawldoc.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves raw content over HTTP. Redirects are followed and the
// final URL is reported; bodies are read in full, including binary
// documents.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// NewFetcher creates a new HTTP Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch retrieves the URL. Transport failures return an ETRANSPORT error;
// HTTP responses of any status return a populated result so callers can
// distinguish a non-2xx status from a failed connection.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, crawldoc.Errorf(crawldoc.EINVALID, "invalid URL %q: %v", url, err)
	}
	for k, v := range browserHeaders {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "fetch %s: %v", url, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "read body of %s: %v", url, err)
	}

	return &crawldoc.FetchResult{
		StatusCode: resp.StatusCode,
		Body:       body,
		FinalURL:   resp.Request.URL.String(),
	}, nil
}

// Close releases resources. A no-op for the HTTP client.
func (f *Fetcher) Close() error {
	return nil
}
