package crawldoc

import "context"

// FetchResult is the outcome of an HTTP-level fetch. A non-2xx status is
// reported here, distinctly from transport failure which surfaces as an
// ETRANSPORT error instead.
type FetchResult struct {
	// StatusCode is the HTTP status of the final response.
	StatusCode int

	// Body is the response body.
	Body []byte

	// FinalURL is the URL after redirects.
	FinalURL string
}

// OK reports whether the response carries a 2xx status.
func (r *FetchResult) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Fetcher retrieves raw content from URLs. Implementations send a realistic
// browser header set and bound blocking with a per-request timeout.
type Fetcher interface {
	// Fetch retrieves the URL. Transport failures (connect, timeout, TLS)
	// return a nil result and an ETRANSPORT error; HTTP responses of any
	// status return a populated result and a nil error.
	Fetch(ctx context.Context, url string) (*FetchResult, error)

	// Close releases client resources.
	Close() error
}
