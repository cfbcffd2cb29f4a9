package crawldoc

import "context"

// DomainLimiter provides per-domain request spacing. The crawl frontier
// may visit many hosts, so the inter-request delay is enforced per remote
// host rather than as a global serial sleep.
type DomainLimiter interface {
	// Wait blocks until the rate limit allows a request to the domain.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, domain string) error
}
