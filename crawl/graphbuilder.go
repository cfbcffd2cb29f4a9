package crawl

import (
	"context"
	"math/rand"
	"net/url"
	"time"

	"github.com/fwojciec/crawldoc"
)

// Frontier sizing for graph crawls.
const (
	// frontierExpectedURLs is the expected number of URLs for Bloom filter sizing.
	frontierExpectedURLs = 10000
	// frontierFalsePositiveRate is the acceptable false positive rate for
	// duplicate enqueue suppression.
	frontierFalsePositiveRate = 0.01
)

// DefaultBlockedExtensions returns the file extensions excluded from
// crawling. Blocked URLs are skipped before being marked visited, so
// they never consume page budget or appear in the graph as sources.
func DefaultBlockedExtensions() []string {
	return []string{"jpg"}
}

// GraphBuilder crawls breadth-first from seed URLs within an allowed
// domain set and records the directed link graph. Pages are processed
// one at a time per seed to preserve breadth-first order; the visited
// set is shared across seeds so a page reachable from two seeds is
// expanded only once.
type GraphBuilder struct {
	Fetcher     crawldoc.Fetcher
	Links       crawldoc.LinkExtractor
	Filter      *crawldoc.DomainFilter
	RateLimiter crawldoc.DomainLimiter

	// MaxPages bounds the number of pages visited per seed.
	MaxPages int

	// Jitter is the upper bound of the random extra sleep after each
	// processed page. Zero disables it.
	Jitter time.Duration

	// BlockedExtensions are file extensions never fetched or expanded.
	// Nil means DefaultBlockedExtensions.
	BlockedExtensions []string

	// RetryDelays configures fetch retry backoff. Nil means DefaultRetryDelays.
	RetryDelays []time.Duration

	// Logger receives per-URL progress and error lines. Optional.
	Logger LogFunc
}

// CrawlSeeds crawls each seed in order, accumulating into one graph.
// The shared state carries the visited set across seeds; passing a
// fresh State crawls from scratch. Per-URL errors are logged and
// skipped, never fatal; only context cancellation aborts the crawl.
func (b *GraphBuilder) CrawlSeeds(ctx context.Context, seeds []string, state *State) (*crawldoc.Graph, error) {
	graph := crawldoc.NewGraph()
	for _, seed := range seeds {
		if err := b.crawl(ctx, seed, state, graph); err != nil {
			return graph, err
		}
	}
	return graph, nil
}

// crawl runs one seed's breadth-first expansion into the shared graph.
func (b *GraphBuilder) crawl(ctx context.Context, seed string, state *State, graph *crawldoc.Graph) error {
	if u, err := url.Parse(seed); err == nil {
		b.Filter.Add(u.Host)
	}

	blocked := b.BlockedExtensions
	if blocked == nil {
		blocked = DefaultBlockedExtensions()
	}
	blockedSet := make(map[string]struct{}, len(blocked))
	for _, ext := range blocked {
		blockedSet[ext] = struct{}{}
	}

	maxPages := b.MaxPages
	if maxPages <= 0 {
		maxPages = 1000
	}

	frontier := NewFrontier(frontierExpectedURLs, frontierFalsePositiveRate)
	frontier.Push(seed)

	pages := 0
	for pages < maxPages {
		current, ok := frontier.Pop()
		if !ok {
			break
		}

		if err := ctx.Err(); err != nil {
			return err
		}

		// Blocked extensions are skipped before claiming, so they
		// neither consume budget nor enter the visited set.
		if _, skip := blockedSet[crawldoc.FileExtension(current)]; skip {
			continue
		}

		// Atomic claim: dequeue re-checks the exact visited set, so
		// benign re-enqueues and Bloom misses resolve here.
		if !state.Claim(current) {
			continue
		}
		pages++

		if err := b.expand(ctx, current, graph, frontier, state); err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			b.logf("error crawling %s: %v", current, err)
			continue
		}

		if b.Jitter > 0 {
			sleep := time.Duration(rand.Int63n(int64(b.Jitter)))
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(sleep):
			}
		}
	}

	return nil
}

// expand fetches one page, records its outbound edges, and enqueues
// in-domain links for later expansion.
func (b *GraphBuilder) expand(ctx context.Context, current string, graph *crawldoc.Graph, frontier *Frontier, state *State) error {
	if b.RateLimiter != nil {
		if u, err := url.Parse(current); err == nil && u.Host != "" {
			if err := b.RateLimiter.Wait(ctx, u.Host); err != nil {
				return err
			}
		}
	}

	delays := b.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	result, err := FetchWithRetryDelays(ctx, current, b.Fetcher.Fetch, b.Logger, delays)
	if err != nil {
		return err
	}
	if !result.OK() {
		return crawldoc.Errorf(crawldoc.ETRANSPORT, "fetch %s: status %d", current, result.StatusCode)
	}

	links, err := b.Links.ExtractLinks(string(result.Body), current)
	if err != nil {
		return err
	}

	for _, link := range links {
		// Every discovered link becomes an edge, even off-domain:
		// external pages appear as leaves and are never expanded.
		graph.AddEdge(current, link.URL)

		if b.Filter.Allows(link.URL) {
			if !state.Visited(link.URL) {
				frontier.Push(link.URL)
			}
		}
	}

	// Pages with no outbound links still appear in the graph.
	graph.AddNode(current)

	b.logf("crawled %s (%d links)", current, len(links))
	return nil
}

func (b *GraphBuilder) logf(format string, args ...any) {
	if b.Logger != nil {
		b.Logger(format, args...)
	}
}
