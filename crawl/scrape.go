package crawl

import (
	"bytes"
	"context"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/fwojciec/crawldoc"
	"golang.org/x/sync/errgroup"
)

// pdfMagic is the byte prefix identifying a PDF document.
var pdfMagic = []byte("%PDF-")

// docRedirectMarker identifies URLs that serve a redirect page pointing
// at an embedded document rather than the document itself.
const docRedirectMarker = "doc.php"

// Scraper turns a list of URLs into extracted documents. Each URL is
// processed through an ordered list of retrieval strategies until one
// succeeds; per-URL failures are recorded and never abort the batch.
type Scraper struct {
	Fetcher     crawldoc.Fetcher
	Extractor   crawldoc.Extractor
	Converter   crawldoc.Converter
	Rasterizer  crawldoc.PDFRasterizer
	Recognizer  crawldoc.TextRecognizer
	RateLimiter crawldoc.DomainLimiter
	Concurrency int
	RetryDelays []time.Duration
}

// ScrapeResult holds the outcome of a scrape batch. Every input URL
// lands in exactly one of Processed or Failed.
type ScrapeResult struct {
	Documents []*crawldoc.Document
	Processed []string
	Failed    []string
}

// ProgressEvent reports progress during a scrape operation.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	URL       string
	Error     error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting scrape progress.
type ProgressFunc func(event ProgressEvent)

// scrapeResult holds the outcome of processing a single URL.
type scrapeResult struct {
	position int
	url      string
	doc      *crawldoc.Document
	err      error
}

// attempt is one retrieval strategy in a URL's ordered attempt list.
type attempt struct {
	name string
	run  func(ctx context.Context) (*crawldoc.Document, error)
}

// Scrape processes all URLs concurrently and collects documents in
// input order. The progress callback, if provided, receives events as
// processing proceeds.
func (s *Scraper) Scrape(ctx context.Context, urls []string, progress ProgressFunc) (*ScrapeResult, error) {
	concurrency := s.Concurrency
	if concurrency <= 0 {
		concurrency = 10
	}

	total := len(urls)
	resultCh := make(chan scrapeResult, total)

	var completed atomic.Int64

	if progress != nil {
		progress(ProgressEvent{
			Type:  ProgressStarted,
			Total: total,
		})
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	go func() {
		for i, u := range urls {
			i, u := i, u
			g.Go(func() error {
				result := s.processURL(gctx, i, u)
				resultCh <- result
				return nil
			})
		}
		_ = g.Wait()
		close(resultCh)
	}()

	results := make([]scrapeResult, total)
	for result := range resultCh {
		completed.Add(1)
		results[result.position] = result

		if progress == nil {
			continue
		}
		if result.err != nil {
			progress(ProgressEvent{
				Type:      ProgressFailed,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
				Error:     result.err,
			})
		} else {
			progress(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: int(completed.Load()),
				Total:     total,
				URL:       result.url,
			})
		}
	}

	out := &ScrapeResult{}
	for _, result := range results {
		if result.err != nil {
			out.Failed = append(out.Failed, result.url)
			continue
		}
		out.Documents = append(out.Documents, result.doc)
		out.Processed = append(out.Processed, result.url)
	}

	if progress != nil {
		progress(ProgressEvent{
			Type:      ProgressFinished,
			Completed: total,
			Total:     total,
		})
	}

	return out, nil
}

// processURL runs one URL through its attempt list.
func (s *Scraper) processURL(ctx context.Context, position int, rawURL string) scrapeResult {
	result := scrapeResult{
		position: position,
		url:      rawURL,
	}

	var lastErr error
	for _, a := range s.attempts(rawURL) {
		doc, err := a.run(ctx)
		if err == nil {
			result.doc = doc
			return result
		}
		lastErr = err
		if ctx.Err() != nil {
			break
		}
	}

	result.err = lastErr
	return result
}

// attempts returns the ordered retrieval strategies for a URL.
// Document-redirect URLs resolve to their embedded document only;
// everything else tries document retrieval first and falls back to
// HTML extraction.
func (s *Scraper) attempts(rawURL string) []attempt {
	ocr := s.Rasterizer != nil && s.Recognizer != nil

	if strings.Contains(rawURL, docRedirectMarker) {
		return []attempt{{
			name: "document redirect",
			run: func(ctx context.Context) (*crawldoc.Document, error) {
				return s.scrapeDocRedirect(ctx, rawURL)
			},
		}}
	}

	var attempts []attempt
	if ocr {
		attempts = append(attempts, attempt{
			name: "document",
			run: func(ctx context.Context) (*crawldoc.Document, error) {
				return s.scrapePDF(ctx, rawURL)
			},
		})
	}
	attempts = append(attempts, attempt{
		name: "html",
		run: func(ctx context.Context) (*crawldoc.Document, error) {
			return s.scrapeHTML(ctx, rawURL)
		},
	})
	return attempts
}

// scrapeDocRedirect resolves a redirect page to its embedded document
// URL and retrieves that. The resulting document carries the resolved
// URL, not the redirect URL.
func (s *Scraper) scrapeDocRedirect(ctx context.Context, rawURL string) (*crawldoc.Document, error) {
	if s.Rasterizer == nil || s.Recognizer == nil {
		return nil, crawldoc.Errorf(crawldoc.EUNSUPPORTED, "document retrieval not configured")
	}

	result, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "fetch %s: status %d", rawURL, result.StatusCode)
	}

	resolved, err := resolveDocRedirect(rawURL, string(result.Body))
	if err != nil {
		return nil, err
	}
	return s.scrapePDF(ctx, resolved)
}

// resolveDocRedirect locates the embedded document path in a redirect
// page body and rebuilds an absolute URL against the original
// scheme and host.
func resolveDocRedirect(rawURL, body string) (string, error) {
	idx := strings.Index(body, ".pdf")
	if idx < 0 {
		return "", crawldoc.Errorf(crawldoc.EUNSUPPORTED, "no document reference in redirect page %s", rawURL)
	}
	prefix := body[:idx]
	path := prefix[strings.LastIndex(prefix, `"`)+1:] + ".pdf"

	u, err := url.Parse(rawURL)
	if err != nil {
		return "", crawldoc.Errorf(crawldoc.EINVALID, "invalid url %q", rawURL)
	}
	return u.Scheme + "://" + u.Host + "/" + strings.TrimPrefix(path, "/"), nil
}

// scrapePDF retrieves a binary document and recognizes its text page
// by page, joining pages with a blank line.
func (s *Scraper) scrapePDF(ctx context.Context, rawURL string) (*crawldoc.Document, error) {
	result, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "fetch %s: status %d", rawURL, result.StatusCode)
	}
	if !bytes.HasPrefix(result.Body, pdfMagic) {
		return nil, crawldoc.Errorf(crawldoc.EUNSUPPORTED, "%s is not a PDF document", rawURL)
	}

	pages, err := s.Rasterizer.Rasterize(ctx, result.Body)
	if err != nil {
		return nil, crawldoc.Errorf(crawldoc.EUNSUPPORTED, "rasterize %s: %v", rawURL, err)
	}

	texts := make([]string, 0, len(pages))
	for _, page := range pages {
		text, err := s.Recognizer.Recognize(ctx, page)
		if err != nil {
			return nil, crawldoc.Errorf(crawldoc.EUNSUPPORTED, "recognize %s: %v", rawURL, err)
		}
		texts = append(texts, strings.TrimSpace(text))
	}

	return &crawldoc.Document{
		PageContent: strings.Join(texts, "\n\n"),
		Metadata:    crawldoc.Metadata{URL: rawURL},
	}, nil
}

// scrapeHTML retrieves a page, selects its content regions, converts
// them to markdown and assembles the deduplicated document.
func (s *Scraper) scrapeHTML(ctx context.Context, rawURL string) (*crawldoc.Document, error) {
	result, err := s.fetch(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if !result.OK() {
		return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "fetch %s: status %d", rawURL, result.StatusCode)
	}

	extracted, err := s.Extractor.Extract(string(result.Body))
	if err != nil {
		return nil, err
	}
	if len(extracted.Regions) == 0 {
		return nil, crawldoc.Errorf(crawldoc.ENOCONTENT, "no extractable content in %s", rawURL)
	}

	regions := make([]string, 0, len(extracted.Regions))
	for _, region := range extracted.Regions {
		md, err := s.Converter.Convert(region.HTML)
		if err != nil {
			return nil, err
		}
		regions = append(regions, md)
	}

	doc := &crawldoc.Document{
		PageContent: crawldoc.ComposeDocument(crawldoc.HeadingLine(extracted.Title), regions, rawURL),
		Metadata:    crawldoc.Metadata{URL: rawURL},
	}
	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// fetch applies per-host rate limiting and retry backoff to one fetch.
func (s *Scraper) fetch(ctx context.Context, rawURL string) (*crawldoc.FetchResult, error) {
	if s.RateLimiter != nil {
		if u, err := url.Parse(rawURL); err == nil && u.Host != "" {
			if err := s.RateLimiter.Wait(ctx, u.Host); err != nil {
				return nil, err
			}
		}
	}

	delays := s.RetryDelays
	if delays == nil {
		delays = DefaultRetryDelays()
	}
	return FetchWithRetryDelays(ctx, rawURL, s.Fetcher.Fetch, nil, delays)
}
