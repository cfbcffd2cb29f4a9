package crawl_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/crawl"
	"github.com/fwojciec/crawldoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const articleText = "The department conducts research in materials engineering and offers doctoral programs."

// htmlScraper builds a Scraper whose mocks serve a simple HTML page for
// every URL.
func htmlScraper() *crawl.Scraper {
	return &crawl.Scraper{
		Fetcher: &mock.Fetcher{
			FetchFn: func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
				return &crawldoc.FetchResult{StatusCode: 200, Body: []byte("<html></html>"), FinalURL: url}, nil
			},
		},
		Extractor: &mock.Extractor{
			ExtractFn: func(html string) (*crawldoc.ExtractResult, error) {
				return &crawldoc.ExtractResult{
					Title:   "Department",
					Regions: []crawldoc.ScoredRegion{{Score: 90, HTML: "<p>" + articleText + "</p>"}},
				}, nil
			},
		},
		Converter: &mock.Converter{
			ConvertFn: func(html string) (string, error) {
				return strings.TrimSuffix(strings.TrimPrefix(html, "<p>"), "</p>"), nil
			},
		},
		RetryDelays: []time.Duration{},
	}
}

func TestScraper_extracts_HTML_documents(t *testing.T) {
	t.Parallel()

	result, err := htmlScraper().Scrape(context.Background(), []string{"https://example.com/dept"}, nil)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	doc := result.Documents[0]
	assert.Equal(t, "https://example.com/dept", doc.Metadata.URL)
	assert.True(t, strings.HasPrefix(doc.PageContent, "# Department\n\n"))
	assert.Contains(t, doc.PageContent, articleText)
	assert.True(t, strings.HasSuffix(doc.PageContent, "---\nSource: https://example.com/dept"))
}

func TestScraper_documents_preserve_input_order(t *testing.T) {
	t.Parallel()

	urls := []string{
		"https://example.com/1",
		"https://example.com/2",
		"https://example.com/3",
		"https://example.com/4",
		"https://example.com/5",
	}

	s := htmlScraper()
	s.Concurrency = 4

	result, err := s.Scrape(context.Background(), urls, nil)
	require.NoError(t, err)

	require.Len(t, result.Documents, len(urls))
	for i, doc := range result.Documents {
		assert.Equal(t, urls[i], doc.Metadata.URL)
	}
	assert.Equal(t, urls, result.Processed)
}

func TestScraper_failures_never_abort_the_batch(t *testing.T) {
	t.Parallel()

	const (
		good    = "https://example.com/good"
		broken  = "https://example.com/broken"
		vacuous = "https://example.com/empty"
	)

	s := htmlScraper()
	inner := s.Extractor

	// The vacuous page fetches fine but yields no regions.
	s.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
			switch url {
			case broken:
				return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "connection refused")
			case vacuous:
				return &crawldoc.FetchResult{StatusCode: 200, Body: []byte("empty"), FinalURL: url}, nil
			}
			return &crawldoc.FetchResult{StatusCode: 200, Body: []byte("<html></html>"), FinalURL: url}, nil
		},
	}
	s.Extractor = &mock.Extractor{
		ExtractFn: func(html string) (*crawldoc.ExtractResult, error) {
			if html == "empty" {
				return &crawldoc.ExtractResult{}, nil
			}
			return inner.Extract(html)
		},
	}
	s.Concurrency = 1

	urls := []string{good, broken, vacuous}
	result, err := s.Scrape(context.Background(), urls, nil)
	require.NoError(t, err)

	assert.Equal(t, []string{good}, result.Processed)
	assert.ElementsMatch(t, []string{broken, vacuous}, result.Failed)
	assert.Equal(t, len(urls), len(result.Processed)+len(result.Failed))
}

func TestScraper_PDF_documents_are_recognized_page_by_page(t *testing.T) {
	t.Parallel()

	s := htmlScraper()
	s.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
			return &crawldoc.FetchResult{StatusCode: 200, Body: []byte("%PDF-1.4 rest"), FinalURL: url}, nil
		},
	}
	s.Rasterizer = &mock.PDFRasterizer{
		RasterizeFn: func(ctx context.Context, pdf []byte) ([][]byte, error) {
			return [][]byte{[]byte("img1"), []byte("img2")}, nil
		},
	}
	s.Recognizer = &mock.TextRecognizer{
		RecognizeFn: func(ctx context.Context, image []byte) (string, error) {
			if string(image) == "img1" {
				return "Page one text\n", nil
			}
			return "Page two text\n", nil
		},
	}

	result, err := s.Scrape(context.Background(), []string{"https://example.com/file.pdf"}, nil)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, "Page one text\n\nPage two text", result.Documents[0].PageContent)
	assert.Equal(t, "https://example.com/file.pdf", result.Documents[0].Metadata.URL)
}

func TestScraper_falls_back_to_HTML_when_not_a_PDF(t *testing.T) {
	t.Parallel()

	s := htmlScraper()
	s.Rasterizer = &mock.PDFRasterizer{
		RasterizeFn: func(ctx context.Context, pdf []byte) ([][]byte, error) {
			t.Error("rasterizer must not run for non-PDF bodies")
			return nil, crawldoc.Errorf(crawldoc.EUNSUPPORTED, "unexpected call")
		},
	}
	s.Recognizer = &mock.TextRecognizer{
		RecognizeFn: func(ctx context.Context, image []byte) (string, error) {
			return "", nil
		},
	}

	result, err := s.Scrape(context.Background(), []string{"https://example.com/page"}, nil)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Contains(t, result.Documents[0].PageContent, articleText)
}

func TestScraper_resolves_document_redirects(t *testing.T) {
	t.Parallel()

	const (
		redirectURL = "https://example.com/doc.php?id=7"
		resolvedURL = "https://example.com/files/syllabus.pdf"
	)

	s := htmlScraper()
	s.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
			if url == redirectURL {
				body := `<html><a href="files/syllabus.pdf">download</a></html>`
				return &crawldoc.FetchResult{StatusCode: 200, Body: []byte(body), FinalURL: url}, nil
			}
			return &crawldoc.FetchResult{StatusCode: 200, Body: []byte("%PDF-1.4"), FinalURL: url}, nil
		},
	}
	s.Rasterizer = &mock.PDFRasterizer{
		RasterizeFn: func(ctx context.Context, pdf []byte) ([][]byte, error) {
			return [][]byte{[]byte("img")}, nil
		},
	}
	s.Recognizer = &mock.TextRecognizer{
		RecognizeFn: func(ctx context.Context, image []byte) (string, error) {
			return "Syllabus contents", nil
		},
	}

	result, err := s.Scrape(context.Background(), []string{redirectURL}, nil)
	require.NoError(t, err)

	require.Len(t, result.Documents, 1)
	assert.Equal(t, resolvedURL, result.Documents[0].Metadata.URL,
		"document carries the resolved URL")
	assert.Equal(t, "Syllabus contents", result.Documents[0].PageContent)
	assert.Equal(t, []string{redirectURL}, result.Processed,
		"the processed list keeps the original URL")
}

func TestScraper_reports_progress(t *testing.T) {
	t.Parallel()

	var events []crawl.ProgressEvent

	s := htmlScraper()
	s.Concurrency = 1

	urls := []string{"https://example.com/1", "https://example.com/2"}
	_, err := s.Scrape(context.Background(), urls, func(event crawl.ProgressEvent) {
		events = append(events, event)
	})
	require.NoError(t, err)

	require.NotEmpty(t, events)
	assert.Equal(t, crawl.ProgressStarted, events[0].Type)
	assert.Equal(t, 2, events[0].Total)
	assert.Equal(t, crawl.ProgressFinished, events[len(events)-1].Type)

	var completed int
	for _, e := range events {
		if e.Type == crawl.ProgressCompleted {
			completed++
		}
	}
	assert.Equal(t, 2, completed)
}

func TestCrawlThenScrape_two_seeds_one_page_each(t *testing.T) {
	t.Parallel()

	const (
		seedA = "https://a.example.com/"
		seedB = "https://b.example.com/"
	)

	builder := &crawl.GraphBuilder{
		Fetcher:     &siteFetcher{},
		Links:       siteLinks(nil), // seeds link to nothing
		Filter:      crawldoc.NewDomainFilter(),
		MaxPages:    1,
		RetryDelays: []time.Duration{},
	}

	graph, err := builder.CrawlSeeds(context.Background(), []string{seedA, seedB}, crawl.NewState())
	require.NoError(t, err)

	assert.Equal(t, 2, graph.NodeCount())
	assert.Zero(t, graph.EdgeCount())

	s := htmlScraper()
	s.Fetcher = &mock.Fetcher{
		FetchFn: func(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
			if url == seedB {
				return nil, crawldoc.Errorf(crawldoc.ETRANSPORT, "connection refused")
			}
			return &crawldoc.FetchResult{StatusCode: 200, Body: []byte("<html></html>"), FinalURL: url}, nil
		},
	}

	result, err := s.Scrape(context.Background(), graph.Nodes(), nil)
	require.NoError(t, err)

	assert.LessOrEqual(t, len(result.Documents), 2)
	assert.Equal(t, 2, len(result.Processed)+len(result.Failed))
	assert.Equal(t, []string{seedB}, result.Failed)
}
