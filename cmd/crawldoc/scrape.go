package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/crawl"
	"github.com/fwojciec/crawldoc/fs"
	"github.com/fwojciec/crawldoc/goquery"
	"github.com/fwojciec/crawldoc/htmltomarkdown"
	"github.com/fwojciec/crawldoc/readability"
	"github.com/fwojciec/crawldoc/tesseract"
	"github.com/fwojciec/crawldoc/trafilatura"
)

// newExtractor maps an extractor name to its implementation.
func newExtractor(kind string) (crawldoc.Extractor, error) {
	switch kind {
	case "heuristic", "":
		return goquery.NewExtractor(), nil
	case "trafilatura":
		return trafilatura.NewExtractor(), nil
	case "readability":
		return readability.NewExtractor(), nil
	}
	return nil, crawldoc.Errorf(crawldoc.EINVALID, "unknown extractor %q", kind)
}

// newScraper assembles a Scraper from shared dependencies and command flags.
func newScraper(deps *Dependencies, extractor, language string, concurrency int, rps float64, ocr bool) (*crawl.Scraper, error) {
	ex, err := newExtractor(extractor)
	if err != nil {
		return nil, err
	}

	s := &crawl.Scraper{
		Fetcher:     deps.Fetcher,
		Extractor:   ex,
		Converter:   htmltomarkdown.NewConverter(),
		RateLimiter: crawl.NewDomainLimiter(rps),
		Concurrency: concurrency,
	}
	if ocr {
		s.Rasterizer = &tesseract.Rasterizer{}
		s.Recognizer = &tesseract.Recognizer{Language: language}
	}
	return s, nil
}

// scrapeProgress prints per-URL progress to the command's writers.
func scrapeProgress(deps *Dependencies) crawl.ProgressFunc {
	return func(event crawl.ProgressEvent) {
		switch event.Type {
		case crawl.ProgressStarted:
			fmt.Fprintf(deps.Stdout, "Processing %d URLs\n", event.Total)
		case crawl.ProgressFailed:
			fmt.Fprintf(deps.Stderr, "  skip %s: %v\n",
				crawl.TruncateURL(event.URL, 60), event.Error)
		}
	}
}

// graphNodeURLs reads the node list of a graph JSON export.
func graphNodeURLs(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var export crawldoc.GraphExport
	if err := json.Unmarshal(data, &export); err != nil {
		return nil, crawldoc.Errorf(crawldoc.EINVALID, "invalid graph file %s: %v", path, err)
	}

	urls := make([]string, 0, len(export.Nodes))
	for _, node := range export.Nodes {
		urls = append(urls, node.URL)
	}
	return urls, nil
}

// Run executes the scrape command.
func (c *ScrapeCmd) Run(deps *Dependencies) error {
	urls := c.URLs
	if c.FromGraph != "" {
		graphURLs, err := graphNodeURLs(c.FromGraph)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
			return err
		}
		urls = append(urls, graphURLs...)
	}
	if len(urls) == 0 {
		return crawldoc.Errorf(crawldoc.EINVALID, "no URLs to scrape: pass URLs or --from-graph")
	}

	scraper, err := newScraper(deps, c.Extractor, c.Language, c.Concurrency, c.RPS, c.OCR)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	result, err := scraper.Scrape(deps.Ctx, urls, scrapeProgress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	writer := fs.NewDocumentWriter(c.Output, c.MarkdownDir)
	if err := writer.WriteDocuments(deps.Ctx, result.Documents); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	var bytes int
	for _, doc := range result.Documents {
		bytes += len(doc.PageContent)
	}
	fmt.Fprintf(deps.Stdout, "Saved %d documents, %d failed (%s, wrote %s)\n",
		len(result.Processed), len(result.Failed), crawl.FormatBytes(bytes), c.Output)
	return nil
}
