package main

import (
	"fmt"
	"path/filepath"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/crawl"
	"github.com/fwojciec/crawldoc/fs"
	"github.com/fwojciec/crawldoc/goquery"
)

// Run executes the run command: crawl the seeds, scrape every
// discovered page, export the results and archive the run.
func (c *RunCmd) Run(deps *Dependencies) error {
	run := &crawldoc.Run{Seeds: c.Seeds}
	if err := deps.Runs.CreateRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	builder := &crawl.GraphBuilder{
		Fetcher:     deps.Fetcher,
		Links:       goquery.NewLinkExtractor(),
		Filter:      crawldoc.NewDomainFilter(c.Domain...),
		RateLimiter: crawl.NewDomainLimiter(c.RPS),
		MaxPages:    c.MaxPages,
		Logger: func(format string, args ...any) {
			fmt.Fprintf(deps.Stderr, "  "+format+"\n", args...)
		},
	}

	graph, err := builder.CrawlSeeds(deps.Ctx, c.Seeds, crawl.NewState())
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}
	fmt.Fprintf(deps.Stdout, "Crawled %d seeds: %d nodes, %d edges\n",
		len(c.Seeds), graph.NodeCount(), graph.EdgeCount())

	scraper, err := newScraper(deps, c.Extractor, c.Language, c.Concurrency, c.RPS, c.OCR)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	result, err := scraper.Scrape(deps.Ctx, graph.Nodes(), scrapeProgress(deps))
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	graphWriter := fs.NewGraphWriter(filepath.Join(c.OutputDir, "graph.json"), "")
	if err := graphWriter.WriteGraph(deps.Ctx, graph); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}
	docWriter := fs.NewDocumentWriter(filepath.Join(c.OutputDir, "documents.json"), "")
	if err := docWriter.WriteDocuments(deps.Ctx, result.Documents); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	if err := deps.Runs.ArchiveGraph(deps.Ctx, run.ID, graph); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}
	if err := deps.Runs.ArchiveDocuments(deps.Ctx, run.ID, result.Documents); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	run.Nodes = graph.NodeCount()
	run.Edges = graph.EdgeCount()
	run.Processed = len(result.Processed)
	run.Failed = len(result.Failed)
	if err := deps.Runs.FinishRun(deps.Ctx, run); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Run %s: %d processed, %d failed\n",
		run.ID, run.Processed, run.Failed)
	return nil
}
