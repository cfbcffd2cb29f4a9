package main

import (
	"fmt"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/crawl"
	"github.com/fwojciec/crawldoc/fs"
	"github.com/fwojciec/crawldoc/goquery"
)

// Run executes the crawl command.
func (c *CrawlCmd) Run(deps *Dependencies) error {
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

	writer := fs.NewGraphWriter(c.Output, c.GraphML)
	if err := writer.WriteGraph(deps.Ctx, graph); err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Crawled %d seeds: %d nodes, %d edges (wrote %s)\n",
		len(c.Seeds), graph.NodeCount(), graph.EdgeCount(), c.Output)
	return nil
}
