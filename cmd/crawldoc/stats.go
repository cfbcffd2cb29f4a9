package main

import (
	"fmt"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/crawl"
)

// Run executes the stats command.
func (c *StatsCmd) Run(deps *Dependencies) error {
	runID := c.RunID
	if runID == "" {
		runs, err := deps.Runs.ListRuns(deps.Ctx)
		if err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
			return err
		}
		if len(runs) == 0 {
			fmt.Fprintln(deps.Stdout, "No runs found. Use 'crawldoc run' to start one.")
			return nil
		}
		runID = runs[0].ID
	}

	graph, err := deps.Runs.RunGraph(deps.Ctx, runID)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	stats := graph.Stats(c.Top)

	fmt.Fprintf(deps.Stdout, "Run %s\n", runID)
	fmt.Fprintf(deps.Stdout, "Nodes: %d\n", stats.Nodes)
	fmt.Fprintf(deps.Stdout, "Edges: %d\n", stats.Edges)
	fmt.Fprintf(deps.Stdout, "Avg in-degree:  %.2f\n", stats.AvgInDegree)
	fmt.Fprintf(deps.Stdout, "Avg out-degree: %.2f\n", stats.AvgOutDegree)

	fmt.Fprintln(deps.Stdout, "\nTop pages by inbound links:")
	for _, e := range stats.TopInbound {
		fmt.Fprintf(deps.Stdout, "  %4d  %s\n", e.Degree, crawl.TruncateURL(e.URL, 70))
	}

	fmt.Fprintln(deps.Stdout, "\nTop pages by outbound links:")
	for _, e := range stats.TopOutbound {
		fmt.Fprintf(deps.Stdout, "  %4d  %s\n", e.Degree, crawl.TruncateURL(e.URL, 70))
	}

	return nil
}
