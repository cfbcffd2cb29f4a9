package main

import (
	"fmt"
	"strings"

	"github.com/fwojciec/crawldoc"
)

// Run executes the runs command.
func (c *RunsCmd) Run(deps *Dependencies) error {
	runs, err := deps.Runs.ListRuns(deps.Ctx)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", crawldoc.ErrorMessage(err))
		return err
	}

	if len(runs) == 0 {
		fmt.Fprintln(deps.Stdout, "No runs found. Use 'crawldoc run' to start one.")
		return nil
	}

	for _, r := range runs {
		fmt.Fprintf(deps.Stdout, "%s  %s  %d nodes  %d edges  %d processed  %d failed  %s\n",
			r.ID, r.StartedAt.Format("2006-01-02 15:04"),
			r.Nodes, r.Edges, r.Processed, r.Failed,
			strings.Join(r.Seeds, " "))
	}

	return nil
}
