package crawldoc

import (
	"context"
	"time"
)

// Run records one crawl-and-scrape invocation: its seeds, timing, and
// summary counts. Documents and graph edges collected during the run
// are archived against its ID.
type Run struct {
	ID         string
	Seeds      []string
	StartedAt  time.Time
	FinishedAt time.Time

	// Summary counts, populated when the run finishes.
	Nodes     int
	Edges     int
	Processed int
	Failed    int
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if len(r.Seeds) == 0 {
		return Errorf(EINVALID, "run requires at least one seed URL")
	}
	return nil
}

// RunService archives crawl runs and their results.
type RunService interface {
	// CreateRun stores a new run, assigning its ID and start time.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun records the run's end time and summary counts.
	FinishRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run, or ENOTFOUND.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// ListRuns returns all runs, most recent first.
	ListRuns(ctx context.Context) ([]*Run, error)

	// ArchiveDocuments stores the run's extracted documents.
	ArchiveDocuments(ctx context.Context, runID string, docs []*Document) error

	// ArchiveGraph stores the run's link graph.
	ArchiveGraph(ctx context.Context, runID string, graph *Graph) error

	// RunGraph reconstructs the archived graph of a run.
	RunGraph(ctx context.Context, runID string) (*Graph, error)

	// RunDocuments returns the archived documents of a run, in
	// archive order.
	RunDocuments(ctx context.Context, runID string) ([]*Document, error)
}
