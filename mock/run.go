package mock

import (
	"context"

	"github.com/fwojciec/crawldoc"
)

var _ crawldoc.RunService = (*RunService)(nil)

// RunService is a mock implementation of crawldoc.RunService.
type RunService struct {
	CreateRunFn        func(ctx context.Context, run *crawldoc.Run) error
	FinishRunFn        func(ctx context.Context, run *crawldoc.Run) error
	FindRunByIDFn      func(ctx context.Context, id string) (*crawldoc.Run, error)
	ListRunsFn         func(ctx context.Context) ([]*crawldoc.Run, error)
	ArchiveDocumentsFn func(ctx context.Context, runID string, docs []*crawldoc.Document) error
	ArchiveGraphFn     func(ctx context.Context, runID string, graph *crawldoc.Graph) error
	RunGraphFn         func(ctx context.Context, runID string) (*crawldoc.Graph, error)
	RunDocumentsFn     func(ctx context.Context, runID string) ([]*crawldoc.Document, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *crawldoc.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, run *crawldoc.Run) error {
	return s.FinishRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*crawldoc.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) ListRuns(ctx context.Context) ([]*crawldoc.Run, error) {
	return s.ListRunsFn(ctx)
}

func (s *RunService) ArchiveDocuments(ctx context.Context, runID string, docs []*crawldoc.Document) error {
	return s.ArchiveDocumentsFn(ctx, runID, docs)
}

func (s *RunService) ArchiveGraph(ctx context.Context, runID string, graph *crawldoc.Graph) error {
	return s.ArchiveGraphFn(ctx, runID, graph)
}

func (s *RunService) RunGraph(ctx context.Context, runID string) (*crawldoc.Graph, error) {
	return s.RunGraphFn(ctx, runID)
}

func (s *RunService) RunDocuments(ctx context.Context, runID string) ([]*crawldoc.Document, error) {
	return s.RunDocumentsFn(ctx, runID)
}
