package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/crawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ crawldoc.RunService = (*RunService)(nil)

// RunService implements crawldoc.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun stores a new run, assigning its ID and start time.
func (s *RunService) CreateRun(ctx context.Context, run *crawldoc.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seeds, started_at)
		VALUES (?, ?, ?)
	`, run.ID, strings.Join(run.Seeds, "\n"), run.StartedAt.Format(time.RFC3339))

	return err
}

// FinishRun records the run's end time and summary counts.
func (s *RunService) FinishRun(ctx context.Context, run *crawldoc.Run) error {
	run.FinishedAt = time.Now().UTC()

	res, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET finished_at = ?, nodes = ?, edges = ?, processed = ?, failed = ?
		WHERE id = ?
	`, run.FinishedAt.Format(time.RFC3339), run.Nodes, run.Edges,
		run.Processed, run.Failed, run.ID)
	if err != nil {
		return err
	}

	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return crawldoc.Errorf(crawldoc.ENOTFOUND, "run not found")
	}
	return nil
}

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*crawldoc.Run, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT id, seeds, started_at, finished_at, nodes, edges, processed, failed
		FROM runs
		WHERE id = ?
	`, id)

	run, err := scanRun(row)
	if err == sql.ErrNoRows {
		return nil, crawldoc.Errorf(crawldoc.ENOTFOUND, "run not found")
	}
	if err != nil {
		return nil, err
	}
	return run, nil
}

// ListRuns returns all runs, most recent first.
func (s *RunService) ListRuns(ctx context.Context) ([]*crawldoc.Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, seeds, started_at, finished_at, nodes, edges, processed, failed
		FROM runs
		ORDER BY started_at DESC, id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*crawldoc.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}
	return runs, rows.Err()
}

// scanner abstracts *sql.Row and *sql.Rows for scanRun.
type scanner interface {
	Scan(dest ...any) error
}

func scanRun(sc scanner) (*crawldoc.Run, error) {
	var run crawldoc.Run
	var seeds, startedAt, finishedAt string

	if err := sc.Scan(&run.ID, &seeds, &startedAt, &finishedAt,
		&run.Nodes, &run.Edges, &run.Processed, &run.Failed); err != nil {
		return nil, err
	}

	if seeds != "" {
		run.Seeds = strings.Split(seeds, "\n")
	}

	var err error
	run.StartedAt, err = time.Parse(time.RFC3339, startedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to parse started_at: %w", err)
	}
	if finishedAt != "" {
		run.FinishedAt, err = time.Parse(time.RFC3339, finishedAt)
		if err != nil {
			return nil, fmt.Errorf("failed to parse finished_at: %w", err)
		}
	}
	return &run, nil
}

// ArchiveDocuments stores the run's extracted documents.
func (s *RunService) ArchiveDocuments(ctx context.Context, runID string, docs []*crawldoc.Document) error {
	for i, doc := range docs {
		if err := doc.Validate(); err != nil {
			return err
		}

		_, err := s.db.ExecContext(ctx, `
			INSERT INTO documents (id, run_id, source_url, content, content_hash, position)
			VALUES (?, ?, ?, ?, ?, ?)
		`, uuid.New().String(), runID, doc.Metadata.URL, doc.PageContent,
			crawl.ComputeHash(doc.PageContent), i)
		if err != nil {
			return err
		}
	}
	return nil
}

// ArchiveGraph stores the run's link graph, preserving node and edge order.
func (s *RunService) ArchiveGraph(ctx context.Context, runID string, graph *crawldoc.Graph) error {
	for i, url := range graph.Nodes() {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO nodes (run_id, position, url)
			VALUES (?, ?, ?)
		`, runID, i, url)
		if err != nil {
			return err
		}
	}

	for i, e := range graph.Edges() {
		_, err := s.db.ExecContext(ctx, `
			INSERT INTO edges (run_id, position, source, target)
			VALUES (?, ?, ?, ?)
		`, runID, i, e.Source, e.Target)
		if err != nil {
			return err
		}
	}
	return nil
}

// RunGraph reconstructs the archived graph of a run.
func (s *RunService) RunGraph(ctx context.Context, runID string) (*crawldoc.Graph, error) {
	graph := crawldoc.NewGraph()

	rows, err := s.db.QueryContext(ctx, `
		SELECT url FROM nodes WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var url string
		if err := rows.Scan(&url); err != nil {
			return nil, err
		}
		graph.AddNode(url)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	edgeRows, err := s.db.QueryContext(ctx, `
		SELECT source, target FROM edges WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer edgeRows.Close()

	for edgeRows.Next() {
		var source, target string
		if err := edgeRows.Scan(&source, &target); err != nil {
			return nil, err
		}
		graph.AddEdge(source, target)
	}
	return graph, edgeRows.Err()
}

// RunDocuments returns the archived documents of a run, in archive order.
func (s *RunService) RunDocuments(ctx context.Context, runID string) ([]*crawldoc.Document, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT source_url, content FROM documents WHERE run_id = ? ORDER BY position
	`, runID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var docs []*crawldoc.Document
	for rows.Next() {
		var doc crawldoc.Document
		if err := rows.Scan(&doc.Metadata.URL, &doc.PageContent); err != nil {
			return nil, err
		}
		docs = append(docs, &doc)
	}
	return docs, rows.Err()
}
