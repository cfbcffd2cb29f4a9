package main_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/fwojciec/crawldoc"
	main "github.com/fwojciec/crawldoc/cmd/crawldoc"
	"github.com/fwojciec/crawldoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRunsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("lists runs with counts and seeds", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			ListRunsFn: func(_ context.Context) ([]*crawldoc.Run, error) {
				return []*crawldoc.Run{
					{
						ID:        "run-123",
						Seeds:     []string{"https://example.com/"},
						StartedAt: time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
						Nodes:     42,
						Edges:     88,
						Processed: 40,
						Failed:    2,
					},
				}, nil
			},
		}

		stdout := &bytes.Buffer{}
		stderr := &bytes.Buffer{}

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: stderr,
			Runs:   runs,
		}

		cmd := &main.RunsCmd{}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "run-123")
		assert.Contains(t, output, "42 nodes")
		assert.Contains(t, output, "88 edges")
		assert.Contains(t, output, "40 processed")
		assert.Contains(t, output, "2 failed")
		assert.Contains(t, output, "https://example.com/")
		assert.Empty(t, stderr.String())
	})

	t.Run("prints hint when no runs exist", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			ListRunsFn: func(_ context.Context) ([]*crawldoc.Run, error) {
				return nil, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		cmd := &main.RunsCmd{}
		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "No runs found")
	})
}

func TestStatsCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("prints stats for the most recent run by default", func(t *testing.T) {
		t.Parallel()

		graph := crawldoc.NewGraph()
		graph.AddEdge("https://example.com/", "https://example.com/a")
		graph.AddEdge("https://example.com/", "https://example.com/b")
		graph.AddEdge("https://example.com/a", "https://example.com/b")

		runs := &mock.RunService{
			ListRunsFn: func(_ context.Context) ([]*crawldoc.Run, error) {
				return []*crawldoc.Run{{ID: "run-latest"}}, nil
			},
			RunGraphFn: func(_ context.Context, runID string) (*crawldoc.Graph, error) {
				assert.Equal(t, "run-latest", runID)
				return graph, nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		cmd := &main.StatsCmd{Top: 10}
		err := cmd.Run(deps)
		require.NoError(t, err)

		output := stdout.String()
		assert.Contains(t, output, "Run run-latest")
		assert.Contains(t, output, "Nodes: 3")
		assert.Contains(t, output, "Edges: 3")
		assert.Contains(t, output, "Top pages by inbound links:")
		assert.Contains(t, output, "https://example.com/b")
	})

	t.Run("uses the requested run ID when given", func(t *testing.T) {
		t.Parallel()

		runs := &mock.RunService{
			RunGraphFn: func(_ context.Context, runID string) (*crawldoc.Graph, error) {
				assert.Equal(t, "run-specific", runID)
				return crawldoc.NewGraph(), nil
			},
		}

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: stdout,
			Stderr: &bytes.Buffer{},
			Runs:   runs,
		}

		cmd := &main.StatsCmd{RunID: "run-specific", Top: 10}
		err := cmd.Run(deps)
		require.NoError(t, err)
		assert.Contains(t, stdout.String(), "Nodes: 0")
	})
}
