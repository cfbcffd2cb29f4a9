package main_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fwojciec/crawldoc"
	main "github.com/fwojciec/crawldoc/cmd/crawldoc"
	"github.com/fwojciec/crawldoc/mock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCrawlCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("crawls seeds and writes the graph file", func(t *testing.T) {
		t.Parallel()

		pages := map[string]string{
			"https://example.com/":      `<html><body><a href="/about">About</a></body></html>`,
			"https://example.com/about": `<html><body></body></html>`,
		}
		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*crawldoc.FetchResult, error) {
				return &crawldoc.FetchResult{
					StatusCode: 200,
					Body:       []byte(pages[url]),
					FinalURL:   url,
				}, nil
			},
		}

		dir := t.TempDir()
		output := filepath.Join(dir, "graph.json")

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Fetcher: fetcher,
		}

		cmd := &main.CrawlCmd{
			Seeds:    []string{"https://example.com/"},
			MaxPages: 10,
			RPS:      100,
			Output:   output,
		}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Crawled 1 seeds: 2 nodes, 1 edges")

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		assert.JSONEq(t, `{
			"nodes": [
				{"url": "https://example.com/"},
				{"url": "https://example.com/about"}
			],
			"edges": [
				{"source": "https://example.com/", "target": "https://example.com/about"}
			]
		}`, string(data))
	})
}

func TestScrapeCmd_Run(t *testing.T) {
	t.Parallel()

	t.Run("requires URLs or a graph file", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.ScrapeCmd{}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, crawldoc.EINVALID, crawldoc.ErrorCode(err))
	})

	t.Run("scrapes URLs and writes documents", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			FetchFn: func(_ context.Context, url string) (*crawldoc.FetchResult, error) {
				return &crawldoc.FetchResult{
					StatusCode: 200,
					Body: []byte(`<html><head><title>About Us</title></head><body><article>` +
						`<p>This department offers a wide range of undergraduate and graduate programs in the humanities.</p>` +
						`<p>Our faculty publish widely and advise students across every degree program that we offer here.</p>` +
						`<p>Prospective students are encouraged to visit the campus and meet with an admissions counselor.</p>` +
						`</article></body></html>`),
					FinalURL: url,
				}, nil
			},
		}

		dir := t.TempDir()
		output := filepath.Join(dir, "documents.json")

		stdout := &bytes.Buffer{}
		deps := &main.Dependencies{
			Ctx:     context.Background(),
			Stdout:  stdout,
			Stderr:  &bytes.Buffer{},
			Fetcher: fetcher,
		}

		cmd := &main.ScrapeCmd{
			URLs:        []string{"https://example.com/about"},
			Extractor:   "heuristic",
			Concurrency: 2,
			RPS:         100,
			Output:      output,
		}
		err := cmd.Run(deps)
		require.NoError(t, err)

		assert.Contains(t, stdout.String(), "Saved 1 documents, 0 failed")

		data, err := os.ReadFile(output)
		require.NoError(t, err)
		var docs []*crawldoc.Document
		require.NoError(t, json.Unmarshal(data, &docs))
		require.Len(t, docs, 1)
		assert.Equal(t, "https://example.com/about", docs[0].Metadata.URL)
		assert.Contains(t, docs[0].PageContent, "# About Us")
		assert.Contains(t, docs[0].PageContent, "---\nSource: https://example.com/about")
	})

	t.Run("rejects an unknown extractor", func(t *testing.T) {
		t.Parallel()

		deps := &main.Dependencies{
			Ctx:    context.Background(),
			Stdout: &bytes.Buffer{},
			Stderr: &bytes.Buffer{},
		}

		cmd := &main.ScrapeCmd{
			URLs:      []string{"https://example.com/"},
			Extractor: "llm",
		}
		err := cmd.Run(deps)
		require.Error(t, err)
		assert.Equal(t, crawldoc.EINVALID, crawldoc.ErrorCode(err))
	})
}
