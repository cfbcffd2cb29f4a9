package main

import (
	"context"
	"io"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx     context.Context
	Stdout  io.Writer
	Stderr  io.Writer
	DB      *sqlite.DB
	Runs    crawldoc.RunService
	Fetcher crawldoc.Fetcher
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Crawl  CrawlCmd  `cmd:"" help:"Crawl seed URLs and export the link graph"`
	Scrape ScrapeCmd `cmd:"" help:"Extract documents from a URL list or a crawled graph"`
	Run    RunCmd    `cmd:"" help:"Crawl seeds, scrape the discovered pages, and archive the run"`
	Runs   RunsCmd   `cmd:"" help:"List archived runs"`
	Stats  StatsCmd  `cmd:"" help:"Show graph statistics for an archived run"`
}

// CrawlCmd is the "crawl" subcommand.
type CrawlCmd struct {
	Seeds    []string `arg:"" help:"Seed URLs to crawl from"`
	Domain   []string `short:"d" help:"Additional allowed domain (repeatable; seed hosts are always allowed)"`
	MaxPages int      `short:"n" default:"100" help:"Maximum pages per seed"`
	RPS      float64  `name:"rps" default:"1.0" help:"Requests per second per host"`
	Output   string   `short:"o" default:"graph.json" help:"Graph JSON output path"`
	GraphML  string   `help:"Also write GraphML to this path"`
}

// ScrapeCmd is the "scrape" subcommand.
type ScrapeCmd struct {
	URLs        []string `arg:"" optional:"" help:"URLs to scrape"`
	FromGraph   string   `help:"Scrape the node list of a graph JSON file"`
	Extractor   string   `short:"e" default:"heuristic" enum:"heuristic,trafilatura,readability" help:"Content extractor to use"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1.0" help:"Requests per second per host"`
	Output      string   `short:"o" default:"documents.json" help:"Documents JSON output path"`
	MarkdownDir string   `help:"Also write one markdown file per document to this directory"`
	OCR         bool     `help:"Enable PDF retrieval via pdftoppm and tesseract"`
	Language    string   `default:"" help:"Tesseract language code"`
}

// RunCmd is the "run" subcommand.
type RunCmd struct {
	Seeds       []string `arg:"" help:"Seed URLs to crawl from"`
	Domain      []string `short:"d" help:"Additional allowed domain (repeatable)"`
	MaxPages    int      `short:"n" default:"100" help:"Maximum pages per seed"`
	Extractor   string   `short:"e" default:"heuristic" enum:"heuristic,trafilatura,readability" help:"Content extractor to use"`
	Concurrency int      `short:"c" default:"10" help:"Concurrent fetch limit"`
	RPS         float64  `name:"rps" default:"1.0" help:"Requests per second per host"`
	OutputDir   string   `short:"o" default:"." help:"Directory for graph and document exports"`
	OCR         bool     `help:"Enable PDF retrieval via pdftoppm and tesseract"`
	Language    string   `default:"" help:"Tesseract language code"`
}

// RunsCmd is the "runs" subcommand.
type RunsCmd struct{}

// StatsCmd is the "stats" subcommand.
type StatsCmd struct {
	RunID string `arg:"" optional:"" help:"Run ID (defaults to the most recent run)"`
	Top   int    `default:"10" help:"Number of top-degree pages to show"`
}
