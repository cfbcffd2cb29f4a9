// Package slog provides logging decorators for crawldoc services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/crawldoc"
)

// Ensure LoggingFetcher implements crawldoc.Fetcher.
var _ crawldoc.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with request logging.
type LoggingFetcher struct {
	next   crawldoc.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next crawldoc.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch delegates to the wrapped fetcher, logging URL, status, size
// and duration.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
	begin := time.Now()
	result, err := f.next.Fetch(ctx, url)
	if err != nil {
		f.logger.Error("fetch",
			slog.String("url", url),
			slog.String("err", err.Error()),
			slog.Duration("duration", time.Since(begin)),
		)
		return nil, err
	}

	f.logger.Info("fetch",
		slog.String("url", url),
		slog.Int("status", result.StatusCode),
		slog.Int("bytes", len(result.Body)),
		slog.Duration("duration", time.Since(begin)),
	)
	return result, nil
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
