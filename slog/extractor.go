package slog

import (
	"log/slog"
	"time"

	"github.com/fwojciec/crawldoc"
)

// Ensure LoggingExtractor implements crawldoc.Extractor.
var _ crawldoc.Extractor = (*LoggingExtractor)(nil)

// LoggingExtractor wraps an Extractor with debug logging of region
// selection outcomes.
type LoggingExtractor struct {
	next   crawldoc.Extractor
	logger *slog.Logger
}

// NewLoggingExtractor creates a new LoggingExtractor.
func NewLoggingExtractor(next crawldoc.Extractor, logger *slog.Logger) *LoggingExtractor {
	return &LoggingExtractor{next: next, logger: logger}
}

// Extract delegates to the wrapped extractor, logging the title and
// number of selected regions.
func (e *LoggingExtractor) Extract(html string) (*crawldoc.ExtractResult, error) {
	begin := time.Now()
	result, err := e.next.Extract(html)
	if err != nil {
		e.logger.Error("extract",
			slog.String("err", err.Error()),
			slog.Duration("duration", time.Since(begin)),
		)
		return nil, err
	}

	e.logger.Debug("extract",
		slog.String("title", result.Title),
		slog.Int("regions", len(result.Regions)),
		slog.Duration("duration", time.Since(begin)),
	)
	return result, nil
}
