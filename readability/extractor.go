// Package readability provides an alternate content extractor built on
// go-readability.
package readability

import (
	"strings"

	"github.com/fwojciec/crawldoc"
	"github.com/go-shiori/go-readability"
)

// Ensure Extractor implements crawldoc.Extractor at compile time.
var _ crawldoc.Extractor = (*Extractor)(nil)

// regionScore is the fixed score for readability output; the library
// yields a single authoritative region.
const regionScore = 100

// Extractor wraps go-readability to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as a single
// region.
func (e *Extractor) Extract(rawHTML string) (*crawldoc.ExtractResult, error) {
	if rawHTML == "" {
		return nil, crawldoc.Errorf(crawldoc.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, crawldoc.Errorf(crawldoc.EPARSE, "readability: %v", err)
	}

	out := &crawldoc.ExtractResult{Title: article.Title}
	if strings.TrimSpace(article.Content) != "" {
		out.Regions = []crawldoc.ScoredRegion{{Score: regionScore, HTML: article.Content}}
	}

	return out, nil
}
