// Package trafilatura provides an alternate content extractor built on
// go-trafilatura, for pages where the heuristic selector underperforms.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/crawldoc"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements crawldoc.Extractor at compile time.
var _ crawldoc.Extractor = (*Extractor)(nil)

// regionScore is the fixed score for trafilatura output. The library
// yields a single authoritative region, so it mirrors the score used for
// structured-data regions.
const regionScore = 100

// Extractor wraps go-trafilatura to extract main content from HTML.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content as a single
// region. An empty extraction result is reported as no content, not an
// error.
func (e *Extractor) Extract(rawHTML string) (*crawldoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, crawldoc.Errorf(crawldoc.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, crawldoc.Errorf(crawldoc.EPARSE, "trafilatura: %v", err)
	}

	out := &crawldoc.ExtractResult{Title: result.Metadata.Title}

	if result.ContentNode != nil {
		contentHTML, err := renderNode(result.ContentNode)
		if err != nil {
			return nil, err
		}
		if strings.TrimSpace(contentHTML) != "" {
			out.Regions = []crawldoc.ScoredRegion{{Score: regionScore, HTML: contentHTML}}
		}
	}

	return out, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
