package crawldoc

// ScoredRegion is a candidate content region with its relevance score.
// Regions are transient: produced by an Extractor and consumed immediately
// by markdown conversion, never persisted.
type ScoredRegion struct {
	// Score is the region's relevance score, highest first in ExtractResult.
	Score float64

	// HTML is the region's markup subtree.
	HTML string
}

// ExtractResult holds the content regions selected from an HTML page.
type ExtractResult struct {
	// Title is the page title, or empty when none could be found.
	Title string

	// Regions are the selected content regions, best first.
	// An empty slice means the page has no extractable content;
	// that is a distinct outcome, not an error.
	Regions []ScoredRegion
}

// Extractor isolates the main content regions of an HTML page,
// removing boilerplate.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts HTML to Markdown.
type Converter interface {
	// Convert transforms clean HTML (e.g., an Extractor region) into
	// Markdown, preserving link and table structure without hard wrapping.
	Convert(html string) (string, error)
}
