package crawldoc

import (
	"net/url"
	"strings"
)

// LinkType classifies an outbound link by what fetching it yields.
type LinkType string

// Link classifications.
const (
	// LinkHyperlink points at a navigable HTML page.
	LinkHyperlink LinkType = "Hyperlink"

	// LinkDownload points at a binary or plain-text document.
	LinkDownload LinkType = "Download"
)

// NoExtension is the sentinel extension for URLs whose path has none.
const NoExtension = "None"

// downloadExtensions are the file extensions treated as downloadable
// documents rather than navigable pages.
var downloadExtensions = map[string]struct{}{
	"pdf": {}, "doc": {}, "docx": {}, "xls": {}, "xlsx": {},
	"ppt": {}, "pptx": {}, "txt": {}, "csv": {},
}

// Link is an absolute, normalized outbound link discovered on a page.
type Link struct {
	// URL is the absolute link target.
	URL string

	// Text is the anchor text, or "[No Text]" when the anchor is empty.
	Text string

	// Extension is the lowercase file extension of the URL path,
	// or NoExtension when the path has none.
	Extension string

	// Type classifies the link as a page or a downloadable document.
	Type LinkType
}

// FileExtension returns the lowercase extension of the URL's path,
// or NoExtension when the path contains no dot.
func FileExtension(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return NoExtension
	}
	path := strings.ToLower(u.Path)
	idx := strings.LastIndex(path, ".")
	if idx == -1 || idx == len(path)-1 {
		return NoExtension
	}
	return path[idx+1:]
}

// ClassifyExtension returns LinkDownload for extensions in the reserved
// downloadable-document set and LinkHyperlink for everything else.
func ClassifyExtension(ext string) LinkType {
	if _, ok := downloadExtensions[ext]; ok {
		return LinkDownload
	}
	return LinkHyperlink
}

// LinkExtractor extracts outbound links from HTML.
type LinkExtractor interface {
	// ExtractLinks parses anchor elements and returns absolute links in
	// document order, deduplicated by URL with the first occurrence kept.
	// Fragment-only and script-protocol hrefs are skipped.
	ExtractLinks(html string, baseURL string) ([]Link, error)
}
