// Package goquery provides goquery-based implementations of link
// extraction and main-content region selection.
package goquery

import (
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/crawldoc"
)

// Ensure LinkExtractor implements crawldoc.LinkExtractor at compile time.
var _ crawldoc.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor extracts outbound links from anchor elements.
type LinkExtractor struct{}

// NewLinkExtractor creates a new LinkExtractor.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{}
}

// ExtractLinks parses anchor elements with an href attribute and returns
// absolute links in document order, deduplicated by URL with the first
// occurrence kept. Fragment-only and javascript: hrefs are skipped.
// HTML the parser cannot recover returns an empty sequence, not an error.
func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]crawldoc.Link, error) {
	base, err := url.Parse(baseURL)
	if err != nil {
		return nil, crawldoc.Errorf(crawldoc.EINVALID, "invalid base URL: %v", err)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return []crawldoc.Link{}, nil
	}

	seen := make(map[string]struct{})
	var links []crawldoc.Link

	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, exists := sel.Attr("href")
		if !exists || href == "" {
			return
		}
		if strings.HasPrefix(href, "#") || strings.HasPrefix(strings.ToLower(href), "javascript:") {
			return
		}

		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		absolute := base.ResolveReference(ref).String()

		if _, dup := seen[absolute]; dup {
			return
		}
		seen[absolute] = struct{}{}

		text := strings.TrimSpace(sel.Text())
		if text == "" {
			text = "[No Text]"
		}

		ext := crawldoc.FileExtension(absolute)
		links = append(links, crawldoc.Link{
			URL:       absolute,
			Text:      text,
			Extension: ext,
			Type:      crawldoc.ClassifyExtension(ext),
		})
	})

	return links, nil
}
