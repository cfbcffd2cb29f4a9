package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// extractTitle returns the page title, trying og:title metadata first,
// then the <title> element, then the first <h1>. Runs before cleaning,
// which strips the document head.
func extractTitle(doc *goquery.Document) string {
	if content, ok := doc.Find(`meta[property="og:title"]`).First().Attr("content"); ok {
		if title := strings.TrimSpace(content); title != "" {
			return title
		}
	}

	if title := strings.TrimSpace(doc.Find("title").First().Text()); title != "" {
		return title
	}

	return strings.TrimSpace(doc.Find("h1").First().Text())
}
