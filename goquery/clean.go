package goquery

import (
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// noisePatterns mark elements that are boilerplate rather than content:
// cookie banners, ads, navigation, social widgets and similar chrome.
// Matched as substrings against class tokens and id values.
var noisePatterns = []string{
	"cookie", "popup", "banner", "ad-", "-ad", "advertisement",
	"notification", "subscribe", "newsletter", "promo", "share",
	"related-", "comment", "footer", "header", "nav", "menu",
	"sidebar", "widget", "toolbar", "modal",
}

var hiddenStyleRe = regexp.MustCompile(`display:\s*none|visibility:\s*hidden`)

// clean removes non-content markup in place: scripts, styles, embedded
// media shells, hidden elements, and anything whose class or id matches
// a noise pattern.
func clean(doc *goquery.Document) {
	doc.Find("script, style, noscript, svg, iframe, head, meta").Remove()

	doc.Find("[style]").Each(func(_ int, sel *goquery.Selection) {
		style, _ := sel.Attr("style")
		if hiddenStyleRe.MatchString(style) {
			sel.Remove()
		}
	})

	doc.Find("[class], [id]").Each(func(_ int, sel *goquery.Selection) {
		for _, token := range attrTokens(sel) {
			for _, pattern := range noisePatterns {
				if strings.Contains(token, pattern) {
					sel.Remove()
					return
				}
			}
		}
	})
}

// attrTokens returns the element's class tokens and id value, lowercased.
// Absent attributes contribute nothing, so callers can pattern-match the
// returned set without probing for attribute presence or type.
func attrTokens(sel *goquery.Selection) []string {
	var tokens []string
	if class, ok := sel.Attr("class"); ok {
		for _, t := range strings.Fields(class) {
			tokens = append(tokens, strings.ToLower(t))
		}
	}
	if id, ok := sel.Attr("id"); ok && id != "" {
		tokens = append(tokens, strings.ToLower(id))
	}
	return tokens
}
