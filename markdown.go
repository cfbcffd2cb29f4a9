package crawldoc

import (
	"regexp"
	"strings"
)

// Normalization key parameters. Paragraphs at or below minParagraphKeyLen
// normalized characters are treated as noise and excluded from output;
// longer paragraphs compare on their first keyPrefixLen characters only.
// The truncated key is deliberately lossy: two long paragraphs sharing a
// 100-character prefix collide and the second is dropped.
const (
	minParagraphKeyLen = 20
	keyPrefixLen       = 100
)

var (
	blankRunRe  = regexp.MustCompile(`\n{3,}`)
	paragraphRe = regexp.MustCompile(`\n\n+`)
	spaceRunRe  = regexp.MustCompile(`\s+`)
	markupRe    = regexp.MustCompile("[#*_\\[\\]()~`>|-]")
)

// HeadingLine renders a page title as a level-1 markdown heading,
// or returns an empty string for an empty title.
func HeadingLine(title string) string {
	title = strings.TrimSpace(title)
	if title == "" {
		return ""
	}
	return "# " + title + "\n\n"
}

// NormalizeKey canonicalizes a paragraph for duplicate detection:
// whitespace runs collapse to single spaces, markdown punctuation is
// stripped, the result is lowercased and truncated to keyPrefixLen
// characters. Strings shorter than minParagraphKeyLen are returned whole.
func NormalizeKey(text string) string {
	if strings.TrimSpace(text) == "" {
		return ""
	}
	normalized := spaceRunRe.ReplaceAllString(text, " ")
	normalized = markupRe.ReplaceAllString(normalized, "")
	normalized = strings.TrimSpace(strings.ToLower(normalized))

	runes := []rune(normalized)
	if len(runes) < minParagraphKeyLen {
		return normalized
	}
	if len(runes) > keyPrefixLen {
		return string(runes[:keyPrefixLen])
	}
	return normalized
}

// ComposeDocument assembles the final markdown for a page from its title
// heading (already rendered via HeadingLine, possibly empty), the markdown
// of each selected region in score order, and the source URL.
//
// Paragraph deduplication is streaming, one-pass and order-preserving:
// a single seen-key set spans all regions, a paragraph is kept only when
// its normalization key is unseen and longer than minParagraphKeyLen
// characters, and kept paragraphs stay in original order.
func ComposeDocument(titleHeading string, regions []string, sourceURL string) string {
	seen := make(map[string]struct{})

	var kept []string
	for _, region := range regions {
		md := blankRunRe.ReplaceAllString(region, "\n\n")
		for _, p := range paragraphRe.Split(md, -1) {
			key := NormalizeKey(p)
			if key == "" {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			if len([]rune(key)) <= minParagraphKeyLen {
				continue
			}
			kept = append(kept, strings.TrimSpace(p))
			seen[key] = struct{}{}
		}
	}

	var b strings.Builder
	b.WriteString(titleHeading)
	if len(kept) > 0 {
		b.WriteString(strings.Join(kept, "\n\n"))
	}
	b.WriteString("\n\n---\nSource: " + sourceURL)

	return strings.TrimSpace(b.String())
}
