package goquery

import (
	"sort"
	"strings"
	"unicode/utf8"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/crawldoc"
	"golang.org/x/net/html"
)

// Ensure Extractor implements crawldoc.Extractor at compile time.
var _ crawldoc.Extractor = (*Extractor)(nil)

// ScoreWeights holds the weights of the region scoring formula. They are
// configuration, not inline literals, so they can be tuned and tested
// independently.
type ScoreWeights struct {
	// ContentDensity weighs text length per block-level tag.
	ContentDensity float64

	// TagRatio weighs the share of block-level tags among all descendants.
	TagRatio float64

	// LinkRatio weighs the inverse of links per block-level tag.
	LinkRatio float64

	// LinkTextRatio weighs the inverse of the share of text inside links.
	LinkTextRatio float64

	// ArticleBonus is added when the candidate is an <article> element.
	ArticleBonus float64

	// ArticleBodyScore is the fixed score of an itemprop="articleBody"
	// region, which is authoritative and bypasses scoring entirely.
	ArticleBodyScore float64

	// PooledScore is the fixed score of paragraph-pooled fallback regions.
	PooledScore float64

	// DominantFactor: when the best semantic candidate scores more than
	// DominantFactor times the runner-up, only the best is returned.
	DominantFactor float64

	// FallbackAvgLen and FallbackCount weigh the div-fallback score.
	FallbackAvgLen float64
	FallbackCount  float64
}

// DefaultScoreWeights returns the standard scoring configuration.
func DefaultScoreWeights() ScoreWeights {
	return ScoreWeights{
		ContentDensity:   0.4,
		TagRatio:         30,
		LinkRatio:        15,
		LinkTextRatio:    15,
		ArticleBonus:     20,
		ArticleBodyScore: 100,
		PooledScore:      50,
		DominantFactor:   1.5,
		FallbackAvgLen:   0.2,
		FallbackCount:    2,
	}
}

// Selection thresholds for candidate regions.
const (
	// minContainerTextLen is the minimum collapsed text length for a
	// semantic container candidate.
	minContainerTextLen = 200

	// minContainerBlocks is the minimum number of block-level descendants
	// for a semantic container candidate.
	minContainerBlocks = 3

	// minFallbackParagraphs and minFallbackAvgLen gate the div fallback.
	minFallbackParagraphs = 3
	minFallbackAvgLen     = 30

	// minPoolParagraphLen is the minimum text length for a paragraph to
	// join the pooling fallback.
	minPoolParagraphLen = 80

	// minPoolGroupTextLen is the minimum combined text length for a
	// pooled group to be emitted.
	minPoolGroupTextLen = 200

	// ancestorCoverage is the share of pooled paragraphs a common
	// ancestor must contain to be used instead of a synthetic container.
	ancestorCoverage = 0.7
)

// blockSelector lists block-level tags for the is-content-container
// predicate; scoreSelector lists the tags counted by the density formula.
const (
	blockSelector = "p, h1, h2, h3, h4, h5, h6, ul, ol, blockquote"
	scoreSelector = "p, h1, h2, h3, h4, h5, h6, li"
)

// skipPatterns disqualify a semantic candidate whose class or id hints at
// navigation or boilerplate.
var skipPatterns = []string{
	"header", "footer", "nav", "menu", "sidebar", "banner",
	"advertisement", "cookie", "popup", "modal", "social",
	"comment", "widget", "toolbar", "masthead",
}

// skipRoles disqualify candidates carrying landmark roles that never hold
// article content.
var skipRoles = map[string]struct{}{
	"navigation": {}, "banner": {}, "complementary": {}, "contentinfo": {},
}

// contentIndicators qualify a <div> for the attribute-keyword fallback.
var contentIndicators = []string{
	"content", "article", "post", "entry", "body", "text", "main",
}

// Extractor selects the main content regions of a page by scoring
// candidate containers, with a fallback chain of decreasing confidence.
type Extractor struct {
	weights ScoreWeights
}

// NewExtractor creates an Extractor with the default scoring weights.
func NewExtractor() *Extractor {
	return &Extractor{weights: DefaultScoreWeights()}
}

// NewExtractorWithWeights creates an Extractor with custom weights.
func NewExtractorWithWeights(w ScoreWeights) *Extractor {
	return &Extractor{weights: w}
}

// Extract parses the page, removes noise, and returns the title plus the
// selected content regions in score order. An empty Regions slice means
// the page has no extractable content; that is not an error.
func (e *Extractor) Extract(rawHTML string) (*crawldoc.ExtractResult, error) {
	if strings.TrimSpace(rawHTML) == "" {
		return nil, crawldoc.Errorf(crawldoc.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, crawldoc.Errorf(crawldoc.EPARSE, "failed to parse HTML: %v", err)
	}

	// Title comes from head metadata, so read it before cleaning strips
	// the document head.
	title := extractTitle(doc)

	clean(doc)

	return &crawldoc.ExtractResult{
		Title:   title,
		Regions: e.selectRegions(doc),
	}, nil
}

// scoredSelection pairs a score with a candidate subtree.
type scoredSelection struct {
	score float64
	sel   *goquery.Selection
}

// selectRegions runs the selection precedence chain: structured-data
// shortcut, semantic-tag scoring, attribute-keyword divs, paragraph
// pooling. The first producer that yields results wins.
func (e *Extractor) selectRegions(doc *goquery.Document) []crawldoc.ScoredRegion {
	if body := doc.Find(`[itemprop="articleBody"]`).First(); body.Length() > 0 {
		return renderRegions([]scoredSelection{{score: e.weights.ArticleBodyScore, sel: body}})
	}

	if regions := e.scoreSemanticContainers(doc); len(regions) > 0 {
		return renderRegions(regions)
	}

	if regions := e.scanContentDivs(doc); len(regions) > 0 {
		return renderRegions(regions)
	}

	return e.poolParagraphs(doc)
}

// scoreSemanticContainers scores every <main>, <article> and <section>
// that looks like a content container and returns the top one or two.
func (e *Extractor) scoreSemanticContainers(doc *goquery.Document) []scoredSelection {
	var candidates []scoredSelection

	doc.Find("main, article, section").Each(func(_ int, sel *goquery.Selection) {
		if !isContentContainer(sel) {
			return
		}

		textLen := float64(collapsedTextLen(sel))
		tagCount := float64(sel.Find(scoreSelector).Length())
		if tagCount == 0 {
			return
		}

		totalTags := float64(sel.Find("*").Length())
		if totalTags < 1 {
			totalTags = 1
		}

		var linkTextLen float64
		links := sel.Find("a")
		links.Each(func(_ int, a *goquery.Selection) {
			linkTextLen += float64(collapsedTextLen(a))
		})

		density := textLen / tagCount
		tagRatio := tagCount / totalTags
		linkRatio := float64(links.Length()) / tagCount
		linkTextRatio := linkTextLen / max(1, textLen)

		score := e.weights.ContentDensity*density +
			e.weights.TagRatio*tagRatio +
			e.weights.LinkRatio*(1-linkRatio) +
			e.weights.LinkTextRatio*(1-linkTextRatio)

		if goquery.NodeName(sel) == "article" {
			score += e.weights.ArticleBonus
		}

		candidates = append(candidates, scoredSelection{score: score, sel: sel})
	})

	if len(candidates) == 0 {
		return nil
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})

	if len(candidates) > 1 && candidates[0].score > candidates[1].score*e.weights.DominantFactor {
		return candidates[:1]
	}
	if len(candidates) > 1 {
		return candidates[:2]
	}
	return candidates
}

// scanContentDivs is the first fallback: divs whose class or id carries a
// content indicator, scored by paragraph count and average paragraph length.
func (e *Extractor) scanContentDivs(doc *goquery.Document) []scoredSelection {
	var best *scoredSelection

	doc.Find("div").Each(func(_ int, sel *goquery.Selection) {
		if !hasContentIndicator(attrTokens(sel)) {
			return
		}

		pCount := sel.Find("p").Length()
		if pCount == 0 {
			return
		}

		textLen := collapsedTextLen(sel)
		avgLen := float64(textLen) / float64(pCount)

		if pCount < minFallbackParagraphs || avgLen <= minFallbackAvgLen {
			return
		}

		score := e.weights.FallbackAvgLen*avgLen + e.weights.FallbackCount*float64(pCount)
		if best == nil || score > best.score {
			best = &scoredSelection{score: score, sel: sel}
		}
	})

	if best == nil {
		return nil
	}
	return []scoredSelection{*best}
}

// poolParagraphs is the last resort: collect substantial paragraphs and
// group them under their most common qualifying ancestor, or synthesize a
// container holding them in original order.
func (e *Extractor) poolParagraphs(doc *goquery.Document) []crawldoc.ScoredRegion {
	var pooled []*goquery.Selection
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if collapsedTextLen(sel) > minPoolParagraphLen {
			pooled = append(pooled, sel)
		}
	})
	if len(pooled) == 0 {
		return nil
	}

	// Count qualifying ancestors across all pooled paragraphs, keeping
	// first-encountered order for deterministic tie-breaks.
	counts := make(map[*html.Node]int)
	var order []*goquery.Selection
	for _, p := range pooled {
		p.Parents().Each(func(_ int, parent *goquery.Selection) {
			switch goquery.NodeName(parent) {
			case "div", "section", "article", "main":
				node := parent.Get(0)
				if _, ok := counts[node]; !ok {
					order = append(order, parent)
				}
				counts[node]++
			}
		})
	}

	var bestParent *goquery.Selection
	bestCount := 0
	for _, parent := range order {
		if c := counts[parent.Get(0)]; c > bestCount {
			bestParent = parent
			bestCount = c
		}
	}

	if bestParent != nil && float64(bestCount) >= float64(len(pooled))*ancestorCoverage {
		if collapsedTextLen(bestParent) <= minPoolGroupTextLen {
			return nil
		}
		return renderRegions([]scoredSelection{{score: e.weights.PooledScore, sel: bestParent}})
	}

	// No dominant ancestor: synthesize a container with the pooled
	// paragraphs in original order.
	var b strings.Builder
	var combinedLen int
	b.WriteString("<div>")
	for _, p := range pooled {
		combinedLen += collapsedTextLen(p)
		if outer, err := goquery.OuterHtml(p); err == nil {
			b.WriteString(outer)
		}
	}
	b.WriteString("</div>")

	if combinedLen <= minPoolGroupTextLen {
		return nil
	}
	return []crawldoc.ScoredRegion{{Score: e.weights.PooledScore, HTML: b.String()}}
}

// isContentContainer reports whether an element plausibly holds article
// content: enough text, enough block structure, and no boilerplate hints
// in its attributes.
func isContentContainer(sel *goquery.Selection) bool {
	if collapsedTextLen(sel) < minContainerTextLen {
		return false
	}
	if sel.Find(blockSelector).Length() < minContainerBlocks {
		return false
	}
	for _, token := range attrTokens(sel) {
		for _, pattern := range skipPatterns {
			if strings.Contains(token, pattern) {
				return false
			}
		}
	}
	if role, ok := sel.Attr("role"); ok {
		if _, skip := skipRoles[strings.ToLower(role)]; skip {
			return false
		}
	}
	return true
}

func hasContentIndicator(tokens []string) bool {
	for _, token := range tokens {
		for _, indicator := range contentIndicators {
			if strings.Contains(token, indicator) {
				return true
			}
		}
	}
	return false
}

// collapsedTextLen returns the element's text length after whitespace
// collapse, in runes.
func collapsedTextLen(sel *goquery.Selection) int {
	return utf8.RuneCountInString(strings.Join(strings.Fields(sel.Text()), " "))
}

// renderRegions converts candidate subtrees into scored HTML regions.
func renderRegions(candidates []scoredSelection) []crawldoc.ScoredRegion {
	regions := make([]crawldoc.ScoredRegion, 0, len(candidates))
	for _, c := range candidates {
		outer, err := goquery.OuterHtml(c.sel)
		if err != nil {
			continue
		}
		regions = append(regions, crawldoc.ScoredRegion{Score: c.score, HTML: outer})
	}
	return regions
}
