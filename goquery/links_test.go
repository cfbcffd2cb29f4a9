package goquery_test

import (
	"testing"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLinkExtractor_resolves_relative_links(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/about">About us</a>
		<a href="contact.html">Contact</a>
		<a href="https://other.org/page">External</a>
	</body></html>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/docs/")
	require.NoError(t, err)
	require.Len(t, links, 3)

	assert.Equal(t, "https://example.com/about", links[0].URL)
	assert.Equal(t, "About us", links[0].Text)
	assert.Equal(t, "https://example.com/docs/contact.html", links[1].URL)
	assert.Equal(t, "https://other.org/page", links[2].URL)
}

func TestLinkExtractor_skips_fragment_and_script_hrefs(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="#section">Jump</a>
		<a href="javascript:void(0)">Click</a>
		<a href="JavaScript:alert(1)">Shout</a>
		<a href="/real">Real</a>
	</body></html>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "https://example.com/real", links[0].URL)
}

func TestLinkExtractor_deduplicates_first_occurrence_wins(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/page">First text</a>
		<a href="/page">Second text</a>
	</body></html>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")
	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, "First text", links[0].Text)
}

func TestLinkExtractor_classifies_downloads(t *testing.T) {
	t.Parallel()

	html := `<html><body>
		<a href="/files/report.pdf">Report</a>
		<a href="/about"></a>
	</body></html>`

	links, err := goquery.NewLinkExtractor().ExtractLinks(html, "https://example.com/")
	require.NoError(t, err)
	require.Len(t, links, 2)

	assert.Equal(t, "pdf", links[0].Extension)
	assert.Equal(t, crawldoc.LinkDownload, links[0].Type)

	assert.Equal(t, crawldoc.NoExtension, links[1].Extension)
	assert.Equal(t, crawldoc.LinkHyperlink, links[1].Type)
	assert.Equal(t, "[No Text]", links[1].Text, "empty anchor text gets the placeholder")
}

func TestLinkExtractor_invalid_base_URL(t *testing.T) {
	t.Parallel()

	_, err := goquery.NewLinkExtractor().ExtractLinks("<a href='/x'>x</a>", "://bad")
	require.Error(t, err)
	assert.Equal(t, crawldoc.EINVALID, crawldoc.ErrorCode(err))
}

func TestLinkExtractor_no_anchors(t *testing.T) {
	t.Parallel()

	links, err := goquery.NewLinkExtractor().ExtractLinks("<html><body><p>text</p></body></html>", "https://example.com/")
	require.NoError(t, err)
	assert.Empty(t, links)
}
