package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/crawldoc"
	"github.com/fwojciec/crawldoc/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	t.Run("converts headings and paragraphs", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()

		md, err := conv.Convert("<h2>Admissions</h2><p>Apply before <strong>May 1st</strong>.</p>")
		require.NoError(t, err)
		assert.Contains(t, md, "## Admissions")
		assert.Contains(t, md, "Apply before **May 1st**.")
	})

	t.Run("preserves links", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()

		md, err := conv.Convert(`<p>See the <a href="https://example.com/catalog">course catalog</a>.</p>`)
		require.NoError(t, err)
		assert.Contains(t, md, "[course catalog](https://example.com/catalog)")
	})

	t.Run("preserves tables", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()

		md, err := conv.Convert(`<table><tr><th>Course</th><th>Credits</th></tr><tr><td>CS101</td><td>3</td></tr></table>`)
		require.NoError(t, err)
		assert.Contains(t, md, "| Course | Credits |")
		assert.Contains(t, md, "| CS101 | 3 |")
	})

	t.Run("separates paragraphs with blank lines", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()

		md, err := conv.Convert("<p>First paragraph.</p><p>Second paragraph.</p>")
		require.NoError(t, err)
		assert.Contains(t, md, "First paragraph.\n\nSecond paragraph.")
	})

	t.Run("returns EINVALID for empty input", func(t *testing.T) {
		t.Parallel()

		conv := htmltomarkdown.NewConverter()

		_, err := conv.Convert("   \n\t  ")
		require.Error(t, err)
		assert.Equal(t, crawldoc.EINVALID, crawldoc.ErrorCode(err))
	})
}
