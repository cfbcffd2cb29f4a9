package crawl_test

import (
	"testing"

	"github.com/fwojciec/crawldoc/crawl"
	"github.com/stretchr/testify/assert"
)

func TestComputeHash_is_deterministic(t *testing.T) {
	t.Parallel()

	a := crawl.ComputeHash("some content")
	b := crawl.ComputeHash("some content")
	c := crawl.ComputeHash("other content")

	assert.Equal(t, a, b)
	assert.NotEqual(t, a, c)
	assert.NotEmpty(t, a)
}

func TestTruncateURL(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "https://a.com/x", crawl.TruncateURL("https://a.com/x", 20))
	assert.Equal(t, "...example.com/docs/page", crawl.TruncateURL("https://www.example.com/docs/page", 24))
	assert.Equal(t, "", crawl.TruncateURL("https://a.com/", 0))
}

func TestFormatBytes(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "512 B", crawl.FormatBytes(512))
	assert.Equal(t, "1.5 KB", crawl.FormatBytes(1536))
	assert.Equal(t, "2.0 MB", crawl.FormatBytes(2*1024*1024))
}
