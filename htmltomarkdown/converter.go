// Package htmltomarkdown converts extracted HTML regions to Markdown.
package htmltomarkdown

import (
	"strings"

	"github.com/JohannesKaufmann/html-to-markdown/v2/converter"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/base"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/commonmark"
	"github.com/JohannesKaufmann/html-to-markdown/v2/plugin/table"
	"github.com/fwojciec/crawldoc"
)

// Ensure Converter implements crawldoc.Converter at compile time.
var _ crawldoc.Converter = (*Converter)(nil)

// Converter wraps html-to-markdown. Links and tables are preserved and
// lines are never hard-wrapped, so paragraph boundaries stay blank-line
// delimited for the deduplication pass.
type Converter struct {
	conv *converter.Converter
}

// NewConverter creates a new Converter.
func NewConverter() *Converter {
	conv := converter.NewConverter(
		converter.WithPlugins(
			base.NewBasePlugin(),
			commonmark.NewCommonmarkPlugin(),
			table.NewTablePlugin(),
		),
	)
	return &Converter{conv: conv}
}

// Convert transforms HTML content into Markdown.
func (c *Converter) Convert(html string) (string, error) {
	if strings.TrimSpace(html) == "" {
		return "", crawldoc.Errorf(crawldoc.EINVALID, "empty HTML input")
	}

	result, err := c.conv.ConvertString(html)
	if err != nil {
		return "", crawldoc.Errorf(crawldoc.EPARSE, "markdown conversion: %v", err)
	}

	return result, nil
}
