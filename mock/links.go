package mock

import "github.com/fwojciec/crawldoc"

var _ crawldoc.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of crawldoc.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string, baseURL string) ([]crawldoc.Link, error)
}

func (e *LinkExtractor) ExtractLinks(html string, baseURL string) ([]crawldoc.Link, error) {
	return e.ExtractLinksFn(html, baseURL)
}
