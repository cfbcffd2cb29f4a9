package mock

import "github.com/fwojciec/crawldoc"

var _ crawldoc.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of crawldoc.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*crawldoc.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*crawldoc.ExtractResult, error) {
	return e.ExtractFn(html)
}
