package mock

import "github.com/fwojciec/crawldoc"

var _ crawldoc.Converter = (*Converter)(nil)

// Converter is a mock implementation of crawldoc.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}
