package mock

import (
	"context"

	"github.com/fwojciec/crawldoc"
)

var _ crawldoc.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of crawldoc.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*crawldoc.FetchResult, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*crawldoc.FetchResult, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}
