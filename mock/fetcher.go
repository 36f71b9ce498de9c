package mock

import (
	"context"

	"github.com/fwojciec/exegesis"
)

var _ exegesis.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of exegesis.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*exegesis.Website, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*exegesis.Website, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
