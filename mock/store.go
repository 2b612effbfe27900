package mock

import (
	"context"

	"github.com/fwojciec/vanity"
)

var _ vanity.ResultStore = (*ResultStore)(nil)

// ResultStore is a mock implementation of vanity.ResultStore.
type ResultStore struct {
	LoadFn    func(ctx context.Context) (*vanity.State, error)
	PersistFn func(ctx context.Context, state *vanity.State) error
}

func (s *ResultStore) Load(ctx context.Context) (*vanity.State, error) {
	return s.LoadFn(ctx)
}

func (s *ResultStore) Persist(ctx context.Context, state *vanity.State) error {
	return s.PersistFn(ctx, state)
}

var _ vanity.WordSource = (*WordSource)(nil)

// WordSource is a mock implementation of vanity.WordSource.
type WordSource struct {
	WordsFn func(ctx context.Context) ([]string, error)
}

func (s *WordSource) Words(ctx context.Context) ([]string, error) {
	return s.WordsFn(ctx)
}
