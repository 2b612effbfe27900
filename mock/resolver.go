package mock

import (
	"context"

	"github.com/fwojciec/vanity"
)

var _ vanity.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of vanity.Resolver.
type Resolver struct {
	ResolveFn func(ctx context.Context, id string) (vanity.Resolution, error)
}

func (r *Resolver) Resolve(ctx context.Context, id string) (vanity.Resolution, error) {
	return r.ResolveFn(ctx, id)
}

var _ vanity.RequestLimiter = (*RequestLimiter)(nil)

// RequestLimiter is a mock implementation of vanity.RequestLimiter.
type RequestLimiter struct {
	WaitFn func(ctx context.Context) error
}

func (l *RequestLimiter) Wait(ctx context.Context) error {
	return l.WaitFn(ctx)
}
