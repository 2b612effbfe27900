package check

import (
	"context"

	"github.com/fwojciec/vanity"
	"golang.org/x/time/rate"
)

var _ vanity.RequestLimiter = (*Pacer)(nil)

// Pacer spaces out requests across all workers using a token bucket.
type Pacer struct {
	limiter *rate.Limiter
}

// NewPacer creates a Pacer allowing rps requests per second with a burst of 1.
func NewPacer(rps float64) *Pacer {
	return &Pacer{
		limiter: rate.NewLimiter(rate.Limit(rps), 1),
	}
}

// Wait blocks until the next request may be sent.
// Returns an error if the context is canceled before the wait completes.
func (p *Pacer) Wait(ctx context.Context) error {
	return p.limiter.Wait(ctx)
}
