package check

import (
	"context"
	"math/rand/v2"
	"time"
)

// MaxJitter bounds the random delay added to every backoff wait.
const MaxJitter = 500 * time.Millisecond

// SleepFunc waits for d or until the context is canceled.
type SleepFunc func(ctx context.Context, d time.Duration) error

// JitterFunc returns a random extra delay in [0, MaxJitter).
type JitterFunc func() time.Duration

// Sleep waits for d, returning early with the context error if ctx is done.
func Sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// RandomJitter returns a uniformly distributed duration in [0, MaxJitter).
func RandomJitter() time.Duration {
	return time.Duration(rand.Int64N(int64(MaxJitter)))
}

// BackoffDelays returns the waits, without jitter, that follow each failed
// attempt of a check with the given attempt budget. Checker sleeps through
// this schedule. No wait follows the final attempt, so a budget of n yields
// n-1 delays: base, 2*base, 4*base...
func BackoffDelays(base time.Duration, attempts int) []time.Duration {
	if attempts <= 1 {
		return nil
	}
	delays := make([]time.Duration, attempts-1)
	delay := base
	for i := range delays {
		delays[i] = delay
		delay *= 2
	}
	return delays
}
