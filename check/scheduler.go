package check

import (
	"context"
	"sync"

	"github.com/fwojciec/vanity"
	"golang.org/x/sync/errgroup"
)

// CheckFunc checks a single identifier and returns its terminal result.
type CheckFunc func(ctx context.Context, id string) vanity.Result

// ProgressEvent reports progress while checks run.
type ProgressEvent struct {
	Type      ProgressType
	Completed int
	Total     int
	Result    vanity.Result
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFinished
)

// ProgressFunc is a callback for reporting check progress.
// Calls are serialized.
type ProgressFunc func(event ProgressEvent)

// Schedule runs check for every id with at most limit checks in flight and
// returns once all of them have finished. Results are returned in the order
// of ids; completion order is unspecified when limit is greater than one.
func Schedule(ctx context.Context, ids []string, limit int, check CheckFunc, progress ProgressFunc) []vanity.Result {
	if limit <= 0 {
		limit = 1
	}

	total := len(ids)
	results := make([]vanity.Result, total)

	var mu sync.Mutex
	completed := 0
	report := func(event ProgressEvent) {
		if progress == nil {
			return
		}
		progress(event)
	}

	report(ProgressEvent{Type: ProgressStarted, Total: total})

	var g errgroup.Group
	g.SetLimit(limit)

	for i, id := range ids {
		g.Go(func() error {
			result := check(ctx, id)
			results[i] = result

			mu.Lock()
			completed++
			report(ProgressEvent{
				Type:      ProgressCompleted,
				Completed: completed,
				Total:     total,
				Result:    result,
			})
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	report(ProgressEvent{Type: ProgressFinished, Completed: total, Total: total})

	return results
}
