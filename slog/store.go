package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vanity"
)

// Ensure LoggingStore implements vanity.ResultStore.
var _ vanity.ResultStore = (*LoggingStore)(nil)

// LoggingStore wraps a ResultStore with logging of loads and persists.
type LoggingStore struct {
	next   vanity.ResultStore
	logger *slog.Logger
}

// NewLoggingStore creates a new LoggingStore.
func NewLoggingStore(next vanity.ResultStore, logger *slog.Logger) *LoggingStore {
	return &LoggingStore{next: next, logger: logger}
}

// Load delegates to the wrapped store and logs the loaded sizes.
func (s *LoggingStore) Load(ctx context.Context) (state *vanity.State, err error) {
	defer func(begin time.Time) {
		var available, unavailable int
		if state != nil {
			available, unavailable = state.Counts()
		}
		s.logger.Debug("state loaded",
			"available", available,
			"unavailable", unavailable,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Load(ctx)
}

// Persist delegates to the wrapped store and logs the persisted sizes.
func (s *LoggingStore) Persist(ctx context.Context, state *vanity.State) (err error) {
	defer func(begin time.Time) {
		available, unavailable := state.Counts()
		s.logger.Debug("state persisted",
			"available", available,
			"unavailable", unavailable,
			"digest", state.Digest(),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Persist(ctx, state)
}
