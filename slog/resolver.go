// Package slog provides logging decorators for vanity services.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/vanity"
)

// Ensure LoggingResolver implements vanity.Resolver.
var _ vanity.Resolver = (*LoggingResolver)(nil)

// LoggingResolver wraps a Resolver with debug logging.
type LoggingResolver struct {
	next   vanity.Resolver
	logger *slog.Logger
}

// NewLoggingResolver creates a new LoggingResolver.
func NewLoggingResolver(next vanity.Resolver, logger *slog.Logger) *LoggingResolver {
	return &LoggingResolver{next: next, logger: logger}
}

// Resolve delegates to the wrapped resolver and logs the lookup.
func (r *LoggingResolver) Resolve(ctx context.Context, id string) (res vanity.Resolution, err error) {
	defer func(begin time.Time) {
		args := []any{
			"id", id,
			"verdict", res.Verdict.String(),
			"duration", time.Since(begin),
		}
		if err != nil {
			args = append(args, "code", vanity.ErrorCode(err), "err", err)
		}
		r.logger.Debug("lookup", args...)
	}(time.Now())
	return r.next.Resolve(ctx, id)
}
