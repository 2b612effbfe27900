package check

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/vanity"
)

// Checker runs the availability check for one identifier at a time.
// A single Checker is shared by all workers of a run.
type Checker struct {
	Config    vanity.Config
	Resolver  vanity.Resolver
	State     *vanity.State
	Cooldowns vanity.RateLimitTracker

	// Limiter, if set, paces every remote lookup.
	Limiter vanity.RequestLimiter

	Logger *slog.Logger

	// Now, Sleep and Jitter default to the wall clock, Sleep and
	// RandomJitter. Tests replace them.
	Now    func() time.Time
	Sleep  SleepFunc
	Jitter JitterFunc
}

// Check runs the check state machine for id and returns its terminal result.
// It never returns an error: every failure is reported through the result's
// outcome, and only the identifier being checked is affected.
func (c *Checker) Check(ctx context.Context, id string) (result vanity.Result) {
	id = vanity.Normalize(id)
	result = vanity.Result{ID: id}
	logger := c.logger().With("id", id)

	defer func() {
		if r := recover(); r != nil {
			result.Outcome = vanity.OutcomeFailed
			result.Err = vanity.Errorf(vanity.EINTERNAL, "panic while checking %q: %v", id, r)
			logger.Error("check failed", "err", result.Err)
		}
	}()

	if outcome, ok := c.guard(logger, id, &result); ok {
		result.Outcome = outcome
		return result
	}

	return c.request(ctx, logger, result)
}

// guard evaluates the checks that end an identifier's check without any
// network contact. The bool result is true if the check is over.
func (c *Checker) guard(logger *slog.Logger, id string, result *vanity.Result) (vanity.Outcome, bool) {
	if !vanity.ValidIdentifier(id) {
		logger.Info("skipped", "reason", "too short")
		return vanity.OutcomeSkippedTooShort, true
	}

	if c.State.IsAvailable(id) {
		return vanity.OutcomeSkippedAlreadyKnown, true
	}

	now := c.now()

	if !c.Config.IgnoreCheckInterval {
		last, ok, err := c.State.LastChecked(id)
		if err != nil {
			result.Err = err
			logger.Error("check failed", "err", vanity.ErrorMessage(err))
			return vanity.OutcomeFailed, true
		}
		if ok {
			days := vanity.DaysSince(last, now)
			if days < c.Config.CheckIntervalDays {
				logger.Info("skipped", "reason", "recently checked", "days_ago", days)
				return vanity.OutcomeSkippedRecentlyChecked, true
			}
		}
	}

	if c.Cooldowns != nil && c.Cooldowns.CoolingDown(id, now) {
		logger.Info("skipped", "reason", "rate limit cooldown")
		return vanity.OutcomeSkippedCooldown, true
	}

	return "", false
}

// request issues lookups until one is classified or the attempt budget is spent.
func (c *Checker) request(ctx context.Context, logger *slog.Logger, result vanity.Result) vanity.Result {
	id := result.ID
	maxRetries := c.Config.MaxRetries
	if maxRetries <= 0 {
		maxRetries = vanity.DefaultMaxRetries
	}
	delays := BackoffDelays(c.Config.RetryDelay, maxRetries)

	for attempt := 1; attempt <= maxRetries; attempt++ {
		if err := ctx.Err(); err != nil {
			return interrupted(logger, result, err)
		}
		if c.Limiter != nil {
			if err := c.Limiter.Wait(ctx); err != nil {
				return interrupted(logger, result, err)
			}
		}

		result.Attempts++
		res, err := c.Resolver.Resolve(ctx, id)
		if err == nil {
			if c.Cooldowns != nil {
				c.Cooldowns.Clear(id)
			}
			return c.apply(logger, result, res)
		}
		result.Err = err

		last := attempt == maxRetries
		args := []any{"attempt", attempt}
		if !last {
			args = append(args, "retry_in", delays[attempt-1])
		}

		switch vanity.ErrorCode(err) {
		case vanity.EMALFORMED:
			logger.Warn("unexpected content", "err", vanity.ErrorMessage(err))
			result.Outcome = vanity.OutcomeMalformed
			return result
		case vanity.ETHROTTLED:
			result.Throttles++
			if c.Cooldowns != nil {
				c.Cooldowns.Mark(id, c.now())
			}
			logger.Warn("rate limited", args...)
		default:
			logger.Warn("network error", append(args, "err", err)...)
		}

		if last {
			break
		}
		if err := c.sleep(ctx, delays[attempt-1]+c.jitter()); err != nil {
			return interrupted(logger, result, err)
		}
	}

	logger.Warn("retries exhausted", "attempts", result.Attempts)
	result.Outcome = vanity.OutcomeRetriesExhausted
	return result
}

// apply records a classified response in the state.
func (c *Checker) apply(logger *slog.Logger, result vanity.Result, res vanity.Resolution) vanity.Result {
	result.Err = nil

	switch res.Verdict {
	case vanity.VerdictAvailable:
		c.State.MarkAvailable(result.ID)
		logger.Info("available")
		result.Outcome = vanity.OutcomeAvailable
	case vanity.VerdictTaken:
		c.State.MarkUnavailable(result.ID, c.now())
		logger.Info("unavailable")
		result.Outcome = vanity.OutcomeUnavailable
	default:
		logger.Info("unknown response", "detail", res.Detail)
		result.Outcome = vanity.OutcomeUnknown
	}
	return result
}

func interrupted(logger *slog.Logger, result vanity.Result, err error) vanity.Result {
	result.Outcome = vanity.OutcomeFailed
	result.Err = fmt.Errorf("check interrupted: %w", err)
	logger.Warn("check failed", "err", result.Err)
	return result
}

func (c *Checker) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}

func (c *Checker) now() time.Time {
	if c.Now != nil {
		return c.Now()
	}
	return time.Now().UTC()
}

func (c *Checker) sleep(ctx context.Context, d time.Duration) error {
	if c.Sleep != nil {
		return c.Sleep(ctx, d)
	}
	return Sleep(ctx, d)
}

func (c *Checker) jitter() time.Duration {
	if c.Jitter != nil {
		return c.Jitter()
	}
	return RandomJitter()
}
