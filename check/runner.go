package check

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fwojciec/vanity"
	"github.com/google/uuid"
)

// Runner wires the filter, scheduler and checker together for one run.
type Runner struct {
	Config   vanity.Config
	Resolver vanity.Resolver
	Store    vanity.ResultStore

	// SkipList supplies the skip set. Nil means no skip set.
	SkipList vanity.WordSource

	// Optional collaborators.
	Runs     vanity.RunService
	Recorder vanity.Recorder
	Limiter  vanity.RequestLimiter
	Progress ProgressFunc
	Logger   *slog.Logger

	// Test hooks, see Checker.
	Now    func() time.Time
	Sleep  SleepFunc
	Jitter JitterFunc
}

// Summary holds the outcome of a run.
type Summary struct {
	RunID      string
	Mode       vanity.Mode
	Candidates int

	// Available and Unavailable are the sizes of the state after the run.
	Available   int
	Unavailable int

	// Outcomes tallies the terminal outcome of every input identifier,
	// including those dropped by the filter.
	Outcomes map[vanity.Outcome]int

	// RateLimited lists identifiers still marked as throttled at the end
	// of the run.
	RateLimited []string

	Digest  string
	Results []vanity.Result

	// Run is the history record of this run.
	Run *vanity.Run
}

// Run checks words and persists the updated state. Startup failures (invalid
// config, unreadable skip set or state) abort before any check is issued.
// If ctx is canceled before every check finishes, nothing is persisted.
func (r *Runner) Run(ctx context.Context, words []string) (*Summary, error) {
	if err := r.Config.Validate(); err != nil {
		return nil, err
	}

	startedAt := r.now()
	runID := uuid.NewString()
	logger := r.logger().With("run", runID, "mode", string(r.Config.Mode))
	logger.Info("starting check run", "words", len(words))

	skips, err := r.loadSkipSet(ctx, logger)
	if err != nil {
		return nil, err
	}

	state, err := r.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load state: %w", err)
	}

	filtered := FilterCandidates(words, skips, !r.Config.IgnoreSkipSet)
	for _, skipped := range filtered.Skipped {
		logger.Info("skipped", "id", skipped.ID, "reason", skipReason(skipped.Outcome))
		r.record(skipped)
	}

	cooldowns := NewCooldownTracker()
	checker := &Checker{
		Config:    r.Config,
		Resolver:  r.Resolver,
		State:     state,
		Cooldowns: cooldowns,
		Limiter:   r.Limiter,
		Logger:    logger,
		Now:       r.Now,
		Sleep:     r.Sleep,
		Jitter:    r.Jitter,
	}

	check := func(ctx context.Context, id string) vanity.Result {
		result := checker.Check(ctx, id)
		r.record(result)
		return result
	}
	results := Schedule(ctx, filtered.Candidates, r.Config.MaxConcurrent, check, r.Progress)

	if err := ctx.Err(); err != nil {
		logger.Warn("run interrupted, state not persisted", "err", err)
		return nil, fmt.Errorf("run interrupted: %w", err)
	}

	if err := r.Store.Persist(ctx, state); err != nil {
		return nil, fmt.Errorf("persist state: %w", err)
	}

	available, unavailable := state.Counts()
	summary := &Summary{
		RunID:       runID,
		Mode:        r.Config.Mode,
		Candidates:  len(filtered.Candidates),
		Available:   available,
		Unavailable: unavailable,
		Outcomes:    make(map[vanity.Outcome]int),
		RateLimited: cooldowns.IDs(),
		Digest:      state.Digest(),
		Results:     append(filtered.Skipped, results...),
	}
	for _, result := range summary.Results {
		summary.Outcomes[result.Outcome]++
	}

	summary.Run = &vanity.Run{
		ID:          runID,
		Mode:        r.Config.Mode,
		Candidates:  summary.Candidates,
		Available:   available,
		Unavailable: unavailable,
		Digest:      summary.Digest,
		StartedAt:   startedAt,
		FinishedAt:  r.now(),
	}
	if r.Runs != nil {
		if err := r.Runs.CreateRun(ctx, summary.Run); err != nil {
			logger.Warn("failed to record run", "err", err)
		}
	}

	logger.Info("check complete", "available", available, "unavailable", unavailable)
	return summary, nil
}

func (r *Runner) loadSkipSet(ctx context.Context, logger *slog.Logger) (vanity.SkipSet, error) {
	if r.Config.IgnoreSkipSet {
		logger.Info("skip set ignored by configuration")
		return vanity.SkipSet{}, nil
	}
	if r.SkipList == nil {
		return vanity.SkipSet{}, nil
	}
	words, err := r.SkipList.Words(ctx)
	if err != nil {
		return vanity.SkipSet{}, fmt.Errorf("load skip set: %w", err)
	}
	return vanity.NewSkipSet(words), nil
}

func (r *Runner) record(result vanity.Result) {
	if r.Recorder != nil {
		r.Recorder.Record(r.Config.Mode, result)
	}
}

func (r *Runner) logger() *slog.Logger {
	if r.Logger != nil {
		return r.Logger
	}
	return slog.Default()
}

func (r *Runner) now() time.Time {
	if r.Now != nil {
		return r.Now()
	}
	return time.Now().UTC()
}

func skipReason(o vanity.Outcome) string {
	switch o {
	case vanity.OutcomeSkippedTooShort:
		return "too short"
	case vanity.OutcomeSkippedInSkipSet:
		return "in skip set"
	}
	return string(o)
}
