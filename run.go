package vanity

import (
	"context"
	"time"
)

// Run records the summary of one completed check run.
type Run struct {
	ID          string    `json:"id"`
	Mode        Mode      `json:"mode"`
	Candidates  int       `json:"candidates"`
	Available   int       `json:"available"`
	Unavailable int       `json:"unavailable"`
	Digest      string    `json:"digest"`
	StartedAt   time.Time `json:"startedAt"`
	FinishedAt  time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if _, err := ParseMode(string(r.Mode)); err != nil {
		return err
	}
	if r.StartedAt.IsZero() {
		return Errorf(EINVALID, "run start time required")
	}
	if r.FinishedAt.Before(r.StartedAt) {
		return Errorf(EINVALID, "run cannot finish before it starts")
	}
	return nil
}

// RunService represents a service for recording check runs.
type RunService interface {
	// CreateRun records a completed run and assigns its ID.
	CreateRun(ctx context.Context, run *Run) error

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	Mode *Mode `json:"mode"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
