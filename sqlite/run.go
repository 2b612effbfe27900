package sqlite

import (
	"context"
	"strings"

	"github.com/fwojciec/vanity"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ vanity.RunService = (*RunService)(nil)

// RunService implements vanity.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records a completed run. A run without an ID is given one.
func (s *RunService) CreateRun(ctx context.Context, run *vanity.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	if run.ID == "" {
		run.ID = uuid.New().String()
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, mode, candidates, available, unavailable, digest, started_at, finished_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, run.ID, string(run.Mode), run.Candidates, run.Available, run.Unavailable, run.Digest,
		formatTime(run.StartedAt), formatTime(run.FinishedAt))
	if err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed") {
		return vanity.Errorf(vanity.ECONFLICT, "run %s already recorded", run.ID)
	}
	return err
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter vanity.RunFilter) ([]*vanity.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT id, mode, candidates, available, unavailable, digest, started_at, finished_at FROM runs WHERE 1=1")

	if filter.Mode != nil {
		query.WriteString(" AND mode = ?")
		args = append(args, string(*filter.Mode))
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*vanity.Run
	for rows.Next() {
		var run vanity.Run
		var mode, startedAt, finishedAt string

		if err := rows.Scan(&run.ID, &mode, &run.Candidates, &run.Available, &run.Unavailable,
			&run.Digest, &startedAt, &finishedAt); err != nil {
			return nil, err
		}
		run.Mode = vanity.Mode(mode)

		if run.StartedAt, err = parseRFC3339(startedAt, "started_at"); err != nil {
			return nil, err
		}
		if run.FinishedAt, err = parseRFC3339(finishedAt, "finished_at"); err != nil {
			return nil, err
		}

		runs = append(runs, &run)
	}

	return runs, rows.Err()
}
