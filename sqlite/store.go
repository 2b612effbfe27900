package sqlite

import (
	"context"
	"fmt"

	"github.com/fwojciec/vanity"
)

const (
	statusAvailable   = "available"
	statusUnavailable = "unavailable"
)

// Compile-time interface verification.
var _ vanity.ResultStore = (*ResultStore)(nil)

// ResultStore implements vanity.ResultStore for one mode using SQLite.
type ResultStore struct {
	db   *DB
	mode vanity.Mode
}

// NewResultStore creates a new ResultStore for mode.
func NewResultStore(db *DB, mode vanity.Mode) *ResultStore {
	return &ResultStore{db: db, mode: mode}
}

// Load reads every identifier recorded for the store's mode.
func (s *ResultStore) Load(ctx context.Context) (*vanity.State, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, status, checked_on
		FROM identifiers
		WHERE mode = ?
	`, string(s.mode))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	state := vanity.NewState()
	for rows.Next() {
		var id, status, checkedOn string
		if err := rows.Scan(&id, &status, &checkedOn); err != nil {
			return nil, err
		}

		switch status {
		case statusAvailable:
			state.MarkAvailable(id)
		case statusUnavailable:
			state.RestoreUnavailable(id, checkedOn)
		}
	}

	return state, rows.Err()
}

// Persist upserts state in a single transaction. Available identifiers
// replace any unavailable row. Unavailable dates replace earlier dates but
// never an available row.
func (s *ResultStore) Persist(ctx context.Context, state *vanity.State) error {
	tx, err := s.db.BeginTx(ctx)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, id := range state.Available() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO identifiers (mode, id, status, checked_on)
			VALUES (?, ?, 'available', '')
			ON CONFLICT (mode, id) DO UPDATE SET status = 'available', checked_on = ''
		`, string(s.mode), id); err != nil {
			return fmt.Errorf("failed to store available %q: %w", id, err)
		}
	}

	for id, date := range state.Unavailable() {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO identifiers (mode, id, status, checked_on)
			VALUES (?, ?, 'unavailable', ?)
			ON CONFLICT (mode, id) DO UPDATE SET checked_on = excluded.checked_on
			WHERE identifiers.status = 'unavailable'
		`, string(s.mode), id, date); err != nil {
			return fmt.Errorf("failed to store unavailable %q: %w", id, err)
		}
	}

	return tx.Commit()
}
