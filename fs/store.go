package fs

import (
	"context"
	"fmt"
	"sync"

	"github.com/fwojciec/vanity"
)

// Ensure ResultStore implements vanity.ResultStore at compile time.
var _ vanity.ResultStore = (*ResultStore)(nil)

// ResultStore persists the state of one mode as two JSON files in the
// output directory: valid_<mode>.json holds the available identifiers as an
// array, and invalid_<mode>.json maps unavailable identifiers to the date
// they were last checked.
type ResultStore struct {
	outputDir string
	mode      vanity.Mode

	// mu serializes Persist calls from this process.
	mu sync.Mutex
}

// NewResultStore creates a ResultStore for mode rooted at outputDir.
func NewResultStore(outputDir string, mode vanity.Mode) *ResultStore {
	return &ResultStore{
		outputDir: outputDir,
		mode:      mode,
	}
}

// Load reads both files. Missing files yield an empty state. Identifiers are
// normalized; short identifiers are dropped and an identifier present in
// both files is treated as available.
func (s *ResultStore) Load(ctx context.Context) (*vanity.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	var available []string
	if _, err := readJSON(ValidPath(s.outputDir, s.mode), &available); err != nil {
		return nil, fmt.Errorf("read available set: %w", err)
	}

	var unavailable map[string]string
	if _, err := readJSON(InvalidPath(s.outputDir, s.mode), &unavailable); err != nil {
		return nil, fmt.Errorf("read unavailable map: %w", err)
	}

	state := vanity.NewState()
	for _, id := range available {
		state.MarkAvailable(id)
	}
	for id, date := range unavailable {
		state.RestoreUnavailable(id, date)
	}
	return state, nil
}

// Persist merges state into the files on disk and rewrites both of them.
// Entries written by earlier runs are kept; dates from state win.
func (s *ResultStore) Persist(ctx context.Context, state *vanity.State) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged, err := s.Load(ctx)
	if err != nil {
		return err
	}
	merged.Merge(state)

	if err := writeJSON(ValidPath(s.outputDir, s.mode), merged.Available()); err != nil {
		return fmt.Errorf("write available set: %w", err)
	}
	if err := writeJSON(InvalidPath(s.outputDir, s.mode), merged.Unavailable()); err != nil {
		return fmt.Errorf("write unavailable map: %w", err)
	}
	return nil
}
