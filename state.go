package vanity

import (
	"context"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
)

// DateLayout is the calendar date format used for last-checked dates.
const DateLayout = "2006-01-02"

// FormatDate formats t as a UTC calendar date.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}

// ParseDate parses a YYYY-MM-DD date as midnight UTC.
func ParseDate(s string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, s, time.UTC)
	if err != nil {
		return time.Time{}, Errorf(EINVALID, "malformed date %q", s)
	}
	return t, nil
}

// DaysSince returns the whole days elapsed from date to now, rounded down.
func DaysSince(date, now time.Time) int {
	return int(math.Floor(now.Sub(date).Hours() / 24))
}

// State holds the available set and the unavailable map for one mode.
// It is safe for concurrent use by multiple goroutines.
//
// An identifier is never both available and unavailable, and every stored
// identifier is normalized and at least MinIdentifierLength long.
type State struct {
	mu          sync.Mutex
	available   map[string]struct{}
	unavailable map[string]string
}

// NewState returns an empty State.
func NewState() *State {
	return &State{
		available:   make(map[string]struct{}),
		unavailable: make(map[string]string),
	}
}

// IsAvailable reports whether id is already known to be available.
func (s *State) IsAvailable(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.available[Normalize(id)]
	return ok
}

// LastChecked returns the date id was last found unavailable.
// The bool result is false if id is not in the unavailable map.
// Returns EINVALID if the stored date is malformed.
func (s *State) LastChecked(id string) (time.Time, bool, error) {
	s.mu.Lock()
	raw, ok := s.unavailable[Normalize(id)]
	s.mu.Unlock()

	if !ok {
		return time.Time{}, false, nil
	}
	t, err := ParseDate(raw)
	if err != nil {
		return time.Time{}, true, err
	}
	return t, true, nil
}

// MarkAvailable adds id to the available set and removes it from the
// unavailable map. Returns false if id is too short to be stored.
func (s *State) MarkAvailable(id string) bool {
	id = Normalize(id)
	if !ValidIdentifier(id) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.available[id] = struct{}{}
	delete(s.unavailable, id)
	return true
}

// MarkUnavailable records that id was found taken on the given day.
// Returns false if id is too short or already available; the available
// set only ever grows.
func (s *State) MarkUnavailable(id string, on time.Time) bool {
	return s.RestoreUnavailable(id, FormatDate(on))
}

// RestoreUnavailable records a raw date string for id as read from storage.
// The date is kept verbatim so a malformed value survives a round trip and
// is reported per identifier by LastChecked.
func (s *State) RestoreUnavailable(id, date string) bool {
	id = Normalize(id)
	if !ValidIdentifier(id) {
		return false
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.available[id]; ok {
		return false
	}
	s.unavailable[id] = date
	return true
}

// Merge applies other on top of s. Available identifiers from other are
// added, and unavailable dates from other replace those in s.
func (s *State) Merge(other *State) {
	if other == nil || other == s {
		return
	}

	available := other.Available()
	unavailable := other.Unavailable()

	for _, id := range available {
		s.MarkAvailable(id)
	}
	for id, date := range unavailable {
		s.RestoreUnavailable(id, date)
	}
}

// Available returns the available identifiers in ascending order.
func (s *State) Available() []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	ids := make([]string, 0, len(s.available))
	for id := range s.available {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// Unavailable returns a copy of the unavailable map.
func (s *State) Unavailable() map[string]string {
	s.mu.Lock()
	defer s.mu.Unlock()

	m := make(map[string]string, len(s.unavailable))
	for id, date := range s.unavailable {
		m[id] = date
	}
	return m
}

// Counts returns the sizes of the available set and the unavailable map.
func (s *State) Counts() (available, unavailable int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.available), len(s.unavailable)
}

// Digest returns a fingerprint of the state contents.
// Two states with equal contents have equal digests.
func (s *State) Digest() string {
	available := s.Available()
	unavailable := s.Unavailable()

	ids := make([]string, 0, len(unavailable))
	for id := range unavailable {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	h := xxhash.New()
	for _, id := range available {
		_, _ = h.WriteString("a:" + id + "\n")
	}
	for _, id := range ids {
		_, _ = h.WriteString("u:" + id + "=" + unavailable[id] + "\n")
	}
	return fmt.Sprintf("%016x", h.Sum64())
}

// ResultStore loads and persists the State of one mode.
type ResultStore interface {
	// Load reads the persisted state. A store with nothing persisted yet
	// returns an empty State.
	Load(ctx context.Context) (*State, error)

	// Persist merges state into what is currently persisted and writes
	// the result. It never drops entries written by earlier runs.
	Persist(ctx context.Context, state *State) error
}
