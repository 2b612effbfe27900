package check

import (
	"sort"
	"sync"
	"time"

	"github.com/fwojciec/vanity"
)

// CooldownWindow is how long an identifier is left alone after the remote
// service throttled a request for it.
const CooldownWindow = 5 * time.Minute

var _ vanity.RateLimitTracker = (*CooldownTracker)(nil)

// CooldownTracker is an in-memory record of throttling events.
// It lives for a single run and is safe for concurrent use.
type CooldownTracker struct {
	mu     sync.Mutex
	marks  map[string]time.Time
	window time.Duration
}

// NewCooldownTracker creates an empty tracker using CooldownWindow.
func NewCooldownTracker() *CooldownTracker {
	return &CooldownTracker{
		marks:  make(map[string]time.Time),
		window: CooldownWindow,
	}
}

// Mark records that id was throttled at now.
func (t *CooldownTracker) Mark(id string, now time.Time) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.marks[vanity.Normalize(id)] = now
}

// CoolingDown reports whether id was throttled less than the window before now.
func (t *CooldownTracker) CoolingDown(id string, now time.Time) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	marked, ok := t.marks[vanity.Normalize(id)]
	if !ok {
		return false
	}
	return now.Sub(marked) < t.window
}

// Clear forgets any throttling recorded for id.
func (t *CooldownTracker) Clear(id string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.marks, vanity.Normalize(id))
}

// Marked returns when id was last throttled.
func (t *CooldownTracker) Marked(id string) (time.Time, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	marked, ok := t.marks[vanity.Normalize(id)]
	return marked, ok
}

// Len returns the number of identifiers with a recorded throttling event.
func (t *CooldownTracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.marks)
}

// IDs returns the identifiers with a recorded throttling event, in ascending order.
func (t *CooldownTracker) IDs() []string {
	t.mu.Lock()
	defer t.mu.Unlock()

	ids := make([]string, 0, len(t.marks))
	for id := range t.marks {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}
