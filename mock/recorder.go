package mock

import (
	"sync"

	"github.com/fwojciec/vanity"
)

var _ vanity.Recorder = (*ResultLog)(nil)

// ResultLog is a vanity.Recorder that keeps every result it sees.
// It is safe for concurrent use.
type ResultLog struct {
	mu      sync.Mutex
	results []vanity.Result
}

func (l *ResultLog) Record(_ vanity.Mode, result vanity.Result) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.results = append(l.results, result)
}

// Results returns a copy of the recorded results.
func (l *ResultLog) Results() []vanity.Result {
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]vanity.Result(nil), l.results...)
}
