package vanity

// Outcome is the terminal state of one identifier's check.
type Outcome string

const (
	// OutcomeAvailable means the remote service reported the identifier free.
	OutcomeAvailable Outcome = "available"
	// OutcomeUnavailable means the identifier is taken.
	OutcomeUnavailable Outcome = "unavailable"
	// OutcomeUnknown means the response matched neither classification.
	OutcomeUnknown Outcome = "unknown"
	// OutcomeMalformed means the response had an unexpected content type or shape.
	OutcomeMalformed Outcome = "malformed"
	// OutcomeRetriesExhausted means every attempt was throttled or failed in transport.
	OutcomeRetriesExhausted Outcome = "retries_exhausted"
	// OutcomeFailed means a local fault interrupted this identifier's check.
	OutcomeFailed Outcome = "failed"

	OutcomeSkippedTooShort        Outcome = "skipped_too_short"
	OutcomeSkippedInSkipSet       Outcome = "skipped_in_skip_set"
	OutcomeSkippedAlreadyKnown    Outcome = "skipped_already_known"
	OutcomeSkippedRecentlyChecked Outcome = "skipped_recently_checked"
	OutcomeSkippedCooldown        Outcome = "skipped_cooldown"
)

// Skipped reports whether the outcome was reached without contacting the
// remote service.
func (o Outcome) Skipped() bool {
	switch o {
	case OutcomeSkippedTooShort, OutcomeSkippedInSkipSet, OutcomeSkippedAlreadyKnown,
		OutcomeSkippedRecentlyChecked, OutcomeSkippedCooldown:
		return true
	}
	return false
}

// Result is the outcome of checking a single identifier.
type Result struct {
	ID      string
	Outcome Outcome

	// Attempts counts the remote lookups issued.
	Attempts int
	// Throttles counts the attempts answered with HTTP 429.
	Throttles int

	// Err holds the last error for malformed, exhausted and failed outcomes.
	Err error
}

// Recorder observes check results as they complete.
// Implementations must be safe for concurrent use.
type Recorder interface {
	Record(mode Mode, result Result)
}
