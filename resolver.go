package vanity

import (
	"context"
	"strings"
	"time"
)

// Verdict is the classification of a well-formed remote response.
type Verdict int

const (
	VerdictUnknown Verdict = iota
	VerdictAvailable
	VerdictTaken
)

// String returns a human-readable name for the verdict.
func (v Verdict) String() string {
	switch v {
	case VerdictAvailable:
		return "available"
	case VerdictTaken:
		return "taken"
	default:
		return "unknown"
	}
}

// Steam ResolveVanityURL status codes.
const (
	ProfileCodeTaken     = 1
	ProfileCodeAvailable = 42
)

// Literal markers found in group member list responses.
const (
	GroupMarkerTaken     = "<groupID64>"
	GroupMarkerAvailable = "No group could be retrieved for the given URL."
)

// ClassifyProfile maps a ResolveVanityURL success code to a Verdict.
func ClassifyProfile(code int) Verdict {
	switch code {
	case ProfileCodeTaken:
		return VerdictTaken
	case ProfileCodeAvailable:
		return VerdictAvailable
	}
	return VerdictUnknown
}

// ClassifyGroup classifies a group member list body by substring search.
func ClassifyGroup(body string) Verdict {
	switch {
	case strings.Contains(body, GroupMarkerTaken):
		return VerdictTaken
	case strings.Contains(body, GroupMarkerAvailable):
		return VerdictAvailable
	}
	return VerdictUnknown
}

// Resolution is a classified remote response.
type Resolution struct {
	Verdict Verdict
	// Detail carries a short excerpt of the response for unknown verdicts.
	Detail string
}

// Resolver performs a single remote lookup for an identifier.
//
// Errors carry a code: ETHROTTLED for HTTP 429, EMALFORMED for responses
// with an unexpected content type or shape. Any other error is treated as a
// transient transport failure.
type Resolver interface {
	Resolve(ctx context.Context, id string) (Resolution, error)
}

// RequestLimiter paces outgoing requests.
type RequestLimiter interface {
	// Wait blocks until a request may be sent.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context) error
}

// WordSource provides a list of raw identifiers, such as a wordlist or a
// skip list.
type WordSource interface {
	Words(ctx context.Context) ([]string, error)
}

// RateLimitTracker remembers when identifiers were last throttled so that
// they can be left alone for a short cooldown.
type RateLimitTracker interface {
	// Mark records that id was throttled at now.
	Mark(id string, now time.Time)

	// CoolingDown reports whether id was throttled less than the cooldown
	// window before now.
	CoolingDown(id string, now time.Time) bool

	// Clear forgets any throttling recorded for id.
	Clear(id string)
}
