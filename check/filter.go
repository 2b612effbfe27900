package check

import (
	"sort"

	"github.com/fwojciec/vanity"
)

// FilterResult holds the outcome of candidate filtering.
type FilterResult struct {
	// Candidates are the normalized, deduplicated identifiers to check,
	// in ascending order.
	Candidates []string

	// Skipped holds identifiers dropped before any network contact.
	Skipped []vanity.Result
}

// FilterCandidates normalizes raw identifiers and drops those that must not
// be checked: identifiers shorter than vanity.MinIdentifierLength and, when
// enforceSkips is set, members of the skip set.
func FilterCandidates(raw []string, skips vanity.SkipSet, enforceSkips bool) FilterResult {
	var result FilterResult
	seen := make(map[string]struct{}, len(raw))

	for _, word := range raw {
		id := vanity.Normalize(word)
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}

		switch {
		case !vanity.ValidIdentifier(id):
			result.Skipped = append(result.Skipped, vanity.Result{ID: id, Outcome: vanity.OutcomeSkippedTooShort})
		case enforceSkips && skips.Contains(id):
			result.Skipped = append(result.Skipped, vanity.Result{ID: id, Outcome: vanity.OutcomeSkippedInSkipSet})
		default:
			result.Candidates = append(result.Candidates, id)
		}
	}

	sort.Strings(result.Candidates)
	sort.Slice(result.Skipped, func(i, j int) bool {
		return result.Skipped[i].ID < result.Skipped[j].ID
	})
	return result
}
