package vanity

import (
	"strings"
	"unicode/utf8"
)

// MinIdentifierLength is the shortest identifier worth checking.
// Steam rejects shorter custom URLs outright.
const MinIdentifierLength = 3

// Mode selects the namespace being probed.
type Mode string

const (
	ModeProfile Mode = "profile"
	ModeGroup   Mode = "group"
)

// Modes lists all supported modes.
func Modes() []Mode {
	return []Mode{ModeProfile, ModeGroup}
}

// ParseMode converts a string into a Mode.
// Returns EINVALID for unknown values.
func ParseMode(s string) (Mode, error) {
	m := Mode(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Modes() {
		if m == known {
			return m, nil
		}
	}
	return "", Errorf(EINVALID, "unknown mode %q (want profile or group)", s)
}

// Normalize returns the canonical form of an identifier.
func Normalize(id string) string {
	return strings.ToLower(strings.TrimSpace(id))
}

// ValidIdentifier reports whether a normalized identifier is long enough to
// check. Length is counted in characters, not bytes.
func ValidIdentifier(id string) bool {
	return utf8.RuneCountInString(id) >= MinIdentifierLength
}

// SkipSet holds identifiers that are technically available but cannot be
// registered. It is read-only once built.
type SkipSet struct {
	ids map[string]struct{}
}

// NewSkipSet builds a SkipSet from raw identifiers, normalizing each one.
func NewSkipSet(ids []string) SkipSet {
	s := SkipSet{ids: make(map[string]struct{}, len(ids))}
	for _, id := range ids {
		s.ids[Normalize(id)] = struct{}{}
	}
	return s
}

// Contains reports whether id is in the set. The zero SkipSet is empty.
func (s SkipSet) Contains(id string) bool {
	_, ok := s.ids[Normalize(id)]
	return ok
}

// Len returns the number of identifiers in the set.
func (s SkipSet) Len() int {
	return len(s.ids)
}
