package fs

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"sort"
	"strings"

	"github.com/fwojciec/vanity"
)

// Ensure WordFile implements vanity.WordSource at compile time.
var _ vanity.WordSource = (*WordFile)(nil)

// WordFile reads raw identifiers from a JSON file. The file holds either an
// array of strings or an object whose keys are the words, as produced by
// common dictionary dumps.
type WordFile struct {
	Path string

	// Optional makes a missing file read as an empty list instead of
	// returning ENOTFOUND.
	Optional bool
}

// NewWordFile returns a WordFile that requires path to exist.
func NewWordFile(path string) *WordFile {
	return &WordFile{Path: path}
}

// Words returns the words in file order. Object keys are returned sorted.
func (f *WordFile) Words(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := os.ReadFile(f.Path)
	if os.IsNotExist(err) {
		if f.Optional {
			return []string{}, nil
		}
		return nil, vanity.Errorf(vanity.ENOTFOUND, "word file %s not found", f.Path)
	} else if err != nil {
		return nil, err
	}

	return ParseWords(data)
}

// ParseWords decodes a JSON array of strings or the keys of a JSON object.
func ParseWords(data []byte) ([]string, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, vanity.Errorf(vanity.EINVALID, "empty word file")
	}

	switch trimmed[0] {
	case '[':
		var words []string
		if err := json.Unmarshal(trimmed, &words); err != nil {
			return nil, vanity.Errorf(vanity.EINVALID, "malformed word array: %v", err)
		}
		return words, nil
	case '{':
		var m map[string]json.RawMessage
		if err := json.Unmarshal(trimmed, &m); err != nil {
			return nil, vanity.Errorf(vanity.EINVALID, "malformed word object: %v", err)
		}
		words := make([]string, 0, len(m))
		for w := range m {
			words = append(words, w)
		}
		sort.Strings(words)
		return words, nil
	}
	return nil, vanity.Errorf(vanity.EINVALID, "word file must hold a JSON array or object")
}

// WriteWords writes words as a JSON array to path atomically.
func WriteWords(path string, words []string) error {
	if words == nil {
		words = []string{}
	}
	return writeJSON(path, words)
}

// ExcludedChars lists the characters that disqualify a dictionary word from
// becoming a candidate identifier.
const ExcludedChars = `.,-'"!#^%&/+()[]{}~*_;:<>@£$|`

// Word length bounds applied by FilterWords by default.
const (
	DefaultMinWordLength = vanity.MinIdentifierLength
	DefaultMaxWordLength = 7
)

// FilterWords trims every word and keeps those whose length in characters
// lies in [minLen, maxLen] and that contain none of ExcludedChars.
// Order is preserved.
func FilterWords(words []string, minLen, maxLen int) []string {
	filtered := make([]string, 0, len(words))
	for _, w := range words {
		w = strings.TrimSpace(w)
		n := len([]rune(w))
		if n < minLen || n > maxLen {
			continue
		}
		if strings.ContainsAny(w, ExcludedChars) {
			continue
		}
		filtered = append(filtered, w)
	}
	return filtered
}
