// Package datatypes defines shared enumerated types for the transcript corpus.
package datatypes

import (
	"errors"
	"fmt"
)

// ErrInvalidSplit is returned when a split string is not one of the known splits.
var ErrInvalidSplit = errors.New("invalid split")

// Split is the top-level category partitioning the corpus. It is fixed at ingestion.
type Split string

// Known splits, in the order they are reported by summaries.
const (
	SplitWorkforce  Split = "workforce"
	SplitCreatives  Split = "creatives"
	SplitScientists Split = "scientists"
)

// allSplits is the single source of truth for valid split strings.
var allSplits = []Split{SplitWorkforce, SplitCreatives, SplitScientists}

// String returns the string representation of a Split.
func (s Split) String() string {
	return string(s)
}

// IsValid reports whether s is one of the known splits.
func (s Split) IsValid() bool {
	for _, known := range allSplits {
		if s == known {
			return true
		}
	}

	return false
}

// ParseSplit converts a string to a Split. Matching is exact (case-sensitive).
func ParseSplit(s string) (Split, error) {
	split := Split(s)
	if !split.IsValid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidSplit, s)
	}

	return split, nil
}

// AllSplits returns all valid splits in reporting order.
func AllSplits() []Split {
	out := make([]Split, len(allSplits))
	copy(out, allSplits)

	return out
}

// SplitStrings returns the string form of every valid split (for validation messages).
func SplitStrings() []string {
	out := make([]string, len(allSplits))
	for i, s := range allSplits {
		out[i] = string(s)
	}

	return out
}
