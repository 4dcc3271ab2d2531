// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package argbind

import "github.com/agnivade/levenshtein"

// SuggestionThreshold is the largest edit distance still offered as a
// "did you mean" suggestion.
const SuggestionThreshold = 3

// Closest returns the candidate with the smallest edit distance to
// input, or "" when none is within [SuggestionThreshold]. Ties go to
// the earlier candidate.
func Closest(input string, candidates []string) string {
	best := ""
	bestDistance := SuggestionThreshold + 1
	for _, candidate := range candidates {
		distance := levenshtein.ComputeDistance(input, candidate)
		if distance < bestDistance {
			bestDistance = distance
			best = candidate
		}
	}
	return best
}
