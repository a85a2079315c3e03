package sema

import (
	"slices"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// maxSuggestDistance bounds the edit distance of "did you mean" suggestions.
const maxSuggestDistance = 2

// suggest returns the candidate closest to name within maxSuggestDistance,
// or "". Ties resolve to the alphabetically first candidate.
func suggest(name string, candidates []string) string {
	sorted := slices.Clone(candidates)
	slices.Sort(sorted)

	match := ""
	closest := maxSuggestDistance + 1
	for _, c := range slices.Compact(sorted) {
		if c == name {
			continue
		}
		d := levenshtein.DistanceForStrings([]rune(name), []rune(c), levenshtein.DefaultOptionsWithSub)
		if d < closest {
			closest = d
			match = c
		}
	}
	return match
}
