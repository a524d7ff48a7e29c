package fields

import (
	"strings"

	"github.com/agext/levenshtein"
)

var fuzzyParams = levenshtein.NewParams()

// partialSimilarity returns the best similarity between needle and any
// window of haystack the same length as needle, in [0,1]. This tolerates
// OCR noise around a known label the way fuzzy partial-ratio scoring does.
func partialSimilarity(needle, haystack string) float64 {
	n := []rune(strings.ToLower(needle))
	h := []rune(strings.ToLower(haystack))
	if len(n) == 0 || len(h) == 0 {
		return 0
	}
	if len(h) <= len(n) {
		return levenshtein.Similarity(string(h), string(n), fuzzyParams)
	}
	best := 0.0
	for i := 0; i+len(n) <= len(h); i++ {
		if s := levenshtein.Similarity(string(h[i:i+len(n)]), string(n), fuzzyParams); s > best {
			best = s
			if best == 1 {
				break
			}
		}
	}
	return best
}
