package utils

import (
	"context"

	"github.com/texttheater/golang-levenshtein/levenshtein"
)

// FindClosestString returns the candidate with the smallest edit distance to v, ok is false if
// no candidate is within maxDifferences or if the context is done before a candidate is found.
func FindClosestString(ctx context.Context, candidates []string, v string, maxDifferences int) (closest string, distance int, ok bool) {
	minDistance := maxDifferences + 1
	runes := []rune(v)

	for _, candidate := range candidates {
		if ctx.Err() != nil {
			break
		}

		d := levenshtein.DistanceForStrings([]rune(candidate), runes, levenshtein.DefaultOptions)
		if d < minDistance {
			minDistance = d
			closest = candidate
		}
	}

	if minDistance > maxDifferences {
		return "", 0, false
	}

	return closest, minDistance, true
}
