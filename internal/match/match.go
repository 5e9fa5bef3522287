// Package match decides whether two free-text titles or names denote the same
// entity across catalogs.
package match

import (
	"strings"

	"github.com/hbollon/go-edlib"

	"github.com/listenupapp/releaseradar/internal/normalize"
)

// DefaultThreshold is the word-overlap ratio Matches uses when callers have no
// better value.
const DefaultThreshold = 0.7

// Matches reports whether a and b refer to the same thing. Checks run in
// order and stop at the first success:
//
//  1. normalized forms are equal
//  2. one normalized form contains the other
//  3. |words(a) ∩ words(b)| / min(|words(a)|, |words(b)|) >= threshold
//
// Matches is symmetric. An empty string only matches another empty string:
// the emptiness check runs before containment, so "" does not count as a
// substring of every title.
func Matches(a, b string, threshold float64) bool {
	na, nb := normalize.Text(a), normalize.Text(b)
	if na == nb {
		return true
	}
	if na == "" || nb == "" {
		return false
	}
	if strings.Contains(na, nb) || strings.Contains(nb, na) {
		return true
	}
	return Overlap(na, nb) >= threshold
}

// Match is Matches with DefaultThreshold.
func Match(a, b string) bool {
	return Matches(a, b, DefaultThreshold)
}

// Overlap returns the word-overlap ratio of a and b, 0 when either has no words.
func Overlap(a, b string) float64 {
	wa, wb := normalize.Words(a), normalize.Words(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	set := make(map[string]struct{}, len(wa))
	for _, w := range wa {
		set[w] = struct{}{}
	}
	shared := 0
	for _, w := range wb {
		if _, ok := set[w]; ok {
			shared++
		}
	}

	return float64(shared) / float64(min(len(wa), len(wb)))
}

// Similarity returns the Jaro-Winkler similarity of the normalized strings in
// [0, 1]. It is not used for accept/reject decisions in resolution; callers
// use it for diagnostics and near-duplicate detection.
func Similarity(a, b string) float64 {
	na, nb := normalize.Text(a), normalize.Text(b)
	if na == nb {
		return 1
	}
	if na == "" || nb == "" {
		return 0
	}
	sim, err := edlib.StringsSimilarity(na, nb, edlib.JaroWinkler)
	if err != nil {
		return 0
	}
	return float64(sim)
}
