// Package pipeline merges adapter output into a candidate set and filters it
// into a ranked release list.
package pipeline

import "github.com/listenupapp/releaseradar/internal/domain"

// Merge combines lists in the order given. The first release seen for an ID is
// kept and later duplicates are discarded, so callers put their most trusted
// source first.
func Merge(lists ...[]domain.Release) *domain.CandidateSet {
	set := domain.NewCandidateSet()
	for _, list := range lists {
		for _, r := range list {
			set.Add(r)
		}
	}
	return set
}
