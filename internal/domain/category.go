package domain

import "github.com/listenupapp/releaseradar/internal/normalize"

// Category is one output bucket of releases, e.g. "hiphop".
type Category struct {
	Key      string `json:"key"`
	Label    string `json:"label"`
	Keywords string `json:"keywords"`
}

// KeywordList returns the category keywords split and lower-cased.
func (c Category) KeywordList() []string {
	return normalize.Keywords(c.Keywords)
}

// SearchGenre returns the keyword used for genre-scoped catalog search.
func (c Category) SearchGenre() string {
	kw := c.KeywordList()
	if len(kw) == 0 {
		return ""
	}
	return kw[0]
}

// DefaultCategories are used when no roster file defines categories.
func DefaultCategories() []Category {
	return []Category{
		{Key: "hiphop", Label: "Hip Hop", Keywords: "hip hop rap"},
		{Key: "rock", Label: "Alternative Rock", Keywords: "alternative rock indie"},
	}
}

// FilterCriteria is the per-category filter configuration.
type FilterCriteria struct {
	WindowDays    int
	Keywords      []string
	MinPopularity int
	// TrustGenreScoped skips genre verification for GenreScoped releases.
	TrustGenreScoped bool
}

// NewFilterCriteria builds criteria from a raw space- or comma-delimited keyword list.
func NewFilterCriteria(windowDays int, keywords string, minPopularity int, trust bool) FilterCriteria {
	return FilterCriteria{
		WindowDays:       windowDays,
		Keywords:         normalize.Keywords(keywords),
		MinPopularity:    minPopularity,
		TrustGenreScoped: trust,
	}
}

// MatchResult is the resolver's verdict for one release.
type MatchResult struct {
	Matched bool
	URL     string
	Score   int
	// Attempt is the 1-based query index that produced the best candidate.
	Attempt int
}
