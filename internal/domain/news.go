package domain

import (
	"regexp"
	"time"
)

// NewsItem is one article from a syndication feed.
type NewsItem struct {
	Title     string    `json:"title"`
	Link      string    `json:"link"`
	Source    string    `json:"source"`
	Category  string    `json:"category"`
	Published time.Time `json:"published"`
	Summary   string    `json:"summary"`
}

// FeedSource describes a feed to read. ScorePattern, when set, is a regular
// expression whose first capture group is an integer score (e.g. upvotes)
// found in the entry title or summary; entries scoring below MinScore are dropped.
type FeedSource struct {
	Name         string `toml:"name" json:"name" validate:"required"`
	URL          string `toml:"url" json:"url" validate:"required,http_url"`
	Category     string `toml:"category" json:"category"`
	ScorePattern string `toml:"score_pattern" json:"score_pattern,omitempty"`
	MinScore     int    `toml:"min_score" json:"min_score,omitempty" validate:"gte=0"`
}

// ScoreRegexp compiles ScorePattern. Nil when no pattern is set.
func (f FeedSource) ScoreRegexp() (*regexp.Regexp, error) {
	if f.ScorePattern == "" {
		return nil, nil
	}
	return regexp.Compile(f.ScorePattern)
}

// DefaultFeeds are read when no roster file lists feeds.
func DefaultFeeds() []FeedSource {
	return []FeedSource{
		{Name: "Pitchfork", URL: "https://pitchfork.com/rss/news/", Category: "general"},
		{Name: "HipHopDX", URL: "https://hiphopdx.com/feed", Category: "hiphop"},
		{Name: "Consequence", URL: "https://consequence.net/feed/", Category: "general"},
		{Name: "Stereogum", URL: "https://www.stereogum.com/feed/", Category: "rock"},
	}
}
