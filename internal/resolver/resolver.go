// Package resolver links a catalog release to its page in the secondary
// catalog by scoring free-text search hits.
package resolver

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"strings"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/normalize"
)

// Score thresholds.
const (
	// StrongMatchScore stops the search early under PolicyFirstStrong.
	StrongMatchScore = 100
	// AcceptScore is the minimum score accepted once all queries are spent.
	AcceptScore = 75
)

// Policy controls whether a strong match ends the search.
type Policy string

// Resolution policies.
const (
	// PolicyFirstStrong returns the best candidate as soon as it reaches
	// StrongMatchScore, even if a later query would score higher.
	PolicyFirstStrong Policy = "first-strong"
	// PolicyExhaustive always runs every query and keeps the overall best.
	PolicyExhaustive Policy = "exhaustive"
)

// Searcher runs a free-text album search against the secondary catalog.
type Searcher interface {
	SearchAlbums(ctx context.Context, term string) ([]domain.CatalogAlbum, error)
}

// Resolver finds secondary-catalog URLs for releases.
type Resolver struct {
	searcher   Searcher
	policy     Policy
	storefront string
	logger     *slog.Logger
}

// New creates a resolver. An unknown policy falls back to PolicyFirstStrong.
func New(searcher Searcher, policy Policy, storefront string, logger *slog.Logger) *Resolver {
	if policy != PolicyExhaustive {
		policy = PolicyFirstStrong
	}
	if storefront == "" {
		storefront = "us"
	}
	return &Resolver{
		searcher:   searcher,
		policy:     policy,
		storefront: storefront,
		logger:     logger,
	}
}

// Resolve returns a URL for r. It never fails: when no candidate is good
// enough the result is a search-page URL.
func (res *Resolver) Resolve(ctx context.Context, r domain.Release) string {
	return res.ResolveDetail(ctx, r).URL
}

// ResolveDetail is Resolve with the score and query attempt that produced it.
func (res *Resolver) ResolveDetail(ctx context.Context, r domain.Release) domain.MatchResult {
	queries := Queries(r)
	run := newSession(res.policy)

	for i, q := range queries {
		if run.state != stateSearching {
			break
		}

		albums, err := res.searcher.SearchAlbums(ctx, q)
		if err != nil {
			res.logger.Warn("secondary catalog search failed",
				"release", r.Name,
				"query", q,
				"error", err,
			)
			albums = nil
		}

		for _, a := range albums {
			if !Eligible(a) {
				continue
			}
			run.offer(Score(r, a), a.URL, i+1)
		}

		run.endQuery(i == len(queries)-1)
	}
	// No queries at all (empty release) goes straight to exhausted.
	if run.state == stateSearching {
		run.state = stateExhausted
	}

	if run.accepted() {
		res.logger.Debug("resolved release",
			"release", r.Name,
			"score", run.bestScore,
			"attempt", run.bestAttempt,
			"state", run.state.String(),
		)
		return domain.MatchResult{
			Matched: true,
			URL:     run.bestURL,
			Score:   run.bestScore,
			Attempt: run.bestAttempt,
		}
	}

	fallback := FallbackURL(res.storefront, r)
	res.logger.Debug("no secondary catalog match, using search link",
		"release", r.Name,
		"best_score", run.bestScore,
		"url", fallback,
	)
	return domain.MatchResult{URL: fallback, Score: run.bestScore, Attempt: run.bestAttempt}
}

// Queries returns the search terms for r in decreasing specificity:
// title with primary artist, title alone, title with every artist.
// Empty and repeated terms are dropped.
func Queries(r domain.Release) []string {
	title := strings.TrimSpace(r.Name)
	primary := strings.TrimSpace(r.PrimaryArtist().Name)
	all := strings.Join(r.ArtistNames(), ", ")

	candidates := []string{
		strings.TrimSpace(title + " " + primary),
		title,
		strings.TrimSpace(title + " " + all),
	}

	out := make([]string, 0, len(candidates))
	seen := make(map[string]struct{}, len(candidates))
	for _, q := range candidates {
		if q == "" {
			continue
		}
		if _, ok := seen[q]; ok {
			continue
		}
		seen[q] = struct{}{}
		out = append(out, q)
	}
	return out
}

// FallbackURL builds a secondary-catalog search page URL from the cleaned
// title and primary artist.
func FallbackURL(storefront string, r domain.Release) string {
	term := strings.TrimSpace(normalize.CleanTitle(r.Name) + " " + r.PrimaryArtist().Name)
	return fmt.Sprintf("https://music.apple.com/%s/search?term=%s", storefront, url.QueryEscape(term))
}
