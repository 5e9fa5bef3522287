package source

import (
	"context"
	"log/slog"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/feed"
	"github.com/listenupapp/releaseradar/internal/match"
)

// duplicateTitleSimilarity is the Jaro-Winkler score above which two news
// titles from different feeds count as the same story.
const duplicateTitleSimilarity = 0.97

// FeedReader reads one syndication feed.
type FeedReader interface {
	Read(ctx context.Context, url string) ([]feed.Entry, error)
}

// NewsOptions tunes the news adapter.
type NewsOptions struct {
	WindowDays int
	PerFeed    int
	Limit      int
}

// News reads the configured feeds into one newest-first list.
type News struct {
	reader FeedReader
	feeds  []domain.FeedSource
	opts   NewsOptions
	now    func() time.Time
	logger *slog.Logger
}

// NewNews creates a news adapter.
func NewNews(reader FeedReader, feeds []domain.FeedSource, opts NewsOptions, now func() time.Time, logger *slog.Logger) *News {
	if now == nil {
		now = time.Now
	}
	if opts.PerFeed <= 0 {
		opts.PerFeed = 5
	}
	if opts.WindowDays <= 0 {
		opts.WindowDays = 3
	}
	if opts.Limit <= 0 {
		opts.Limit = 20
	}
	return &News{reader: reader, feeds: feeds, opts: opts, now: now, logger: logger}
}

// Fetch reads every feed. A failing feed contributes nothing.
func (n *News) Fetch(ctx context.Context) []domain.NewsItem {
	var all []domain.NewsItem

	for _, src := range n.feeds {
		if ctx.Err() != nil {
			break
		}
		items, err := n.fetchFeed(ctx, src)
		if err != nil {
			n.logger.Warn("news feed failed", "feed", src.Name, "url", src.URL, "error", err)
			continue
		}
		all = append(all, items...)
	}

	all = dedupeNews(all)

	slices.SortStableFunc(all, func(a, b domain.NewsItem) int {
		return b.Published.Compare(a.Published)
	})
	if len(all) > n.opts.Limit {
		all = all[:n.opts.Limit]
	}

	n.logger.Info("news fetched", "feeds", len(n.feeds), "items", len(all))
	return all
}

func (n *News) fetchFeed(ctx context.Context, src domain.FeedSource) ([]domain.NewsItem, error) {
	scoreRe, err := src.ScoreRegexp()
	if err != nil {
		return nil, err
	}

	entries, err := n.reader.Read(ctx, src.URL)
	if err != nil {
		return nil, err
	}
	if len(entries) > n.opts.PerFeed {
		entries = entries[:n.opts.PerFeed]
	}

	fetched := n.now()
	window := time.Duration(n.opts.WindowDays) * 24 * time.Hour
	var items []domain.NewsItem

	for _, e := range entries {
		summary := feed.StripHTML(e.Summary)

		if scoreRe != nil {
			score := 0
			if m := scoreRe.FindStringSubmatch(e.Title + " " + summary); len(m) > 1 {
				score, _ = strconv.Atoi(strings.ReplaceAll(m[1], ",", ""))
			}
			if score < src.MinScore {
				continue
			}
		}

		published := e.PublishedOr(fetched)
		if fetched.Sub(published) > window {
			continue
		}

		items = append(items, domain.NewsItem{
			Title:     e.Title,
			Link:      e.Link,
			Source:    src.Name,
			Category:  src.Category,
			Published: published,
			Summary:   feed.Summarize(summary),
		})
	}
	return items, nil
}

// dedupeNews drops later items that share a link with, or have nearly the
// same title as, an earlier one.
func dedupeNews(items []domain.NewsItem) []domain.NewsItem {
	out := make([]domain.NewsItem, 0, len(items))
	links := make(map[string]struct{}, len(items))

outer:
	for _, item := range items {
		if item.Link != "" {
			if _, ok := links[item.Link]; ok {
				continue
			}
		}
		for _, kept := range out {
			if item.Title != "" && match.Similarity(kept.Title, item.Title) >= duplicateTitleSimilarity {
				continue outer
			}
		}
		if item.Link != "" {
			links[item.Link] = struct{}{}
		}
		out = append(out, item)
	}
	return out
}
