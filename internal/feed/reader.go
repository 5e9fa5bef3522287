// Package feed reads RSS and Atom feeds into plain entries.
package feed

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/mmcdole/gofeed"

	"github.com/listenupapp/releaseradar/internal/errors"
)

// Entry is one feed item with its text already stripped of markup.
type Entry struct {
	Title     string
	Link      string
	Published *time.Time
	Updated   *time.Time
	Summary   string
}

// PublishedOr returns the published time, else the updated time, else fallback.
func (e Entry) PublishedOr(fallback time.Time) time.Time {
	switch {
	case e.Published != nil:
		return *e.Published
	case e.Updated != nil:
		return *e.Updated
	default:
		return fallback
	}
}

// Reader fetches and parses feeds.
type Reader struct {
	parser *gofeed.Parser
	logger *slog.Logger
}

// NewReader creates a reader. A nil httpClient uses gofeed's default client.
func NewReader(httpClient *http.Client, logger *slog.Logger) *Reader {
	fp := gofeed.NewParser()
	if httpClient != nil {
		fp.Client = httpClient
	}
	return &Reader{parser: fp, logger: logger}
}

// Read fetches url and returns its entries in feed order.
func (r *Reader) Read(ctx context.Context, url string) ([]Entry, error) {
	f, err := r.parser.ParseURLWithContext(url, ctx)
	if err != nil {
		var httpErr gofeed.HTTPError
		if errors.As(err, &httpErr) {
			return nil, errors.Transport(err, "feed request failed").WithDetails(map[string]any{
				"url":    url,
				"status": httpErr.StatusCode,
			})
		}
		if ctx.Err() != nil {
			return nil, errors.Transport(err, "feed request cancelled")
		}
		return nil, errors.Wrap(err, errors.CodeParse, "feed could not be parsed").WithDetails(map[string]any{"url": url})
	}

	entries := make([]Entry, 0, len(f.Items))
	for _, item := range f.Items {
		if item == nil {
			continue
		}
		summary := item.Description
		if summary == "" {
			summary = item.Content
		}
		entries = append(entries, Entry{
			Title:     StripHTML(item.Title),
			Link:      item.Link,
			Published: item.PublishedParsed,
			Updated:   item.UpdatedParsed,
			Summary:   summary,
		})
	}

	r.logger.Debug("read feed",
		"url", url,
		"title", f.Title,
		"entries", len(entries),
	)

	return entries, nil
}
