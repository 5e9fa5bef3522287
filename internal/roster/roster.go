// Package roster loads the curated artist roster: the categories to build,
// the artists hand-picked for each, and the news feeds to read.
package roster

import (
	"bytes"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/pelletier/go-toml/v2"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/errors"
	"github.com/listenupapp/releaseradar/internal/genre"
	"github.com/listenupapp/releaseradar/internal/validation"
)

// Category is one [[categories]] table.
type Category struct {
	Key      string   `toml:"key" validate:"required,excludesall= /"`
	Label    string   `toml:"label" validate:"required"`
	Keywords string   `toml:"keywords" validate:"required"`
	Artists  []string `toml:"artists" validate:"dive,required"`
}

// Roster is the parsed roster file.
type Roster struct {
	Categories []Category          `toml:"categories" validate:"unique=Key,dive"`
	Feeds      []domain.FeedSource `toml:"feeds" validate:"dive"`
}

// Default returns the built-in categories and feeds with no curated artists.
func Default() *Roster {
	r := &Roster{Feeds: domain.DefaultFeeds()}
	for _, c := range domain.DefaultCategories() {
		r.Categories = append(r.Categories, Category{Key: c.Key, Label: c.Label, Keywords: c.Keywords})
	}
	return r
}

// Load reads and validates the roster at path. A missing file is a
// CONFIGURATION error so callers can fall back to Default.
func Load(path string) (*Roster, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, errors.Configuration(fmt.Sprintf("roster file %s does not exist", path)).WithCause(err)
	}
	if err != nil {
		return nil, fmt.Errorf("read roster: %w", err)
	}
	return Parse(data)
}

// Parse decodes and validates roster TOML. Unknown keys are rejected. Sections
// left out fall back to the defaults.
func Parse(data []byte) (*Roster, error) {
	var r Roster
	dec := toml.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&r); err != nil {
		var decErr *toml.DecodeError
		if errors.As(err, &decErr) {
			row, col := decErr.Position()
			return nil, errors.Parsef("roster line %d column %d: %s", row, col, decErr.Error()).WithCause(err)
		}
		return nil, errors.Parsef("parse roster: %v", err).WithCause(err)
	}

	r.normalize()

	if err := validation.New().Validate(&r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *Roster) normalize() {
	for i := range r.Categories {
		c := &r.Categories[i]
		if c.Key == "" && c.Label != "" {
			c.Key = genre.Slugify(c.Label)
		}
	}
	if len(r.Categories) == 0 {
		r.Categories = Default().Categories
	}
	if len(r.Feeds) == 0 {
		r.Feeds = domain.DefaultFeeds()
	}
}

// Artists returns the curated artist names for category, in file order.
func (r *Roster) Artists(category string) []string {
	for _, c := range r.Categories {
		if c.Key == category {
			return slices.Clone(c.Artists)
		}
	}
	return nil
}

// CategoryList returns the categories in file order.
func (r *Roster) CategoryList() []domain.Category {
	out := make([]domain.Category, 0, len(r.Categories))
	for _, c := range r.Categories {
		out = append(out, domain.Category{Key: c.Key, Label: c.Label, Keywords: c.Keywords})
	}
	return out
}

// FeedList returns the feeds in file order.
func (r *Roster) FeedList() []domain.FeedSource {
	return slices.Clone(r.Feeds)
}

// ArtistCount is the total number of curated artists.
func (r *Roster) ArtistCount() int {
	n := 0
	for _, c := range r.Categories {
		n += len(c.Artists)
	}
	return n
}
