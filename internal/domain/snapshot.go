package domain

import (
	"strings"
	"time"
)

// NewsTimeLayout is the published-time format used in serialized news.
const NewsTimeLayout = "2006-01-02 15:04"

// ReleaseRecord is the serialized form of a resolved release.
type ReleaseRecord struct {
	ID            string `json:"id,omitempty"`
	Name          string `json:"name"`
	Artists       string `json:"artists"`
	ReleaseDate   string `json:"release_date"`
	Image         string `json:"image"`
	SpotifyURL    string `json:"spotify_url"`
	AppleMusicURL string `json:"apple_music_url"`
	TotalTracks   int    `json:"total_tracks"`
	AlbumType     string `json:"album_type"`
	Popularity    int    `json:"popularity"`
}

// Record converts r for output.
func (r *Release) Record() ReleaseRecord {
	albumType := string(r.Type)
	if albumType == "" {
		albumType = string(ReleaseTypeAlbum)
	}
	return ReleaseRecord{
		ID:            r.ID,
		Name:          r.Name,
		Artists:       strings.Join(r.ArtistNames(), ", "),
		ReleaseDate:   r.ReleaseDate,
		Image:         r.ImageURL,
		SpotifyURL:    r.SpotifyURL,
		AppleMusicURL: r.AppleMusicURL,
		TotalTracks:   r.TotalTracks,
		AlbumType:     albumType,
		Popularity:    r.PopularityOrZero(),
	}
}

// NewsRecord is the serialized form of a news item.
type NewsRecord struct {
	Title     string `json:"title"`
	Link      string `json:"link"`
	Source    string `json:"source"`
	Category  string `json:"category"`
	Published string `json:"published"`
	Summary   string `json:"summary"`
}

// Record converts n for output.
func (n NewsItem) Record() NewsRecord {
	return NewsRecord{
		Title:     n.Title,
		Link:      n.Link,
		Source:    n.Source,
		Category:  n.Category,
		Published: n.Published.Format(NewsTimeLayout),
		Summary:   n.Summary,
	}
}

// CategoryReleases is one category's ranked, resolved releases.
type CategoryReleases struct {
	Key      string          `json:"key"`
	Label    string          `json:"label"`
	Releases []ReleaseRecord `json:"releases"`
}

// Snapshot is the complete output of one fetch run.
type Snapshot struct {
	RunID       string             `json:"run_id"`
	LastUpdated time.Time          `json:"last_updated"`
	Demo        bool               `json:"demo"`
	Categories  []CategoryReleases `json:"categories"`
	News        []NewsRecord       `json:"news"`
}

// Category returns the releases for key.
func (s *Snapshot) Category(key string) (CategoryReleases, bool) {
	for _, c := range s.Categories {
		if c.Key == key {
			return c, true
		}
	}
	return CategoryReleases{}, false
}

// ReleaseCount returns the number of releases across all categories.
func (s *Snapshot) ReleaseCount() int {
	n := 0
	for _, c := range s.Categories {
		n += len(c.Releases)
	}
	return n
}
