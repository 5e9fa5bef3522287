package service

import (
	"fmt"
	"net/url"
	"time"

	"github.com/listenupapp/releaseradar/internal/domain"
)

// DemoSnapshot is published when no catalog credentials are available: one
// placeholder release per category and a welcome news item.
func DemoSnapshot(categories []domain.Category, now time.Time) *domain.Snapshot {
	snap := &domain.Snapshot{
		LastUpdated: now,
		Demo:        true,
	}

	for _, c := range categories {
		snap.Categories = append(snap.Categories, domain.CategoryReleases{
			Key:   c.Key,
			Label: c.Label,
			Releases: []domain.ReleaseRecord{{
				Name:          fmt.Sprintf("Demo %s Album", c.Label),
				Artists:       "Demo Artist",
				ReleaseDate:   now.Format(time.DateOnly),
				Image:         "https://via.placeholder.com/300?text=" + url.QueryEscape(c.Label+" Album"),
				SpotifyURL:    "#",
				AppleMusicURL: "#",
				TotalTracks:   12,
				AlbumType:     string(domain.ReleaseTypeAlbum),
			}},
		})
	}

	snap.News = []domain.NewsRecord{{
		Title:     "Welcome to Release Radar!",
		Link:      "#",
		Source:    "Demo",
		Category:  "general",
		Published: now.Format(domain.NewsTimeLayout),
		Summary:   "This is demo data. Set SPOTIFY_CLIENT_ID and SPOTIFY_CLIENT_SECRET to fetch real releases.",
	}}

	return snap
}
