// Package domain contains the release, news and snapshot types shared by the
// fetch pipeline, the snapshot store and the API.
package domain

import "strings"

// Source identifies which adapter produced a release.
type Source string

// Release sources.
const (
	SourceBrowse  Source = "browse"
	SourceSearch  Source = "search"
	SourceCurated Source = "curated"
	SourceDemo    Source = "demo"
)

// ReleaseType is the catalog's release format.
type ReleaseType string

// Release types.
const (
	ReleaseTypeAlbum       ReleaseType = "album"
	ReleaseTypeSingle      ReleaseType = "single"
	ReleaseTypeEP          ReleaseType = "ep"
	ReleaseTypeCompilation ReleaseType = "compilation"
)

// ParseReleaseType maps catalog strings onto a ReleaseType, defaulting to album.
func ParseReleaseType(s string) ReleaseType {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return ReleaseTypeSingle
	case "ep":
		return ReleaseTypeEP
	case "compilation":
		return ReleaseTypeCompilation
	default:
		return ReleaseTypeAlbum
	}
}

// Artist is a contributing artist with its primary catalog identifier.
type Artist struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Release is one catalog entry flowing through a fetch run. ID is stable across
// re-fetches of the same entry. ReleaseDate keeps the catalog's precision
// (YYYY, YYYY-MM or YYYY-MM-DD).
type Release struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Artists     []Artist    `json:"artists"`
	ReleaseDate string      `json:"release_date"`
	ImageURL    string      `json:"image_url,omitempty"`
	SpotifyURL  string      `json:"spotify_url,omitempty"`
	TotalTracks int         `json:"total_tracks"`
	Type        ReleaseType `json:"type"`

	// Popularity is nil until enriched.
	Popularity *int `json:"popularity,omitempty"`
	// AppleMusicURL is empty until resolution has been attempted.
	AppleMusicURL string `json:"apple_music_url,omitempty"`

	Source Source `json:"source"`
	// GenreScoped marks output of an adapter that already selects by genre.
	GenreScoped bool `json:"genre_scoped"`
}

// PrimaryArtist returns the first artist, or the zero Artist.
func (r *Release) PrimaryArtist() Artist {
	if len(r.Artists) == 0 {
		return Artist{}
	}
	return r.Artists[0]
}

// ArtistNames returns artist display names in order.
func (r *Release) ArtistNames() []string {
	names := make([]string, 0, len(r.Artists))
	for _, a := range r.Artists {
		names = append(names, a.Name)
	}
	return names
}

// PopularityOrZero returns the enriched popularity, 0 when absent.
func (r *Release) PopularityOrZero() int {
	if r.Popularity == nil {
		return 0
	}
	return *r.Popularity
}

// SetPopularity records an enriched popularity score.
func (r *Release) SetPopularity(p int) {
	r.Popularity = &p
}
