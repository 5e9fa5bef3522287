package resolver

import (
	"strings"
	"time"

	"github.com/listenupapp/releaseradar/internal/domain"
	"github.com/listenupapp/releaseradar/internal/match"
	"github.com/listenupapp/releaseradar/internal/normalize"
)

const dateTolerance = 7 * 24 * time.Hour

// Eligible rejects hits that are not album, EP or single (an empty type is
// allowed) and hits with no tracks.
func Eligible(a domain.CatalogAlbum) bool {
	switch strings.ToLower(strings.TrimSpace(a.CollectionType)) {
	case "", "album", "ep", "single":
	default:
		return false
	}
	return a.TrackCount != 0
}

// Score rates how well a matches r, from 0 to 250.
func Score(r domain.Release, a domain.CatalogAlbum) int {
	score := 0

	title := normalize.Text(r.Name)
	candTitle := normalize.Text(a.Title)
	switch {
	case title == candTitle:
		score += 100
	case match.Match(r.Name, a.Title):
		score += 50
	}

	candArtist := normalize.Text(a.Artist)
	exact, fuzzy := false, false
	for _, artist := range r.Artists {
		if normalize.Text(artist.Name) == candArtist {
			exact = true
			break
		}
		if match.Match(artist.Name, a.Artist) {
			fuzzy = true
		}
	}
	switch {
	case exact:
		score += 100
	case fuzzy:
		score += 50
	}

	score += dateScore(r.ReleaseDate, a.ReleaseDate)
	return score
}

func dateScore(releaseDate, candidateDate string) int {
	if releaseDate == "" || candidateDate == "" {
		return 0
	}
	if domain.DateOnly(candidateDate) != "" && domain.DateOnly(candidateDate) == releaseDate {
		return 50
	}

	rd, err := domain.ParseReleaseDate(releaseDate)
	if err != nil {
		return 0
	}
	cd, err := domain.ParseReleaseDate(candidateDate)
	if err != nil {
		return 0
	}
	if domain.Within(rd.Time, cd.Time, dateTolerance) {
		return 25
	}
	return 0
}
