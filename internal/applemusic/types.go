// Package applemusic searches the iTunes Search API for albums, the
// secondary catalog releases are linked to.
package applemusic

// searchResponse is the raw iTunes API response.
type searchResponse struct {
	ResultCount int            `json:"resultCount"`
	Results     []searchResult `json:"results"`
}

// searchResult is a single result from iTunes search.
type searchResult struct {
	WrapperType      string `json:"wrapperType"`
	CollectionType   string `json:"collectionType"`
	CollectionID     int64  `json:"collectionId"`
	CollectionName   string `json:"collectionName"`
	ArtistName       string `json:"artistName"`
	CollectionURL    string `json:"collectionViewUrl"`
	TrackCount       int    `json:"trackCount"`
	ReleaseDate      string `json:"releaseDate,omitempty"`
	PrimaryGenreName string `json:"primaryGenreName,omitempty"`
}
