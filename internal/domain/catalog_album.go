package domain

// CatalogAlbum is one free-text search hit from the secondary catalog.
type CatalogAlbum struct {
	Title          string `json:"title"`
	Artist         string `json:"artist"`
	ReleaseDate    string `json:"release_date"`
	CollectionType string `json:"collection_type"`
	TrackCount     int    `json:"track_count"`
	URL            string `json:"url"`
}
