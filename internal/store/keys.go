package store

import (
	"fmt"
	"math"
	"time"
)

const (
	genrePrefix          = "genre:artist:"
	snapshotPrefix       = "snapshot:run:"
	snapshotLatestKey    = "snapshot:latest"
	snapshotRunIdxPrefix = "snapshot:idx:run:"
)

func genreKey(artistID string) []byte {
	return []byte(genrePrefix + artistID)
}

// snapshotKey orders newest first under snapshotPrefix.
func snapshotKey(at time.Time, runID string) []byte {
	return []byte(snapshotPrefix + invertedTimestamp(at) + ":" + runID)
}

func snapshotRunIdxKey(runID string) []byte {
	return []byte(snapshotRunIdxPrefix + runID)
}

// invertedTimestamp makes lexicographic key order newest first.
func invertedTimestamp(t time.Time) string {
	inverted := math.MaxInt64 - t.UnixNano()
	return fmt.Sprintf("%019d", inverted)
}
