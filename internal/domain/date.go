package domain

import (
	"time"

	"github.com/listenupapp/releaseradar/internal/errors"
)

// DatePrecision is how much of a release date the catalog supplied.
type DatePrecision int

// Date precisions.
const (
	PrecisionYear DatePrecision = iota + 1
	PrecisionMonth
	PrecisionDay
)

// ReleaseDate is a parsed catalog date. Missing components are filled with the
// first month or day, so a year-only date compares as January 1.
type ReleaseDate struct {
	Time      time.Time
	Precision DatePrecision
}

// ParseReleaseDate parses by length: 4 characters is a year, 7 is year-month,
// anything else must start with a full YYYY-MM-DD date. Time-of-day suffixes
// after the date are ignored.
func ParseReleaseDate(raw string) (ReleaseDate, error) {
	var (
		layout    string
		precision DatePrecision
		value     = raw
	)

	switch len(raw) {
	case 4:
		layout, precision = "2006", PrecisionYear
	case 7:
		layout, precision = "2006-01", PrecisionMonth
	default:
		layout, precision = time.DateOnly, PrecisionDay
		if len(raw) > len(time.DateOnly) {
			value = raw[:len(time.DateOnly)]
		}
	}

	t, err := time.Parse(layout, value)
	if err != nil {
		return ReleaseDate{}, errors.Parsef("unparseable release date %q", raw).WithCause(err)
	}
	return ReleaseDate{Time: t, Precision: precision}, nil
}

// DateOnly returns the YYYY-MM-DD prefix of a date string, or "" when the
// string carries less than a full date.
func DateOnly(raw string) string {
	if len(raw) < len(time.DateOnly) {
		return ""
	}
	return raw[:len(time.DateOnly)]
}

// Within reports whether a and b are at most d apart.
func Within(a, b time.Time, d time.Duration) bool {
	diff := a.Sub(b)
	if diff < 0 {
		diff = -diff
	}
	return diff <= d
}
