package testutil

import (
	"time"

	"github.com/rivalwatch/rival-watch-service/internal/timeutil"
)

// NowAt returns a clock function fixed at the provided time.
func NowAt(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// MustParseRFC3339 parses an RFC3339 timestamp or panics.
func MustParseRFC3339(v string) time.Time {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		panic(err)
	}
	return t
}

// EveningOf returns 19:00 on a YYYY-MM-DD date in loc, a typical puck drop. It panics on a bad date.
func EveningOf(date string, loc *time.Location) time.Time {
	day, err := timeutil.ParseDate(date)
	if err != nil {
		panic(err)
	}
	if loc == nil {
		loc = time.UTC
	}
	return time.Date(day.Year(), day.Month(), day.Day(), 19, 0, 0, 0, loc)
}
