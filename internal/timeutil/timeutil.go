package timeutil

import "time"

// DateLayout defines the canonical date format (YYYY-MM-DD).
const DateLayout = "2006-01-02"

// DefaultZone is the zone the upstream schedule uses for game dates.
const DefaultZone = "America/New_York"

const day = 24 * time.Hour

// ParseDate parses a YYYY-MM-DD date string. The result is midnight UTC of that calendar day.
func ParseDate(value string) (time.Time, error) {
	return time.Parse(DateLayout, value)
}

// FormatDate formats a time as YYYY-MM-DD in its current location.
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// ResolveLocation loads the named zone, falling back to DefaultZone and then UTC.
func ResolveLocation(name string) *time.Location {
	if name == "" {
		name = DefaultZone
	}
	if loc, err := time.LoadLocation(name); err == nil {
		return loc
	}
	if loc, err := time.LoadLocation(DefaultZone); err == nil {
		return loc
	}
	return time.UTC
}

// CalendarDate returns the calendar day of t as observed in loc, expressed as midnight UTC.
// Values produced here compare directly with ParseDate results.
func CalendarDate(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.UTC
	}
	local := t.In(loc)
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, time.UTC)
}

// DateIn formats the calendar day of t in loc.
func DateIn(t time.Time, loc *time.Location) string {
	return FormatDate(CalendarDate(t, loc))
}

// AddDays shifts a YYYY-MM-DD date by n calendar days.
func AddDays(date string, n int) (string, error) {
	parsed, err := ParseDate(date)
	if err != nil {
		return "", err
	}
	return FormatDate(parsed.AddDate(0, 0, n)), nil
}

// DaysBetween returns the rounded number of days from a to b.
func DaysBetween(a, b time.Time) int {
	diff := b.Sub(a)
	if diff < 0 {
		return -int((-diff + day/2) / day)
	}
	return int((diff + day/2) / day)
}

// WeeksBetween returns the floored number of whole weeks from a to b.
func WeeksBetween(a, b time.Time) int {
	diff := b.Sub(a)
	weeks := diff / (7 * day)
	if diff < 0 && diff%(7*day) != 0 {
		weeks--
	}
	return int(weeks)
}

// WeekdayName returns the English weekday name of t ("Monday").
func WeekdayName(t time.Time) string {
	return t.Weekday().String()
}
