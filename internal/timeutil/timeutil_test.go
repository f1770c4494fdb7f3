package timeutil

import (
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	parsed, err := ParseDate("2024-01-02")
	if err != nil {
		t.Fatalf("expected parse to succeed, got %v", err)
	}
	if got := FormatDate(parsed); got != "2024-01-02" {
		t.Fatalf("expected formatted date to round-trip, got %s", got)
	}
}

func TestFormatDateUsesLocation(t *testing.T) {
	loc := time.FixedZone("test", -5*60*60)
	value := time.Date(2024, 1, 2, 23, 0, 0, 0, loc)
	if got := FormatDate(value); got != "2024-01-02" {
		t.Fatalf("expected formatted date, got %s", got)
	}
}

func TestCalendarDateUsesZoneNotUTC(t *testing.T) {
	eastern := time.FixedZone("eastern", -5*60*60)
	// 03:00 UTC on Jan 2 is still Jan 1 in the eastern zone.
	now := time.Date(2024, 1, 2, 3, 0, 0, 0, time.UTC)

	got := CalendarDate(now, eastern)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Fatalf("expected %s, got %s", want, got)
	}
	if DateIn(now, eastern) != "2024-01-01" {
		t.Fatalf("expected 2024-01-01, got %s", DateIn(now, eastern))
	}
}

func TestAddDays(t *testing.T) {
	got, err := AddDays("2024-03-01", -1)
	if err != nil {
		t.Fatalf("unexpected error %v", err)
	}
	if got != "2024-02-29" {
		t.Fatalf("expected leap day, got %s", got)
	}
	if _, err := AddDays("bad", 1); err == nil {
		t.Fatal("expected error for invalid date")
	}
}

func TestDaysAndWeeksBetween(t *testing.T) {
	a := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	cases := []struct {
		b     time.Time
		days  int
		weeks int
	}{
		{a, 0, 0},
		{a.AddDate(0, 0, 1), 1, 0},
		{a.AddDate(0, 0, 6), 6, 0},
		{a.AddDate(0, 0, 7), 7, 1},
		{a.AddDate(0, 0, 34), 34, 4},
		{a.Add(36 * time.Hour), 2, 0},
	}
	for _, tc := range cases {
		if got := DaysBetween(a, tc.b); got != tc.days {
			t.Fatalf("days between %s and %s: expected %d, got %d", a, tc.b, tc.days, got)
		}
		if got := WeeksBetween(a, tc.b); got != tc.weeks {
			t.Fatalf("weeks between %s and %s: expected %d, got %d", a, tc.b, tc.weeks, got)
		}
	}
	if got := WeeksBetween(a, a.AddDate(0, 0, -1)); got != -1 {
		t.Fatalf("expected floored negative week, got %d", got)
	}
}

func TestResolveLocationFallsBack(t *testing.T) {
	if loc := ResolveLocation("Not/AZone"); loc == nil {
		t.Fatal("expected fallback location")
	}
	if WeekdayName(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)) != "Monday" {
		t.Fatal("expected Monday")
	}
}
