// Package dates converts between calendar days and their ISO "YYYY-MM-DD" form.
//
// All helpers work on calendar days in an explicit location. A day string never carries a
// zone, so formatting and parsing must agree on the location used by the calendar grid,
// otherwise a late-evening local time can land on the neighbouring UTC day.
package dates

import (
	"fmt"
	"time"
)

const (
	ISOLayout   = "2006-01-02"
	MonthLayout = "2006-01"
)

// Format returns the calendar day of t in t's own location.
func Format(t time.Time) string {
	return t.Format(ISOLayout)
}

// Parse returns midnight of the given ISO day in loc. A nil loc means time.Local.
func Parse(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(ISOLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid ISO date %q: %w", s, err)
	}
	return t, nil
}

func IsISODate(s string) bool {
	if len(s) != len(ISOLayout) {
		return false
	}
	_, err := time.Parse(ISOLayout, s)
	return err == nil
}

// StartOfDay truncates t to midnight in its own location. time.Truncate is not used
// because it operates on absolute time and would snap to UTC midnight.
func StartOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

func FirstOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(year, month, 1, 0, 0, 0, 0, loc)
}

func LastOfMonth(year int, month time.Month, loc *time.Location) time.Time {
	return FirstOfMonth(year, month, loc).AddDate(0, 1, -1)
}

func DaysInMonth(year int, month time.Month) int {
	return LastOfMonth(year, month, time.UTC).Day()
}

// MonthRange returns the first and last ISO day of a month.
func MonthRange(year int, month time.Month) (string, string) {
	return Format(FirstOfMonth(year, month, time.UTC)), Format(LastOfMonth(year, month, time.UTC))
}

func ParseMonth(s string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(MonthLayout, s, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid month %q, expected YYYY-MM: %w", s, err)
	}
	return t, nil
}

func FormatMonth(t time.Time) string {
	return t.Format(MonthLayout)
}

// Before reports whether day a comes strictly before day b. The fixed-width layout makes
// string order equal to chronological order.
func Before(a, b string) bool {
	return a < b
}

func After(a, b string) bool {
	return a > b
}

// DaysBetween counts whole days from a to b (negative when b is earlier).
func DaysBetween(a, b string) (int, error) {
	start, err := Parse(a, time.UTC)
	if err != nil {
		return 0, err
	}
	end, err := Parse(b, time.UTC)
	if err != nil {
		return 0, err
	}
	return int(end.Sub(start).Hours() / 24), nil
}
