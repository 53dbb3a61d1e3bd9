// Package dates handles the calendar-date strings (yyyy-mm-dd) stored in the
// date columns. The ledgers have no time-of-day semantics beyond display.
package dates

import (
	"fmt"
	"time"
)

const isoLayout = "2006-01-02"

// Today returns the current local date as yyyy-mm-dd.
func Today() string { return ToISO(time.Now()) }

// ToISO formats a time as yyyy-mm-dd.
func ToISO(t time.Time) string { return t.Format(isoLayout) }

// NowTime returns the current wall-clock time as hh:mm, display only.
func NowTime() string { return time.Now().Format("15:04") }

// Parse accepts yyyy-mm-dd or a full RFC 3339 timestamp and returns the date.
func Parse(s string) (time.Time, error) {
	if t, err := time.Parse(isoLayout, s); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location()), nil
	}
	return time.Time{}, fmt.Errorf("invalid date %q", s)
}

// Display formats a stored date as dd/mm/yyyy, independent of locale.
// Unparseable input renders as the placeholder the UI shows for blanks.
func Display(s string) string {
	t, err := Parse(s)
	if err != nil {
		return "--/--/----"
	}
	return t.Format("02/01/2006")
}

// Within reports whether stored date s falls inside [from, to], inclusive.
// Unparseable dates are excluded.
func Within(s string, from, to time.Time) bool {
	t, err := Parse(s)
	if err != nil {
		return false
	}
	return !t.Before(from) && !t.After(to)
}
