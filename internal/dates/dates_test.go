package dates

import (
	"testing"
	"time"
)

func TestParse(t *testing.T) {
	got, err := Parse("2026-08-28")
	if err != nil {
		t.Fatalf("parse iso: %v", err)
	}
	if got.Year() != 2026 || got.Month() != time.August || got.Day() != 28 {
		t.Fatalf("wrong date: %v", got)
	}

	got, err = Parse("2026-08-28T15:04:05Z")
	if err != nil {
		t.Fatalf("parse rfc3339: %v", err)
	}
	if got.Hour() != 0 {
		t.Fatalf("expected midnight, got %v", got)
	}

	if _, err := Parse("28/08/2026"); err == nil {
		t.Fatal("expected error for dd/mm/yyyy input")
	}
}

func TestDisplay(t *testing.T) {
	if got := Display("2026-08-28"); got != "28/08/2026" {
		t.Fatalf("got %q", got)
	}
	if got := Display("garbage"); got != "--/--/----" {
		t.Fatalf("got %q", got)
	}
	if got := Display(""); got != "--/--/----" {
		t.Fatalf("got %q", got)
	}
}

func TestWithin(t *testing.T) {
	from := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		date string
		want bool
	}{
		{"2026-08-01", true},
		{"2026-08-31", true},
		{"2026-07-31", false},
		{"2026-09-01", false},
		{"not-a-date", false},
	}
	for _, c := range cases {
		if got := Within(c.date, from, to); got != c.want {
			t.Errorf("Within(%q) = %v, want %v", c.date, got, c.want)
		}
	}
}
