package subscription_test

import (
	"testing"
	"time"

	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
)

func TestParseDate(t *testing.T) {
	d, err := subscription.ParseDate("2026-01-23")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2026 || d.Month() != time.January || d.Day() != 23 {
		t.Errorf("parsed wrong date: %s", d)
	}
	if d.String() != "2026-01-23" {
		t.Errorf("round trip mismatch: %s", d)
	}

	for _, bad := range []string{"", "23-01-2026", "2026-1-23", "2026-13-01", "not a date"} {
		if _, err := subscription.ParseDate(bad); err == nil {
			t.Errorf("expected error for %q", bad)
		}
	}
}

func TestDateNormalization(t *testing.T) {
	// Dates built from different clocks on the same day compare equal.
	loc := time.FixedZone("X", 3*3600)
	morning := subscription.DateOf(time.Date(2026, time.January, 23, 8, 30, 0, 0, loc))
	midnight := subscription.NewDate(2026, time.January, 23)

	if !morning.Equal(midnight) {
		t.Errorf("normalization failed: %s != %s", morning, midnight)
	}
}

func TestDateComparisons(t *testing.T) {
	a := subscription.NewDate(2026, time.January, 23)
	b := a.AddDays(1)

	if !a.Before(b) || !b.After(a) {
		t.Error("Before/After broken")
	}
	if !a.BeforeOrEqual(a) || !a.AfterOrEqual(a) {
		t.Error("OrEqual must include equality")
	}
	if a.DaysBetween(b) != 1 || b.DaysBetween(a) != -1 {
		t.Error("DaysBetween broken")
	}
}

func TestDateAddDaysCrossesMonthAndYear(t *testing.T) {
	d := subscription.NewDate(2026, time.December, 30)
	if got := d.AddDays(3).String(); got != "2027-01-02" {
		t.Errorf("year boundary: got %s", got)
	}
	// 2028 is a leap year.
	d = subscription.NewDate(2028, time.February, 28)
	if got := d.AddDays(1).String(); got != "2028-02-29" {
		t.Errorf("leap day: got %s", got)
	}
}

func TestWeekdayString(t *testing.T) {
	cases := map[subscription.Weekday]string{
		subscription.Monday:   "Mon",
		subscription.Thursday: "Thu",
		subscription.Sunday:   "Sun",
	}
	for w, want := range cases {
		if w.String() != want {
			t.Errorf("Weekday(%d).String() = %s, want %s", int(w), w, want)
		}
	}
	if subscription.Weekday(9).Valid() {
		t.Error("9 must not be a valid weekday")
	}
}
