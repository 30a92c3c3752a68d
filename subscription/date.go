package subscription

import (
	"fmt"
	"time"
)

// =============================================================================
// DATE - Day-granularity calendar date
// =============================================================================
// The engine works entirely in whole calendar days. Date wraps a time.Time
// normalized to UTC midnight so that two dates compare equal regardless of
// the clock or zone they were built from.

type Date struct {
	t time.Time
}

const dateLayout = "2006-01-02"

// Constructors
func NewDate(year int, month time.Month, day int) Date {
	return Date{t: time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func DateOf(t time.Time) Date {
	return NewDate(t.Year(), t.Month(), t.Day())
}

func Today() Date {
	return DateOf(time.Now())
}

// ParseDate parses an ISO date (YYYY-MM-DD).
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD): %w", s, err)
	}
	return DateOf(t), nil
}

// MustParseDate is for tests and fixtures only.
func MustParseDate(s string) Date {
	d, err := ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}

// Comparison
func (d Date) Before(other Date) bool        { return d.t.Before(other.t) }
func (d Date) After(other Date) bool         { return d.t.After(other.t) }
func (d Date) Equal(other Date) bool         { return d.t.Equal(other.t) }
func (d Date) BeforeOrEqual(other Date) bool { return !d.t.After(other.t) }
func (d Date) AfterOrEqual(other Date) bool  { return !d.t.Before(other.t) }

// Arithmetic
func (d Date) AddDays(n int) Date { return Date{t: d.t.AddDate(0, 0, n)} }

// DaysBetween returns the number of whole days from d to other.
func (d Date) DaysBetween(other Date) int {
	return int(other.t.Sub(d.t).Hours() / 24)
}

// Properties
func (d Date) Year() int         { return d.t.Year() }
func (d Date) Month() time.Month { return d.t.Month() }
func (d Date) Day() int          { return d.t.Day() }
func (d Date) IsZero() bool      { return d.t.IsZero() }
func (d Date) Time() time.Time   { return d.t }

func (d Date) String() string { return d.t.Format(dateLayout) }

// =============================================================================
// WEEKDAY - Monday-first weekday index
// =============================================================================
// Delivery schedules are written Monday-first (Monday=0 .. Sunday=6), which
// differs from time.Weekday (Sunday=0). All pattern matching goes through
// this type so the two numbering schemes never mix.

type Weekday int

const (
	Monday Weekday = iota
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
	Sunday
)

var weekdayAbbrev = [7]string{"Mon", "Tue", "Wed", "Thu", "Fri", "Sat", "Sun"}

// Weekday returns the Monday-first weekday of the date.
func (d Date) Weekday() Weekday {
	return Weekday((int(d.t.Weekday()) + 6) % 7)
}

func (w Weekday) Valid() bool { return w >= Monday && w <= Sunday }

func (w Weekday) String() string {
	if !w.Valid() {
		return fmt.Sprintf("Weekday(%d)", int(w))
	}
	return weekdayAbbrev[w]
}
