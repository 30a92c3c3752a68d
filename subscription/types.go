/*
Package subscription implements the quantity and recurrence engine for
delivery subscriptions.

PURPOSE:
  Given a subscription's configuration and a calendar date, decide whether a
  delivery happens on that date and at what quantity. Everything downstream
  (calendar previews, delivery-list generation, billing, procurement
  forecasting) is driven by this answer, so it must be deterministic and
  priority-ordered.

KEY CONCEPTS IN THIS FILE (types.go):
  - Subscription: The full configuration document the engine computes over
  - Mode: Which base-quantity rule applies (fixed daily, weekly pattern, ...)
  - Status: Lifecycle state (draft, active, paused, stopped)
  - PauseInterval: A suspension window; a nil End means indefinite
  - DateQuantity: A per-date override entry

DESIGN PRINCIPLES:
  1. Purity: the engine never mutates a Subscription and never does I/O;
     it computes over whatever snapshot it is given
  2. Precision: quantities and prices use decimal.Decimal, never float64
  3. Totality: every date resolves to a quantity; unmatched dates are 0,
     not an error

USAGE:
  sub := &subscription.Subscription{
      CustomerID: "cust-42",
      Mode:       subscription.ModeFixedDaily,
      Status:     subscription.StatusActive,
      DefaultQty: decimal.NewFromInt(2),
      ProductID:  "milk-1l",
  }
  qty := subscription.ComputeQty(date, sub)

SEE ALSO:
  - resolver.go:  The priority chain (ComputeQty)
  - validator.go: Structural validation before create/update
  - projector.go: Delivery-date projection over a range
  - summary.go:   Human-readable cadence description
*/
package subscription

import (
	"github.com/shopspring/decimal"
)

// =============================================================================
// MODE - Base-quantity rule, fixed at creation
// =============================================================================

type Mode string

const (
	// ModeFixedDaily delivers DefaultQty every single day.
	ModeFixedDaily Mode = "fixed_daily"

	// ModeWeeklyPattern delivers DefaultQty on the weekdays in WeeklyPattern.
	ModeWeeklyPattern Mode = "weekly_pattern"

	// ModeOneTime delivers a fixed quantity on every day of one inclusive
	// date window, then nothing.
	ModeOneTime Mode = "one_time"

	// ModeDayByDay delivers only on dates with a DayOverrides entry.
	ModeDayByDay Mode = "day_by_day"

	// ModeIrregular delivers only on dates with an IrregularList entry.
	ModeIrregular Mode = "irregular"
)

func (m Mode) Valid() bool {
	switch m {
	case ModeFixedDaily, ModeWeeklyPattern, ModeOneTime, ModeDayByDay, ModeIrregular:
		return true
	}
	return false
}

// =============================================================================
// STATUS - Lifecycle state
// =============================================================================

type Status string

const (
	// StatusDraft is the initial state. Product and price are not yet
	// required, and nothing is ever delivered.
	StatusDraft Status = "draft"

	// StatusActive means deliveries run per the mode rules.
	StatusActive Status = "active"

	// StatusPaused is a hint for callers and UIs. Actual suppression comes
	// from PauseIntervals, not from the status itself.
	StatusPaused Status = "paused"

	// StatusStopped is terminal and irreversible. Override history is
	// retained for audit but nothing is ever delivered again.
	StatusStopped Status = "stopped"
)

func (s Status) Valid() bool {
	switch s {
	case StatusDraft, StatusActive, StatusPaused, StatusStopped:
		return true
	}
	return false
}

// =============================================================================
// SUBSCRIPTION - The configuration document the engine computes over
// =============================================================================

type Subscription struct {
	ID         string
	CustomerID string

	Mode   Mode
	Status Status

	// DefaultQty is the base quantity for ModeFixedDaily and
	// ModeWeeklyPattern, and the fallback for a OneTime window without an
	// explicit quantity.
	DefaultQty decimal.Decimal

	// WeeklyPattern holds the delivery weekdays for ModeWeeklyPattern,
	// Monday-first. Order and duplicates are irrelevant to matching.
	WeeklyPattern []Weekday

	// OneTime holds the delivery window for ModeOneTime.
	OneTime *OneTimeWindow

	// StopDate is a permanent boundary. From this date on (inclusive) the
	// subscription is dead regardless of every other field.
	StopDate *Date

	// PauseIntervals suppress deliveries without terminating the
	// subscription. Intervals are inclusive on both ends; a nil End means
	// the pause is open until a caller-side resume closes it.
	PauseIntervals []PauseInterval

	// DayOverrides are per-date quantities. They drive ModeDayByDay but are
	// honored on any mode as ad-hoc one-off adjustments.
	DayOverrides []DateQuantity

	// IrregularList are per-date quantities for ModeIrregular, also honored
	// on any mode. On a date covered by both lists, IrregularList wins.
	IrregularList []DateQuantity

	// Required once Status is StatusActive.
	ProductID    string
	PricePerUnit *decimal.Decimal

	// AutoStart marks subscriptions that activate without staff
	// confirmation. The engine itself does not act on it.
	AutoStart bool
}

// OneTimeWindow is an inclusive date range with an optional fixed quantity.
// A nil Quantity falls back to the subscription's DefaultQty.
type OneTimeWindow struct {
	Start    Date
	End      Date
	Quantity *decimal.Decimal
}

func (w *OneTimeWindow) Contains(d Date) bool {
	return d.AfterOrEqual(w.Start) && d.BeforeOrEqual(w.End)
}

// PauseInterval is an inclusive suppression window. End == nil means the
// pause is indefinite: it covers every future date until an external resume
// closes the interval. The engine has no notion of "current date" and never
// auto-expires an open pause.
type PauseInterval struct {
	Start Date
	End   *Date
}

func (p *PauseInterval) Contains(d Date) bool {
	if d.Before(p.Start) {
		return false
	}
	return p.End == nil || d.BeforeOrEqual(*p.End)
}

// Open reports whether the interval has no end yet.
func (p *PauseInterval) Open() bool { return p.End == nil }

// DateQuantity is a per-date quantity entry (day override or irregular plan).
type DateQuantity struct {
	Date     Date
	Quantity decimal.Decimal
}

// =============================================================================
// LOOKUPS
// =============================================================================

// findEntry returns the quantity for an exact date match in a per-date list.
// Later entries win over earlier ones so that appended corrections take
// effect without rewriting history.
func findEntry(entries []DateQuantity, d Date) (decimal.Decimal, bool) {
	found := false
	var qty decimal.Decimal
	for _, e := range entries {
		if e.Date.Equal(d) {
			qty = e.Quantity
			found = true
		}
	}
	return qty, found
}

// HasWeekday reports whether the weekly pattern includes the given weekday.
func (s *Subscription) HasWeekday(w Weekday) bool {
	for _, p := range s.WeeklyPattern {
		if p == w {
			return true
		}
	}
	return false
}

// PausedOn reports whether any pause interval covers the date.
func (s *Subscription) PausedOn(d Date) bool {
	for i := range s.PauseIntervals {
		if s.PauseIntervals[i].Contains(d) {
			return true
		}
	}
	return false
}
