/*
projector.go - Delivery-date projection over a date range

PURPOSE:
  Walks a date range through the resolution chain to answer range-shaped
  questions: which dates get a delivery, and how many dates of an irregular
  plan are still unplanned. Calendars and delivery-list generation are built
  on these two operations.

STATELESSNESS:
  Projections are restartable, not stateful. Recomputing from any start date
  yields results consistent with the subscription's current configuration;
  nothing is cached between calls.
*/
package subscription

import "github.com/shopspring/decimal"

// NextDeliveryDates returns the dates in [start, start+horizonDays) that
// resolve to a positive quantity, in strictly ascending order. A
// non-positive horizon yields an empty projection.
func NextDeliveryDates(s *Subscription, start Date, horizonDays int) []Date {
	var dates []Date
	for d, i := start, 0; i < horizonDays; d, i = d.AddDays(1), i+1 {
		if DeliversOn(d, s) {
			dates = append(dates, d)
		}
	}
	return dates
}

// DeliveryPlan pairs a projected delivery date with its resolved quantity.
type DeliveryPlan struct {
	Date     Date
	Quantity decimal.Decimal
}

// ProjectDeliveries is NextDeliveryDates with quantities attached, for
// callers that map dates onto concrete order records.
func ProjectDeliveries(s *Subscription, start Date, horizonDays int) []DeliveryPlan {
	var plans []DeliveryPlan
	for d, i := start, 0; i < horizonDays; d, i = d.AddDays(1), i+1 {
		if qty := ComputeQty(d, s); qty.IsPositive() {
			plans = append(plans, DeliveryPlan{Date: d, Quantity: qty})
		}
	}
	return plans
}

// PendingIrregularEntries counts the dates in the inclusive range
// [start, end] that have no IrregularList entry at all. This is distinct
// from "zero quantity": an explicit zero entry counts as planned. Used as a
// UI warning before generating a delivery batch, not as a validation
// failure, and only meaningful for ModeIrregular; any other mode returns 0.
func PendingIrregularEntries(s *Subscription, start, end Date) int {
	if s.Mode != ModeIrregular {
		return 0
	}
	pending := 0
	for d := start; d.BeforeOrEqual(end); d = d.AddDays(1) {
		if _, ok := findEntry(s.IrregularList, d); !ok {
			pending++
		}
	}
	return pending
}
