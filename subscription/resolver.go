/*
resolver.go - The quantity resolution priority chain

PURPOSE:
  Answers the one question everything else depends on: how much gets
  delivered on a given date? The answer is resolved through an ordered chain
  of guards where the first match wins and each guard strictly dominates all
  that follow.

PRIORITY CHAIN (first match wins):
   1. draft status            -> 0
   2. stopped status          -> 0
   3. stop date reached       -> 0
   4. inside a pause interval -> 0 (an open pause covers every future date)
   5. irregular entry for day -> entry quantity
   6. day override for day    -> entry quantity
   7. weekly pattern mode     -> default qty on pattern days, else 0
   8. one-time mode           -> window qty inside the window, else 0
   9. fixed daily mode        -> default qty
  10. day-by-day mode         -> 0 (no override matched above)
  11. irregular mode          -> 0 (no entry matched above)
  12. anything else           -> 0

  Guards 5 and 6 run for EVERY mode, which is what makes ad-hoc one-off
  adjustments possible on any subscription type. When both lists carry an
  entry for the same date, the irregular entry wins.

CONTRACT:
  ComputeQty is pure, deterministic and total: no I/O, no mutation, and a
  defined answer (possibly zero) for any well-formed subscription and any
  date. It never returns a negative quantity and never returns an error.

SEE ALSO:
  - projector.go: Iterates this chain over a date range
  - validator.go: Rejects malformed subscriptions before they get here
*/
package subscription

import "github.com/shopspring/decimal"

// =============================================================================
// RULE - Names the guard that resolved a quantity
// =============================================================================

// Rule identifies which link of the priority chain produced the answer.
// Exposed so callers (and the API) can explain a computed quantity.
type Rule string

const (
	RuleDraft         Rule = "draft"
	RuleStopped       Rule = "stopped"
	RuleStopDate      Rule = "stop_date"
	RulePaused        Rule = "paused"
	RuleIrregular     Rule = "irregular_entry"
	RuleDayOverride   Rule = "day_override"
	RuleWeeklyPattern Rule = "weekly_pattern"
	RuleOneTime       Rule = "one_time_window"
	RuleFixedDaily    Rule = "fixed_daily"
	RuleNoDelivery    Rule = "no_delivery"
)

// =============================================================================
// PRIORITY CHAIN
// =============================================================================

// A guard inspects one independent condition. It returns (qty, rule, true)
// to claim the date and stop the chain, or ok=false to pass to the next
// guard.
type guard func(d Date, s *Subscription) (decimal.Decimal, Rule, bool)

// priorityChain is evaluated in order with early return. Keeping the links
// as independent predicates (rather than nested conditionals) keeps each
// one testable in isolation and the ordering explicit.
var priorityChain = []guard{
	guardDraft,
	guardStopped,
	guardStopDate,
	guardPaused,
	guardIrregularEntry,
	guardDayOverride,
	guardWeeklyPattern,
	guardOneTime,
	guardFixedDaily,
}

// ComputeQty resolves the delivery quantity for a date. It is safe to call
// concurrently from any number of goroutines.
func ComputeQty(d Date, s *Subscription) decimal.Decimal {
	qty, _ := Resolve(d, s)
	return qty
}

// Resolve is ComputeQty plus the rule that produced the answer.
func Resolve(d Date, s *Subscription) (decimal.Decimal, Rule) {
	for _, g := range priorityChain {
		if qty, rule, ok := g(d, s); ok {
			if qty.IsNegative() {
				// Quantities are non-negative by invariant; a bad override
				// entry clamps to zero rather than poisoning billing.
				return decimal.Zero, rule
			}
			return qty, rule
		}
	}
	return decimal.Zero, RuleNoDelivery
}

// DeliversOn reports whether the date resolves to a positive quantity.
func DeliversOn(d Date, s *Subscription) bool {
	return ComputeQty(d, s).IsPositive()
}

// =============================================================================
// GUARDS - One link of the chain each
// =============================================================================

func guardDraft(_ Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if s.Status == StatusDraft {
		return decimal.Zero, RuleDraft, true
	}
	return decimal.Zero, "", false
}

func guardStopped(_ Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if s.Status == StatusStopped {
		return decimal.Zero, RuleStopped, true
	}
	return decimal.Zero, "", false
}

// guardStopDate kills the subscription from the stop date on, inclusive.
// Dominant over pauses and overrides alike.
func guardStopDate(d Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if s.StopDate != nil && d.AfterOrEqual(*s.StopDate) {
		return decimal.Zero, RuleStopDate, true
	}
	return decimal.Zero, "", false
}

func guardPaused(d Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if s.PausedOn(d) {
		return decimal.Zero, RulePaused, true
	}
	return decimal.Zero, "", false
}

// guardIrregularEntry matches for any mode, not just ModeIrregular, and is
// checked before day overrides.
func guardIrregularEntry(d Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if qty, ok := findEntry(s.IrregularList, d); ok {
		return qty, RuleIrregular, true
	}
	return decimal.Zero, "", false
}

// guardDayOverride matches for any mode, not just ModeDayByDay.
func guardDayOverride(d Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if qty, ok := findEntry(s.DayOverrides, d); ok {
		return qty, RuleDayOverride, true
	}
	return decimal.Zero, "", false
}

// Mode guards are terminal for their own mode: once reached, the mode's
// base rule decides and the chain ends. ModeDayByDay and ModeIrregular have
// no base rule of their own, so an unmatched date falls through to the
// final zero.

func guardWeeklyPattern(d Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if s.Mode != ModeWeeklyPattern {
		return decimal.Zero, "", false
	}
	if s.HasWeekday(d.Weekday()) {
		return s.DefaultQty, RuleWeeklyPattern, true
	}
	return decimal.Zero, RuleNoDelivery, true
}

func guardOneTime(d Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if s.Mode != ModeOneTime {
		return decimal.Zero, "", false
	}
	if s.OneTime != nil && s.OneTime.Contains(d) {
		if s.OneTime.Quantity != nil {
			return *s.OneTime.Quantity, RuleOneTime, true
		}
		return s.DefaultQty, RuleOneTime, true
	}
	return decimal.Zero, RuleNoDelivery, true
}

func guardFixedDaily(_ Date, s *Subscription) (decimal.Decimal, Rule, bool) {
	if s.Mode != ModeFixedDaily {
		return decimal.Zero, "", false
	}
	return s.DefaultQty, RuleFixedDaily, true
}
