/*
validator.go - Structural validation before create/update

PURPOSE:
  Rejects malformed subscriptions before they reach the store or the
  resolver. This is the engine's sole source of reported errors: once a
  document passes Validate, ComputeQty and the projector are total and never
  fail on it.

RULE ORDER (fail-fast, first violation wins):
  1. customer id present
  2. mode present and known
  3. mode-specific structure
       - weekly pattern: non-empty, all weekdays in range, default qty > 0
       - fixed daily:    default qty > 0
       - one time:       window present with both dates, start <= end
  4. status known
  5. active requires product id and price per unit
  6. structural invariants: pause interval ordering, non-negative quantities

CALLER CONTRACT:
  Validate runs before every create and update. A rejected update must not
  be partially applied; callers validate first and only then write, so the
  all-or-nothing property holds by construction.
*/
package subscription

import (
	"errors"
	"fmt"
)

// =============================================================================
// RULE ERROR - Structured validation failure
// =============================================================================

// RuleError reports the first validation rule a subscription violates.
type RuleError struct {
	Code    string // machine-readable, e.g. "missing_customer_id"
	Field   string
	Message string
}

func (e *RuleError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *RuleError) Unwrap() error { return ErrInvalidSubscription }

func ruleErr(code, field, format string, args ...any) *RuleError {
	return &RuleError{Code: code, Field: field, Message: fmt.Sprintf(format, args...)}
}

// AsRuleError unwraps err into a *RuleError if it is one.
func AsRuleError(err error) (*RuleError, bool) {
	var re *RuleError
	ok := errors.As(err, &re)
	return re, ok
}

// =============================================================================
// VALIDATOR
// =============================================================================

// Validate checks a subscription's structure and returns nil if it is
// well-formed. It returns on the first violated rule.
func Validate(s *Subscription) error {
	// 1. Identity
	if s.CustomerID == "" {
		return ruleErr("missing_customer_id", "customer_id", "customer id is required")
	}

	// 2. Mode
	if s.Mode == "" {
		return ruleErr("missing_mode", "mode", "mode is required")
	}
	if !s.Mode.Valid() {
		return ruleErr("unknown_mode", "mode", "unknown mode %q", s.Mode)
	}

	// 3. Mode-specific structure
	if err := validateModeStructure(s); err != nil {
		return err
	}

	// 4. Status
	if !s.Status.Valid() {
		return ruleErr("unknown_status", "status", "unknown status %q", s.Status)
	}

	// 5. Active requirements
	if s.Status == StatusActive {
		if s.ProductID == "" {
			return ruleErr("missing_product", "product_id", "active subscription requires a product")
		}
		if s.PricePerUnit == nil {
			return ruleErr("missing_price", "price_per_unit", "active subscription requires a price per unit")
		}
	}

	// 6. Structural invariants shared by all modes
	return validateInvariants(s)
}

func validateModeStructure(s *Subscription) error {
	switch s.Mode {
	case ModeWeeklyPattern:
		if len(s.WeeklyPattern) == 0 {
			return ruleErr("empty_weekly_pattern", "weekly_pattern", "weekly pattern mode requires at least one weekday")
		}
		for _, w := range s.WeeklyPattern {
			if !w.Valid() {
				return ruleErr("invalid_weekday", "weekly_pattern", "weekday %d out of range 0-6", int(w))
			}
		}
		if !s.DefaultQty.IsPositive() {
			return ruleErr("missing_default_qty", "default_qty", "weekly pattern mode requires a positive default quantity")
		}

	case ModeFixedDaily:
		if !s.DefaultQty.IsPositive() {
			return ruleErr("missing_default_qty", "default_qty", "fixed daily mode requires a positive default quantity")
		}

	case ModeOneTime:
		if s.OneTime == nil {
			return ruleErr("missing_one_time_window", "one_time", "one-time mode requires a delivery window")
		}
		if s.OneTime.Start.IsZero() {
			return ruleErr("missing_start_date", "one_time.start", "one-time window requires a start date")
		}
		if s.OneTime.End.IsZero() {
			return ruleErr("missing_end_date", "one_time.end", "one-time window requires an end date")
		}
		if s.OneTime.End.Before(s.OneTime.Start) {
			return ruleErr("inverted_window", "one_time", "window end %s is before start %s", s.OneTime.End, s.OneTime.Start)
		}
		if s.OneTime.Quantity != nil && s.OneTime.Quantity.IsNegative() {
			return ruleErr("negative_quantity", "one_time.quantity", "one-time quantity must not be negative")
		}
	}
	return nil
}

func validateInvariants(s *Subscription) error {
	if s.DefaultQty.IsNegative() {
		return ruleErr("negative_quantity", "default_qty", "default quantity must not be negative")
	}
	for i := range s.PauseIntervals {
		p := &s.PauseIntervals[i]
		if p.Start.IsZero() {
			return ruleErr("missing_pause_start", "pause_intervals", "pause interval %d has no start date", i)
		}
		if p.End != nil && p.End.Before(p.Start) {
			return ruleErr("inverted_pause", "pause_intervals", "pause interval %d ends %s before it starts %s", i, *p.End, p.Start)
		}
	}
	for _, e := range s.DayOverrides {
		if e.Quantity.IsNegative() {
			return ruleErr("negative_quantity", "day_overrides", "override for %s must not be negative", e.Date)
		}
	}
	for _, e := range s.IrregularList {
		if e.Quantity.IsNegative() {
			return ruleErr("negative_quantity", "irregular_list", "irregular entry for %s must not be negative", e.Date)
		}
	}
	return nil
}
