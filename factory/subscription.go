/*
Package factory provides JSON to Go subscription conversion.

PURPOSE:
  Converts the snake_case JSON document form of a subscription into the
  engine's Subscription struct and back. The same wire form is used by the
  HTTP API and stored in the SQLite document column, so null-vs-missing
  handling lives in exactly one place.

JSON SCHEMA:
  {
    "id": "sub-001",
    "customer_id": "cust-42",
    "mode": "weekly_pattern",
    "status": "active",
    "default_qty": 1.5,
    "weekly_pattern": [0, 2, 4],
    "start_date": "2026-01-19",
    "end_date": "2026-01-25",
    "quantity": 2,
    "stop_date": "2026-06-30",
    "pause_intervals": [{"start": "2026-02-01", "end": "2026-02-05"}],
    "day_overrides": [{"date": "2026-01-21", "quantity": 3}],
    "irregular_list": [{"date": "2026-01-22", "quantity": 0}],
    "product_id": "milk-1l",
    "price_per_unit": 1.20,
    "auto_start": true
  }

  Dates are ISO (YYYY-MM-DD). start_date/end_date/quantity belong to the
  one-time window; a pause interval without "end" is indefinite.

USAGE:
  sub, err := factory.Parse(jsonBytes)     // wire -> engine, with date checks
  doc := factory.Encode(sub)               // engine -> wire
  raw, err := json.Marshal(doc)

SEE ALSO:
  - subscription/types.go: The engine-side model
  - api/dto.go:            Response shapes built on top of this
  - store/sqlite:          Stores the encoded document
*/
package factory

import (
	"encoding/json"
	"fmt"

	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
	"github.com/shopspring/decimal"
)

// =============================================================================
// JSON SCHEMA TYPES
// =============================================================================

// SubscriptionJSON is the wire and document form of a subscription.
type SubscriptionJSON struct {
	ID         string `json:"id,omitempty"`
	CustomerID string `json:"customer_id"`
	Mode       string `json:"mode"`
	Status     string `json:"status"`

	DefaultQty    *float64 `json:"default_qty,omitempty"`
	WeeklyPattern []int    `json:"weekly_pattern,omitempty"`

	StartDate *string  `json:"start_date,omitempty"`
	EndDate   *string  `json:"end_date,omitempty"`
	Quantity  *float64 `json:"quantity,omitempty"`

	StopDate       *string             `json:"stop_date,omitempty"`
	PauseIntervals []PauseIntervalJSON `json:"pause_intervals,omitempty"`
	DayOverrides   []DateQuantityJSON  `json:"day_overrides,omitempty"`
	IrregularList  []DateQuantityJSON  `json:"irregular_list,omitempty"`

	ProductID    string   `json:"product_id,omitempty"`
	PricePerUnit *float64 `json:"price_per_unit,omitempty"`
	AutoStart    bool     `json:"auto_start,omitempty"`
}

// PauseIntervalJSON is a suspension window; a missing end is indefinite.
type PauseIntervalJSON struct {
	Start string  `json:"start"`
	End   *string `json:"end,omitempty"`
}

// DateQuantityJSON is a per-date quantity entry.
type DateQuantityJSON struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// =============================================================================
// WIRE -> ENGINE
// =============================================================================

// Parse decodes a JSON document into a Subscription. Malformed dates and
// unknown enum strings are rejected here so the engine only ever sees
// well-formed values; business rules stay in subscription.Validate.
func Parse(raw []byte) (*subscription.Subscription, error) {
	var sj SubscriptionJSON
	if err := json.Unmarshal(raw, &sj); err != nil {
		return nil, fmt.Errorf("failed to parse subscription JSON: %w", err)
	}
	return FromJSON(sj)
}

// FromJSON converts the wire form into the engine model.
func FromJSON(sj SubscriptionJSON) (*subscription.Subscription, error) {
	s := &subscription.Subscription{
		ID:         sj.ID,
		CustomerID: sj.CustomerID,
		Mode:       subscription.Mode(sj.Mode),
		Status:     subscription.Status(sj.Status),
		ProductID:  sj.ProductID,
		AutoStart:  sj.AutoStart,
	}

	if sj.DefaultQty != nil {
		s.DefaultQty = decimal.NewFromFloat(*sj.DefaultQty)
	}
	if sj.PricePerUnit != nil {
		p := decimal.NewFromFloat(*sj.PricePerUnit)
		s.PricePerUnit = &p
	}

	for _, w := range sj.WeeklyPattern {
		s.WeeklyPattern = append(s.WeeklyPattern, subscription.Weekday(w))
	}

	if sj.StartDate != nil || sj.EndDate != nil || sj.Quantity != nil {
		window := &subscription.OneTimeWindow{}
		var err error
		if sj.StartDate != nil {
			if window.Start, err = subscription.ParseDate(*sj.StartDate); err != nil {
				return nil, fmt.Errorf("start_date: %w", err)
			}
		}
		if sj.EndDate != nil {
			if window.End, err = subscription.ParseDate(*sj.EndDate); err != nil {
				return nil, fmt.Errorf("end_date: %w", err)
			}
		}
		if sj.Quantity != nil {
			q := decimal.NewFromFloat(*sj.Quantity)
			window.Quantity = &q
		}
		s.OneTime = window
	}

	if sj.StopDate != nil {
		d, err := subscription.ParseDate(*sj.StopDate)
		if err != nil {
			return nil, fmt.Errorf("stop_date: %w", err)
		}
		s.StopDate = &d
	}

	for i, pj := range sj.PauseIntervals {
		start, err := subscription.ParseDate(pj.Start)
		if err != nil {
			return nil, fmt.Errorf("pause_intervals[%d].start: %w", i, err)
		}
		interval := subscription.PauseInterval{Start: start}
		if pj.End != nil {
			end, err := subscription.ParseDate(*pj.End)
			if err != nil {
				return nil, fmt.Errorf("pause_intervals[%d].end: %w", i, err)
			}
			interval.End = &end
		}
		s.PauseIntervals = append(s.PauseIntervals, interval)
	}

	var err error
	if s.DayOverrides, err = parseEntries(sj.DayOverrides, "day_overrides"); err != nil {
		return nil, err
	}
	if s.IrregularList, err = parseEntries(sj.IrregularList, "irregular_list"); err != nil {
		return nil, err
	}

	return s, nil
}

func parseEntries(entries []DateQuantityJSON, field string) ([]subscription.DateQuantity, error) {
	var out []subscription.DateQuantity
	for i, ej := range entries {
		d, err := subscription.ParseDate(ej.Date)
		if err != nil {
			return nil, fmt.Errorf("%s[%d].date: %w", field, i, err)
		}
		out = append(out, subscription.DateQuantity{
			Date:     d,
			Quantity: decimal.NewFromFloat(ej.Quantity),
		})
	}
	return out, nil
}

// =============================================================================
// ENGINE -> WIRE
// =============================================================================

// Encode converts the engine model back into its wire form.
func Encode(s *subscription.Subscription) SubscriptionJSON {
	sj := SubscriptionJSON{
		ID:         s.ID,
		CustomerID: s.CustomerID,
		Mode:       string(s.Mode),
		Status:     string(s.Status),
		ProductID:  s.ProductID,
		AutoStart:  s.AutoStart,
	}

	if !s.DefaultQty.IsZero() {
		q, _ := s.DefaultQty.Float64()
		sj.DefaultQty = &q
	}
	if s.PricePerUnit != nil {
		p, _ := s.PricePerUnit.Float64()
		sj.PricePerUnit = &p
	}

	for _, w := range s.WeeklyPattern {
		sj.WeeklyPattern = append(sj.WeeklyPattern, int(w))
	}

	if s.OneTime != nil {
		start, end := s.OneTime.Start.String(), s.OneTime.End.String()
		sj.StartDate, sj.EndDate = &start, &end
		if s.OneTime.Quantity != nil {
			q, _ := s.OneTime.Quantity.Float64()
			sj.Quantity = &q
		}
	}

	if s.StopDate != nil {
		d := s.StopDate.String()
		sj.StopDate = &d
	}

	for _, p := range s.PauseIntervals {
		pj := PauseIntervalJSON{Start: p.Start.String()}
		if p.End != nil {
			end := p.End.String()
			pj.End = &end
		}
		sj.PauseIntervals = append(sj.PauseIntervals, pj)
	}

	sj.DayOverrides = encodeEntries(s.DayOverrides)
	sj.IrregularList = encodeEntries(s.IrregularList)

	return sj
}

// EncodeBytes marshals straight to the stored document form.
func EncodeBytes(s *subscription.Subscription) ([]byte, error) {
	return json.Marshal(Encode(s))
}

func encodeEntries(entries []subscription.DateQuantity) []DateQuantityJSON {
	var out []DateQuantityJSON
	for _, e := range entries {
		q, _ := e.Quantity.Float64()
		out = append(out, DateQuantityJSON{Date: e.Date.String(), Quantity: q})
	}
	return out
}
