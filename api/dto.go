/*
dto.go - Data Transfer Objects for API requests and responses

PURPOSE:
  Response and request shapes for the HTTP API. The subscription document
  itself travels as factory.SubscriptionJSON; the types here wrap it with
  versions, computed results and error envelopes.

NAMING CONVENTION:
  - *DTO: Response types returned to clients
  - *Request: Request body types from clients
*/
package api

import (
	"github.com/earlybirddelivery/EARLYAPP-sub000/factory"
	"github.com/earlybirddelivery/EARLYAPP-sub000/store/sqlite"
	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
)

// =============================================================================
// SUBSCRIPTION DOCUMENTS
// =============================================================================

// SubscriptionDTO wraps the document with its store version. Clients must
// send the version back on mutating calls so lost updates are detected.
type SubscriptionDTO struct {
	factory.SubscriptionJSON
	Version   int64  `json:"version"`
	CreatedAt string `json:"created_at,omitempty"`
	UpdatedAt string `json:"updated_at,omitempty"`
}

func toSubscriptionDTO(rec *sqlite.Record) SubscriptionDTO {
	dto := SubscriptionDTO{
		SubscriptionJSON: factory.Encode(rec.Subscription),
		Version:          rec.Version,
	}
	if !rec.CreatedAt.IsZero() {
		dto.CreatedAt = rec.CreatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	if !rec.UpdatedAt.IsZero() {
		dto.UpdatedAt = rec.UpdatedAt.Format("2006-01-02T15:04:05Z07:00")
	}
	return dto
}

// =============================================================================
// COMPUTED RESULTS
// =============================================================================

// QuantityDTO is the resolved quantity for one date, with the rule that
// produced it so staff tooling can explain the answer.
type QuantityDTO struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
	Rule     string  `json:"rule"`
}

// DeliveryDTO is one projected delivery.
type DeliveryDTO struct {
	Date     string  `json:"date"`
	Quantity float64 `json:"quantity"`
}

// DeliveriesDTO is a projection over a horizon.
type DeliveriesDTO struct {
	Start       string        `json:"start"`
	HorizonDays int           `json:"horizon_days"`
	Deliveries  []DeliveryDTO `json:"deliveries"`
}

// PendingIrregularDTO reports unplanned dates of an irregular plan.
type PendingIrregularDTO struct {
	Start   string `json:"start"`
	End     string `json:"end"`
	Pending int    `json:"pending"`
}

// CalendarSummaryDTO is the display summary of a subscription's cadence.
type CalendarSummaryDTO struct {
	Mode      string `json:"mode"`
	Status    string `json:"status"`
	Frequency string `json:"frequency"`
	Quantity  string `json:"quantity"`
}

func toCalendarSummaryDTO(sum subscription.CalendarSummary) CalendarSummaryDTO {
	return CalendarSummaryDTO{
		Mode:      string(sum.Mode),
		Status:    string(sum.Status),
		Frequency: sum.Frequency,
		Quantity:  sum.Quantity,
	}
}

// DailyDemandDTO is one day of the aggregate procurement forecast.
type DailyDemandDTO struct {
	Date       string  `json:"date"`
	Total      float64 `json:"total"`
	Deliveries int     `json:"deliveries"`
}

// =============================================================================
// MUTATION REQUESTS
// =============================================================================

// PauseRequest opens a pause interval; a missing end is indefinite.
type PauseRequest struct {
	Start   string  `json:"start"`
	End     *string `json:"end,omitempty"`
	Version int64   `json:"version"`
}

// ResumeRequest closes the open pause interval on the given date.
type ResumeRequest struct {
	End     string `json:"end"`
	Version int64  `json:"version"`
}

// StopRequest permanently stops the subscription from the given date.
type StopRequest struct {
	StopDate string `json:"stop_date"`
	Version  int64  `json:"version"`
}

// OverrideRequest appends per-date quantity entries.
type OverrideRequest struct {
	Entries []factory.DateQuantityJSON `json:"entries"`
	Version int64                      `json:"version"`
}

// UpdateSubscriptionRequest replaces the document, guarded by version.
type UpdateSubscriptionRequest struct {
	Subscription factory.SubscriptionJSON `json:"subscription"`
	Version      int64                    `json:"version"`
}

// =============================================================================
// SCENARIOS AND ERRORS
// =============================================================================

// ScenarioDTO describes a demo scenario.
type ScenarioDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
}

// LoadScenarioRequest selects a scenario to seed.
type LoadScenarioRequest struct {
	ID string `json:"id"`
}

// ErrorResponse is the standard error envelope.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}
