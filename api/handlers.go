/*
handlers.go - HTTP API handlers for the subscription engine

PURPOSE:
  Exposes the engine over REST. Handlers parse the request, validate the
  document, call the pure engine functions, and persist through the store
  with optimistic versioning. All business decisions live in the
  subscription package; nothing here computes a quantity itself.

REQUEST FLOW (mutations):
  1. Parse body (factory wire form, plus the version the client read)
  2. Load the current document from the store
  3. Apply the mutation via subscription lifecycle helpers
  4. Validate the result - a rejected document is never written
  5. Update with the client's version; stale versions return 409

ERROR HANDLING:
  - 400: validation failures, malformed dates, bad input
  - 404: unknown subscription
  - 409: version conflict, mutation on a stopped subscription
  - 500: store failures

SEE ALSO:
  - dto.go: Request/response data structures
  - server.go: Router setup and middleware
*/
package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/earlybirddelivery/EARLYAPP-sub000/factory"
	"github.com/earlybirddelivery/EARLYAPP-sub000/store/sqlite"
	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
)

// defaultHorizonDays bounds projections when the client does not say.
const defaultHorizonDays = 30

// maxHorizonDays caps a single projection request.
const maxHorizonDays = 366

// Handler holds all dependencies for HTTP handlers.
type Handler struct {
	Store *sqlite.Store
}

// NewHandler creates a new handler with the given store.
func NewHandler(store *sqlite.Store) *Handler {
	return &Handler{Store: store}
}

// =============================================================================
// DOCUMENT HANDLERS
// =============================================================================

// ListSubscriptions returns all subscriptions, optionally filtered by
// customer_id or status.
func (h *Handler) ListSubscriptions(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var (
		records []*sqlite.Record
		err     error
	)
	switch {
	case r.URL.Query().Get("customer_id") != "":
		records, err = h.Store.ListByCustomer(ctx, r.URL.Query().Get("customer_id"))
	case r.URL.Query().Get("status") != "":
		records, err = h.Store.ListByStatus(ctx, subscription.Status(r.URL.Query().Get("status")))
	default:
		records, err = h.Store.List(ctx)
	}
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list subscriptions", err)
		return
	}

	dtos := make([]SubscriptionDTO, len(records))
	for i, rec := range records {
		dtos[i] = toSubscriptionDTO(rec)
	}
	writeJSON(w, http.StatusOK, dtos)
}

// GetSubscription returns a single subscription document.
func (h *Handler) GetSubscription(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionDTO(rec))
}

// CreateSubscription validates and stores a new subscription document.
func (h *Handler) CreateSubscription(w http.ResponseWriter, r *http.Request) {
	var sj factory.SubscriptionJSON
	if err := json.NewDecoder(r.Body).Decode(&sj); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sub, err := factory.FromJSON(sj)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid subscription document", err)
		return
	}
	if sub.ID == "" {
		writeError(w, http.StatusBadRequest, "Subscription id is required", nil)
		return
	}
	if err := subscription.Validate(sub); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.Store.Save(r.Context(), sub); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to save subscription", err)
		return
	}

	rec, err := h.Store.Get(r.Context(), sub.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload subscription", err)
		return
	}
	writeJSON(w, http.StatusCreated, toSubscriptionDTO(rec))
}

// UpdateSubscription replaces the document. The update is all-or-nothing:
// validation runs on the incoming document and a rejected update writes
// nothing.
func (h *Handler) UpdateSubscription(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req UpdateSubscriptionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sub, err := factory.FromJSON(req.Subscription)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid subscription document", err)
		return
	}
	sub.ID = id
	if err := subscription.Validate(sub); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.Store.Update(r.Context(), sub, req.Version); err != nil {
		writeStoreError(w, err)
		return
	}

	rec, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload subscription", err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionDTO(rec))
}

// =============================================================================
// COMPUTED VIEWS
// =============================================================================

// GetQuantity resolves the quantity for one date and reports the rule that
// decided it.
func (h *Handler) GetQuantity(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}

	date, err := queryDate(r, "date", subscription.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid date", err)
		return
	}

	qty, rule := subscription.Resolve(date, rec.Subscription)
	f, _ := qty.Float64()
	writeJSON(w, http.StatusOK, QuantityDTO{
		Date:     date.String(),
		Quantity: f,
		Rule:     string(rule),
	})
}

// GetDeliveries projects delivery dates and quantities over a horizon.
func (h *Handler) GetDeliveries(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}

	start, err := queryDate(r, "start", subscription.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	horizon, err := queryHorizon(r, "days")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid horizon", err)
		return
	}

	plans := subscription.ProjectDeliveries(rec.Subscription, start, horizon)
	deliveries := make([]DeliveryDTO, len(plans))
	for i, p := range plans {
		q, _ := p.Quantity.Float64()
		deliveries[i] = DeliveryDTO{Date: p.Date.String(), Quantity: q}
	}

	writeJSON(w, http.StatusOK, DeliveriesDTO{
		Start:       start.String(),
		HorizonDays: horizon,
		Deliveries:  deliveries,
	})
}

// GetPendingIrregular counts unplanned dates of an irregular plan in an
// inclusive range. Other modes always report 0.
func (h *Handler) GetPendingIrregular(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}

	start, err := queryDate(r, "start", subscription.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	end, err := queryDate(r, "end", start.AddDays(defaultHorizonDays-1))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid end date", err)
		return
	}
	if end.Before(start) {
		writeError(w, http.StatusBadRequest, "End date before start date", nil)
		return
	}

	pending := subscription.PendingIrregularEntries(rec.Subscription, start, end)
	writeJSON(w, http.StatusOK, PendingIrregularDTO{
		Start:   start.String(),
		End:     end.String(),
		Pending: pending,
	})
}

// GetCalendarSummary returns the human-readable cadence description.
func (h *Handler) GetCalendarSummary(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.load(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, toCalendarSummaryDTO(subscription.Summarize(rec.Subscription)))
}

// GetForecast aggregates per-day demand across every stored subscription.
func (h *Handler) GetForecast(w http.ResponseWriter, r *http.Request) {
	start, err := queryDate(r, "start", subscription.Today())
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid start date", err)
		return
	}
	horizon, err := queryHorizon(r, "days")
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid horizon", err)
		return
	}

	records, err := h.Store.List(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to list subscriptions", err)
		return
	}

	subs := make([]*subscription.Subscription, len(records))
	for i, rec := range records {
		subs[i] = rec.Subscription
	}

	demand := subscription.ForecastDemand(subs, start, horizon)
	dtos := make([]DailyDemandDTO, len(demand))
	for i, d := range demand {
		total, _ := d.Total.Float64()
		dtos[i] = DailyDemandDTO{Date: d.Date.String(), Total: total, Deliveries: d.Deliveries}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// =============================================================================
// LIFECYCLE HANDLERS
// =============================================================================

// PauseSubscription opens a pause interval (indefinite when end is absent).
func (h *Handler) PauseSubscription(w http.ResponseWriter, r *http.Request) {
	var req PauseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	start, err := subscription.ParseDate(req.Start)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid pause start", err)
		return
	}
	var end *subscription.Date
	if req.End != nil {
		d, err := subscription.ParseDate(*req.End)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid pause end", err)
			return
		}
		end = &d
	}

	h.mutate(w, r, req.Version, func(s *subscription.Subscription) error {
		return s.BeginPause(start, end)
	})
}

// ResumeSubscription closes the open pause interval.
func (h *Handler) ResumeSubscription(w http.ResponseWriter, r *http.Request) {
	var req ResumeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	end, err := subscription.ParseDate(req.End)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid resume date", err)
		return
	}

	h.mutate(w, r, req.Version, func(s *subscription.Subscription) error {
		return s.EndPause(end)
	})
}

// StopSubscription permanently stops the subscription.
func (h *Handler) StopSubscription(w http.ResponseWriter, r *http.Request) {
	var req StopRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	stopDate, err := subscription.ParseDate(req.StopDate)
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid stop date", err)
		return
	}

	h.mutate(w, r, req.Version, func(s *subscription.Subscription) error {
		return s.MarkStopped(stopDate)
	})
}

// AddDayOverrides appends day override entries.
func (h *Handler) AddDayOverrides(w http.ResponseWriter, r *http.Request) {
	h.appendEntries(w, r, func(s *subscription.Subscription, entries []subscription.DateQuantity) error {
		for _, e := range entries {
			if err := s.AddDayOverride(e); err != nil {
				return err
			}
		}
		return nil
	})
}

// AddIrregularEntries appends irregular plan entries.
func (h *Handler) AddIrregularEntries(w http.ResponseWriter, r *http.Request) {
	h.appendEntries(w, r, func(s *subscription.Subscription, entries []subscription.DateQuantity) error {
		return s.AddIrregularEntries(entries...)
	})
}

func (h *Handler) appendEntries(w http.ResponseWriter, r *http.Request, apply func(*subscription.Subscription, []subscription.DateQuantity) error) {
	var req OverrideRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}
	if len(req.Entries) == 0 {
		writeError(w, http.StatusBadRequest, "No entries given", nil)
		return
	}

	entries := make([]subscription.DateQuantity, 0, len(req.Entries))
	for _, ej := range req.Entries {
		d, err := subscription.ParseDate(ej.Date)
		if err != nil {
			writeError(w, http.StatusBadRequest, "Invalid entry date", err)
			return
		}
		entries = append(entries, subscription.DateQuantity{Date: d, Quantity: decimal.NewFromFloat(ej.Quantity)})
	}

	h.mutate(w, r, req.Version, func(s *subscription.Subscription) error {
		return apply(s, entries)
	})
}

// mutate runs the read-modify-validate-write cycle shared by every
// lifecycle handler.
func (h *Handler) mutate(w http.ResponseWriter, r *http.Request, version int64, apply func(*subscription.Subscription) error) {
	id := chi.URLParam(r, "id")
	ctx := r.Context()

	rec, err := h.Store.Get(ctx, id)
	if err != nil {
		writeStoreError(w, err)
		return
	}

	sub := rec.Subscription
	if err := apply(sub); err != nil {
		writeStoreError(w, err)
		return
	}
	if err := subscription.Validate(sub); err != nil {
		writeValidationError(w, err)
		return
	}

	if err := h.Store.Update(ctx, sub, version); err != nil {
		writeStoreError(w, err)
		return
	}

	updated, err := h.Store.Get(ctx, id)
	if err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to reload subscription", err)
		return
	}
	writeJSON(w, http.StatusOK, toSubscriptionDTO(updated))
}

// =============================================================================
// HELPERS
// =============================================================================

func (h *Handler) load(w http.ResponseWriter, r *http.Request) (*sqlite.Record, bool) {
	id := chi.URLParam(r, "id")
	rec, err := h.Store.Get(r.Context(), id)
	if err != nil {
		writeStoreError(w, err)
		return nil, false
	}
	return rec, true
}

func queryDate(r *http.Request, key string, fallback subscription.Date) (subscription.Date, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return fallback, nil
	}
	return subscription.ParseDate(raw)
}

func queryHorizon(r *http.Request, key string) (int, error) {
	raw := r.URL.Query().Get(key)
	if raw == "" {
		return defaultHorizonDays, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, err
	}
	if n < 0 || n > maxHorizonDays {
		return 0, strconv.ErrRange
	}
	return n, nil
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string, err error) {
	resp := ErrorResponse{Error: msg}
	if err != nil {
		resp.Error = msg + ": " + err.Error()
	}
	writeJSON(w, status, resp)
}

func writeValidationError(w http.ResponseWriter, err error) {
	resp := ErrorResponse{Error: err.Error()}
	if re, ok := subscription.AsRuleError(err); ok {
		resp.Code = re.Code
	}
	writeJSON(w, http.StatusBadRequest, resp)
}

// writeStoreError maps engine/store sentinels onto HTTP statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case subscription.IsNotFound(err):
		writeError(w, http.StatusNotFound, "Subscription not found", nil)
	case subscription.IsConflict(err):
		writeError(w, http.StatusConflict, "Subscription was modified concurrently, re-read and retry", nil)
	case errors.Is(err, subscription.ErrSubscriptionStopped):
		writeError(w, http.StatusConflict, "Subscription is stopped", nil)
	case subscription.IsClientError(err):
		writeError(w, http.StatusBadRequest, err.Error(), nil)
	default:
		writeError(w, http.StatusInternalServerError, "Store failure", err)
	}
}
