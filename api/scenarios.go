/*
scenarios.go - Demo scenario loaders

PURPOSE:
  Seeds the store with representative subscriptions so the frontend and
  manual API exploration have data to work with. Each scenario is a small,
  self-describing fixture covering one corner of the rule set.
*/
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/earlybirddelivery/EARLYAPP-sub000/subscription"
)

// =============================================================================
// SCENARIO DEFINITIONS
// =============================================================================

type scenario struct {
	ID          string
	Name        string
	Description string
	Build       func() []*subscription.Subscription
}

var scenarios = []scenario{
	{
		ID:          "daily-milk",
		Name:        "Daily milk",
		Description: "Two liters every day, active, no interruptions",
		Build:       buildDailyMilk,
	},
	{
		ID:          "weekday-pattern",
		Name:        "Mon/Wed/Fri pattern",
		Description: "Weekly pattern with a one-off override and a short pause",
		Build:       buildWeekdayPattern,
	},
	{
		ID:          "irregular-plan",
		Name:        "Irregular plan",
		Description: "Customer plans each delivery explicitly, some days still unplanned",
		Build:       buildIrregularPlan,
	},
	{
		ID:          "paused-indefinitely",
		Name:        "Indefinite pause",
		Description: "Customer on vacation with no return date yet",
		Build:       buildIndefinitePause,
	},
}

func buildDailyMilk() []*subscription.Subscription {
	price := decimal.NewFromFloat(1.20)
	return []*subscription.Subscription{{
		ID:           "demo-daily-1",
		CustomerID:   "cust-anna",
		Mode:         subscription.ModeFixedDaily,
		Status:       subscription.StatusActive,
		DefaultQty:   decimal.NewFromInt(2),
		ProductID:    "milk-1l",
		PricePerUnit: &price,
	}}
}

func buildWeekdayPattern() []*subscription.Subscription {
	price := decimal.NewFromFloat(2.40)
	start := firstOfNextMonth()
	pauseEnd := start.AddDays(11)
	return []*subscription.Subscription{{
		ID:         "demo-weekly-1",
		CustomerID: "cust-bruno",
		Mode:       subscription.ModeWeeklyPattern,
		Status:     subscription.StatusActive,
		DefaultQty: decimal.NewFromInt(1),
		WeeklyPattern: []subscription.Weekday{
			subscription.Monday, subscription.Wednesday, subscription.Friday,
		},
		DayOverrides: []subscription.DateQuantity{
			{Date: start.AddDays(2), Quantity: decimal.NewFromInt(3)},
		},
		PauseIntervals: []subscription.PauseInterval{
			{Start: start.AddDays(7), End: &pauseEnd},
		},
		ProductID:    "yogurt-500g",
		PricePerUnit: &price,
	}}
}

func buildIrregularPlan() []*subscription.Subscription {
	price := decimal.NewFromFloat(1.20)
	start := firstOfNextMonth()
	return []*subscription.Subscription{{
		ID:         "demo-irregular-1",
		CustomerID: "cust-carla",
		Mode:       subscription.ModeIrregular,
		Status:     subscription.StatusActive,
		IrregularList: []subscription.DateQuantity{
			{Date: start, Quantity: decimal.NewFromInt(1)},
			{Date: start.AddDays(3), Quantity: decimal.NewFromInt(2)},
			{Date: start.AddDays(4), Quantity: decimal.Zero},
		},
		ProductID:    "milk-1l",
		PricePerUnit: &price,
	}}
}

func buildIndefinitePause() []*subscription.Subscription {
	price := decimal.NewFromFloat(1.20)
	return []*subscription.Subscription{{
		ID:         "demo-paused-1",
		CustomerID: "cust-dara",
		Mode:       subscription.ModeFixedDaily,
		Status:     subscription.StatusPaused,
		DefaultQty: decimal.NewFromInt(1),
		PauseIntervals: []subscription.PauseInterval{
			{Start: firstOfNextMonth()}, // no end: open until resumed
		},
		ProductID:    "milk-1l",
		PricePerUnit: &price,
	}}
}

func firstOfNextMonth() subscription.Date {
	now := time.Now()
	// time.Date normalizes month 13 to January of the next year.
	return subscription.NewDate(now.Year(), now.Month()+1, 1)
}

// =============================================================================
// SCENARIO HANDLERS
// =============================================================================

// ListScenarios returns the available demo scenarios.
func (h *Handler) ListScenarios(w http.ResponseWriter, r *http.Request) {
	dtos := make([]ScenarioDTO, len(scenarios))
	for i, sc := range scenarios {
		dtos[i] = ScenarioDTO{ID: sc.ID, Name: sc.Name, Description: sc.Description}
	}
	writeJSON(w, http.StatusOK, dtos)
}

// LoadScenario seeds the store with one scenario's subscriptions.
func (h *Handler) LoadScenario(w http.ResponseWriter, r *http.Request) {
	var req LoadScenarioRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body", err)
		return
	}

	sc, ok := findScenario(req.ID)
	if !ok {
		writeError(w, http.StatusNotFound, fmt.Sprintf("Unknown scenario %q", req.ID), nil)
		return
	}

	if err := h.seed(r.Context(), sc.Build()); err != nil {
		writeError(w, http.StatusInternalServerError, "Failed to load scenario", err)
		return
	}
	writeJSON(w, http.StatusOK, ScenarioDTO{ID: sc.ID, Name: sc.Name, Description: sc.Description})
}

func (h *Handler) seed(ctx context.Context, subs []*subscription.Subscription) error {
	for _, sub := range subs {
		if err := subscription.Validate(sub); err != nil {
			return fmt.Errorf("scenario fixture %s is invalid: %w", sub.ID, err)
		}
		if err := h.Store.Save(ctx, sub); err != nil {
			return err
		}
	}
	return nil
}

func findScenario(id string) (scenario, bool) {
	for _, sc := range scenarios {
		if sc.ID == id {
			return sc, true
		}
	}
	return scenario{}, false
}
