/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack and route definitions. This is
  the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. CORS:       Cross-origin requests for the staff frontend

ROUTE GROUPS:
  /api/subscriptions/*   Subscription documents, computations, lifecycle
  /api/forecast          Aggregate procurement demand
  /api/scenarios/*       Demo scenarios

SECURITY NOTE:
  No authentication middleware. All endpoints are public; auth is handled
  upstream by the platform gateway.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler) *chi.Mux {
	r := chi.NewRouter()

	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:5173", "http://localhost:8080"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	r.Route("/api", func(r chi.Router) {
		r.Route("/subscriptions", func(r chi.Router) {
			r.Get("/", h.ListSubscriptions)
			r.Post("/", h.CreateSubscription)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.GetSubscription)
				r.Put("/", h.UpdateSubscription)

				// Computed views
				r.Get("/quantity", h.GetQuantity)
				r.Get("/deliveries", h.GetDeliveries)
				r.Get("/pending-irregular", h.GetPendingIrregular)
				r.Get("/calendar", h.GetCalendarSummary)

				// Lifecycle mutations
				r.Post("/pause", h.PauseSubscription)
				r.Post("/resume", h.ResumeSubscription)
				r.Post("/stop", h.StopSubscription)

				// Override appends
				r.Post("/overrides", h.AddDayOverrides)
				r.Post("/irregular", h.AddIrregularEntries)
			})
		})

		r.Get("/forecast", h.GetForecast)

		r.Route("/scenarios", func(r chi.Router) {
			r.Get("/", h.ListScenarios)
			r.Post("/load", h.LoadScenario)
		})
	})

	return r
}
