// Package handler implements the HTTP handlers for the TripWise API.
// Handlers are methods on Server, split into resource-specific files
// (health.go, trip.go, expense.go) that all share the same struct so they
// can access its dependencies. Handlers do three things only: decode and
// sanity-check the request, call a service with the authenticated user's ID,
// and encode the result — business rules live in the service layer.
package handler

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/tripwise/backend/internal/domain"
	"github.com/tripwise/backend/internal/middleware"
	"github.com/tripwise/backend/spec"
)

// TripServicer defines the business operations the trip handlers depend on.
// Defining the interface here (in the consumer package) follows the Go
// convention: "accept interfaces, return concrete types". It lets handler
// tests inject a mock without touching the database or service layer.
type TripServicer interface {
	Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error)
	GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error)
	Update(ctx context.Context, userID, tripID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error)
	Delete(ctx context.Context, userID, tripID uuid.UUID) error
}

// ExpenseServicer defines the business operations the expense handlers depend on.
type ExpenseServicer interface {
	Create(ctx context.Context, userID uuid.UUID, expense domain.Expense) (domain.Expense, error)
	List(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error)
	ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error)
	Update(ctx context.Context, userID, expenseID uuid.UUID, upd domain.ExpenseUpdate) (domain.Expense, error)
	Delete(ctx context.Context, userID, expenseID uuid.UUID) error
}

// InsightServicer produces the spending insight document for a trip.
type InsightServicer interface {
	ForTrip(ctx context.Context, userID, tripID uuid.UUID) (json.RawMessage, error)
}

// Server holds the handlers' dependencies.
type Server struct {
	trips    TripServicer
	expenses ExpenseServicer
	insights InsightServicer
	log      *slog.Logger
}

// NewServer constructs the Server with all its dependencies.
func NewServer(trips TripServicer, expenses ExpenseServicer, insights InsightServicer, log *slog.Logger) *Server {
	return &Server{trips: trips, expenses: expenses, insights: insights, log: log}
}

// Routes returns the API router. auth wraps every trip and expense route;
// the health check and the OpenAPI document stay public. Tests pass a stub
// auth that injects a fixed identity.
func (s *Server) Routes(auth func(http.Handler) http.Handler) http.Handler {
	r := chi.NewRouter()

	r.Route("/api", func(api chi.Router) {
		api.Get("/health", s.GetHealth)

		api.Group(func(protected chi.Router) {
			protected.Use(auth)

			protected.Route("/trips", func(tr chi.Router) {
				tr.Post("/", s.CreateTrip)
				tr.Get("/", s.ListTrips)
				tr.Get("/{id}", s.GetTrip)
				tr.Put("/{id}", s.UpdateTrip)
				tr.Delete("/{id}", s.DeleteTrip)
			})

			protected.Route("/expenses", func(ex chi.Router) {
				ex.Post("/", s.CreateExpense)
				ex.Get("/", s.ListExpenses)
				ex.Get("/trip/{tripID}", s.ListExpensesByTrip)
				ex.Post("/ai-insights", s.GetInsights)
				ex.Put("/{id}", s.UpdateExpense)
				ex.Delete("/{id}", s.DeleteExpense)
			})
		})
	})

	r.Get("/openapi.yaml", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		_, _ = w.Write(spec.OpenAPI)
	})

	return r
}

// identity reads the authenticated user placed in context by the auth
// middleware. A missing identity on a protected route is a wiring bug, not a
// client error, and is reported as a 500.
func (s *Server) identity(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	userID, ok := middleware.UserID(r.Context())
	if !ok {
		s.log.ErrorContext(r.Context(), "no identity on protected route", "path", r.URL.Path)
		respondError(w, http.StatusInternalServerError, "internal", "internal server error")
		return uuid.Nil, false
	}
	return userID, true
}

// pathUUID parses a UUID path parameter. A malformed UUID cannot match any
// resource, so it is reported as not-found rather than a bad request.
func pathUUID(w http.ResponseWriter, r *http.Request, param, resource string) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, param))
	if err != nil {
		respondError(w, http.StatusNotFound, "not_found", resource+" not found")
		return uuid.Nil, false
	}
	return id, true
}

// decodeBody decodes the request body into dst, rejecting unknown fields.
// This is the mass-assignment guard: ownership fields like user_id are not
// in any request DTO, so a body carrying them fails decoding outright.
func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		respondError(w, http.StatusUnprocessableEntity, "validation_error", "invalid request body: "+err.Error())
		return false
	}
	return true
}
