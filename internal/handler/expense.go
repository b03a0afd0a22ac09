package handler

import (
	"net/http"

	"github.com/google/uuid"

	"github.com/tripwise/backend/internal/domain"
)

// createExpenseRequest is the body for POST /api/expenses. The trip is named
// by the client but its ownership is verified server-side before anything is
// written; the owning user is never client-settable.
type createExpenseRequest struct {
	TripID      uuid.UUID `json:"trip_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category"`
	Date        jsonDate  `json:"date"`
}

// updateExpenseRequest is the body for PUT /api/expenses/{id}. Absent fields
// are left unchanged. There is deliberately no trip_id: expenses cannot move
// between trips.
type updateExpenseRequest struct {
	Description *string   `json:"description"`
	Amount      *float64  `json:"amount"`
	Category    *string   `json:"category"`
	Date        *jsonDate `json:"date"`
}

// insightsRequest is the body for POST /api/expenses/ai-insights.
type insightsRequest struct {
	TripID uuid.UUID `json:"trip_id"`
}

// CreateExpense handles POST /api/expenses.
func (s *Server) CreateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req createExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.expenses.Create(r.Context(), userID, domain.Expense{
		TripID:      req.TripID,
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        req.Date.Time,
	})
	if err != nil {
		s.renderDomainError(w, r, err, "trip")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListExpenses handles GET /api/expenses. Expenses across all of the user's
// trips, newest date first, each carrying its trip's destination.
func (s *Server) ListExpenses(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}

	expenses, err := s.expenses.List(r.Context(), userID)
	if err != nil {
		s.renderDomainError(w, r, err, "expense")
		return
	}

	respondJSON(w, http.StatusOK, expenses)
}

// ListExpensesByTrip handles GET /api/expenses/trip/{tripID}.
func (s *Server) ListExpensesByTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "tripID", "trip")
	if !ok {
		return
	}

	expenses, err := s.expenses.ListByTrip(r.Context(), userID, tripID)
	if err != nil {
		s.renderDomainError(w, r, err, "trip")
		return
	}

	respondJSON(w, http.StatusOK, expenses)
}

// GetInsights handles POST /api/expenses/ai-insights.
// The response body is either the external predictor's document verbatim or
// the local fallback — the client cannot tell which path produced it.
func (s *Server) GetInsights(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req insightsRequest
	if !decodeBody(w, r, &req) {
		return
	}

	insight, err := s.insights.ForTrip(r.Context(), userID, req.TripID)
	if err != nil {
		s.renderDomainError(w, r, err, "trip")
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(insight)
}

// UpdateExpense handles PUT /api/expenses/{id}.
func (s *Server) UpdateExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "id", "expense")
	if !ok {
		return
	}

	var req updateExpenseRequest
	if !decodeBody(w, r, &req) {
		return
	}

	updated, err := s.expenses.Update(r.Context(), userID, expenseID, domain.ExpenseUpdate{
		Description: req.Description,
		Amount:      req.Amount,
		Category:    req.Category,
		Date:        datePtr(req.Date),
	})
	if err != nil {
		s.renderDomainError(w, r, err, "expense")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteExpense handles DELETE /api/expenses/{id}.
func (s *Server) DeleteExpense(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}
	expenseID, ok := pathUUID(w, r, "id", "expense")
	if !ok {
		return
	}

	if err := s.expenses.Delete(r.Context(), userID, expenseID); err != nil {
		s.renderDomainError(w, r, err, "expense")
		return
	}

	respondJSON(w, http.StatusOK, deletedResponse{Message: "expense deleted"})
}
