package service

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/tripwise/backend/internal/domain"
	"github.com/tripwise/backend/internal/predictor"
	"github.com/tripwise/backend/internal/repo"
)

// Predictor is the external spending-prediction collaborator.
// Defined here (in the consumer package) so tests can inject a double and the
// service never depends on the concrete HTTP client.
type Predictor interface {
	Predict(ctx context.Context, req predictor.Request) (json.RawMessage, error)
}

// InsightService produces a spending insight for a trip: predicted total,
// budget status, and recommendations. The external predictor is the primary
// path; a deterministic local heuristic covers every predictor failure, so a
// dead prediction service is invisible to API callers.
type InsightService struct {
	trips     repo.TripRepo
	expenses  repo.ExpenseRepo
	predictor Predictor
	log       *slog.Logger
}

// NewInsightService constructs an InsightService backed by the provided repos
// and predictor.
func NewInsightService(trips repo.TripRepo, expenses repo.ExpenseRepo, p Predictor, log *slog.Logger) *InsightService {
	return &InsightService{trips: trips, expenses: expenses, predictor: p, log: log}
}

// ForTrip returns the insight for the user's trip as a raw JSON document:
// the predictor's body verbatim on success, or the serialized local fallback.
// Returns domain.ErrNotFound if the trip does not exist for that user — that
// is the only error surfaced from this method besides storage faults.
func (s *InsightService) ForTrip(ctx context.Context, userID, tripID uuid.UUID) (json.RawMessage, error) {
	trip, err := s.trips.GetByID(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.InsightService.ForTrip: %w", err)
	}

	expenses, err := s.expenses.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.InsightService.ForTrip: %w", err)
	}

	records := make([]predictor.ExpenseRecord, len(expenses))
	for i, e := range expenses {
		records[i] = predictor.ExpenseRecord{Amount: e.Amount, Category: e.Category, Date: e.Date}
	}

	body, err := s.predictor.Predict(ctx, predictor.Request{
		Expenses:     records,
		Budget:       trip.Budget,
		TripDuration: trip.DurationDays(),
	})
	if err == nil {
		return body, nil
	}

	// Predictor failures never propagate past this point.
	s.log.WarnContext(ctx, "predictor unavailable, using local fallback",
		"trip_id", tripID, "error", err)

	fallback, err := json.Marshal(FallbackInsight(trip, expenses))
	if err != nil {
		return nil, fmt.Errorf("service.InsightService.ForTrip: marshal fallback: %w", err)
	}
	return fallback, nil
}

// FallbackInsight computes the deterministic local heuristic:
// a flat 20% extrapolation over current spending, an over-budget flag once
// the budget is fully consumed, and three fixed-shape recommendations.
//
// The "average daily spending" figure is total spent divided by the number of
// expense records, not by elapsed days; the wording is kept for compatibility
// with existing consumers of the response.
func FallbackInsight(trip domain.Trip, expenses []domain.Expense) domain.Insight {
	var total float64
	for _, e := range expenses {
		total += e.Amount
	}

	remaining := trip.Budget - total

	count := len(expenses)
	if count < 1 {
		count = 1
	}
	avgPerExpense := total / float64(count)

	status := domain.BudgetOnTrack
	if remaining <= 0 {
		status = domain.BudgetOver
	}

	first := "You are within budget. Keep tracking!"
	if remaining < 0 {
		first = "You are over budget. Consider reducing expenses."
	}

	return domain.Insight{
		PredictedSpending: total * 1.2,
		BudgetStatus:      status,
		Recommendations: []string{
			first,
			fmt.Sprintf("Your average daily spending is $%.2f", avgPerExpense),
			"Try to categorize expenses for better insights",
		},
	}
}
