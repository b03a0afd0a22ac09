package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripwise/backend/internal/domain"
	"github.com/tripwise/backend/internal/repo"
)

// ExpenseService implements business logic for Expense operations.
// It holds both repos because creating or listing expenses under a trip
// requires resolving that trip under the requesting user first — a trip
// owned by someone else must look exactly like a missing trip, and no
// expense data may be touched after a miss.
type ExpenseService struct {
	trips    repo.TripRepo
	expenses repo.ExpenseRepo
}

// NewExpenseService constructs an ExpenseService backed by the provided repos.
func NewExpenseService(trips repo.TripRepo, expenses repo.ExpenseRepo) *ExpenseService {
	return &ExpenseService{trips: trips, expenses: expenses}
}

// Create validates the expense, verifies the parent trip belongs to the user,
// then persists. The owning user is stamped from the authenticated identity.
// Returns domain.ErrNotFound if the trip does not exist for that user.
// Returns domain.ErrValidation if input violates business rules.
func (s *ExpenseService) Create(ctx context.Context, userID uuid.UUID, expense domain.Expense) (domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, userID, expense.TripID); err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	expense.UserID = userID
	if err := validateExpense(expense); err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Create(ctx, expense)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Create: %w", err)
	}
	return result, nil
}

// List returns all of the user's expenses across trips, newest date first,
// each carrying its trip's destination.
// Always returns a non-nil slice so callers can safely range over it.
func (s *ExpenseService) List(ctx context.Context, userID uuid.UUID) ([]domain.Expense, error) {
	expenses, err := s.expenses.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.List: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// ListByTrip returns the user's expenses for one trip, newest date first.
// The parent trip is resolved under the user first; a miss short-circuits
// with domain.ErrNotFound before any expense data is read.
func (s *ExpenseService) ListByTrip(ctx context.Context, userID, tripID uuid.UUID) ([]domain.Expense, error) {
	if _, err := s.trips.GetByID(ctx, userID, tripID); err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	expenses, err := s.expenses.ListByTrip(ctx, userID, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.ExpenseService.ListByTrip: %w", err)
	}
	if expenses == nil {
		return []domain.Expense{}, nil
	}
	return expenses, nil
}

// Update validates and applies a partial update, scoped to the given user.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// expense does not exist for that user.
func (s *ExpenseService) Update(ctx context.Context, userID, expenseID uuid.UUID, upd domain.ExpenseUpdate) (domain.Expense, error) {
	if err := validateExpenseUpdate(upd); err != nil {
		return domain.Expense{}, err
	}
	result, err := s.expenses.Update(ctx, userID, expenseID, upd)
	if err != nil {
		return domain.Expense{}, fmt.Errorf("service.ExpenseService.Update: %w", err)
	}
	return result, nil
}

// Delete removes an expense by ID, scoped to the given user.
// Returns domain.ErrNotFound if the expense does not exist for that user.
func (s *ExpenseService) Delete(ctx context.Context, userID, expenseID uuid.UUID) error {
	if err := s.expenses.Delete(ctx, userID, expenseID); err != nil {
		return fmt.Errorf("service.ExpenseService.Delete: %w", err)
	}
	return nil
}

// validateExpense enforces business rules for new expenses.
//   - Description must be non-empty (whitespace-only is rejected).
//   - Amount must be positive.
//   - Date must be set.
func validateExpense(expense domain.Expense) error {
	if strings.TrimSpace(expense.Description) == "" {
		return fmt.Errorf("%w: description is required", domain.ErrValidation)
	}
	if expense.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	if expense.Date.IsZero() {
		return fmt.Errorf("%w: date is required", domain.ErrValidation)
	}
	return nil
}

// validateExpenseUpdate rejects invalid values on the fields being changed.
func validateExpenseUpdate(upd domain.ExpenseUpdate) error {
	if upd.Description != nil && strings.TrimSpace(*upd.Description) == "" {
		return fmt.Errorf("%w: description must not be empty", domain.ErrValidation)
	}
	if upd.Amount != nil && *upd.Amount <= 0 {
		return fmt.Errorf("%w: amount must be positive", domain.ErrValidation)
	}
	return nil
}
