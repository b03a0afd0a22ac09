// Package service contains the business logic for the TripWise API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here — services depend on repo interfaces, not implementations.
//
// Every operation takes the requesting user's ID explicitly; there is no
// ambient identity state anywhere below the auth middleware.
package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/tripwise/backend/internal/domain"
	"github.com/tripwise/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo) *TripService {
	return &TripService{repo: r}
}

// Create validates and persists a new trip for the given user.
// The owning user is stamped here from the authenticated identity; any
// user_id in the input is overwritten.
func (s *TripService) Create(ctx context.Context, userID uuid.UUID, trip domain.Trip) (domain.Trip, error) {
	trip.UserID = userID
	if trip.Status == "" {
		trip.Status = domain.StatusPlanned
	}
	if err := validateTrip(trip); err != nil {
		return domain.Trip{}, err
	}
	result, err := s.repo.Create(ctx, trip)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return result, nil
}

// GetByID returns a single trip by ID, scoped to the given user.
// Returns domain.ErrNotFound if the trip does not exist for that user.
func (s *TripService) GetByID(ctx context.Context, userID, tripID uuid.UUID) (domain.Trip, error) {
	result, err := s.repo.GetByID(ctx, userID, tripID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return result, nil
}

// List returns all of the user's trips, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, userID uuid.UUID) ([]domain.Trip, error) {
	trips, err := s.repo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update validates and applies a partial update, scoped to the given user.
// Returns domain.ErrValidation for invalid input, domain.ErrNotFound if the
// trip does not exist for that user.
func (s *TripService) Update(ctx context.Context, userID, tripID uuid.UUID, upd domain.TripUpdate) (domain.Trip, error) {
	if err := validateTripUpdate(upd); err != nil {
		return domain.Trip{}, err
	}
	if upd.StartDate != nil || upd.EndDate != nil {
		// A single new date must stay consistent with the stored other date.
		// The pre-read is ownership-scoped like everything else.
		current, err := s.repo.GetByID(ctx, userID, tripID)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
		}
		start, end := current.StartDate, current.EndDate
		if upd.StartDate != nil {
			start = *upd.StartDate
		}
		if upd.EndDate != nil {
			end = *upd.EndDate
		}
		if end.Before(start) {
			return domain.Trip{}, fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
		}
	}
	result, err := s.repo.Update(ctx, userID, tripID, upd)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Update: %w", err)
	}
	return result, nil
}

// Delete removes a trip by ID, scoped to the given user. The database
// cascades the delete to the trip's expenses.
func (s *TripService) Delete(ctx context.Context, userID, tripID uuid.UUID) error {
	if err := s.repo.Delete(ctx, userID, tripID); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// validateTrip enforces business rules common to Create and post-Update state.
//   - Destination must be non-empty (whitespace-only is rejected).
//   - Dates must be set, and end_date must not be before start_date.
//   - Budget must not be negative.
//   - Status must be one of the known lifecycle values.
func validateTrip(trip domain.Trip) error {
	if strings.TrimSpace(trip.Destination) == "" {
		return fmt.Errorf("%w: destination is required", domain.ErrValidation)
	}
	if trip.StartDate.IsZero() || trip.EndDate.IsZero() {
		return fmt.Errorf("%w: start_date and end_date are required", domain.ErrValidation)
	}
	if trip.EndDate.Before(trip.StartDate) {
		return fmt.Errorf("%w: end_date must not be before start_date", domain.ErrValidation)
	}
	if trip.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	if !trip.Status.Valid() {
		return fmt.Errorf("%w: status must be planned, ongoing, or completed", domain.ErrValidation)
	}
	return nil
}

// validateTripUpdate rejects field values that are invalid regardless of the
// stored record. Cross-field date consistency is checked on the post-update
// state in Update.
func validateTripUpdate(upd domain.TripUpdate) error {
	if upd.Destination != nil && strings.TrimSpace(*upd.Destination) == "" {
		return fmt.Errorf("%w: destination must not be empty", domain.ErrValidation)
	}
	if upd.Budget != nil && *upd.Budget < 0 {
		return fmt.Errorf("%w: budget must not be negative", domain.ErrValidation)
	}
	if upd.Status != nil && !upd.Status.Valid() {
		return fmt.Errorf("%w: status must be planned, ongoing, or completed", domain.ErrValidation)
	}
	return nil
}
