package domain

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents a user-owned spending record attached to exactly one
// trip. An expense's trip always belongs to the same user as the expense;
// the service layer enforces this by resolving the trip under the requesting
// user before any expense write.
type Expense struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"user_id"`
	TripID      uuid.UUID `json:"trip_id"`
	Description string    `json:"description"`
	Amount      float64   `json:"amount"`
	Category    string    `json:"category,omitempty"`
	Date        time.Time `json:"date"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// TripDestination is populated only by the cross-trip listing query,
	// which joins the parent trip. Empty elsewhere.
	TripDestination string `json:"trip_destination,omitempty"`
}

// ExpenseUpdate enumerates the mutable fields of an expense for partial
// updates. Nil means "leave unchanged". UserID and TripID are absent on
// purpose: an expense can never be moved to another user or trip.
type ExpenseUpdate struct {
	Description *string    `json:"description,omitempty"`
	Amount      *float64   `json:"amount,omitempty"`
	Category    *string    `json:"category,omitempty"`
	Date        *time.Time `json:"date,omitempty"`
}
