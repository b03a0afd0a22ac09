// Package domain contains the core data types for the TripWise API.
// This package has no dependencies beyond uuid and is imported by every other
// internal package (repo, service, handler).
package domain

import (
	"time"

	"github.com/google/uuid"
)

// TripStatus is the lifecycle state of a trip.
type TripStatus string

const (
	StatusPlanned   TripStatus = "planned"
	StatusOngoing   TripStatus = "ongoing"
	StatusCompleted TripStatus = "completed"
)

// Valid reports whether s is one of the three known trip statuses.
func (s TripStatus) Valid() bool {
	switch s {
	case StatusPlanned, StatusOngoing, StatusCompleted:
		return true
	}
	return false
}

// Trip represents a user-owned planned journey with a budget and date range.
// A trip is the top-level aggregate; expenses belong to a trip.
// UserID is always stamped from the authenticated identity, never taken
// from client input.
type Trip struct {
	ID          uuid.UUID  `json:"id"`
	UserID      uuid.UUID  `json:"user_id"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Budget      float64    `json:"budget"`
	Description string     `json:"description,omitempty"`
	Status      TripStatus `json:"status"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

// DurationDays returns the trip length in whole days, rounded up, floored at
// one day. The predictor contract expects a positive integer day count.
func (t Trip) DurationDays() int {
	d := t.EndDate.Sub(t.StartDate)
	days := int(d / (24 * time.Hour))
	if d%(24*time.Hour) > 0 {
		days++
	}
	if days < 1 {
		days = 1
	}
	return days
}

// TripUpdate enumerates the mutable fields of a trip for partial updates.
// Nil means "leave unchanged". Ownership fields are deliberately absent so a
// client can never reassign a trip to another user.
type TripUpdate struct {
	Destination *string     `json:"destination,omitempty"`
	StartDate   *time.Time  `json:"start_date,omitempty"`
	EndDate     *time.Time  `json:"end_date,omitempty"`
	Budget      *float64    `json:"budget,omitempty"`
	Description *string     `json:"description,omitempty"`
	Status      *TripStatus `json:"status,omitempty"`
}
