package handler

import (
	"net/http"
	"time"

	"github.com/tripwise/backend/internal/domain"
)

// createTripRequest is the body for POST /api/trips. It enumerates exactly
// the client-settable fields; ownership is stamped server-side.
type createTripRequest struct {
	Destination string   `json:"destination"`
	StartDate   jsonDate `json:"start_date"`
	EndDate     jsonDate `json:"end_date"`
	Budget      float64  `json:"budget"`
	Description string   `json:"description"`
	Status      string   `json:"status"`
}

// updateTripRequest is the body for PUT /api/trips/{id}. Absent fields are
// left unchanged.
type updateTripRequest struct {
	Destination *string   `json:"destination"`
	StartDate   *jsonDate `json:"start_date"`
	EndDate     *jsonDate `json:"end_date"`
	Budget      *float64  `json:"budget"`
	Description *string   `json:"description"`
	Status      *string   `json:"status"`
}

// deletedResponse confirms a successful hard delete.
type deletedResponse struct {
	Message string `json:"message"`
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}

	var req createTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	created, err := s.trips.Create(r.Context(), userID, domain.Trip{
		Destination: req.Destination,
		StartDate:   req.StartDate.Time,
		EndDate:     req.EndDate.Time,
		Budget:      req.Budget,
		Description: req.Description,
		Status:      domain.TripStatus(req.Status),
	})
	if err != nil {
		s.renderDomainError(w, r, err, "trip")
		return
	}

	respondJSON(w, http.StatusCreated, created)
}

// ListTrips handles GET /api/trips. Trips are returned newest first.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}

	trips, err := s.trips.List(r.Context(), userID)
	if err != nil {
		s.renderDomainError(w, r, err, "trip")
		return
	}

	respondJSON(w, http.StatusOK, trips)
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id", "trip")
	if !ok {
		return
	}

	trip, err := s.trips.GetByID(r.Context(), userID, tripID)
	if err != nil {
		s.renderDomainError(w, r, err, "trip")
		return
	}

	respondJSON(w, http.StatusOK, trip)
}

// UpdateTrip handles PUT /api/trips/{id}.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id", "trip")
	if !ok {
		return
	}

	var req updateTripRequest
	if !decodeBody(w, r, &req) {
		return
	}

	upd := domain.TripUpdate{
		Destination: req.Destination,
		StartDate:   datePtr(req.StartDate),
		EndDate:     datePtr(req.EndDate),
		Budget:      req.Budget,
		Description: req.Description,
	}
	if req.Status != nil {
		status := domain.TripStatus(*req.Status)
		upd.Status = &status
	}

	updated, err := s.trips.Update(r.Context(), userID, tripID, upd)
	if err != nil {
		s.renderDomainError(w, r, err, "trip")
		return
	}

	respondJSON(w, http.StatusOK, updated)
}

// DeleteTrip handles DELETE /api/trips/{id}.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	userID, ok := s.identity(w, r)
	if !ok {
		return
	}
	tripID, ok := pathUUID(w, r, "id", "trip")
	if !ok {
		return
	}

	if err := s.trips.Delete(r.Context(), userID, tripID); err != nil {
		s.renderDomainError(w, r, err, "trip")
		return
	}

	respondJSON(w, http.StatusOK, deletedResponse{Message: "trip deleted"})
}

// datePtr converts an optional jsonDate into the *time.Time the domain
// update types carry.
func datePtr(d *jsonDate) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time
	return &t
}
