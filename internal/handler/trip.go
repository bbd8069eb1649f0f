package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

type tripRequest struct {
	Name        optional[string] `json:"name"`
	Description optional[string] `json:"description"`
	StartDate   optional[string] `json:"start_date"`
	EndDate     optional[string] `json:"end_date"`
}

type tripResponse struct {
	ID          uuid.UUID           `json:"id"`
	Name        string              `json:"name"`
	Description *string             `json:"description"`
	StartDate   *openapi_types.Date `json:"start_date"`
	EndDate     *openapi_types.Date `json:"end_date"`
	CreatedAt   time.Time           `json:"created_at"`
	UpdatedAt   time.Time           `json:"updated_at"`
}

// ListTrips handles GET /api/trips.
func (s *Server) ListTrips(w http.ResponseWriter, r *http.Request) {
	trips, err := s.trips.List(r.Context())
	if err != nil {
		s.fail(w, r, err, "Failed to retrieve trips")
		return
	}

	data := make([]tripResponse, len(trips))
	for i, t := range trips {
		data[i] = tripToResponse(t)
	}
	writeData(w, http.StatusOK, data)
}

// CreateTrip handles POST /api/trips.
func (s *Server) CreateTrip(w http.ResponseWriter, r *http.Request) {
	var req tripRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err, "Failed to create trip")
		return
	}

	var trip domain.Trip
	if err := req.applyTo(&trip); err != nil {
		s.fail(w, r, err, "Failed to create trip")
		return
	}

	created, err := s.trips.Save(r.Context(), trip)
	if err != nil {
		s.fail(w, r, err, "Failed to create trip")
		return
	}
	writeData(w, http.StatusCreated, tripToResponse(created))
}

// GetTrip handles GET /api/trips/{id}.
func (s *Server) GetTrip(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Trip", raw)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.failLookup(w, r, err, "Trip", id, "Failed to retrieve trip")
		return
	}
	writeData(w, http.StatusOK, tripToResponse(trip))
}

// UpdateTrip handles PUT /api/trips/{id}. Only keys present in the body
// overwrite the stored trip.
func (s *Server) UpdateTrip(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Trip", raw)
		return
	}

	trip, err := s.trips.GetByID(r.Context(), id)
	if err != nil {
		s.failLookup(w, r, err, "Trip", id, "Failed to update trip")
		return
	}

	var req tripRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err, "Failed to update trip")
		return
	}
	if err := req.applyTo(&trip); err != nil {
		s.fail(w, r, err, "Failed to update trip")
		return
	}

	updated, err := s.trips.Save(r.Context(), trip)
	if err != nil {
		s.fail(w, r, err, "Failed to update trip")
		return
	}
	writeData(w, http.StatusOK, tripToResponse(updated))
}

// DeleteTrip handles DELETE /api/trips/{id}. Days and activities go with it.
func (s *Server) DeleteTrip(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Trip", raw)
		return
	}

	if _, err := s.trips.GetByID(r.Context(), id); err != nil {
		s.failLookup(w, r, err, "Trip", id, "Failed to delete trip")
		return
	}

	removed, err := s.trips.Delete(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "Failed to delete trip")
		return
	}
	if !removed {
		notFound(w, "Trip", raw)
		return
	}
	writeData(w, http.StatusOK, message{Message: "Trip deleted successfully"})
}

// --- mapping helpers --------------------------------------------------------

// applyTo copies every field present in the request onto t.
func (req tripRequest) applyTo(t *domain.Trip) error {
	if req.Name.Set {
		t.Name = req.Name.Value
	}
	if req.Description.Set {
		t.Description = req.Description.Value
	}
	if req.StartDate.Set {
		d, err := parseDate("start_date", req.StartDate)
		if err != nil {
			return err
		}
		t.StartDate = d
	}
	if req.EndDate.Set {
		d, err := parseDate("end_date", req.EndDate)
		if err != nil {
			return err
		}
		t.EndDate = d
	}
	return nil
}

func tripToResponse(t domain.Trip) tripResponse {
	return tripResponse{
		ID:          t.ID,
		Name:        t.Name,
		Description: nilIfEmpty(t.Description),
		StartDate:   date(t.StartDate),
		EndDate:     date(t.EndDate),
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}
