package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

type dayRequest struct {
	TripID    optional[string] `json:"trip_id"`
	Date      optional[string] `json:"date"`
	DayNumber optional[int]    `json:"day_number"`
}

type dayResponse struct {
	ID        uuid.UUID          `json:"id"`
	TripID    uuid.UUID          `json:"trip_id"`
	Date      openapi_types.Date `json:"date"`
	DayNumber int                `json:"day_number"`
	CreatedAt time.Time          `json:"created_at"`
}

// ListDays handles GET /api/trips/{id}/days.
func (s *Server) ListDays(w http.ResponseWriter, r *http.Request) {
	tripID, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Trip", raw)
		return
	}

	days, err := s.days.ListByTripID(r.Context(), tripID)
	if err != nil {
		s.failLookup(w, r, err, "Trip", tripID, "Failed to retrieve days")
		return
	}

	data := make([]dayResponse, len(days))
	for i, d := range days {
		data[i] = dayToResponse(d)
	}
	writeData(w, http.StatusOK, data)
}

// CreateDay handles POST /api/trips/{id}/days. The trip comes from the path;
// a trip_id in the body is ignored.
func (s *Server) CreateDay(w http.ResponseWriter, r *http.Request) {
	tripID, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Trip", raw)
		return
	}
	if _, err := s.trips.GetByID(r.Context(), tripID); err != nil {
		s.failLookup(w, r, err, "Trip", tripID, "Failed to create day")
		return
	}

	var req dayRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err, "Failed to create day")
		return
	}
	req.TripID = optional[string]{}

	day := domain.Day{TripID: tripID}
	if err := req.applyTo(&day); err != nil {
		s.fail(w, r, err, "Failed to create day")
		return
	}

	created, err := s.days.Save(r.Context(), day)
	if err != nil {
		s.fail(w, r, err, "Failed to create day")
		return
	}
	writeData(w, http.StatusCreated, dayToResponse(created))
}

// GetDay handles GET /api/days/{id}.
func (s *Server) GetDay(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Day", raw)
		return
	}

	day, err := s.days.GetByID(r.Context(), id)
	if err != nil {
		s.failLookup(w, r, err, "Day", id, "Failed to retrieve day")
		return
	}
	writeData(w, http.StatusOK, dayToResponse(day))
}

// UpdateDay handles PUT /api/days/{id}. A trip_id in the body moves the day
// to that trip.
func (s *Server) UpdateDay(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Day", raw)
		return
	}

	day, err := s.days.GetByID(r.Context(), id)
	if err != nil {
		s.failLookup(w, r, err, "Day", id, "Failed to update day")
		return
	}

	var req dayRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err, "Failed to update day")
		return
	}
	if err := req.applyTo(&day); err != nil {
		s.fail(w, r, err, "Failed to update day")
		return
	}

	updated, err := s.days.Save(r.Context(), day)
	if err != nil {
		s.fail(w, r, err, "Failed to update day")
		return
	}
	writeData(w, http.StatusOK, dayToResponse(updated))
}

// DeleteDay handles DELETE /api/days/{id}.
func (s *Server) DeleteDay(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Day", raw)
		return
	}

	if _, err := s.days.GetByID(r.Context(), id); err != nil {
		s.failLookup(w, r, err, "Day", id, "Failed to delete day")
		return
	}

	removed, err := s.days.Delete(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "Failed to delete day")
		return
	}
	if !removed {
		notFound(w, "Day", raw)
		return
	}
	writeData(w, http.StatusOK, message{Message: "Day deleted successfully"})
}

// --- mapping helpers --------------------------------------------------------

func (req dayRequest) applyTo(d *domain.Day) error {
	if req.TripID.Set {
		tripID, err := parseRef("trip_id", req.TripID)
		if err != nil {
			return err
		}
		d.TripID = tripID
	}
	if req.Date.Set {
		parsed, err := parseDate("date", req.Date)
		if err != nil {
			return err
		}
		d.Date = time.Time{}
		if parsed != nil {
			d.Date = *parsed
		}
	}
	if req.DayNumber.Set {
		d.DayNumber = req.DayNumber.Value
	}
	return nil
}

func dayToResponse(d domain.Day) dayResponse {
	return dayResponse{
		ID:        d.ID,
		TripID:    d.TripID,
		Date:      openapi_types.Date{Time: d.Date},
		DayNumber: d.DayNumber,
		CreatedAt: d.CreatedAt,
	}
}
