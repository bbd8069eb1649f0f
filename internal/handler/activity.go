package handler

import (
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

type activityRequest struct {
	DayID       optional[string] `json:"day_id"`
	Name        optional[string] `json:"name"`
	Description optional[string] `json:"description"`
	StartTime   optional[string] `json:"start_time"`
	EndTime     optional[string] `json:"end_time"`
	OrderIndex  optional[int]    `json:"order_index"`
}

type orderRequest struct {
	OrderIndex optional[int] `json:"order_index"`
}

type activityResponse struct {
	ID          uuid.UUID `json:"id"`
	DayID       uuid.UUID `json:"day_id"`
	Name        string    `json:"name"`
	Description *string   `json:"description"`
	StartTime   *string   `json:"start_time"`
	EndTime     *string   `json:"end_time"`
	OrderIndex  int       `json:"order_index"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// ListActivities handles GET /api/days/{id}/activities.
func (s *Server) ListActivities(w http.ResponseWriter, r *http.Request) {
	dayID, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Day", raw)
		return
	}

	activities, err := s.activities.ListByDayID(r.Context(), dayID)
	if err != nil {
		s.failLookup(w, r, err, "Day", dayID, "Failed to retrieve activities")
		return
	}

	data := make([]activityResponse, len(activities))
	for i, a := range activities {
		data[i] = activityToResponse(a)
	}
	writeData(w, http.StatusOK, data)
}

// CreateActivity handles POST /api/days/{id}/activities.
func (s *Server) CreateActivity(w http.ResponseWriter, r *http.Request) {
	dayID, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Day", raw)
		return
	}
	if _, err := s.days.GetByID(r.Context(), dayID); err != nil {
		s.failLookup(w, r, err, "Day", dayID, "Failed to create activity")
		return
	}

	var req activityRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err, "Failed to create activity")
		return
	}
	req.DayID = optional[string]{}

	activity := domain.Activity{DayID: dayID}
	if err := req.applyTo(&activity); err != nil {
		s.fail(w, r, err, "Failed to create activity")
		return
	}

	created, err := s.activities.Save(r.Context(), activity)
	if err != nil {
		s.fail(w, r, err, "Failed to create activity")
		return
	}
	writeData(w, http.StatusCreated, activityToResponse(created))
}

// GetActivity handles GET /api/activities/{id}.
func (s *Server) GetActivity(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Activity", raw)
		return
	}

	activity, err := s.activities.GetByID(r.Context(), id)
	if err != nil {
		s.failLookup(w, r, err, "Activity", id, "Failed to retrieve activity")
		return
	}
	writeData(w, http.StatusOK, activityToResponse(activity))
}

// UpdateActivity handles PUT /api/activities/{id}. A day_id in the body moves
// the activity to that day.
func (s *Server) UpdateActivity(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Activity", raw)
		return
	}

	activity, err := s.activities.GetByID(r.Context(), id)
	if err != nil {
		s.failLookup(w, r, err, "Activity", id, "Failed to update activity")
		return
	}

	var req activityRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err, "Failed to update activity")
		return
	}
	if err := req.applyTo(&activity); err != nil {
		s.fail(w, r, err, "Failed to update activity")
		return
	}

	updated, err := s.activities.Save(r.Context(), activity)
	if err != nil {
		s.fail(w, r, err, "Failed to update activity")
		return
	}
	writeData(w, http.StatusOK, activityToResponse(updated))
}

// UpdateActivityOrder handles PATCH /api/activities/{id}/order.
func (s *Server) UpdateActivityOrder(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Activity", raw)
		return
	}

	var req orderRequest
	if err := decodeBody(r, &req); err != nil {
		s.fail(w, r, err, "Failed to update activity order")
		return
	}
	if !req.OrderIndex.Set || req.OrderIndex.Null {
		s.fail(w, r, domain.Invalid(domain.KindMissing, "order_index", "order_index is required"), "")
		return
	}

	updated, err := s.activities.UpdateOrder(r.Context(), id, req.OrderIndex.Value)
	if err != nil {
		s.fail(w, r, err, "Failed to update activity order")
		return
	}
	writeData(w, http.StatusOK, activityToResponse(updated))
}

// DeleteActivity handles DELETE /api/activities/{id}.
func (s *Server) DeleteActivity(w http.ResponseWriter, r *http.Request) {
	id, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Activity", raw)
		return
	}

	if _, err := s.activities.GetByID(r.Context(), id); err != nil {
		s.failLookup(w, r, err, "Activity", id, "Failed to delete activity")
		return
	}

	removed, err := s.activities.Delete(r.Context(), id)
	if err != nil {
		s.fail(w, r, err, "Failed to delete activity")
		return
	}
	if !removed {
		notFound(w, "Activity", raw)
		return
	}
	writeData(w, http.StatusOK, message{Message: "Activity deleted successfully"})
}

// --- mapping helpers --------------------------------------------------------

func (req activityRequest) applyTo(a *domain.Activity) error {
	if req.DayID.Set {
		dayID, err := parseRef("day_id", req.DayID)
		if err != nil {
			return err
		}
		a.DayID = dayID
	}
	if req.Name.Set {
		a.Name = req.Name.Value
	}
	if req.Description.Set {
		a.Description = req.Description.Value
	}
	if req.StartTime.Set {
		t, err := parseTime("start_time", req.StartTime)
		if err != nil {
			return err
		}
		a.StartTime = t
	}
	if req.EndTime.Set {
		t, err := parseTime("end_time", req.EndTime)
		if err != nil {
			return err
		}
		a.EndTime = t
	}
	if req.OrderIndex.Set {
		a.OrderIndex = req.OrderIndex.Value
	}
	return nil
}

func activityToResponse(a domain.Activity) activityResponse {
	return activityResponse{
		ID:          a.ID,
		DayID:       a.DayID,
		Name:        a.Name,
		Description: nilIfEmpty(a.Description),
		StartTime:   timeOfDay(a.StartTime),
		EndTime:     timeOfDay(a.EndTime),
		OrderIndex:  a.OrderIndex,
		CreatedAt:   a.CreatedAt,
		UpdatedAt:   a.UpdatedAt,
	}
}
