package handler

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// csvHeaders defines the column names written as the first row of any CSV export.
var csvHeaders = []string{
	"trip_id", "trip_name", "trip_start_date", "trip_end_date",
	"day_number", "day_date",
	"activity_name", "activity_description", "start_time", "end_time", "order_index",
}

type exportRowResponse struct {
	TripID              uuid.UUID `json:"trip_id"`
	TripName            string    `json:"trip_name"`
	TripStartDate       *string   `json:"trip_start_date"`
	TripEndDate         *string   `json:"trip_end_date"`
	DayNumber           *int      `json:"day_number"`
	DayDate             *string   `json:"day_date"`
	ActivityName        *string   `json:"activity_name"`
	ActivityDescription *string   `json:"activity_description"`
	StartTime           *string   `json:"start_time"`
	EndTime             *string   `json:"end_time"`
	OrderIndex          *int      `json:"order_index"`
}

// ExportTrip handles GET /api/trips/{id}/export.
// Use ?format=csv to receive CSV; default is a JSON envelope.
func (s *Server) ExportTrip(w http.ResponseWriter, r *http.Request) {
	tripID, raw, ok := pathID(r)
	if !ok {
		notFound(w, "Trip", raw)
		return
	}

	format := r.URL.Query().Get("format")
	if format != "" && format != "json" && format != "csv" {
		s.fail(w, r, domain.Invalid(domain.KindFormat, "format", "format must be json or csv"), "")
		return
	}

	rows, err := s.export.Export(r.Context(), tripID)
	if err != nil {
		s.failLookup(w, r, err, "Trip", tripID, "Failed to export trip")
		return
	}

	if format == "csv" {
		writeCSV(w, tripID, rows)
		return
	}

	data := make([]exportRowResponse, len(rows))
	for i, row := range rows {
		data[i] = exportRowToResponse(row)
	}
	writeData(w, http.StatusOK, data)
}

// writeCSV encodes rows as CSV with a header line.
func writeCSV(w http.ResponseWriter, tripID uuid.UUID, rows []domain.ExportRow) {
	var buf bytes.Buffer
	cw := csv.NewWriter(&buf)

	//nolint:errcheck // bytes.Buffer.Write never returns an error.
	cw.Write(csvHeaders)
	for _, row := range rows {
		//nolint:errcheck
		cw.Write(exportRowToRecord(row))
	}
	cw.Flush()

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="trip-%s.csv"`, tripID))
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	w.Write(buf.Bytes())
}

// exportRowToRecord flattens a row into CSV cells. Absent values are empty cells.
func exportRowToRecord(r domain.ExportRow) []string {
	var dayNumber, orderIndex string
	if r.DayNumber > 0 {
		dayNumber = strconv.Itoa(r.DayNumber)
	}
	if r.ActivityName != "" {
		orderIndex = strconv.Itoa(r.OrderIndex)
	}
	return []string{
		r.TripID.String(),
		r.TripName,
		r.TripStartDate,
		r.TripEndDate,
		dayNumber,
		r.DayDate,
		r.ActivityName,
		r.ActivityDescription,
		deref(timeOfDay(r.StartTime)),
		deref(timeOfDay(r.EndTime)),
		orderIndex,
	}
}

// exportRowToResponse maps a row to JSON; fields a row does not carry become null.
func exportRowToResponse(r domain.ExportRow) exportRowResponse {
	resp := exportRowResponse{
		TripID:        r.TripID,
		TripName:      r.TripName,
		TripStartDate: nilIfEmpty(r.TripStartDate),
		TripEndDate:   nilIfEmpty(r.TripEndDate),
		DayDate:       nilIfEmpty(r.DayDate),
	}
	if r.DayNumber > 0 {
		n := r.DayNumber
		resp.DayNumber = &n
	}
	if r.ActivityName != "" {
		idx := r.OrderIndex
		resp.ActivityName = &r.ActivityName
		resp.ActivityDescription = nilIfEmpty(r.ActivityDescription)
		resp.StartTime = timeOfDay(r.StartTime)
		resp.EndTime = timeOfDay(r.EndTime)
		resp.OrderIndex = &idx
	}
	return resp
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
