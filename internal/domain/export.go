package domain

import "github.com/google/uuid"

// ExportRow is a single row in a trip itinerary export.
// It is a flat, denormalized view: one row per activity, with trip and day
// fields repeated for every activity on that day. Days with no activities yield
// one row with zero values for all activity fields.
type ExportRow struct {
	// Trip fields, repeated on every row.
	TripID        uuid.UUID
	TripName      string
	TripStartDate string // "2006-01-02", empty when unset
	TripEndDate   string

	// Day fields, repeated for every activity on the day.
	DayNumber int
	DayDate   string

	// Activity fields, zero values when the day has no activities.
	ActivityName        string
	ActivityDescription string
	StartTime           *TimeOfDay
	EndTime             *TimeOfDay
	OrderIndex          int
}
