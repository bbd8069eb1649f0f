package domain

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// Day is a dated, numbered subdivision of a trip.
// (TripID, DayNumber) is unique across all days.
type Day struct {
	ID        uuid.UUID
	TripID    uuid.UUID
	Date      time.Time
	DayNumber int
	CreatedAt time.Time
}

// Validate checks required fields. Parent existence and day number uniqueness
// need the store and are enforced by the service and repo layers.
func (d Day) Validate() error {
	if d.TripID == uuid.Nil {
		return Invalid(KindMissing, "trip_id", "Trip ID is required")
	}
	if d.Date.IsZero() {
		return Invalid(KindMissing, "date", "Date is required")
	}
	if d.DayNumber < 1 {
		return Invalid(KindRange, "day_number", "Day number must be positive")
	}
	if d.DayNumber > math.MaxInt32 {
		return Invalid(KindRange, "day_number", "Day number must be at most %d", math.MaxInt32)
	}
	return nil
}
