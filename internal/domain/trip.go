// Package domain contains the core data types for the Travel Planner API and the
// validation rules that guard them. It is imported by every other internal
// package (repo, service, handler).
package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

// MaxNameLength bounds trip and activity names, counted in characters.
const MaxNameLength = 255

// Trip is the top-level itinerary container; days belong to a trip.
// StartDate and EndDate are optional calendar dates (time at UTC midnight).
type Trip struct {
	ID          uuid.UUID
	Name        string
	Description string
	StartDate   *time.Time
	EndDate     *time.Time
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate enforces the trip rules:
//   - Name must be non-blank and at most MaxNameLength characters.
//   - If both dates are set, StartDate must not be after EndDate. Equal dates are allowed.
func (t Trip) Validate() error {
	if err := validateName("Trip", t.Name); err != nil {
		return err
	}
	if t.StartDate != nil && t.EndDate != nil && t.StartDate.After(*t.EndDate) {
		return Invalid(KindOrdering, "start_date", "Start date must be before or equal to end date")
	}
	return nil
}

// Normalize returns a copy with surrounding whitespace removed from Name.
func (t Trip) Normalize() Trip {
	t.Name = strings.TrimSpace(t.Name)
	return t
}

// validateName is shared by Trip and Activity. entity is the capitalised
// entity label used in messages ("Trip", "Activity").
func validateName(entity, name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return Invalid(KindMissing, "name", "%s name is required", entity)
	}
	if utf8.RuneCountInString(trimmed) > MaxNameLength {
		return Invalid(KindTooLong, "name", "%s name must be %d characters or less", entity, MaxNameLength)
	}
	return nil
}
