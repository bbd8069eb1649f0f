package domain

import (
	"cmp"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Activity is a named, optionally time-boxed item scheduled within a day.
// OrderIndex ranks activities that have no start time, or share one.
type Activity struct {
	ID          uuid.UUID
	DayID       uuid.UUID
	Name        string
	Description string
	StartTime   *TimeOfDay
	EndTime     *TimeOfDay
	OrderIndex  int
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Validate enforces the activity rules:
//   - DayID is required.
//   - Name must be non-blank and at most MaxNameLength characters.
//   - If both times are set, StartTime must be strictly before EndTime.
//   - OrderIndex must fit the int4 column.
func (a Activity) Validate() error {
	if a.DayID == uuid.Nil {
		return Invalid(KindMissing, "day_id", "Day ID is required")
	}
	if err := validateName("Activity", a.Name); err != nil {
		return err
	}
	if a.StartTime != nil && a.EndTime != nil && *a.StartTime >= *a.EndTime {
		return Invalid(KindOrdering, "start_time", "Start time must be before end time")
	}
	return ValidateOrderIndex(a.OrderIndex)
}

// ValidateOrderIndex rejects an order index the store cannot hold.
func ValidateOrderIndex(idx int) error {
	if idx < math.MinInt32 || idx > math.MaxInt32 {
		return Invalid(KindRange, "order_index", "Order index must be between %d and %d", math.MinInt32, math.MaxInt32)
	}
	return nil
}

// Normalize returns a copy with surrounding whitespace removed from Name.
func (a Activity) Normalize() Activity {
	a.Name = strings.TrimSpace(a.Name)
	return a
}

// CompareActivities orders scheduled activities by start time first, then
// unscheduled ones (nil StartTime), breaking ties by OrderIndex.
// It is suitable for slices.SortStableFunc.
func CompareActivities(a, b Activity) int {
	switch {
	case a.StartTime != nil && b.StartTime != nil:
		if c := cmp.Compare(*a.StartTime, *b.StartTime); c != 0 {
			return c
		}
	case a.StartTime != nil:
		return -1
	case b.StartTime != nil:
		return 1
	}
	return cmp.Compare(a.OrderIndex, b.OrderIndex)
}
