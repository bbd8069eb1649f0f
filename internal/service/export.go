package service

import (
	"context"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// dateLayout is the calendar date format used in export rows.
const dateLayout = "2006-01-02"

// ExportService flattens a trip's itinerary into export rows.
type ExportService struct {
	trips      repo.TripRepo
	days       repo.DayRepo
	activities repo.ActivityRepo
}

// NewExportService constructs an ExportService backed by the provided repos.
func NewExportService(trips repo.TripRepo, days repo.DayRepo, activities repo.ActivityRepo) *ExportService {
	return &ExportService{trips: trips, days: days, activities: activities}
}

// Export returns one ExportRow per activity of the trip, days in day-number
// order and activities in schedule order. A day with no activities contributes
// one row with empty activity fields; a trip with no days contributes one row
// with only the trip fields. Returns domain.ErrNotFound if the trip is absent.
func (s *ExportService) Export(ctx context.Context, tripID uuid.UUID) ([]domain.ExportRow, error) {
	const op = "service.ExportService.Export"

	trip, err := s.trips.GetByID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	days, err := s.days.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	base := domain.ExportRow{
		TripID:        trip.ID,
		TripName:      trip.Name,
		TripStartDate: formatDate(trip.StartDate),
		TripEndDate:   formatDate(trip.EndDate),
	}
	if len(days) == 0 {
		return []domain.ExportRow{base}, nil
	}

	var rows []domain.ExportRow
	for _, day := range days {
		activities, err := s.activities.ListByDayID(ctx, day.ID)
		if err != nil {
			return nil, fmt.Errorf("%s: day %s: %w", op, day.ID, err)
		}
		slices.SortStableFunc(activities, domain.CompareActivities)

		dayRow := base
		dayRow.DayNumber = day.DayNumber
		dayRow.DayDate = day.Date.Format(dateLayout)

		if len(activities) == 0 {
			rows = append(rows, dayRow)
			continue
		}
		for _, a := range activities {
			row := dayRow
			row.ActivityName = a.Name
			row.ActivityDescription = a.Description
			row.StartTime = a.StartTime
			row.EndTime = a.EndTime
			row.OrderIndex = a.OrderIndex
			rows = append(rows, row)
		}
	}
	return rows, nil
}

func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateLayout)
}
