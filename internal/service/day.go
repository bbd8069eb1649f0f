package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// DayService implements business logic for Day operations.
// It holds the trips repo because saving a day requires the parent trip to exist.
type DayService struct {
	trips repo.TripRepo
	days  repo.DayRepo
	log   *slog.Logger
}

// NewDayService constructs a DayService backed by the provided repos.
func NewDayService(trips repo.TripRepo, days repo.DayRepo, log *slog.Logger) *DayService {
	return &DayService{trips: trips, days: days, log: log}
}

// Save validates the day, verifies the parent trip exists, then inserts or
// updates. A duplicate day number within the trip is rejected by the store
// and surfaces as a conflict *domain.ValidationError.
func (s *DayService) Save(ctx context.Context, day domain.Day) (domain.Day, error) {
	const op = "service.DayService.Save"

	if err := day.Validate(); err != nil {
		return domain.Day{}, err
	}
	if _, err := s.trips.GetByID(ctx, day.TripID); err != nil {
		return domain.Day{}, parentErr(op, "Trip", "trip_id", day.TripID, err)
	}

	if day.ID == uuid.Nil {
		created, err := s.days.Create(ctx, day)
		if err != nil {
			return domain.Day{}, fmt.Errorf("%s: %w", op, err)
		}
		s.log.InfoContext(ctx, "created day", "day_id", created.ID, "trip_id", created.TripID)
		return created, nil
	}

	updated, err := s.days.Update(ctx, day)
	if err != nil {
		return domain.Day{}, updateErr(op, "Day", day.ID, err)
	}
	s.log.InfoContext(ctx, "updated day", "day_id", updated.ID)
	return updated, nil
}

// GetByID returns a single day. Returns domain.ErrNotFound if absent.
func (s *DayService) GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error) {
	day, err := s.days.GetByID(ctx, id)
	if err != nil {
		return domain.Day{}, fmt.Errorf("service.DayService.GetByID: %w", err)
	}
	return day, nil
}

// ListByTripID returns a trip's days ordered by day number.
// Returns domain.ErrNotFound if the trip does not exist.
func (s *DayService) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	if _, err := s.trips.GetByID(ctx, tripID); err != nil {
		return nil, fmt.Errorf("service.DayService.ListByTripID: %w", err)
	}
	days, err := s.days.ListByTripID(ctx, tripID)
	if err != nil {
		return nil, fmt.Errorf("service.DayService.ListByTripID: %w", err)
	}
	if days == nil {
		return []domain.Day{}, nil
	}
	return days, nil
}

// Delete removes a day and its activities, reporting whether it existed.
func (s *DayService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.days.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("service.DayService.Delete: %w", err)
	}
	if !removed {
		s.log.WarnContext(ctx, "day not found for deletion", "day_id", id)
		return false, nil
	}
	s.log.InfoContext(ctx, "deleted day", "day_id", id)
	return true, nil
}
