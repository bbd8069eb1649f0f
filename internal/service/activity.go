package service

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// ActivityService implements business logic for Activity operations.
type ActivityService struct {
	days       repo.DayRepo
	activities repo.ActivityRepo
	log        *slog.Logger
}

// NewActivityService constructs an ActivityService backed by the provided repos.
func NewActivityService(days repo.DayRepo, activities repo.ActivityRepo, log *slog.Logger) *ActivityService {
	return &ActivityService{days: days, activities: activities, log: log}
}

// Save validates the activity, verifies the parent day exists, then inserts
// or updates it.
func (s *ActivityService) Save(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const op = "service.ActivityService.Save"

	activity = activity.Normalize()
	if err := activity.Validate(); err != nil {
		return domain.Activity{}, err
	}
	if _, err := s.days.GetByID(ctx, activity.DayID); err != nil {
		return domain.Activity{}, parentErr(op, "Day", "day_id", activity.DayID, err)
	}

	if activity.ID == uuid.Nil {
		created, err := s.activities.Create(ctx, activity)
		if err != nil {
			return domain.Activity{}, fmt.Errorf("%s: %w", op, err)
		}
		s.log.InfoContext(ctx, "created activity", "activity_id", created.ID, "day_id", created.DayID)
		return created, nil
	}

	updated, err := s.activities.Update(ctx, activity)
	if err != nil {
		return domain.Activity{}, updateErr(op, "Activity", activity.ID, err)
	}
	s.log.InfoContext(ctx, "updated activity", "activity_id", updated.ID)
	return updated, nil
}

// GetByID returns a single activity. Returns domain.ErrNotFound if absent.
func (s *ActivityService) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	activity, err := s.activities.GetByID(ctx, id)
	if err != nil {
		return domain.Activity{}, fmt.Errorf("service.ActivityService.GetByID: %w", err)
	}
	return activity, nil
}

// ListByDayID returns a day's activities in schedule order: timed activities
// by start time, then untimed ones, ties broken by order index.
// Returns domain.ErrNotFound if the day does not exist.
func (s *ActivityService) ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.Activity, error) {
	if _, err := s.days.GetByID(ctx, dayID); err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDayID: %w", err)
	}
	activities, err := s.activities.ListByDayID(ctx, dayID)
	if err != nil {
		return nil, fmt.Errorf("service.ActivityService.ListByDayID: %w", err)
	}
	if activities == nil {
		return []domain.Activity{}, nil
	}
	slices.SortStableFunc(activities, domain.CompareActivities)
	return activities, nil
}

// UpdateOrder re-ranks an activity without touching its other fields.
func (s *ActivityService) UpdateOrder(ctx context.Context, id uuid.UUID, orderIndex int) (domain.Activity, error) {
	const op = "service.ActivityService.UpdateOrder"

	if id == uuid.Nil {
		return domain.Activity{}, domain.Invalid(domain.KindMissing, "id", "Cannot update order of unsaved activity")
	}
	if err := domain.ValidateOrderIndex(orderIndex); err != nil {
		return domain.Activity{}, err
	}
	updated, err := s.activities.UpdateOrder(ctx, id, orderIndex)
	if err != nil {
		return domain.Activity{}, updateErr(op, "Activity", id, err)
	}
	s.log.InfoContext(ctx, "updated activity order", "activity_id", id, "order_index", orderIndex)
	return updated, nil
}

// Delete removes an activity, reporting whether it existed.
func (s *ActivityService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.activities.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("service.ActivityService.Delete: %w", err)
	}
	if !removed {
		s.log.WarnContext(ctx, "activity not found for deletion", "activity_id", id)
		return false, nil
	}
	s.log.InfoContext(ctx, "deleted activity", "activity_id", id)
	return true, nil
}
