// Package service contains the business logic for the Travel Planner API.
// Services validate inputs, enforce business rules, and orchestrate repo calls.
// No SQL lives here; services depend on repo interfaces, not implementations.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
)

// TripService implements business logic for Trip operations.
type TripService struct {
	repo repo.TripRepo
	log  *slog.Logger
}

// NewTripService constructs a TripService backed by the provided TripRepo.
func NewTripService(r repo.TripRepo, log *slog.Logger) *TripService {
	return &TripService{repo: r, log: log}
}

// Save validates and persists a trip. A trip without an ID is inserted;
// otherwise every mutable field is overwritten. Updating a trip that no longer
// exists fails with a not-found *domain.ValidationError.
func (s *TripService) Save(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	trip = trip.Normalize()
	if err := trip.Validate(); err != nil {
		return domain.Trip{}, err
	}

	if trip.ID == uuid.Nil {
		created, err := s.repo.Create(ctx, trip)
		if err != nil {
			return domain.Trip{}, fmt.Errorf("service.TripService.Save: %w", err)
		}
		s.log.InfoContext(ctx, "created trip", "trip_id", created.ID)
		return created, nil
	}

	updated, err := s.repo.Update(ctx, trip)
	if err != nil {
		return domain.Trip{}, updateErr("service.TripService.Save", "Trip", trip.ID, err)
	}
	s.log.InfoContext(ctx, "updated trip", "trip_id", updated.ID)
	return updated, nil
}

// GetByID returns a single trip. Returns domain.ErrNotFound if absent.
func (s *TripService) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	trip, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return trip, nil
}

// List returns all trips, newest first.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Delete removes a trip with its days and activities. An unknown id is not an
// error; the result reports whether anything was removed.
func (s *TripService) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	removed, err := s.repo.Delete(ctx, id)
	if err != nil {
		return false, fmt.Errorf("service.TripService.Delete: %w", err)
	}
	if !removed {
		s.log.WarnContext(ctx, "trip not found for deletion", "trip_id", id)
		return false, nil
	}
	s.log.InfoContext(ctx, "deleted trip", "trip_id", id)
	return true, nil
}
