package repo

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// Postgres SQLSTATE codes the repos translate into domain errors.
const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
	pgCheckViolation      = "23514"
)

// constraintErrors maps named constraints from migrations/ to the domain error a
// violation of that constraint means. The service layer checks these rules before
// writing; the store is the backstop for writes that race each other.
var constraintErrors = map[string]*domain.ValidationError{
	"days_trip_id_day_number_key": {Kind: domain.KindConflict, Field: "day_number", Message: "Day number already exists for this trip"},
	"days_trip_id_fkey":           {Kind: domain.KindNotFound, Field: "trip_id", Message: "Trip not found"},
	"activities_day_id_fkey":      {Kind: domain.KindNotFound, Field: "day_id", Message: "Day not found"},
	"trips_dates_ordered":         {Kind: domain.KindOrdering, Field: "start_date", Message: "Start date must be before or equal to end date"},
	"activities_times_ordered":    {Kind: domain.KindOrdering, Field: "start_time", Message: "Start time must be before end time"},
}

// classify wraps err with op and translates driver errors:
//   - no rows                     → domain.ErrNotFound
//   - known constraint violation  → *domain.ValidationError
//   - anything else               → domain.ErrStorage
func classify(op string, err error) error {
	if errors.Is(err, pgx.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, domain.ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case pgUniqueViolation, pgForeignKeyViolation, pgCheckViolation:
			if ve, ok := constraintErrors[pgErr.ConstraintName]; ok {
				copied := *ve
				return fmt.Errorf("%s: %w", op, &copied)
			}
		}
	}

	return fmt.Errorf("%s: %w: %w", op, domain.ErrStorage, err)
}
