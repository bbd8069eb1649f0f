// Package repo contains all database access logic for the Travel Planner API.
// Each resource has its own file with an interface and a Postgres implementation.
// No business logic lives here, only SQL and type mapping.
package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// db is the minimal interface satisfied by *database.Gateway, *pgxpool.Pool and pgx.Tx.
// Accepting this interface instead of a concrete pool allows integration tests
// to pass a transaction that is rolled back after each test.
type db interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// TripRepo defines the persistence operations for Trips.
// The service layer depends on this interface, not the Postgres implementation.
type TripRepo interface {
	// Create inserts a new trip and returns the persisted record (with DB-generated
	// id, created_at, and updated_at populated).
	Create(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// GetByID retrieves a single trip. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error)

	// List returns all trips, newest first.
	List(ctx context.Context) ([]domain.Trip, error)

	// Update overwrites the mutable fields of an existing trip, refreshes
	// updated_at, and returns the stored record. Returns domain.ErrNotFound if
	// no trip with that ID exists.
	Update(ctx context.Context, trip domain.Trip) (domain.Trip, error)

	// Delete removes a trip and, by cascade, its days and activities.
	// Reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type pgTripRepo struct {
	db db
}

// NewTripRepo constructs a TripRepo backed by the provided db connection.
// In production pass *database.Gateway; in tests pass a pgx.Tx for rollback isolation.
func NewTripRepo(db db) TripRepo {
	return &pgTripRepo{db: db}
}

const tripColumns = `id, name, description, start_date, end_date, created_at, updated_at`

// tripRow is bound to result columns by name, never by position.
type tripRow struct {
	ID          pgtype.UUID `db:"id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	StartDate   pgtype.Date `db:"start_date"`
	EndDate     pgtype.Date `db:"end_date"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r tripRow) toDomain() domain.Trip {
	return domain.Trip{
		ID:          uuid.UUID(r.ID.Bytes),
		Name:        r.Name,
		Description: r.Description,
		StartDate:   datePtr(r.StartDate),
		EndDate:     datePtr(r.EndDate),
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *pgTripRepo) Create(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		INSERT INTO trips (name, description, start_date, end_date)
		VALUES (@name, @description, @start_date, @end_date)
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"name":        trip.Name,
		"description": trip.Description,
		"start_date":  trip.StartDate, // nil becomes NULL
		"end_date":    trip.EndDate,
	}

	got, err := queryOne[tripRow](ctx, r.db, q, args)
	if err != nil {
		return domain.Trip{}, classify("repo.TripRepo.Create", err)
	}
	return got.toDomain(), nil
}

func (r *pgTripRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips WHERE id = @id`

	got, err := queryOne[tripRow](ctx, r.db, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.Trip{}, classify("repo.TripRepo.GetByID", err)
	}
	return got.toDomain(), nil
}

// List returns all trips ordered by created_at descending (most recent first).
func (r *pgTripRepo) List(ctx context.Context) ([]domain.Trip, error) {
	const q = `SELECT ` + tripColumns + ` FROM trips ORDER BY created_at DESC, id`

	rows, err := queryAll[tripRow](ctx, r.db, q, nil)
	if err != nil {
		return nil, classify("repo.TripRepo.List", err)
	}

	trips := make([]domain.Trip, 0, len(rows))
	for _, row := range rows {
		trips = append(trips, row.toDomain())
	}
	return trips, nil
}

func (r *pgTripRepo) Update(ctx context.Context, trip domain.Trip) (domain.Trip, error) {
	const q = `
		UPDATE trips
		SET name        = @name,
		    description = @description,
		    start_date  = @start_date,
		    end_date    = @end_date,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + tripColumns

	args := pgx.NamedArgs{
		"id":          trip.ID,
		"name":        trip.Name,
		"description": trip.Description,
		"start_date":  trip.StartDate,
		"end_date":    trip.EndDate,
	}

	got, err := queryOne[tripRow](ctx, r.db, q, args)
	if err != nil {
		return domain.Trip{}, classify("repo.TripRepo.Update", err)
	}
	return got.toDomain(), nil
}

func (r *pgTripRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM trips WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, classify("repo.TripRepo.Delete", err)
	}
	return tag.RowsAffected() > 0, nil
}
