package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// DayRepo defines the persistence operations for Days.
type DayRepo interface {
	// Create inserts a new day. A duplicate (trip_id, day_number) yields a
	// conflict *domain.ValidationError; a missing trip yields a not-found one.
	Create(ctx context.Context, day domain.Day) (domain.Day, error)

	// GetByID retrieves a single day. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error)

	// ListByTripID returns all days for a trip ordered by day_number.
	ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error)

	// Update overwrites trip_id, date and day_number.
	// Returns domain.ErrNotFound if no day with that ID exists.
	Update(ctx context.Context, day domain.Day) (domain.Day, error)

	// Delete removes a day and, by cascade, its activities.
	// Reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type pgDayRepo struct {
	db db
}

// NewDayRepo constructs a DayRepo backed by the provided db connection.
func NewDayRepo(db db) DayRepo {
	return &pgDayRepo{db: db}
}

const dayColumns = `id, trip_id, date, day_number, created_at`

type dayRow struct {
	ID        pgtype.UUID `db:"id"`
	TripID    pgtype.UUID `db:"trip_id"`
	Date      pgtype.Date `db:"date"`
	DayNumber int         `db:"day_number"`
	CreatedAt time.Time   `db:"created_at"`
}

func (r dayRow) toDomain() domain.Day {
	return domain.Day{
		ID:        uuid.UUID(r.ID.Bytes),
		TripID:    uuid.UUID(r.TripID.Bytes),
		Date:      r.Date.Time,
		DayNumber: r.DayNumber,
		CreatedAt: r.CreatedAt,
	}
}

func (r *pgDayRepo) Create(ctx context.Context, day domain.Day) (domain.Day, error) {
	const q = `
		INSERT INTO days (trip_id, date, day_number)
		VALUES (@trip_id, @date, @day_number)
		RETURNING ` + dayColumns

	args := pgx.NamedArgs{
		"trip_id":    day.TripID,
		"date":       day.Date,
		"day_number": day.DayNumber,
	}

	got, err := queryOne[dayRow](ctx, r.db, q, args)
	if err != nil {
		return domain.Day{}, classify("repo.DayRepo.Create", err)
	}
	return got.toDomain(), nil
}

func (r *pgDayRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE id = @id`

	got, err := queryOne[dayRow](ctx, r.db, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.Day{}, classify("repo.DayRepo.GetByID", err)
	}
	return got.toDomain(), nil
}

func (r *pgDayRepo) ListByTripID(ctx context.Context, tripID uuid.UUID) ([]domain.Day, error) {
	const q = `SELECT ` + dayColumns + ` FROM days WHERE trip_id = @trip_id ORDER BY day_number`

	rows, err := queryAll[dayRow](ctx, r.db, q, pgx.NamedArgs{"trip_id": tripID})
	if err != nil {
		return nil, classify("repo.DayRepo.ListByTripID", err)
	}

	days := make([]domain.Day, 0, len(rows))
	for _, row := range rows {
		days = append(days, row.toDomain())
	}
	return days, nil
}

func (r *pgDayRepo) Update(ctx context.Context, day domain.Day) (domain.Day, error) {
	const q = `
		UPDATE days
		SET trip_id    = @trip_id,
		    date       = @date,
		    day_number = @day_number
		WHERE id = @id
		RETURNING ` + dayColumns

	args := pgx.NamedArgs{
		"id":         day.ID,
		"trip_id":    day.TripID,
		"date":       day.Date,
		"day_number": day.DayNumber,
	}

	got, err := queryOne[dayRow](ctx, r.db, q, args)
	if err != nil {
		return domain.Day{}, classify("repo.DayRepo.Update", err)
	}
	return got.toDomain(), nil
}

func (r *pgDayRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM days WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, classify("repo.DayRepo.Delete", err)
	}
	return tag.RowsAffected() > 0, nil
}
