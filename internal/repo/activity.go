package repo

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// ActivityRepo defines the persistence operations for Activities.
type ActivityRepo interface {
	// Create inserts a new activity. A missing day yields a not-found
	// *domain.ValidationError.
	Create(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// GetByID retrieves a single activity. Returns domain.ErrNotFound if absent.
	GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error)

	// ListByDayID returns a day's activities: timed ones by start_time, then
	// untimed ones, each group ranked by order_index.
	ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.Activity, error)

	// Update overwrites every mutable field and refreshes updated_at.
	// Returns domain.ErrNotFound if no activity with that ID exists.
	Update(ctx context.Context, activity domain.Activity) (domain.Activity, error)

	// UpdateOrder changes only order_index (and updated_at).
	// Returns domain.ErrNotFound if no activity with that ID exists.
	UpdateOrder(ctx context.Context, id uuid.UUID, orderIndex int) (domain.Activity, error)

	// Delete removes an activity. Reports whether a row was removed.
	Delete(ctx context.Context, id uuid.UUID) (bool, error)
}

type pgActivityRepo struct {
	db db
}

// NewActivityRepo constructs an ActivityRepo backed by the provided db connection.
func NewActivityRepo(db db) ActivityRepo {
	return &pgActivityRepo{db: db}
}

const activityColumns = `id, day_id, name, description, start_time, end_time, order_index, created_at, updated_at`

type activityRow struct {
	ID          pgtype.UUID `db:"id"`
	DayID       pgtype.UUID `db:"day_id"`
	Name        string      `db:"name"`
	Description string      `db:"description"`
	StartTime   pgtype.Time `db:"start_time"`
	EndTime     pgtype.Time `db:"end_time"`
	OrderIndex  int         `db:"order_index"`
	CreatedAt   time.Time   `db:"created_at"`
	UpdatedAt   time.Time   `db:"updated_at"`
}

func (r activityRow) toDomain() domain.Activity {
	return domain.Activity{
		ID:          uuid.UUID(r.ID.Bytes),
		DayID:       uuid.UUID(r.DayID.Bytes),
		Name:        r.Name,
		Description: r.Description,
		StartTime:   timeOfDayPtr(r.StartTime),
		EndTime:     timeOfDayPtr(r.EndTime),
		OrderIndex:  r.OrderIndex,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

func (r *pgActivityRepo) Create(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		INSERT INTO activities (day_id, name, description, start_time, end_time, order_index)
		VALUES (@day_id, @name, @description, @start_time, @end_time, @order_index)
		RETURNING ` + activityColumns

	got, err := queryOne[activityRow](ctx, r.db, q, activityArgs(activity))
	if err != nil {
		return domain.Activity{}, classify("repo.ActivityRepo.Create", err)
	}
	return got.toDomain(), nil
}

func (r *pgActivityRepo) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	const q = `SELECT ` + activityColumns + ` FROM activities WHERE id = @id`

	got, err := queryOne[activityRow](ctx, r.db, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return domain.Activity{}, classify("repo.ActivityRepo.GetByID", err)
	}
	return got.toDomain(), nil
}

func (r *pgActivityRepo) ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.Activity, error) {
	const q = `
		SELECT ` + activityColumns + `
		FROM activities
		WHERE day_id = @day_id
		ORDER BY start_time ASC NULLS LAST, order_index ASC, created_at ASC`

	rows, err := queryAll[activityRow](ctx, r.db, q, pgx.NamedArgs{"day_id": dayID})
	if err != nil {
		return nil, classify("repo.ActivityRepo.ListByDayID", err)
	}

	activities := make([]domain.Activity, 0, len(rows))
	for _, row := range rows {
		activities = append(activities, row.toDomain())
	}
	return activities, nil
}

func (r *pgActivityRepo) Update(ctx context.Context, activity domain.Activity) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET day_id      = @day_id,
		    name        = @name,
		    description = @description,
		    start_time  = @start_time,
		    end_time    = @end_time,
		    order_index = @order_index,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + activityColumns

	args := activityArgs(activity)
	args["id"] = activity.ID

	got, err := queryOne[activityRow](ctx, r.db, q, args)
	if err != nil {
		return domain.Activity{}, classify("repo.ActivityRepo.Update", err)
	}
	return got.toDomain(), nil
}

func (r *pgActivityRepo) UpdateOrder(ctx context.Context, id uuid.UUID, orderIndex int) (domain.Activity, error) {
	const q = `
		UPDATE activities
		SET order_index = @order_index,
		    updated_at  = now()
		WHERE id = @id
		RETURNING ` + activityColumns

	got, err := queryOne[activityRow](ctx, r.db, q, pgx.NamedArgs{"id": id, "order_index": orderIndex})
	if err != nil {
		return domain.Activity{}, classify("repo.ActivityRepo.UpdateOrder", err)
	}
	return got.toDomain(), nil
}

func (r *pgActivityRepo) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	const q = `DELETE FROM activities WHERE id = @id`

	tag, err := r.db.Exec(ctx, q, pgx.NamedArgs{"id": id})
	if err != nil {
		return false, classify("repo.ActivityRepo.Delete", err)
	}
	return tag.RowsAffected() > 0, nil
}

func activityArgs(a domain.Activity) pgx.NamedArgs {
	return pgx.NamedArgs{
		"day_id":      a.DayID,
		"name":        a.Name,
		"description": a.Description,
		"start_time":  timeOfDayArg(a.StartTime),
		"end_time":    timeOfDayArg(a.EndTime),
		"order_index": a.OrderIndex,
	}
}
