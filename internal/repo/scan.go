package repo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// queryOne runs q and binds exactly one row to T by column name.
// Zero rows yields pgx.ErrNoRows.
func queryOne[T any](ctx context.Context, db db, q string, args pgx.NamedArgs) (T, error) {
	var zero T
	rows, err := db.Query(ctx, q, args)
	if err != nil {
		return zero, err
	}
	return pgx.CollectExactlyOneRow(rows, pgx.RowToStructByName[T])
}

// queryAll runs q and binds every row to T by column name.
// It always returns a non-nil slice on success.
func queryAll[T any](ctx context.Context, db db, q string, args pgx.NamedArgs) ([]T, error) {
	var (
		rows pgx.Rows
		err  error
	)
	if args == nil {
		rows, err = db.Query(ctx, q)
	} else {
		rows, err = db.Query(ctx, q, args)
	}
	if err != nil {
		return nil, err
	}
	out, err := pgx.CollectRows(rows, pgx.RowToStructByName[T])
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []T{}
	}
	return out, nil
}

func datePtr(d pgtype.Date) *time.Time {
	if !d.Valid {
		return nil
	}
	t := d.Time
	return &t
}

func timeOfDayPtr(t pgtype.Time) *domain.TimeOfDay {
	if !t.Valid {
		return nil
	}
	v := domain.TimeOfDay(t.Microseconds / int64(time.Minute/time.Microsecond))
	return &v
}

// timeOfDayArg converts an optional TimeOfDay into a TIME parameter; nil becomes NULL.
func timeOfDayArg(t *domain.TimeOfDay) pgtype.Time {
	if t == nil {
		return pgtype.Time{}
	}
	return pgtype.Time{Microseconds: t.Duration().Microseconds(), Valid: true}
}
