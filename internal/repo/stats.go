package repo

import (
	"context"

	"github.com/pkordes/travel-planner/backend/internal/domain"
)

// StatsRepo reads aggregate figures across all tables.
type StatsRepo interface {
	Counts(ctx context.Context) (domain.TableCounts, error)
}

type pgStatsRepo struct {
	db db
}

// NewStatsRepo constructs a StatsRepo backed by the provided db connection.
func NewStatsRepo(db db) StatsRepo {
	return &pgStatsRepo{db: db}
}

func (r *pgStatsRepo) Counts(ctx context.Context) (domain.TableCounts, error) {
	const q = `
		SELECT (SELECT count(*) FROM trips),
		       (SELECT count(*) FROM days),
		       (SELECT count(*) FROM activities)`

	var c domain.TableCounts
	if err := r.db.QueryRow(ctx, q).Scan(&c.Trips, &c.Days, &c.Activities); err != nil {
		return domain.TableCounts{}, classify("repo.StatsRepo.Counts", err)
	}
	return c, nil
}
