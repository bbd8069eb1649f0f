package repo_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/testutil"
)

// newTestTx opens a transaction against the test database. It is rolled back
// when the test finishes, giving free per-test isolation.
func newTestTx(t *testing.T) pgx.Tx {
	t.Helper()
	pool := testutil.NewPool(t)

	tx, err := pool.Begin(context.Background())
	require.NoError(t, err, "begin transaction")

	t.Cleanup(func() {
		_ = tx.Rollback(context.Background())
	})
	return tx
}

func date(y int, m time.Month, d int) *time.Time {
	v := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &v
}

// tripFixture returns a domain.Trip with sensible defaults for use in tests.
// Callers can override individual fields after calling this function.
func tripFixture() domain.Trip {
	return domain.Trip{
		Name:        "Lisbon Long Weekend",
		Description: "Pastries and trams",
		StartDate:   date(2025, 6, 1),
		EndDate:     date(2025, 6, 4),
	}
}

func TestTripRepo_Create(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	input := tripFixture()
	got, err := r.Create(ctx, input)

	require.NoError(t, err)
	assert.NotEqual(t, uuid.Nil, got.ID, "ID should be DB-generated UUID")
	assert.Equal(t, input.Name, got.Name)
	assert.Equal(t, input.Description, got.Description)
	require.NotNil(t, got.StartDate)
	require.NotNil(t, got.EndDate)
	assert.True(t, got.StartDate.Equal(*input.StartDate), "StartDate mismatch")
	assert.True(t, got.EndDate.Equal(*input.EndDate), "EndDate mismatch")
	assert.False(t, got.CreatedAt.IsZero(), "CreatedAt should be set by DB")
	assert.False(t, got.UpdatedAt.IsZero(), "UpdatedAt should be set by DB")
}

func TestTripRepo_Create_NoDates(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	got, err := r.Create(context.Background(), domain.Trip{Name: "Someday"})

	require.NoError(t, err)
	assert.Nil(t, got.StartDate)
	assert.Nil(t, got.EndDate)
	assert.Empty(t, got.Description)
}

func TestTripRepo_Create_DatesOutOfOrder(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	input := tripFixture()
	input.StartDate, input.EndDate = input.EndDate, input.StartDate

	_, err := r.Create(context.Background(), input)

	var ve *domain.ValidationError
	require.ErrorAs(t, err, &ve)
	assert.Equal(t, domain.KindOrdering, ve.Kind)
}

func TestTripRepo_GetByID(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	got, err := r.GetByID(ctx, created.ID)

	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, created.Name, got.Name)
}

func TestTripRepo_GetByID_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	_, err := r.GetByID(context.Background(), uuid.New())

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_List_NewestFirst(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	first := tripFixture()
	first.Name = "First Trip"
	second := tripFixture()
	second.Name = "Second Trip"

	_, err := r.Create(ctx, first)
	require.NoError(t, err)
	_, err = r.Create(ctx, second)
	require.NoError(t, err)

	trips, err := r.List(ctx)

	require.NoError(t, err)
	require.GreaterOrEqual(t, len(trips), 2)

	// now() is fixed for the whole transaction, so both rows share created_at;
	// only membership can be asserted here.
	var names []string
	for _, tr := range trips {
		names = append(names, tr.Name)
	}
	assert.Contains(t, names, "First Trip")
	assert.Contains(t, names, "Second Trip")
}

func TestTripRepo_Update(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	created.Name = "Porto Instead"
	created.Description = ""
	created.EndDate = nil

	updated, err := r.Update(ctx, created)

	require.NoError(t, err)
	assert.Equal(t, created.ID, updated.ID)
	assert.Equal(t, "Porto Instead", updated.Name)
	assert.Empty(t, updated.Description)
	assert.Nil(t, updated.EndDate)
	assert.False(t, updated.UpdatedAt.IsZero())
}

func TestTripRepo_Update_NotFound(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	ghost := tripFixture()
	ghost.ID = uuid.New()

	_, err := r.Update(context.Background(), ghost)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestTripRepo_Delete(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))
	ctx := context.Background()

	created, err := r.Create(ctx, tripFixture())
	require.NoError(t, err)

	removed, err := r.Delete(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, removed)

	_, err = r.GetByID(ctx, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "trip should be gone after delete")
}

func TestTripRepo_Delete_Unknown(t *testing.T) {
	r := repo.NewTripRepo(newTestTx(t))

	removed, err := r.Delete(context.Background(), uuid.New())

	require.NoError(t, err)
	assert.False(t, removed)
}

func TestTripRepo_Delete_CascadesToDaysAndActivities(t *testing.T) {
	tx := newTestTx(t)
	trips := repo.NewTripRepo(tx)
	days := repo.NewDayRepo(tx)
	activities := repo.NewActivityRepo(tx)
	ctx := context.Background()

	trip, err := trips.Create(ctx, tripFixture())
	require.NoError(t, err)
	day, err := days.Create(ctx, domain.Day{TripID: trip.ID, Date: *trip.StartDate, DayNumber: 1})
	require.NoError(t, err)
	act, err := activities.Create(ctx, domain.Activity{DayID: day.ID, Name: "Tram 28"})
	require.NoError(t, err)

	removed, err := trips.Delete(ctx, trip.ID)
	require.NoError(t, err)
	require.True(t, removed)

	_, err = days.GetByID(ctx, day.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "day should be cascaded")
	_, err = activities.GetByID(ctx, act.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound, "activity should be cascaded")
}
