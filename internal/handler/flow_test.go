package handler_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/database"
	"github.com/pkordes/travel-planner/backend/internal/handler"
	"github.com/pkordes/travel-planner/backend/internal/repo"
	"github.com/pkordes/travel-planner/backend/internal/service"
	"github.com/pkordes/travel-planner/backend/testutil"
)

// newIntegrationRouter wires the real service and repo layers over a
// transaction that is rolled back when the test ends.
func newIntegrationRouter(t *testing.T) http.Handler {
	t.Helper()
	pool := testutil.NewPool(t)
	ctx := context.Background()
	log := slog.New(slog.DiscardHandler)

	require.NoError(t, database.Migrate(ctx, testutil.DSN(t), log))

	tx, err := pool.Begin(ctx)
	require.NoError(t, err)
	t.Cleanup(func() { _ = tx.Rollback(context.Background()) })

	trips := repo.NewTripRepo(tx)
	days := repo.NewDayRepo(tx)
	activities := repo.NewActivityRepo(tx)

	return newRouter(handler.Deps{
		Trips:      service.NewTripService(trips, log),
		Days:       service.NewDayService(trips, days, log),
		Activities: service.NewActivityService(days, activities, log),
		Export:     service.NewExportService(trips, days, activities),
		Stats:      repo.NewStatsRepo(tx),
		Logger:     log,
	})
}

func dataID(t *testing.T, resp apiResponse) string {
	t.Helper()
	var v struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &v))
	require.NotEmpty(t, v.ID)
	return v.ID
}

func TestFlow_TripDayActivity(t *testing.T) {
	h := newIntegrationRouter(t)

	rec, resp := do(t, h, http.MethodPost, "/api/trips", map[string]any{
		"name": "  Iceland Ring Road ", "start_date": "2025-08-01", "end_date": "2025-08-10",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tripID := dataID(t, resp)

	rec, resp = do(t, h, http.MethodPost, "/api/trips/"+tripID+"/days", map[string]any{
		"date": "2025-08-01", "day_number": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	dayID := dataID(t, resp)

	rec, resp = do(t, h, http.MethodPost, "/api/days/"+dayID+"/activities", map[string]any{
		"name": "Untimed", "order_index": 1,
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	untimedID := dataID(t, resp)

	rec, _ = do(t, h, http.MethodPost, "/api/days/"+dayID+"/activities", map[string]any{
		"name": "Breakfast", "start_time": "08:00", "end_time": "09:00",
	})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, resp = do(t, h, http.MethodGet, "/api/days/"+dayID+"/activities", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var listed []struct {
		Name string `json:"name"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &listed))
	require.Len(t, listed, 2)
	assert.Equal(t, "Breakfast", listed[0].Name)
	assert.Equal(t, "Untimed", listed[1].Name)

	rec, resp = do(t, h, http.MethodPatch, "/api/activities/"+untimedID+"/order", map[string]any{"order_index": 7})
	require.Equal(t, http.StatusOK, rec.Code)
	var reordered struct {
		OrderIndex int `json:"order_index"`
	}
	require.NoError(t, json.Unmarshal(resp.Data, &reordered))
	assert.Equal(t, 7, reordered.OrderIndex)

	rec, resp = do(t, h, http.MethodPost, "/api/days/"+uuid.NewString()+"/activities", map[string]any{"name": "Orphan"})
	requireError(t, rec, resp, http.StatusNotFound, "NOT_FOUND")

	rec, resp = do(t, h, http.MethodGet, "/api/trips/"+tripID+"/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var rows []map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "Iceland Ring Road", rows[0]["trip_name"], "name is stored trimmed")
	assert.Equal(t, "Breakfast", rows[0]["activity_name"])

	rec, _ = do(t, h, http.MethodDelete, "/api/trips/"+tripID, nil)
	require.Equal(t, http.StatusOK, rec.Code)

	rec, resp = do(t, h, http.MethodGet, "/api/days/"+dayID, nil)
	requireError(t, rec, resp, http.StatusNotFound, "NOT_FOUND")
}

// The duplicate is the last statement: a unique violation aborts the transaction.
func TestFlow_DuplicateDayNumberRejected(t *testing.T) {
	h := newIntegrationRouter(t)

	rec, resp := do(t, h, http.MethodPost, "/api/trips", map[string]any{"name": "Weekend"})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	tripID := dataID(t, resp)

	rec, _ = do(t, h, http.MethodPost, "/api/trips/"+tripID+"/days", map[string]any{"date": "2025-09-06", "day_number": 1})
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec, resp = do(t, h, http.MethodPost, "/api/trips/"+tripID+"/days", map[string]any{"date": "2025-09-07", "day_number": 1})
	requireError(t, rec, resp, http.StatusBadRequest, "VALIDATION_ERROR")
}
