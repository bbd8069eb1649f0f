package handler_test

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/travel-planner/backend/internal/domain"
	"github.com/pkordes/travel-planner/backend/internal/handler"
)

// mockActivityServicer is a test double for handler.ActivityServicer.
type mockActivityServicer struct {
	save        func(ctx context.Context, a domain.Activity) (domain.Activity, error)
	getByID     func(ctx context.Context, id uuid.UUID) (domain.Activity, error)
	listByDayID func(ctx context.Context, dayID uuid.UUID) ([]domain.Activity, error)
	updateOrder func(ctx context.Context, id uuid.UUID, orderIndex int) (domain.Activity, error)
	delete      func(ctx context.Context, id uuid.UUID) (bool, error)
}

func (m *mockActivityServicer) Save(ctx context.Context, a domain.Activity) (domain.Activity, error) {
	return m.save(ctx, a)
}
func (m *mockActivityServicer) GetByID(ctx context.Context, id uuid.UUID) (domain.Activity, error) {
	return m.getByID(ctx, id)
}
func (m *mockActivityServicer) ListByDayID(ctx context.Context, dayID uuid.UUID) ([]domain.Activity, error) {
	return m.listByDayID(ctx, dayID)
}
func (m *mockActivityServicer) UpdateOrder(ctx context.Context, id uuid.UUID, orderIndex int) (domain.Activity, error) {
	return m.updateOrder(ctx, id, orderIndex)
}
func (m *mockActivityServicer) Delete(ctx context.Context, id uuid.UUID) (bool, error) {
	return m.delete(ctx, id)
}

var _ handler.ActivityServicer = (*mockActivityServicer)(nil)

func at(h, m int) *domain.TimeOfDay {
	v := domain.NewTimeOfDay(h, m)
	return &v
}

func activityFixture() domain.Activity {
	return domain.Activity{
		ID:        uuid.New(),
		DayID:     uuid.New(),
		Name:      "Blue Lagoon",
		StartTime: at(9, 5),
		EndTime:   at(11, 0),
	}
}

func activityFound(a domain.Activity) func(context.Context, uuid.UUID) (domain.Activity, error) {
	return func(context.Context, uuid.UUID) (domain.Activity, error) { return a, nil }
}

func dayFound(d domain.Day) func(context.Context, uuid.UUID) (domain.Day, error) {
	return func(context.Context, uuid.UUID) (domain.Day, error) { return d, nil }
}

func TestListActivities_RendersTimes(t *testing.T) {
	a := activityFixture()
	h := newRouter(handler.Deps{Activities: &mockActivityServicer{
		listByDayID: func(context.Context, uuid.UUID) ([]domain.Activity, error) {
			return []domain.Activity{a, {ID: uuid.New(), DayID: a.DayID, Name: "Untimed", OrderIndex: 3}}, nil
		},
	}})

	rec, resp := do(t, h, http.MethodGet, "/api/days/"+a.DayID.String()+"/activities", nil)

	require.Equal(t, http.StatusOK, rec.Code)
	var data []map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	require.Len(t, data, 2)
	assert.Equal(t, "09:05", data[0]["start_time"])
	assert.Equal(t, "11:00", data[0]["end_time"])
	assert.Nil(t, data[1]["start_time"])
	assert.EqualValues(t, 3, data[1]["order_index"])
}

func TestCreateActivity(t *testing.T) {
	d := dayFixture()
	var saved domain.Activity
	h := newRouter(handler.Deps{
		Days: &mockDayServicer{getByID: dayFound(d)},
		Activities: &mockActivityServicer{save: func(_ context.Context, a domain.Activity) (domain.Activity, error) {
			saved = a
			a.ID = uuid.New()
			return a, nil
		}},
	})

	rec, _ := do(t, h, http.MethodPost, "/api/days/"+d.ID.String()+"/activities", map[string]any{
		"name":        "Glacier hike",
		"start_time":  "13:00",
		"end_time":    "",
		"order_index": 2,
	})

	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, d.ID, saved.DayID)
	require.NotNil(t, saved.StartTime)
	assert.Equal(t, domain.NewTimeOfDay(13, 0), *saved.StartTime)
	assert.Nil(t, saved.EndTime, "empty string means no time")
	assert.Equal(t, 2, saved.OrderIndex)
}

func TestCreateActivity_UnknownDay(t *testing.T) {
	dayID := uuid.New()
	h := newRouter(handler.Deps{Days: &mockDayServicer{
		getByID: func(context.Context, uuid.UUID) (domain.Day, error) { return domain.Day{}, domain.ErrNotFound },
	}})

	rec, resp := do(t, h, http.MethodPost, "/api/days/"+dayID.String()+"/activities", map[string]any{"name": "Orphan"})

	requireError(t, rec, resp, http.StatusNotFound, "NOT_FOUND")
	assert.Equal(t, "Day with id "+dayID.String()+" not found", resp.Error.Message)
}

func TestCreateActivity_BadTimeFormat(t *testing.T) {
	d := dayFixture()
	h := newRouter(handler.Deps{Days: &mockDayServicer{getByID: dayFound(d)}})

	rec, resp := do(t, h, http.MethodPost, "/api/days/"+d.ID.String()+"/activities", map[string]any{
		"name": "Late", "end_time": "25:99",
	})

	requireError(t, rec, resp, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.Equal(t, "end_time must be in HH:MM format", resp.Error.Message)
}

func TestUpdateActivity_ClearsTimeWithNull(t *testing.T) {
	a := activityFixture()
	var saved domain.Activity
	h := newRouter(handler.Deps{Activities: &mockActivityServicer{
		getByID: activityFound(a),
		save: func(_ context.Context, got domain.Activity) (domain.Activity, error) {
			saved = got
			return got, nil
		},
	}})

	rec, _ := do(t, h, http.MethodPut, "/api/activities/"+a.ID.String(), `{"start_time":null,"description":"Bring a towel"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, saved.StartTime)
	require.NotNil(t, saved.EndTime, "absent key keeps stored value")
	assert.Equal(t, "Bring a towel", saved.Description)
	assert.Equal(t, "Blue Lagoon", saved.Name)
}

func TestUpdateActivityOrder(t *testing.T) {
	a := activityFixture()
	h := newRouter(handler.Deps{Activities: &mockActivityServicer{
		updateOrder: func(_ context.Context, id uuid.UUID, idx int) (domain.Activity, error) {
			a.ID, a.OrderIndex = id, idx
			return a, nil
		},
	}})

	rec, resp := do(t, h, http.MethodPatch, "/api/activities/"+a.ID.String()+"/order", map[string]any{"order_index": 5})

	require.Equal(t, http.StatusOK, rec.Code)
	var data map[string]any
	require.NoError(t, json.Unmarshal(resp.Data, &data))
	assert.EqualValues(t, 5, data["order_index"])
}

func TestUpdateActivityOrder_MissingIndex(t *testing.T) {
	h := newRouter(handler.Deps{Activities: &mockActivityServicer{}})

	rec, resp := do(t, h, http.MethodPatch, "/api/activities/"+uuid.NewString()+"/order", `{}`)

	requireError(t, rec, resp, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.Equal(t, "order_index is required", resp.Error.Message)
}

func TestUpdateActivityOrder_Vanished(t *testing.T) {
	id := uuid.New()
	h := newRouter(handler.Deps{Activities: &mockActivityServicer{
		updateOrder: func(context.Context, uuid.UUID, int) (domain.Activity, error) {
			return domain.Activity{}, domain.Invalid(domain.KindNotFound, "id", "Activity with id %s not found", id)
		},
	}})

	rec, resp := do(t, h, http.MethodPatch, "/api/activities/"+id.String()+"/order", `{"order_index":1}`)

	requireError(t, rec, resp, http.StatusNotFound, "NOT_FOUND")
}

func TestDeleteActivity(t *testing.T) {
	a := activityFixture()
	h := newRouter(handler.Deps{Activities: &mockActivityServicer{
		getByID: activityFound(a),
		delete:  func(context.Context, uuid.UUID) (bool, error) { return true, nil },
	}})

	rec, resp := do(t, h, http.MethodDelete, "/api/activities/"+a.ID.String(), nil)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"Activity deleted successfully"}`, string(resp.Data))
}

func TestUpdateActivityOrder_BeyondInt4(t *testing.T) {
	h := newRouter(handler.Deps{Activities: &mockActivityServicer{
		updateOrder: func(_ context.Context, _ uuid.UUID, idx int) (domain.Activity, error) {
			if err := domain.ValidateOrderIndex(idx); err != nil {
				return domain.Activity{}, err
			}
			t.Fatal("an out-of-range order index must not reach the store")
			return domain.Activity{}, nil
		},
	}})

	rec, resp := do(t, h, http.MethodPatch, "/api/activities/"+uuid.NewString()+"/order", `{"order_index":3000000000}`)

	requireError(t, rec, resp, http.StatusBadRequest, "VALIDATION_ERROR")
	assert.Contains(t, resp.Error.Message, "Order index must be between")
}
