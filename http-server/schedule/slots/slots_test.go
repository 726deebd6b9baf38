package slots

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"patrol-inspection/internal/schedule"
	"patrol-inspection/internal/storage"
)

type MockReportGetter struct {
	mock.Mock
}

func (m *MockReportGetter) GetReport(ctx context.Context, id int64) (*storage.Report, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*storage.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(m *MockReportGetter, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/reports/{id}/slots", GetSlots(slog.Default(), m))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestGetSlots_GroupsEntries(t *testing.T) {
	up := storage.ScheduleEntry{Sr: 1, TimeType: "2HRS", SlotIndex: 1, Operator: "ALEX", MachineNo: "M2", Date: "2026-04-09"}
	up.Values[0] = "10.1"
	down := up
	down.RowOrder = 1
	down.Values[0] = "10.2"
	setup := storage.ScheduleEntry{Sr: 1, TimeType: "SETUP", SlotIndex: 0, Operator: "ALEX", MachineNo: "M2", Date: "2026-04-09"}

	m := new(MockReportGetter)
	m.On("GetReport", mock.Anything, int64(3)).Return(&storage.Report{
		ID:              3,
		Date:            "2026-04-09",
		ScheduleEntries: []storage.ScheduleEntry{setup, up, down},
	}, nil)

	rr := serve(m, "/api/reports/3/slots")
	require.Equal(t, http.StatusOK, rr.Code)

	var resp struct {
		Slots    []schedule.Slot  `json:"slots"`
		ActiveID int              `json:"active_id"`
		Session  schedule.Session `json:"session"`
		PhysRows int              `json:"physical_rows"`
	}
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))

	require.Len(t, resp.Slots, 2)
	assert.Equal(t, "SETUP", resp.Slots[0].Type)
	assert.True(t, resp.Slots[0].SingleRow)
	assert.Equal(t, "2HRS", resp.Slots[1].Type)
	assert.False(t, resp.Slots[1].SingleRow)
	assert.Equal(t, "10.2", resp.Slots[1].DownVals[0])
	assert.Equal(t, 1, resp.ActiveID)
	assert.Equal(t, 3, resp.PhysRows)
	assert.Equal(t, schedule.Session{Operator: "ALEX", MachineNo: "M2", Date: "2026-04-09"}, resp.Session)
}

func TestGetSlots_EmptyReportHasDefaults(t *testing.T) {
	m := new(MockReportGetter)
	m.On("GetReport", mock.Anything, int64(8)).Return(&storage.Report{ID: 8, Date: "2026-05-01"}, nil)

	rr := serve(m, "/api/reports/8/slots")
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"type":"SETUP"`)
	assert.Contains(t, rr.Body.String(), `"type":"4HRS"`)
	assert.Contains(t, rr.Body.String(), `"type":"LAST"`)
	assert.Contains(t, rr.Body.String(), `"date":"2026-05-01"`)
}

func TestGetSlots_NotFound(t *testing.T) {
	m := new(MockReportGetter)
	m.On("GetReport", mock.Anything, int64(9)).Return(nil, storage.ErrReportNotFound)

	assert.Equal(t, http.StatusNotFound, serve(m, "/api/reports/9/slots").Code)
	assert.Equal(t, http.StatusBadRequest, serve(m, "/api/reports/abc/slots").Code)
}
