package get

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/render"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"patrol-inspection/internal/service/orchestrator"
	"patrol-inspection/internal/storage"
)

type MockReportLoader struct {
	mock.Mock
}

func (m *MockReportLoader) Get(ctx context.Context, id int64) (*storage.Report, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*storage.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *MockReportLoader) Latest(ctx context.Context, filter storage.ReportFilter) (*storage.Report, error) {
	args := m.Called(ctx, filter)
	if r := args.Get(0); r != nil {
		return r.(*storage.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func fixedNow() time.Time {
	return time.Date(2026, 4, 9, 10, 0, 0, 0, time.UTC)
}

func get(m *MockReportLoader, target string) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	GetForm(slog.Default(), m, fixedNow).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	require.NoError(t, render.DecodeJSON(strings.NewReader(rr.Body.String()), &resp))
	return resp
}

func TestGetForm_New(t *testing.T) {
	m := new(MockReportLoader)

	rr := get(m, "/api/form?mode=new")

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, "new", resp["mode"])
	assert.Equal(t, "report", resp["step"])
	assert.Equal(t, "2026-04-09", resp["header"].(map[string]any)["date"])
	assert.Len(t, resp["slots"], 3)
	m.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestGetForm_EditByID(t *testing.T) {
	m := new(MockReportLoader)
	m.On("Get", mock.Anything, int64(4)).Return(&storage.Report{
		ID:       4,
		PartName: "SHAFT",
		Items:    []storage.InspectionItem{{SrNo: 1, Item: "OD", Spec: "25", Tolerance: "± 0.05", Inst: "MICROMETER"}},
	}, nil)

	rr := get(m, "/api/form?mode=edit&id=4")

	assert.Equal(t, http.StatusOK, rr.Code)
	resp := decode(t, rr)
	assert.Equal(t, "edit", resp["mode"])
	assert.EqualValues(t, 4, resp["report_id"])
	columns := resp["columns"].([]any)
	require.Len(t, columns, 1)
	assert.Equal(t, "1. OD", columns[0].(map[string]any)["label"])
}

func TestGetForm_EditLatestUsesFilter(t *testing.T) {
	m := new(MockReportLoader)
	m.On("Latest", mock.Anything, storage.ReportFilter{CustomerName: "FIG"}).
		Return(nil, fmt.Errorf("op: %w", orchestrator.ErrNoReport))

	rr := get(m, "/api/form?mode=edit&customer_name=FIG")

	assert.Equal(t, http.StatusNotFound, rr.Code)
	m.AssertExpectations(t)
}

func TestGetForm_BadInput(t *testing.T) {
	m := new(MockReportLoader)

	assert.Equal(t, http.StatusBadRequest, get(m, "/api/form?mode=view").Code)
	assert.Equal(t, http.StatusBadRequest, get(m, "/api/form?mode=edit&id=x").Code)
}
