package update

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"patrol-inspection/internal/storage"
)

type MockReportUpdater struct {
	mock.Mock
}

func (m *MockReportUpdater) UpdateReport(ctx context.Context, id int64, r *storage.Report) error {
	args := m.Called(ctx, id, r)
	return args.Error(0)
}

func (m *MockReportUpdater) GetReport(ctx context.Context, id int64) (*storage.Report, error) {
	args := m.Called(ctx, id)
	if r := args.Get(0); r != nil {
		return r.(*storage.Report), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(m *MockReportUpdater, method, target, body string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Put("/api/reports/{id}", UpdateReport(slog.Default(), m, nil))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(method, target, strings.NewReader(body)))
	return rr
}

func TestUpdateReport_Success(t *testing.T) {
	m := new(MockReportUpdater)
	m.On("UpdateReport", mock.Anything, int64(3), mock.MatchedBy(func(r *storage.Report) bool {
		return r.ApprovedBy == "HEAD" && len(r.Items) == 0
	})).Return(nil)
	m.On("GetReport", mock.Anything, int64(3)).Return(&storage.Report{ID: 3, ApprovedBy: "HEAD"}, nil)

	rr := serve(m, http.MethodPut, "/api/reports/3", `{"approved_by": "HEAD", "items": []}`)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"approved_by":"HEAD"`)
	m.AssertExpectations(t)
}

func TestUpdateReport_NotFound(t *testing.T) {
	m := new(MockReportUpdater)
	m.On("UpdateReport", mock.Anything, int64(8), mock.Anything).
		Return(fmt.Errorf("storage.mysql.UpdateReport: %w", storage.ErrReportNotFound))

	rr := serve(m, http.MethodPut, "/api/reports/8", `{}`)

	assert.Equal(t, http.StatusNotFound, rr.Code)
	m.AssertNotCalled(t, "GetReport", mock.Anything, mock.Anything)
}

func TestUpdateReport_InvalidTimeType(t *testing.T) {
	m := new(MockReportUpdater)

	rr := serve(m, http.MethodPut, "/api/reports/8", `{"schedule_entries": [{"time_type": "NOON"}]}`)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	assert.Contains(t, rr.Body.String(), "NOON")
	m.AssertNotCalled(t, "UpdateReport", mock.Anything, mock.Anything, mock.Anything)
}
