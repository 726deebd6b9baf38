package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"patrol-inspection/internal/storage"
)

type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateExcel(ctx context.Context, id int64) ([]byte, error) {
	args := m.Called(ctx, id)
	if b := args.Get(0); b != nil {
		return b.([]byte), args.Error(1)
	}
	return nil, args.Error(1)
}

func serve(m *MockGenerator, target string) *httptest.ResponseRecorder {
	router := chi.NewRouter()
	router.Get("/api/reports/{id}/xlsx", GenerateReportExcel(slog.Default(), m))

	rr := httptest.NewRecorder()
	router.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, target, nil))
	return rr
}

func TestGenerateReportExcel(t *testing.T) {
	m := new(MockGenerator)
	m.On("GenerateExcel", mock.Anything, int64(12)).Return([]byte("PK\x03\x04"), nil)

	rr := serve(m, "/api/reports/12/xlsx")

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rr.Header().Get("Content-Type"))
	assert.Contains(t, rr.Header().Get("Content-Disposition"), "Inspection_Report_12_")
	assert.Equal(t, "PK\x03\x04", rr.Body.String())
}

func TestGenerateReportExcel_Errors(t *testing.T) {
	m := new(MockGenerator)
	m.On("GenerateExcel", mock.Anything, int64(3)).
		Return(nil, fmt.Errorf("service.generate-excel.GenerateExcel: fetch report: %w", storage.ErrReportNotFound))

	assert.Equal(t, http.StatusNotFound, serve(m, "/api/reports/3/xlsx").Code)
	assert.Equal(t, http.StatusBadRequest, serve(m, "/api/reports/0/xlsx").Code)
}
