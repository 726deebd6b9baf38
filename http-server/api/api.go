// Package api holds what every handler shares: id and filter parsing,
// payload checks and the mapping of errors to status codes.
package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"

	"patrol-inspection/internal/client"
	"patrol-inspection/internal/schedule"
	"patrol-inspection/internal/service/lookup"
	"patrol-inspection/internal/service/orchestrator"
	"patrol-inspection/internal/storage"
)

var ErrInvalidReport = errors.New("invalid report")

type ErrorResponse struct {
	Error  string   `json:"error"`
	Fields []string `json:"fields,omitempty"`
}

func Error(w http.ResponseWriter, r *http.Request, status int, msg string) {
	render.Status(r, status)
	render.JSON(w, r, ErrorResponse{Error: msg})
}

// Fail answers with the status matching err.
func Fail(w http.ResponseWriter, r *http.Request, err error) {
	status := StatusFor(err)

	var ve *orchestrator.ValidationError
	if errors.As(err, &ve) {
		render.Status(r, status)
		render.JSON(w, r, ErrorResponse{Error: ve.Error(), Fields: ve.Fields})
		return
	}

	msg := http.StatusText(status)
	switch status {
	case http.StatusBadRequest, http.StatusNotFound, http.StatusConflict, http.StatusBadGateway, http.StatusServiceUnavailable:
		msg = err.Error()
	}
	Error(w, r, status, msg)
}

func StatusFor(err error) int {
	var (
		ve     *orchestrator.ValidationError
		apiErr *client.APIError
	)
	switch {
	case errors.As(err, &ve):
		return http.StatusUnprocessableEntity
	case errors.Is(err, storage.ErrReportNotFound), errors.Is(err, orchestrator.ErrNoReport):
		return http.StatusNotFound
	case errors.Is(err, storage.ErrDuplicateItem), errors.Is(err, ErrInvalidReport),
		errors.Is(err, storage.ErrValueTooLong), errors.Is(err, lookup.ErrInvalidCatalogEntry):
		return http.StatusBadRequest
	case errors.Is(err, storage.ErrDuplicateCatalog):
		return http.StatusConflict
	case errors.Is(err, client.ErrUnreachable):
		return http.StatusBadGateway
	case errors.Is(err, lookup.ErrCatalogUnavailable):
		return http.StatusServiceUnavailable
	case errors.As(err, &apiErr):
		if apiErr.Status >= 400 && apiErr.Status < 500 {
			return apiErr.Status
		}
		return http.StatusBadGateway
	}
	return http.StatusInternalServerError
}

func ReportID(r *http.Request) (int64, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid report id %q", raw)
	}
	return id, nil
}

func ReportFilter(r *http.Request) storage.ReportFilter {
	q := r.URL.Query()
	return storage.ReportFilter{
		Date:          q.Get("date"),
		PartName:      q.Get("part_name"),
		OperationName: q.Get("operation_name"),
		CustomerName:  q.Get("customer_name"),
	}
}

// ValidateReport checks what the database would otherwise reject or store
// in an unreadable shape.
func ValidateReport(rep *storage.Report) error {
	if err := rep.CheckLengths(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidReport, err)
	}

	seen := make(map[int]struct{}, len(rep.Items))
	for _, it := range rep.Items {
		if !it.IsProduct() && !it.IsProcess() {
			return fmt.Errorf("%w: sr_no %d out of range 1..%d", ErrInvalidReport, it.SrNo, storage.ProcessSrMax)
		}
		if it.Item == "" {
			return fmt.Errorf("%w: item name is required for sr_no %d", ErrInvalidReport, it.SrNo)
		}
		if _, ok := seen[it.SrNo]; ok {
			return fmt.Errorf("%w: sr_no %d", storage.ErrDuplicateItem, it.SrNo)
		}
		seen[it.SrNo] = struct{}{}
	}

	for i, e := range rep.ScheduleEntries {
		if !schedule.ValidTimeType(e.TimeType) {
			return fmt.Errorf("%w: schedule entry %d: unknown time_type %q", ErrInvalidReport, i, e.TimeType)
		}
		if e.RowOrder < 0 || e.SlotIndex < 0 {
			return fmt.Errorf("%w: schedule entry %d: negative row_order or slot_index", ErrInvalidReport, i)
		}
	}

	return nil
}
