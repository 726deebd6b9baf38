package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/storage"
)

type ReportGetter interface {
	ListReports(ctx context.Context, filter storage.ReportFilter) ([]storage.ReportSummary, error)
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
}

// GetReports отдает список отчетов, новые сверху; фильтры по точному совпадению.
func GetReports(log *slog.Logger, reports ReportGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GetReports"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		filter := api.ReportFilter(r)

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		list, err := reports.ListReports(ctx, filter)
		if err != nil {
			log.Error("failed to list reports", slog.String("error", err.Error()))
			api.Fail(w, r, err)
			return
		}

		render.JSON(w, r, list)
	}
}

func GetReport(log *slog.Logger, reports ReportGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.GetReport"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := api.ReportID(r)
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		rep, err := reports.GetReport(ctx, id)
		if err != nil {
			if api.StatusFor(err) == http.StatusNotFound {
				log.Warn("report not found", slog.Int64("id", id))
			} else {
				log.Error("failed to get report", slog.Int64("id", id), slog.String("error", err.Error()))
			}
			api.Fail(w, r, err)
			return
		}

		render.JSON(w, r, rep)
	}
}
