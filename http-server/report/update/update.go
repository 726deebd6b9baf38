package update

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/http-server/report/save"
	"patrol-inspection/internal/storage"
)

type ReportUpdater interface {
	UpdateReport(ctx context.Context, id int64, r *storage.Report) error
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
}

// UpdateReport перезаписывает шапку и полностью заменяет параметры и замеры.
func UpdateReport(log *slog.Logger, reports ReportUpdater, cache save.Invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.UpdateReport"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := api.ReportID(r)
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		var req storage.Report
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Warn("invalid request body", slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		if err := api.ValidateReport(&req); err != nil {
			api.Fail(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		if err := reports.UpdateReport(ctx, id, &req); err != nil {
			if api.StatusFor(err) == http.StatusNotFound {
				log.Warn("report not found", slog.Int64("id", id))
			} else {
				log.Error("failed to update report", slog.Int64("id", id), slog.String("error", err.Error()))
			}
			api.Fail(w, r, err)
			return
		}

		if cache != nil {
			cache.Invalidate()
		}

		saved, err := reports.GetReport(ctx, id)
		if err != nil {
			log.Error("failed to reload report", slog.Int64("id", id), slog.String("error", err.Error()))
			api.Fail(w, r, err)
			return
		}

		log.Info("report updated", slog.Int64("id", id))

		render.JSON(w, r, saved)
	}
}
