package save

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

type ReportCreator interface {
	CreateReport(ctx context.Context, r *storage.Report) (int64, error)
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
}

// Invalidator drops cached dropdown values after new header values are stored.
type Invalidator interface {
	Invalidate()
}

func SaveReport(log *slog.Logger, reports ReportCreator, cache Invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.SaveReport"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

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

		id, err := reports.CreateReport(ctx, &req)
		if err != nil {
			log.Error("failed to create report", slog.String("error", err.Error()))
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

		log.Info("report created", slog.Int64("id", id))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, saved)
	}
}
