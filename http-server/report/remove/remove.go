package remove

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"patrol-inspection/http-server/api"
)

type ReportDeleter interface {
	DeleteReport(ctx context.Context, id int64) error
}

func DeleteReport(log *slog.Logger, reports ReportDeleter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.DeleteReport"

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

		if err := reports.DeleteReport(ctx, id); err != nil {
			if api.StatusFor(err) == http.StatusNotFound {
				log.Warn("report not found", slog.Int64("id", id))
			} else {
				log.Error("failed to delete report", slog.Int64("id", id), slog.String("error", err.Error()))
			}
			api.Fail(w, r, err)
			return
		}

		log.Info("report deleted", slog.Int64("id", id))

		w.WriteHeader(http.StatusNoContent)
	}
}
