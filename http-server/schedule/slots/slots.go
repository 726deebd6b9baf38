package slots

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/schedule"
	"patrol-inspection/internal/storage"
)

type ReportGetter interface {
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
}

type Response struct {
	*schedule.Grid
	Session  schedule.Session `json:"session"`
	PhysRows int              `json:"physical_rows"`
}

// GetSlots отдает сетку слотов отчета в том виде, в каком ее редактирует форма.
func GetSlots(log *slog.Logger, reports ReportGetter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.GetSlots"

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
			log.Warn("failed to get report", slog.Int64("id", id), slog.String("error", err.Error()))
			api.Fail(w, r, err)
			return
		}

		grid := schedule.NewGrid(rep.ScheduleEntries)
		session := schedule.SessionOf(rep.ScheduleEntries)
		if session.Date == "" {
			session.Date = rep.Date
		}

		render.JSON(w, r, Response{Grid: grid, Session: session, PhysRows: grid.PhysicalRows()})
	}
}
