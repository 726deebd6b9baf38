package layout

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	printlayout "patrol-inspection/internal/layout"
	"patrol-inspection/internal/storage"
)

type ReportGetter interface {
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
}

type Response struct {
	Layout  printlayout.Layout  `json:"layout"`
	Budget  printlayout.Budget  `json:"budget"`
	Columns []string            `json:"columns"`
	Groups  []printlayout.Group `json:"groups"`
}

// GetLayout отдает размеры печатной формы отчета и строки расписания для печати.
func GetLayout(log *slog.Logger, reports ReportGetter, budget printlayout.Budget) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.print.GetLayout"

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

		lay, groups := printlayout.ForReport(budget, rep)
		if lay.Overflow {
			log.Info("print layout overflows the page", slog.Int64("id", id), slog.Int("schedule_rows", lay.ScheduleRows))
		}

		render.JSON(w, r, Response{
			Layout:  lay,
			Budget:  budget,
			Columns: printlayout.ColumnLabels(rep.Items),
			Groups:  groups,
		})
	}
}
