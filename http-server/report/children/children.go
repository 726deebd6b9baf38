package children

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/storage"
)

type ReportGetter interface {
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
}

// GetItems отдает параметры контроля одного отчета, ?report_id= обязателен.
func GetItems(log *slog.Logger, reports ReportGetter) http.HandlerFunc {
	return list(log, reports, "handlers.report.GetItems", func(rep *storage.Report) any {
		if rep.Items == nil {
			return []storage.InspectionItem{}
		}
		return rep.Items
	})
}

// GetEntries отдает строки расписания одного отчета в порядке хранения.
func GetEntries(log *slog.Logger, reports ReportGetter) http.HandlerFunc {
	return list(log, reports, "handlers.report.GetEntries", func(rep *storage.Report) any {
		if rep.ScheduleEntries == nil {
			return []storage.ScheduleEntry{}
		}
		return rep.ScheduleEntries
	})
}

func list(log *slog.Logger, reports ReportGetter, op string, pick func(*storage.Report) any) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		raw := r.URL.Query().Get("report_id")
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || id <= 0 {
			api.Error(w, r, http.StatusBadRequest, "report_id query parameter is required")
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

		render.JSON(w, r, pick(rep))
	}
}
