package get

import (
	"context"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/form"
	"patrol-inspection/internal/storage"
)

type ReportLoader interface {
	Get(ctx context.Context, id int64) (*storage.Report, error)
	Latest(ctx context.Context, filter storage.ReportFilter) (*storage.Report, error)
}

// GetForm отдает состояние мастера.
// mode=new: пустая форма; mode=edit&id=N: форма отчета N;
// mode=edit без id: последний отчет по фильтрам списка.
func GetForm(log *slog.Logger, loader ReportLoader, now func() time.Time) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.form.GetForm"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		q := r.URL.Query()
		mode := form.Mode(q.Get("mode"))
		if mode == "" {
			mode = form.ModeNew
		}

		switch mode {
		case form.ModeNew:
			render.JSON(w, r, form.New(now()).View())
			return
		case form.ModeEdit:
		default:
			api.Error(w, r, http.StatusBadRequest, "mode must be new or edit")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		var (
			rep *storage.Report
			err error
		)
		if raw := q.Get("id"); raw != "" {
			id, perr := strconv.ParseInt(raw, 10, 64)
			if perr != nil || id <= 0 {
				api.Error(w, r, http.StatusBadRequest, "invalid report id "+strconv.Quote(raw))
				return
			}
			rep, err = loader.Get(ctx, id)
		} else {
			rep, err = loader.Latest(ctx, api.ReportFilter(r))
		}
		if err != nil {
			if api.StatusFor(err) == http.StatusNotFound {
				log.Warn("no report to edit", slog.String("error", err.Error()))
			} else {
				log.Error("failed to load report", slog.String("error", err.Error()))
			}
			api.Fail(w, r, err)
			return
		}

		render.JSON(w, r, form.FromReport(rep).View())
	}
}
