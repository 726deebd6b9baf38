package update

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/http-server/report/save"
)

// PatchReport меняет только переданные поля шапки. Параметры и замеры
// заменяются целиком, если пришел соответствующий ключ, иначе остаются как были.
func PatchReport(log *slog.Logger, reports ReportUpdater, cache save.Invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.report.PatchReport"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := api.ReportID(r)
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		body, err := io.ReadAll(r.Body)
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, "cannot read body: "+err.Error())
			return
		}

		var keys map[string]any
		if err := render.DecodeJSON(bytes.NewReader(body), &keys); err != nil {
			log.Warn("invalid request body", slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		cur, err := reports.GetReport(ctx, id)
		if err != nil {
			if api.StatusFor(err) == http.StatusNotFound {
				log.Warn("report not found", slog.Int64("id", id))
			} else {
				log.Error("failed to load report", slog.Int64("id", id), slog.String("error", err.Error()))
			}
			api.Fail(w, r, err)
			return
		}

		// присланный список заменяет старый, а не дописывается поверх его элементов
		if _, ok := keys["items"]; ok {
			cur.Items = nil
		}
		if _, ok := keys["schedule_entries"]; ok {
			cur.ScheduleEntries = nil
		}
		if err := render.DecodeJSON(bytes.NewReader(body), cur); err != nil {
			api.Error(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}
		cur.ID = id

		if err := api.ValidateReport(cur); err != nil {
			api.Fail(w, r, err)
			return
		}

		if err := reports.UpdateReport(ctx, id, cur); err != nil {
			log.Error("failed to patch report", slog.Int64("id", id), slog.String("error", err.Error()))
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

		log.Info("report patched", slog.Int64("id", id))

		render.JSON(w, r, saved)
	}
}
