package submit

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/http-server/report/save"
	"patrol-inspection/internal/form"
	"patrol-inspection/internal/service/orchestrator"
	"patrol-inspection/internal/storage"
)

type ReportSaver interface {
	Save(ctx context.Context, intent orchestrator.Intent, currentID int64, r *storage.Report) (*storage.Report, error)
}

// Submit saves the posted form. The intent comes from ?mode=, falling back
// to the mode stored in the form.
func Submit(log *slog.Logger, saver ReportSaver, cache save.Invalidator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.form.Submit"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var st form.State
		if err := render.DecodeJSON(r.Body, &st); err != nil {
			log.Warn("invalid form state", slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		mode := r.URL.Query().Get("mode")
		if mode == "" {
			mode = string(st.Mode)
		}
		intent := orchestrator.ParseIntent(mode)

		payload := st.Report()
		if err := api.ValidateReport(payload); err != nil {
			api.Fail(w, r, err)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		saved, err := saver.Save(ctx, intent, st.ReportID, payload)
		if err != nil {
			var ve *orchestrator.ValidationError
			if errors.As(err, &ve) {
				log.Info("form rejected", slog.Any("fields", ve.Fields))
			} else {
				log.Error("failed to save form", slog.String("error", err.Error()))
			}
			api.Fail(w, r, err)
			return
		}

		if cache != nil {
			cache.Invalidate()
		}

		log.Info("form saved", slog.Int64("id", saved.ID), slog.String("intent", intent.String()))

		render.JSON(w, r, saved)
	}
}
