package edit

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/form"
)

type Request struct {
	State form.State `json:"state"`
	Edit  form.Edit  `json:"edit"`
}

// Edit применяет одну правку к строкам параметров или к слотам расписания
// и отдает обновленное состояние. Неприменимая правка отвечает 422.
func Edit(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.form.Edit"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.Warn("invalid edit request", slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		st := req.State
		if err := st.Apply(req.Edit); err != nil {
			log.Debug("edit refused", slog.String("edit", string(req.Edit.Op)), slog.String("error", err.Error()))
			api.Error(w, r, http.StatusUnprocessableEntity, err.Error())
			return
		}

		render.JSON(w, r, st.View())
	}
}
