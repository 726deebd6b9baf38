package flatten

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/schedule"
)

type Request struct {
	Slots   []schedule.Slot  `json:"slots"`
	Session schedule.Session `json:"session"`
}

// Flatten turns the edited slots into the flat entries sent with a report.
func Flatten(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.schedule.Flatten"

		var req Request
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			log.With(slog.String("op", op)).Warn("invalid slots", slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		for i, s := range req.Slots {
			if !schedule.ValidTimeType(s.Type) {
				api.Error(w, r, http.StatusBadRequest, fmt.Sprintf("slot %d: unknown time type %q", i, s.Type))
				return
			}
		}

		render.JSON(w, r, schedule.Flatten(req.Slots, req.Session))
	}
}
