package advance

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/form"
)

type StepResponse struct {
	Error  string `json:"error"`
	Step   string `json:"step"`
	Reason string `json:"reason,omitempty"`
}

// Advance moves the posted form one step forward, or back with ?direction=back.
// A step that is not done answers 422 with the failing requirement.
func Advance(log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.form.Advance"

		var st form.State
		if err := render.DecodeJSON(r.Body, &st); err != nil {
			log.With(slog.String("op", op)).Warn("invalid form state", slog.String("error", err.Error()))
			api.Error(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		var err error
		if r.URL.Query().Get("direction") == "back" {
			err = st.Back()
		} else {
			err = st.Advance()
		}

		if err != nil {
			resp := StepResponse{Error: err.Error(), Step: st.Step.String()}
			var se *form.StepError
			if errors.As(err, &se) {
				resp.Reason = se.Reason
			}
			render.Status(r, http.StatusUnprocessableEntity)
			render.JSON(w, r, resp)
			return
		}

		render.JSON(w, r, st.View())
	}
}
