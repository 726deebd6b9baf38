package get

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/storage"
)

type OptionsProvider interface {
	DropdownOptions(ctx context.Context) (storage.DropdownOptions, error)
}

func GetDropdownOptions(log *slog.Logger, provider OptionsProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.dropdown.GetDropdownOptions"

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		opts, err := provider.DropdownOptions(ctx)
		if err != nil {
			log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("error", err.Error()),
			).Error("failed to load dropdown options")
			api.Fail(w, r, err)
			return
		}

		render.JSON(w, r, opts)
	}
}
