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

type CatalogProvider interface {
	ItemCatalog(ctx context.Context, operation string) (storage.ItemCatalog, error)
}

// GetInspectionItems отдает список параметров по операции (?operation=).
func GetInspectionItems(log *slog.Logger, provider CatalogProvider) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.inspection-items.GetInspectionItems"

		operation := r.URL.Query().Get("operation")

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		catalog, err := provider.ItemCatalog(ctx, operation)
		if err != nil {
			log.With(
				slog.String("op", op),
				slog.String("request_id", middleware.GetReqID(r.Context())),
				slog.String("operation", operation),
				slog.String("error", err.Error()),
			).Error("failed to load item catalog")
			api.Fail(w, r, err)
			return
		}

		render.JSON(w, r, catalog)
	}
}
