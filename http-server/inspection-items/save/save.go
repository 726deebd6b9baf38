package save

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/render"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/items"
	"patrol-inspection/internal/storage"
)

type CatalogSaver interface {
	AddCatalogEntry(ctx context.Context, e storage.CatalogEntry) (int64, error)
}

type Response struct {
	ID int64 `json:"id"`
}

func SaveCatalogEntry(log *slog.Logger, saver CatalogSaver) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.inspection-items.SaveCatalogEntry"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		var req storage.CatalogEntry
		if err := render.DecodeJSON(r.Body, &req); err != nil {
			api.Error(w, r, http.StatusBadRequest, "invalid JSON: "+err.Error())
			return
		}

		req.Operation = strings.TrimSpace(req.Operation)
		req.Item = strings.TrimSpace(req.Item)

		if _, err := items.ParseCategory(req.Category); err != nil {
			api.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}
		if req.Operation == "" || req.Item == "" {
			api.Error(w, r, http.StatusBadRequest, "operation and item are required")
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
		defer cancel()

		id, err := saver.AddCatalogEntry(ctx, req)
		if err != nil {
			if errors.Is(err, storage.ErrDuplicateCatalog) {
				log.Warn("catalog entry exists", slog.String("operation", req.Operation), slog.String("item", req.Item))
			} else {
				log.Error("failed to save catalog entry", slog.String("error", err.Error()))
			}
			api.Fail(w, r, err)
			return
		}

		log.Info("catalog entry saved", slog.Int64("id", id))

		render.Status(r, http.StatusCreated)
		render.JSON(w, r, Response{ID: id})
	}
}
