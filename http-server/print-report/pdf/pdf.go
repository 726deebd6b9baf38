package pdf

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"patrol-inspection/http-server/api"
	"patrol-inspection/internal/layout"
	"patrol-inspection/internal/storage"
)

// OverflowHeader is set to "true" when the content does not fit one page.
const OverflowHeader = "X-Layout-Overflow"

type ReportGetter interface {
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
}

type Renderer interface {
	Render(w io.Writer, rep *storage.Report) (layout.Layout, error)
}

func GetPDF(log *slog.Logger, reports ReportGetter, renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handlers.print.GetPDF"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := api.ReportID(r)
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
		defer cancel()

		rep, err := reports.GetReport(ctx, id)
		if err != nil {
			log.Warn("failed to get report", slog.Int64("id", id), slog.String("error", err.Error()))
			api.Fail(w, r, err)
			return
		}

		// рендерим целиком до записи заголовков
		var buf bytes.Buffer
		lay, err := renderer.Render(&buf, rep)
		if err != nil {
			log.Error("failed to render pdf", slog.Int64("id", id), slog.String("error", err.Error()))
			api.Fail(w, r, err)
			return
		}

		fileName := fmt.Sprintf("Inspection_Report_%d.pdf", id)

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", "inline; filename="+fileName)
		w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
		w.Header().Set(OverflowHeader, strconv.FormatBool(lay.Overflow))
		if _, err := w.Write(buf.Bytes()); err != nil {
			log.Warn("failed to write pdf", slog.String("error", err.Error()))
		}
	}
}
