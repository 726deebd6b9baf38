package generate_excel

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5/middleware"

	"patrol-inspection/http-server/api"
)

type GenerateExcelHandler interface {
	GenerateExcel(ctx context.Context, id int64) ([]byte, error)
}

func GenerateReportExcel(log *slog.Logger, gen GenerateExcelHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		const op = "handler.report.GenerateReportExcel"

		log := log.With(
			slog.String("op", op),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)

		id, err := api.ReportID(r)
		if err != nil {
			api.Error(w, r, http.StatusBadRequest, err.Error())
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second) // На Excel можно побольше времени
		defer cancel()

		excelBytes, err := gen.GenerateExcel(ctx, id)
		if err != nil {
			log.Error("failed to generate excel", slog.Int64("id", id), slog.String("error", err.Error()))
			api.Fail(w, r, err)
			return
		}

		fileName := fmt.Sprintf("Inspection_Report_%d_%s.xlsx", id, time.Now().Format("2006-01-02_150405"))

		w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		w.Header().Set("Content-Disposition", "attachment; filename="+fileName)
		w.Header().Set("Content-Length", strconv.Itoa(len(excelBytes)))
		if _, err := w.Write(excelBytes); err != nil {
			log.Warn("failed to write excel", slog.String("error", err.Error()))
		}
	}
}
