package main

import (
	"log/slog"
	"net/http"
	"os"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	getdropdown "patrol-inspection/http-server/dropdown/get"
	advanceform "patrol-inspection/http-server/form/advance"
	editform "patrol-inspection/http-server/form/edit"
	getform "patrol-inspection/http-server/form/get"
	submitform "patrol-inspection/http-server/form/submit"
	generate_excel "patrol-inspection/http-server/generate-report/generate-excel"
	getitems "patrol-inspection/http-server/inspection-items/get"
	saveitems "patrol-inspection/http-server/inspection-items/save"
	printlayout "patrol-inspection/http-server/print-report/layout"
	printpdf "patrol-inspection/http-server/print-report/pdf"
	"patrol-inspection/http-server/report/children"
	getreport "patrol-inspection/http-server/report/get"
	"patrol-inspection/http-server/report/remove"
	"patrol-inspection/http-server/report/save"
	"patrol-inspection/http-server/report/update"
	"patrol-inspection/http-server/schedule/flatten"
	"patrol-inspection/http-server/schedule/slots"
	"patrol-inspection/internal/config"
	"patrol-inspection/internal/layout"
	"patrol-inspection/internal/middleware/auth"
)

func routes(cfg config.Config, log *slog.Logger, svc services) *chi.Mux {
	router := chi.NewRouter()

	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.HTTPServer.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Content-Disposition", printpdf.OverflowHeader},
		AllowCredentials: true,
	})

	router.Use(corsHandler.Handler)

	router.Use(middleware.RequestID)
	//ip пользователя
	router.Use(middleware.RealIP)
	router.Use(middleware.Logger)
	router.Use(middleware.Recoverer)
	router.Use(middleware.StripSlashes)

	router.Route("/api", func(r chi.Router) {
		// отчеты
		r.Get("/reports", getreport.GetReports(log, svc.reports))
		r.Post("/reports", save.SaveReport(log, svc.reports, svc.lookup))
		r.Get("/reports/{id}", getreport.GetReport(log, svc.reports))
		r.Put("/reports/{id}", update.UpdateReport(log, svc.reports, svc.lookup))
		r.Patch("/reports/{id}", update.PatchReport(log, svc.reports, svc.lookup))
		r.Get("/items", children.GetItems(log, svc.reports))
		r.Get("/schedule", children.GetEntries(log, svc.reports))

		// сетка расписания
		r.Get("/reports/{id}/slots", slots.GetSlots(log, svc.reports))
		r.Post("/schedule/flatten", flatten.Flatten(log))

		// печать и выгрузка
		r.Get("/reports/{id}/layout", printlayout.GetLayout(log, svc.reports, layout.A4Landscape))
		r.Get("/reports/{id}/pdf", printpdf.GetPDF(log, svc.reports, svc.renderer))
		r.Get("/reports/{id}/xlsx", generate_excel.GenerateReportExcel(log, svc.excel))

		// справочники
		r.Get("/dropdown-options", getdropdown.GetDropdownOptions(log, svc.options))
		r.Get("/inspection-items", getitems.GetInspectionItems(log, svc.lookup))

		// мастер формы
		r.Get("/form", getform.GetForm(log, svc.orch, time.Now))
		r.Post("/form/advance", advanceform.Advance(log))
		r.Post("/form/edit", editform.Edit(log))
		r.Post("/form/submit", submitform.Submit(log, svc.orch, svc.lookup))

		r.Group(func(admin chi.Router) {
			admin.Use(auth.BasicAuth(log, cfg.AdminLogin, cfg.AdminPass))

			admin.Delete("/reports/{id}", remove.DeleteReport(log, svc.reports))
			admin.Post("/admin/inspection-items", saveitems.SaveCatalogEntry(log, svc.lookup))
		})
	})

	mountFrontend(router, log, cfg.FrontendDir)

	return router
}

// mountFrontend отдает собранный фронтенд; неизвестные пути уходят в index.html.
func mountFrontend(router chi.Router, log *slog.Logger, frontendDir string) {
	if _, err := os.Stat(frontendDir); os.IsNotExist(err) {
		log.Warn("frontend dir not found, serving api only", slog.String("path", frontendDir))
		return
	}

	index := filepath.Join(frontendDir, "index.html")

	router.HandleFunc("/*", func(w http.ResponseWriter, r *http.Request) {
		path := filepath.Join(frontendDir, filepath.Clean("/"+r.URL.Path))
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			http.ServeFile(w, r, path)
			return
		}
		http.ServeFile(w, r, index)
	})
}
