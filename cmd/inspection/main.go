package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"patrol-inspection/internal/client"
	"patrol-inspection/internal/config"
	"patrol-inspection/internal/layout"
	generate_excel "patrol-inspection/internal/service/generate-excel"
	"patrol-inspection/internal/service/lookup"
	"patrol-inspection/internal/service/orchestrator"
	printreport "patrol-inspection/internal/service/print-report"
	"patrol-inspection/internal/storage"
	"patrol-inspection/internal/storage/mysql"
)

const (
	envLocal = "local"
	envDev   = "dev"
	envProd  = "prod"
)

// reportStore is served either by the local database or by a remote report API.
type reportStore interface {
	ListReports(ctx context.Context, filter storage.ReportFilter) ([]storage.ReportSummary, error)
	GetReport(ctx context.Context, id int64) (*storage.Report, error)
	CreateReport(ctx context.Context, r *storage.Report) (int64, error)
	UpdateReport(ctx context.Context, id int64, r *storage.Report) error
	DeleteReport(ctx context.Context, id int64) error
}

type optionsProvider interface {
	DropdownOptions(ctx context.Context) (storage.DropdownOptions, error)
}

type services struct {
	reports  reportStore
	options  optionsProvider
	lookup   *lookup.Service
	orch     *orchestrator.Orchestrator
	renderer *printreport.Renderer
	excel    *generate_excel.GenerateExcelService
}

func main() {
	cfg := config.MustConfig()

	log := setupLogger(cfg.Env)

	var (
		reports reportStore
		store   lookup.Store
		remote  *client.Client
	)

	if cfg.Backend.URL != "" {
		remote = client.New(cfg.Backend.URL, cfg.Backend.Timeout)
		reports = remote
		log.Info("using remote report api", slog.String("url", cfg.Backend.URL))
	} else {
		db, err := mysql.New(cfg.Database)
		if err != nil {
			log.Error("failed to open db", slog.String("error", err.Error()))
			os.Exit(1)
		}
		defer db.Close()

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		err = db.Migrate(ctx)
		cancel()
		if err != nil {
			log.Error("failed to migrate db", slog.String("error", err.Error()))
			os.Exit(1)
		}

		reports = db
		store = db
	}

	lookupService := lookup.New(log, store, cfg.Cache.TTL)

	warmCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	if err := lookupService.Warm(warmCtx); err != nil {
		// не критично, кэш заполнится на первом запросе
		log.Warn("failed to warm lookup cache", slog.String("error", err.Error()))
	}
	cancel()

	svc := services{
		reports:  reports,
		options:  lookupService,
		lookup:   lookupService,
		orch:     orchestrator.New(log, reports),
		renderer: printreport.New(layout.A4Landscape),
		excel:    generate_excel.NewGenerateService(reports),
	}
	if remote != nil {
		// списки берем у удаленного api, там они уже смержены с базой
		svc.options = remote
	}

	srv := &http.Server{
		Addr:         cfg.Address,
		Handler:      routes(*cfg, log, svc),
		ReadTimeout:  cfg.HTTPServer.Timeout,
		WriteTimeout: cfg.HTTPServer.Timeout,
		IdleTimeout:  cfg.HTTPServer.IdleTimeout,
	}

	go func() {
		log.Info("server started", slog.String("address", cfg.Address), slog.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error("failed start server", slog.String("error", err.Error()))
			os.Exit(1)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("failed to stop server", slog.String("error", err.Error()))
		return
	}

	log.Info("server stopped")
}
