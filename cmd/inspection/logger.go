package main

import (
	"context"
	"log/slog"
	"os"
)

// dualHandler пишет все в stdout, а ошибки дополнительно в errors.log.
type dualHandler struct {
	coreHandler  slog.Handler
	errorHandler slog.Handler
}

func (h *dualHandler) Enabled(ctx context.Context, lvl slog.Level) bool {
	return h.coreHandler.Enabled(ctx, lvl) || h.errorHandler.Enabled(ctx, lvl)
}

func (h *dualHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.coreHandler.Enabled(ctx, r.Level) {
		if err := h.coreHandler.Handle(ctx, r); err != nil {
			return err
		}
	}

	if r.Level >= slog.LevelError && h.errorHandler.Enabled(ctx, r.Level) {
		// ошибка записи в файл не должна ронять основной вывод
		_ = h.errorHandler.Handle(ctx, r.Clone())
	}

	return nil
}

func (h *dualHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithAttrs(attrs),
		errorHandler: h.errorHandler.WithAttrs(attrs),
	}
}

func (h *dualHandler) WithGroup(name string) slog.Handler {
	return &dualHandler{
		coreHandler:  h.coreHandler.WithGroup(name),
		errorHandler: h.errorHandler.WithGroup(name),
	}
}

func setupLogger(env string) *slog.Logger {
	level := slog.LevelDebug
	if env == envProd {
		level = slog.LevelInfo
	}
	opts := &slog.HandlerOptions{Level: level}

	var coreHandler slog.Handler
	switch env {
	case envDev:
		coreHandler = slog.NewJSONHandler(os.Stdout, opts)
	case envLocal, envProd:
		coreHandler = slog.NewTextHandler(os.Stdout, opts)
	default:
		coreHandler = slog.NewTextHandler(os.Stdout, opts)
	}

	errorFile, err := os.OpenFile("errors.log", os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		slog.Warn("cannot open error log file", slog.String("error", err.Error()))
		return slog.New(coreHandler)
	}

	return slog.New(&dualHandler{
		coreHandler:  coreHandler,
		errorHandler: slog.NewTextHandler(errorFile, &slog.HandlerOptions{Level: slog.LevelError}),
	})
}
