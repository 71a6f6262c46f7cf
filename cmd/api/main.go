package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/riskibarqy/ft5-league/internal/app"
	"github.com/riskibarqy/ft5-league/internal/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(err)
	}

	telemetry, err := app.StartTelemetry(cfg)
	if err != nil {
		panic(err)
	}
	logger := telemetry.Logger

	services, err := app.NewServices(cfg, logger)
	if err != nil {
		logger.Error("build services", "error", err)
		os.Exit(1)
	}

	srv, err := app.NewHTTPServer(cfg, services, logger)
	if err != nil {
		logger.Error("build app", "error", err)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	warmCtx, cancelWarm := context.WithTimeout(ctx, cfg.DataTimeout)
	services.Warm(warmCtx, logger)
	cancelWarm()

	go func() {
		logger.Info("http server starting", "addr", cfg.HTTPAddr, "data_mode", cfg.DataMode)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server failed", "error", err)
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "error", err)
	}
	logger.Info("http server stopped")
	telemetry.Shutdown(shutdownCtx)
}
