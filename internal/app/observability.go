package app

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ft5-league/internal/config"
	"github.com/riskibarqy/ft5-league/internal/observability"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
)

// Telemetry holds the process-wide exporters started for the API.
type Telemetry struct {
	Logger *logging.Logger

	shutdownLogs    func(context.Context) error
	shutdownTracing func(context.Context) error
	stopProfiler    func() error
	pprofServer     *http.Server
}

// StartTelemetry builds the logger, installs it as the default and starts the
// optional exporters. Whatever started before a failure is shut down again.
func StartTelemetry(cfg config.Config) (*Telemetry, error) {
	logger, shutdownLogs, err := observability.InitBetterStackLogger(cfg, logging.NewJSON(cfg.LogLevel))
	if err != nil {
		return nil, crerr.Wrap(err, "init betterstack")
	}
	logging.SetDefault(logger)

	t := &Telemetry{Logger: logger, shutdownLogs: shutdownLogs}

	if t.shutdownTracing, err = observability.InitUptrace(cfg, logger); err != nil {
		t.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "init uptrace")
	}
	if t.stopProfiler, err = observability.InitPyroscope(cfg, logger); err != nil {
		t.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "init pyroscope")
	}
	if t.pprofServer, err = observability.StartPprofServer(cfg, logger); err != nil {
		t.Shutdown(context.Background())
		return nil, crerr.Wrap(err, "start pprof")
	}

	return t, nil
}

// Shutdown stops the exporters in reverse start order. The log shipper drains last.
func (t *Telemetry) Shutdown(ctx context.Context) {
	if err := observability.StopPprofServer(t.pprofServer, t.Logger, 5*time.Second); err != nil {
		t.Logger.Warn("stop pprof failed", "error", err)
	}
	if t.stopProfiler != nil {
		if err := t.stopProfiler(); err != nil {
			t.Logger.Warn("stop pyroscope failed", "error", err)
		}
	}
	if t.shutdownTracing != nil {
		if err := t.shutdownTracing(ctx); err != nil {
			t.Logger.Warn("shutdown uptrace failed", "error", err)
		}
	}
	if t.shutdownLogs != nil {
		_ = t.shutdownLogs(ctx)
	}
}
