package app

import (
	"context"
	"net/http"
	"time"

	crerr "github.com/cockroachdb/errors"
	"github.com/riskibarqy/ft5-league/external/jsonstore"
	"github.com/riskibarqy/ft5-league/internal/config"
	"github.com/riskibarqy/ft5-league/internal/domain/player"
	"github.com/riskibarqy/ft5-league/internal/infrastructure/document"
	"github.com/riskibarqy/ft5-league/internal/infrastructure/source/filesystem"
	"github.com/riskibarqy/ft5-league/internal/interfaces/httpapi"
	idgen "github.com/riskibarqy/ft5-league/internal/platform/id"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
	"github.com/riskibarqy/ft5-league/internal/platform/resilience"
	"github.com/riskibarqy/ft5-league/internal/usecase"
)

// Services is the read side shared by the HTTP API and the operator CLI.
type Services struct {
	Dataset *usecase.DatasetService
	Home    *usecase.HomeService
	Player  *usecase.PlayerService
}

func NewServices(cfg config.Config, logger *logging.Logger) (*Services, error) {
	if logger == nil {
		logger = logging.Default()
	}

	source, err := NewDocumentSource(cfg, logger)
	if err != nil {
		return nil, err
	}

	dataset := usecase.NewDatasetService(source, document.NewDatasetDecoder(logger), usecase.DatasetServiceConfig{
		TTL:         cfg.SnapshotTTL,
		LoadTimeout: cfg.DataTimeout * time.Duration(cfg.DataMaxRetries+1),
		Workers:     cfg.SnapshotWorkers,
		Location:    cfg.LeagueLocation,
		Logger:      logger,
	})
	images := player.ImagePaths{
		AssetsDir:     cfg.AssetsDir,
		DefaultAvatar: cfg.DefaultAvatar,
	}

	return &Services{
		Dataset: dataset,
		Home:    usecase.NewHomeService(dataset, images),
		Player:  usecase.NewPlayerService(dataset, images),
	}, nil
}

// NewDocumentSource picks the document backend for DATA_MODE.
func NewDocumentSource(cfg config.Config, logger *logging.Logger) (usecase.DocumentSource, error) {
	switch cfg.DataMode {
	case config.DataModeLocal:
		return filesystem.NewSource(cfg.DataDir, map[usecase.Document]string{
			usecase.DocumentPlayers:   cfg.DataPlayersPath,
			usecase.DocumentCalendar:  cfg.DataCalendarPath,
			usecase.DocumentStandings: cfg.DataStandingsPath,
		}), nil
	case config.DataModeWeb:
		return jsonstore.NewClient(jsonstore.ClientConfig{
			URLs: map[usecase.Document]string{
				usecase.DocumentPlayers:   cfg.DataPlayersURL,
				usecase.DocumentCalendar:  cfg.DataCalendarURL,
				usecase.DocumentStandings: cfg.DataStandingsURL,
			},
			Timeout:    cfg.DataTimeout,
			MaxRetries: cfg.DataMaxRetries,
			Logger:     logger,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.DataCircuitEnabled,
				FailureThreshold: cfg.DataCircuitFailureCount,
				OpenTimeout:      cfg.DataCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.DataCircuitHalfOpenMaxReq,
			},
		}), nil
	default:
		return nil, crerr.Newf("unsupported data mode %q", cfg.DataMode)
	}
}

func NewHTTPServer(cfg config.Config, services *Services, logger *logging.Logger) (*http.Server, error) {
	if services == nil {
		return nil, crerr.New("services are required")
	}
	if cfg.HTTPAddr == "" {
		return nil, crerr.New("http server addr cannot be empty")
	}

	handler := httpapi.NewHandler(services.Home, services.Player, logger)
	router := httpapi.NewRouter(handler, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		ReplayLinksMobile:  cfg.ReplayLinksMobile,
		RequestIDs:         idgen.NewPrefixedGenerator("req_", 12),
	})

	return &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}, nil
}

// Warm loads the first snapshot. A failure is logged and left for the next request to retry.
func (s *Services) Warm(ctx context.Context, logger *logging.Logger) {
	snapshot, err := s.Dataset.Current(ctx)
	if err != nil {
		logger.WarnContext(ctx, "initial snapshot load failed", "error", err)
		return
	}
	logger.InfoContext(ctx, "initial snapshot loaded",
		"active_season", snapshot.ActiveSeason,
		"seasons", snapshot.Seasons,
	)
}
