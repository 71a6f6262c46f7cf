package httpapi

import (
	"net/http"

	"github.com/riskibarqy/ft5-league/internal/platform/id"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
)

type RouterConfig struct {
	CORSAllowedOrigins []string
	// ReplayLinksMobile lets mobile clients receive replay URLs.
	ReplayLinksMobile bool
	RequestIDs        id.Generator
}

func NewRouter(handler *Handler, logger *logging.Logger, cfg RouterConfig) http.Handler {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.RequestIDs == nil {
		cfg.RequestIDs = id.NewRandomGenerator()
	}

	mux := http.NewServeMux()
	registerSystemRoutes(mux, handler)
	registerLeagueRoutes(mux, handler)

	return RequestTracing(
		RequestID(cfg.RequestIDs,
			RequestLogging(logger,
				CORS(cfg.CORSAllowedOrigins,
					ClientCapabilities(cfg.ReplayLinksMobile,
						recoverPanic(logger, mux))))))
}

func recoverPanic(logger *logging.Logger, next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx, span := startSpan(r.Context(), "httpapi.recoverPanic")
		defer span.End()

		defer func() {
			if rec := recover(); rec != nil {
				logger.ErrorContext(ctx, "panic recovered", "panic", rec, "request_id", requestIDFromContext(ctx))
				writeInternalError(ctx, w)
			}
		}()
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
