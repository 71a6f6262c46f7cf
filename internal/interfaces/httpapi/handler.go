package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/ft5-league/internal/platform/logging"
	"github.com/riskibarqy/ft5-league/internal/usecase"
)

type Handler struct {
	homeService   *usecase.HomeService
	playerService *usecase.PlayerService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	homeService *usecase.HomeService,
	playerService *usecase.PlayerService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		homeService:   homeService,
		playerService: playerService,
		logger:        logger,
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	view, err := h.homeService.Seasons(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list seasons failed", "request_id", requestIDFromContext(ctx), "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonsDTO{
		ActiveSeason: view.ActiveSeason,
		Seasons:      nonNilInts(view.Seasons),
		LoadedAt:     view.LoadedAt,
	})
}

type homeQueryRequest struct {
	Season string `validate:"omitempty,number,max=9"`
	Round  string `validate:"omitempty,number,max=9"`
}

func (h *Handler) GetHome(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetHome")
	defer span.End()

	req := homeQueryRequest{
		Season: strings.TrimSpace(r.URL.Query().Get("season")),
		Round:  strings.TrimSpace(r.URL.Query().Get("round")),
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	query := usecase.HomeQuery{
		Season: optionalInt(req.Season),
		Round:  optionalInt(req.Round),
	}
	view, err := h.homeService.Home(ctx, query)
	if err != nil {
		h.logger.WarnContext(ctx, "get home failed", "season", req.Season, "round", req.Round, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, homeToDTO(view, capabilitiesFromContext(ctx)))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerKey := strings.TrimSpace(r.PathValue("playerKey"))
	view, err := h.playerService.Player(ctx, playerKey)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_key", playerKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(view, capabilitiesFromContext(ctx)))
}

type versusQueryRequest struct {
	Season string `validate:"omitempty,number,max=9"`
}

func (h *Handler) GetVersus(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetVersus")
	defer span.End()

	playerKey := strings.TrimSpace(r.PathValue("playerKey"))
	opponentKey := strings.TrimSpace(r.PathValue("opponentKey"))
	req := versusQueryRequest{Season: strings.TrimSpace(r.URL.Query().Get("season"))}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	view, err := h.playerService.Versus(ctx, playerKey, opponentKey, optionalInt(req.Season))
	if err != nil {
		h.logger.WarnContext(ctx, "get versus failed", "player_key", playerKey, "opponent_key", opponentKey, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, versusToDTO(view, capabilitiesFromContext(ctx)))
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

// optionalInt expects input already validated as digits only.
func optionalInt(raw string) *int {
	if raw == "" {
		return nil
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil
	}
	return &value
}
