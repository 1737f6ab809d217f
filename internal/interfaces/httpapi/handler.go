package httpapi

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/matchpulse/season-compare/internal/platform/logging"
	"github.com/matchpulse/season-compare/internal/usecase"
)

type Handler struct {
	seasonService     *usecase.SeasonService
	comparisonService *usecase.ComparisonService
	ingestService     *usecase.IngestService
	batchService      *usecase.BatchService
	logger            *logging.Logger
	validator         *validator.Validate
}

func NewHandler(
	seasonService *usecase.SeasonService,
	comparisonService *usecase.ComparisonService,
	ingestService *usecase.IngestService,
	batchService *usecase.BatchService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		seasonService:     seasonService,
		comparisonService: comparisonService,
		ingestService:     ingestService,
		batchService:      batchService,
		logger:            logger,
		validator:         validator.New(),
	}
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	writeSuccess(ctx, w, http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) ListSeasons(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasons")
	defer span.End()

	seasons, err := h.seasonService.Seasons(ctx)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, seasonListToDTO(ctx, seasons))
}

func (h *Handler) ListSeasonFixtures(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonFixtures")
	defer span.End()

	season, err := parseSeasonPath(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	fixtures, err := h.seasonService.Fixtures(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, fixtureListToDTO(ctx, fixtures))
}

func (h *Handler) ListSeasonResults(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonResults")
	defer span.End()

	season, err := parseSeasonPath(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	results, err := h.seasonService.Results(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, resultListToDTO(ctx, results))
}

func (h *Handler) ListSeasonStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSeasonStandings")
	defer span.End()

	season, err := parseSeasonPath(r, "season")
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.seasonService.Standings(ctx, season)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingListToDTO(ctx, table))
}

func parseSeasonPath(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.PathValue(name))
	season, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a season starting year, got %q", usecase.ErrInvalidInput, name, raw)
	}
	return season, nil
}

func parseComparisonPath(r *http.Request) (int, int, error) {
	current, err := parseSeasonPath(r, "current")
	if err != nil {
		return 0, 0, err
	}
	previous, err := parseSeasonPath(r, "previous")
	if err != nil {
		return 0, 0, err
	}
	return current, previous, nil
}
