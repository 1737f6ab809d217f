package httpapi

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/matchpulse/season-compare/internal/usecase"
)

type refreshJobRequest struct {
	JobID  string `json:"job_id"`
	Season int    `json:"season" validate:"required,gt=0"`
}

type warmCacheJobRequest struct {
	JobID      string              `json:"job_id"`
	Pairs      []seasonPairPayload `json:"pairs" validate:"required,min=1,dive"`
	MaxWorkers int                 `json:"max_workers" validate:"omitempty,gte=1"`
}

type seasonPairPayload struct {
	CurrentSeason    int `json:"current_season" validate:"required,gt=0"`
	ComparisonSeason int `json:"comparison_season" validate:"required,gt=0"`
}

func (h *Handler) RunRefreshJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunRefreshJob")
	defer span.End()

	if h.ingestService == nil {
		writeError(ctx, w, fmt.Errorf("%w: ingest service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req refreshJobRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	result, err := h.ingestService.RefreshSeason(ctx, req.Season)
	if err != nil {
		h.logger.WarnContext(ctx, "refresh season job failed", "job_id", req.JobID, "season", req.Season, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "refresh season job completed",
		"job_id", req.JobID,
		"season", result.Season,
		"fixture_count", result.FixtureCount,
		"standing_count", result.StandingCount,
		"duration_ms", result.DurationMs,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func (h *Handler) RunWarmCacheJob(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RunWarmCacheJob")
	defer span.End()

	if h.batchService == nil {
		writeError(ctx, w, fmt.Errorf("%w: batch service is not configured", usecase.ErrDependencyUnavailable))
		return
	}

	var req warmCacheJobRequest
	if err := decodeJobRequest(r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	pairs := make([]usecase.SeasonPair, 0, len(req.Pairs))
	for _, pair := range req.Pairs {
		pairs = append(pairs, usecase.SeasonPair{
			CurrentSeason:    pair.CurrentSeason,
			ComparisonSeason: pair.ComparisonSeason,
		})
	}

	result, err := h.batchService.Run(ctx, usecase.BatchInput{
		Pairs:      pairs,
		MaxWorkers: req.MaxWorkers,
	})
	if err != nil {
		h.logger.WarnContext(ctx, "warm cache job failed", "job_id", req.JobID, "pair_count", len(pairs), "error", err)
		writeError(ctx, w, err)
		return
	}

	h.logger.InfoContext(ctx, "warm cache job completed",
		"job_id", req.JobID,
		"task_count", result.TaskCount,
		"success_count", result.SuccessCount,
		"failed_count", result.FailedCount,
	)
	writeSuccess(ctx, w, http.StatusOK, result)
}

func decodeJobRequest(r *http.Request, dst any) error {
	decoder := sonic.ConfigDefault.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
