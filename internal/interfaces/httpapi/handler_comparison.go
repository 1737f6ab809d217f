package httpapi

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/matchpulse/season-compare/internal/domain/comparison"
	"github.com/matchpulse/season-compare/internal/usecase"
	"github.com/valyala/bytebufferpool"
)

func (h *Handler) GetComparison(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetComparison")
	defer span.End()

	current, previous, err := parseComparisonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.comparisonService.Compare(ctx, current, previous)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, comparisonTableToDTO(ctx, table))
}

func (h *Handler) GetComparisonTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetComparisonTeam")
	defer span.End()

	current, previous, err := parseComparisonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	team := strings.TrimSpace(r.PathValue("team"))
	detail, err := h.comparisonService.TeamDetail(ctx, current, previous, team)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamComparisonToDTO(ctx, detail))
}

func (h *Handler) ListComparisonImprovers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListComparisonImprovers")
	defer span.End()

	current, previous, err := parseComparisonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	query := r.URL.Query()
	metric := strings.TrimSpace(query.Get("metric"))
	if metric == "" {
		metric = string(comparison.MetricPoints)
	}

	limit := 0
	if raw := strings.TrimSpace(query.Get("limit")); raw != "" {
		parsed, parseErr := strconv.Atoi(raw)
		if parseErr != nil {
			writeError(ctx, w, fmt.Errorf("%w: limit must be an integer, got %q", usecase.ErrInvalidInput, raw))
			return
		}
		limit = parsed
	}

	improvers, err := h.comparisonService.TopImprovers(ctx, current, previous, metric, limit)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, improvementListToDTO(ctx, metric, improvers))
}

func (h *Handler) GetComparisonMapping(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetComparisonMapping")
	defer span.End()

	current, previous, err := parseComparisonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	summary, err := h.comparisonService.MappingSummary(ctx, current, previous)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, mappingSummaryToDTO(ctx, summary))
}

func (h *Handler) ExportComparisonCSV(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ExportComparisonCSV")
	defer span.End()

	current, previous, err := parseComparisonPath(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	table, err := h.comparisonService.Compare(ctx, current, previous)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	if err := writeComparisonCSV(buf, table); err != nil {
		writeError(ctx, w, err)
		return
	}

	filename := fmt.Sprintf("comparison_%d_vs_%d.csv", table.CurrentSeason, table.ComparisonSeason)
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+filename+`"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
}

func writeComparisonCSV(buf *bytebufferpool.ByteBuffer, table usecase.ComparisonTable) error {
	writer := csv.NewWriter(buf)

	header := []string{
		"position", "team",
		"played", "points", "goals_for", "goals_against", "goal_difference",
		"prev_points", "prev_goal_difference",
		"points_diff", "goal_difference_change", "goals_for_diff", "goals_against_diff",
		"points_percent_change", "points_improved", "goal_difference_improved",
	}
	if err := writer.Write(header); err != nil {
		return err
	}

	for _, row := range table.Rows {
		record := []string{
			strconv.Itoa(row.LeaguePosition),
			row.Team,
			strconv.Itoa(row.Current.GamesPlayed),
			strconv.Itoa(row.Current.Points),
			strconv.Itoa(row.Current.GoalsFor),
			strconv.Itoa(row.Current.GoalsAgainst),
			strconv.Itoa(row.Current.GoalDifference),
			strconv.Itoa(row.Previous.Points),
			strconv.Itoa(row.Previous.GoalDifference),
			strconv.Itoa(row.PointsDifference),
			strconv.Itoa(row.GoalDifferenceChange),
			strconv.Itoa(row.GoalsForDifference),
			strconv.Itoa(row.GoalsAgainstDifference),
			strconv.FormatFloat(row.PointsPercentChange, 'f', 1, 64),
			strconv.FormatBool(row.PointsImproved),
			strconv.FormatBool(row.GoalDifferenceImproved),
		}
		if err := writer.Write(record); err != nil {
			return err
		}
	}

	writer.Flush()
	return writer.Error()
}
