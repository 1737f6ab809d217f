package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
	"github.com/matchpulse/season-compare/internal/platform/cache"
	"github.com/matchpulse/season-compare/internal/platform/logging"
)

// SeasonProvider fetches remote season data.
type SeasonProvider interface {
	SeasonFixtures(ctx context.Context, season int) ([]fixture.Fixture, error)
	SecondaryStandings(ctx context.Context, season int) ([]mapping.DivisionStanding, error)
}

// RefreshResult reports what one season refresh wrote.
type RefreshResult struct {
	Season        int   `json:"season"`
	FixtureCount  int   `json:"fixture_count"`
	StandingCount int   `json:"standing_count"`
	DurationMs    int64 `json:"duration_ms"`
}

type IngestService struct {
	provider  SeasonProvider
	fixtures  fixture.Writer
	standings mapping.StandingsWriter
	results   *cache.Store
	logger    *logging.Logger
}

// NewIngestService wires the refresh pipeline. results may be nil when
// no comparison memoisation needs invalidating.
func NewIngestService(
	provider SeasonProvider,
	fixtures fixture.Writer,
	standings mapping.StandingsWriter,
	results *cache.Store,
	logger *logging.Logger,
) *IngestService {
	if logger == nil {
		logger = logging.Default()
	}
	return &IngestService{
		provider:  provider,
		fixtures:  fixtures,
		standings: standings,
		results:   results,
		logger:    logger,
	}
}

// RefreshSeason fetches one season from the provider and writes it
// through the configured store. Partial fixture data is refused; a
// failed standings fetch degrades to none stored.
func (s *IngestService) RefreshSeason(ctx context.Context, season int) (RefreshResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.IngestService.RefreshSeason")
	defer span.End()

	if season <= 0 {
		return RefreshResult{}, fmt.Errorf("%w: season must be a positive starting year", ErrInvalidInput)
	}
	if s.provider == nil {
		return RefreshResult{}, fmt.Errorf("%w: no live data provider configured", ErrDependencyUnavailable)
	}
	if s.fixtures == nil {
		return RefreshResult{}, fmt.Errorf("%w: no fixture writer configured", ErrDependencyUnavailable)
	}

	start := time.Now()

	fixtures, err := s.provider.SeasonFixtures(ctx, season)
	if err != nil {
		return RefreshResult{}, fmt.Errorf("fetch season %d fixtures: %w", season, err)
	}
	if err := fixture.ValidateSeason(season, fixtures); err != nil {
		return RefreshResult{}, err
	}
	if err := s.fixtures.ReplaceSeason(ctx, season, fixtures); err != nil {
		return RefreshResult{}, fmt.Errorf("store season %d fixtures: %w", season, err)
	}

	standings := s.fetchStandings(ctx, season)
	if len(standings) > 0 && s.standings != nil {
		if err := s.standings.ReplaceSeason(ctx, season, standings); err != nil {
			return RefreshResult{}, fmt.Errorf("store season %d standings: %w", season, err)
		}
	}

	// Comparisons built on the old data are stale now.
	if s.results != nil {
		s.results.DeletePrefix(ctx, "compare:")
	}

	result := RefreshResult{
		Season:        season,
		FixtureCount:  len(fixtures),
		StandingCount: len(standings),
		DurationMs:    time.Since(start).Milliseconds(),
	}
	s.logger.InfoContext(ctx, "season refreshed",
		"season", season,
		"fixtures", result.FixtureCount,
		"standings", result.StandingCount,
		"duration_ms", result.DurationMs,
	)
	return result, nil
}

// fetchStandings never fails the refresh: the mapper can work without
// the ranking signal.
func (s *IngestService) fetchStandings(ctx context.Context, season int) []mapping.DivisionStanding {
	standings, err := s.provider.SecondaryStandings(ctx, season)
	if err != nil {
		s.logger.WarnContext(ctx, "secondary division standings fetch failed, continuing without",
			"season", season, "error", err)
		return nil
	}
	return standings
}
