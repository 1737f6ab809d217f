package usecase

import (
	"context"
	"fmt"
	"sort"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/standings"
)

type SeasonService struct {
	fixtures fixture.Source
}

func NewSeasonService(fixtures fixture.Source) *SeasonService {
	return &SeasonService{fixtures: fixtures}
}

// Seasons lists the seasons the configured source can serve, ascending.
func (s *SeasonService) Seasons(ctx context.Context) ([]int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Seasons")
	defer span.End()

	seasons, err := s.fixtures.Seasons(ctx)
	if err != nil {
		return nil, fmt.Errorf("list seasons: %w", err)
	}
	sort.Ints(seasons)
	return seasons, nil
}

// Fixtures returns a season's full validated fixture list.
func (s *SeasonService) Fixtures(ctx context.Context, season int) ([]fixture.Fixture, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Fixtures")
	defer span.End()

	return s.load(ctx, season)
}

// Results returns the finished subset with per-side derived columns.
func (s *SeasonService) Results(ctx context.Context, season int) ([]fixture.Result, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Results")
	defer span.End()

	fixtures, err := s.load(ctx, season)
	if err != nil {
		return nil, err
	}
	return fixture.Results(fixtures), nil
}

// Standings builds the season's own league table, sorted in league
// order.
func (s *SeasonService) Standings(ctx context.Context, season int) ([]standings.TeamStanding, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.SeasonService.Standings")
	defer span.End()

	fixtures, err := s.load(ctx, season)
	if err != nil {
		return nil, err
	}
	table := standings.FromResults(fixture.Results(fixtures))
	return standings.Sorted(table), nil
}

func (s *SeasonService) load(ctx context.Context, season int) ([]fixture.Fixture, error) {
	if season <= 0 {
		return nil, fmt.Errorf("%w: season must be a positive starting year", ErrInvalidInput)
	}
	fixtures, err := s.fixtures.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("load season %d fixtures: %w", season, err)
	}
	if err := fixture.ValidateSeason(season, fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}
