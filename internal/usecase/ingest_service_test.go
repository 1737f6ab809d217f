package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
	"github.com/matchpulse/season-compare/internal/platform/cache"
)

func TestIngestService_RefreshSeason_WritesThroughAndInvalidatesCache(t *testing.T) {
	t.Parallel()

	provider := &stubSeasonProvider{
		fixtures: generateSeason(2025, withClubs("Leeds United FC")),
		standings: []mapping.DivisionStanding{
			{Position: 1, TeamName: "Leeds United", TeamRefID: 341, Points: 100, GoalDifference: 57, Season: 2025},
			{Position: 2, TeamName: "Burnley", TeamRefID: 328, Points: 100, GoalDifference: 53, Season: 2025},
			{Position: 3, TeamName: "Sheffield United", TeamRefID: 356, Points: 90, GoalDifference: 31, Season: 2025},
		},
	}
	fixtureWriter := &stubFixtureWriter{}
	standingsWriter := &stubStandingsWriter{}

	results := cache.NewStore(time.Minute)
	ctx := context.Background()
	results.Set(ctx, "compare:2025:2024", ComparisonTable{CurrentSeason: 2025})
	results.Set(ctx, "fixtures:2025", "unrelated entry")

	service := NewIngestService(provider, fixtureWriter, standingsWriter, results, nil)

	result, err := service.RefreshSeason(ctx, 2025)
	if err != nil {
		t.Fatalf("RefreshSeason error: %v", err)
	}
	if result.Season != 2025 || result.FixtureCount != 110 || result.StandingCount != 3 {
		t.Fatalf("unexpected refresh result: %+v", result)
	}

	if got := len(fixtureWriter.replaced[2025]); got != 110 {
		t.Fatalf("expected 110 fixtures written, got %d", got)
	}
	if got := len(standingsWriter.replaced[2025]); got != 3 {
		t.Fatalf("expected 3 standings written, got %d", got)
	}

	if _, ok := results.Get(ctx, "compare:2025:2024"); ok {
		t.Fatal("expected memoised comparisons to be invalidated")
	}
	if _, ok := results.Get(ctx, "fixtures:2025"); !ok {
		t.Fatal("expected non-comparison cache entries to survive")
	}
}

func TestIngestService_RefreshSeason_RefusesPartialSeason(t *testing.T) {
	t.Parallel()

	provider := &stubSeasonProvider{
		fixtures: generateSeason(2025, withClubs("Leeds United FC"))[:99],
	}
	fixtureWriter := &stubFixtureWriter{}
	service := NewIngestService(provider, fixtureWriter, nil, nil, nil)

	_, err := service.RefreshSeason(context.Background(), 2025)
	if !errors.Is(err, fixture.ErrDataUnavailable) {
		t.Fatalf("expected ErrDataUnavailable, got %v", err)
	}
	if len(fixtureWriter.replaced) != 0 {
		t.Fatalf("expected no write for a partial season, got %d seasons", len(fixtureWriter.replaced))
	}
}

func TestIngestService_RefreshSeason_StandingsFetchDegrades(t *testing.T) {
	t.Parallel()

	provider := &stubSeasonProvider{
		fixtures:     generateSeason(2025, withClubs("Leeds United FC")),
		standingsErr: errors.New("second division endpoint down"),
	}
	fixtureWriter := &stubFixtureWriter{}
	standingsWriter := &stubStandingsWriter{}
	service := NewIngestService(provider, fixtureWriter, standingsWriter, nil, nil)

	result, err := service.RefreshSeason(context.Background(), 2025)
	if err != nil {
		t.Fatalf("expected refresh to continue without standings, got %v", err)
	}
	if result.StandingCount != 0 {
		t.Fatalf("expected 0 standings, got %d", result.StandingCount)
	}
	if len(standingsWriter.replaced) != 0 {
		t.Fatalf("expected no standings write, got %d seasons", len(standingsWriter.replaced))
	}
	if len(fixtureWriter.replaced[2025]) != 110 {
		t.Fatalf("expected fixtures still written, got %d", len(fixtureWriter.replaced[2025]))
	}
}

func TestIngestService_RefreshSeason_Validation(t *testing.T) {
	t.Parallel()

	provider := &stubSeasonProvider{fixtures: generateSeason(2025, withClubs("Leeds United FC"))}

	service := NewIngestService(provider, &stubFixtureWriter{}, nil, nil, nil)
	if _, err := service.RefreshSeason(context.Background(), 0); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for season 0, got %v", err)
	}

	service = NewIngestService(nil, &stubFixtureWriter{}, nil, nil, nil)
	if _, err := service.RefreshSeason(context.Background(), 2025); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable without provider, got %v", err)
	}

	service = NewIngestService(provider, nil, nil, nil, nil)
	if _, err := service.RefreshSeason(context.Background(), 2025); !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable without writer, got %v", err)
	}
}

type stubSeasonProvider struct {
	fixtures     []fixture.Fixture
	standings    []mapping.DivisionStanding
	fixturesErr  error
	standingsErr error
}

func (s *stubSeasonProvider) SeasonFixtures(_ context.Context, _ int) ([]fixture.Fixture, error) {
	if s.fixturesErr != nil {
		return nil, s.fixturesErr
	}
	out := make([]fixture.Fixture, len(s.fixtures))
	copy(out, s.fixtures)
	return out, nil
}

func (s *stubSeasonProvider) SecondaryStandings(_ context.Context, _ int) ([]mapping.DivisionStanding, error) {
	if s.standingsErr != nil {
		return nil, s.standingsErr
	}
	out := make([]mapping.DivisionStanding, len(s.standings))
	copy(out, s.standings)
	return out, nil
}

type stubFixtureWriter struct {
	replaced map[int][]fixture.Fixture
	err      error
}

func (s *stubFixtureWriter) ReplaceSeason(_ context.Context, season int, fixtures []fixture.Fixture) error {
	if s.err != nil {
		return s.err
	}
	if s.replaced == nil {
		s.replaced = make(map[int][]fixture.Fixture)
	}
	out := make([]fixture.Fixture, len(fixtures))
	copy(out, fixtures)
	s.replaced[season] = out
	return nil
}

type stubStandingsWriter struct {
	replaced map[int][]mapping.DivisionStanding
}

func (s *stubStandingsWriter) ReplaceSeason(_ context.Context, season int, rows []mapping.DivisionStanding) error {
	if s.replaced == nil {
		s.replaced = make(map[int][]mapping.DivisionStanding)
	}
	out := make([]mapping.DivisionStanding, len(rows))
	copy(out, rows)
	s.replaced[season] = out
	return nil
}
