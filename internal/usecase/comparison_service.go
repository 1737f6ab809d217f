package usecase

import (
	"context"
	"fmt"

	"github.com/sourcegraph/conc/pool"

	"github.com/matchpulse/season-compare/internal/domain/comparison"
	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
	"github.com/matchpulse/season-compare/internal/domain/standings"
	"github.com/matchpulse/season-compare/internal/platform/cache"
	"github.com/matchpulse/season-compare/internal/platform/logging"
)

// lowMappingRateThreshold marks a comparison as low confidence without
// aborting it. Partial mapping is degraded but usable.
const lowMappingRateThreshold = 50.0

// MappingReport summarises projection coverage for one comparison.
type MappingReport struct {
	TotalFixtures int
	MappedCount   int
	SuccessRate   float64
	LowConfidence bool
}

// ComparisonTable is one comparison result plus its mapping health.
type ComparisonTable struct {
	CurrentSeason    int
	ComparisonSeason int
	Rows             []comparison.Row
	Report           MappingReport
}

// TeamComparison is the per-team drill-down of one comparison row.
type TeamComparison struct {
	Team             string
	CurrentSeason    string
	ComparisonSeason string
	LeaguePosition   int
	Current          standings.TeamStanding
	Previous         standings.TeamStanding
	Differences      TeamDifferences
	PointsImproved   bool
	GoalDiffImproved bool
}

// TeamDifferences carries the current-minus-previous delta columns.
type TeamDifferences struct {
	Points              int
	GoalDifference      int
	GoalsFor            int
	GoalsAgainst        int
	PointsPercentChange float64
}

type ComparisonService struct {
	fixtures  fixture.Source
	standings mapping.StandingsSource
	results   *cache.Store
	logger    *logging.Logger
}

// NewComparisonService wires the comparison pipeline. standingsSource
// may be nil (mapping falls back to lexicographic pairing) and results
// may be nil (no memoisation).
func NewComparisonService(
	fixtures fixture.Source,
	standingsSource mapping.StandingsSource,
	results *cache.Store,
	logger *logging.Logger,
) *ComparisonService {
	if logger == nil {
		logger = logging.Default()
	}
	return &ComparisonService{
		fixtures:  fixtures,
		standings: standingsSource,
		results:   results,
		logger:    logger,
	}
}

// Compare builds the full two-season comparison table. Results are
// memoised per season pair when a cache store is wired.
func (s *ComparisonService) Compare(ctx context.Context, currentSeason, comparisonSeason int) (ComparisonTable, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ComparisonService.Compare")
	defer span.End()

	if err := validateSeasonPair(currentSeason, comparisonSeason); err != nil {
		return ComparisonTable{}, err
	}

	if s.results == nil {
		return s.buildTable(ctx, currentSeason, comparisonSeason)
	}

	key := compareCacheKey(currentSeason, comparisonSeason)
	value, err := s.results.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		return s.buildTable(ctx, currentSeason, comparisonSeason)
	})
	if err != nil {
		return ComparisonTable{}, err
	}
	table, ok := value.(ComparisonTable)
	if !ok {
		return ComparisonTable{}, fmt.Errorf("unexpected cached comparison type %T", value)
	}
	return table, nil
}

// TeamDetail returns one team's comparison line.
func (s *ComparisonService) TeamDetail(ctx context.Context, currentSeason, comparisonSeason int, team string) (TeamComparison, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ComparisonService.TeamDetail")
	defer span.End()

	if team == "" {
		return TeamComparison{}, fmt.Errorf("%w: team name is required", ErrInvalidInput)
	}

	table, err := s.Compare(ctx, currentSeason, comparisonSeason)
	if err != nil {
		return TeamComparison{}, err
	}

	row, ok := comparison.TeamRow(table.Rows, team)
	if !ok {
		return TeamComparison{}, fmt.Errorf("%w: team=%s", ErrNotFound, team)
	}

	return TeamComparison{
		Team:             row.Team,
		CurrentSeason:    fixture.SeasonLabel(currentSeason),
		ComparisonSeason: fixture.SeasonLabel(comparisonSeason),
		LeaguePosition:   row.LeaguePosition,
		Current:          row.Current,
		Previous:         row.Previous,
		Differences: TeamDifferences{
			Points:              row.PointsDifference,
			GoalDifference:      row.GoalDifferenceChange,
			GoalsFor:            row.GoalsForDifference,
			GoalsAgainst:        row.GoalsAgainstDifference,
			PointsPercentChange: row.PointsPercentChange,
		},
		PointsImproved:   row.PointsImproved,
		GoalDiffImproved: row.GoalDifferenceImproved,
	}, nil
}

// TopImprovers ranks teams by one difference metric, descending.
func (s *ComparisonService) TopImprovers(ctx context.Context, currentSeason, comparisonSeason int, metric string, limit int) ([]comparison.Improvement, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ComparisonService.TopImprovers")
	defer span.End()

	parsed, err := comparison.ParseMetric(metric)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if limit <= 0 {
		limit = 5
	}

	table, err := s.Compare(ctx, currentSeason, comparisonSeason)
	if err != nil {
		return nil, err
	}

	improvements, err := comparison.TopImprovers(table.Rows, parsed, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return improvements, nil
}

// MappingSummary describes the substitutions behind a comparison.
func (s *ComparisonService) MappingSummary(ctx context.Context, currentSeason, comparisonSeason int) (mapping.Summary, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ComparisonService.MappingSummary")
	defer span.End()

	if err := validateSeasonPair(currentSeason, comparisonSeason); err != nil {
		return mapping.Summary{}, err
	}

	currentFixtures, comparisonFixtures, err := s.loadSeasonPair(ctx, currentSeason, comparisonSeason)
	if err != nil {
		return mapping.Summary{}, err
	}

	pairs := s.substitutionPairs(ctx, comparisonSeason, currentFixtures, comparisonFixtures)
	return mapping.Summarize(currentSeason, comparisonSeason, pairs), nil
}

func (s *ComparisonService) buildTable(ctx context.Context, currentSeason, comparisonSeason int) (ComparisonTable, error) {
	currentFixtures, comparisonFixtures, err := s.loadSeasonPair(ctx, currentSeason, comparisonSeason)
	if err != nil {
		return ComparisonTable{}, err
	}

	pairs := s.substitutionPairs(ctx, comparisonSeason, currentFixtures, comparisonFixtures)
	mapped := mapping.Project(currentFixtures, comparisonFixtures, mapping.AsSubstitution(pairs))

	mappedCount := mapping.FoundCount(mapped)
	if mappedCount == 0 {
		return ComparisonTable{}, fmt.Errorf("%w: %s vs %s",
			ErrNoMappableFixtures, fixture.SeasonLabel(currentSeason), fixture.SeasonLabel(comparisonSeason))
	}

	rate := mapping.SuccessRate(mapped)
	report := MappingReport{
		TotalFixtures: len(mapped),
		MappedCount:   mappedCount,
		SuccessRate:   rate,
		LowConfidence: rate < lowMappingRateThreshold,
	}
	if report.LowConfidence {
		s.logger.WarnContext(ctx, "low fixture mapping success rate",
			"current_season", currentSeason,
			"comparison_season", comparisonSeason,
			"mapped", mappedCount,
			"total", len(mapped),
			"rate_percent", rate,
		)
	}

	currentView := standings.Aggregate(mapped, standings.ViewCurrent)
	comparisonView := standings.Aggregate(mapped, standings.ViewComparison)

	return ComparisonTable{
		CurrentSeason:    currentSeason,
		ComparisonSeason: comparisonSeason,
		Rows:             comparison.Build(currentView, comparisonView),
		Report:           report,
	}, nil
}

// loadSeasonPair loads both seasons concurrently; either season failing
// validation fails the pair.
func (s *ComparisonService) loadSeasonPair(ctx context.Context, currentSeason, comparisonSeason int) ([]fixture.Fixture, []fixture.Fixture, error) {
	var currentFixtures, comparisonFixtures []fixture.Fixture

	group := pool.New().WithContext(ctx).WithCancelOnError().WithFirstError()
	group.Go(func(ctx context.Context) error {
		fixtures, err := s.loadSeason(ctx, currentSeason)
		if err != nil {
			return err
		}
		currentFixtures = fixtures
		return nil
	})
	group.Go(func(ctx context.Context) error {
		fixtures, err := s.loadSeason(ctx, comparisonSeason)
		if err != nil {
			return err
		}
		comparisonFixtures = fixtures
		return nil
	})
	if err := group.Wait(); err != nil {
		return nil, nil, err
	}
	return currentFixtures, comparisonFixtures, nil
}

func (s *ComparisonService) loadSeason(ctx context.Context, season int) ([]fixture.Fixture, error) {
	fixtures, err := s.fixtures.ListBySeason(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("load season %d fixtures: %w", season, err)
	}
	if err := fixture.ValidateSeason(season, fixtures); err != nil {
		return nil, err
	}
	return fixtures, nil
}

func (s *ComparisonService) substitutionPairs(ctx context.Context, comparisonSeason int, currentFixtures, comparisonFixtures []fixture.Fixture) []mapping.Pair {
	mapper := mapping.NewMapper(mapping.DivisionRank{
		Standings: s.divisionStandings(ctx, comparisonSeason),
	})
	return mapper.Build(fixture.TeamSet(currentFixtures), fixture.TeamSet(comparisonFixtures))
}

// divisionStandings degrades to nil on any failure so the mapper falls
// back to lexicographic pairing instead of aborting the comparison.
func (s *ComparisonService) divisionStandings(ctx context.Context, season int) []mapping.DivisionStanding {
	if s.standings == nil {
		return nil
	}
	table, err := s.standings.ListBySeason(ctx, season)
	if err != nil {
		s.logger.WarnContext(ctx, "secondary division standings unavailable, pairing lexicographically",
			"season", season, "error", err)
		return nil
	}
	return table
}

func validateSeasonPair(currentSeason, comparisonSeason int) error {
	if currentSeason <= 0 || comparisonSeason <= 0 {
		return fmt.Errorf("%w: seasons must be positive starting years", ErrInvalidInput)
	}
	return nil
}

func compareCacheKey(currentSeason, comparisonSeason int) string {
	return fmt.Sprintf("compare:%d:%d", currentSeason, comparisonSeason)
}
