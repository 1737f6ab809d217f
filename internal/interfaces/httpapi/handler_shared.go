package httpapi

import (
	"context"
	"time"

	"github.com/matchpulse/season-compare/internal/domain/comparison"
	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
	"github.com/matchpulse/season-compare/internal/domain/standings"
	"github.com/matchpulse/season-compare/internal/usecase"
)

type seasonDTO struct {
	Season int    `json:"season"`
	Label  string `json:"seasonLabel"`
}

type fixtureDTO struct {
	RefID         int64  `json:"refId"`
	Season        int    `json:"season"`
	SeasonLabel   string `json:"seasonLabel"`
	Matchday      int    `json:"matchday"`
	KickoffAt     string `json:"kickoffAt"`
	Status        string `json:"status"`
	HomeTeam      string `json:"homeTeam"`
	AwayTeam      string `json:"awayTeam"`
	HomeTeamRefID int64  `json:"homeTeamRefId"`
	AwayTeamRefID int64  `json:"awayTeamRefId"`
	HomeScore     *int   `json:"homeScore,omitempty"`
	AwayScore     *int   `json:"awayScore,omitempty"`
}

type resultDTO struct {
	fixtureDTO
	HomePoints         int `json:"homePoints"`
	AwayPoints         int `json:"awayPoints"`
	HomeGoalDifference int `json:"homeGoalDifference"`
	AwayGoalDifference int `json:"awayGoalDifference"`
}

type standingDTO struct {
	Position       int    `json:"position"`
	Team           string `json:"team"`
	GamesPlayed    int    `json:"gamesPlayed"`
	Wins           int    `json:"wins"`
	Draws          int    `json:"draws"`
	Losses         int    `json:"losses"`
	GoalsFor       int    `json:"goalsFor"`
	GoalsAgainst   int    `json:"goalsAgainst"`
	GoalDifference int    `json:"goalDifference"`
	Points         int    `json:"points"`
}

type standingSnapshotDTO struct {
	GamesPlayed    int `json:"gamesPlayed"`
	Wins           int `json:"wins"`
	Draws          int `json:"draws"`
	Losses         int `json:"losses"`
	GoalsFor       int `json:"goalsFor"`
	GoalsAgainst   int `json:"goalsAgainst"`
	GoalDifference int `json:"goalDifference"`
	Points         int `json:"points"`
}

type comparisonDifferencesDTO struct {
	Points              int     `json:"points"`
	GoalDifference      int     `json:"goalDifference"`
	GoalsFor            int     `json:"goalsFor"`
	GoalsAgainst        int     `json:"goalsAgainst"`
	PointsPercentChange float64 `json:"pointsPercentChange"`
}

type comparisonRowDTO struct {
	LeaguePosition         int                      `json:"leaguePosition"`
	Team                   string                   `json:"team"`
	Current                standingSnapshotDTO      `json:"current"`
	Previous               standingSnapshotDTO      `json:"previous"`
	Differences            comparisonDifferencesDTO `json:"differences"`
	PointsImproved         bool                     `json:"pointsImproved"`
	GoalDifferenceImproved bool                     `json:"goalDifferenceImproved"`
}

type mappingReportDTO struct {
	TotalFixtures      int     `json:"totalFixtures"`
	MappedCount        int     `json:"mappedCount"`
	SuccessRatePercent float64 `json:"successRatePercent"`
	LowConfidence      bool    `json:"lowConfidence"`
}

type comparisonTableDTO struct {
	CurrentSeason         int                `json:"currentSeason"`
	CurrentSeasonLabel    string             `json:"currentSeasonLabel"`
	ComparisonSeason      int                `json:"comparisonSeason"`
	ComparisonSeasonLabel string             `json:"comparisonSeasonLabel"`
	Rows                  []comparisonRowDTO `json:"rows"`
	MappingReport         mappingReportDTO   `json:"mappingReport"`
}

type teamComparisonDTO struct {
	Team                   string                   `json:"team"`
	CurrentSeason          string                   `json:"currentSeason"`
	ComparisonSeason       string                   `json:"comparisonSeason"`
	LeaguePosition         int                      `json:"leaguePosition"`
	Current                standingSnapshotDTO      `json:"current"`
	Previous               standingSnapshotDTO      `json:"previous"`
	Differences            comparisonDifferencesDTO `json:"differences"`
	PointsImproved         bool                     `json:"pointsImproved"`
	GoalDifferenceImproved bool                     `json:"goalDifferenceImproved"`
}

type improversDTO struct {
	Metric    string           `json:"metric"`
	Improvers []improvementDTO `json:"improvers"`
}

type improvementDTO struct {
	Team          string `json:"team"`
	Improvement   int    `json:"improvement"`
	CurrentValue  int    `json:"currentValue"`
	PreviousValue int    `json:"previousValue"`
}

type mappingSummaryDTO struct {
	CurrentSeason    string            `json:"currentSeason"`
	ComparisonSeason string            `json:"comparisonSeason"`
	Mappings         map[string]string `json:"mappings"`
	PromotedTeams    []string          `json:"promotedTeams"`
	RelegatedTeams   []string          `json:"relegatedTeams"`
	MappingCount     int               `json:"mappingCount"`
}

func seasonListToDTO(ctx context.Context, seasons []int) []seasonDTO {
	ctx, span := startSpan(ctx, "httpapi.seasonListToDTO")
	defer span.End()

	out := make([]seasonDTO, 0, len(seasons))
	for _, season := range seasons {
		out = append(out, seasonDTO{
			Season: season,
			Label:  fixture.SeasonLabel(season),
		})
	}
	return out
}

func fixtureToDTO(ctx context.Context, v fixture.Fixture) fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureToDTO")
	defer span.End()

	return fixtureDTO{
		RefID:         v.RefID,
		Season:        v.Season,
		SeasonLabel:   fixture.SeasonLabel(v.Season),
		Matchday:      v.Matchday,
		KickoffAt:     v.KickoffAt.UTC().Format(time.RFC3339),
		Status:        v.Status,
		HomeTeam:      v.HomeTeam,
		AwayTeam:      v.AwayTeam,
		HomeTeamRefID: v.HomeTeamRefID,
		AwayTeamRefID: v.AwayTeamRefID,
		HomeScore:     v.HomeScore,
		AwayScore:     v.AwayScore,
	}
}

func fixtureListToDTO(ctx context.Context, fixtures []fixture.Fixture) []fixtureDTO {
	ctx, span := startSpan(ctx, "httpapi.fixtureListToDTO")
	defer span.End()

	out := make([]fixtureDTO, 0, len(fixtures))
	for _, item := range fixtures {
		out = append(out, fixtureToDTO(ctx, item))
	}
	return out
}

func resultToDTO(ctx context.Context, v fixture.Result) resultDTO {
	ctx, span := startSpan(ctx, "httpapi.resultToDTO")
	defer span.End()

	return resultDTO{
		fixtureDTO:         fixtureToDTO(ctx, v.Fixture),
		HomePoints:         v.HomePoints,
		AwayPoints:         v.AwayPoints,
		HomeGoalDifference: v.HomeGoalDifference,
		AwayGoalDifference: v.AwayGoalDifference,
	}
}

func resultListToDTO(ctx context.Context, results []fixture.Result) []resultDTO {
	ctx, span := startSpan(ctx, "httpapi.resultListToDTO")
	defer span.End()

	out := make([]resultDTO, 0, len(results))
	for _, item := range results {
		out = append(out, resultToDTO(ctx, item))
	}
	return out
}

func standingListToDTO(ctx context.Context, table []standings.TeamStanding) []standingDTO {
	ctx, span := startSpan(ctx, "httpapi.standingListToDTO")
	defer span.End()

	out := make([]standingDTO, 0, len(table))
	for i, item := range table {
		out = append(out, standingDTO{
			Position:       i + 1,
			Team:           item.Team,
			GamesPlayed:    item.GamesPlayed,
			Wins:           item.Wins,
			Draws:          item.Draws,
			Losses:         item.Losses,
			GoalsFor:       item.GoalsFor,
			GoalsAgainst:   item.GoalsAgainst,
			GoalDifference: item.GoalDifference,
			Points:         item.Points,
		})
	}
	return out
}

func standingSnapshotToDTO(v standings.TeamStanding) standingSnapshotDTO {
	return standingSnapshotDTO{
		GamesPlayed:    v.GamesPlayed,
		Wins:           v.Wins,
		Draws:          v.Draws,
		Losses:         v.Losses,
		GoalsFor:       v.GoalsFor,
		GoalsAgainst:   v.GoalsAgainst,
		GoalDifference: v.GoalDifference,
		Points:         v.Points,
	}
}

func comparisonRowToDTO(ctx context.Context, row comparison.Row) comparisonRowDTO {
	ctx, span := startSpan(ctx, "httpapi.comparisonRowToDTO")
	defer span.End()

	return comparisonRowDTO{
		LeaguePosition: row.LeaguePosition,
		Team:           row.Team,
		Current:        standingSnapshotToDTO(row.Current),
		Previous:       standingSnapshotToDTO(row.Previous),
		Differences: comparisonDifferencesDTO{
			Points:              row.PointsDifference,
			GoalDifference:      row.GoalDifferenceChange,
			GoalsFor:            row.GoalsForDifference,
			GoalsAgainst:        row.GoalsAgainstDifference,
			PointsPercentChange: row.PointsPercentChange,
		},
		PointsImproved:         row.PointsImproved,
		GoalDifferenceImproved: row.GoalDifferenceImproved,
	}
}

func comparisonTableToDTO(ctx context.Context, table usecase.ComparisonTable) comparisonTableDTO {
	ctx, span := startSpan(ctx, "httpapi.comparisonTableToDTO")
	defer span.End()

	rows := make([]comparisonRowDTO, 0, len(table.Rows))
	for _, row := range table.Rows {
		rows = append(rows, comparisonRowToDTO(ctx, row))
	}

	return comparisonTableDTO{
		CurrentSeason:         table.CurrentSeason,
		CurrentSeasonLabel:    fixture.SeasonLabel(table.CurrentSeason),
		ComparisonSeason:      table.ComparisonSeason,
		ComparisonSeasonLabel: fixture.SeasonLabel(table.ComparisonSeason),
		Rows:                  rows,
		MappingReport: mappingReportDTO{
			TotalFixtures:      table.Report.TotalFixtures,
			MappedCount:        table.Report.MappedCount,
			SuccessRatePercent: table.Report.SuccessRate,
			LowConfidence:      table.Report.LowConfidence,
		},
	}
}

func teamComparisonToDTO(ctx context.Context, detail usecase.TeamComparison) teamComparisonDTO {
	ctx, span := startSpan(ctx, "httpapi.teamComparisonToDTO")
	defer span.End()

	return teamComparisonDTO{
		Team:             detail.Team,
		CurrentSeason:    detail.CurrentSeason,
		ComparisonSeason: detail.ComparisonSeason,
		LeaguePosition:   detail.LeaguePosition,
		Current:          standingSnapshotToDTO(detail.Current),
		Previous:         standingSnapshotToDTO(detail.Previous),
		Differences: comparisonDifferencesDTO{
			Points:              detail.Differences.Points,
			GoalDifference:      detail.Differences.GoalDifference,
			GoalsFor:            detail.Differences.GoalsFor,
			GoalsAgainst:        detail.Differences.GoalsAgainst,
			PointsPercentChange: detail.Differences.PointsPercentChange,
		},
		PointsImproved:         detail.PointsImproved,
		GoalDifferenceImproved: detail.GoalDiffImproved,
	}
}

func improvementListToDTO(ctx context.Context, metric string, improvers []comparison.Improvement) improversDTO {
	ctx, span := startSpan(ctx, "httpapi.improvementListToDTO")
	defer span.End()

	out := make([]improvementDTO, 0, len(improvers))
	for _, item := range improvers {
		out = append(out, improvementDTO{
			Team:          item.Team,
			Improvement:   item.Improvement,
			CurrentValue:  item.CurrentValue,
			PreviousValue: item.PreviousValue,
		})
	}

	return improversDTO{
		Metric:    metric,
		Improvers: out,
	}
}

func mappingSummaryToDTO(ctx context.Context, summary mapping.Summary) mappingSummaryDTO {
	ctx, span := startSpan(ctx, "httpapi.mappingSummaryToDTO")
	defer span.End()

	return mappingSummaryDTO{
		CurrentSeason:    summary.CurrentSeason,
		ComparisonSeason: summary.ComparisonSeason,
		Mappings:         summary.Mappings,
		PromotedTeams:    summary.PromotedTeams,
		RelegatedTeams:   summary.RelegatedTeams,
		MappingCount:     summary.MappingCount,
	}
}
