package comparison

import (
	"errors"
	"testing"

	"github.com/matchpulse/season-compare/internal/domain/standings"
)

func standing(team string, games, points, goalsFor, goalsAgainst int) standings.TeamStanding {
	return standings.TeamStanding{
		Team:           team,
		GamesPlayed:    games,
		Points:         points,
		GoalsFor:       goalsFor,
		GoalsAgainst:   goalsAgainst,
		GoalDifference: goalsFor - goalsAgainst,
	}
}

func TestBuild(t *testing.T) {
	current := map[string]standings.TeamStanding{
		"Arsenal FC": standing("Arsenal FC", 10, 25, 20, 8),
		"Chelsea FC": standing("Chelsea FC", 10, 12, 11, 14),
		"Leeds FC":   standing("Leeds FC", 10, 9, 7, 15),
	}
	previous := map[string]standings.TeamStanding{
		"Arsenal FC": standing("Arsenal FC", 10, 20, 18, 10),
		"Chelsea FC": standing("Chelsea FC", 10, 16, 13, 12),
		"Everton FC": standing("Everton FC", 10, 14, 12, 12),
	}

	rows := Build(current, previous)

	if len(rows) != 3 {
		t.Fatalf("expected 3 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row.LeaguePosition != i+1 {
			t.Fatalf("expected dense positions, got %d at index %d", row.LeaguePosition, i)
		}
	}
	if rows[0].Team != "Arsenal FC" {
		t.Fatalf("expected Arsenal first, got %s", rows[0].Team)
	}

	arsenal := rows[0]
	if arsenal.PointsDifference != 5 {
		t.Fatalf("expected +5 points, got %d", arsenal.PointsDifference)
	}
	if arsenal.PointsPercentChange != 25 {
		t.Fatalf("expected 25%% change, got %v", arsenal.PointsPercentChange)
	}
	if !arsenal.PointsImproved {
		t.Fatalf("expected Arsenal marked improved")
	}

	chelsea := rows[1]
	if chelsea.PointsDifference != -4 || chelsea.PointsImproved {
		t.Fatalf("unexpected Chelsea deltas: %+v", chelsea)
	}

	// Everton only played in the previous season: no row.
	if _, ok := TeamRow(rows, "Everton FC"); ok {
		t.Fatalf("expected previous-only team to be dropped")
	}
}

func TestBuild_ZeroFillsMissingPreviousSeason(t *testing.T) {
	current := map[string]standings.TeamStanding{
		"Sunderland AFC": standing("Sunderland AFC", 5, 11, 9, 4),
	}

	rows := Build(current, nil)
	if len(rows) != 1 {
		t.Fatalf("expected 1 row, got %d", len(rows))
	}
	row := rows[0]
	if row.Previous.Points != 0 || row.Previous.GamesPlayed != 0 {
		t.Fatalf("expected zero-filled previous standing, got %+v", row.Previous)
	}
	if row.PointsDifference != row.Current.Points {
		t.Fatalf("expected difference to equal current points, got %d", row.PointsDifference)
	}
	// Divide-by-zero guard: zero prior points pin the percent change
	// to zero even though the team gained points.
	if row.PointsPercentChange != 0 {
		t.Fatalf("expected 0%% change with zero prior points, got %v", row.PointsPercentChange)
	}
}

func TestBuild_TiesBreakAlphabetically(t *testing.T) {
	current := map[string]standings.TeamStanding{
		"Wolves":    standing("Wolves", 4, 7, 5, 5),
		"Brentford": standing("Brentford", 4, 7, 6, 6),
		"Fulham":    standing("Fulham", 4, 9, 8, 3),
	}

	rows := Build(current, nil)
	if rows[0].Team != "Fulham" || rows[1].Team != "Brentford" || rows[2].Team != "Wolves" {
		t.Fatalf("unexpected order: %s, %s, %s", rows[0].Team, rows[1].Team, rows[2].Team)
	}
}

func TestParseMetric(t *testing.T) {
	if _, err := ParseMetric("points"); err != nil {
		t.Fatalf("expected points to parse, got %v", err)
	}
	if metric, err := ParseMetric(" Goal_Difference "); err != nil || metric != MetricGoalDifference {
		t.Fatalf("expected normalized parse, got %v %v", metric, err)
	}
	if _, err := ParseMetric("assists"); !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}
}

func TestTopImprovers(t *testing.T) {
	rows := []Row{
		{Team: "A", PointsDifference: 2, Current: standing("A", 5, 10, 9, 7), Previous: standing("A", 5, 8, 8, 8)},
		{Team: "B", PointsDifference: 7, Current: standing("B", 5, 12, 11, 4), Previous: standing("B", 5, 5, 6, 9)},
		{Team: "C", PointsDifference: -3, Current: standing("C", 5, 4, 3, 8), Previous: standing("C", 5, 7, 7, 7)},
	}

	top, err := TopImprovers(rows, MetricPoints, 2)
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	if len(top) != 2 || top[0].Team != "B" || top[1].Team != "A" {
		t.Fatalf("unexpected top improvers: %+v", top)
	}
	if top[0].Improvement != 7 || top[0].CurrentValue != 12 || top[0].PreviousValue != 5 {
		t.Fatalf("unexpected leader values: %+v", top[0])
	}

	if _, err := TopImprovers(rows, Metric("assists"), 2); !errors.Is(err, ErrUnknownMetric) {
		t.Fatalf("expected ErrUnknownMetric, got %v", err)
	}

	all, err := TopImprovers(rows, MetricPoints, 10)
	if err != nil || len(all) != 3 {
		t.Fatalf("expected full table for oversized n, got %d rows (%v)", len(all), err)
	}
}
