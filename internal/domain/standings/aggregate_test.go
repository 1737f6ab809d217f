package standings

import (
	"testing"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
)

func ptrInt(value int) *int {
	return &value
}

func played(home, away string, homeScore, awayScore int) fixture.Fixture {
	return fixture.Fixture{
		HomeTeam:  home,
		AwayTeam:  away,
		Status:    fixture.StatusFinished,
		HomeScore: ptrInt(homeScore),
		AwayScore: ptrInt(awayScore),
	}
}

func currentOnly(f fixture.Fixture) mapping.MappedFixture {
	return mapping.MappedFixture{
		Current:        f,
		MappedHomeTeam: f.HomeTeam,
		MappedAwayTeam: f.AwayTeam,
	}
}

func TestAggregate_CurrentView(t *testing.T) {
	mapped := []mapping.MappedFixture{
		currentOnly(played("Arsenal FC", "Chelsea FC", 2, 1)),
		currentOnly(played("Chelsea FC", "Liverpool FC", 1, 3)),
		currentOnly(fixture.Fixture{HomeTeam: "Arsenal FC", AwayTeam: "Liverpool FC", Status: fixture.StatusTimed}),
	}

	table := Aggregate(mapped, ViewCurrent)

	arsenal := table["Arsenal FC"]
	if arsenal.GamesPlayed != 1 || arsenal.Points != 3 || arsenal.GoalsFor != 2 || arsenal.GoalsAgainst != 1 {
		t.Fatalf("unexpected Arsenal standing: %+v", arsenal)
	}
	chelsea := table["Chelsea FC"]
	if chelsea.GamesPlayed != 2 || chelsea.Points != 0 || chelsea.GoalsFor != 2 || chelsea.GoalsAgainst != 5 {
		t.Fatalf("unexpected Chelsea standing: %+v", chelsea)
	}
	if chelsea.Losses != 2 || chelsea.Wins != 0 || chelsea.Draws != 0 {
		t.Fatalf("unexpected Chelsea record: %+v", chelsea)
	}
}

func TestAggregate_CurrentViewCountsUnmappedFixtures(t *testing.T) {
	record := currentOnly(played("Arsenal FC", "Chelsea FC", 1, 0))
	record.MappingFound = false

	current := Aggregate([]mapping.MappedFixture{record}, ViewCurrent)
	if current["Arsenal FC"].GamesPlayed != 1 {
		t.Fatalf("expected unmapped fixture to count toward the current table")
	}

	comparison := Aggregate([]mapping.MappedFixture{record}, ViewComparison)
	if len(comparison) != 0 {
		t.Fatalf("expected unmapped fixture to stay out of the comparison table, got %v", comparison)
	}
}

func TestAggregate_ComparisonViewUsesMappedNames(t *testing.T) {
	equivalent := played("Arsenal FC", "Southampton FC", 3, 1)
	mapped := []mapping.MappedFixture{
		{
			Current:        played("Arsenal FC", "Leeds United FC", 0, 0),
			MappedHomeTeam: "Arsenal FC",
			MappedAwayTeam: "Southampton FC",
			Comparison:     &equivalent,
			MappingFound:   true,
		},
	}

	table := Aggregate(mapped, ViewComparison)
	if _, ok := table["Leeds United FC"]; ok {
		t.Fatalf("expected comparison table keyed by substituted names")
	}
	southampton := table["Southampton FC"]
	if southampton.GamesPlayed != 1 || southampton.GoalsFor != 1 || southampton.GoalsAgainst != 3 || southampton.Points != 0 {
		t.Fatalf("unexpected Southampton standing: %+v", southampton)
	}
}

func TestAggregate_PointsConservation(t *testing.T) {
	mapped := []mapping.MappedFixture{
		currentOnly(played("A", "B", 2, 0)),
		currentOnly(played("B", "C", 1, 1)),
		currentOnly(played("C", "A", 0, 3)),
		currentOnly(played("A", "B", 2, 2)),
	}

	table := Aggregate(mapped, ViewCurrent)

	total := 0
	for _, standing := range table {
		total += standing.Points
		if standing.GoalDifference != standing.GoalsFor-standing.GoalsAgainst {
			t.Fatalf("goal difference identity broken for %+v", standing)
		}
	}

	// Two decisive fixtures hand out 3 points each, two draws 2 each.
	if want := 3*2 + 2*2; total != want {
		t.Fatalf("expected %d total points, got %d", want, total)
	}
}

func TestAggregate_SwapInvariance(t *testing.T) {
	fixtures := []mapping.MappedFixture{
		currentOnly(played("A", "B", 2, 1)),
		currentOnly(played("B", "C", 0, 0)),
		currentOnly(played("C", "A", 1, 4)),
	}
	swapped := make([]mapping.MappedFixture, len(fixtures))
	for i, m := range fixtures {
		flipped := m.Current
		flipped.HomeTeam, flipped.AwayTeam = m.Current.AwayTeam, m.Current.HomeTeam
		flipped.HomeScore, flipped.AwayScore = m.Current.AwayScore, m.Current.HomeScore
		swapped[i] = currentOnly(flipped)
	}

	original := Aggregate(fixtures, ViewCurrent)
	mirrored := Aggregate(swapped, ViewCurrent)

	if len(original) != len(mirrored) {
		t.Fatalf("expected identical team counts, got %d and %d", len(original), len(mirrored))
	}
	for team, standing := range original {
		if mirrored[team] != standing {
			t.Fatalf("swap changed %s standing: %+v vs %+v", team, standing, mirrored[team])
		}
	}
}

func TestSorted_LeagueOrder(t *testing.T) {
	table := map[string]TeamStanding{
		"A": {Team: "A", Points: 10, GoalDifference: 5, GoalsFor: 12},
		"B": {Team: "B", Points: 12, GoalDifference: 2, GoalsFor: 8},
		"C": {Team: "C", Points: 10, GoalDifference: 5, GoalsFor: 15},
		"D": {Team: "D", Points: 10, GoalDifference: 7, GoalsFor: 9},
	}

	rows := Sorted(table)
	wantOrder := []string{"B", "D", "C", "A"}
	for i, want := range wantOrder {
		if rows[i].Team != want {
			t.Fatalf("expected %s at position %d, got %s", want, i+1, rows[i].Team)
		}
	}
}

func TestFromResults(t *testing.T) {
	results := fixture.Results([]fixture.Fixture{
		played("A", "B", 1, 0),
		played("B", "A", 2, 2),
	})

	table := FromResults(results)
	a := table["A"]
	if a.GamesPlayed != 2 || a.Points != 4 || a.Wins != 1 || a.Draws != 1 {
		t.Fatalf("unexpected standing for A: %+v", a)
	}
}
