package mapping

import (
	"reflect"
	"testing"
)

func teamSet(names ...string) map[string]struct{} {
	set := make(map[string]struct{}, len(names))
	for _, name := range names {
		set[name] = struct{}{}
	}
	return set
}

func TestBuild_IdenticalUniverses(t *testing.T) {
	teams := teamSet("Arsenal FC", "Chelsea FC", "Liverpool FC")

	pairs := NewMapper(nil).Build(teams, teams)
	if len(pairs) != 0 {
		t.Fatalf("expected no pairs for identical universes, got %v", pairs)
	}
}

func TestBuild_LexicographicFallback(t *testing.T) {
	current := teamSet("Arsenal FC", "Chelsea FC", "Leicester")
	comparison := teamSet("Arsenal FC", "Chelsea FC", "Burnley")

	pairs := NewMapper(nil).Build(current, comparison)
	want := []Pair{{Promoted: "Leicester", Relegated: "Burnley"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("expected %v, got %v", want, pairs)
	}
}

func TestBuild_DivisionRankPairing(t *testing.T) {
	shared := []string{
		"Arsenal FC", "Chelsea FC", "Liverpool FC", "Manchester City FC",
	}
	current := teamSet(append(shared, "Burnley FC", "Leeds United FC", "Sunderland AFC")...)
	comparison := teamSet(append(shared, "Ipswich Town FC", "Leicester City FC", "Southampton FC")...)

	standings := []DivisionStanding{
		{Position: 1, TeamName: "Leeds United", Points: 100, GoalDifference: 65},
		{Position: 2, TeamName: "Burnley", Points: 100, GoalDifference: 54},
		{Position: 3, TeamName: "Sheffield United", Points: 90, GoalDifference: 38},
		{Position: 4, TeamName: "Sunderland", Points: 76, GoalDifference: 14},
	}

	pairs := NewMapper(DivisionRank{Standings: standings}).Build(current, comparison)

	// Best-ranked promotion inherits the lexicographically last
	// relegated slot. Sheffield United stayed down, so Sunderland
	// pairs through the fallback with the one remaining slot.
	want := []Pair{
		{Promoted: "Leeds United FC", Relegated: "Southampton FC"},
		{Promoted: "Burnley FC", Relegated: "Leicester City FC"},
		{Promoted: "Sunderland AFC", Relegated: "Ipswich Town FC"},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("expected %v, got %v", want, pairs)
	}
}

func TestBuild_UnequalSwapSkipsRankedPairing(t *testing.T) {
	current := teamSet("Arsenal FC", "Derby County", "Hull City")
	comparison := teamSet("Arsenal FC", "Watford FC")

	standings := []DivisionStanding{
		{Position: 1, TeamName: "Hull City"},
		{Position: 2, TeamName: "Derby County"},
	}

	pairs := NewMapper(DivisionRank{Standings: standings}).Build(current, comparison)

	// Two promotions against one relegation: ranks and slots do not
	// line up, so pairing falls back to the lexicographic zip and the
	// surplus promotion stays unmapped.
	want := []Pair{{Promoted: "Derby County", Relegated: "Watford FC"}}
	if !reflect.DeepEqual(pairs, want) {
		t.Fatalf("expected %v, got %v", want, pairs)
	}
}

func TestDivisionRank_EmptyTableRanksNothing(t *testing.T) {
	ranked := DivisionRank{}.Rank(teamSet("Leeds United FC"))
	if len(ranked) != 0 {
		t.Fatalf("expected empty ranking without standings, got %v", ranked)
	}
}

func TestSummarize(t *testing.T) {
	pairs := []Pair{
		{Promoted: "Leeds United FC", Relegated: "Southampton FC"},
		{Promoted: "Burnley FC", Relegated: "Leicester City FC"},
	}

	summary := Summarize(2025, 2024, pairs)
	if summary.CurrentSeason != "2025/2026" || summary.ComparisonSeason != "2024/2025" {
		t.Fatalf("unexpected season labels: %q vs %q", summary.CurrentSeason, summary.ComparisonSeason)
	}
	if summary.MappingCount != 2 {
		t.Fatalf("expected 2 mappings, got %d", summary.MappingCount)
	}
	if summary.Mappings["Burnley FC"] != "Leicester City FC" {
		t.Fatalf("unexpected substitution: %v", summary.Mappings)
	}
	if summary.PromotedTeams[0] != "Leeds United FC" || summary.RelegatedTeams[0] != "Southampton FC" {
		t.Fatalf("expected summary to keep pairing order, got %v / %v", summary.PromotedTeams, summary.RelegatedTeams)
	}
}
