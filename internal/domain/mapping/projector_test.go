package mapping

import (
	"testing"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
)

func ptrInt(value int) *int {
	return &value
}

func finishedFixture(refID int64, home, away string, homeScore, awayScore int) fixture.Fixture {
	return fixture.Fixture{
		RefID:     refID,
		HomeTeam:  home,
		AwayTeam:  away,
		Status:    fixture.StatusFinished,
		HomeScore: ptrInt(homeScore),
		AwayScore: ptrInt(awayScore),
	}
}

func TestProject(t *testing.T) {
	current := []fixture.Fixture{
		finishedFixture(1, "Arsenal FC", "Chelsea FC", 2, 1),
		finishedFixture(2, "Leeds United FC", "Arsenal FC", 0, 0),
		finishedFixture(3, "Chelsea FC", "Leeds United FC", 1, 3),
	}
	comparison := []fixture.Fixture{
		finishedFixture(11, "Arsenal FC", "Chelsea FC", 1, 0),
		finishedFixture(12, "Arsenal FC", "Southampton FC", 4, 1),
	}
	subs := Substitution{"Leeds United FC": "Southampton FC"}

	mapped := Project(current, comparison, subs)
	if len(mapped) != len(current) {
		t.Fatalf("expected one record per current fixture, got %d", len(mapped))
	}

	// Exact pairing.
	first := mapped[0]
	if !first.MappingFound || first.Comparison == nil || first.Comparison.RefID != 11 {
		t.Fatalf("expected fixture 1 to map onto 11, got %+v", first)
	}

	// Substituted home side matched through the reverse leg.
	second := mapped[1]
	if second.MappedHomeTeam != "Southampton FC" {
		t.Fatalf("expected substitution on home side, got %q", second.MappedHomeTeam)
	}
	if !second.MappingFound || second.Comparison.RefID != 12 {
		t.Fatalf("expected fixture 2 to map onto 12 via the reverse leg, got %+v", second)
	}

	// No equivalent exists; the record survives unmapped.
	third := mapped[2]
	if third.MappingFound || third.Comparison != nil {
		t.Fatalf("expected fixture 3 to stay unmapped, got %+v", third)
	}
	if third.Current.RefID != 3 {
		t.Fatalf("expected output to preserve fixture order")
	}
}

func TestProject_ExactLegBeatsReverseLeg(t *testing.T) {
	current := []fixture.Fixture{finishedFixture(1, "Arsenal FC", "Chelsea FC", 1, 1)}
	comparison := []fixture.Fixture{
		finishedFixture(21, "Chelsea FC", "Arsenal FC", 2, 0),
		finishedFixture(22, "Arsenal FC", "Chelsea FC", 3, 0),
	}

	mapped := Project(current, comparison, nil)
	if mapped[0].Comparison.RefID != 22 {
		t.Fatalf("expected exact pairing to win over the reverse leg, got %d", mapped[0].Comparison.RefID)
	}
}

func TestSuccessRate(t *testing.T) {
	mapped := []MappedFixture{
		{MappingFound: true},
		{MappingFound: false},
		{MappingFound: true},
		{MappingFound: false},
	}

	if got := SuccessRate(mapped); got != 50 {
		t.Fatalf("expected 50%%, got %v", got)
	}
	if got := SuccessRate(nil); got != 0 {
		t.Fatalf("expected 0%% for empty input, got %v", got)
	}
	if got := FoundCount(mapped); got != 2 {
		t.Fatalf("expected 2 found, got %d", got)
	}
}
