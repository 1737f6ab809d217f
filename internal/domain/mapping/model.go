package mapping

import (
	"github.com/matchpulse/season-compare/internal/domain/fixture"
)

// Substitution maps each promoted team to the relegated team whose
// place it takes for comparison purposes.
type Substitution map[string]string

// Apply returns the comparison-season identity for a team name.
// Teams outside the substitution map to themselves.
func (s Substitution) Apply(team string) string {
	if mapped, ok := s[team]; ok {
		return mapped
	}
	return team
}

// Pair is one promoted-to-relegated assignment, kept in construction
// order so summaries list best-ranked promotions first.
type Pair struct {
	Promoted  string
	Relegated string
}

// AsSubstitution flattens pairs into a lookup table.
func AsSubstitution(pairs []Pair) Substitution {
	subs := make(Substitution, len(pairs))
	for _, pair := range pairs {
		subs[pair.Promoted] = pair.Relegated
	}
	return subs
}

// DivisionStanding is one row of a secondary-division final table.
type DivisionStanding struct {
	Position       int
	TeamName       string
	TeamRefID      int64
	Points         int
	GoalDifference int
	Season         int
}

// Summary describes the team substitutions between two seasons.
type Summary struct {
	CurrentSeason    string
	ComparisonSeason string
	Mappings         Substitution
	PromotedTeams    []string
	RelegatedTeams   []string
	MappingCount     int
}

// Summarize renders pairs into the summary shape callers display.
func Summarize(currentSeason, comparisonSeason int, pairs []Pair) Summary {
	promoted := make([]string, 0, len(pairs))
	relegated := make([]string, 0, len(pairs))
	for _, pair := range pairs {
		promoted = append(promoted, pair.Promoted)
		relegated = append(relegated, pair.Relegated)
	}
	return Summary{
		CurrentSeason:    fixture.SeasonLabel(currentSeason),
		ComparisonSeason: fixture.SeasonLabel(comparisonSeason),
		Mappings:         AsSubstitution(pairs),
		PromotedTeams:    promoted,
		RelegatedTeams:   relegated,
		MappingCount:     len(pairs),
	}
}

// MappedFixture joins one current-season fixture with its inferred
// equivalent in the comparison season. Comparison is nil when no
// equivalent exists; scores stay aligned to the found fixture's own
// home/away order.
type MappedFixture struct {
	Current        fixture.Fixture
	MappedHomeTeam string
	MappedAwayTeam string
	Comparison     *fixture.Fixture
	MappingFound   bool
}
