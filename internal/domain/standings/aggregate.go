package standings

import (
	"sort"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
)

// View selects which side of a mapped fixture feeds the table.
type View string

const (
	ViewCurrent    View = "current"
	ViewComparison View = "comparison"
)

// Aggregate folds mapped fixtures into per-team standings for one
// season view. The current view counts every current fixture with a
// recorded score, mapped or not; the comparison view counts only
// fixtures whose equivalent was found, keyed by the substituted team
// names. Teams with no qualifying fixtures are absent from the table
// rather than present as zero rows.
func Aggregate(mapped []mapping.MappedFixture, view View) map[string]TeamStanding {
	table := make(map[string]TeamStanding)
	for _, m := range mapped {
		home, away, homeGoals, awayGoals, ok := sides(m, view)
		if !ok {
			continue
		}
		accumulate(table, home, homeGoals, awayGoals)
		accumulate(table, away, awayGoals, homeGoals)
	}
	return table
}

func sides(m mapping.MappedFixture, view View) (home, away string, homeGoals, awayGoals int, ok bool) {
	if view == ViewComparison {
		if !m.MappingFound || m.Comparison == nil {
			return "", "", 0, 0, false
		}
		if m.Comparison.HomeScore == nil || m.Comparison.AwayScore == nil {
			return "", "", 0, 0, false
		}
		return m.MappedHomeTeam, m.MappedAwayTeam, *m.Comparison.HomeScore, *m.Comparison.AwayScore, true
	}
	if m.Current.HomeScore == nil || m.Current.AwayScore == nil {
		return "", "", 0, 0, false
	}
	return m.Current.HomeTeam, m.Current.AwayTeam, *m.Current.HomeScore, *m.Current.AwayScore, true
}

func accumulate(table map[string]TeamStanding, team string, goalsFor, goalsAgainst int) {
	standing := table[team]
	standing.Team = team
	standing.GamesPlayed++
	standing.GoalsFor += goalsFor
	standing.GoalsAgainst += goalsAgainst
	standing.GoalDifference = standing.GoalsFor - standing.GoalsAgainst
	standing.Points += fixture.Points(goalsFor, goalsAgainst)
	switch {
	case goalsFor > goalsAgainst:
		standing.Wins++
	case goalsFor == goalsAgainst:
		standing.Draws++
	default:
		standing.Losses++
	}
	table[team] = standing
}

// FromResults builds a single-season table from finished fixtures.
func FromResults(results []fixture.Result) map[string]TeamStanding {
	table := make(map[string]TeamStanding)
	for _, result := range results {
		home, away := *result.HomeScore, *result.AwayScore
		accumulate(table, result.HomeTeam, home, away)
		accumulate(table, result.AwayTeam, away, home)
	}
	return table
}

// Sorted returns table rows in league order: points, then goal
// difference, then goals for, then name.
func Sorted(table map[string]TeamStanding) []TeamStanding {
	rows := make([]TeamStanding, 0, len(table))
	for _, standing := range table {
		rows = append(rows, standing)
	}
	sort.SliceStable(rows, func(i, j int) bool {
		if rows[i].Points != rows[j].Points {
			return rows[i].Points > rows[j].Points
		}
		if rows[i].GoalDifference != rows[j].GoalDifference {
			return rows[i].GoalDifference > rows[j].GoalDifference
		}
		if rows[i].GoalsFor != rows[j].GoalsFor {
			return rows[i].GoalsFor > rows[j].GoalsFor
		}
		return rows[i].Team < rows[j].Team
	})
	return rows
}
