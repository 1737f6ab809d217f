package comparison

import (
	"fmt"
	"sort"

	"github.com/matchpulse/season-compare/internal/domain/standings"
)

// Build outer-joins the two standings views on team name, computes the
// difference columns, drops teams without current-season games, and
// assigns league positions 1..N by current points descending. Position
// ties break alphabetically because the merge walks teams in sorted
// order and the sort is stable.
func Build(current, previous map[string]standings.TeamStanding) []Row {
	teams := make([]string, 0, len(current)+len(previous))
	seen := make(map[string]struct{}, len(current)+len(previous))
	for team := range current {
		teams = append(teams, team)
		seen[team] = struct{}{}
	}
	for team := range previous {
		if _, ok := seen[team]; !ok {
			teams = append(teams, team)
		}
	}
	sort.Strings(teams)

	rows := make([]Row, 0, len(teams))
	for _, team := range teams {
		cur := current[team]
		if cur.GamesPlayed == 0 {
			continue
		}
		prev := previous[team]
		cur.Team = team
		prev.Team = team

		row := Row{
			Team:                   team,
			Current:                cur,
			Previous:               prev,
			PointsDifference:       cur.Points - prev.Points,
			GoalDifferenceChange:   cur.GoalDifference - prev.GoalDifference,
			GoalsForDifference:     cur.GoalsFor - prev.GoalsFor,
			GoalsAgainstDifference: cur.GoalsAgainst - prev.GoalsAgainst,
		}
		// Zero prior points yield a zero percent change even when the
		// difference is nonzero. Callers depend on that quirk.
		if prev.Points > 0 {
			row.PointsPercentChange = float64(row.PointsDifference) / float64(prev.Points) * 100
		}
		row.PointsImproved = row.PointsDifference > 0
		row.GoalDifferenceImproved = row.GoalDifferenceChange > 0
		rows = append(rows, row)
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].Current.Points > rows[j].Current.Points
	})
	for i := range rows {
		rows[i].LeaguePosition = i + 1
	}
	return rows
}

// TeamRow finds a team's comparison row by exact name.
func TeamRow(rows []Row, team string) (Row, bool) {
	for _, row := range rows {
		if row.Team == team {
			return row, true
		}
	}
	return Row{}, false
}

// TopImprovers ranks rows by one difference column, descending. Ties
// keep league-position order. n larger than the table returns every
// row; n of zero or less returns none.
func TopImprovers(rows []Row, metric Metric, n int) ([]Improvement, error) {
	improvements := make([]Improvement, 0, len(rows))
	for _, row := range rows {
		entry := Improvement{Team: row.Team}
		switch metric {
		case MetricPoints:
			entry.Improvement = row.PointsDifference
			entry.CurrentValue = row.Current.Points
			entry.PreviousValue = row.Previous.Points
		case MetricGoalDifference:
			entry.Improvement = row.GoalDifferenceChange
			entry.CurrentValue = row.Current.GoalDifference
			entry.PreviousValue = row.Previous.GoalDifference
		case MetricGoalsFor:
			entry.Improvement = row.GoalsForDifference
			entry.CurrentValue = row.Current.GoalsFor
			entry.PreviousValue = row.Previous.GoalsFor
		default:
			return nil, fmt.Errorf("%w: %q", ErrUnknownMetric, metric)
		}
		improvements = append(improvements, entry)
	}

	sort.SliceStable(improvements, func(i, j int) bool {
		return improvements[i].Improvement > improvements[j].Improvement
	})
	if n < 0 {
		n = 0
	}
	if n < len(improvements) {
		improvements = improvements[:n]
	}
	return improvements, nil
}
