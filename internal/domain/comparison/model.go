package comparison

import (
	"errors"
	"fmt"
	"strings"

	"github.com/matchpulse/season-compare/internal/domain/standings"
)

var ErrUnknownMetric = errors.New("unknown comparison metric")

// Metric selects which difference column ranks improvement queries.
type Metric string

const (
	MetricPoints         Metric = "points"
	MetricGoalDifference Metric = "goal_difference"
	MetricGoalsFor       Metric = "goals_for"
)

// ParseMetric validates a caller-supplied metric name.
func ParseMetric(value string) (Metric, error) {
	metric := Metric(strings.ToLower(strings.TrimSpace(value)))
	switch metric {
	case MetricPoints, MetricGoalDifference, MetricGoalsFor:
		return metric, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMetric, value)
	}
}

// Row is one team's two-season comparison line. Previous fields are
// zero-filled when the team has no comparison-season standing.
type Row struct {
	LeaguePosition         int
	Team                   string
	Current                standings.TeamStanding
	Previous               standings.TeamStanding
	PointsDifference       int
	GoalDifferenceChange   int
	GoalsForDifference     int
	GoalsAgainstDifference int
	PointsPercentChange    float64
	PointsImproved         bool
	GoalDifferenceImproved bool
}

// Improvement is one row of a top-improvers query.
type Improvement struct {
	Team          string
	Improvement   int
	CurrentValue  int
	PreviousValue int
}
