package fixture

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"
)

const (
	StatusScheduled = "SCHEDULED"
	StatusTimed     = "TIMED"
	StatusInPlay    = "IN_PLAY"
	StatusPaused    = "PAUSED"
	StatusFinished  = "FINISHED"
	StatusSuspended = "SUSPENDED"
	StatusPostponed = "POSTPONED"
	StatusCancelled = "CANCELLED"
)

// MinSeasonFixtures is the completeness floor for one season of data.
// A twenty-team double round robin yields 380 fixtures; a set far below
// that means the backing data is truncated or the wrong competition.
const MinSeasonFixtures = 100

var ErrDataUnavailable = errors.New("season fixture data unavailable")

// Fixture represents one league match within a season.
type Fixture struct {
	RefID         int64
	Season        int
	Matchday      int
	KickoffAt     time.Time
	Status        string
	HomeTeam      string
	AwayTeam      string
	HomeTeamRefID int64
	AwayTeamRefID int64
	HomeScore     *int
	AwayScore     *int
}

// SeasonLabel renders a starting year as the cross-year season name,
// e.g. 2025 -> "2025/2026".
func SeasonLabel(season int) string {
	return fmt.Sprintf("%d/%d", season, season+1)
}

func NormalizeStatus(value string) string {
	status := strings.ToUpper(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsFinishedStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusFinished, "AWARDED":
		return true
	default:
		return false
	}
}

func IsScheduledLikeStatus(status string) bool {
	switch NormalizeStatus(status) {
	case StatusScheduled, StatusTimed, StatusPostponed:
		return true
	default:
		return false
	}
}

// Finished reports whether the fixture carries a final score.
func (f Fixture) Finished() bool {
	return IsFinishedStatus(f.Status) && f.HomeScore != nil && f.AwayScore != nil
}

// Points returns the league points for a side scoring goalsFor against
// goalsAgainst under 3/1/0 scoring.
func Points(goalsFor, goalsAgainst int) int {
	switch {
	case goalsFor > goalsAgainst:
		return 3
	case goalsFor == goalsAgainst:
		return 1
	default:
		return 0
	}
}

// Result is a finished fixture with per-side derived columns.
type Result struct {
	Fixture
	HomePoints         int
	AwayPoints         int
	HomeGoalDifference int
	AwayGoalDifference int
}

// ResultOf derives the per-side points and goal difference for a
// fixture. ok is false when the fixture has no final score.
func ResultOf(f Fixture) (Result, bool) {
	if !f.Finished() {
		return Result{}, false
	}
	home, away := *f.HomeScore, *f.AwayScore
	return Result{
		Fixture:            f,
		HomePoints:         Points(home, away),
		AwayPoints:         Points(away, home),
		HomeGoalDifference: home - away,
		AwayGoalDifference: away - home,
	}, true
}

// Results filters a fixture list down to finished matches with derived
// columns, preserving input order.
func Results(fixtures []Fixture) []Result {
	results := make([]Result, 0, len(fixtures))
	for _, f := range fixtures {
		if result, ok := ResultOf(f); ok {
			results = append(results, result)
		}
	}
	return results
}

// Teams returns the sorted union of home and away participants.
func Teams(fixtures []Fixture) []string {
	seen := make(map[string]struct{}, len(fixtures)/10+1)
	names := make([]string, 0, len(seen))
	for _, f := range fixtures {
		for _, name := range [...]string{f.HomeTeam, f.AwayTeam} {
			if name == "" {
				continue
			}
			if _, ok := seen[name]; ok {
				continue
			}
			seen[name] = struct{}{}
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// TeamSet returns the participants of a fixture list as a set.
func TeamSet(fixtures []Fixture) map[string]struct{} {
	set := make(map[string]struct{}, len(fixtures)/10+1)
	for _, f := range fixtures {
		if f.HomeTeam != "" {
			set[f.HomeTeam] = struct{}{}
		}
		if f.AwayTeam != "" {
			set[f.AwayTeam] = struct{}{}
		}
	}
	return set
}

// ValidateSeason rejects fixture sets that are too small or structurally
// broken to represent a real season. Partial data never passes.
func ValidateSeason(season int, fixtures []Fixture) error {
	if len(fixtures) < MinSeasonFixtures {
		return fmt.Errorf("%w: season %s has %d fixtures, expected at least %d",
			ErrDataUnavailable, SeasonLabel(season), len(fixtures), MinSeasonFixtures)
	}
	for _, f := range fixtures {
		if f.HomeTeam == "" || f.AwayTeam == "" {
			return fmt.Errorf("%w: season %s fixture %d is missing a team name",
				ErrDataUnavailable, SeasonLabel(season), f.RefID)
		}
	}
	return nil
}
