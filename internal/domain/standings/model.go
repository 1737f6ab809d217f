package standings

// TeamStanding aggregates one team's results within one season view.
// Derived from fixtures on every computation, never stored.
type TeamStanding struct {
	Team           string
	GamesPlayed    int
	Points         int
	GoalsFor       int
	GoalsAgainst   int
	GoalDifference int
	Wins           int
	Draws          int
	Losses         int
}
