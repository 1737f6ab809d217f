package memory

import (
	"time"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
)

const (
	SeedSeasonCurrent  = 2025
	SeedSeasonPrevious = 2024

	seedMatchdays = 38

	// The current seed season has only its opening matchdays played,
	// the previous one is complete.
	seedPlayedMatchdaysCurrent = 2
)

var seedCurrentClubs = []string{
	"AFC Bournemouth",
	"Arsenal FC",
	"Aston Villa FC",
	"Brentford FC",
	"Brighton & Hove Albion FC",
	"Burnley FC",
	"Chelsea FC",
	"Crystal Palace FC",
	"Everton FC",
	"Fulham FC",
	"Leeds United FC",
	"Liverpool FC",
	"Manchester City FC",
	"Manchester United FC",
	"Newcastle United FC",
	"Nottingham Forest FC",
	"Sunderland AFC",
	"Tottenham Hotspur FC",
	"West Ham United FC",
	"Wolverhampton Wanderers FC",
}

var seedPreviousClubs = []string{
	"AFC Bournemouth",
	"Arsenal FC",
	"Aston Villa FC",
	"Brentford FC",
	"Brighton & Hove Albion FC",
	"Chelsea FC",
	"Crystal Palace FC",
	"Everton FC",
	"Fulham FC",
	"Ipswich Town FC",
	"Leicester City FC",
	"Liverpool FC",
	"Manchester City FC",
	"Manchester United FC",
	"Newcastle United FC",
	"Nottingham Forest FC",
	"Southampton FC",
	"Tottenham Hotspur FC",
	"West Ham United FC",
	"Wolverhampton Wanderers FC",
}

var seedTeamRefIDs = map[string]int64{
	"AFC Bournemouth":            1044,
	"Arsenal FC":                 57,
	"Aston Villa FC":             58,
	"Brentford FC":               402,
	"Brighton & Hove Albion FC":  397,
	"Burnley FC":                 328,
	"Chelsea FC":                 61,
	"Crystal Palace FC":          354,
	"Everton FC":                 62,
	"Fulham FC":                  63,
	"Ipswich Town FC":            1077,
	"Leeds United FC":            341,
	"Leicester City FC":          338,
	"Liverpool FC":               64,
	"Manchester City FC":         65,
	"Manchester United FC":       66,
	"Newcastle United FC":        67,
	"Nottingham Forest FC":       351,
	"Southampton FC":             340,
	"Sunderland AFC":             71,
	"Tottenham Hotspur FC":       73,
	"West Ham United FC":         563,
	"Wolverhampton Wanderers FC": 76,
}

// SeedFixtureSeasons builds two full league calendars: a finished
// previous season and a current season that has just kicked off.
func SeedFixtureSeasons() map[int][]fixture.Fixture {
	return map[int][]fixture.Fixture{
		SeedSeasonPrevious: seedSeason(SeedSeasonPrevious, seedPreviousClubs, seedMatchdays),
		SeedSeasonCurrent:  seedSeason(SeedSeasonCurrent, seedCurrentClubs, seedPlayedMatchdaysCurrent),
	}
}

// SeedDivisionStandings returns the second-division final table for the
// previous season, spelled the way standings feeds abbreviate names.
func SeedDivisionStandings() map[int][]mapping.DivisionStanding {
	return map[int][]mapping.DivisionStanding{
		SeedSeasonPrevious: {
			{Position: 1, TeamName: "Leeds United", TeamRefID: 341, Points: 100, GoalDifference: 65, Season: SeedSeasonPrevious},
			{Position: 2, TeamName: "Burnley", TeamRefID: 328, Points: 100, GoalDifference: 53, Season: SeedSeasonPrevious},
			{Position: 3, TeamName: "Sheffield United", TeamRefID: 356, Points: 90, GoalDifference: 29, Season: SeedSeasonPrevious},
			{Position: 4, TeamName: "Sunderland", TeamRefID: 71, Points: 76, GoalDifference: 14, Season: SeedSeasonPrevious},
			{Position: 5, TeamName: "Coventry City", TeamRefID: 1076, Points: 69, GoalDifference: 9, Season: SeedSeasonPrevious},
			{Position: 6, TeamName: "Bristol City", TeamRefID: 387, Points: 62, GoalDifference: -5, Season: SeedSeasonPrevious},
		},
	}
}

// seedSeason lays out a double round robin with the circle method so
// every club plays once per matchday, then marks the first
// playedMatchdays as finished with deterministic scores.
func seedSeason(season int, clubs []string, playedMatchdays int) []fixture.Fixture {
	clubCount := len(clubs)
	rounds := clubCount - 1
	half := clubCount / 2

	firstHalf := make([][][2]int, 0, rounds)
	for r := 0; r < rounds; r++ {
		pairs := make([][2]int, 0, half)
		for k := 0; k < half; k++ {
			home := (r + k) % (clubCount - 1)
			away := (clubCount - 1 - k + r) % (clubCount - 1)
			if k == 0 {
				away = clubCount - 1
				if r%2 == 1 {
					home, away = away, home
				}
			}
			pairs = append(pairs, [2]int{home, away})
		}
		firstHalf = append(firstHalf, pairs)
	}

	start := time.Date(season, time.August, 9, 14, 0, 0, 0, time.UTC)
	fixtures := make([]fixture.Fixture, 0, clubCount*(clubCount-1))
	refID := int64(season) * 10000

	appendRound := func(matchday int, pairs [][2]int) {
		kickoff := start.AddDate(0, 0, (matchday-1)*7)
		for _, pair := range pairs {
			home, away := clubs[pair[0]], clubs[pair[1]]
			refID++
			row := fixture.Fixture{
				RefID:         refID,
				Season:        season,
				Matchday:      matchday,
				KickoffAt:     kickoff,
				Status:        fixture.StatusTimed,
				HomeTeam:      home,
				AwayTeam:      away,
				HomeTeamRefID: seedTeamRefIDs[home],
				AwayTeamRefID: seedTeamRefIDs[away],
			}
			if matchday <= playedMatchdays {
				homeGoals := (pair[0]*2 + pair[1] + matchday + season) % 5
				awayGoals := (pair[0] + pair[1]*2 + matchday/3 + season) % 3
				row.Status = fixture.StatusFinished
				row.HomeScore = &homeGoals
				row.AwayScore = &awayGoals
			}
			fixtures = append(fixtures, row)
		}
	}

	for r, pairs := range firstHalf {
		appendRound(r+1, pairs)
	}
	for r, pairs := range firstHalf {
		mirrored := make([][2]int, 0, len(pairs))
		for _, pair := range pairs {
			mirrored = append(mirrored, [2]int{pair[1], pair[0]})
		}
		appendRound(rounds+r+1, mirrored)
	}

	return fixtures
}
