package mapping

import "context"

// StandingsSource exposes secondary-division final tables used to rank
// promoted teams. An empty table means the signal is unavailable, not
// an error.
type StandingsSource interface {
	ListBySeason(ctx context.Context, season int) ([]DivisionStanding, error)
}

// StandingsWriter persists a season's secondary-division table.
type StandingsWriter interface {
	ReplaceSeason(ctx context.Context, season int, standings []DivisionStanding) error
}
