package fixture

import "context"

// Source exposes season fixture reads.
type Source interface {
	ListBySeason(ctx context.Context, season int) ([]Fixture, error)
	Seasons(ctx context.Context) ([]int, error)
}

// Writer persists a full season of fixtures, replacing what was there.
type Writer interface {
	ReplaceSeason(ctx context.Context, season int, fixtures []Fixture) error
}
