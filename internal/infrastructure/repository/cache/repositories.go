package cache

import (
	"context"
	"strconv"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
	basecache "github.com/matchpulse/season-compare/internal/platform/cache"
)

const (
	fixtureSeasonPrefix  = "fixtures:season:"
	fixtureSeasonListKey = "fixtures:seasons"
	standingsPrefix      = "standings:season:"
)

// FixtureStore is the read and write surface the fixture decorator
// wraps.
type FixtureStore interface {
	fixture.Source
	fixture.Writer
}

// FixtureRepository adds read-through caching in front of a fixture
// store. Writes pass through and drop the keys they staled.
type FixtureRepository struct {
	next  FixtureStore
	cache *basecache.Store
}

func NewFixtureRepository(next FixtureStore, cache *basecache.Store) *FixtureRepository {
	return &FixtureRepository{next: next, cache: cache}
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, season int) ([]fixture.Fixture, error) {
	key := fixtureSeasonPrefix + strconv.Itoa(season)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, season)
		if err != nil {
			return nil, err
		}
		return cloneFixtures(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]fixture.Fixture)
	return cloneFixtures(items), nil
}

func (r *FixtureRepository) Seasons(ctx context.Context) ([]int, error) {
	v, err := r.cache.GetOrLoad(ctx, fixtureSeasonListKey, func(ctx context.Context) (any, error) {
		seasons, err := r.next.Seasons(ctx)
		if err != nil {
			return nil, err
		}
		return append([]int(nil), seasons...), nil
	})
	if err != nil {
		return nil, err
	}

	seasons, _ := v.([]int)
	return append([]int(nil), seasons...), nil
}

func (r *FixtureRepository) ReplaceSeason(ctx context.Context, season int, fixtures []fixture.Fixture) error {
	if err := r.next.ReplaceSeason(ctx, season, fixtures); err != nil {
		return err
	}
	r.cache.Delete(ctx, fixtureSeasonPrefix+strconv.Itoa(season))
	r.cache.Delete(ctx, fixtureSeasonListKey)
	return nil
}

func cloneFixtures(items []fixture.Fixture) []fixture.Fixture {
	out := make([]fixture.Fixture, 0, len(items))
	for _, item := range items {
		out = append(out, cloneFixture(item))
	}
	return out
}

func cloneFixture(item fixture.Fixture) fixture.Fixture {
	out := item
	if item.HomeScore != nil {
		score := *item.HomeScore
		out.HomeScore = &score
	}
	if item.AwayScore != nil {
		score := *item.AwayScore
		out.AwayScore = &score
	}
	return out
}

// StandingsStore is the read and write surface the standings decorator
// wraps.
type StandingsStore interface {
	mapping.StandingsSource
	mapping.StandingsWriter
}

// StandingsRepository adds read-through caching in front of a
// secondary-division standings store.
type StandingsRepository struct {
	next  StandingsStore
	cache *basecache.Store
}

func NewStandingsRepository(next StandingsStore, cache *basecache.Store) *StandingsRepository {
	return &StandingsRepository{next: next, cache: cache}
}

func (r *StandingsRepository) ListBySeason(ctx context.Context, season int) ([]mapping.DivisionStanding, error) {
	key := standingsPrefix + strconv.Itoa(season)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListBySeason(ctx, season)
		if err != nil {
			return nil, err
		}
		return append([]mapping.DivisionStanding(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]mapping.DivisionStanding)
	return append([]mapping.DivisionStanding(nil), items...), nil
}

func (r *StandingsRepository) ReplaceSeason(ctx context.Context, season int, standings []mapping.DivisionStanding) error {
	if err := r.next.ReplaceSeason(ctx, season, standings); err != nil {
		return err
	}
	r.cache.Delete(ctx, standingsPrefix+strconv.Itoa(season))
	return nil
}
