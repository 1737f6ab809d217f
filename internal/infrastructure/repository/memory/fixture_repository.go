package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
)

type FixtureRepository struct {
	mu       sync.RWMutex
	bySeason map[int][]fixture.Fixture
}

func NewFixtureRepository(seasons map[int][]fixture.Fixture) *FixtureRepository {
	bySeason := make(map[int][]fixture.Fixture, len(seasons))
	for season, fixtures := range seasons {
		bySeason[season] = append([]fixture.Fixture(nil), fixtures...)
	}

	return &FixtureRepository{bySeason: bySeason}
}

func (r *FixtureRepository) ListBySeason(_ context.Context, season int) ([]fixture.Fixture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySeason[season]
	out := make([]fixture.Fixture, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *FixtureRepository) Seasons(_ context.Context) ([]int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	seasons := make([]int, 0, len(r.bySeason))
	for season := range r.bySeason {
		seasons = append(seasons, season)
	}
	sort.Ints(seasons)
	return seasons, nil
}

func (r *FixtureRepository) ReplaceSeason(_ context.Context, season int, fixtures []fixture.Fixture) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySeason[season] = append([]fixture.Fixture(nil), fixtures...)
	return nil
}
