package memory

import (
	"context"
	"sync"

	"github.com/matchpulse/season-compare/internal/domain/mapping"
)

type StandingsRepository struct {
	mu       sync.RWMutex
	bySeason map[int][]mapping.DivisionStanding
}

func NewStandingsRepository(seasons map[int][]mapping.DivisionStanding) *StandingsRepository {
	bySeason := make(map[int][]mapping.DivisionStanding, len(seasons))
	for season, standings := range seasons {
		bySeason[season] = append([]mapping.DivisionStanding(nil), standings...)
	}

	return &StandingsRepository{bySeason: bySeason}
}

func (r *StandingsRepository) ListBySeason(_ context.Context, season int) ([]mapping.DivisionStanding, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	items := r.bySeason[season]
	out := make([]mapping.DivisionStanding, 0, len(items))
	out = append(out, items...)
	return out, nil
}

func (r *StandingsRepository) ReplaceSeason(_ context.Context, season int, standings []mapping.DivisionStanding) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.bySeason[season] = append([]mapping.DivisionStanding(nil), standings...)
	return nil
}
