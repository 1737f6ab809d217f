package footballdata

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
	"github.com/matchpulse/season-compare/internal/platform/logging"
)

// FixtureStore is the local store a FixtureSource hydrates and serves from.
type FixtureStore interface {
	fixture.Source
	fixture.Writer
}

// StandingsStore is the local store a StandingsSource hydrates and serves from.
type StandingsStore interface {
	mapping.StandingsSource
	mapping.StandingsWriter
}

// FixtureSource serves fixtures from a local store and fills it from the
// remote API the first time a season is requested. Hydrated seasons are
// validated before they are written, so a half-fetched season never
// reaches the store.
type FixtureSource struct {
	client *Client
	store  FixtureStore
	logger *logging.Logger
}

func NewFixtureSource(client *Client, store FixtureStore, logger *logging.Logger) *FixtureSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &FixtureSource{client: client, store: store, logger: logger}
}

func (s *FixtureSource) ListBySeason(ctx context.Context, season int) ([]fixture.Fixture, error) {
	items, err := s.store.ListBySeason(ctx, season)
	if err == nil {
		return items, nil
	}
	if !stderrors.Is(err, fixture.ErrDataUnavailable) {
		return nil, err
	}

	s.logger.InfoContext(ctx, "season not cached, fetching from provider", "season", season)
	fetched, err := s.client.SeasonFixtures(ctx, season)
	if err != nil {
		return nil, fmt.Errorf("hydrate season %s fixtures: %w", fixture.SeasonLabel(season), err)
	}
	if err := fixture.ValidateSeason(season, fetched); err != nil {
		return nil, err
	}
	if err := s.store.ReplaceSeason(ctx, season, fetched); err != nil {
		return nil, fmt.Errorf("cache season %s fixtures: %w", fixture.SeasonLabel(season), err)
	}
	return s.store.ListBySeason(ctx, season)
}

// Seasons lists only seasons already hydrated; the remote API is never
// asked to enumerate.
func (s *FixtureSource) Seasons(ctx context.Context) ([]int, error) {
	return s.store.Seasons(ctx)
}

// StandingsSource serves second-tier tables from a local store, filling it
// from the remote API on first request. The feed stays best effort: a
// failed fetch degrades to no rows, and absence means unranked rather
// than broken.
type StandingsSource struct {
	client *Client
	store  StandingsStore
	logger *logging.Logger
}

func NewStandingsSource(client *Client, store StandingsStore, logger *logging.Logger) *StandingsSource {
	if logger == nil {
		logger = logging.Default()
	}
	return &StandingsSource{client: client, store: store, logger: logger}
}

func (s *StandingsSource) ListBySeason(ctx context.Context, season int) ([]mapping.DivisionStanding, error) {
	rows, err := s.store.ListBySeason(ctx, season)
	if err != nil {
		return nil, err
	}
	if len(rows) > 0 {
		return rows, nil
	}

	fetched, err := s.client.SecondaryStandings(ctx, season)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.logger.WarnContext(ctx, "second-tier standings fetch failed, season stays unranked",
			"season", season, "error", err)
		return nil, nil
	}
	if len(fetched) == 0 {
		return nil, nil
	}
	if err := s.store.ReplaceSeason(ctx, season, fetched); err != nil {
		return nil, fmt.Errorf("cache season %d standings: %w", season, err)
	}
	return fetched, nil
}
