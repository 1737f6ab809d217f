package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/season-compare/internal/domain/fixture"
	qb "github.com/matchpulse/season-compare/internal/platform/querybuilder"
)

type FixtureRepository struct {
	db *sqlx.DB
}

func NewFixtureRepository(db *sqlx.DB) *FixtureRepository {
	return &FixtureRepository{db: db}
}

func (r *FixtureRepository) ListBySeason(ctx context.Context, season int) ([]fixture.Fixture, error) {
	query, args, err := qb.Select("*").From("fixtures").
		Where(
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("matchday", "kickoff_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select season fixtures query: %w", err)
	}

	var rows []fixtureTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select season fixtures: %w", err)
	}

	out := make([]fixture.Fixture, 0, len(rows))
	for _, row := range rows {
		out = append(out, fixture.Fixture{
			RefID:         row.RefID,
			Season:        row.Season,
			Matchday:      row.Matchday,
			KickoffAt:     row.KickoffAt,
			Status:        row.Status,
			HomeTeam:      row.HomeTeam,
			AwayTeam:      row.AwayTeam,
			HomeTeamRefID: nullInt64ToInt64(row.HomeTeamRefID),
			AwayTeamRefID: nullInt64ToInt64(row.AwayTeamRefID),
			HomeScore:     nullInt64ToIntPtr(row.HomeScore),
			AwayScore:     nullInt64ToIntPtr(row.AwayScore),
		})
	}

	return out, nil
}

func (r *FixtureRepository) Seasons(ctx context.Context) ([]int, error) {
	query, args, err := qb.Select("DISTINCT season").From("fixtures").
		Where(qb.IsNull("deleted_at")).
		OrderBy("season").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select seasons query: %w", err)
	}

	var seasons []int
	if err := r.db.SelectContext(ctx, &seasons, query, args...); err != nil {
		return nil, fmt.Errorf("select seasons: %w", err)
	}

	return seasons, nil
}

func (r *FixtureRepository) ReplaceSeason(ctx context.Context, season int, fixtures []fixture.Fixture) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace season fixtures: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("fixtures").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear season fixtures query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear season fixtures: %w", err)
	}

	for _, item := range fixtures {
		insertModel := fixtureInsertModel{
			RefID:         item.RefID,
			Season:        item.Season,
			Matchday:      item.Matchday,
			KickoffAt:     item.KickoffAt,
			Status:        item.Status,
			HomeTeam:      item.HomeTeam,
			AwayTeam:      item.AwayTeam,
			HomeTeamRefID: item.HomeTeamRefID,
			AwayTeamRefID: item.AwayTeamRefID,
			HomeScore:     item.HomeScore,
			AwayScore:     item.AwayScore,
		}
		query, args, err := qb.InsertModel("fixtures", insertModel, `ON CONFLICT (season, ref_id) WHERE deleted_at IS NULL
DO UPDATE SET
    matchday = EXCLUDED.matchday,
    kickoff_at = EXCLUDED.kickoff_at,
    status = EXCLUDED.status,
    home_team = EXCLUDED.home_team,
    away_team = EXCLUDED.away_team,
    home_team_ref_id = EXCLUDED.home_team_ref_id,
    away_team_ref_id = EXCLUDED.away_team_ref_id,
    home_score = EXCLUDED.home_score,
    away_score = EXCLUDED.away_score,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert fixture query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert fixture ref=%d season=%d: %w", item.RefID, season, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace season fixtures tx: %w", err)
	}
	return nil
}
