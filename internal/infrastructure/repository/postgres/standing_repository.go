package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/season-compare/internal/domain/mapping"
	qb "github.com/matchpulse/season-compare/internal/platform/querybuilder"
)

type StandingRepository struct {
	db *sqlx.DB
}

func NewStandingRepository(db *sqlx.DB) *StandingRepository {
	return &StandingRepository{db: db}
}

func (r *StandingRepository) ListBySeason(ctx context.Context, season int) ([]mapping.DivisionStanding, error) {
	query, args, err := qb.Select("*").From("championship_standings").
		Where(
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		OrderBy("position", "points DESC", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select division standings query: %w", err)
	}

	var rows []divisionStandingTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select division standings: %w", err)
	}

	out := make([]mapping.DivisionStanding, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapping.DivisionStanding{
			Position:       row.Position,
			TeamName:       row.TeamName,
			TeamRefID:      nullInt64ToInt64(row.TeamRefID),
			Points:         row.Points,
			GoalDifference: row.GoalDifference,
			Season:         row.Season,
		})
	}

	return out, nil
}

func (r *StandingRepository) ReplaceSeason(ctx context.Context, season int, standings []mapping.DivisionStanding) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx replace division standings: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	clearQuery, clearArgs, err := qb.Update("championship_standings").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("season", season),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build clear division standings query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, clearQuery, clearArgs...); err != nil {
		return fmt.Errorf("clear division standings: %w", err)
	}

	for _, item := range standings {
		insertModel := divisionStandingInsertModel{
			Season:         season,
			Position:       item.Position,
			TeamName:       item.TeamName,
			TeamRefID:      item.TeamRefID,
			Points:         item.Points,
			GoalDifference: item.GoalDifference,
		}
		query, args, err := qb.InsertModel("championship_standings", insertModel, `ON CONFLICT (season, team_name) WHERE deleted_at IS NULL
DO UPDATE SET
    position = EXCLUDED.position,
    team_ref_id = EXCLUDED.team_ref_id,
    points = EXCLUDED.points,
    goal_difference = EXCLUDED.goal_difference,
    updated_at = NOW(),
    deleted_at = NULL`)
		if err != nil {
			return fmt.Errorf("build upsert division standing query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert division standing team=%s season=%d: %w", item.TeamName, season, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace division standings tx: %w", err)
	}
	return nil
}
