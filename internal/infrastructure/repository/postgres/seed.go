package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/matchpulse/season-compare/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the bundled demo seasons into an empty database so
// a fresh deployment can serve comparisons immediately. Databases that
// already hold fixtures are left untouched.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM fixtures WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count fixtures for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for season, fixtures := range memory.SeedFixtureSeasons() {
		for _, f := range fixtures {
			sqlQuery, args, err := sqlx.Named(`
INSERT INTO fixtures (ref_id, season, matchday, kickoff_at, status, home_team, away_team, home_team_ref_id, away_team_ref_id, home_score, away_score)
VALUES (:ref_id, :season, :matchday, :kickoff_at, :status, :home_team, :away_team, :home_team_ref_id, :away_team_ref_id, :home_score, :away_score)
ON CONFLICT (season, ref_id) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
				"ref_id":           f.RefID,
				"season":           f.Season,
				"matchday":         f.Matchday,
				"kickoff_at":       f.KickoffAt.UTC(),
				"status":           f.Status,
				"home_team":        f.HomeTeam,
				"away_team":        f.AwayTeam,
				"home_team_ref_id": f.HomeTeamRefID,
				"away_team_ref_id": f.AwayTeamRefID,
				"home_score":       f.HomeScore,
				"away_score":       f.AwayScore,
			})
			if err != nil {
				return fmt.Errorf("bind seed fixture %d query: %w", f.RefID, err)
			}
			sqlQuery = tx.Rebind(sqlQuery)
			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return fmt.Errorf("seed fixture %d season %d: %w", f.RefID, season, err)
			}
		}
	}

	for season, rows := range memory.SeedDivisionStandings() {
		for _, row := range rows {
			sqlQuery, args, err := sqlx.Named(`
INSERT INTO championship_standings (season, position, team_name, team_ref_id, points, goal_difference)
VALUES (:season, :position, :team_name, :team_ref_id, :points, :goal_difference)
ON CONFLICT (season, team_name) WHERE deleted_at IS NULL DO NOTHING`, map[string]any{
				"season":          row.Season,
				"position":        row.Position,
				"team_name":       row.TeamName,
				"team_ref_id":     row.TeamRefID,
				"points":          row.Points,
				"goal_difference": row.GoalDifference,
			})
			if err != nil {
				return fmt.Errorf("bind seed standing %s query: %w", row.TeamName, err)
			}
			sqlQuery = tx.Rebind(sqlQuery)
			if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
				return fmt.Errorf("seed standing %s season %d: %w", row.TeamName, season, err)
			}
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
