package postgres

import (
	"database/sql"
	"time"
)

type fixtureTableModel struct {
	ID            int64         `db:"id"`
	RefID         int64         `db:"ref_id"`
	Season        int           `db:"season"`
	Matchday      int           `db:"matchday"`
	KickoffAt     time.Time     `db:"kickoff_at"`
	Status        string        `db:"status"`
	HomeTeam      string        `db:"home_team"`
	AwayTeam      string        `db:"away_team"`
	HomeTeamRefID sql.NullInt64 `db:"home_team_ref_id"`
	AwayTeamRefID sql.NullInt64 `db:"away_team_ref_id"`
	HomeScore     sql.NullInt64 `db:"home_score"`
	AwayScore     sql.NullInt64 `db:"away_score"`
	CreatedAt     time.Time     `db:"created_at"`
	UpdatedAt     time.Time     `db:"updated_at"`
	DeletedAt     *time.Time    `db:"deleted_at"`
}

type fixtureInsertModel struct {
	RefID         int64     `db:"ref_id"`
	Season        int       `db:"season"`
	Matchday      int       `db:"matchday"`
	KickoffAt     time.Time `db:"kickoff_at"`
	Status        string    `db:"status"`
	HomeTeam      string    `db:"home_team"`
	AwayTeam      string    `db:"away_team"`
	HomeTeamRefID int64     `db:"home_team_ref_id"`
	AwayTeamRefID int64     `db:"away_team_ref_id"`
	HomeScore     *int      `db:"home_score"`
	AwayScore     *int      `db:"away_score"`
}
