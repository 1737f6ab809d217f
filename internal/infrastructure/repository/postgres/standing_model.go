package postgres

import (
	"database/sql"
	"time"
)

type divisionStandingTableModel struct {
	ID             int64         `db:"id"`
	Season         int           `db:"season"`
	Position       int           `db:"position"`
	TeamName       string        `db:"team_name"`
	TeamRefID      sql.NullInt64 `db:"team_ref_id"`
	Points         int           `db:"points"`
	GoalDifference int           `db:"goal_difference"`
	CreatedAt      time.Time     `db:"created_at"`
	UpdatedAt      time.Time     `db:"updated_at"`
	DeletedAt      *time.Time    `db:"deleted_at"`
}

type divisionStandingInsertModel struct {
	Season         int    `db:"season"`
	Position       int    `db:"position"`
	TeamName       string `db:"team_name"`
	TeamRefID      int64  `db:"team_ref_id"`
	Points         int    `db:"points"`
	GoalDifference int    `db:"goal_difference"`
}
