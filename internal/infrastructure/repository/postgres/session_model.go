package postgres

import (
	"database/sql"
	"time"
)

type sessionTableModel struct {
	Token     string         `db:"token"`
	UserID    string         `db:"user_id"`
	Role      string         `db:"role"`
	TeamID    sql.NullString `db:"team_id"`
	ExpiresAt time.Time      `db:"expires_at"`
}

type sessionInsertModel struct {
	Token     string    `db:"token"`
	UserID    string    `db:"user_id"`
	Role      string    `db:"role"`
	TeamID    *string   `db:"team_id"`
	ExpiresAt time.Time `db:"expires_at"`
}
