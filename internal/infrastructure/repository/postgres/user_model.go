package postgres

import (
	"database/sql"
	"time"
)

type userTableModel struct {
	ID           string         `db:"id"`
	Username     string         `db:"username"`
	PasswordHash string         `db:"password_hash"`
	Role         string         `db:"role"`
	TeamID       sql.NullString `db:"team_id"`
	CreatedAt    time.Time      `db:"created_at"`
}

type userInsertModel struct {
	ID           string    `db:"id"`
	Username     string    `db:"username"`
	PasswordHash string    `db:"password_hash"`
	Role         string    `db:"role"`
	TeamID       *string   `db:"team_id"`
	CreatedAt    time.Time `db:"created_at"`
}
