package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type suspensionTableModel struct {
	ID             string         `db:"id"`
	PlayerID       string         `db:"player_id"`
	TeamID         string         `db:"team_id"`
	Reason         string         `db:"reason"`
	Matches        int            `db:"matches"`
	ServedMatchIDs pq.StringArray `db:"served_match_ids"`
	SourceMatchID  sql.NullString `db:"source_match_id"`
	CreatedAt      time.Time      `db:"created_at"`
}

type suspensionInsertModel struct {
	ID             string         `db:"id"`
	PlayerID       string         `db:"player_id"`
	TeamID         string         `db:"team_id"`
	Reason         string         `db:"reason"`
	Matches        int            `db:"matches"`
	ServedMatchIDs pq.StringArray `db:"served_match_ids"`
	SourceMatchID  *string        `db:"source_match_id"`
	CreatedAt      time.Time      `db:"created_at"`
}
