package postgres

import (
	"database/sql"
	"time"

	"github.com/lib/pq"
)

type matchTableModel struct {
	ID               string         `db:"id"`
	Competition      string         `db:"competition"`
	Round            int            `db:"round"`
	BracketSlot      int            `db:"bracket_slot"`
	MatchDate        string         `db:"match_date"`
	KickoffTime      string         `db:"kickoff_time"`
	Location         string         `db:"location"`
	HomeTeamID       string         `db:"home_team_id"`
	AwayTeamID       string         `db:"away_team_id"`
	HomeScore        sql.NullInt64  `db:"home_score"`
	AwayScore        sql.NullInt64  `db:"away_score"`
	Status           string         `db:"status"`
	IsManuallyLocked bool           `db:"is_manually_locked"`
	RefereeID        string         `db:"referee_id"`
	HomeLineup       pq.StringArray `db:"home_lineup"`
	AwayLineup       pq.StringArray `db:"away_lineup"`
	Events           string         `db:"events"`
	LockedBy         sql.NullString `db:"locked_by"`
	LockedAt         *time.Time     `db:"locked_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
	DeletedAt        *time.Time     `db:"deleted_at"`
}

type matchInsertModel struct {
	ID               string         `db:"id"`
	Competition      string         `db:"competition"`
	Round            int            `db:"round"`
	BracketSlot      int            `db:"bracket_slot"`
	MatchDate        string         `db:"match_date"`
	KickoffTime      string         `db:"kickoff_time"`
	Location         string         `db:"location"`
	HomeTeamID       string         `db:"home_team_id"`
	AwayTeamID       string         `db:"away_team_id"`
	HomeScore        *int           `db:"home_score"`
	AwayScore        *int           `db:"away_score"`
	Status           string         `db:"status"`
	IsManuallyLocked bool           `db:"is_manually_locked"`
	RefereeID        string         `db:"referee_id"`
	HomeLineup       pq.StringArray `db:"home_lineup"`
	AwayLineup       pq.StringArray `db:"away_lineup"`
	Events           string         `db:"events"`
	LockedBy         *string        `db:"locked_by"`
	LockedAt         *time.Time     `db:"locked_at"`
	CreatedAt        time.Time      `db:"created_at"`
	UpdatedAt        time.Time      `db:"updated_at"`
}

// matchEventRecord is the jsonb shape of one entry in matches.events.
type matchEventRecord struct {
	Type     string `json:"type"`
	PlayerID string `json:"player_id"`
	TeamID   string `json:"team_id"`
	Minute   int    `json:"minute"`
}
