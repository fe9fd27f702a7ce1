package match

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
)

type Competition string

const (
	CompetitionLeague  Competition = "league"
	CompetitionCup     Competition = "cup"
	CompetitionPlayoff Competition = "playoff"
)

func ParseCompetition(value string) (Competition, error) {
	switch c := Competition(strings.ToLower(strings.TrimSpace(value))); c {
	case CompetitionLeague, CompetitionCup, CompetitionPlayoff:
		return c, nil
	case "":
		return CompetitionLeague, nil
	default:
		return "", fmt.Errorf("unknown competition %q", value)
	}
}

// IsKnockout reports whether the competition is played as a bracket.
func (c Competition) IsKnockout() bool {
	return c == CompetitionCup || c == CompetitionPlayoff
}

type Status string

const (
	StatusScheduled Status = "scheduled"
	StatusPlayed    Status = "played"
	StatusCancelled Status = "cancelled"
)

func ParseStatus(value string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(value))); s {
	case StatusScheduled, StatusPlayed, StatusCancelled:
		return s, nil
	case "":
		return StatusScheduled, nil
	default:
		return "", fmt.Errorf("unknown match status %q", value)
	}
}

type EventType string

const (
	EventGoal       EventType = "goal"
	EventOwnGoal    EventType = "own_goal"
	EventYellowCard EventType = "yellow_card"
	EventRedCard    EventType = "red_card"
)

func (t EventType) Valid() bool {
	switch t {
	case EventGoal, EventOwnGoal, EventYellowCard, EventRedCard:
		return true
	default:
		return false
	}
}

// Event is something that happened during a played match. TeamID is the
// team the player belongs to, also for own goals.
type Event struct {
	Type     EventType
	PlayerID string
	TeamID   string
	Minute   int
}

// Match is one scheduled fixture between two teams.
type Match struct {
	ID               string
	Competition      Competition
	Round            int
	BracketSlot      int
	Date             string
	Time             string
	Location         string
	HomeTeamID       string
	AwayTeamID       string
	HomeScore        *int
	AwayScore        *int
	Status           Status
	IsManuallyLocked bool
	RefereeID        string
	HomeLineup       []string
	AwayLineup       []string
	Events           []Event
	LockedBy         string
	LockedAt         *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

func (m Match) Schedule() access.MatchSchedule {
	return access.MatchSchedule{
		Date:             m.Date,
		Time:             m.Time,
		IsManuallyLocked: m.IsManuallyLocked,
	}
}

func (m Match) Participants() access.MatchParticipants {
	return access.MatchParticipants{
		HomeTeamID: m.HomeTeamID,
		AwayTeamID: m.AwayTeamID,
	}
}

// Involves reports whether teamID plays in the match.
func (m Match) Involves(teamID string) bool {
	return teamID != "" && (m.HomeTeamID == teamID || m.AwayTeamID == teamID)
}

// Opponent returns the other side, or "" when teamID does not play.
func (m Match) Opponent(teamID string) string {
	switch teamID {
	case m.HomeTeamID:
		return m.AwayTeamID
	case m.AwayTeamID:
		return m.HomeTeamID
	default:
		return ""
	}
}

func (m Match) IsPlayed() bool {
	return m.Status == StatusPlayed && m.HomeScore != nil && m.AwayScore != nil
}

// WinnerTeamID is empty for draws and for matches without a result.
func (m Match) WinnerTeamID() string {
	if !m.IsPlayed() {
		return ""
	}
	switch {
	case *m.HomeScore > *m.AwayScore:
		return m.HomeTeamID
	case *m.AwayScore > *m.HomeScore:
		return m.AwayTeamID
	default:
		return ""
	}
}

// KickoffKey sorts matches chronologically as plain strings. Parseable
// kickoffs are zero-padded to seconds so "9:30" and "19:00:00" compare
// correctly; anything else falls back to the raw values.
func (m Match) KickoffKey() string {
	kickoff, err := access.ParseKickoff(m.Date, m.Time, time.UTC)
	if err != nil {
		return m.Date + " " + m.Time
	}
	return kickoff.Format(access.DateLayout + " 15:04:05")
}

func (m Match) Validate() error {
	if strings.TrimSpace(m.ID) == "" {
		return fmt.Errorf("match id is required")
	}
	if m.HomeTeamID == "" || m.AwayTeamID == "" {
		return fmt.Errorf("match home and away team are required")
	}
	if m.HomeTeamID == m.AwayTeamID {
		return fmt.Errorf("a team cannot play itself")
	}
	if _, err := ParseCompetition(string(m.Competition)); err != nil {
		return err
	}
	if _, err := ParseStatus(string(m.Status)); err != nil {
		return err
	}
	if _, err := access.ParseKickoff(m.Date, m.Time, time.UTC); err != nil {
		return fmt.Errorf("invalid kickoff: %w", err)
	}
	if m.Round < 0 || m.BracketSlot < 0 {
		return fmt.Errorf("round and bracket slot must be >= 0")
	}
	if (m.HomeScore != nil && *m.HomeScore < 0) || (m.AwayScore != nil && *m.AwayScore < 0) {
		return fmt.Errorf("scores must be >= 0")
	}
	if m.Status == StatusPlayed && (m.HomeScore == nil || m.AwayScore == nil) {
		return fmt.Errorf("played match requires both scores")
	}

	return nil
}

// GoalsFor counts the goals credited to teamID from the event list. Own
// goals count for the opponent.
func (m Match) GoalsFor(teamID string) int {
	total := 0
	for _, e := range m.Events {
		switch e.Type {
		case EventGoal:
			if e.TeamID == teamID {
				total++
			}
		case EventOwnGoal:
			if e.TeamID == m.Opponent(teamID) {
				total++
			}
		}
	}
	return total
}
