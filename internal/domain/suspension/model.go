package suspension

import (
	"fmt"
	"slices"
	"strings"
	"time"
)

// RedCardMatches is the ban length recorded for a red card.
const RedCardMatches = 1

// Suspension bars a player from a number of their team's matches.
type Suspension struct {
	ID             string
	PlayerID       string
	TeamID         string
	Reason         string
	Matches        int
	ServedMatchIDs []string
	SourceMatchID  string
	CreatedAt      time.Time
}

func (s Suspension) Remaining() int {
	remaining := s.Matches - len(s.ServedMatchIDs)
	if remaining < 0 {
		return 0
	}
	return remaining
}

func (s Suspension) Active() bool {
	return s.Remaining() > 0
}

func (s Suspension) HasServed(matchID string) bool {
	return slices.Contains(s.ServedMatchIDs, matchID)
}

// Serve records matchID as served. It returns false when nothing changed:
// the suspension is already over, the match was already counted, or the
// match is the one the suspension came from.
func (s *Suspension) Serve(matchID string) bool {
	if matchID == "" || !s.Active() || matchID == s.SourceMatchID || s.HasServed(matchID) {
		return false
	}
	s.ServedMatchIDs = append(s.ServedMatchIDs, matchID)
	return true
}

func (s Suspension) Validate() error {
	if strings.TrimSpace(s.ID) == "" {
		return fmt.Errorf("suspension id is required")
	}
	if strings.TrimSpace(s.PlayerID) == "" || strings.TrimSpace(s.TeamID) == "" {
		return fmt.Errorf("suspension player and team are required")
	}
	if s.Matches <= 0 {
		return fmt.Errorf("suspension matches must be > 0")
	}

	return nil
}
