package player

import (
	"fmt"
	"strings"
)

// Player is a registered member of one team.
type Player struct {
	ID           string
	TeamID       string
	FirstName    string
	LastName     string
	JerseyNumber int
	IsActive     bool
}

func (p Player) FullName() string {
	return strings.TrimSpace(p.FirstName + " " + p.LastName)
}

func (p Player) Validate() error {
	if strings.TrimSpace(p.ID) == "" {
		return fmt.Errorf("player id is required")
	}
	if strings.TrimSpace(p.TeamID) == "" {
		return fmt.Errorf("player team id is required")
	}
	if strings.TrimSpace(p.FirstName) == "" && strings.TrimSpace(p.LastName) == "" {
		return fmt.Errorf("player name is required")
	}
	if p.JerseyNumber < 0 || p.JerseyNumber > 99 {
		return fmt.Errorf("jersey number must be between 0 and 99")
	}

	return nil
}
