package team

import (
	"fmt"
	"strings"
	"time"
)

// Team is a club registered in the competition.
type Team struct {
	ID           string
	Name         string
	ShortName    string
	CaptainName  string
	ContactEmail string
	CreatedAt    time.Time
}

func (t Team) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("team id is required")
	}
	if strings.TrimSpace(t.Name) == "" {
		return fmt.Errorf("team name is required")
	}
	if len(t.ShortName) > 5 {
		return fmt.Errorf("team short name must be at most 5 characters")
	}

	return nil
}
