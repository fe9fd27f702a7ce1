package user

import (
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
)

// User is a portal account. Only the bcrypt hash of the password is kept.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	Role         access.Role
	TeamID       string
	CreatedAt    time.Time
}

func NormalizeUsername(value string) string {
	return strings.ToLower(strings.TrimSpace(value))
}

func (u User) Actor() access.Actor {
	return access.Actor{UserID: u.ID, Role: u.Role, TeamID: u.TeamID}
}

func (u User) Validate() error {
	if strings.TrimSpace(u.ID) == "" {
		return fmt.Errorf("user id is required")
	}
	if NormalizeUsername(u.Username) == "" {
		return fmt.Errorf("username is required")
	}
	if u.PasswordHash == "" {
		return fmt.Errorf("password hash is required")
	}
	if !access.IsAuthenticated(u.Role) {
		return fmt.Errorf("user role %q cannot sign in", u.Role)
	}

	return nil
}
