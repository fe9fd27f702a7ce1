package session

import (
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
)

// Session binds an opaque bearer token to the actor that logged in.
type Session struct {
	Token     string
	UserID    string
	Role      access.Role
	TeamID    string
	ExpiresAt time.Time
}

func (s Session) Expired(now time.Time) bool {
	return !now.Before(s.ExpiresAt)
}

func (s Session) Actor() access.Actor {
	return access.Actor{UserID: s.UserID, Role: access.ParseRole(string(s.Role)), TeamID: s.TeamID}
}
