package access

import "strings"

// Role is the closed set of portal roles. Any value outside the set is
// handled as RoleAnonymous.
type Role string

const (
	RoleAdmin         Role = "admin"
	RoleReferee       Role = "referee"
	RolePlayerManager Role = "player_manager"
	RoleAnonymous     Role = "anonymous"
)

// ParseRole maps a stored or transported role string onto Role.
// Unknown values fail closed to RoleAnonymous.
func ParseRole(value string) Role {
	switch Role(strings.ToLower(strings.TrimSpace(value))) {
	case RoleAdmin:
		return RoleAdmin
	case RoleReferee:
		return RoleReferee
	case RolePlayerManager:
		return RolePlayerManager
	default:
		return RoleAnonymous
	}
}

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleReferee, RolePlayerManager, RoleAnonymous:
		return true
	default:
		return false
	}
}

func (r Role) String() string {
	return string(r)
}

// Actor is the current session's role and optional team affiliation.
type Actor struct {
	UserID string
	Role   Role
	TeamID string
}

func Anonymous() Actor {
	return Actor{Role: RoleAnonymous}
}

func IsAuthenticated(role Role) bool {
	switch role {
	case RoleAdmin, RoleReferee, RolePlayerManager:
		return true
	default:
		return false
	}
}

// CanManageCompetition gates the administration views.
func CanManageCompetition(role Role) bool {
	return role == RoleAdmin
}

// CanOfficiate gates result entry and manual locking.
func CanOfficiate(role Role) bool {
	return role == RoleAdmin || role == RoleReferee
}

// CanManageTeam gates the team manager views. A manager without a team
// assignment is refused.
func CanManageTeam(actor Actor) bool {
	switch actor.Role {
	case RoleAdmin:
		return true
	case RolePlayerManager:
		return strings.TrimSpace(actor.TeamID) != ""
	default:
		return false
	}
}
