package access

import (
	"strings"
	"time"
)

// MatchSchedule is the part of a match the lock model reads.
type MatchSchedule struct {
	Date             string
	Time             string
	IsManuallyLocked bool
}

type MatchParticipants struct {
	HomeTeamID string
	AwayTeamID string
}

// EditDecision is recomputed on every evaluation and never stored.
type EditDecision struct {
	CanEdit      bool
	IsAutoLocked bool
}

// CanEditAsRoleOnly applies the role rules without team ownership:
// admins and referees always edit, team managers only while the match is
// neither manually nor automatically locked, everybody else never.
func CanEditAsRoleOnly(role Role, isManuallyLocked, autoLocked bool) bool {
	switch role {
	case RoleAdmin, RoleReferee:
		return true
	case RolePlayerManager:
		return !isManuallyLocked && !autoLocked
	default:
		return false
	}
}

// OwnsMatch reports whether actorTeamID plays in the match. An empty
// actor team never owns a match.
func OwnsMatch(homeTeamID, awayTeamID, actorTeamID string) bool {
	actorTeamID = strings.TrimSpace(actorTeamID)
	if actorTeamID == "" {
		return false
	}
	return actorTeamID == strings.TrimSpace(homeTeamID) || actorTeamID == strings.TrimSpace(awayTeamID)
}

// CanTeamManagerEdit reports whether a player manager may edit a match of
// their own team that is neither manually nor automatically locked.
func CanTeamManagerEdit(
	isManuallyLocked bool,
	date, clock string,
	homeTeamID, awayTeamID, actorTeamID string,
	now time.Time,
) bool {
	if !OwnsMatch(homeTeamID, awayTeamID, actorTeamID) {
		return false
	}
	return CanEditAsRoleOnly(RolePlayerManager, isManuallyLocked, IsAutoLocked(date, clock, now))
}

// Evaluator computes edit decisions with a fixed lock lead.
type Evaluator struct {
	lead time.Duration
}

func NewEvaluator(lead time.Duration) Evaluator {
	if lead < 0 {
		lead = 0
	}
	return Evaluator{lead: lead}
}

func DefaultEvaluator() Evaluator {
	return Evaluator{lead: LockLead}
}

func (e Evaluator) Lead() time.Duration {
	return e.lead
}

// Decide combines the lock window, role and ownership rules. now must be
// sampled once by the caller for a whole evaluation pass.
func (e Evaluator) Decide(schedule MatchSchedule, participants MatchParticipants, actor Actor, now time.Time) EditDecision {
	autoLocked := IsAutoLockedWithLead(schedule.Date, schedule.Time, now, e.lead)
	decision := EditDecision{IsAutoLocked: autoLocked}

	role := actor.Role
	if !role.Valid() {
		role = RoleAnonymous
	}

	switch role {
	case RoleAdmin, RoleReferee:
		decision.CanEdit = CanEditAsRoleOnly(role, schedule.IsManuallyLocked, autoLocked)
	case RolePlayerManager:
		decision.CanEdit = OwnsMatch(participants.HomeTeamID, participants.AwayTeamID, actor.TeamID) &&
			CanEditAsRoleOnly(role, schedule.IsManuallyLocked, autoLocked)
	}

	return decision
}

// Decide evaluates with the default five minute lead.
func Decide(schedule MatchSchedule, participants MatchParticipants, actor Actor, now time.Time) EditDecision {
	return DefaultEvaluator().Decide(schedule, participants, actor, now)
}
