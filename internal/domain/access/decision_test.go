package access

import (
	"testing"
	"time"
)

func TestIsAutoLocked_Boundary(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	tests := []struct {
		name string
		now  time.Time
		want bool
	}{
		{name: "one second before window", now: time.Date(2025, 1, 1, 9, 54, 59, 0, loc), want: false},
		{name: "window opens", now: time.Date(2025, 1, 1, 9, 55, 0, 0, loc), want: true},
		{name: "kickoff", now: time.Date(2025, 1, 1, 10, 0, 0, 0, loc), want: true},
		{name: "after kickoff", now: time.Date(2025, 1, 1, 10, 5, 0, 0, loc), want: true},
		{name: "day before", now: time.Date(2024, 12, 31, 10, 0, 0, 0, loc), want: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := IsAutoLocked("2025-01-01", "10:00", tc.now); got != tc.want {
				t.Fatalf("IsAutoLocked at %s: got=%v want=%v", tc.now.Format(time.RFC3339), got, tc.want)
			}
		})
	}
}

func TestIsAutoLocked_Monotonic(t *testing.T) {
	now := time.Date(2025, 3, 8, 18, 0, 0, 0, time.UTC)
	locked := false
	for i := 0; i < 180; i++ {
		current := now.Add(time.Duration(i) * time.Minute)
		got := IsAutoLocked("2025-03-08", "19:30", current)
		if locked && !got {
			t.Fatalf("lock released at %s", current.Format(time.RFC3339))
		}
		locked = got
	}
	if !locked {
		t.Fatalf("expected match to be locked after kickoff")
	}
}

func TestIsAutoLocked_UsesLocationOfNow(t *testing.T) {
	brussels := time.FixedZone("CET", 3600)
	// 09:00 UTC is 10:00 in brussels, so the 10:00 local match is locked.
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC).In(brussels)
	if !IsAutoLocked("2025-01-01", "10:00", now) {
		t.Fatalf("expected wall-clock comparison in location of now")
	}
}

func TestIsAutoLocked_AcceptsSeconds(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	if IsAutoLocked("2025-01-01", "10:00:00", now) {
		t.Fatalf("expected HH:MM:SS kickoff an hour ahead to be open")
	}
}

func TestIsAutoLocked_MalformedFailsClosed(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC)
	for _, in := range [][2]string{{"2025-13-01", "10:00"}, {"01/01/2025", "10:00"}, {"2025-01-01", "25:00"}, {"", ""}} {
		if !IsAutoLocked(in[0], in[1], now) {
			t.Fatalf("expected malformed input %q %q to report locked", in[0], in[1])
		}
	}
}

func TestIsAutoLockedWithLead(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 45, 0, 0, time.UTC)
	if !IsAutoLockedWithLead("2025-01-01", "10:00", now, 15*time.Minute) {
		t.Fatalf("expected 15 minute lead to lock at 09:45")
	}
	if IsAutoLockedWithLead("2025-01-01", "10:00", now, 10*time.Minute) {
		t.Fatalf("expected 10 minute lead to stay open at 09:45")
	}
}

func TestCanEditAsRoleOnly(t *testing.T) {
	tests := []struct {
		role   Role
		manual bool
		auto   bool
		want   bool
	}{
		{RoleAdmin, true, true, true},
		{RoleAdmin, false, false, true},
		{RoleReferee, true, true, true},
		{RoleReferee, false, true, true},
		{RolePlayerManager, false, false, true},
		{RolePlayerManager, true, false, false},
		{RolePlayerManager, false, true, false},
		{RolePlayerManager, true, true, false},
		{RoleAnonymous, false, false, false},
		{Role("superuser"), false, false, false},
		{Role(""), false, false, false},
	}

	for _, tc := range tests {
		if got := CanEditAsRoleOnly(tc.role, tc.manual, tc.auto); got != tc.want {
			t.Fatalf("CanEditAsRoleOnly(%q, %v, %v): got=%v want=%v", tc.role, tc.manual, tc.auto, got, tc.want)
		}
	}
}

func TestParseRole_FailsClosed(t *testing.T) {
	tests := map[string]Role{
		"admin":          RoleAdmin,
		" Referee ":      RoleReferee,
		"player_manager": RolePlayerManager,
		"anonymous":      RoleAnonymous,
		"":               RoleAnonymous,
		"root":           RoleAnonymous,
		"team_manager":   RoleAnonymous,
	}
	for in, want := range tests {
		if got := ParseRole(in); got != want {
			t.Fatalf("ParseRole(%q): got=%q want=%q", in, got, want)
		}
	}
}

func TestCanTeamManagerEdit(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	future := [2]string{"2025-02-03", "20:00"}
	past := [2]string{"2025-01-25", "20:00"}

	if !CanTeamManagerEdit(false, future[0], future[1], "5", "9", "5", now) {
		t.Fatalf("expected home team manager to edit future match")
	}
	if !CanTeamManagerEdit(false, future[0], future[1], "5", "9", "9", now) {
		t.Fatalf("expected away team manager to edit future match")
	}
	if CanTeamManagerEdit(false, future[0], future[1], "5", "9", "7", now) {
		t.Fatalf("expected foreign team manager to be refused")
	}
	if CanTeamManagerEdit(false, past[0], past[1], "5", "9", "5", now) {
		t.Fatalf("expected auto-locked match to be refused")
	}
	if CanTeamManagerEdit(true, future[0], future[1], "5", "9", "5", now) {
		t.Fatalf("expected manually locked match to be refused")
	}
	if CanTeamManagerEdit(false, future[0], future[1], "5", "9", "", now) {
		t.Fatalf("expected manager without team to be refused")
	}
}

func TestDecide_Invariants(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	schedules := []MatchSchedule{
		{Date: "2025-02-03", Time: "20:00"},
		{Date: "2025-02-03", Time: "20:00", IsManuallyLocked: true},
		{Date: "2025-01-25", Time: "20:00"},
		{Date: "2025-01-25", Time: "20:00", IsManuallyLocked: true},
	}
	participants := MatchParticipants{HomeTeamID: "5", AwayTeamID: "9"}
	actors := []Actor{
		{Role: RoleAdmin},
		{Role: RoleReferee},
		{Role: RolePlayerManager, TeamID: "5"},
		{Role: RolePlayerManager, TeamID: "7"},
		{Role: RolePlayerManager},
		{Role: RoleAnonymous},
		{Role: Role("hacker"), TeamID: "5"},
	}

	for _, schedule := range schedules {
		for _, actor := range actors {
			got := Decide(schedule, participants, actor, now)
			if got.IsAutoLocked != IsAutoLocked(schedule.Date, schedule.Time, now) {
				t.Fatalf("decision auto-lock disagrees with evaluator for %+v", schedule)
			}
			if !IsAuthenticated(actor.Role) && got.CanEdit {
				t.Fatalf("unauthenticated actor %+v may edit %+v", actor, schedule)
			}
			if schedule.IsManuallyLocked && got.CanEdit && !CanOfficiate(actor.Role) {
				t.Fatalf("manual lock bypassed by %+v", actor)
			}
			if CanOfficiate(actor.Role) && !got.CanEdit {
				t.Fatalf("officiating actor %+v refused on %+v", actor, schedule)
			}
			again := Decide(schedule, participants, actor, now)
			if again != got {
				t.Fatalf("decision not idempotent: %+v vs %+v", got, again)
			}
		}
	}
}

func TestDecide_TeamManager(t *testing.T) {
	now := time.Date(2025, 2, 1, 12, 0, 0, 0, time.UTC)
	schedule := MatchSchedule{Date: "2025-02-03", Time: "20:00"}
	participants := MatchParticipants{HomeTeamID: "5", AwayTeamID: "9"}

	got := Decide(schedule, participants, Actor{Role: RolePlayerManager, TeamID: "5"}, now)
	if !got.CanEdit || got.IsAutoLocked {
		t.Fatalf("unexpected decision: %+v", got)
	}

	got = Decide(schedule, participants, Actor{Role: RolePlayerManager, TeamID: "7"}, now)
	if got.CanEdit {
		t.Fatalf("expected foreign team manager to be refused: %+v", got)
	}
}

func TestEvaluator_CustomLead(t *testing.T) {
	now := time.Date(2025, 1, 1, 9, 30, 0, 0, time.UTC)
	schedule := MatchSchedule{Date: "2025-01-01", Time: "10:00"}
	participants := MatchParticipants{HomeTeamID: "a", AwayTeamID: "b"}
	manager := Actor{Role: RolePlayerManager, TeamID: "a"}

	if !Decide(schedule, participants, manager, now).CanEdit {
		t.Fatalf("expected default lead to leave match open")
	}
	if NewEvaluator(time.Hour).Decide(schedule, participants, manager, now).CanEdit {
		t.Fatalf("expected one hour lead to lock match")
	}
}

func TestRouteGating(t *testing.T) {
	if !CanManageCompetition(RoleAdmin) || CanManageCompetition(RoleReferee) {
		t.Fatalf("unexpected competition gating")
	}
	if !CanOfficiate(RoleReferee) || CanOfficiate(RolePlayerManager) {
		t.Fatalf("unexpected officiating gating")
	}
	if !CanManageTeam(Actor{Role: RolePlayerManager, TeamID: "t1"}) {
		t.Fatalf("expected manager with team to manage team")
	}
	if CanManageTeam(Actor{Role: RolePlayerManager}) {
		t.Fatalf("expected manager without team to be refused")
	}
	if CanManageTeam(Actor{Role: RoleReferee, TeamID: "t1"}) {
		t.Fatalf("expected referee to be refused team management")
	}
}

func TestNewEvaluator_Lead(t *testing.T) {
	if got := DefaultEvaluator().Lead(); got != LockLead {
		t.Fatalf("expected default lead %v, got %v", LockLead, got)
	}
	if got := NewEvaluator(10 * time.Minute).Lead(); got != 10*time.Minute {
		t.Fatalf("unexpected lead %v", got)
	}
	if got := NewEvaluator(-time.Minute).Lead(); got != 0 {
		t.Fatalf("expected negative lead to clamp to 0, got %v", got)
	}
}
