package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/suspension"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
)

// cet keeps tests independent of the host tz database.
var cet = time.FixedZone("CET", 3600)

const scheduledMatchID = "match-3" // De Zwaluwen - VK Bierpomp, 2026-11-13 20:00

type matchFixture struct {
	service     *MatchService
	matchRepo   *memory.MatchRepository
	suspRepo    *memory.SuspensionRepository
	suspensions *SuspensionService
}

func newMatchFixture(t *testing.T, clk clock.Clock) matchFixture {
	t.Helper()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	playerRepo := memory.NewPlayerRepository(memory.SeedPlayers())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	suspRepo := memory.NewSuspensionRepository(nil)

	suspensions := NewSuspensionService(suspRepo, playerRepo, matchRepo, clk, id.NewSequence("susp-"), 2, logging.NewNop())
	service := NewMatchService(
		matchRepo,
		teamRepo,
		playerRepo,
		suspensions,
		access.DefaultEvaluator(),
		clk,
		id.NewSequence("m-"),
		logging.NewNop(),
	)

	return matchFixture{service: service, matchRepo: matchRepo, suspRepo: suspRepo, suspensions: suspensions}
}

func at(clockValue string) clock.Fixed {
	now, err := time.ParseInLocation("2006-01-02 15:04:05", clockValue, cet)
	if err != nil {
		panic(err)
	}
	return clock.Fixed{At: now}
}

func manager(teamID string) access.Actor {
	return access.Actor{UserID: "u-" + teamID, Role: access.RolePlayerManager, TeamID: teamID}
}

var referee = access.Actor{UserID: "u-ref", Role: access.RoleReferee}

func TestMatchService_List_SamplesClockOnce(t *testing.T) {
	t.Parallel()

	calls := 0
	clk := clock.Func(func() time.Time {
		calls++
		return time.Date(2026, 11, 13, 19, 50, 0, 0, cet)
	})
	f := newMatchFixture(t, clk)
	calls = 0

	views, err := f.service.List(context.Background(), match.Filter{}, manager(memory.TeamIDZwaluwen))
	if err != nil {
		t.Fatalf("list matches: %v", err)
	}
	if calls != 1 {
		t.Fatalf("expected one clock sample for the whole list, got %d", calls)
	}
	if len(views) != len(memory.SeedMatches()) {
		t.Fatalf("unexpected match count: %d", len(views))
	}

	for _, v := range views {
		switch v.Match.ID {
		case scheduledMatchID:
			if !v.Decision.CanEdit || v.Decision.IsAutoLocked {
				t.Fatalf("expected own upcoming match to be editable, got %+v", v.Decision)
			}
		case "match-1":
			if v.Decision.CanEdit || !v.Decision.IsAutoLocked {
				t.Fatalf("expected past match to be locked, got %+v", v.Decision)
			}
		case "match-4":
			if v.Decision.CanEdit {
				t.Fatalf("manager must not edit a match of other teams")
			}
		}
	}
}

func TestMatchService_SubmitLineup_ManagerBeforeLock(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, at("2026-11-13 19:54:59"))
	got, err := f.service.SubmitLineup(context.Background(), SubmitLineupInput{
		MatchID:   scheduledMatchID,
		PlayerIDs: []string{"team-zwaluwen-p1", " team-zwaluwen-p2 ", "team-zwaluwen-p5"},
	}, manager(memory.TeamIDZwaluwen))
	if err != nil {
		t.Fatalf("submit lineup: %v", err)
	}
	if len(got.HomeLineup) != 3 || got.HomeLineup[1] != "team-zwaluwen-p2" {
		t.Fatalf("unexpected home lineup: %v", got.HomeLineup)
	}

	stored, _, _ := f.matchRepo.GetByID(context.Background(), scheduledMatchID)
	if len(stored.HomeLineup) != 3 || len(stored.AwayLineup) != 0 {
		t.Fatalf("lineup not persisted on the home side: %+v", stored)
	}
}

func TestMatchService_SubmitLineup_AutoLocked(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, at("2026-11-13 19:55:00"))
	_, err := f.service.SubmitLineup(context.Background(), SubmitLineupInput{
		MatchID:   scheduledMatchID,
		PlayerIDs: []string{"team-zwaluwen-p1"},
	}, manager(memory.TeamIDZwaluwen))
	if !errors.Is(err, ErrForbidden) || !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("expected ErrForbidden and ErrMatchLocked, got %v", err)
	}
}

func TestMatchService_SubmitLineup_ManualLockStopsManagersOnly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newMatchFixture(t, at("2026-11-13 12:00:00"))
	locked, err := f.service.SetLock(ctx, scheduledMatchID, true, referee)
	if err != nil {
		t.Fatalf("lock match: %v", err)
	}
	if !locked.IsManuallyLocked || locked.LockedBy != referee.UserID || locked.LockedAt == nil {
		t.Fatalf("unexpected lock state: %+v", locked)
	}

	_, err = f.service.SubmitLineup(ctx, SubmitLineupInput{
		MatchID:   scheduledMatchID,
		PlayerIDs: []string{"team-bierpomp-p1"},
	}, manager(memory.TeamIDBierpomp))
	if !errors.Is(err, ErrMatchLocked) {
		t.Fatalf("expected ErrMatchLocked, got %v", err)
	}

	got, err := f.service.SubmitLineup(ctx, SubmitLineupInput{
		MatchID:   scheduledMatchID,
		TeamID:    memory.TeamIDBierpomp,
		PlayerIDs: []string{"team-bierpomp-p1"},
	}, referee)
	if err != nil {
		t.Fatalf("referee lineup on locked match: %v", err)
	}
	if len(got.AwayLineup) != 1 {
		t.Fatalf("unexpected away lineup: %v", got.AwayLineup)
	}

	unlocked, err := f.service.SetLock(ctx, scheduledMatchID, false, referee)
	if err != nil {
		t.Fatalf("unlock match: %v", err)
	}
	if unlocked.IsManuallyLocked || unlocked.LockedAt != nil || unlocked.LockedBy != "" {
		t.Fatalf("unexpected unlock state: %+v", unlocked)
	}
}

func TestMatchService_SubmitLineup_Rejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newMatchFixture(t, at("2026-11-13 12:00:00"))
	if _, err := f.suspensions.Create(ctx, SuspensionInput{PlayerID: "team-zwaluwen-p4", Matches: 1}); err != nil {
		t.Fatalf("create suspension: %v", err)
	}

	cases := []struct {
		name    string
		actor   access.Actor
		input   SubmitLineupInput
		wantErr error
	}{
		{
			name:    "anonymous",
			actor:   access.Anonymous(),
			input:   SubmitLineupInput{MatchID: scheduledMatchID, TeamID: memory.TeamIDZwaluwen, PlayerIDs: []string{"team-zwaluwen-p1"}},
			wantErr: ErrForbidden,
		},
		{
			name:    "manager of a team that does not play",
			actor:   manager(memory.TeamIDKelder),
			input:   SubmitLineupInput{MatchID: scheduledMatchID, PlayerIDs: []string{"team-kelder-p1"}},
			wantErr: ErrForbidden,
		},
		{
			name:    "manager submitting the opponent",
			actor:   manager(memory.TeamIDZwaluwen),
			input:   SubmitLineupInput{MatchID: scheduledMatchID, TeamID: memory.TeamIDBierpomp, PlayerIDs: []string{"team-bierpomp-p1"}},
			wantErr: ErrForbidden,
		},
		{
			name:    "player from another team",
			actor:   manager(memory.TeamIDZwaluwen),
			input:   SubmitLineupInput{MatchID: scheduledMatchID, PlayerIDs: []string{"team-kelder-p1"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "duplicate player",
			actor:   manager(memory.TeamIDZwaluwen),
			input:   SubmitLineupInput{MatchID: scheduledMatchID, PlayerIDs: []string{"team-zwaluwen-p1", "team-zwaluwen-p1"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "empty lineup",
			actor:   manager(memory.TeamIDZwaluwen),
			input:   SubmitLineupInput{MatchID: scheduledMatchID},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "suspended player",
			actor:   manager(memory.TeamIDZwaluwen),
			input:   SubmitLineupInput{MatchID: scheduledMatchID, PlayerIDs: []string{"team-zwaluwen-p1", "team-zwaluwen-p4"}},
			wantErr: ErrInvalidInput,
		},
		{
			name:    "unknown match",
			actor:   manager(memory.TeamIDZwaluwen),
			input:   SubmitLineupInput{MatchID: "missing", PlayerIDs: []string{"team-zwaluwen-p1"}},
			wantErr: ErrNotFound,
		},
	}

	for _, tc := range cases {
		_, err := f.service.SubmitLineup(ctx, tc.input, tc.actor)
		if !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
		if errors.Is(err, ErrMatchLocked) {
			t.Fatalf("%s: unexpected lock error %v", tc.name, err)
		}
	}
}

func TestMatchService_SubmitResult_RecordsRedCardOnce(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newMatchFixture(t, at("2026-11-13 21:30:00"))
	input := SubmitResultInput{
		MatchID:   scheduledMatchID,
		HomeScore: 2,
		AwayScore: 1,
		Events: []match.Event{
			{Type: match.EventGoal, PlayerID: "team-zwaluwen-p2", TeamID: memory.TeamIDZwaluwen, Minute: 12},
			{Type: match.EventOwnGoal, PlayerID: "team-zwaluwen-p3", TeamID: memory.TeamIDZwaluwen, Minute: 5},
			{Type: match.EventOwnGoal, PlayerID: "team-bierpomp-p3", TeamID: memory.TeamIDBierpomp, Minute: 30},
			{Type: match.EventRedCard, PlayerID: "team-bierpomp-p6", TeamID: memory.TeamIDBierpomp, Minute: 40},
		},
	}

	got, err := f.service.SubmitResult(ctx, input, referee)
	if err != nil {
		t.Fatalf("submit result: %v", err)
	}
	if got.Status != match.StatusPlayed || *got.HomeScore != 2 || *got.AwayScore != 1 {
		t.Fatalf("unexpected stored result: %+v", got)
	}
	if got.Events[0].Minute != 5 {
		t.Fatalf("expected events ordered by minute, got %+v", got.Events)
	}

	if _, err := f.service.SubmitResult(ctx, input, referee); err != nil {
		t.Fatalf("resubmit result: %v", err)
	}

	items, err := f.suspRepo.ListByPlayer(ctx, "team-bierpomp-p6")
	if err != nil {
		t.Fatalf("list suspensions: %v", err)
	}
	if len(items) != 1 {
		t.Fatalf("expected exactly one red card suspension, got %d", len(items))
	}
	s := items[0]
	if s.SourceMatchID != scheduledMatchID || s.Matches != suspension.RedCardMatches || s.TeamID != memory.TeamIDBierpomp {
		t.Fatalf("unexpected suspension: %+v", s)
	}
}

func TestMatchService_SubmitResult_Rejections(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newMatchFixture(t, at("2026-11-13 21:30:00"))

	_, err := f.service.SubmitResult(ctx, SubmitResultInput{MatchID: scheduledMatchID, HomeScore: 1}, manager(memory.TeamIDZwaluwen))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected managers to be refused, got %v", err)
	}

	_, err = f.service.SubmitResult(ctx, SubmitResultInput{
		MatchID:   scheduledMatchID,
		HomeScore: 3,
		AwayScore: 0,
		Events:    []match.Event{{Type: match.EventGoal, PlayerID: "team-zwaluwen-p1", TeamID: memory.TeamIDZwaluwen}},
	}, referee)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected goal mismatch to be rejected, got %v", err)
	}

	_, err = f.service.SubmitResult(ctx, SubmitResultInput{
		MatchID:   scheduledMatchID,
		HomeScore: 0,
		AwayScore: 0,
		Events:    []match.Event{{Type: match.EventYellowCard, PlayerID: "team-kelder-p1", TeamID: memory.TeamIDKelder}},
	}, referee)
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected foreign team event to be rejected, got %v", err)
	}

	stored, _, _ := f.matchRepo.GetByID(ctx, scheduledMatchID)
	if stored.Status != match.StatusScheduled || stored.HomeScore != nil {
		t.Fatalf("rejected results must not be stored: %+v", stored)
	}
}

func TestMatchService_SetLock_RequiresOfficial(t *testing.T) {
	t.Parallel()

	f := newMatchFixture(t, at("2026-11-13 12:00:00"))
	_, err := f.service.SetLock(context.Background(), scheduledMatchID, true, manager(memory.TeamIDZwaluwen))
	if !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden, got %v", err)
	}
}

func TestMatchService_Schedule(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newMatchFixture(t, at("2026-11-01 12:00:00"))

	created, err := f.service.Schedule(ctx, MatchInput{
		Competition: "cup",
		Round:       2,
		BracketSlot: 1,
		Date:        "2026-12-04",
		Time:        "20:00",
		Location:    "Sporthal De Molen",
		HomeTeamID:  memory.TeamIDKelder,
		AwayTeamID:  memory.TeamIDZwaluwen,
	})
	if err != nil {
		t.Fatalf("schedule match: %v", err)
	}
	if created.ID != "m-1" || created.Status != match.StatusScheduled || created.Competition != match.CompetitionCup {
		t.Fatalf("unexpected match: %+v", created)
	}

	invalid := []struct {
		name    string
		input   MatchInput
		wantErr error
	}{
		{"bad time", MatchInput{Date: "2026-12-04", Time: "8pm", HomeTeamID: memory.TeamIDKelder, AwayTeamID: memory.TeamIDZwaluwen}, ErrInvalidInput},
		{"same team", MatchInput{Date: "2026-12-04", Time: "20:00", HomeTeamID: memory.TeamIDKelder, AwayTeamID: memory.TeamIDKelder}, ErrInvalidInput},
		{"unknown team", MatchInput{Date: "2026-12-04", Time: "20:00", HomeTeamID: memory.TeamIDKelder, AwayTeamID: "team-x"}, ErrNotFound},
		{"bad competition", MatchInput{Competition: "friendly", Date: "2026-12-04", Time: "20:00", HomeTeamID: memory.TeamIDKelder, AwayTeamID: memory.TeamIDZwaluwen}, ErrInvalidInput},
	}
	for _, tc := range invalid {
		if _, err := f.service.Schedule(ctx, tc.input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestMatchService_Schedule_PadsKickoffTime(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newMatchFixture(t, at("2026-11-01 12:00:00"))

	late, err := f.service.Schedule(ctx, MatchInput{
		Competition: "cup", Date: "2026-12-05", Time: "10:00",
		HomeTeamID: memory.TeamIDKelder, AwayTeamID: memory.TeamIDZwaluwen,
	})
	if err != nil {
		t.Fatalf("schedule 10:00 match: %v", err)
	}
	early, err := f.service.Schedule(ctx, MatchInput{
		Competition: "cup", Date: "2026-12-05", Time: "9:30",
		HomeTeamID: memory.TeamIDZwaluwen, AwayTeamID: memory.TeamIDKelder,
	})
	if err != nil {
		t.Fatalf("schedule 9:30 match: %v", err)
	}
	if early.Time != "09:30" {
		t.Fatalf("expected stored time 09:30, got %q", early.Time)
	}

	items, err := f.matchRepo.List(ctx, match.Filter{Competition: match.CompetitionCup})
	if err != nil {
		t.Fatalf("list cup matches: %v", err)
	}
	var order []string
	for _, item := range items {
		if item.Date == "2026-12-05" {
			order = append(order, item.ID)
		}
	}
	if len(order) != 2 || order[0] != early.ID || order[1] != late.ID {
		t.Fatalf("expected 9:30 match before 10:00 match, got %v", order)
	}

	// Seconds are dropped on write.
	updated, err := f.service.Update(ctx, late.ID, MatchInput{
		Competition: "cup", Date: "2026-12-05", Time: "10:15:00",
		HomeTeamID: memory.TeamIDKelder, AwayTeamID: memory.TeamIDZwaluwen,
	})
	if err != nil {
		t.Fatalf("update match: %v", err)
	}
	if updated.Time != "10:15" {
		t.Fatalf("expected stored time 10:15, got %q", updated.Time)
	}
}
