package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/suspension"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/repository/memory"
)

func TestOverviewService_Get(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	suspRepo := memory.NewSuspensionRepository([]suspension.Suspension{
		{ID: "susp-1", PlayerID: "team-kelder-p1", TeamID: memory.TeamIDKelder, Matches: 2},
		{ID: "susp-2", PlayerID: "team-kelder-p2", TeamID: memory.TeamIDKelder, Matches: 1, ServedMatchIDs: []string{"match-2"}},
	})
	svc := NewOverviewService(teamRepo, matchRepo, suspRepo, NewStandingService(teamRepo, matchRepo), at("2026-11-13 19:00:00"))

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get overview: %v", err)
	}

	if got.TeamCount != 4 {
		t.Fatalf("expected 4 teams, got %d", got.TeamCount)
	}
	if len(got.Upcoming) != 2 || got.Upcoming[0].ID != scheduledMatchID || got.Upcoming[1].ID != "match-4" {
		t.Fatalf("unexpected upcoming matches: %+v", got.Upcoming)
	}
	if len(got.LatestResults) != 2 || got.LatestResults[0].ID != "match-2" {
		t.Fatalf("expected latest result first, got %+v", got.LatestResults)
	}
	if len(got.TopStandings) != 4 {
		t.Fatalf("expected 4 standing rows, got %d", len(got.TopStandings))
	}
	if got.ActiveSuspensions != 1 {
		t.Fatalf("expected 1 active suspension, got %d", got.ActiveSuspensions)
	}
}

func TestOverviewService_UpcomingSkipsPastKickoff(t *testing.T) {
	t.Parallel()

	teamRepo := memory.NewTeamRepository(memory.SeedTeams())
	matchRepo := memory.NewMatchRepository(memory.SeedMatches())
	svc := NewOverviewService(teamRepo, matchRepo, memory.NewSuspensionRepository(nil), NewStandingService(teamRepo, matchRepo), at("2026-11-13 20:00:01"))

	got, err := svc.Get(context.Background())
	if err != nil {
		t.Fatalf("get overview: %v", err)
	}
	if len(got.Upcoming) != 1 || got.Upcoming[0].ID != "match-4" {
		t.Fatalf("expected only the cup match upcoming, got %+v", got.Upcoming)
	}
}

func TestBracketService_Get(t *testing.T) {
	t.Parallel()

	svc := NewBracketService(memory.NewMatchRepository(memory.SeedMatches()))

	got, err := svc.Get(context.Background(), "cup")
	if err != nil {
		t.Fatalf("get cup bracket: %v", err)
	}
	if got.Competition != match.CompetitionCup {
		t.Fatalf("unexpected competition %s", got.Competition)
	}
	if len(got.Rounds) != 1 || len(got.Rounds[0].Entries) != 1 {
		t.Fatalf("expected one round with one entry, got %+v", got.Rounds)
	}
	if entry := got.Rounds[0].Entries[0]; entry.Match.ID != "match-4" || entry.WinnerTeamID != "" {
		t.Fatalf("unexpected entry: %+v", entry)
	}

	for _, competition := range []string{"league", "", "friendly"} {
		if _, err := svc.Get(context.Background(), competition); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("competition %q: expected ErrInvalidInput, got %v", competition, err)
		}
	}
}
