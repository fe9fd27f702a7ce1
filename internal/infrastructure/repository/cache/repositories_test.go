package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/player"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	playermock "github.com/riskibarqy/minivoetbal/internal/mocks/domain/player"
	teammock "github.com/riskibarqy/minivoetbal/internal/mocks/domain/team"
	basecache "github.com/riskibarqy/minivoetbal/internal/platform/cache"
	"github.com/stretchr/testify/mock"
)

func TestTeamRepository_ListIsCachedUntilWrite(t *testing.T) {
	ctx := context.Background()
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	next.On("List", mock.Anything).Return([]team.Team{{ID: "team-kelder", Name: "FC De Kelder"}}, nil).Once()

	for i := 0; i < 2; i++ {
		items, err := repo.List(ctx)
		if err != nil {
			t.Fatalf("list teams: %v", err)
		}
		if len(items) != 1 {
			t.Fatalf("expected one team, got %d", len(items))
		}
	}

	created := team.Team{ID: "team-zwaluwen", Name: "De Zwaluwen"}
	next.On("Create", mock.Anything, created).Return(nil).Once()
	if err := repo.Create(ctx, created); err != nil {
		t.Fatalf("create team: %v", err)
	}

	next.On("List", mock.Anything).Return([]team.Team{{ID: "team-kelder"}, created}, nil).Once()
	items, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list teams after create: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected reload after create, got %d teams", len(items))
	}
}

func TestTeamRepository_CachesMissingTeam(t *testing.T) {
	ctx := context.Background()
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByID", mock.Anything, "team-x").Return(team.Team{}, false, nil).Once()

	for i := 0; i < 2; i++ {
		_, exists, err := repo.GetByID(ctx, "team-x")
		if err != nil {
			t.Fatalf("get team: %v", err)
		}
		if exists {
			t.Fatalf("expected missing team")
		}
	}
}

func TestTeamRepository_DoesNotCacheErrors(t *testing.T) {
	ctx := context.Background()
	next := teammock.NewRepository(t)
	repo := NewTeamRepository(next, basecache.NewStore(time.Minute))

	next.On("GetByID", mock.Anything, "team-kelder").Return(team.Team{}, false, errors.New("db down")).Once()
	next.On("GetByID", mock.Anything, "team-kelder").Return(team.Team{ID: "team-kelder"}, true, nil).Once()

	if _, _, err := repo.GetByID(ctx, "team-kelder"); err == nil {
		t.Fatalf("expected first load to fail")
	}
	got, exists, err := repo.GetByID(ctx, "team-kelder")
	if err != nil || !exists || got.ID != "team-kelder" {
		t.Fatalf("expected reload after error, got %+v exists=%v err=%v", got, exists, err)
	}
}

func TestPlayerRepository_UpdateInvalidatesRoster(t *testing.T) {
	ctx := context.Background()
	next := playermock.NewRepository(t)
	repo := NewPlayerRepository(next, basecache.NewStore(time.Minute))

	roster := []player.Player{{ID: "p1", TeamID: "team-kelder", JerseyNumber: 7, IsActive: true}}
	next.On("ListByTeam", mock.Anything, "team-kelder").Return(roster, nil).Once()

	if _, err := repo.ListByTeam(ctx, "team-kelder"); err != nil {
		t.Fatalf("list roster: %v", err)
	}

	moved := player.Player{ID: "p1", TeamID: "team-zwaluwen", JerseyNumber: 7, IsActive: true}
	next.On("Update", mock.Anything, moved).Return(nil).Once()
	if err := repo.Update(ctx, moved); err != nil {
		t.Fatalf("update player: %v", err)
	}

	next.On("ListByTeam", mock.Anything, "team-kelder").Return([]player.Player{}, nil).Once()
	items, err := repo.ListByTeam(ctx, "team-kelder")
	if err != nil {
		t.Fatalf("list roster after update: %v", err)
	}
	if len(items) != 0 {
		t.Fatalf("expected empty roster after move, got %d", len(items))
	}
}
