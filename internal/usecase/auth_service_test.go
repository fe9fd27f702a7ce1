package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/session"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/repository/memory"
	sessionmock "github.com/riskibarqy/minivoetbal/internal/mocks/domain/session"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"
)

type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

func newAuthService(t *testing.T, clk clock.Clock) (*AuthService, *memory.SessionRepository) {
	t.Helper()

	sessions := memory.NewSessionRepository()
	service := NewAuthService(
		memory.NewUserRepository(nil),
		sessions,
		memory.NewTeamRepository(memory.SeedTeams()),
		AuthConfig{SessionTTL: time.Hour, SessionCacheSize: 16},
		clk,
		id.NewSequence("tok-"),
		logging.NewNop(),
	)
	service.cost = bcrypt.MinCost
	return service, sessions
}

func TestAuthService_LoginResolveLogout(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := &movableClock{now: time.Date(2026, 11, 13, 18, 0, 0, 0, cet)}
	service, _ := newAuthService(t, clk)

	created, err := service.CreateUser(ctx, UserInput{
		Username: " Manager.Zwaluwen ",
		Password: "correct horse",
		Role:     "player_manager",
		TeamID:   memory.TeamIDZwaluwen,
	})
	if err != nil {
		t.Fatalf("create user: %v", err)
	}
	if created.Username != "manager.zwaluwen" || created.PasswordHash == "correct horse" {
		t.Fatalf("unexpected stored user: %+v", created)
	}

	if _, err := service.Login(ctx, "manager.zwaluwen", "wrong password"); !errors.Is(err, ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}

	result, err := service.Login(ctx, "MANAGER.zwaluwen", "correct horse")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if !result.ExpiresAt.Equal(clk.now.Add(time.Hour)) {
		t.Fatalf("unexpected expiry: %s", result.ExpiresAt)
	}

	actor, err := service.ResolveActor(ctx, result.Token)
	if err != nil {
		t.Fatalf("resolve actor: %v", err)
	}
	if actor.Role != access.RolePlayerManager || actor.TeamID != memory.TeamIDZwaluwen || actor.UserID != created.ID {
		t.Fatalf("unexpected actor: %+v", actor)
	}

	me, err := service.Me(ctx, actor)
	if err != nil || me.ID != created.ID {
		t.Fatalf("unexpected me: %+v %v", me, err)
	}

	if err := service.Logout(ctx, result.Token); err != nil {
		t.Fatalf("logout: %v", err)
	}
	actor, err = service.ResolveActor(ctx, result.Token)
	if err != nil || actor.Role != access.RoleAnonymous {
		t.Fatalf("expected anonymous after logout, got %+v %v", actor, err)
	}
}

func TestAuthService_ExpiredSessionIsAnonymous(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	clk := &movableClock{now: time.Date(2026, 11, 13, 18, 0, 0, 0, cet)}
	service, sessions := newAuthService(t, clk)

	if _, err := service.CreateUser(ctx, UserInput{Username: "ref", Password: "whistle123", Role: "referee"}); err != nil {
		t.Fatalf("create user: %v", err)
	}
	result, err := service.Login(ctx, "ref", "whistle123")
	if err != nil {
		t.Fatalf("login: %v", err)
	}

	clk.now = clk.now.Add(time.Hour)
	actor, err := service.ResolveActor(ctx, result.Token)
	if err != nil {
		t.Fatalf("resolve actor: %v", err)
	}
	if actor.Role != access.RoleAnonymous {
		t.Fatalf("expected expired session to resolve anonymous, got %+v", actor)
	}
	if _, ok, _ := sessions.Get(ctx, result.Token); ok {
		t.Fatalf("expected expired session to be removed")
	}
}

func TestAuthService_CreateUserValidation(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service, _ := newAuthService(t, clock.Fixed{At: time.Unix(0, 0)})

	cases := []struct {
		name    string
		input   UserInput
		wantErr error
	}{
		{"anonymous role", UserInput{Username: "a", Password: "long enough", Role: "anonymous"}, ErrInvalidInput},
		{"unknown role", UserInput{Username: "a", Password: "long enough", Role: "superuser"}, ErrInvalidInput},
		{"short password", UserInput{Username: "a", Password: "short", Role: "admin"}, ErrInvalidInput},
		{"unknown team", UserInput{Username: "a", Password: "long enough", Role: "player_manager", TeamID: "team-x"}, ErrNotFound},
	}
	for _, tc := range cases {
		if _, err := service.CreateUser(ctx, tc.input); !errors.Is(err, tc.wantErr) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.wantErr, err)
		}
	}

	if err := service.EnsureAdmin(ctx, "admin", "bootstrap-pass"); err != nil {
		t.Fatalf("ensure admin: %v", err)
	}
	if err := service.EnsureAdmin(ctx, "admin", "bootstrap-pass"); err != nil {
		t.Fatalf("ensure admin twice: %v", err)
	}
	if _, err := service.CreateUser(ctx, UserInput{Username: "ADMIN", Password: "another-pass", Role: "referee"}); !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict for taken username, got %v", err)
	}
}

func TestAuthService_ResolveActor_StorageFailureUsingMockery(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	sessions := sessionmock.NewRepository(t)
	service := NewAuthService(memory.NewUserRepository(nil), sessions, memory.NewTeamRepository(nil), AuthConfig{}, nil, nil, logging.NewNop())

	sessions.On("Get", mock.Anything, "tok").Return(session.Session{}, false, errors.New("timeout")).Once()

	actor, err := service.ResolveActor(ctx, "tok")
	if !errors.Is(err, ErrDependencyUnavailable) {
		t.Fatalf("expected ErrDependencyUnavailable, got %v", err)
	}
	if actor.Role != access.RoleAnonymous {
		t.Fatalf("failed lookups must resolve anonymous, got %+v", actor)
	}

	blank, err := service.ResolveActor(ctx, "")
	if err != nil || blank.Role != access.RoleAnonymous {
		t.Fatalf("blank token must resolve anonymous without storage, got %+v %v", blank, err)
	}
}
