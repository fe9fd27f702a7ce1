package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/session"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/riskibarqy/minivoetbal/internal/domain/user"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"golang.org/x/crypto/bcrypt"
)

const (
	defaultSessionTTL       = 12 * time.Hour
	defaultSessionCacheSize = 1024
	passwordMinLength       = 8
	passwordMaxLength       = 72
)

type UserInput struct {
	Username string
	Password string
	Role     string
	TeamID   string
}

type LoginResult struct {
	Token     string
	ExpiresAt time.Time
	User      user.User
}

type AuthConfig struct {
	SessionTTL       time.Duration
	SessionCacheSize int
}

type AuthService struct {
	userRepo    user.Repository
	sessionRepo session.Repository
	teamRepo    team.Repository
	sessions    *lru.LRU[string, session.Session]
	ttl         time.Duration
	clock       clock.Clock
	ids         id.Generator
	logger      *logging.Logger
	cost        int
}

func NewAuthService(
	userRepo user.Repository,
	sessionRepo session.Repository,
	teamRepo team.Repository,
	cfg AuthConfig,
	clk clock.Clock,
	ids id.Generator,
	logger *logging.Logger,
) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.SessionCacheSize <= 0 {
		cfg.SessionCacheSize = defaultSessionCacheSize
	}
	if clk == nil {
		clk = clock.NewLocal(time.Local)
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AuthService{
		userRepo:    userRepo,
		sessionRepo: sessionRepo,
		teamRepo:    teamRepo,
		sessions:    lru.NewLRU[string, session.Session](cfg.SessionCacheSize, nil, cfg.SessionTTL),
		ttl:         cfg.SessionTTL,
		clock:       clk,
		ids:         ids,
		logger:      logger,
		cost:        bcrypt.DefaultCost,
	}
}

func (s *AuthService) Login(ctx context.Context, username, password string) (LoginResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Login")
	defer span.End()

	username = user.NormalizeUsername(username)
	if username == "" || password == "" {
		return LoginResult{}, fmt.Errorf("%w: username and password are required", ErrInvalidInput)
	}

	account, exists, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return LoginResult{}, fmt.Errorf("get user by username: %w", err)
	}
	if !exists || !verifyPassword(account.PasswordHash, password) {
		s.logger.WarnContext(ctx, "login rejected", "username", username)
		return LoginResult{}, fmt.Errorf("%w: invalid credentials", ErrUnauthorized)
	}

	token, err := s.ids.NewID()
	if err != nil {
		return LoginResult{}, fmt.Errorf("generate session token: %w", err)
	}
	item := session.Session{
		Token:     token,
		UserID:    account.ID,
		Role:      account.Role,
		TeamID:    account.TeamID,
		ExpiresAt: s.clock.Now().Add(s.ttl),
	}
	if err := s.sessionRepo.Create(ctx, item); err != nil {
		return LoginResult{}, fmt.Errorf("create session: %w", err)
	}
	s.sessions.Add(token, item)

	s.logger.InfoContext(ctx, "login succeeded", "user_id", account.ID, "role", account.Role)
	return LoginResult{Token: token, ExpiresAt: item.ExpiresAt, User: account}, nil
}

func (s *AuthService) Logout(ctx context.Context, token string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Logout")
	defer span.End()

	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: missing session token", ErrUnauthorized)
	}
	s.sessions.Remove(token)
	if err := s.sessionRepo.Delete(ctx, token); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// ResolveActor maps a bearer token onto an actor. Unknown and expired
// tokens resolve to the anonymous actor; only storage failures error.
func (s *AuthService) ResolveActor(ctx context.Context, token string) (access.Actor, error) {
	item, ok, err := s.lookupSession(ctx, token)
	if err != nil {
		return access.Anonymous(), err
	}
	if !ok {
		return access.Anonymous(), nil
	}
	return item.Actor(), nil
}

// Me returns the account behind an authenticated actor.
func (s *AuthService) Me(ctx context.Context, actor access.Actor) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.Me")
	defer span.End()

	if !access.IsAuthenticated(actor.Role) || actor.UserID == "" {
		return user.User{}, fmt.Errorf("%w: login required", ErrUnauthorized)
	}
	account, exists, err := s.userRepo.GetByID(ctx, actor.UserID)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by id: %w", err)
	}
	if !exists {
		return user.User{}, fmt.Errorf("%w: user=%s", ErrNotFound, actor.UserID)
	}
	return account, nil
}

func (s *AuthService) ListUsers(ctx context.Context) ([]user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.ListUsers")
	defer span.End()

	items, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return items, nil
}

// CreateUser registers an account. A team manager without a team is
// accepted but can never edit a match.
func (s *AuthService) CreateUser(ctx context.Context, input UserInput) (user.User, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.CreateUser")
	defer span.End()

	username := user.NormalizeUsername(input.Username)
	if username == "" {
		return user.User{}, fmt.Errorf("%w: username is required", ErrInvalidInput)
	}
	role := access.ParseRole(input.Role)
	if !access.IsAuthenticated(role) {
		return user.User{}, fmt.Errorf("%w: role must be admin, referee or player_manager", ErrInvalidInput)
	}
	if len(input.Password) < passwordMinLength || len(input.Password) > passwordMaxLength {
		return user.User{}, fmt.Errorf("%w: password must be %d to %d characters", ErrInvalidInput, passwordMinLength, passwordMaxLength)
	}

	teamID := strings.TrimSpace(input.TeamID)
	if role != access.RolePlayerManager {
		teamID = ""
	}
	if teamID != "" {
		_, exists, err := s.teamRepo.GetByID(ctx, teamID)
		if err != nil {
			return user.User{}, fmt.Errorf("get team by id: %w", err)
		}
		if !exists {
			return user.User{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
		}
	}

	_, taken, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		return user.User{}, fmt.Errorf("get user by username: %w", err)
	}
	if taken {
		return user.User{}, fmt.Errorf("%w: username %s is taken", ErrConflict, username)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), s.cost)
	if err != nil {
		return user.User{}, fmt.Errorf("hash password: %w", err)
	}
	userID, err := s.ids.NewID()
	if err != nil {
		return user.User{}, fmt.Errorf("generate user id: %w", err)
	}

	account := user.User{
		ID:           userID,
		Username:     username,
		PasswordHash: string(hash),
		Role:         role,
		TeamID:       teamID,
		CreatedAt:    s.clock.Now(),
	}
	if err := account.Validate(); err != nil {
		return user.User{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if err := s.userRepo.Create(ctx, account); err != nil {
		return user.User{}, fmt.Errorf("create user: %w", err)
	}

	s.logger.InfoContext(ctx, "user created", "user_id", account.ID, "role", account.Role, "team_id", account.TeamID)
	return account, nil
}

// EnsureAdmin creates the bootstrap admin unless the username exists.
func (s *AuthService) EnsureAdmin(ctx context.Context, username, password string) error {
	if strings.TrimSpace(username) == "" || password == "" {
		return nil
	}
	_, err := s.CreateUser(ctx, UserInput{Username: username, Password: password, Role: string(access.RoleAdmin)})
	if errors.Is(err, ErrConflict) {
		return nil
	}
	return err
}

// PurgeExpiredSessions removes sessions past their expiry.
func (s *AuthService) PurgeExpiredSessions(ctx context.Context) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AuthService.PurgeExpiredSessions")
	defer span.End()

	removed, err := s.sessionRepo.DeleteExpired(ctx, s.clock.Now())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return removed, nil
}

func (s *AuthService) lookupSession(ctx context.Context, token string) (session.Session, bool, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return session.Session{}, false, nil
	}

	now := s.clock.Now()
	if item, ok := s.sessions.Get(token); ok {
		if !item.Expired(now) {
			return item, true, nil
		}
		s.sessions.Remove(token)
	}

	item, exists, err := s.sessionRepo.Get(ctx, token)
	if err != nil {
		return session.Session{}, false, fmt.Errorf("%w: get session: %v", ErrDependencyUnavailable, err)
	}
	if !exists {
		return session.Session{}, false, nil
	}
	if item.Expired(now) {
		if err := s.sessionRepo.Delete(ctx, token); err != nil {
			s.logger.WarnContext(ctx, "delete expired session failed", "error", err)
		}
		return session.Session{}, false, nil
	}

	s.sessions.Add(token, item)
	return item, true, nil
}

func verifyPassword(hash, password string) bool {
	if hash == "" {
		return false
	}
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
