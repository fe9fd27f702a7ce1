package usecase

import (
	"context"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/player"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
)

type TeamInput struct {
	Name         string
	ShortName    string
	CaptainName  string
	ContactEmail string
}

type TeamService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	matchRepo  match.Repository
	clock      clock.Clock
	ids        id.Generator
}

func NewTeamService(
	teamRepo team.Repository,
	playerRepo player.Repository,
	matchRepo match.Repository,
	clk clock.Clock,
	ids id.Generator,
) *TeamService {
	if clk == nil {
		clk = clock.NewLocal(time.Local)
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &TeamService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		matchRepo:  matchRepo,
		clock:      clk,
		ids:        ids,
	}
}

func (s *TeamService) List(ctx context.Context) ([]team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.List")
	defer span.End()

	items, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	return items, nil
}

func (s *TeamService) Get(ctx context.Context, teamID string) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Get")
	defer span.End()

	return s.getTeam(ctx, teamID)
}

func (s *TeamService) Create(ctx context.Context, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Create")
	defer span.End()

	teamID, err := s.ids.NewID()
	if err != nil {
		return team.Team{}, fmt.Errorf("generate team id: %w", err)
	}

	item := team.Team{ID: teamID, CreatedAt: s.clock.Now()}
	if err := applyTeamInput(&item, input); err != nil {
		return team.Team{}, err
	}
	if err := s.ensureUniqueName(ctx, item); err != nil {
		return team.Team{}, err
	}
	if err := s.teamRepo.Create(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("create team: %w", err)
	}
	return item, nil
}

func (s *TeamService) Update(ctx context.Context, teamID string, input TeamInput) (team.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Update")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return team.Team{}, err
	}
	if err := applyTeamInput(&item, input); err != nil {
		return team.Team{}, err
	}
	if err := s.ensureUniqueName(ctx, item); err != nil {
		return team.Team{}, err
	}
	if err := s.teamRepo.Update(ctx, item); err != nil {
		return team.Team{}, fmt.Errorf("update team: %w", err)
	}
	return item, nil
}

// Delete removes a team that has no matches and no registered players.
func (s *TeamService) Delete(ctx context.Context, teamID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TeamService.Delete")
	defer span.End()

	item, err := s.getTeam(ctx, teamID)
	if err != nil {
		return err
	}

	matches, err := s.matchRepo.CountByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("count team matches: %w", err)
	}
	if matches > 0 {
		return fmt.Errorf("%w: team %s still has %d matches", ErrConflict, item.ID, matches)
	}

	players, err := s.playerRepo.ListByTeam(ctx, item.ID)
	if err != nil {
		return fmt.Errorf("list team players: %w", err)
	}
	if len(players) > 0 {
		return fmt.Errorf("%w: team %s still has %d players", ErrConflict, item.ID, len(players))
	}

	if err := s.teamRepo.Delete(ctx, item.ID); err != nil {
		return fmt.Errorf("delete team: %w", err)
	}
	return nil
}

func (s *TeamService) getTeam(ctx context.Context, teamID string) (team.Team, error) {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return team.Team{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}

	item, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return team.Team{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return team.Team{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return item, nil
}

func (s *TeamService) ensureUniqueName(ctx context.Context, item team.Team) error {
	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list teams: %w", err)
	}
	for _, existing := range teams {
		if existing.ID != item.ID && strings.EqualFold(existing.Name, item.Name) {
			return fmt.Errorf("%w: team name %q is taken", ErrConflict, item.Name)
		}
	}
	return nil
}

func applyTeamInput(item *team.Team, input TeamInput) error {
	item.Name = strings.TrimSpace(input.Name)
	item.ShortName = strings.ToUpper(strings.TrimSpace(input.ShortName))
	item.CaptainName = strings.TrimSpace(input.CaptainName)
	item.ContactEmail = strings.TrimSpace(input.ContactEmail)

	if item.ContactEmail != "" {
		if _, err := mail.ParseAddress(item.ContactEmail); err != nil {
			return fmt.Errorf("%w: invalid contact email", ErrInvalidInput)
		}
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	return nil
}
