package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/riskibarqy/minivoetbal/internal/domain/player"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
)

type PlayerInput struct {
	TeamID       string
	FirstName    string
	LastName     string
	JerseyNumber int
	IsActive     *bool
}

type PlayerService struct {
	teamRepo   team.Repository
	playerRepo player.Repository
	ids        id.Generator
}

func NewPlayerService(teamRepo team.Repository, playerRepo player.Repository, ids id.Generator) *PlayerService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &PlayerService{
		teamRepo:   teamRepo,
		playerRepo: playerRepo,
		ids:        ids,
	}
}

func (s *PlayerService) ListByTeam(ctx context.Context, teamID string) ([]player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.ListByTeam")
	defer span.End()

	if err := s.ensureTeam(ctx, teamID); err != nil {
		return nil, err
	}

	items, err := s.playerRepo.ListByTeam(ctx, strings.TrimSpace(teamID))
	if err != nil {
		return nil, fmt.Errorf("list players by team: %w", err)
	}
	return items, nil
}

func (s *PlayerService) Get(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Get")
	defer span.End()

	return s.getPlayer(ctx, playerID)
}

func (s *PlayerService) Create(ctx context.Context, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Create")
	defer span.End()

	playerID, err := s.ids.NewID()
	if err != nil {
		return player.Player{}, fmt.Errorf("generate player id: %w", err)
	}

	item := player.Player{ID: playerID, IsActive: true}
	if err := s.apply(ctx, &item, input); err != nil {
		return player.Player{}, err
	}
	if err := s.playerRepo.Create(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("create player: %w", err)
	}
	return item, nil
}

func (s *PlayerService) Update(ctx context.Context, playerID string, input PlayerInput) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Update")
	defer span.End()

	item, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if err := s.apply(ctx, &item, input); err != nil {
		return player.Player{}, err
	}
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("update player: %w", err)
	}
	return item, nil
}

// Deactivate keeps the player on record but bars them from lineups.
func (s *PlayerService) Deactivate(ctx context.Context, playerID string) (player.Player, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.PlayerService.Deactivate")
	defer span.End()

	item, err := s.getPlayer(ctx, playerID)
	if err != nil {
		return player.Player{}, err
	}
	if !item.IsActive {
		return item, nil
	}

	item.IsActive = false
	if err := s.playerRepo.Update(ctx, item); err != nil {
		return player.Player{}, fmt.Errorf("deactivate player: %w", err)
	}
	return item, nil
}

func (s *PlayerService) apply(ctx context.Context, item *player.Player, input PlayerInput) error {
	teamID := strings.TrimSpace(input.TeamID)
	if err := s.ensureTeam(ctx, teamID); err != nil {
		return err
	}

	item.TeamID = teamID
	item.FirstName = strings.TrimSpace(input.FirstName)
	item.LastName = strings.TrimSpace(input.LastName)
	item.JerseyNumber = input.JerseyNumber
	if input.IsActive != nil {
		item.IsActive = *input.IsActive
	}
	if err := item.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if item.JerseyNumber > 0 && item.IsActive {
		teammates, err := s.playerRepo.ListByTeam(ctx, teamID)
		if err != nil {
			return fmt.Errorf("list players by team: %w", err)
		}
		for _, mate := range teammates {
			if mate.ID != item.ID && mate.IsActive && mate.JerseyNumber == item.JerseyNumber {
				return fmt.Errorf("%w: jersey number %d is taken by %s", ErrConflict, item.JerseyNumber, mate.FullName())
			}
		}
	}
	return nil
}

func (s *PlayerService) ensureTeam(ctx context.Context, teamID string) error {
	teamID = strings.TrimSpace(teamID)
	if teamID == "" {
		return fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}
	return nil
}

func (s *PlayerService) getPlayer(ctx context.Context, playerID string) (player.Player, error) {
	playerID = strings.TrimSpace(playerID)
	if playerID == "" {
		return player.Player{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return player.Player{}, fmt.Errorf("get player by id: %w", err)
	}
	if !exists {
		return player.Player{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}
	return item, nil
}
