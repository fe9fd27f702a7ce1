package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/standing"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
)

type StandingService struct {
	teamRepo  team.Repository
	matchRepo match.Repository
}

func NewStandingService(teamRepo team.Repository, matchRepo match.Repository) *StandingService {
	return &StandingService{teamRepo: teamRepo, matchRepo: matchRepo}
}

func (s *StandingService) Table(ctx context.Context) ([]standing.Row, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.StandingService.Table")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	matches, err := s.matchRepo.List(ctx, match.Filter{Competition: match.CompetitionLeague, Status: match.StatusPlayed})
	if err != nil {
		return nil, fmt.Errorf("list played league matches: %w", err)
	}

	return standing.Compute(teams, matches), nil
}
