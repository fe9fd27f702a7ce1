package usecase

import (
	"context"
	"fmt"

	"github.com/riskibarqy/minivoetbal/internal/domain/bracket"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
)

type BracketService struct {
	matchRepo match.Repository
}

func NewBracketService(matchRepo match.Repository) *BracketService {
	return &BracketService{matchRepo: matchRepo}
}

func (s *BracketService) Get(ctx context.Context, competition string) (bracket.Bracket, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.BracketService.Get")
	defer span.End()

	c, err := match.ParseCompetition(competition)
	if err != nil || !c.IsKnockout() {
		return bracket.Bracket{}, fmt.Errorf("%w: brackets exist for cup and playoff only", ErrInvalidInput)
	}

	matches, err := s.matchRepo.List(ctx, match.Filter{Competition: c})
	if err != nil {
		return bracket.Bracket{}, fmt.Errorf("list %s matches: %w", c, err)
	}
	return bracket.Build(c, matches), nil
}
