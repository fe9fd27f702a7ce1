package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/finance"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
	"github.com/shopspring/decimal"
)

type TransactionInput struct {
	TeamID      string
	Kind        string
	Amount      string
	Description string
	OccurredOn  string
}

// TeamAccount is what a manager sees of their team's finances.
type TeamAccount struct {
	Balance      finance.Balance
	Transactions []finance.Transaction
}

type FinanceService struct {
	teamRepo    team.Repository
	financeRepo finance.Repository
	clock       clock.Clock
	ids         id.Generator
}

func NewFinanceService(teamRepo team.Repository, financeRepo finance.Repository, clk clock.Clock, ids id.Generator) *FinanceService {
	if clk == nil {
		clk = clock.NewLocal(time.Local)
	}
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	return &FinanceService{
		teamRepo:    teamRepo,
		financeRepo: financeRepo,
		clock:       clk,
		ids:         ids,
	}
}

func (s *FinanceService) ListTransactions(ctx context.Context, teamID string) ([]finance.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.ListTransactions")
	defer span.End()

	items, err := s.financeRepo.List(ctx, strings.TrimSpace(teamID))
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	return items, nil
}

func (s *FinanceService) Record(ctx context.Context, input TransactionInput) (finance.Transaction, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.Record")
	defer span.End()

	teamID := strings.TrimSpace(input.TeamID)
	if teamID == "" {
		return finance.Transaction{}, fmt.Errorf("%w: team id is required", ErrInvalidInput)
	}
	_, exists, err := s.teamRepo.GetByID(ctx, teamID)
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("get team by id: %w", err)
	}
	if !exists {
		return finance.Transaction{}, fmt.Errorf("%w: team=%s", ErrNotFound, teamID)
	}

	kind, err := finance.ParseKind(input.Kind)
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(input.Amount))
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("%w: amount must be a decimal number", ErrInvalidInput)
	}

	now := s.clock.Now()
	occurredOn := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	if v := strings.TrimSpace(input.OccurredOn); v != "" {
		occurredOn, err = time.ParseInLocation(access.DateLayout, v, now.Location())
		if err != nil {
			return finance.Transaction{}, fmt.Errorf("%w: occurred_on must be YYYY-MM-DD", ErrInvalidInput)
		}
	}

	transactionID, err := s.ids.NewID()
	if err != nil {
		return finance.Transaction{}, fmt.Errorf("generate transaction id: %w", err)
	}
	item := finance.Transaction{
		ID:          transactionID,
		TeamID:      teamID,
		Kind:        kind,
		Amount:      amount,
		Description: strings.TrimSpace(input.Description),
		OccurredOn:  occurredOn,
		CreatedAt:   now,
	}
	if err := item.Validate(); err != nil {
		return finance.Transaction{}, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	if err := s.financeRepo.Create(ctx, item); err != nil {
		return finance.Transaction{}, fmt.Errorf("create transaction: %w", err)
	}
	return item, nil
}

// Balances reports one balance per team, including teams without bookings.
func (s *FinanceService) Balances(ctx context.Context) ([]finance.Balance, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.Balances")
	defer span.End()

	teams, err := s.teamRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list teams: %w", err)
	}
	items, err := s.financeRepo.List(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}

	computed := make(map[string]finance.Balance)
	for _, b := range finance.Balances(items) {
		computed[b.TeamID] = b
	}

	out := make([]finance.Balance, 0, len(teams))
	for _, t := range teams {
		b, ok := computed[t.ID]
		if !ok {
			b = finance.Balance{TeamID: t.ID, Charged: decimal.Zero, Paid: decimal.Zero, Outstanding: decimal.Zero}
		}
		out = append(out, b)
	}
	return out, nil
}

// TeamAccount returns the caller's own team balance and bookings.
func (s *FinanceService) TeamAccount(ctx context.Context, actor access.Actor) (TeamAccount, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.FinanceService.TeamAccount")
	defer span.End()

	if !access.CanManageTeam(actor) || actor.TeamID == "" {
		return TeamAccount{}, fmt.Errorf("%w: a team is required", ErrForbidden)
	}

	items, err := s.financeRepo.List(ctx, actor.TeamID)
	if err != nil {
		return TeamAccount{}, fmt.Errorf("list team transactions: %w", err)
	}

	account := TeamAccount{
		Balance:      finance.Balance{TeamID: actor.TeamID, Charged: decimal.Zero, Paid: decimal.Zero, Outstanding: decimal.Zero},
		Transactions: items,
	}
	if balances := finance.Balances(items); len(balances) == 1 {
		account.Balance = balances[0]
	}
	return account, nil
}
