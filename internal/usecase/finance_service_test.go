package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
	"github.com/shopspring/decimal"
)

func TestFinanceService_RecordAndBalances(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	service := NewFinanceService(
		memory.NewTeamRepository(memory.SeedTeams()),
		memory.NewFinanceRepository(memory.SeedTransactions()),
		clock.Fixed{At: time.Date(2026, 10, 14, 15, 0, 0, 0, cet)},
		id.NewSequence("tx-"),
	)

	fine, err := service.Record(ctx, TransactionInput{TeamID: memory.TeamIDKelder, Kind: "fine", Amount: "12.50", Description: "red card"})
	if err != nil {
		t.Fatalf("record fine: %v", err)
	}
	if fine.OccurredOn.Format(access.DateLayout) != "2026-10-14" {
		t.Fatalf("expected default booking date today, got %s", fine.OccurredOn)
	}
	if _, err := service.Record(ctx, TransactionInput{TeamID: memory.TeamIDKelder, Kind: "payment", Amount: "162.50", OccurredOn: "2026-10-01"}); err != nil {
		t.Fatalf("record payment: %v", err)
	}

	invalid := []TransactionInput{
		{TeamID: memory.TeamIDKelder, Kind: "refund", Amount: "1"},
		{TeamID: memory.TeamIDKelder, Kind: "fee", Amount: "abc"},
		{TeamID: memory.TeamIDKelder, Kind: "fee", Amount: "0"},
		{TeamID: memory.TeamIDKelder, Kind: "fee", Amount: "1", OccurredOn: "01/10/2026"},
	}
	for _, input := range invalid {
		if _, err := service.Record(ctx, input); !errors.Is(err, ErrInvalidInput) {
			t.Fatalf("expected ErrInvalidInput for %+v, got %v", input, err)
		}
	}
	if _, err := service.Record(ctx, TransactionInput{TeamID: "team-x", Kind: "fee", Amount: "1"}); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	balances, err := service.Balances(ctx)
	if err != nil {
		t.Fatalf("balances: %v", err)
	}
	if len(balances) != len(memory.SeedTeams()) {
		t.Fatalf("expected a balance per team, got %d", len(balances))
	}
	for _, b := range balances {
		want := decimal.RequireFromString("150")
		if b.TeamID == memory.TeamIDKelder {
			want = decimal.Zero
		}
		if !b.Outstanding.Equal(want) {
			t.Fatalf("team %s: outstanding %s, want %s", b.TeamID, b.Outstanding, want)
		}
	}

	account, err := service.TeamAccount(ctx, access.Actor{Role: access.RolePlayerManager, TeamID: memory.TeamIDKelder})
	if err != nil {
		t.Fatalf("team account: %v", err)
	}
	if len(account.Transactions) != 3 || !account.Balance.Paid.Equal(decimal.RequireFromString("162.5")) {
		t.Fatalf("unexpected account: %+v", account)
	}

	if _, err := service.TeamAccount(ctx, access.Actor{Role: access.RolePlayerManager}); !errors.Is(err, ErrForbidden) {
		t.Fatalf("expected ErrForbidden for manager without team, got %v", err)
	}
}
