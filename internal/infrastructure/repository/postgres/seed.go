package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/repository/memory"
	qb "github.com/riskibarqy/minivoetbal/internal/platform/querybuilder"
)

const seedOnConflict = "ON CONFLICT (id) DO NOTHING"

// BootstrapSeed loads the demo competition into an empty database.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM teams WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count teams for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	seedRows := make([]seedRow, 0, 64)
	for _, t := range memory.SeedTeams() {
		seedRows = append(seedRows, seedRow{table: "teams", id: t.ID, model: teamInsertModel{
			ID:           t.ID,
			Name:         t.Name,
			ShortName:    t.ShortName,
			CaptainName:  t.CaptainName,
			ContactEmail: t.ContactEmail,
			CreatedAt:    t.CreatedAt,
		}})
	}
	for _, p := range memory.SeedPlayers() {
		seedRows = append(seedRows, seedRow{table: "players", id: p.ID, model: playerTableModel{
			ID:           p.ID,
			TeamID:       p.TeamID,
			FirstName:    p.FirstName,
			LastName:     p.LastName,
			JerseyNumber: p.JerseyNumber,
			IsActive:     p.IsActive,
		}})
	}
	for _, m := range memory.SeedMatches() {
		seedRows = append(seedRows, seedRow{table: "matches", id: m.ID, model: matchInsertModel{
			ID:          m.ID,
			Competition: string(m.Competition),
			Round:       m.Round,
			BracketSlot: m.BracketSlot,
			MatchDate:   m.Date,
			KickoffTime: m.Time,
			Location:    m.Location,
			HomeTeamID:  m.HomeTeamID,
			AwayTeamID:  m.AwayTeamID,
			HomeScore:   m.HomeScore,
			AwayScore:   m.AwayScore,
			Status:      string(m.Status),
			HomeLineup:  stringArray(m.HomeLineup),
			AwayLineup:  stringArray(m.AwayLineup),
			Events:      "[]",
			CreatedAt:   m.CreatedAt,
			UpdatedAt:   m.UpdatedAt,
		}})
	}
	for _, item := range memory.SeedTransactions() {
		seedRows = append(seedRows, seedRow{table: "finance_transactions", id: item.ID, model: financeTransactionTableModel{
			ID:          item.ID,
			TeamID:      item.TeamID,
			Kind:        string(item.Kind),
			Amount:      item.Amount,
			Description: item.Description,
			OccurredOn:  item.OccurredOn,
			CreatedAt:   item.CreatedAt,
		}})
	}

	for _, row := range seedRows {
		query, args, err := qb.InsertModel(row.table, row.model, seedOnConflict)
		if err != nil {
			return fmt.Errorf("build seed %s %s query: %w", row.table, row.id, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("seed %s %s: %w", row.table, row.id, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}

type seedRow struct {
	table string
	id    string
	model any
}
