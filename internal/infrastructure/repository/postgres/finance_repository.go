package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/minivoetbal/internal/domain/finance"
	qb "github.com/riskibarqy/minivoetbal/internal/platform/querybuilder"
)

type FinanceRepository struct {
	db *sqlx.DB
}

func NewFinanceRepository(db *sqlx.DB) *FinanceRepository {
	return &FinanceRepository{db: db}
}

func (r *FinanceRepository) List(ctx context.Context, teamID string) ([]finance.Transaction, error) {
	builder := qb.Select("*").From("finance_transactions")
	if teamID != "" {
		builder = builder.Where(qb.Eq("team_id", teamID))
	}
	query, args, err := builder.OrderBy("occurred_on", "created_at", "id").ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select finance transactions query: %w", err)
	}

	var rows []financeTransactionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select finance transactions: %w", err)
	}

	out := make([]finance.Transaction, 0, len(rows))
	for _, row := range rows {
		out = append(out, finance.Transaction{
			ID:          row.ID,
			TeamID:      row.TeamID,
			Kind:        finance.Kind(row.Kind),
			Amount:      row.Amount,
			Description: row.Description,
			OccurredOn:  row.OccurredOn,
			CreatedAt:   row.CreatedAt,
		})
	}
	return out, nil
}

func (r *FinanceRepository) Create(ctx context.Context, item finance.Transaction) error {
	query, args, err := qb.InsertModel("finance_transactions", financeTransactionTableModel{
		ID:          item.ID,
		TeamID:      item.TeamID,
		Kind:        string(item.Kind),
		Amount:      item.Amount,
		Description: item.Description,
		OccurredOn:  item.OccurredOn,
		CreatedAt:   item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert finance transaction query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(err, "insert finance transaction")
	}
	return nil
}
