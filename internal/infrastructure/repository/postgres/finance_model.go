package postgres

import (
	"time"

	"github.com/shopspring/decimal"
)

type financeTransactionTableModel struct {
	ID          string          `db:"id"`
	TeamID      string          `db:"team_id"`
	Kind        string          `db:"kind"`
	Amount      decimal.Decimal `db:"amount"`
	Description string          `db:"description"`
	OccurredOn  time.Time       `db:"occurred_on"`
	CreatedAt   time.Time       `db:"created_at"`
}
