package finance

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

type Kind string

const (
	KindFee     Kind = "fee"
	KindFine    Kind = "fine"
	KindPayment Kind = "payment"
)

func ParseKind(value string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(value))); k {
	case KindFee, KindFine, KindPayment:
		return k, nil
	default:
		return "", fmt.Errorf("unknown transaction kind %q", value)
	}
}

// Transaction is one booking on a team's account. Amount is always
// positive; Kind decides the direction.
type Transaction struct {
	ID          string
	TeamID      string
	Kind        Kind
	Amount      decimal.Decimal
	Description string
	OccurredOn  time.Time
	CreatedAt   time.Time
}

// Signed is positive for amounts owed and negative for payments.
func (t Transaction) Signed() decimal.Decimal {
	if t.Kind == KindPayment {
		return t.Amount.Neg()
	}
	return t.Amount
}

func (t Transaction) Validate() error {
	if strings.TrimSpace(t.ID) == "" {
		return fmt.Errorf("transaction id is required")
	}
	if strings.TrimSpace(t.TeamID) == "" {
		return fmt.Errorf("transaction team id is required")
	}
	if _, err := ParseKind(string(t.Kind)); err != nil {
		return err
	}
	if !t.Amount.IsPositive() {
		return fmt.Errorf("transaction amount must be > 0")
	}
	if !t.Amount.Equal(t.Amount.Round(2)) {
		return fmt.Errorf("transaction amount supports at most 2 decimals")
	}

	return nil
}

// Balance summarizes a team account. Outstanding = Charged - Paid.
type Balance struct {
	TeamID      string
	Charged     decimal.Decimal
	Paid        decimal.Decimal
	Outstanding decimal.Decimal
}

// Balances folds transactions into one balance per team, ordered by
// team id.
func Balances(items []Transaction) []Balance {
	byTeam := make(map[string]*Balance)
	for _, item := range items {
		b, ok := byTeam[item.TeamID]
		if !ok {
			b = &Balance{TeamID: item.TeamID, Charged: decimal.Zero, Paid: decimal.Zero, Outstanding: decimal.Zero}
			byTeam[item.TeamID] = b
		}
		if item.Kind == KindPayment {
			b.Paid = b.Paid.Add(item.Amount)
		} else {
			b.Charged = b.Charged.Add(item.Amount)
		}
		b.Outstanding = b.Outstanding.Add(item.Signed())
	}

	out := make([]Balance, 0, len(byTeam))
	for _, b := range byTeam {
		out = append(out, *b)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TeamID < out[j].TeamID })
	return out
}
