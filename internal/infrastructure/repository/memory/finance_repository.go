package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/minivoetbal/internal/domain/finance"
)

type FinanceRepository struct {
	mu    sync.RWMutex
	items []finance.Transaction
}

func NewFinanceRepository(items []finance.Transaction) *FinanceRepository {
	return &FinanceRepository{items: append([]finance.Transaction(nil), items...)}
}

func (r *FinanceRepository) List(_ context.Context, teamID string) ([]finance.Transaction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]finance.Transaction, 0, len(r.items))
	for _, item := range r.items {
		if teamID == "" || item.TeamID == teamID {
			out = append(out, item)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if !out[i].OccurredOn.Equal(out[j].OccurredOn) {
			return out[i].OccurredOn.Before(out[j].OccurredOn)
		}
		return out[i].CreatedAt.Before(out[j].CreatedAt)
	})
	return out, nil
}

func (r *FinanceRepository) Create(_ context.Context, item finance.Transaction) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.ID == item.ID {
			return ErrDuplicate
		}
	}
	r.items = append(r.items, item)
	return nil
}
