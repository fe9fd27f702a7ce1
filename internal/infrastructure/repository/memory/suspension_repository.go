package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/minivoetbal/internal/domain/suspension"
)

type SuspensionRepository struct {
	mu    sync.RWMutex
	items map[string]suspension.Suspension
}

func NewSuspensionRepository(items []suspension.Suspension) *SuspensionRepository {
	byID := make(map[string]suspension.Suspension, len(items))
	for _, item := range items {
		byID[item.ID] = cloneSuspension(item)
	}
	return &SuspensionRepository{items: byID}
}

func (r *SuspensionRepository) List(_ context.Context) ([]suspension.Suspension, error) {
	return r.filter(func(suspension.Suspension) bool { return true }), nil
}

func (r *SuspensionRepository) ListByPlayer(_ context.Context, playerID string) ([]suspension.Suspension, error) {
	return r.filter(func(item suspension.Suspension) bool { return item.PlayerID == playerID }), nil
}

func (r *SuspensionRepository) GetByID(_ context.Context, suspensionID string) (suspension.Suspension, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[suspensionID]
	if !ok {
		return suspension.Suspension{}, false, nil
	}
	return cloneSuspension(item), true, nil
}

func (r *SuspensionRepository) Create(_ context.Context, item suspension.Suspension) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; exists {
		return ErrDuplicate
	}
	r.items[item.ID] = cloneSuspension(item)
	return nil
}

func (r *SuspensionRepository) Update(_ context.Context, item suspension.Suspension) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.items[item.ID]; !exists {
		return ErrMissing
	}
	r.items[item.ID] = cloneSuspension(item)
	return nil
}

func (r *SuspensionRepository) Delete(_ context.Context, suspensionID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, suspensionID)
	return nil
}

func (r *SuspensionRepository) filter(keep func(suspension.Suspension) bool) []suspension.Suspension {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]suspension.Suspension, 0, len(r.items))
	for _, item := range r.items {
		if keep(item) {
			out = append(out, cloneSuspension(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].CreatedAt.Before(out[j].CreatedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

func cloneSuspension(item suspension.Suspension) suspension.Suspension {
	item.ServedMatchIDs = append([]string(nil), item.ServedMatchIDs...)
	return item
}
