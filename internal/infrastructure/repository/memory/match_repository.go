package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/minivoetbal/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches map[string]match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	byID := make(map[string]match.Match, len(matches))
	for _, item := range matches {
		byID[item.ID] = cloneMatch(item)
	}
	return &MatchRepository{matches: byID}
}

func (r *MatchRepository) List(_ context.Context, filter match.Filter) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]match.Match, 0, len(r.matches))
	for _, item := range r.matches {
		if filter.Matches(item) {
			out = append(out, cloneMatch(item))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].KickoffKey() != out[j].KickoffKey() {
			return out[i].KickoffKey() < out[j].KickoffKey()
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *MatchRepository) GetByID(_ context.Context, matchID string) (match.Match, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.matches[matchID]
	if !ok {
		return match.Match{}, false, nil
	}
	return cloneMatch(item), true, nil
}

func (r *MatchRepository) Create(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[item.ID]; exists {
		return ErrDuplicate
	}
	r.matches[item.ID] = cloneMatch(item)
	return nil
}

func (r *MatchRepository) Update(_ context.Context, item match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.matches[item.ID]; !exists {
		return ErrMissing
	}
	r.matches[item.ID] = cloneMatch(item)
	return nil
}

func (r *MatchRepository) Delete(_ context.Context, matchID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.matches, matchID)
	return nil
}

func (r *MatchRepository) CountByTeam(_ context.Context, teamID string) (int, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	count := 0
	for _, item := range r.matches {
		if item.Involves(teamID) {
			count++
		}
	}
	return count, nil
}

func cloneMatch(item match.Match) match.Match {
	item.HomeLineup = append([]string(nil), item.HomeLineup...)
	item.AwayLineup = append([]string(nil), item.AwayLineup...)
	item.Events = append([]match.Event(nil), item.Events...)
	if item.HomeScore != nil {
		v := *item.HomeScore
		item.HomeScore = &v
	}
	if item.AwayScore != nil {
		v := *item.AwayScore
		item.AwayScore = &v
	}
	if item.LockedAt != nil {
		v := *item.LockedAt
		item.LockedAt = &v
	}
	return item
}
