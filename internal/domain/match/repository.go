package match

import "context"

// Filter narrows match listings. Empty fields match everything.
type Filter struct {
	Competition Competition
	TeamID      string
	Status      Status
}

func (f Filter) Matches(m Match) bool {
	if f.Competition != "" && m.Competition != f.Competition {
		return false
	}
	if f.TeamID != "" && !m.Involves(f.TeamID) {
		return false
	}
	if f.Status != "" && m.Status != f.Status {
		return false
	}
	return true
}

// Repository describes match persistence needs from use cases. Lists are
// ordered by date then time.
type Repository interface {
	List(ctx context.Context, filter Filter) ([]Match, error)
	GetByID(ctx context.Context, matchID string) (Match, bool, error)
	Create(ctx context.Context, item Match) error
	Update(ctx context.Context, item Match) error
	Delete(ctx context.Context, matchID string) error
	CountByTeam(ctx context.Context, teamID string) (int, error)
}
