package finance

import "context"

// Repository stores transactions. An empty team id lists every team.
type Repository interface {
	List(ctx context.Context, teamID string) ([]Transaction, error)
	Create(ctx context.Context, item Transaction) error
}
