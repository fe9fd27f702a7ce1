package suspension

import "context"

// Repository describes suspension persistence. Lists are ordered by
// creation time.
type Repository interface {
	List(ctx context.Context) ([]Suspension, error)
	ListByPlayer(ctx context.Context, playerID string) ([]Suspension, error)
	GetByID(ctx context.Context, suspensionID string) (Suspension, bool, error)
	Create(ctx context.Context, item Suspension) error
	Update(ctx context.Context, item Suspension) error
	Delete(ctx context.Context, suspensionID string) error
}
