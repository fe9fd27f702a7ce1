package session

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, item Session) error
	Get(ctx context.Context, token string) (Session, bool, error)
	Delete(ctx context.Context, token string) error
	DeleteExpired(ctx context.Context, now time.Time) (int, error)
}
