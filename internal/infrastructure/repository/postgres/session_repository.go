package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/session"
	qb "github.com/riskibarqy/minivoetbal/internal/platform/querybuilder"
)

type SessionRepository struct {
	db *sqlx.DB
}

func NewSessionRepository(db *sqlx.DB) *SessionRepository {
	return &SessionRepository{db: db}
}

func (r *SessionRepository) Create(ctx context.Context, item session.Session) error {
	query, args, err := qb.InsertModel("sessions", sessionInsertModel{
		Token:     item.Token,
		UserID:    item.UserID,
		Role:      string(item.Role),
		TeamID:    optionalString(item.TeamID),
		ExpiresAt: item.ExpiresAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(err, "insert session")
	}
	return nil
}

func (r *SessionRepository) Get(ctx context.Context, token string) (session.Session, bool, error) {
	query, args, err := qb.Select("*").From("sessions").Where(qb.Eq("token", token)).Limit(1).ToSQL()
	if err != nil {
		return session.Session{}, false, fmt.Errorf("build select session query: %w", err)
	}

	var row sessionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return session.Session{}, false, nil
		}
		return session.Session{}, false, fmt.Errorf("select session: %w", err)
	}

	return session.Session{
		Token:     row.Token,
		UserID:    row.UserID,
		Role:      access.ParseRole(row.Role),
		TeamID:    nullStringValue(row.TeamID),
		ExpiresAt: row.ExpiresAt,
	}, true, nil
}

func (r *SessionRepository) Delete(ctx context.Context, token string) error {
	query, args, err := qb.DeleteFrom("sessions").Where(qb.Eq("token", token)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete session query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(err, "delete session")
	}
	return nil
}

func (r *SessionRepository) DeleteExpired(ctx context.Context, now time.Time) (int, error) {
	query, args, err := qb.DeleteFrom("sessions").Where(qb.Lte("expires_at", now)).ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build delete expired sessions query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, writeError(err, "delete expired sessions")
	}
	removed, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions rows affected: %w", err)
	}
	return int(removed), nil
}
