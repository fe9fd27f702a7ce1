package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/minivoetbal/internal/domain/suspension"
	qb "github.com/riskibarqy/minivoetbal/internal/platform/querybuilder"
)

type SuspensionRepository struct {
	db *sqlx.DB
}

func NewSuspensionRepository(db *sqlx.DB) *SuspensionRepository {
	return &SuspensionRepository{db: db}
}

func (r *SuspensionRepository) List(ctx context.Context) ([]suspension.Suspension, error) {
	return r.list(ctx, nil, "select suspensions")
}

func (r *SuspensionRepository) ListByPlayer(ctx context.Context, playerID string) ([]suspension.Suspension, error) {
	return r.list(ctx, []qb.Condition{qb.Eq("player_id", playerID)}, "select suspensions by player")
}

func (r *SuspensionRepository) GetByID(ctx context.Context, suspensionID string) (suspension.Suspension, bool, error) {
	query, args, err := qb.Select("*").From("suspensions").Where(qb.Eq("id", suspensionID)).Limit(1).ToSQL()
	if err != nil {
		return suspension.Suspension{}, false, fmt.Errorf("build select suspension by id query: %w", err)
	}

	var row suspensionTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return suspension.Suspension{}, false, nil
		}
		return suspension.Suspension{}, false, fmt.Errorf("select suspension by id: %w", err)
	}
	return suspensionFromRow(row), true, nil
}

func (r *SuspensionRepository) Create(ctx context.Context, item suspension.Suspension) error {
	query, args, err := qb.InsertModel("suspensions", suspensionInsertModel{
		ID:             item.ID,
		PlayerID:       item.PlayerID,
		TeamID:         item.TeamID,
		Reason:         item.Reason,
		Matches:        item.Matches,
		ServedMatchIDs: stringArray(item.ServedMatchIDs),
		SourceMatchID:  optionalString(item.SourceMatchID),
		CreatedAt:      item.CreatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert suspension query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(err, "insert suspension")
	}
	return nil
}

func (r *SuspensionRepository) Update(ctx context.Context, item suspension.Suspension) error {
	query, args, err := qb.Update("suspensions").
		Set("reason", item.Reason).
		Set("matches", item.Matches).
		Set("served_match_ids", stringArray(item.ServedMatchIDs)).
		Where(qb.Eq("id", item.ID)).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update suspension query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return writeError(err, "update suspension")
	}
	return requireAffected(result, "update suspension "+item.ID)
}

func (r *SuspensionRepository) Delete(ctx context.Context, suspensionID string) error {
	query, args, err := qb.DeleteFrom("suspensions").Where(qb.Eq("id", suspensionID)).ToSQL()
	if err != nil {
		return fmt.Errorf("build delete suspension query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return writeError(err, "delete suspension")
	}
	return requireAffected(result, "delete suspension "+suspensionID)
}

func (r *SuspensionRepository) list(ctx context.Context, conditions []qb.Condition, op string) ([]suspension.Suspension, error) {
	query, args, err := qb.Select("*").From("suspensions").
		Where(conditions...).
		OrderBy("created_at", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build %s query: %w", op, err)
	}

	var rows []suspensionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]suspension.Suspension, 0, len(rows))
	for _, row := range rows {
		out = append(out, suspensionFromRow(row))
	}
	return out, nil
}

func suspensionFromRow(row suspensionTableModel) suspension.Suspension {
	return suspension.Suspension{
		ID:             row.ID,
		PlayerID:       row.PlayerID,
		TeamID:         row.TeamID,
		Reason:         row.Reason,
		Matches:        row.Matches,
		ServedMatchIDs: append([]string(nil), row.ServedMatchIDs...),
		SourceMatchID:  nullStringValue(row.SourceMatchID),
		CreatedAt:      row.CreatedAt,
	}
}
