package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	qb "github.com/riskibarqy/minivoetbal/internal/platform/querybuilder"
)

type MatchRepository struct {
	db *sqlx.DB
}

func NewMatchRepository(db *sqlx.DB) *MatchRepository {
	return &MatchRepository{db: db}
}

func (r *MatchRepository) List(ctx context.Context, filter match.Filter) ([]match.Match, error) {
	conditions := []qb.Condition{qb.IsNull("deleted_at")}
	if filter.Competition != "" {
		conditions = append(conditions, qb.Eq("competition", string(filter.Competition)))
	}
	if filter.TeamID != "" {
		conditions = append(conditions, qb.Or(
			qb.Eq("home_team_id", filter.TeamID),
			qb.Eq("away_team_id", filter.TeamID),
		))
	}
	if filter.Status != "" {
		conditions = append(conditions, qb.Eq("status", string(filter.Status)))
	}

	query, args, err := matchBaseSelectBuilder().
		Where(conditions...).
		OrderBy("match_date", "kickoff_time", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select matches query: %w", err)
	}

	var rows []matchTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		item, err := matchFromRow(row)
		if err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, nil
}

func (r *MatchRepository) GetByID(ctx context.Context, matchID string) (match.Match, bool, error) {
	query, args, err := matchBaseSelectBuilder().
		Where(qb.Eq("id", matchID), qb.IsNull("deleted_at")).
		Limit(1).
		ToSQL()
	if err != nil {
		return match.Match{}, false, fmt.Errorf("build select match by id query: %w", err)
	}

	var row matchTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return match.Match{}, false, nil
		}
		return match.Match{}, false, fmt.Errorf("select match by id: %w", err)
	}

	item, err := matchFromRow(row)
	if err != nil {
		return match.Match{}, false, err
	}
	return item, true, nil
}

func (r *MatchRepository) Create(ctx context.Context, item match.Match) error {
	events, err := encodeMatchEvents(item.Events)
	if err != nil {
		return err
	}

	query, args, err := qb.InsertModel("matches", matchInsertModel{
		ID:               item.ID,
		Competition:      string(item.Competition),
		Round:            item.Round,
		BracketSlot:      item.BracketSlot,
		MatchDate:        item.Date,
		KickoffTime:      item.Time,
		Location:         item.Location,
		HomeTeamID:       item.HomeTeamID,
		AwayTeamID:       item.AwayTeamID,
		HomeScore:        item.HomeScore,
		AwayScore:        item.AwayScore,
		Status:           string(item.Status),
		IsManuallyLocked: item.IsManuallyLocked,
		RefereeID:        item.RefereeID,
		HomeLineup:       stringArray(item.HomeLineup),
		AwayLineup:       stringArray(item.AwayLineup),
		Events:           events,
		LockedBy:         optionalString(item.LockedBy),
		LockedAt:         item.LockedAt,
		CreatedAt:        item.CreatedAt,
		UpdatedAt:        item.UpdatedAt,
	}, "")
	if err != nil {
		return fmt.Errorf("build insert match query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return writeError(err, "insert match")
	}
	return nil
}

func (r *MatchRepository) Update(ctx context.Context, item match.Match) error {
	events, err := encodeMatchEvents(item.Events)
	if err != nil {
		return err
	}

	query, args, err := qb.Update("matches").
		Set("competition", string(item.Competition)).
		Set("round", item.Round).
		Set("bracket_slot", item.BracketSlot).
		Set("match_date", item.Date).
		Set("kickoff_time", item.Time).
		Set("location", item.Location).
		Set("home_team_id", item.HomeTeamID).
		Set("away_team_id", item.AwayTeamID).
		Set("home_score", item.HomeScore).
		Set("away_score", item.AwayScore).
		Set("status", string(item.Status)).
		Set("is_manually_locked", item.IsManuallyLocked).
		Set("referee_id", item.RefereeID).
		Set("home_lineup", stringArray(item.HomeLineup)).
		Set("away_lineup", stringArray(item.AwayLineup)).
		Set("events", events).
		Set("locked_by", optionalString(item.LockedBy)).
		Set("locked_at", item.LockedAt).
		Set("updated_at", item.UpdatedAt).
		Where(qb.Eq("id", item.ID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update match query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return writeError(err, "update match")
	}
	return requireAffected(result, "update match "+item.ID)
}

func (r *MatchRepository) Delete(ctx context.Context, matchID string) error {
	query, args, err := qb.Update("matches").
		SetExpr("deleted_at", "NOW()").
		Where(qb.Eq("id", matchID), qb.IsNull("deleted_at")).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete match query: %w", err)
	}
	result, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return writeError(err, "delete match")
	}
	return requireAffected(result, "delete match "+matchID)
}

func (r *MatchRepository) CountByTeam(ctx context.Context, teamID string) (int, error) {
	query, args, err := qb.Select("COUNT(1)").From("matches").
		Where(
			qb.Or(qb.Eq("home_team_id", teamID), qb.Eq("away_team_id", teamID)),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count matches by team query: %w", err)
	}

	var count int
	if err := r.db.GetContext(ctx, &count, query, args...); err != nil {
		return 0, fmt.Errorf("count matches by team: %w", err)
	}
	return count, nil
}

func matchBaseSelectBuilder() *qb.SelectBuilder {
	return qb.Select("*").From("matches")
}

func matchFromRow(row matchTableModel) (match.Match, error) {
	events, err := decodeMatchEvents(row.Events)
	if err != nil {
		return match.Match{}, fmt.Errorf("decode events of match %s: %w", row.ID, err)
	}

	return match.Match{
		ID:               row.ID,
		Competition:      match.Competition(row.Competition),
		Round:            row.Round,
		BracketSlot:      row.BracketSlot,
		Date:             row.MatchDate,
		Time:             row.KickoffTime,
		Location:         row.Location,
		HomeTeamID:       row.HomeTeamID,
		AwayTeamID:       row.AwayTeamID,
		HomeScore:        nullInt64ToPtr(row.HomeScore),
		AwayScore:        nullInt64ToPtr(row.AwayScore),
		Status:           match.Status(row.Status),
		IsManuallyLocked: row.IsManuallyLocked,
		RefereeID:        row.RefereeID,
		HomeLineup:       append([]string(nil), row.HomeLineup...),
		AwayLineup:       append([]string(nil), row.AwayLineup...),
		Events:           events,
		LockedBy:         nullStringValue(row.LockedBy),
		LockedAt:         row.LockedAt,
		CreatedAt:        row.CreatedAt,
		UpdatedAt:        row.UpdatedAt,
	}, nil
}

func encodeMatchEvents(events []match.Event) (string, error) {
	records := make([]matchEventRecord, 0, len(events))
	for _, e := range events {
		records = append(records, matchEventRecord{
			Type:     string(e.Type),
			PlayerID: e.PlayerID,
			TeamID:   e.TeamID,
			Minute:   e.Minute,
		})
	}
	raw, err := sonic.MarshalString(records)
	if err != nil {
		return "", fmt.Errorf("encode match events: %w", err)
	}
	return raw, nil
}

func decodeMatchEvents(raw string) ([]match.Event, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	var records []matchEventRecord
	if err := sonic.UnmarshalString(raw, &records); err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, nil
	}

	out := make([]match.Event, 0, len(records))
	for _, rec := range records {
		out = append(out, match.Event{
			Type:     match.EventType(rec.Type),
			PlayerID: rec.PlayerID,
			TeamID:   rec.TeamID,
			Minute:   rec.Minute,
		})
	}
	return out, nil
}
