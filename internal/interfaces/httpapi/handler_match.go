package httpapi

import (
	"net/http"

	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
)

func (h *Handler) SubmitLineup(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitLineup")
	defer span.End()

	matchID := pathID(r, "matchID")
	var req lineupRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	actor := actorFromContext(ctx)
	item, err := h.matchService.SubmitLineup(ctx, usecase.SubmitLineupInput{
		MatchID:   matchID,
		TeamID:    req.TeamID,
		PlayerIDs: req.PlayerIDs,
	}, actor)
	if err != nil {
		h.logger.WarnContext(ctx, "submit lineup failed",
			"match_id", matchID,
			"team_id", req.TeamID,
			"role", actor.Role,
			"error", err,
		)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitResult")
	defer span.End()

	matchID := pathID(r, "matchID")
	var req resultRequest
	if err := h.decodeRequest(ctx, w, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	events := make([]match.Event, 0, len(req.Events))
	for _, event := range req.Events {
		events = append(events, match.Event{
			Type:     match.EventType(event.Type),
			PlayerID: event.PlayerID,
			TeamID:   event.TeamID,
			Minute:   event.Minute,
		})
	}

	actor := actorFromContext(ctx)
	item, err := h.matchService.SubmitResult(ctx, usecase.SubmitResultInput{
		MatchID:   matchID,
		HomeScore: req.HomeScore,
		AwayScore: req.AwayScore,
		Events:    events,
	}, actor)
	if err != nil {
		h.logger.WarnContext(ctx, "submit result failed", "match_id", matchID, "role", actor.Role, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}

func (h *Handler) LockMatch(w http.ResponseWriter, r *http.Request) {
	h.setLock(w, r, true)
}

func (h *Handler) UnlockMatch(w http.ResponseWriter, r *http.Request) {
	h.setLock(w, r, false)
}

func (h *Handler) setLock(w http.ResponseWriter, r *http.Request, locked bool) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMatchLock")
	defer span.End()

	matchID := pathID(r, "matchID")
	item, err := h.matchService.SetLock(ctx, matchID, locked, actorFromContext(ctx))
	if err != nil {
		h.logger.WarnContext(ctx, "set match lock failed", "match_id", matchID, "locked", locked, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(item))
}
