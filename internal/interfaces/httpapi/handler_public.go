package httpapi

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
)

func (h *Handler) GetOverview(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetOverview")
	defer span.End()

	overview, err := h.overviewService.Get(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get overview failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, overviewToDTO(overview))
}

func (h *Handler) ListTeams(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeams")
	defer span.End()

	items, err := h.teamService.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "list teams failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamsToDTO(items))
}

func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetTeam")
	defer span.End()

	teamID := pathID(r, "teamID")
	item, err := h.teamService.Get(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "get team failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamToDTO(item))
}

func (h *Handler) ListTeamPlayers(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListTeamPlayers")
	defer span.End()

	teamID := pathID(r, "teamID")
	items, err := h.playerService.ListByTeam(ctx, teamID)
	if err != nil {
		h.logger.WarnContext(ctx, "list team players failed", "team_id", teamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playersToDTO(items))
}

func (h *Handler) GetPlayer(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetPlayer")
	defer span.End()

	playerID := pathID(r, "playerID")
	item, err := h.playerService.Get(ctx, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "get player failed", "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, playerToDTO(item))
}

func (h *Handler) ListMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMatches")
	defer span.End()

	filter, err := parseMatchFilter(r)
	if err != nil {
		writeError(ctx, w, err)
		return
	}

	actor := actorFromContext(ctx)
	items, err := h.matchService.List(ctx, filter, actor)
	if err != nil {
		h.logger.ErrorContext(ctx, "list matches failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	out := make([]matchDTO, 0, len(items))
	for _, item := range items {
		h.observeDecision(actor, item.Decision)
		out = append(out, matchViewToDTO(item))
	}
	writeSuccess(ctx, w, http.StatusOK, out)
}

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	matchID := pathID(r, "matchID")
	actor := actorFromContext(ctx)
	item, err := h.matchService.Get(ctx, matchID, actor)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.observeDecision(actor, item.Decision)
	writeSuccess(ctx, w, http.StatusOK, matchViewToDTO(item))
}

func (h *Handler) GetEditDecision(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetEditDecision")
	defer span.End()

	matchID := pathID(r, "matchID")
	actor := actorFromContext(ctx)
	decision, err := h.matchService.Decision(ctx, matchID, actor)
	if err != nil {
		h.logger.WarnContext(ctx, "get edit decision failed", "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	h.observeDecision(actor, decision)
	writeSuccess(ctx, w, http.StatusOK, decisionToDTO(decision))
}

func (h *Handler) GetStandings(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetStandings")
	defer span.End()

	rows, err := h.standingService.Table(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "get standings failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, standingsToDTO(rows))
}

func (h *Handler) GetBracket(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetBracket")
	defer span.End()

	competition := pathID(r, "competition")
	item, err := h.bracketService.Get(ctx, competition)
	if err != nil {
		h.logger.WarnContext(ctx, "get bracket failed", "competition", competition, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, bracketToDTO(item))
}

func (h *Handler) ListSuspensions(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListSuspensions")
	defer span.End()

	activeOnly := true
	if raw := strings.TrimSpace(r.URL.Query().Get("active")); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			writeError(ctx, w, fmt.Errorf("%w: active must be a boolean", usecase.ErrInvalidInput))
			return
		}
		activeOnly = parsed
	}

	items, err := h.suspensionService.List(ctx, activeOnly)
	if err != nil {
		h.logger.ErrorContext(ctx, "list suspensions failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, suspensionsToDTO(items))
}

func (h *Handler) observeDecision(actor access.Actor, decision access.EditDecision) {
	h.metrics.ObserveDecision(actor.Role.String(), decision.CanEdit, decision.IsAutoLocked)
}

// parseMatchFilter reads competition, team_id and status. Missing
// parameters leave the filter open.
func parseMatchFilter(r *http.Request) (match.Filter, error) {
	query := r.URL.Query()
	filter := match.Filter{TeamID: strings.TrimSpace(query.Get("team_id"))}

	if raw := strings.TrimSpace(query.Get("competition")); raw != "" {
		competition, err := match.ParseCompetition(raw)
		if err != nil {
			return match.Filter{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		filter.Competition = competition
	}
	if raw := strings.TrimSpace(query.Get("status")); raw != "" {
		status, err := match.ParseStatus(raw)
		if err != nil {
			return match.Filter{}, fmt.Errorf("%w: %v", usecase.ErrInvalidInput, err)
		}
		filter.Status = status
	}

	return filter, nil
}
