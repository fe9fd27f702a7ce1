package httpapi

import (
	"net/http"

	"github.com/riskibarqy/minivoetbal/internal/domain/match"
)

// ListMyTeamMatches returns the manager's own fixtures with their edit decisions.
func (h *Handler) ListMyTeamMatches(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMyTeamMatches")
	defer span.End()

	actor := actorFromContext(ctx)
	items, err := h.matchService.List(ctx, match.Filter{TeamID: actor.TeamID}, actor)
	if err != nil {
		h.logger.ErrorContext(ctx, "list team matches failed", "team_id", actor.TeamID, "error", err)
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

func (h *Handler) GetMyTeamFinance(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMyTeamFinance")
	defer span.End()

	actor := actorFromContext(ctx)
	account, err := h.financeService.TeamAccount(ctx, actor)
	if err != nil {
		h.logger.WarnContext(ctx, "get team finance failed", "team_id", actor.TeamID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, teamAccountDTO{
		Balance:      balanceToDTO(account.Balance),
		Transactions: transactionsToDTO(account.Transactions),
	})
}
