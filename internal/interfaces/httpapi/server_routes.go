package httpapi

import (
	"net/http"

	"github.com/riskibarqy/minivoetbal/internal/observability"
)

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, metrics *observability.Metrics) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if metrics != nil {
		mux.Handle("GET /metrics", metrics.Handler())
	}
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/overview", handler.GetOverview)
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/teams/{teamID}/players", handler.ListTeamPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/matches", handler.ListMatches)
	mux.HandleFunc("GET /v1/matches/{matchID}", handler.GetMatch)
	mux.HandleFunc("GET /v1/matches/{matchID}/edit-decision", handler.GetEditDecision)
	mux.HandleFunc("GET /v1/standings", handler.GetStandings)
	mux.HandleFunc("GET /v1/brackets/{competition}", handler.GetBracket)
	mux.HandleFunc("GET /v1/suspensions", handler.ListSuspensions)
}

func registerAuthRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("POST /v1/auth/login", handler.Login)
	mux.Handle("POST /v1/auth/logout", RequireAuthenticated(http.HandlerFunc(handler.Logout)))
	mux.Handle("GET /v1/auth/me", RequireAuthenticated(http.HandlerFunc(handler.Me)))
}

// Lineup and result writes are decision gated inside MatchService; the
// middleware only rejects callers that can never pass.
func registerMatchActionRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("PUT /v1/matches/{matchID}/lineup", RequireAuthenticated(http.HandlerFunc(handler.SubmitLineup)))
	mux.Handle("PUT /v1/matches/{matchID}/result", RequireRole(officialsOnly, http.HandlerFunc(handler.SubmitResult)))
	mux.Handle("POST /v1/matches/{matchID}/lock", RequireRole(officialsOnly, http.HandlerFunc(handler.LockMatch)))
	mux.Handle("POST /v1/matches/{matchID}/unlock", RequireRole(officialsOnly, http.HandlerFunc(handler.UnlockMatch)))
}

func registerTeamManagerRoutes(mux *http.ServeMux, handler *Handler) {
	mux.Handle("GET /v1/team/matches", RequireRole(teamManagers, http.HandlerFunc(handler.ListMyTeamMatches)))
	mux.Handle("GET /v1/team/finance", RequireRole(teamManagers, http.HandlerFunc(handler.GetMyTeamFinance)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler) {
	admin := func(fn http.HandlerFunc) http.Handler {
		return RequireRole(adminOnly, fn)
	}

	mux.Handle("POST /v1/admin/teams", admin(handler.CreateTeam))
	mux.Handle("PUT /v1/admin/teams/{teamID}", admin(handler.UpdateTeam))
	mux.Handle("DELETE /v1/admin/teams/{teamID}", admin(handler.DeleteTeam))

	mux.Handle("POST /v1/admin/players", admin(handler.CreatePlayer))
	mux.Handle("PUT /v1/admin/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/admin/players/{playerID}", admin(handler.DeactivatePlayer))

	mux.Handle("POST /v1/admin/matches", admin(handler.ScheduleMatch))
	mux.Handle("PUT /v1/admin/matches/{matchID}", admin(handler.UpdateMatch))
	mux.Handle("DELETE /v1/admin/matches/{matchID}", admin(handler.DeleteMatch))

	mux.Handle("GET /v1/admin/users", admin(handler.ListUsers))
	mux.Handle("POST /v1/admin/users", admin(handler.CreateUser))

	mux.Handle("POST /v1/admin/suspensions", admin(handler.CreateSuspension))
	mux.Handle("DELETE /v1/admin/suspensions/{suspensionID}", admin(handler.DeleteSuspension))

	mux.Handle("GET /v1/admin/finance/transactions", admin(handler.ListTransactions))
	mux.Handle("POST /v1/admin/finance/transactions", admin(handler.RecordTransaction))
	mux.Handle("GET /v1/admin/finance/balances", admin(handler.ListBalances))

	mux.Handle("GET /v1/admin/jobs", admin(handler.ListJobs))
	mux.Handle("POST /v1/admin/jobs/{job}/run", admin(handler.RunJob))
}
