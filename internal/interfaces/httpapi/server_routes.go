package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/teams", handler.ListTeams)
	mux.HandleFunc("GET /v1/teams/{teamID}", handler.GetTeam)
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/players/{playerID}", handler.GetPlayer)
	mux.HandleFunc("GET /v1/fixtures", handler.ListFixtures)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}", handler.GetFixture)
	mux.HandleFunc("GET /v1/fixtures/{fixtureID}/events", handler.ListFixtureEvents)
	mux.HandleFunc("GET /v1/matchweeks", handler.ListMatchweeks)
	mux.HandleFunc("GET /v1/matchweeks/current", handler.GetCurrentMatchweek)
	mux.HandleFunc("GET /v1/matchweeks/{matchweekID}", handler.GetMatchweek)
	mux.HandleFunc("GET /v1/matchweeks/{matchweekID}/points", handler.ListMatchweekPoints)
}

func registerAuthorizedRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/userteams", RequireAuth(verifier, http.HandlerFunc(handler.CreateUserTeam)))
	mux.Handle("GET /v1/userteams/me", RequireAuth(verifier, http.HandlerFunc(handler.GetMyUserTeam)))
	mux.Handle("GET /v1/userteams/{userTeamID}", RequireAuth(verifier, http.HandlerFunc(handler.GetUserTeam)))
	mux.Handle("GET /v1/users/{userID}/team", RequireAuth(verifier, http.HandlerFunc(handler.GetUserTeamByUser)))
	mux.Handle("GET /v1/users/{userID}/team/exists", RequireAuth(verifier, http.HandlerFunc(handler.UserHasTeam)))
	mux.Handle("PATCH /v1/userteams/{userTeamID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateUserTeam)))
	mux.Handle("DELETE /v1/userteams/{userTeamID}", RequireAuth(verifier, http.HandlerFunc(handler.DeleteUserTeam)))
	mux.Handle("POST /v1/userteams/{userTeamID}/players", RequireAuth(verifier, http.HandlerFunc(handler.AddRosterPlayer)))
	mux.Handle("DELETE /v1/userteams/{userTeamID}/players/{playerID}", RequireAuth(verifier, http.HandlerFunc(handler.RemoveRosterPlayer)))
	mux.Handle("POST /v1/userteams/{userTeamID}/lock", RequireAuth(verifier, http.HandlerFunc(handler.LockUserTeam)))
	mux.Handle("GET /v1/userteams/{userTeamID}/composition", RequireAuth(verifier, http.HandlerFunc(handler.GetRosterComposition)))
	mux.Handle("GET /v1/userteams/{userTeamID}/snapshots", RequireAuth(verifier, http.HandlerFunc(handler.ListUserTeamSnapshots)))
	mux.Handle("GET /v1/userteams/{userTeamID}/points", RequireAuth(verifier, http.HandlerFunc(handler.ListUserTeamPoints)))
}

func registerAdminRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	admin := func(h http.HandlerFunc) http.Handler {
		return RequireAuth(verifier, RequireAdmin(h))
	}

	mux.Handle("POST /v1/teams", admin(handler.CreateTeam))
	mux.Handle("PUT /v1/teams/{teamID}", admin(handler.UpdateTeam))
	mux.Handle("DELETE /v1/teams/{teamID}", admin(handler.DeleteTeam))
	mux.Handle("POST /v1/players", admin(handler.CreatePlayer))
	mux.Handle("PUT /v1/players/{playerID}", admin(handler.UpdatePlayer))
	mux.Handle("DELETE /v1/players/{playerID}", admin(handler.DeletePlayer))
	mux.Handle("POST /v1/fixtures", admin(handler.CreateFixture))
	mux.Handle("PATCH /v1/fixtures/{fixtureID}", admin(handler.UpdateFixture))
	mux.Handle("DELETE /v1/fixtures/{fixtureID}", admin(handler.DeleteFixture))
	mux.Handle("POST /v1/matchweeks", admin(handler.CreateMatchweek))
	mux.Handle("PATCH /v1/matchweeks/{matchweekID}", admin(handler.UpdateMatchweek))
	mux.Handle("DELETE /v1/matchweeks/{matchweekID}", admin(handler.DeleteMatchweek))
	mux.Handle("POST /v1/matchweeks/{matchweekID}/complete", admin(handler.CompleteMatchweek))
	mux.Handle("POST /v1/matchweeks/{matchweekID}/recalculate", admin(handler.RecalculateMatchweekPoints))
	mux.Handle("GET /v1/matchweeks/{matchweekID}/snapshots", admin(handler.ListMatchweekSnapshots))
	mux.Handle("POST /v1/events", admin(handler.RecordMatchEvent))
	mux.Handle("DELETE /v1/events/{eventID}", admin(handler.DeleteMatchEvent))
	mux.Handle("POST /v1/userteams/{userTeamID}/unlock", admin(handler.UnlockUserTeam))
}
