package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
}

func registerPublicRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/guilds/{guildID}/leaderboard", handler.GetLeaderboard)
	mux.HandleFunc("GET /v1/guilds/{guildID}/queue", handler.GetQueue)
	mux.HandleFunc("GET /v1/guilds/{guildID}/counts", handler.GetCounts)
	mux.HandleFunc("GET /v1/guilds/{guildID}/maps", handler.ListMaps)
	mux.HandleFunc("GET /v1/guilds/{guildID}/lobbies", handler.ListLobbies)
	mux.HandleFunc("GET /v1/guilds/{guildID}/lobbies/{lobbyID}", handler.GetLobby)
	mux.HandleFunc("GET /v1/guilds/{guildID}/matches/{matchID}", handler.GetMatch)
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalServiceToken string) {
	guarded := func(h http.HandlerFunc) http.Handler {
		return RequireInternalServiceToken(internalServiceToken, h)
	}

	mux.Handle("POST /v1/internal/guilds", guarded(handler.RegisterGuild))
	mux.Handle("DELETE /v1/internal/guilds/{guildID}", guarded(handler.RemoveGuild))

	mux.Handle("POST /v1/internal/guilds/{guildID}/queue", guarded(handler.JoinQueue))
	mux.Handle("DELETE /v1/internal/guilds/{guildID}/queue/{playerID}", guarded(handler.LeaveQueue))

	mux.Handle("POST /v1/internal/guilds/{guildID}/lobbies", guarded(handler.FormLobby))
	mux.Handle("POST /v1/internal/guilds/{guildID}/lobbies/{lobbyID}/votes", guarded(handler.CastMapVote))
	mux.Handle("PUT /v1/internal/guilds/{guildID}/lobbies/{lobbyID}/channels", guarded(handler.AttachLobbyChannels))
	mux.Handle("POST /v1/internal/guilds/{guildID}/lobbies/{lobbyID}/start", guarded(handler.StartMatch))
	mux.Handle("DELETE /v1/internal/guilds/{guildID}/lobbies/{lobbyID}", guarded(handler.CancelLobby))

	mux.Handle("PUT /v1/internal/guilds/{guildID}/matches/{matchID}/channels", guarded(handler.AttachMatchChannels))
	mux.Handle("POST /v1/internal/guilds/{guildID}/matches/{matchID}/result", guarded(handler.SubmitResult))
	mux.Handle("POST /v1/internal/guilds/{guildID}/matches/{matchID}/result/confirm", guarded(handler.ConfirmResult))
	mux.Handle("POST /v1/internal/guilds/{guildID}/matches/{matchID}/result/reject", guarded(handler.RejectResult))
	mux.Handle("POST /v1/internal/guilds/{guildID}/matches/{matchID}/result/resolve", guarded(handler.ResolveResult))
	mux.Handle("DELETE /v1/internal/guilds/{guildID}/matches/{matchID}", guarded(handler.CancelMatch))

	mux.Handle("POST /v1/internal/guilds/{guildID}/maps", guarded(handler.AddMap))
	mux.Handle("PUT /v1/internal/guilds/{guildID}/maps/{mapID}/enabled", guarded(handler.SetMapEnabled))
	mux.Handle("PUT /v1/internal/guilds/{guildID}/maps/{mapID}/ratings", guarded(handler.RateMap))
}
