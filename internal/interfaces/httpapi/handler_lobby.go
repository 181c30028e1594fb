package httpapi

import (
	"net/http"
)

// FormLobby pulls the next full group from the queue into a lobby with a
// shortlist of candidate maps.
func (h *Handler) FormLobby(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.FormLobby")
	defer span.End()

	guildID := r.PathValue("guildID")
	snap, err := h.matchmakingService.TryFormLobby(ctx, guildID)
	if err != nil {
		h.logger.WarnContext(ctx, "form lobby failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, lobbyToDTO(ctx, snap))
}

func (h *Handler) ListLobbies(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListLobbies")
	defer span.End()

	guildID := r.PathValue("guildID")
	snaps, err := h.matchmakingService.Lobbies(ctx, guildID)
	if err != nil {
		h.logger.WarnContext(ctx, "list lobbies failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]lobbyDTO, 0, len(snaps))
	for _, snap := range snaps {
		items = append(items, lobbyToDTO(ctx, snap))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetLobby(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLobby")
	defer span.End()

	guildID := r.PathValue("guildID")
	lobbyID := r.PathValue("lobbyID")
	snap, err := h.matchmakingService.LobbyInfo(ctx, guildID, lobbyID)
	if err != nil {
		h.logger.WarnContext(ctx, "get lobby failed", "guild_id", guildID, "lobby_id", lobbyID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lobbyToDTO(ctx, snap))
}

func (h *Handler) CastMapVote(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CastMapVote")
	defer span.End()

	guildID := r.PathValue("guildID")
	lobbyID := r.PathValue("lobbyID")
	var req castMapVoteRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchmakingService.CastMapVote(ctx, guildID, lobbyID, req.PlayerID, req.MapID); err != nil {
		h.logger.WarnContext(ctx, "cast map vote failed",
			"guild_id", guildID, "lobby_id", lobbyID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	snap, err := h.matchmakingService.LobbyInfo(ctx, guildID, lobbyID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, lobbyToDTO(ctx, snap))
}

func (h *Handler) AttachLobbyChannels(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AttachLobbyChannels")
	defer span.End()

	guildID := r.PathValue("guildID")
	lobbyID := r.PathValue("lobbyID")
	var req lobbyChannelsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchmakingService.AttachLobbyChannels(ctx, guildID, lobbyID, req.VoiceChannelID, req.TextChannelID); err != nil {
		h.logger.WarnContext(ctx, "attach lobby channels failed", "guild_id", guildID, "lobby_id", lobbyID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

// StartMatch resolves the lobby's vote and promotes it to an active match
// with balanced teams.
func (h *Handler) StartMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.StartMatch")
	defer span.End()

	guildID := r.PathValue("guildID")
	lobbyID := r.PathValue("lobbyID")
	snap, err := h.matchmakingService.StartMatch(ctx, guildID, lobbyID)
	if err != nil {
		h.logger.WarnContext(ctx, "start match failed", "guild_id", guildID, "lobby_id", lobbyID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, matchToDTO(ctx, snap))
}

func (h *Handler) CancelLobby(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelLobby")
	defer span.End()

	guildID := r.PathValue("guildID")
	lobbyID := r.PathValue("lobbyID")
	snap, err := h.matchmakingService.CancelLobby(ctx, guildID, lobbyID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel lobby failed", "guild_id", guildID, "lobby_id", lobbyID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, lobbyToDTO(ctx, snap))
}
