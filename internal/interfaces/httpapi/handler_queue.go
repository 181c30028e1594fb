package httpapi

import (
	"net/http"
	"strings"
)

func (h *Handler) RegisterGuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RegisterGuild")
	defer span.End()

	var req registerGuildRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	created, err := h.matchmakingService.RegisterGuild(ctx, req.GuildID)
	if err != nil {
		h.logger.WarnContext(ctx, "register guild failed", "guild_id", req.GuildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	writeSuccess(ctx, w, status, registeredDTO{GuildID: strings.TrimSpace(req.GuildID), Created: created})
}

func (h *Handler) RemoveGuild(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RemoveGuild")
	defer span.End()

	guildID := r.PathValue("guildID")
	removed, err := h.matchmakingService.RemoveGuild(ctx, guildID)
	if err != nil {
		h.logger.WarnContext(ctx, "remove guild failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, removedDTO{Removed: removed})
}

func (h *Handler) JoinQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.JoinQueue")
	defer span.End()

	guildID := r.PathValue("guildID")
	var req joinQueueRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	size, err := h.matchmakingService.JoinQueue(ctx, guildID, req.PlayerID, req.DisplayName)
	if err != nil {
		h.logger.WarnContext(ctx, "join queue failed", "guild_id", guildID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, queueJoinedDTO{QueueSize: size})
}

func (h *Handler) LeaveQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.LeaveQueue")
	defer span.End()

	guildID := r.PathValue("guildID")
	playerID := r.PathValue("playerID")
	removed, err := h.matchmakingService.LeaveQueue(ctx, guildID, playerID)
	if err != nil {
		h.logger.WarnContext(ctx, "leave queue failed", "guild_id", guildID, "player_id", playerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, removedDTO{Removed: removed})
}

func (h *Handler) GetQueue(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetQueue")
	defer span.End()

	guildID := r.PathValue("guildID")
	snapshot, err := h.matchmakingService.QueueSnapshot(ctx, guildID)
	if err != nil {
		h.logger.WarnContext(ctx, "get queue failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, participantsToDTO(snapshot))
}

func (h *Handler) GetCounts(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetCounts")
	defer span.End()

	guildID := r.PathValue("guildID")
	queued, lobbies, matches, err := h.matchmakingService.GuildCounts(ctx, guildID)
	if err != nil {
		h.logger.WarnContext(ctx, "get counts failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, countsDTO{
		Queued:        queued,
		OpenLobbies:   lobbies,
		ActiveMatches: matches,
	})
}
