package httpapi

import (
	"net/http"
)

func (h *Handler) GetMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetMatch")
	defer span.End()

	guildID := r.PathValue("guildID")
	matchID := r.PathValue("matchID")
	snap, err := h.matchmakingService.MatchInfo(ctx, guildID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "get match failed", "guild_id", guildID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, snap))
}

func (h *Handler) AttachMatchChannels(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AttachMatchChannels")
	defer span.End()

	guildID := r.PathValue("guildID")
	matchID := r.PathValue("matchID")
	var req matchChannelsRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchmakingService.AttachMatchChannels(ctx, guildID, matchID, req.VoiceChannelIDs, req.TextChannelID); err != nil {
		h.logger.WarnContext(ctx, "attach match channels failed", "guild_id", guildID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) SubmitResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitResult")
	defer span.End()

	guildID := r.PathValue("guildID")
	matchID := r.PathValue("matchID")
	var req submitResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchmakingService.SubmitResult(ctx, guildID, matchID, req.PlayerID, req.WinnerTeam); err != nil {
		h.logger.WarnContext(ctx, "submit result failed",
			"guild_id", guildID, "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	snap, err := h.matchmakingService.MatchInfo(ctx, guildID, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, snap))
}

// ConfirmResult finalizes a submitted claim: ratings are updated and the
// match is settled.
func (h *Handler) ConfirmResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ConfirmResult")
	defer span.End()

	guildID := r.PathValue("guildID")
	matchID := r.PathValue("matchID")
	var req resultActionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, voice, err := h.matchmakingService.ConfirmResult(ctx, guildID, matchID, req.PlayerID)
	if err != nil {
		h.logger.WarnContext(ctx, "confirm result failed",
			"guild_id", guildID, "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementDTO{Result: event, VoiceChannelIDs: voice})
}

func (h *Handler) RejectResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RejectResult")
	defer span.End()

	guildID := r.PathValue("guildID")
	matchID := r.PathValue("matchID")
	var req resultActionRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.matchmakingService.RejectResult(ctx, guildID, matchID, req.PlayerID); err != nil {
		h.logger.WarnContext(ctx, "reject result failed",
			"guild_id", guildID, "match_id", matchID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	snap, err := h.matchmakingService.MatchInfo(ctx, guildID, matchID)
	if err != nil {
		writeError(ctx, w, err)
		return
	}
	writeSuccess(ctx, w, http.StatusOK, matchToDTO(ctx, snap))
}

// ResolveResult is the admin override: it settles the match directly, even
// one the confirmation protocol flagged unresolvable.
func (h *Handler) ResolveResult(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ResolveResult")
	defer span.End()

	guildID := r.PathValue("guildID")
	matchID := r.PathValue("matchID")
	var req resolveResultRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	event, voice, err := h.matchmakingService.ResolveResult(ctx, guildID, matchID, req.WinnerTeam)
	if err != nil {
		h.logger.WarnContext(ctx, "resolve result failed", "guild_id", guildID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, settlementDTO{Result: event, VoiceChannelIDs: voice})
}

func (h *Handler) CancelMatch(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.CancelMatch")
	defer span.End()

	guildID := r.PathValue("guildID")
	matchID := r.PathValue("matchID")
	voice, err := h.matchmakingService.CancelMatch(ctx, guildID, matchID)
	if err != nil {
		h.logger.WarnContext(ctx, "cancel match failed", "guild_id", guildID, "match_id", matchID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, map[string]any{"voice_channel_ids": voice})
}
