package httpapi

import (
	"net/http"
	"strconv"
)

func (h *Handler) ListMaps(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListMaps")
	defer span.End()

	guildID := r.PathValue("guildID")
	maps, err := h.mapPoolService.ListMaps(ctx, guildID)
	if err != nil {
		h.logger.WarnContext(ctx, "list maps failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]mapDTO, 0, len(maps))
	for _, m := range maps {
		items = append(items, mapToDTO(m))
	}

	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) AddMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.AddMap")
	defer span.End()

	guildID := r.PathValue("guildID")
	var req addMapRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	m, err := h.mapPoolService.AddMap(ctx, guildID, req.Name)
	if err != nil {
		h.logger.WarnContext(ctx, "add map failed", "guild_id", guildID, "name", req.Name, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, mapToDTO(m))
}

func (h *Handler) SetMapEnabled(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SetMapEnabled")
	defer span.End()

	guildID := r.PathValue("guildID")
	mapID := r.PathValue("mapID")
	var req setMapEnabledRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.mapPoolService.SetMapEnabled(ctx, guildID, mapID, *req.Enabled); err != nil {
		h.logger.WarnContext(ctx, "set map enabled failed", "guild_id", guildID, "map_id", mapID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) RateMap(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.RateMap")
	defer span.End()

	guildID := r.PathValue("guildID")
	mapID := r.PathValue("mapID")
	var req rateMapRequest
	if err := h.decodeRequest(ctx, r, &req); err != nil {
		writeError(ctx, w, err)
		return
	}

	if err := h.mapPoolService.RateMap(ctx, guildID, req.PlayerID, mapID, *req.Score); err != nil {
		h.logger.WarnContext(ctx, "rate map failed",
			"guild_id", guildID, "map_id", mapID, "player_id", req.PlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, nil)
}

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetLeaderboard")
	defer span.End()

	guildID := r.PathValue("guildID")
	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err == nil {
			limit = parsed
		}
	}

	entries, err := h.leaderboardService.Top(ctx, guildID, limit)
	if err != nil {
		h.logger.WarnContext(ctx, "get leaderboard failed", "guild_id", guildID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, entries)
}
