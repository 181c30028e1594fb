package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/openmix/mixqueue/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	byGuild map[string]map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	byGuild := make(map[string]map[string]player.Player)
	for _, p := range players {
		if _, ok := byGuild[p.GuildID]; !ok {
			byGuild[p.GuildID] = make(map[string]player.Player)
		}
		byGuild[p.GuildID][p.ID] = p
	}

	return &PlayerRepository{byGuild: byGuild}
}

func (r *PlayerRepository) GetByID(_ context.Context, guildID, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byGuild[guildID][playerID]
	return p, ok, nil
}

func (r *PlayerRepository) GetByIDs(_ context.Context, guildID string, playerIDs []string) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.byGuild[guildID]
	out := make([]player.Player, 0, len(playerIDs))
	for _, id := range playerIDs {
		p, ok := index[id]
		if !ok {
			continue
		}
		out = append(out, p)
	}

	return out, nil
}

func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byGuild[p.GuildID]; !ok {
		r.byGuild[p.GuildID] = make(map[string]player.Player)
	}
	r.byGuild[p.GuildID][p.ID] = p

	return nil
}

func (r *PlayerRepository) TopByRating(_ context.Context, guildID string, limit int) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.byGuild[guildID]
	out := make([]player.Player, 0, len(index))
	for _, p := range index {
		out = append(out, p)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Rating != out[j].Rating {
			return out[i].Rating > out[j].Rating
		}
		return out[i].ID < out[j].ID
	})
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}

	return out, nil
}
