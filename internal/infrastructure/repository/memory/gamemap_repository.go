package memory

import (
	"context"
	"sync"

	"github.com/openmix/mixqueue/internal/domain/gamemap"
)

type prefKey struct {
	playerID string
	mapID    string
}

type GameMapRepository struct {
	mu      sync.RWMutex
	maps    map[string][]gamemap.Map
	prefs   map[string]map[prefKey]int
	history map[string][]gamemap.PlayedEntry
}

func NewGameMapRepository(maps []gamemap.Map) *GameMapRepository {
	byGuild := make(map[string][]gamemap.Map)
	for _, m := range maps {
		byGuild[m.GuildID] = append(byGuild[m.GuildID], m)
	}

	return &GameMapRepository{
		maps:    byGuild,
		prefs:   make(map[string]map[prefKey]int),
		history: make(map[string][]gamemap.PlayedEntry),
	}
}

func (r *GameMapRepository) ListByGuild(_ context.Context, guildID string) ([]gamemap.Map, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]gamemap.Map, len(r.maps[guildID]))
	copy(out, r.maps[guildID])

	return out, nil
}

func (r *GameMapRepository) Create(_ context.Context, m gamemap.Map) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.maps[m.GuildID] = append(r.maps[m.GuildID], m)

	return nil
}

func (r *GameMapRepository) SetEnabled(_ context.Context, guildID, mapID string, enabled bool) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, m := range r.maps[guildID] {
		if m.ID == mapID {
			r.maps[guildID][i].Enabled = enabled
			return true, nil
		}
	}

	return false, nil
}

func (r *GameMapRepository) PreferencesByGuild(_ context.Context, guildID string) ([]gamemap.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	index := r.prefs[guildID]
	out := make([]gamemap.Preference, 0, len(index))
	for key, score := range index {
		out = append(out, gamemap.Preference{
			GuildID:  guildID,
			PlayerID: key.playerID,
			MapID:    key.mapID,
			Score:    score,
		})
	}

	return out, nil
}

func (r *GameMapRepository) SetPreference(_ context.Context, p gamemap.Preference) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.prefs[p.GuildID]; !ok {
		r.prefs[p.GuildID] = make(map[prefKey]int)
	}
	r.prefs[p.GuildID][prefKey{playerID: p.PlayerID, mapID: p.MapID}] = p.Score

	return nil
}

// HistoryByGuild returns each player's most recent plays, oldest first.
func (r *GameMapRepository) HistoryByGuild(_ context.Context, guildID string, perPlayerLimit int) ([]gamemap.PlayedEntry, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	entries := r.history[guildID]
	if perPlayerLimit <= 0 {
		out := make([]gamemap.PlayedEntry, len(entries))
		copy(out, entries)
		return out, nil
	}

	counts := make(map[string]int, len(entries))
	for _, e := range entries {
		counts[e.PlayerID]++
	}

	skip := make(map[string]int, len(counts))
	for id, n := range counts {
		if n > perPlayerLimit {
			skip[id] = n - perPlayerLimit
		}
	}

	out := make([]gamemap.PlayedEntry, 0, len(entries))
	for _, e := range entries {
		if skip[e.PlayerID] > 0 {
			skip[e.PlayerID]--
			continue
		}
		out = append(out, e)
	}

	return out, nil
}

func (r *GameMapRepository) RecordPlayed(_ context.Context, entries []gamemap.PlayedEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, e := range entries {
		r.history[e.GuildID] = append(r.history[e.GuildID], e)
	}

	return nil
}
