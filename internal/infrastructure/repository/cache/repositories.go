package cache

import (
	"context"
	"strconv"

	"github.com/openmix/mixqueue/internal/domain/gamemap"
	basecache "github.com/openmix/mixqueue/internal/platform/cache"
)

// GameMapRepository wraps a gamemap.Repository with a read-through cache.
// Lobby formation reads the pool, preferences and history on every call, so
// these are the hottest queries the service runs against the database.
// Writes invalidate the affected guild only.
type GameMapRepository struct {
	next  gamemap.Repository
	cache *basecache.Store
}

func NewGameMapRepository(next gamemap.Repository, cache *basecache.Store) *GameMapRepository {
	return &GameMapRepository{next: next, cache: cache}
}

func (r *GameMapRepository) ListByGuild(ctx context.Context, guildID string) ([]gamemap.Map, error) {
	v, err := r.cache.GetOrLoad(ctx, mapListKey(guildID), func(ctx context.Context) (any, error) {
		items, err := r.next.ListByGuild(ctx, guildID)
		if err != nil {
			return nil, err
		}
		return append([]gamemap.Map(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gamemap.Map)
	return append([]gamemap.Map(nil), items...), nil
}

func (r *GameMapRepository) Create(ctx context.Context, m gamemap.Map) error {
	if err := r.next.Create(ctx, m); err != nil {
		return err
	}
	r.cache.Delete(ctx, mapListKey(m.GuildID))
	return nil
}

func (r *GameMapRepository) SetEnabled(ctx context.Context, guildID, mapID string, enabled bool) (bool, error) {
	updated, err := r.next.SetEnabled(ctx, guildID, mapID, enabled)
	if err != nil {
		return false, err
	}
	if updated {
		r.cache.Delete(ctx, mapListKey(guildID))
	}
	return updated, nil
}

func (r *GameMapRepository) PreferencesByGuild(ctx context.Context, guildID string) ([]gamemap.Preference, error) {
	v, err := r.cache.GetOrLoad(ctx, preferencesKey(guildID), func(ctx context.Context) (any, error) {
		items, err := r.next.PreferencesByGuild(ctx, guildID)
		if err != nil {
			return nil, err
		}
		return append([]gamemap.Preference(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gamemap.Preference)
	return append([]gamemap.Preference(nil), items...), nil
}

func (r *GameMapRepository) SetPreference(ctx context.Context, p gamemap.Preference) error {
	if err := r.next.SetPreference(ctx, p); err != nil {
		return err
	}
	r.cache.Delete(ctx, preferencesKey(p.GuildID))
	return nil
}

func (r *GameMapRepository) HistoryByGuild(ctx context.Context, guildID string, perPlayerLimit int) ([]gamemap.PlayedEntry, error) {
	key := historyPrefix(guildID) + strconv.Itoa(perPlayerLimit)
	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.HistoryByGuild(ctx, guildID, perPlayerLimit)
		if err != nil {
			return nil, err
		}
		return append([]gamemap.PlayedEntry(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]gamemap.PlayedEntry)
	return append([]gamemap.PlayedEntry(nil), items...), nil
}

func (r *GameMapRepository) RecordPlayed(ctx context.Context, entries []gamemap.PlayedEntry) error {
	if err := r.next.RecordPlayed(ctx, entries); err != nil {
		return err
	}
	seen := map[string]struct{}{}
	for _, e := range entries {
		if _, ok := seen[e.GuildID]; ok {
			continue
		}
		seen[e.GuildID] = struct{}{}
		r.cache.DeletePrefix(ctx, historyPrefix(e.GuildID))
	}
	return nil
}

func mapListKey(guildID string) string {
	return "gamemap:list:" + guildID
}

func preferencesKey(guildID string) string {
	return "gamemap:prefs:" + guildID
}

func historyPrefix(guildID string) string {
	return "gamemap:history:" + guildID + ":"
}
