package gamemap

import "context"

// Repository describes map-pool persistence needs from use cases.
type Repository interface {
	ListByGuild(ctx context.Context, guildID string) ([]Map, error)
	Create(ctx context.Context, m Map) error
	SetEnabled(ctx context.Context, guildID, mapID string, enabled bool) (bool, error)
	PreferencesByGuild(ctx context.Context, guildID string) ([]Preference, error)
	SetPreference(ctx context.Context, p Preference) error
	HistoryByGuild(ctx context.Context, guildID string, perPlayerLimit int) ([]PlayedEntry, error)
	RecordPlayed(ctx context.Context, entries []PlayedEntry) error
}
