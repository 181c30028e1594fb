package player

import "context"

// Repository describes player persistence needs from use cases.
type Repository interface {
	GetByID(ctx context.Context, guildID, playerID string) (Player, bool, error)
	GetByIDs(ctx context.Context, guildID string, playerIDs []string) ([]Player, error)
	Upsert(ctx context.Context, p Player) error
	TopByRating(ctx context.Context, guildID string, limit int) ([]Player, error)
}
