package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openmix/mixqueue/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the demo guild into an empty database so a fresh
// install has a working queue. A non-empty maps table skips the seed.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM maps`); err != nil {
		return fmt.Errorf("count maps for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	tx, err := db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin seed tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, m := range memory.SeedMaps() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO maps (public_id, guild_id, name, enabled)
VALUES (:public_id, :guild_id, :name, :enabled)
ON CONFLICT (guild_id, public_id) DO NOTHING`, map[string]any{
			"public_id": m.ID,
			"guild_id":  m.GuildID,
			"name":      m.Name,
			"enabled":   m.Enabled,
		})
		if err != nil {
			return fmt.Errorf("bind seed map %s query: %w", m.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed map %s: %w", m.ID, err)
		}
	}

	for _, p := range memory.SeedPlayers() {
		sqlQuery, args, err := sqlx.Named(`
INSERT INTO players (public_id, guild_id, display_name, rating, games_won, games_lost)
VALUES (:public_id, :guild_id, :display_name, :rating, :games_won, :games_lost)
ON CONFLICT (guild_id, public_id) DO NOTHING`, map[string]any{
			"public_id":    p.ID,
			"guild_id":     p.GuildID,
			"display_name": p.DisplayName,
			"rating":       p.Rating,
			"games_won":    p.GamesWon,
			"games_lost":   p.GamesLost,
		})
		if err != nil {
			return fmt.Errorf("bind seed player %s query: %w", p.ID, err)
		}
		sqlQuery = tx.Rebind(sqlQuery)
		if _, err := tx.ExecContext(ctx, sqlQuery, args...); err != nil {
			return fmt.Errorf("seed player %s: %w", p.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit seed tx: %w", err)
	}

	return nil
}
