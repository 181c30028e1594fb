package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openmix/mixqueue/internal/domain/gamemap"
	qb "github.com/openmix/mixqueue/internal/platform/querybuilder"
)

type GameMapRepository struct {
	db *sqlx.DB
}

var gameMapSelectColumns = []string{
	"id",
	"public_id",
	"guild_id",
	"name",
	"enabled",
	"created_at",
	"updated_at",
}

// Recent history needs the newest N rows per player while keeping play order,
// which is a window query the builder cannot express.
const mapHistoryByGuildQuery = `
SELECT guild_id, player_public_id, map_public_id
FROM (
	SELECT guild_id, player_public_id, map_public_id, id,
		ROW_NUMBER() OVER (PARTITION BY player_public_id ORDER BY id DESC) AS recency
	FROM map_history
	WHERE guild_id = $1
) ranked
WHERE recency <= $2
ORDER BY id ASC`

func NewGameMapRepository(db *sqlx.DB) *GameMapRepository {
	return &GameMapRepository{db: db}
}

func (r *GameMapRepository) ListByGuild(ctx context.Context, guildID string) ([]gamemap.Map, error) {
	query, args, err := qb.Select(gameMapSelectColumns...).From("maps").
		Where(qb.Eq("guild_id", guildID)).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select maps query: %w", err)
	}

	var rows []gameMapTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select maps by guild: %w", err)
	}

	out := make([]gamemap.Map, 0, len(rows))
	for _, row := range rows {
		out = append(out, gamemap.Map{
			ID:      row.PublicID,
			GuildID: row.GuildID,
			Name:    row.Name,
			Enabled: row.Enabled,
		})
	}

	return out, nil
}

func (r *GameMapRepository) Create(ctx context.Context, m gamemap.Map) error {
	query, args, err := qb.InsertInto("maps").
		Columns("public_id", "guild_id", "name", "enabled").
		Values(m.ID, m.GuildID, m.Name, m.Enabled).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert map query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert map: %w", err)
	}

	return nil
}

func (r *GameMapRepository) SetEnabled(ctx context.Context, guildID, mapID string, enabled bool) (bool, error) {
	query, args, err := qb.Update("maps").
		Set("enabled", enabled).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("guild_id", guildID),
			qb.Eq("public_id", mapID),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build update map enabled query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return false, fmt.Errorf("update map enabled: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("read affected rows: %w", err)
	}

	return affected > 0, nil
}

func (r *GameMapRepository) PreferencesByGuild(ctx context.Context, guildID string) ([]gamemap.Preference, error) {
	query, args, err := qb.Select("guild_id", "player_public_id", "map_public_id", "score").
		From("map_preferences").
		Where(qb.Eq("guild_id", guildID)).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select preferences query: %w", err)
	}

	var rows []mapPreferenceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select preferences by guild: %w", err)
	}

	out := make([]gamemap.Preference, 0, len(rows))
	for _, row := range rows {
		out = append(out, gamemap.Preference{
			GuildID:  row.GuildID,
			PlayerID: row.PlayerID,
			MapID:    row.MapID,
			Score:    row.Score,
		})
	}

	return out, nil
}

func (r *GameMapRepository) SetPreference(ctx context.Context, p gamemap.Preference) error {
	query, args, err := qb.InsertInto("map_preferences").
		Columns("guild_id", "player_public_id", "map_public_id", "score").
		Values(p.GuildID, p.PlayerID, p.MapID, p.Score).
		Suffix(`ON CONFLICT (guild_id, player_public_id, map_public_id) DO UPDATE SET
			score = EXCLUDED.score`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert preference query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert preference: %w", err)
	}

	return nil
}

func (r *GameMapRepository) HistoryByGuild(ctx context.Context, guildID string, perPlayerLimit int) ([]gamemap.PlayedEntry, error) {
	if perPlayerLimit <= 0 {
		perPlayerLimit = 1
	}

	var rows []mapHistoryTableModel
	if err := r.db.SelectContext(ctx, &rows, mapHistoryByGuildQuery, guildID, perPlayerLimit); err != nil {
		return nil, fmt.Errorf("select map history by guild: %w", err)
	}

	out := make([]gamemap.PlayedEntry, 0, len(rows))
	for _, row := range rows {
		out = append(out, gamemap.PlayedEntry{
			GuildID:  row.GuildID,
			PlayerID: row.PlayerID,
			MapID:    row.MapID,
		})
	}

	return out, nil
}

func (r *GameMapRepository) RecordPlayed(ctx context.Context, entries []gamemap.PlayedEntry) error {
	if len(entries) == 0 {
		return nil
	}

	builder := qb.InsertInto("map_history").
		Columns("guild_id", "player_public_id", "map_public_id")
	for _, e := range entries {
		builder = builder.Values(e.GuildID, e.PlayerID, e.MapID)
	}
	query, args, err := builder.ToSQL()
	if err != nil {
		return fmt.Errorf("build insert map history query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("insert map history: %w", err)
	}

	return nil
}
