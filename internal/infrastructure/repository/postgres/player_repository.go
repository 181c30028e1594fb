package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openmix/mixqueue/internal/domain/player"
	qb "github.com/openmix/mixqueue/internal/platform/querybuilder"
)

type PlayerRepository struct {
	db *sqlx.DB
}

var playerSelectColumns = []string{
	"id",
	"public_id",
	"guild_id",
	"display_name",
	"rating",
	"games_won",
	"games_lost",
	"created_at",
	"updated_at",
}

func NewPlayerRepository(db *sqlx.DB) *PlayerRepository {
	return &PlayerRepository{db: db}
}

func (r *PlayerRepository) GetByID(ctx context.Context, guildID, playerID string) (player.Player, bool, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("guild_id", guildID),
			qb.Eq("public_id", playerID),
		).
		ToSQL()
	if err != nil {
		return player.Player{}, false, fmt.Errorf("build select player query: %w", err)
	}

	var row playerTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return player.Player{}, false, nil
		}
		return player.Player{}, false, fmt.Errorf("select player: %w", err)
	}

	return playerFromTable(row), true, nil
}

func (r *PlayerRepository) GetByIDs(ctx context.Context, guildID string, playerIDs []string) ([]player.Player, error) {
	if len(playerIDs) == 0 {
		return []player.Player{}, nil
	}

	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(
			qb.Eq("guild_id", guildID),
			qb.In("public_id", stringSliceToAny(playerIDs)),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select players by ids query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select players by ids: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromTable(row))
	}

	return out, nil
}

func (r *PlayerRepository) Upsert(ctx context.Context, p player.Player) error {
	query, args, err := qb.InsertInto("players").
		Columns("public_id", "guild_id", "display_name", "rating", "games_won", "games_lost").
		Values(p.ID, p.GuildID, p.DisplayName, p.Rating, p.GamesWon, p.GamesLost).
		Suffix(`ON CONFLICT (guild_id, public_id) DO UPDATE SET
			display_name = EXCLUDED.display_name,
			rating = EXCLUDED.rating,
			games_won = EXCLUDED.games_won,
			games_lost = EXCLUDED.games_lost,
			updated_at = NOW()`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert player query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert player: %w", err)
	}

	return nil
}

func (r *PlayerRepository) TopByRating(ctx context.Context, guildID string, limit int) ([]player.Player, error) {
	query, args, err := qb.Select(playerSelectColumns...).From("players").
		Where(qb.Eq("guild_id", guildID)).
		OrderBy("rating DESC", "public_id ASC").
		Limit(limit).
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select top players query: %w", err)
	}

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select top players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromTable(row))
	}

	return out, nil
}

func playerFromTable(row playerTableModel) player.Player {
	return player.Player{
		ID:          row.PublicID,
		GuildID:     row.GuildID,
		DisplayName: row.DisplayName,
		Rating:      row.Rating,
		GamesWon:    row.GamesWon,
		GamesLost:   row.GamesLost,
	}
}

func stringSliceToAny(items []string) []any {
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, item)
	}
	return out
}
