package postgres

import "time"

type gameMapTableModel struct {
	ID        int64     `db:"id"`
	PublicID  string    `db:"public_id"`
	GuildID   string    `db:"guild_id"`
	Name      string    `db:"name"`
	Enabled   bool      `db:"enabled"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type mapPreferenceTableModel struct {
	GuildID  string `db:"guild_id"`
	PlayerID string `db:"player_public_id"`
	MapID    string `db:"map_public_id"`
	Score    int    `db:"score"`
}

type mapHistoryTableModel struct {
	GuildID  string `db:"guild_id"`
	PlayerID string `db:"player_public_id"`
	MapID    string `db:"map_public_id"`
}
