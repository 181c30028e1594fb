package postgres

import "time"

type playerTableModel struct {
	ID          int64     `db:"id"`
	PublicID    string    `db:"public_id"`
	GuildID     string    `db:"guild_id"`
	DisplayName string    `db:"display_name"`
	Rating      int       `db:"rating"`
	GamesWon    int       `db:"games_won"`
	GamesLost   int       `db:"games_lost"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}
