package player

import "fmt"

// Player is a guild member's persistent rating record. Records are scoped to
// one guild; the same person playing in two guilds owns two records.
type Player struct {
	ID          string
	GuildID     string
	DisplayName string
	Rating      int
	GamesWon    int
	GamesLost   int
}

func (p Player) GamesPlayed() int {
	return p.GamesWon + p.GamesLost
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.GuildID == "" {
		return fmt.Errorf("player guild id is required")
	}
	if p.DisplayName == "" {
		return fmt.Errorf("player display name is required")
	}
	if p.GamesWon < 0 || p.GamesLost < 0 {
		return fmt.Errorf("game counters must not be negative")
	}

	return nil
}
