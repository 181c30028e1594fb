package gamemap

import "fmt"

const (
	// PreferenceMin and PreferenceMax bound a player's stated map rating.
	PreferenceMin = 0
	PreferenceMax = 10
)

// Map is a playable map registered in a guild's pool.
type Map struct {
	ID      string
	GuildID string
	Name    string
	Enabled bool
}

func (m Map) Validate() error {
	if m.ID == "" {
		return fmt.Errorf("map id is required")
	}
	if m.GuildID == "" {
		return fmt.Errorf("map guild id is required")
	}
	if m.Name == "" {
		return fmt.Errorf("map name is required")
	}

	return nil
}

// Preference is one player's stated liking of one map.
type Preference struct {
	GuildID  string
	PlayerID string
	MapID    string
	Score    int
}

func (p Preference) Validate() error {
	if p.GuildID == "" || p.PlayerID == "" || p.MapID == "" {
		return fmt.Errorf("preference guild, player and map ids are required")
	}
	if p.Score < PreferenceMin || p.Score > PreferenceMax {
		return fmt.Errorf("preference score must be within [%d, %d]", PreferenceMin, PreferenceMax)
	}

	return nil
}

// PlayedEntry records that a player finished a match on a map. Entries are
// appended in play order, so a player's history reads oldest first.
type PlayedEntry struct {
	GuildID  string
	PlayerID string
	MapID    string
}
