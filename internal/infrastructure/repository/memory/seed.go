package memory

import (
	"github.com/openmix/mixqueue/internal/domain/gamemap"
	"github.com/openmix/mixqueue/internal/domain/player"
)

// GuildIDDemo is the guild the memory driver boots with so a fresh install
// has something to queue into.
const GuildIDDemo = "demo-guild"

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "demo-ace", GuildID: GuildIDDemo, DisplayName: "Ace", Rating: 1180, GamesWon: 9, GamesLost: 4},
		{ID: "demo-bolt", GuildID: GuildIDDemo, DisplayName: "Bolt", Rating: 1095, GamesWon: 6, GamesLost: 6},
		{ID: "demo-crow", GuildID: GuildIDDemo, DisplayName: "Crow", Rating: 1010, GamesWon: 4, GamesLost: 5},
		{ID: "demo-dune", GuildID: GuildIDDemo, DisplayName: "Dune", Rating: 985, GamesWon: 3, GamesLost: 7},
		{ID: "demo-echo", GuildID: GuildIDDemo, DisplayName: "Echo", Rating: 940, GamesWon: 2, GamesLost: 8},
	}
}

func SeedMaps() []gamemap.Map {
	return []gamemap.Map{
		{ID: "demo-map-dust", GuildID: GuildIDDemo, Name: "Dust Basin", Enabled: true},
		{ID: "demo-map-mirror", GuildID: GuildIDDemo, Name: "Mirror Yard", Enabled: true},
		{ID: "demo-map-harbor", GuildID: GuildIDDemo, Name: "Harbor Line", Enabled: true},
		{ID: "demo-map-relay", GuildID: GuildIDDemo, Name: "Relay Station", Enabled: true},
		{ID: "demo-map-crater", GuildID: GuildIDDemo, Name: "Crater Edge", Enabled: true},
		{ID: "demo-map-vault", GuildID: GuildIDDemo, Name: "Vault Nine", Enabled: false},
	}
}
