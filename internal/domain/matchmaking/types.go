package matchmaking

// Identifier types are opaque; the engine never parses them.
type (
	GuildID  string
	PlayerID string
	LobbyID  string
	MatchID  string
	MapID    string
)

// TeamID names one of the two sides of a match.
type TeamID int

const (
	TeamNone TeamID = 0
	TeamOne  TeamID = 1
	TeamTwo  TeamID = 2
)

// Participant is an in-memory copy of a player record. The engine mutates
// copies only; callers persist the snapshots it returns.
type Participant struct {
	ID          PlayerID
	DisplayName string
	Rating      int
	GamesWon    int
	GamesLost   int
}

func (p Participant) GamesPlayed() int {
	return p.GamesWon + p.GamesLost
}

// Settings carries the per-guild matchmaking knobs.
type Settings struct {
	// TeamSize is k in a k-vs-k match; a lobby needs 2k players.
	TeamSize int
	// StartingRating is assigned to first-time players by the caller.
	StartingRating int
	// CandidateMapCount caps the preference-engine shortlist.
	CandidateMapCount int
	// FallbackCandidateCount caps the random shortlist used when no player
	// has ever rated a map.
	FallbackCandidateCount int
}

func DefaultSettings() Settings {
	return Settings{
		TeamSize:               2,
		StartingRating:         1000,
		CandidateMapCount:      3,
		FallbackCandidateCount: 4,
	}
}

func (s Settings) normalized() Settings {
	if s.TeamSize < 1 {
		s.TeamSize = DefaultSettings().TeamSize
	}
	if s.StartingRating == 0 {
		s.StartingRating = DefaultSettings().StartingRating
	}
	if s.CandidateMapCount < 1 {
		s.CandidateMapCount = DefaultSettings().CandidateMapCount
	}
	if s.FallbackCandidateCount < 1 {
		s.FallbackCandidateCount = DefaultSettings().FallbackCandidateCount
	}
	return s
}

// GroupSize is the number of players required to form a lobby.
func (s Settings) GroupSize() int {
	return 2 * s.TeamSize
}
