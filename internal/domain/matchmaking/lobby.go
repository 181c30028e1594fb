package matchmaking

import (
	"fmt"
	"time"
)

// Lobby is a formed, not-yet-started group of players voting on a map.
// Channel ids are weak references owned by the chat layer; the engine only
// stores and returns them.
type Lobby struct {
	id            LobbyID
	players       []Participant
	candidateMaps []MapID
	votes         map[PlayerID]MapID
	voiceChannel  string
	textChannel   string
	createdAt     time.Time
}

func newLobby(id LobbyID, players []Participant, candidates []MapID, now time.Time) *Lobby {
	return &Lobby{
		id:            id,
		players:       players,
		candidateMaps: candidates,
		votes:         make(map[PlayerID]MapID, len(players)),
		createdAt:     now,
	}
}

func (l *Lobby) contains(id PlayerID) bool {
	for _, p := range l.players {
		if p.ID == id {
			return true
		}
	}
	return false
}

func (l *Lobby) castVote(playerID PlayerID, mapID MapID) error {
	if !l.contains(playerID) {
		return fmt.Errorf("%w: player %s is not in lobby %s", ErrPermissionDenied, playerID, l.id)
	}
	for _, m := range l.candidateMaps {
		if m == mapID {
			l.votes[playerID] = mapID
			return nil
		}
	}
	return fmt.Errorf("%w: map %s is not a candidate in lobby %s", ErrNotFound, mapID, l.id)
}

// LobbySnapshot is the copy the engine hands to callers.
type LobbySnapshot struct {
	ID             LobbyID
	Players        []Participant
	CandidateMaps  []MapID
	Votes          map[PlayerID]MapID
	VoiceChannelID string
	TextChannelID  string
	CreatedAt      time.Time
}

func (l *Lobby) snapshot() LobbySnapshot {
	players := make([]Participant, len(l.players))
	copy(players, l.players)
	candidates := make([]MapID, len(l.candidateMaps))
	copy(candidates, l.candidateMaps)
	votes := make(map[PlayerID]MapID, len(l.votes))
	for k, v := range l.votes {
		votes[k] = v
	}
	return LobbySnapshot{
		ID:             l.id,
		Players:        players,
		CandidateMaps:  candidates,
		Votes:          votes,
		VoiceChannelID: l.voiceChannel,
		TextChannelID:  l.textChannel,
		CreatedAt:      l.createdAt,
	}
}
