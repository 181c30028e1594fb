package matchmaking

import (
	"fmt"
	"math/rand/v2"
	"sync"
	"time"
)

// IDGenerator mints opaque lobby and match identifiers.
type IDGenerator interface {
	NewID() (string, error)
}

// GuildState owns one queue, the open lobbies and the active matches of a
// single guild. Every mutation runs under one mutex so queue extraction,
// lobby promotion and result transitions cannot race within a guild;
// different guilds share nothing. No operation blocks or performs I/O, and
// each either fully applies or leaves the state untouched.
type GuildState struct {
	mu       sync.Mutex
	id       GuildID
	settings Settings
	queue    *Queue
	lobbies  map[LobbyID]*Lobby
	matches  map[MatchID]*Match
	engine   *PreferenceEngine
	ids      IDGenerator
	now      func() time.Time
}

func NewGuildState(id GuildID, settings Settings, ids IDGenerator, rng *rand.Rand) *GuildState {
	settings = settings.normalized()
	return &GuildState{
		id:       id,
		settings: settings,
		queue:    NewQueue(),
		lobbies:  make(map[LobbyID]*Lobby),
		matches:  make(map[MatchID]*Match),
		engine:   NewPreferenceEngine(rng, settings.CandidateMapCount, settings.FallbackCandidateCount),
		ids:      ids,
		now:      time.Now,
	}
}

func (g *GuildState) ID() GuildID {
	return g.id
}

func (g *GuildState) Settings() Settings {
	return g.settings
}

// Enqueue adds a player to the queue. The uniqueness invariant spans the
// queue, every lobby and every match: a player can be in at most one place.
func (g *GuildState) Enqueue(p Participant) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.memberOfLobbyOrMatch(p.ID) {
		return fmt.Errorf("%w: player %s is already in a lobby or match", ErrAlreadyQueued, p.ID)
	}
	return g.queue.Enqueue(p)
}

func (g *GuildState) Dequeue(id PlayerID) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.queue.Dequeue(id)
}

func (g *GuildState) QueueSize() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.queue.Size()
}

func (g *GuildState) QueueSnapshot() []Participant {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.queue.Snapshot()
}

// FormLobby extracts the next full group from the queue and builds its
// candidate-map shortlist from the guild's preference data. The preference
// inputs are passed in by the caller; the engine never talks to storage.
func (g *GuildState) FormLobby(pool []MapID, prefs PreferenceMatrix, history MapHistory) (LobbySnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	size := g.settings.GroupSize()
	if g.queue.Size() < size {
		return LobbySnapshot{}, fmt.Errorf("%w: have=%d need=%d", ErrInsufficientPlayers, g.queue.Size(), size)
	}

	raw, err := g.ids.NewID()
	if err != nil {
		return LobbySnapshot{}, fmt.Errorf("mint lobby id: %w", err)
	}

	group, err := g.queue.ExtractGroup(size)
	if err != nil {
		return LobbySnapshot{}, err
	}

	players := make([]PlayerID, len(group))
	for i, p := range group {
		players[i] = p.ID
	}
	candidates := g.engine.Candidates(pool, players, prefs, history)

	lobby := newLobby(LobbyID(raw), group, candidates, g.now())
	g.lobbies[lobby.id] = lobby

	return lobby.snapshot(), nil
}

func (g *GuildState) CastMapVote(lobbyID LobbyID, playerID PlayerID, mapID MapID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	lobby, ok := g.lobbies[lobbyID]
	if !ok {
		return fmt.Errorf("%w: lobby=%s", ErrNotFound, lobbyID)
	}
	return lobby.castVote(playerID, mapID)
}

// AttachLobbyChannels records the chat-layer channel ids on a lobby. At most
// one lobby may reference a given voice channel.
func (g *GuildState) AttachLobbyChannels(lobbyID LobbyID, voiceChannelID, textChannelID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	lobby, ok := g.lobbies[lobbyID]
	if !ok {
		return fmt.Errorf("%w: lobby=%s", ErrNotFound, lobbyID)
	}
	if voiceChannelID != "" {
		for id, other := range g.lobbies {
			if id != lobbyID && other.voiceChannel == voiceChannelID {
				return fmt.Errorf("%w: voice channel %s is already bound to lobby %s", ErrInvalidState, voiceChannelID, id)
			}
		}
	}
	lobby.voiceChannel = voiceChannelID
	lobby.textChannel = textChannelID
	return nil
}

func (g *GuildState) AttachMatchChannels(matchID MatchID, voiceChannelIDs []string, textChannelID string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	match, ok := g.matches[matchID]
	if !ok {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	match.voiceChannels = append([]string(nil), voiceChannelIDs...)
	match.textChannel = textChannelID
	return nil
}

// PromoteLobby resolves the map vote, splits balanced teams and turns the
// lobby into an active match.
func (g *GuildState) PromoteLobby(lobbyID LobbyID) (MatchSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	lobby, ok := g.lobbies[lobbyID]
	if !ok {
		return MatchSnapshot{}, fmt.Errorf("%w: lobby=%s", ErrNotFound, lobbyID)
	}

	selected, err := g.engine.SelectFromVotes(lobby.candidateMaps, lobby.votes)
	if err != nil {
		return MatchSnapshot{}, err
	}

	teamOne, teamTwo, err := SplitTeams(lobby.players)
	if err != nil {
		return MatchSnapshot{}, err
	}

	raw, err := g.ids.NewID()
	if err != nil {
		return MatchSnapshot{}, fmt.Errorf("mint match id: %w", err)
	}

	match := newMatch(MatchID(raw), teamOne, teamTwo, selected, g.now())
	g.matches[match.id] = match
	delete(g.lobbies, lobbyID)

	return match.snapshot(), nil
}

// CancelLobby drops a lobby and returns its final snapshot so the caller can
// release channels and notify players. Players are not re-queued.
func (g *GuildState) CancelLobby(lobbyID LobbyID) (LobbySnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	lobby, ok := g.lobbies[lobbyID]
	if !ok {
		return LobbySnapshot{}, fmt.Errorf("%w: lobby=%s", ErrNotFound, lobbyID)
	}
	delete(g.lobbies, lobbyID)
	return lobby.snapshot(), nil
}

// CancelMatch drops an active match and returns the voice channel ids the
// caller must clean up.
func (g *GuildState) CancelMatch(matchID MatchID) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	match, ok := g.matches[matchID]
	if !ok {
		return nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	voice := append([]string(nil), match.voiceChannels...)
	delete(g.matches, matchID)
	return voice, nil
}

func (g *GuildState) SubmitResult(matchID MatchID, playerID PlayerID, winner TeamID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	match, ok := g.matches[matchID]
	if !ok {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return match.submit(playerID, winner)
}

// ConfirmResult finalizes a submitted claim, removes the match and returns
// the rating updates plus the voice channels to clean up.
func (g *GuildState) ConfirmResult(matchID MatchID, playerID PlayerID) (*MatchResult, []string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	match, ok := g.matches[matchID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	result, err := match.confirm(playerID)
	if err != nil {
		return nil, nil, err
	}
	voice := append([]string(nil), match.voiceChannels...)
	delete(g.matches, matchID)
	return result, voice, nil
}

// RejectResult reopens a submitted claim. The returned error is
// ErrUnresolvable once a match collects its second rejection; the match is
// kept so an administrator can settle it.
func (g *GuildState) RejectResult(matchID MatchID, playerID PlayerID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	match, ok := g.matches[matchID]
	if !ok {
		return fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return match.reject(playerID)
}

func (g *GuildState) SubmitResultAsAdmin(matchID MatchID, winner TeamID) (*MatchResult, []string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	match, ok := g.matches[matchID]
	if !ok {
		return nil, nil, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	result, err := match.submitAsAdmin(winner)
	if err != nil {
		return nil, nil, err
	}
	voice := append([]string(nil), match.voiceChannels...)
	delete(g.matches, matchID)
	return result, voice, nil
}

func (g *GuildState) Match(matchID MatchID) (MatchSnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	match, ok := g.matches[matchID]
	if !ok {
		return MatchSnapshot{}, fmt.Errorf("%w: match=%s", ErrNotFound, matchID)
	}
	return match.snapshot(), nil
}

func (g *GuildState) Lobby(lobbyID LobbyID) (LobbySnapshot, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	lobby, ok := g.lobbies[lobbyID]
	if !ok {
		return LobbySnapshot{}, fmt.Errorf("%w: lobby=%s", ErrNotFound, lobbyID)
	}
	return lobby.snapshot(), nil
}

// Lobbies returns snapshots of every open lobby, in no particular order.
func (g *GuildState) Lobbies() []LobbySnapshot {
	g.mu.Lock()
	defer g.mu.Unlock()

	out := make([]LobbySnapshot, 0, len(g.lobbies))
	for _, lobby := range g.lobbies {
		out = append(out, lobby.snapshot())
	}
	return out
}

// Counts reports the number of open lobbies and active matches.
func (g *GuildState) Counts() (lobbies, matches int) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.lobbies), len(g.matches)
}

func (g *GuildState) memberOfLobbyOrMatch(id PlayerID) bool {
	for _, lobby := range g.lobbies {
		if lobby.contains(id) {
			return true
		}
	}
	for _, match := range g.matches {
		if match.teamOf(id) != TeamNone {
			return true
		}
	}
	return false
}
