package matchmaking

import (
	"fmt"
	"time"
)

// ResultState is the lifecycle of the result-confirmation protocol.
type ResultState string

const (
	ResultOpen         ResultState = "open"
	ResultSubmitted    ResultState = "submitted"
	ResultConfirmed    ResultState = "confirmed"
	ResultUnresolvable ResultState = "unresolvable"
)

const maxResultRejections = 2

// Match is an active game. The submit/confirm/reject handshake prevents a
// single player from unilaterally declaring the outcome: confirmation must
// come from the opposing team, and every player gets one action.
type Match struct {
	id            MatchID
	teamOne       []Participant
	teamTwo       []Participant
	selectedMap   MapID
	state         ResultState
	submitterID   PlayerID
	claimedWinner TeamID
	rejectors     map[PlayerID]struct{}
	acted         map[PlayerID]struct{}
	voiceChannels []string
	textChannel   string
	createdAt     time.Time
}

func newMatch(id MatchID, teamOne, teamTwo []Participant, selectedMap MapID, now time.Time) *Match {
	return &Match{
		id:          id,
		teamOne:     teamOne,
		teamTwo:     teamTwo,
		selectedMap: selectedMap,
		state:       ResultOpen,
		rejectors:   make(map[PlayerID]struct{}),
		acted:       make(map[PlayerID]struct{}),
		createdAt:   now,
	}
}

func (m *Match) teamOf(id PlayerID) TeamID {
	for _, p := range m.teamOne {
		if p.ID == id {
			return TeamOne
		}
	}
	for _, p := range m.teamTwo {
		if p.ID == id {
			return TeamTwo
		}
	}
	return TeamNone
}

func (m *Match) checkVoter(playerID PlayerID) (TeamID, error) {
	team := m.teamOf(playerID)
	if team == TeamNone {
		return TeamNone, fmt.Errorf("%w: player %s is not a participant of match %s", ErrPermissionDenied, playerID, m.id)
	}
	if _, ok := m.acted[playerID]; ok {
		return TeamNone, fmt.Errorf("%w: player %s already voted on match %s", ErrPermissionDenied, playerID, m.id)
	}
	return team, nil
}

// submit records a winner claim by a participating player.
func (m *Match) submit(playerID PlayerID, winner TeamID) error {
	if m.state != ResultOpen {
		return fmt.Errorf("%w: match %s result is %s, expected %s", ErrInvalidState, m.id, m.state, ResultOpen)
	}
	if winner != TeamOne && winner != TeamTwo {
		return fmt.Errorf("%w: winner must be team one or team two", ErrInvalidState)
	}
	if _, err := m.checkVoter(playerID); err != nil {
		return err
	}

	m.submitterID = playerID
	m.claimedWinner = winner
	m.state = ResultSubmitted
	m.acted[playerID] = struct{}{}
	return nil
}

// confirm finalizes a submitted claim. Only a player on the team opposing the
// submitter may confirm; teammates agreeing with each other would make the
// protocol collusion-prone.
func (m *Match) confirm(playerID PlayerID) (*MatchResult, error) {
	if m.state != ResultSubmitted {
		return nil, fmt.Errorf("%w: match %s result is %s, expected %s", ErrInvalidState, m.id, m.state, ResultSubmitted)
	}
	team, err := m.checkVoter(playerID)
	if err != nil {
		return nil, err
	}
	if team == m.teamOf(m.submitterID) {
		return nil, fmt.Errorf("%w: player %s is on the submitter's team", ErrPermissionDenied, playerID)
	}

	m.acted[playerID] = struct{}{}
	return m.finalize(m.claimedWinner), nil
}

// reject clears a submitted claim and reopens the match. A second rejection
// flags the match unresolvable; it must be escalated, not retried.
func (m *Match) reject(playerID PlayerID) error {
	if m.state != ResultSubmitted {
		return fmt.Errorf("%w: match %s result is %s, expected %s", ErrInvalidState, m.id, m.state, ResultSubmitted)
	}
	team, err := m.checkVoter(playerID)
	if err != nil {
		return err
	}
	if team == m.teamOf(m.submitterID) {
		return fmt.Errorf("%w: player %s is on the submitter's team", ErrPermissionDenied, playerID)
	}

	m.acted[playerID] = struct{}{}
	m.rejectors[playerID] = struct{}{}
	m.submitterID = ""
	m.claimedWinner = TeamNone

	if len(m.rejectors) >= maxResultRejections {
		m.state = ResultUnresolvable
		return fmt.Errorf("%w: match %s", ErrUnresolvable, m.id)
	}

	m.state = ResultOpen
	return nil
}

// submitAsAdmin bypasses the participant and opposing-team checks and both
// submits and confirms in one step.
func (m *Match) submitAsAdmin(winner TeamID) (*MatchResult, error) {
	if m.state == ResultConfirmed {
		return nil, fmt.Errorf("%w: match %s result already confirmed", ErrInvalidState, m.id)
	}
	if winner != TeamOne && winner != TeamTwo {
		return nil, fmt.Errorf("%w: winner must be team one or team two", ErrInvalidState)
	}
	return m.finalize(winner), nil
}

func (m *Match) finalize(winner TeamID) *MatchResult {
	m.state = ResultConfirmed
	m.claimedWinner = winner

	winners, losers := m.teamOne, m.teamTwo
	if winner == TeamTwo {
		winners, losers = m.teamTwo, m.teamOne
	}

	return &MatchResult{
		MatchID:    m.id,
		Map:        m.selectedMap,
		WinnerTeam: winner,
		Updates:    settleTeams(winners, losers),
	}
}

// MatchResult is the confirmed outcome handed back to the caller for
// persistence and announcement.
type MatchResult struct {
	MatchID    MatchID
	Map        MapID
	WinnerTeam TeamID
	Updates    []RatingUpdate
}

// MatchSnapshot is the copy the engine hands to callers.
type MatchSnapshot struct {
	ID              MatchID
	TeamOne         []Participant
	TeamTwo         []Participant
	Map             MapID
	State           ResultState
	SubmitterID     PlayerID
	ClaimedWinner   TeamID
	Rejectors       []PlayerID
	VoiceChannelIDs []string
	TextChannelID   string
	CreatedAt       time.Time
}

func (m *Match) snapshot() MatchSnapshot {
	teamOne := make([]Participant, len(m.teamOne))
	copy(teamOne, m.teamOne)
	teamTwo := make([]Participant, len(m.teamTwo))
	copy(teamTwo, m.teamTwo)
	rejectors := make([]PlayerID, 0, len(m.rejectors))
	for id := range m.rejectors {
		rejectors = append(rejectors, id)
	}
	voice := make([]string, len(m.voiceChannels))
	copy(voice, m.voiceChannels)
	return MatchSnapshot{
		ID:              m.id,
		TeamOne:         teamOne,
		TeamTwo:         teamTwo,
		Map:             m.selectedMap,
		State:           m.state,
		SubmitterID:     m.submitterID,
		ClaimedWinner:   m.claimedWinner,
		Rejectors:       rejectors,
		VoiceChannelIDs: voice,
		TextChannelID:   m.textChannel,
		CreatedAt:       m.createdAt,
	}
}
