package httpapi

import (
	"context"
	"time"

	"github.com/openmix/mixqueue/internal/domain/gamemap"
	"github.com/openmix/mixqueue/internal/domain/matchmaking"
	"github.com/openmix/mixqueue/internal/usecase"
)

type registerGuildRequest struct {
	GuildID string `json:"guild_id" validate:"required,max=100"`
}

type joinQueueRequest struct {
	PlayerID    string `json:"player_id" validate:"required,max=100"`
	DisplayName string `json:"display_name" validate:"omitempty,max=100"`
}

type castMapVoteRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100"`
	MapID    string `json:"map_id" validate:"required,max=100"`
}

type lobbyChannelsRequest struct {
	VoiceChannelID string `json:"voice_channel_id" validate:"omitempty,max=100"`
	TextChannelID  string `json:"text_channel_id" validate:"omitempty,max=100"`
}

type matchChannelsRequest struct {
	VoiceChannelIDs []string `json:"voice_channel_ids" validate:"omitempty,max=2,dive,required"`
	TextChannelID   string   `json:"text_channel_id" validate:"omitempty,max=100"`
}

type submitResultRequest struct {
	PlayerID   string `json:"player_id" validate:"required,max=100"`
	WinnerTeam int    `json:"winner_team" validate:"required,oneof=1 2"`
}

type resultActionRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100"`
}

type resolveResultRequest struct {
	WinnerTeam int `json:"winner_team" validate:"required,oneof=1 2"`
}

type addMapRequest struct {
	Name string `json:"name" validate:"required,max=80"`
}

type setMapEnabledRequest struct {
	Enabled *bool `json:"enabled" validate:"required"`
}

type rateMapRequest struct {
	PlayerID string `json:"player_id" validate:"required,max=100"`
	// Zero is a legal score, so the pointer distinguishes "rated 0" from
	// an absent field.
	Score *int `json:"score" validate:"required,min=0,max=10"`
}

type participantDTO struct {
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	GamesWon    int    `json:"games_won"`
	GamesLost   int    `json:"games_lost"`
}

type queueJoinedDTO struct {
	QueueSize int `json:"queue_size"`
}

type removedDTO struct {
	Removed bool `json:"removed"`
}

type registeredDTO struct {
	GuildID string `json:"guild_id"`
	Created bool   `json:"created"`
}

type countsDTO struct {
	Queued        int `json:"queued"`
	OpenLobbies   int `json:"open_lobbies"`
	ActiveMatches int `json:"active_matches"`
}

type lobbyDTO struct {
	ID             string            `json:"id"`
	Players        []participantDTO  `json:"players"`
	CandidateMaps  []string          `json:"candidate_maps"`
	Votes          map[string]string `json:"votes"`
	VoiceChannelID string            `json:"voice_channel_id,omitempty"`
	TextChannelID  string            `json:"text_channel_id,omitempty"`
	CreatedAtUTC   string            `json:"created_at_utc"`
}

type matchDTO struct {
	ID              string           `json:"id"`
	TeamOne         []participantDTO `json:"team_one"`
	TeamTwo         []participantDTO `json:"team_two"`
	MapID           string           `json:"map_id"`
	State           string           `json:"state"`
	SubmitterID     string           `json:"submitter_id,omitempty"`
	ClaimedWinner   int              `json:"claimed_winner,omitempty"`
	Rejectors       []string         `json:"rejectors,omitempty"`
	VoiceChannelIDs []string         `json:"voice_channel_ids,omitempty"`
	TextChannelID   string           `json:"text_channel_id,omitempty"`
	CreatedAtUTC    string           `json:"created_at_utc"`
}

type mapDTO struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Enabled bool   `json:"enabled"`
}

// settlementDTO is the response of confirm and resolve: the rating outcome
// plus the voice channels the gateway should tear down.
type settlementDTO struct {
	Result          usecase.MatchResultEvent `json:"result"`
	VoiceChannelIDs []string                 `json:"voice_channel_ids,omitempty"`
}

func participantsToDTO(participants []matchmaking.Participant) []participantDTO {
	out := make([]participantDTO, 0, len(participants))
	for _, p := range participants {
		out = append(out, participantDTO{
			PlayerID:    string(p.ID),
			DisplayName: p.DisplayName,
			Rating:      p.Rating,
			GamesWon:    p.GamesWon,
			GamesLost:   p.GamesLost,
		})
	}
	return out
}

func lobbyToDTO(ctx context.Context, snap matchmaking.LobbySnapshot) lobbyDTO {
	ctx, span := startSpan(ctx, "httpapi.lobbyToDTO")
	defer span.End()

	candidates := make([]string, 0, len(snap.CandidateMaps))
	for _, m := range snap.CandidateMaps {
		candidates = append(candidates, string(m))
	}
	votes := make(map[string]string, len(snap.Votes))
	for playerID, mapID := range snap.Votes {
		votes[string(playerID)] = string(mapID)
	}

	return lobbyDTO{
		ID:             string(snap.ID),
		Players:        participantsToDTO(snap.Players),
		CandidateMaps:  candidates,
		Votes:          votes,
		VoiceChannelID: snap.VoiceChannelID,
		TextChannelID:  snap.TextChannelID,
		CreatedAtUTC:   snap.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func matchToDTO(ctx context.Context, snap matchmaking.MatchSnapshot) matchDTO {
	ctx, span := startSpan(ctx, "httpapi.matchToDTO")
	defer span.End()

	rejectors := make([]string, 0, len(snap.Rejectors))
	for _, id := range snap.Rejectors {
		rejectors = append(rejectors, string(id))
	}

	return matchDTO{
		ID:              string(snap.ID),
		TeamOne:         participantsToDTO(snap.TeamOne),
		TeamTwo:         participantsToDTO(snap.TeamTwo),
		MapID:           string(snap.Map),
		State:           string(snap.State),
		SubmitterID:     string(snap.SubmitterID),
		ClaimedWinner:   int(snap.ClaimedWinner),
		Rejectors:       rejectors,
		VoiceChannelIDs: snap.VoiceChannelIDs,
		TextChannelID:   snap.TextChannelID,
		CreatedAtUTC:    snap.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func mapToDTO(m gamemap.Map) mapDTO {
	return mapDTO{
		ID:      m.ID,
		Name:    m.Name,
		Enabled: m.Enabled,
	}
}
