package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/sourcegraph/conc/pool"
	"go.uber.org/zap"

	"github.com/openmix/mixqueue/internal/domain/gamemap"
	"github.com/openmix/mixqueue/internal/domain/matchmaking"
	"github.com/openmix/mixqueue/internal/domain/player"
)

// recentHistoryDepth caps how many past maps per player feed the shortlist
// decay. Older plays carry no weight anyway.
const recentHistoryDepth = 6

// MatchResultEvent is the settlement payload handed to the result feed and to
// cache invalidation.
type MatchResultEvent struct {
	GuildID    string              `json:"guild_id"`
	MatchID    string              `json:"match_id"`
	MapID      string              `json:"map_id"`
	WinnerTeam int                 `json:"winner_team"`
	Updates    []MatchResultUpdate `json:"updates"`
}

type MatchResultUpdate struct {
	PlayerID  string `json:"player_id"`
	OldRating int    `json:"old_rating"`
	NewRating int    `json:"new_rating"`
	Won       bool   `json:"won"`
}

// ResultPublisher pushes settled results to interested consumers. Publishing
// is best effort; settlement never rolls back on a publish failure.
type ResultPublisher interface {
	PublishMatchResult(ctx context.Context, event MatchResultEvent) error
}

type leaderboardInvalidator interface {
	Invalidate(ctx context.Context, guildID string)
}

// MatchmakingService drives the queue, lobby and match lifecycle for every
// registered guild and keeps player records in sync with confirmed results.
type MatchmakingService struct {
	directory   *matchmaking.Directory
	playerRepo  player.Repository
	mapRepo     gamemap.Repository
	publisher   ResultPublisher
	leaderboard leaderboardInvalidator
	logger      *zap.Logger
	settings    matchmaking.Settings
}

func NewMatchmakingService(
	directory *matchmaking.Directory,
	playerRepo player.Repository,
	mapRepo gamemap.Repository,
	publisher ResultPublisher,
	leaderboard leaderboardInvalidator,
	logger *zap.Logger,
	settings matchmaking.Settings,
) *MatchmakingService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &MatchmakingService{
		directory:   directory,
		playerRepo:  playerRepo,
		mapRepo:     mapRepo,
		publisher:   publisher,
		leaderboard: leaderboard,
		logger:      logger,
		settings:    settings,
	}
}

func (s *MatchmakingService) RegisterGuild(ctx context.Context, guildID string) (bool, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.RegisterGuild")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return false, fmt.Errorf("%w: guild id is required", ErrInvalidInput)
	}
	_, created := s.directory.Register(matchmaking.GuildID(guildID))
	return created, nil
}

func (s *MatchmakingService) RemoveGuild(ctx context.Context, guildID string) (bool, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.RemoveGuild")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return false, fmt.Errorf("%w: guild id is required", ErrInvalidInput)
	}
	return s.directory.Remove(matchmaking.GuildID(guildID)), nil
}

// JoinQueue enqueues a player, creating their rating record on first contact.
func (s *MatchmakingService) JoinQueue(ctx context.Context, guildID, playerID, displayName string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.JoinQueue")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	playerID = strings.TrimSpace(playerID)
	displayName = strings.TrimSpace(displayName)
	if guildID == "" || playerID == "" {
		return 0, fmt.Errorf("%w: guild id and player id are required", ErrInvalidInput)
	}

	guild, err := s.guild(guildID)
	if err != nil {
		return 0, err
	}

	record, exists, err := s.playerRepo.GetByID(ctx, guildID, playerID)
	if err != nil {
		return 0, fmt.Errorf("get player record: %w", err)
	}
	if !exists {
		record = player.Player{
			ID:          playerID,
			GuildID:     guildID,
			DisplayName: displayName,
			Rating:      s.settings.StartingRating,
		}
		if record.DisplayName == "" {
			record.DisplayName = playerID
		}
		if err := s.playerRepo.Upsert(ctx, record); err != nil {
			return 0, fmt.Errorf("create player record: %w", err)
		}
	} else if displayName != "" && displayName != record.DisplayName {
		record.DisplayName = displayName
		if err := s.playerRepo.Upsert(ctx, record); err != nil {
			return 0, fmt.Errorf("refresh player display name: %w", err)
		}
	}

	if err := guild.Enqueue(toParticipant(record)); err != nil {
		return 0, mapEngineError(err)
	}
	return guild.QueueSize(), nil
}

func (s *MatchmakingService) LeaveQueue(ctx context.Context, guildID, playerID string) (bool, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.LeaveQueue")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return false, err
	}
	return guild.Dequeue(matchmaking.PlayerID(playerID)), nil
}

func (s *MatchmakingService) QueueSnapshot(ctx context.Context, guildID string) ([]matchmaking.Participant, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.QueueSnapshot")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return nil, err
	}
	return guild.QueueSnapshot(), nil
}

// GuildCounts reports queue depth, open lobbies and active matches.
func (s *MatchmakingService) GuildCounts(ctx context.Context, guildID string) (queued, lobbies, matches int, err error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.GuildCounts")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return 0, 0, 0, err
	}
	lobbies, matches = guild.Counts()
	return guild.QueueSize(), lobbies, matches, nil
}

// TryFormLobby pulls the next full group off the queue and shortlists its
// candidate maps from the guild's stored preferences and recent play history.
func (s *MatchmakingService) TryFormLobby(ctx context.Context, guildID string) (matchmaking.LobbySnapshot, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.TryFormLobby")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return matchmaking.LobbySnapshot{}, err
	}

	pool, prefs, history, err := s.loadPreferenceInputs(ctx, guildID)
	if err != nil {
		return matchmaking.LobbySnapshot{}, err
	}
	if len(pool) == 0 {
		return matchmaking.LobbySnapshot{}, fmt.Errorf("%w: guild %s has no enabled maps", ErrDependencyUnavailable, guildID)
	}

	snap, err := guild.FormLobby(pool, prefs, history)
	if err != nil {
		return matchmaking.LobbySnapshot{}, mapEngineError(err)
	}
	return snap, nil
}

func (s *MatchmakingService) CastMapVote(ctx context.Context, guildID, lobbyID, playerID, mapID string) error {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.CastMapVote")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return err
	}
	if err := guild.CastMapVote(matchmaking.LobbyID(lobbyID), matchmaking.PlayerID(playerID), matchmaking.MapID(mapID)); err != nil {
		return mapEngineError(err)
	}
	return nil
}

func (s *MatchmakingService) AttachLobbyChannels(ctx context.Context, guildID, lobbyID, voiceChannelID, textChannelID string) error {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.AttachLobbyChannels")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return err
	}
	if err := guild.AttachLobbyChannels(matchmaking.LobbyID(lobbyID), voiceChannelID, textChannelID); err != nil {
		return mapEngineError(err)
	}
	return nil
}

func (s *MatchmakingService) AttachMatchChannels(ctx context.Context, guildID, matchID string, voiceChannelIDs []string, textChannelID string) error {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.AttachMatchChannels")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return err
	}
	if err := guild.AttachMatchChannels(matchmaking.MatchID(matchID), voiceChannelIDs, textChannelID); err != nil {
		return mapEngineError(err)
	}
	return nil
}

// StartMatch resolves the lobby's map vote, splits balanced teams and turns
// the lobby into an active match.
func (s *MatchmakingService) StartMatch(ctx context.Context, guildID, lobbyID string) (matchmaking.MatchSnapshot, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.StartMatch")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return matchmaking.MatchSnapshot{}, err
	}
	snap, err := guild.PromoteLobby(matchmaking.LobbyID(lobbyID))
	if err != nil {
		return matchmaking.MatchSnapshot{}, mapEngineError(err)
	}
	return snap, nil
}

func (s *MatchmakingService) LobbyInfo(ctx context.Context, guildID, lobbyID string) (matchmaking.LobbySnapshot, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.LobbyInfo")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return matchmaking.LobbySnapshot{}, err
	}
	snap, err := guild.Lobby(matchmaking.LobbyID(lobbyID))
	if err != nil {
		return matchmaking.LobbySnapshot{}, mapEngineError(err)
	}
	return snap, nil
}

func (s *MatchmakingService) Lobbies(ctx context.Context, guildID string) ([]matchmaking.LobbySnapshot, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.Lobbies")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return nil, err
	}
	return guild.Lobbies(), nil
}

func (s *MatchmakingService) MatchInfo(ctx context.Context, guildID, matchID string) (matchmaking.MatchSnapshot, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.MatchInfo")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return matchmaking.MatchSnapshot{}, err
	}
	snap, err := guild.Match(matchmaking.MatchID(matchID))
	if err != nil {
		return matchmaking.MatchSnapshot{}, mapEngineError(err)
	}
	return snap, nil
}

// CancelLobby drops a lobby without starting a match. Players are not
// re-queued; the returned snapshot carries the channel ids to clean up.
func (s *MatchmakingService) CancelLobby(ctx context.Context, guildID, lobbyID string) (matchmaking.LobbySnapshot, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.CancelLobby")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return matchmaking.LobbySnapshot{}, err
	}
	snap, err := guild.CancelLobby(matchmaking.LobbyID(lobbyID))
	if err != nil {
		return matchmaking.LobbySnapshot{}, mapEngineError(err)
	}
	return snap, nil
}

// CancelMatch drops an active match with no rating impact.
func (s *MatchmakingService) CancelMatch(ctx context.Context, guildID, matchID string) ([]string, error) {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.CancelMatch")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return nil, err
	}
	voice, err := guild.CancelMatch(matchmaking.MatchID(matchID))
	if err != nil {
		return nil, mapEngineError(err)
	}
	return voice, nil
}

func (s *MatchmakingService) SubmitResult(ctx context.Context, guildID, matchID, playerID string, winnerTeam int) error {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.SubmitResult")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return err
	}
	winner, err := toTeamID(winnerTeam)
	if err != nil {
		return err
	}
	if err := guild.SubmitResult(matchmaking.MatchID(matchID), matchmaking.PlayerID(playerID), winner); err != nil {
		return mapEngineError(err)
	}
	return nil
}

// ConfirmResult finalizes a submitted claim, persists the rating updates and
// announces the settlement.
func (s *MatchmakingService) ConfirmResult(ctx context.Context, guildID, matchID, playerID string) (MatchResultEvent, []string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.ConfirmResult")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return MatchResultEvent{}, nil, err
	}
	result, voice, err := guild.ConfirmResult(matchmaking.MatchID(matchID), matchmaking.PlayerID(playerID))
	if err != nil {
		return MatchResultEvent{}, nil, mapEngineError(err)
	}

	event, err := s.settle(ctx, guildID, result)
	if err != nil {
		return MatchResultEvent{}, nil, err
	}
	return event, voice, nil
}

func (s *MatchmakingService) RejectResult(ctx context.Context, guildID, matchID, playerID string) error {
	_, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.RejectResult")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return err
	}
	if err := guild.RejectResult(matchmaking.MatchID(matchID), matchmaking.PlayerID(playerID)); err != nil {
		return mapEngineError(err)
	}
	return nil
}

// ResolveResult lets an administrator settle a match directly, including one
// the confirmation protocol flagged unresolvable.
func (s *MatchmakingService) ResolveResult(ctx context.Context, guildID, matchID string, winnerTeam int) (MatchResultEvent, []string, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.MatchmakingService.ResolveResult")
	defer span.End()

	guild, err := s.guild(guildID)
	if err != nil {
		return MatchResultEvent{}, nil, err
	}
	winner, err := toTeamID(winnerTeam)
	if err != nil {
		return MatchResultEvent{}, nil, err
	}
	result, voice, err := guild.SubmitResultAsAdmin(matchmaking.MatchID(matchID), winner)
	if err != nil {
		return MatchResultEvent{}, nil, mapEngineError(err)
	}

	event, err := s.settle(ctx, guildID, result)
	if err != nil {
		return MatchResultEvent{}, nil, err
	}
	return event, voice, nil
}

// settle writes the new ratings, appends map history and fans the event out.
// Player upserts hit independent rows, so they run concurrently.
func (s *MatchmakingService) settle(ctx context.Context, guildID string, result *matchmaking.MatchResult) (MatchResultEvent, error) {
	ids := make([]string, 0, len(result.Updates))
	for _, update := range result.Updates {
		ids = append(ids, string(update.Player.ID))
	}
	fresh, err := s.playerRepo.GetByIDs(ctx, guildID, ids)
	if err != nil {
		return MatchResultEvent{}, fmt.Errorf("load settling players: %w", err)
	}
	stored := make(map[string]player.Player, len(fresh))
	for _, p := range fresh {
		stored[p.ID] = p
	}

	writers := pool.New().WithErrors().WithContext(ctx)
	for _, update := range result.Updates {
		update := update
		writers.Go(func(ctx context.Context) error {
			record := player.Player{
				ID:          string(update.Player.ID),
				GuildID:     guildID,
				DisplayName: update.Player.DisplayName,
				Rating:      update.NewRating,
				GamesWon:    update.Player.GamesWon,
				GamesLost:   update.Player.GamesLost,
			}
			// Counters and display name build on the stored row, not the
			// match snapshot, so a settlement landing after another write
			// does not roll that write back. The match contributes only
			// its own outcome.
			if current, ok := stored[record.ID]; ok {
				record.DisplayName = current.DisplayName
				record.GamesWon = current.GamesWon
				record.GamesLost = current.GamesLost
				if update.Won {
					record.GamesWon++
				} else {
					record.GamesLost++
				}
			}
			if err := s.playerRepo.Upsert(ctx, record); err != nil {
				return fmt.Errorf("upsert player %s: %w", record.ID, err)
			}
			return nil
		})
	}
	if err := writers.Wait(); err != nil {
		return MatchResultEvent{}, fmt.Errorf("persist rating updates: %w", err)
	}

	entries := make([]gamemap.PlayedEntry, 0, len(result.Updates))
	for _, update := range result.Updates {
		entries = append(entries, gamemap.PlayedEntry{
			GuildID:  guildID,
			PlayerID: string(update.Player.ID),
			MapID:    string(result.Map),
		})
	}
	if err := s.mapRepo.RecordPlayed(ctx, entries); err != nil {
		return MatchResultEvent{}, fmt.Errorf("record played map: %w", err)
	}

	event := toResultEvent(guildID, result)
	if s.leaderboard != nil {
		s.leaderboard.Invalidate(ctx, guildID)
	}
	if s.publisher != nil {
		if err := s.publisher.PublishMatchResult(ctx, event); err != nil {
			s.logger.Warn("publish match result failed",
				zap.String("guild_id", guildID),
				zap.String("match_id", event.MatchID),
				zap.Error(err))
		}
	}
	return event, nil
}

func (s *MatchmakingService) loadPreferenceInputs(ctx context.Context, guildID string) ([]matchmaking.MapID, matchmaking.PreferenceMatrix, matchmaking.MapHistory, error) {
	maps, err := s.mapRepo.ListByGuild(ctx, guildID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("list guild maps: %w", err)
	}
	pool := make([]matchmaking.MapID, 0, len(maps))
	for _, m := range maps {
		if m.Enabled {
			pool = append(pool, matchmaking.MapID(m.ID))
		}
	}

	rows, err := s.mapRepo.PreferencesByGuild(ctx, guildID)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load map preferences: %w", err)
	}
	prefs := make(matchmaking.PreferenceMatrix, len(rows))
	for _, row := range rows {
		id := matchmaking.PlayerID(row.PlayerID)
		if prefs[id] == nil {
			prefs[id] = make(map[matchmaking.MapID]float64)
		}
		prefs[id][matchmaking.MapID(row.MapID)] = float64(row.Score)
	}

	played, err := s.mapRepo.HistoryByGuild(ctx, guildID, recentHistoryDepth)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("load map history: %w", err)
	}
	history := make(matchmaking.MapHistory)
	for _, entry := range played {
		id := matchmaking.PlayerID(entry.PlayerID)
		history[id] = append(history[id], matchmaking.MapID(entry.MapID))
	}

	return pool, prefs, history, nil
}

func (s *MatchmakingService) guild(guildID string) (*matchmaking.GuildState, error) {
	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return nil, fmt.Errorf("%w: guild id is required", ErrInvalidInput)
	}
	guild, err := s.directory.Guild(matchmaking.GuildID(guildID))
	if err != nil {
		return nil, mapEngineError(err)
	}
	return guild, nil
}

func toParticipant(record player.Player) matchmaking.Participant {
	return matchmaking.Participant{
		ID:          matchmaking.PlayerID(record.ID),
		DisplayName: record.DisplayName,
		Rating:      record.Rating,
		GamesWon:    record.GamesWon,
		GamesLost:   record.GamesLost,
	}
}

func toTeamID(team int) (matchmaking.TeamID, error) {
	switch team {
	case int(matchmaking.TeamOne):
		return matchmaking.TeamOne, nil
	case int(matchmaking.TeamTwo):
		return matchmaking.TeamTwo, nil
	default:
		return matchmaking.TeamNone, fmt.Errorf("%w: winner team must be 1 or 2", ErrInvalidInput)
	}
}

func toResultEvent(guildID string, result *matchmaking.MatchResult) MatchResultEvent {
	updates := make([]MatchResultUpdate, 0, len(result.Updates))
	for _, u := range result.Updates {
		updates = append(updates, MatchResultUpdate{
			PlayerID:  string(u.Player.ID),
			OldRating: u.OldRating,
			NewRating: u.NewRating,
			Won:       u.Won,
		})
	}
	return MatchResultEvent{
		GuildID:    guildID,
		MatchID:    string(result.MatchID),
		MapID:      string(result.Map),
		WinnerTeam: int(result.WinnerTeam),
		Updates:    updates,
	}
}
