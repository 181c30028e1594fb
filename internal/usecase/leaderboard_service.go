package usecase

import (
	"context"
	"fmt"
	"strings"

	"github.com/openmix/mixqueue/internal/domain/player"
	"github.com/openmix/mixqueue/internal/platform/cache"
)

const (
	leaderboardCachePrefix = "leaderboard:"
	leaderboardDefaultSize = 10
	leaderboardMaxSize     = 100
)

// LeaderboardEntry is one ranked row of a guild leaderboard.
type LeaderboardEntry struct {
	Rank        int    `json:"rank"`
	PlayerID    string `json:"player_id"`
	DisplayName string `json:"display_name"`
	Rating      int    `json:"rating"`
	GamesWon    int    `json:"games_won"`
	GamesLost   int    `json:"games_lost"`
}

// LeaderboardService serves ranked player listings. Reads go through the
// cache store, which collapses concurrent misses into one repository query;
// settlements invalidate the guild's entries.
type LeaderboardService struct {
	playerRepo player.Repository
	store      *cache.Store
}

func NewLeaderboardService(playerRepo player.Repository, store *cache.Store) *LeaderboardService {
	return &LeaderboardService{
		playerRepo: playerRepo,
		store:      store,
	}
}

func (s *LeaderboardService) Top(ctx context.Context, guildID string, limit int) ([]LeaderboardEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.LeaderboardService.Top")
	defer span.End()

	guildID = strings.TrimSpace(guildID)
	if guildID == "" {
		return nil, fmt.Errorf("%w: guild id is required", ErrInvalidInput)
	}
	if limit <= 0 {
		limit = leaderboardDefaultSize
	}
	if limit > leaderboardMaxSize {
		limit = leaderboardMaxSize
	}

	key := fmt.Sprintf("%s%s:%d", leaderboardCachePrefix, guildID, limit)
	value, err := s.store.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		rows, loadErr := s.playerRepo.TopByRating(ctx, guildID, limit)
		if loadErr != nil {
			return nil, fmt.Errorf("load leaderboard guild=%s: %w", guildID, loadErr)
		}
		entries := make([]LeaderboardEntry, 0, len(rows))
		for i, row := range rows {
			entries = append(entries, LeaderboardEntry{
				Rank:        i + 1,
				PlayerID:    row.ID,
				DisplayName: row.DisplayName,
				Rating:      row.Rating,
				GamesWon:    row.GamesWon,
				GamesLost:   row.GamesLost,
			})
		}
		return entries, nil
	})
	if err != nil {
		return nil, err
	}

	entries, ok := value.([]LeaderboardEntry)
	if !ok {
		return nil, fmt.Errorf("unexpected leaderboard cache payload for guild %s", guildID)
	}
	return entries, nil
}

// Invalidate drops every cached listing of one guild. Called after each
// settlement so new ratings show up immediately.
func (s *LeaderboardService) Invalidate(ctx context.Context, guildID string) {
	s.store.DeletePrefix(ctx, leaderboardCachePrefix+guildID+":")
}
