package usecase

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/openmix/mixqueue/internal/domain/player"
	"github.com/openmix/mixqueue/internal/platform/cache"
)

type countingPlayerRepo struct {
	mu    sync.Mutex
	rows  []player.Player
	calls int
	fail  bool
}

func (r *countingPlayerRepo) GetByID(context.Context, string, string) (player.Player, bool, error) {
	return player.Player{}, false, nil
}

func (r *countingPlayerRepo) GetByIDs(context.Context, string, []string) ([]player.Player, error) {
	return nil, nil
}

func (r *countingPlayerRepo) Upsert(context.Context, player.Player) error {
	return nil
}

func (r *countingPlayerRepo) TopByRating(_ context.Context, _ string, limit int) ([]player.Player, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	if r.fail {
		return nil, errors.New("storage down")
	}
	if limit > len(r.rows) {
		limit = len(r.rows)
	}
	return r.rows[:limit], nil
}

func TestLeaderboardService_TopCachesRepeatedReads(t *testing.T) {
	t.Parallel()

	repo := &countingPlayerRepo{rows: []player.Player{
		{ID: "p1", GuildID: "g1", DisplayName: "one", Rating: 1524, GamesWon: 1},
		{ID: "p2", GuildID: "g1", DisplayName: "two", Rating: 1354, GamesLost: 1},
	}}
	svc := NewLeaderboardService(repo, cache.NewStore(time.Minute))
	ctx := context.Background()

	first, err := svc.Top(ctx, "g1", 10)
	if err != nil {
		t.Fatalf("first read: %v", err)
	}
	if len(first) != 2 || first[0].Rank != 1 || first[0].PlayerID != "p1" {
		t.Fatalf("unexpected leaderboard: %+v", first)
	}

	if _, err := svc.Top(ctx, "g1", 10); err != nil {
		t.Fatalf("second read: %v", err)
	}
	repo.mu.Lock()
	calls := repo.calls
	repo.mu.Unlock()
	if calls != 1 {
		t.Fatalf("expected 1 repository call, got %d", calls)
	}
}

func TestLeaderboardService_InvalidateForcesReload(t *testing.T) {
	t.Parallel()

	repo := &countingPlayerRepo{rows: []player.Player{
		{ID: "p1", GuildID: "g1", DisplayName: "one", Rating: 1500},
	}}
	svc := NewLeaderboardService(repo, cache.NewStore(time.Minute))
	ctx := context.Background()

	if _, err := svc.Top(ctx, "g1", 5); err != nil {
		t.Fatalf("first read: %v", err)
	}
	svc.Invalidate(ctx, "g1")
	if _, err := svc.Top(ctx, "g1", 5); err != nil {
		t.Fatalf("read after invalidate: %v", err)
	}

	repo.mu.Lock()
	calls := repo.calls
	repo.mu.Unlock()
	if calls != 2 {
		t.Fatalf("expected reload after invalidation, calls=%d", calls)
	}
}

func TestLeaderboardService_InputValidation(t *testing.T) {
	t.Parallel()

	svc := NewLeaderboardService(&countingPlayerRepo{}, cache.NewStore(time.Minute))
	if _, err := svc.Top(context.Background(), "  ", 10); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestLeaderboardService_RepositoryErrorPassesThrough(t *testing.T) {
	t.Parallel()

	repo := &countingPlayerRepo{fail: true}
	svc := NewLeaderboardService(repo, cache.NewStore(time.Minute))
	if _, err := svc.Top(context.Background(), "g1", 10); err == nil {
		t.Fatal("expected storage error to surface")
	}
}
