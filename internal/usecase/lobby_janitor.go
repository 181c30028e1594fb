package usecase

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"
	"go.uber.org/zap"

	"github.com/openmix/mixqueue/internal/domain/matchmaking"
)

const janitorWorkerCount = 4

// LobbyJanitor sweeps every guild on an interval and cancels lobbies whose
// map vote never concluded. Guild sweeps are independent, so they run on a
// shared worker pool.
type LobbyJanitor struct {
	directory *matchmaking.Directory
	logger    *zap.Logger
	maxAge    time.Duration
	interval  time.Duration

	cancel context.CancelFunc
	done   chan struct{}
}

func NewLobbyJanitor(directory *matchmaking.Directory, logger *zap.Logger, maxAge, interval time.Duration) *LobbyJanitor {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LobbyJanitor{
		directory: directory,
		logger:    logger,
		maxAge:    maxAge,
		interval:  interval,
	}
}

// Start launches the sweep loop. It returns immediately; call Stop to drain.
func (j *LobbyJanitor) Start(ctx context.Context) error {
	if j.maxAge <= 0 || j.interval <= 0 {
		return fmt.Errorf("%w: janitor max age and interval must be positive", ErrInvalidInput)
	}
	if j.cancel != nil {
		return fmt.Errorf("%w: janitor already started", ErrConflict)
	}

	workers, err := ants.NewPool(janitorWorkerCount)
	if err != nil {
		return fmt.Errorf("create janitor worker pool: %w", err)
	}

	ctx, j.cancel = context.WithCancel(ctx)
	j.done = make(chan struct{})

	go func() {
		defer close(j.done)
		defer workers.Release()

		ticker := time.NewTicker(j.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				j.sweep(ctx, workers)
			}
		}
	}()

	return nil
}

// Stop halts the loop and waits for in-flight sweeps to finish.
func (j *LobbyJanitor) Stop() {
	if j.cancel == nil {
		return
	}
	j.cancel()
	<-j.done
	j.cancel = nil
}

func (j *LobbyJanitor) sweep(ctx context.Context, workers *ants.Pool) {
	cutoff := time.Now().Add(-j.maxAge)

	var wg sync.WaitGroup
	for _, guildID := range j.directory.GuildIDs() {
		guildID := guildID
		wg.Add(1)
		if err := workers.Submit(func() {
			defer wg.Done()
			j.sweepGuild(ctx, guildID, cutoff)
		}); err != nil {
			wg.Done()
			j.logger.Warn("submit janitor sweep failed",
				zap.String("guild_id", string(guildID)),
				zap.Error(err))
		}
	}
	wg.Wait()
}

func (j *LobbyJanitor) sweepGuild(ctx context.Context, guildID matchmaking.GuildID, cutoff time.Time) {
	if ctx.Err() != nil {
		return
	}
	guild, err := j.directory.Guild(guildID)
	if err != nil {
		// Guild removed between listing and sweep.
		return
	}

	for _, lobby := range guild.Lobbies() {
		if lobby.CreatedAt.After(cutoff) {
			continue
		}
		if _, err := guild.CancelLobby(lobby.ID); err != nil {
			// Promoted or cancelled while sweeping.
			continue
		}
		j.logger.Info("expired stale lobby",
			zap.String("guild_id", string(guildID)),
			zap.String("lobby_id", string(lobby.ID)),
			zap.Time("created_at", lobby.CreatedAt))
	}
}
