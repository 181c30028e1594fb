package app

import (
	"context"
	"fmt"
	"math/rand/v2"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	"go.opentelemetry.io/otel/attribute"

	"github.com/openmix/mixqueue/internal/config"
	"github.com/openmix/mixqueue/internal/domain/gamemap"
	"github.com/openmix/mixqueue/internal/domain/matchmaking"
	"github.com/openmix/mixqueue/internal/domain/player"
	repocache "github.com/openmix/mixqueue/internal/infrastructure/repository/cache"
	"github.com/openmix/mixqueue/internal/infrastructure/repository/memory"
	"github.com/openmix/mixqueue/internal/infrastructure/repository/postgres"
	"github.com/openmix/mixqueue/internal/infrastructure/resultfeed"
	"github.com/openmix/mixqueue/internal/interfaces/httpapi"
	"github.com/openmix/mixqueue/internal/platform/cache"
	idgen "github.com/openmix/mixqueue/internal/platform/id"
	"github.com/openmix/mixqueue/internal/platform/logging"
	"github.com/openmix/mixqueue/internal/platform/resilience"
	"github.com/openmix/mixqueue/internal/usecase"
)

// App bundles the HTTP server with the background workers and connections
// that share its lifecycle.
type App struct {
	Server  *http.Server
	janitor *usecase.LobbyJanitor
	db      *sqlx.DB
	logger  *logging.Logger
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}

	settings := matchmaking.Settings{
		TeamSize:               cfg.TeamSize,
		StartingRating:         cfg.StartingRating,
		CandidateMapCount:      cfg.CandidateMapCount,
		FallbackCandidateCount: cfg.FallbackCandidateCount,
	}

	ids := idgen.NewRandomGenerator()
	directory := matchmaking.NewDirectory(settings, ids, func() *rand.Rand {
		return rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	})

	var (
		playerRepo player.Repository
		mapRepo    gamemap.Repository
		db         *sqlx.DB
	)
	switch cfg.StorageDriver {
	case config.StorageDriverPostgres:
		var err error
		db, err = openDatabase(ctx, cfg)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		if err := postgres.BootstrapSeed(ctx, db); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("bootstrap seed: %w", err)
		}
		playerRepo = postgres.NewPlayerRepository(db)
		mapRepo = repocache.NewGameMapRepository(
			postgres.NewGameMapRepository(db), cache.NewStore(cfg.CacheTTL))
	default:
		playerRepo = memory.NewPlayerRepository(memory.SeedPlayers())
		mapRepo = memory.NewGameMapRepository(memory.SeedMaps())
	}

	leaderboard := usecase.NewLeaderboardService(playerRepo, cache.NewStore(cfg.CacheTTL))

	var publisher usecase.ResultPublisher
	if cfg.ResultFeedEnabled {
		feed, err := resultfeed.NewWebhookPublisher(resultfeed.WebhookPublisherConfig{
			URL:       cfg.ResultFeedURL,
			AuthToken: cfg.ResultFeedToken,
			Timeout:   cfg.ResultFeedTimeout,
			Breaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.ResultFeedCircuitEnabled,
				FailureThreshold: cfg.ResultFeedCircuitFailureCount,
				OpenTimeout:      cfg.ResultFeedCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.ResultFeedCircuitHalfOpenReq,
			},
		}, logger)
		if err != nil {
			if db != nil {
				_ = db.Close()
			}
			return nil, fmt.Errorf("build result feed publisher: %w", err)
		}
		publisher = feed
	}

	matchmakingSvc := usecase.NewMatchmakingService(
		directory, playerRepo, mapRepo, publisher, leaderboard, logger.Zap(), settings)
	mapPool := usecase.NewMapPoolService(mapRepo, ids)
	janitor := usecase.NewLobbyJanitor(directory, logger.Zap(), cfg.LobbyMaxAge, cfg.LobbySweepInterval)

	handler := httpapi.NewHandler(matchmakingSvc, leaderboard, mapPool, logger)
	router := httpapi.NewRouter(handler, logger, cfg.CORSAllowedOrigins, cfg.InternalServiceToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if server.Addr == "" {
		if db != nil {
			_ = db.Close()
		}
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return &App{
		Server:  server,
		janitor: janitor,
		db:      db,
		logger:  logger,
	}, nil
}

// Start launches the background workers. The HTTP server itself is started
// by the caller via App.Server.
func (a *App) Start(ctx context.Context) error {
	if err := a.janitor.Start(ctx); err != nil {
		return fmt.Errorf("start lobby janitor: %w", err)
	}
	return nil
}

// Shutdown drains the HTTP server, stops the janitor and closes the
// database connection.
func (a *App) Shutdown(ctx context.Context) error {
	var firstErr error
	if err := a.Server.Shutdown(ctx); err != nil {
		firstErr = err
	}
	a.janitor.Stop()
	if a.db != nil {
		if err := a.db.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

func openDatabase(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(attribute.String("db.system", "postgresql")),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(pingCtx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	return db, nil
}
