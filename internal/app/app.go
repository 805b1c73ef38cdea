package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"

	"github.com/karimzakaria/fantasy-backend/internal/config"
	"github.com/karimzakaria/fantasy-backend/internal/domain/fixture"
	"github.com/karimzakaria/fantasy-backend/internal/domain/matchweek"
	"github.com/karimzakaria/fantasy-backend/internal/domain/player"
	"github.com/karimzakaria/fantasy-backend/internal/domain/roster"
	"github.com/karimzakaria/fantasy-backend/internal/domain/scoring"
	"github.com/karimzakaria/fantasy-backend/internal/domain/team"
	"github.com/karimzakaria/fantasy-backend/internal/infrastructure/account"
	repocache "github.com/karimzakaria/fantasy-backend/internal/infrastructure/repository/cache"
	"github.com/karimzakaria/fantasy-backend/internal/infrastructure/repository/memory"
	"github.com/karimzakaria/fantasy-backend/internal/infrastructure/repository/postgres"
	"github.com/karimzakaria/fantasy-backend/internal/interfaces/httpapi"
	basecache "github.com/karimzakaria/fantasy-backend/internal/platform/cache"
	"github.com/karimzakaria/fantasy-backend/internal/platform/logging"
	"github.com/karimzakaria/fantasy-backend/internal/platform/resilience"
	"github.com/karimzakaria/fantasy-backend/internal/usecase"
)

func NewHTTPServer(ctx context.Context, cfg config.Config, logger *logging.Logger) (*http.Server, error) {
	if logger == nil {
		logger = logging.Default()
	}

	var (
		teamRepo      team.Repository
		playerRepo    player.Repository
		matchweekRepo matchweek.Repository
		fixtureRepo   fixture.Repository
		rosterRepo    roster.Repository
		eventRepo     scoring.EventRepository
		snapshotRepo  scoring.SnapshotRepository
		pointsRepo    scoring.PointsRepository
	)

	var db *sqlx.DB
	if cfg.DBEnabled {
		var err error
		db, err = openDB(ctx, cfg, logger)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}

		teamRepo = postgres.NewTeamRepository(db)
		playerRepo = postgres.NewPlayerRepository(db)
		matchweekRepo = postgres.NewMatchweekRepository(db)
		fixtureRepo = postgres.NewFixtureRepository(db)
		rosterRepo = postgres.NewRosterRepository(db)
		eventRepo = postgres.NewEventRepository(db)
		snapshotRepo = postgres.NewSnapshotRepository(db)
		pointsRepo = postgres.NewPointsRepository(db)
	} else {
		teams := memory.NewTeamRepository()
		players := memory.NewPlayerRepository()
		matchweeks := memory.NewMatchweekRepository()
		fixtures := memory.NewFixtureRepository()
		if err := memory.Bootstrap(ctx, teams, players, matchweeks, fixtures); err != nil {
			return nil, fmt.Errorf("seed memory repositories: %w", err)
		}

		teamRepo = teams
		playerRepo = players
		matchweekRepo = matchweeks
		fixtureRepo = fixtures
		rosterRepo = memory.NewRosterRepository(players, teams)
		eventRepo = memory.NewEventRepository(fixtures)
		snapshotRepo = memory.NewSnapshotRepository()
		pointsRepo = memory.NewPointsRepository()

		logger.Info("running with in-memory repositories", "reason", "DB_ENABLED=false")
	}

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		teamRepo = repocache.NewTeamRepository(teamRepo, store)
		playerRepo = repocache.NewPlayerRepository(playerRepo, store)
		matchweekRepo = repocache.NewMatchweekRepository(matchweekRepo, store)
	}

	teamSvc := usecase.NewTeamService(teamRepo, logger)
	playerSvc := usecase.NewPlayerService(playerRepo, teamRepo, logger)
	fixtureSvc := usecase.NewFixtureService(fixtureRepo, teamRepo, matchweekRepo, logger)
	scoringSvc := usecase.NewScoringService(
		eventRepo,
		snapshotRepo,
		pointsRepo,
		rosterRepo,
		fixtureRepo,
		playerRepo,
		cfg.Points,
		cfg.ScoringWorkers,
		logger,
	)
	matchweekSvc := usecase.NewMatchweekService(matchweekRepo, rosterRepo, snapshotRepo, scoringSvc, logger)
	rosterSvc := usecase.NewRosterService(
		rosterRepo,
		playerRepo,
		teamRepo,
		matchweekSvc,
		cfg.Rules,
		cfg.LockRequiresSnapshot,
		logger,
	)

	accountClient := account.NewClient(
		&http.Client{Timeout: cfg.AccountTimeout},
		account.Config{
			BaseURL:        cfg.AccountBaseURL,
			IntrospectPath: cfg.AccountIntrospectPath,
			AdminKey:       cfg.AccountAdminKey,
			Timeout:        cfg.AccountTimeout,
			CacheTTL:       cfg.AccountCacheTTL,
			CircuitBreaker: resilience.CircuitBreakerConfig{
				Enabled:          cfg.AccountCircuitEnabled,
				FailureThreshold: cfg.AccountCircuitFailureCount,
				OpenTimeout:      cfg.AccountCircuitOpenTimeout,
				HalfOpenMaxReq:   cfg.AccountCircuitHalfOpenMax,
			},
		},
		logger,
	)

	handler := httpapi.NewHandler(teamSvc, playerSvc, fixtureSvc, matchweekSvc, rosterSvc, scoringSvc, logger)
	router := httpapi.NewRouter(handler, accountClient, logger, cfg.CORSAllowedOrigins)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}
	if db != nil {
		server.RegisterOnShutdown(func() {
			if err := db.Close(); err != nil {
				logger.Warn("close database", "error", err)
			}
		})
	}

	if server.Addr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, nil
}
