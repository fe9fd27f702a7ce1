package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/riskibarqy/minivoetbal/internal/config"
	"github.com/riskibarqy/minivoetbal/internal/domain/access"
	"github.com/riskibarqy/minivoetbal/internal/domain/finance"
	"github.com/riskibarqy/minivoetbal/internal/domain/match"
	"github.com/riskibarqy/minivoetbal/internal/domain/player"
	"github.com/riskibarqy/minivoetbal/internal/domain/session"
	"github.com/riskibarqy/minivoetbal/internal/domain/suspension"
	"github.com/riskibarqy/minivoetbal/internal/domain/team"
	"github.com/riskibarqy/minivoetbal/internal/domain/user"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/jobs"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/repository/cache"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/minivoetbal/internal/infrastructure/repository/postgres"
	"github.com/riskibarqy/minivoetbal/internal/interfaces/httpapi"
	"github.com/riskibarqy/minivoetbal/internal/observability"
	basecache "github.com/riskibarqy/minivoetbal/internal/platform/cache"
	"github.com/riskibarqy/minivoetbal/internal/platform/clock"
	"github.com/riskibarqy/minivoetbal/internal/platform/id"
	"github.com/riskibarqy/minivoetbal/internal/platform/logging"
	"github.com/riskibarqy/minivoetbal/internal/platform/resilience"
	"github.com/riskibarqy/minivoetbal/internal/usecase"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
)

// App holds the wired HTTP server and its background collaborators.
type App struct {
	Server    *http.Server
	Scheduler *jobs.Scheduler
	Metrics   *observability.Metrics

	db *sqlx.DB
}

type repositories struct {
	teams       team.Repository
	players     player.Repository
	matches     match.Repository
	suspensions suspension.Repository
	finance     finance.Repository
	users       user.Repository
	sessions    session.Repository
}

func New(ctx context.Context, cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		logger = logging.Default()
	}
	if cfg.HTTPAddr == "" {
		return nil, fmt.Errorf("http server addr cannot be empty")
	}

	out := &App{}

	repos, db, err := buildRepositories(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}
	out.db = db

	if cfg.CacheEnabled {
		store := basecache.NewStore(cfg.CacheTTL)
		repos.teams = cache.NewTeamRepository(repos.teams, store)
		repos.players = cache.NewPlayerRepository(repos.players, store)
	}

	clk := clock.NewLocal(cfg.Location)
	ids := id.NewUUIDGenerator()
	evaluator := access.NewEvaluator(cfg.MatchLockLead)
	logger.Info("match lock lead", "lead", evaluator.Lead())

	suspensionSvc := usecase.NewSuspensionService(repos.suspensions, repos.players, repos.matches, clk, ids, cfg.JobWorkers, logger.Named("suspension"))
	matchSvc := usecase.NewMatchService(repos.matches, repos.teams, repos.players, suspensionSvc, evaluator, clk, ids, logger.Named("match"))
	teamSvc := usecase.NewTeamService(repos.teams, repos.players, repos.matches, clk, ids)
	playerSvc := usecase.NewPlayerService(repos.teams, repos.players, ids)
	standingSvc := usecase.NewStandingService(repos.teams, repos.matches)
	bracketSvc := usecase.NewBracketService(repos.matches)
	financeSvc := usecase.NewFinanceService(repos.teams, repos.finance, clk, ids)
	authSvc := usecase.NewAuthService(repos.users, repos.sessions, repos.teams, usecase.AuthConfig{
		SessionTTL:       cfg.SessionTTL,
		SessionCacheSize: cfg.SessionCacheSize,
	}, clk, ids, logger.Named("auth"))
	overviewSvc := usecase.NewOverviewService(repos.teams, repos.matches, repos.suspensions, standingSvc, clk)

	if err := authSvc.EnsureAdmin(ctx, cfg.BootstrapAdminUsername, cfg.BootstrapAdminPassword); err != nil {
		out.closeDB(logger)
		return nil, fmt.Errorf("bootstrap admin: %w", err)
	}

	if cfg.MetricsEnabled {
		out.Metrics = observability.NewMetrics(nil)
	}

	var runner httpapi.JobRunner
	if cfg.JobsEnabled {
		scheduler := jobs.NewScheduler(cfg.Location, logger)
		scheduler.UseCircuitBreaker(resilience.CircuitBreakerConfig{
			Enabled:          cfg.JobFailureThreshold > 0,
			FailureThreshold: cfg.JobFailureThreshold,
			OpenTimeout:      cfg.JobBreakerOpenTimeout,
			HalfOpenMaxReq:   1,
		})
		if out.Metrics != nil {
			scheduler.Observe(out.Metrics.ObserveJob)
		}
		tasks := []jobs.Task{
			jobs.NewSuspensionServeTask(cfg.JobSuspensionSchedule, suspensionSvc, logger),
			jobs.NewSessionPurgeTask(cfg.JobSessionPurgeSchedule, authSvc, logger),
		}
		for _, task := range tasks {
			if err := scheduler.Register(task); err != nil {
				out.closeDB(logger)
				return nil, fmt.Errorf("register job %s: %w", task.Name, err)
			}
		}
		out.Scheduler = scheduler
		runner = scheduler
	}

	handler := httpapi.NewHandler(
		matchSvc,
		teamSvc,
		playerSvc,
		suspensionSvc,
		standingSvc,
		bracketSvc,
		financeSvc,
		authSvc,
		overviewSvc,
		runner,
		out.Metrics,
		logger,
	)
	router := httpapi.NewRouter(handler, authSvc, logger, httpapi.RouterConfig{
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
		Tracing: httpapi.TracingOptions{
			CaptureRequestBody:  cfg.UptraceCaptureRequestBody,
			RequestBodyMaxBytes: cfg.UptraceRequestBodyMaxBytes,
		},
		Metrics: out.Metrics,
	})

	out.Server = &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return out, nil
}

// Close releases the database pool when one was opened.
func (a *App) Close() error {
	if a == nil || a.db == nil {
		return nil
	}
	return a.db.Close()
}

func (a *App) closeDB(logger *logging.Logger) {
	if err := a.Close(); err != nil {
		logger.Warn("close database", "error", err)
	}
}

func buildRepositories(ctx context.Context, cfg config.Config, logger *logging.Logger) (repositories, *sqlx.DB, error) {
	switch cfg.StoreDriver {
	case config.StorePostgres:
		db, err := openDB(ctx, cfg)
		if err != nil {
			return repositories{}, nil, err
		}
		if cfg.SeedDemoData {
			if err := postgres.BootstrapSeed(ctx, db); err != nil {
				_ = db.Close()
				return repositories{}, nil, fmt.Errorf("seed demo data: %w", err)
			}
			logger.Info("demo data seeded", "store", cfg.StoreDriver)
		}
		return repositories{
			teams:       postgres.NewTeamRepository(db),
			players:     postgres.NewPlayerRepository(db),
			matches:     postgres.NewMatchRepository(db),
			suspensions: postgres.NewSuspensionRepository(db),
			finance:     postgres.NewFinanceRepository(db),
			users:       postgres.NewUserRepository(db),
			sessions:    postgres.NewSessionRepository(db),
		}, db, nil
	default:
		if !cfg.SeedDemoData {
			return repositories{
				teams:       memory.NewTeamRepository(nil),
				players:     memory.NewPlayerRepository(nil),
				matches:     memory.NewMatchRepository(nil),
				suspensions: memory.NewSuspensionRepository(nil),
				finance:     memory.NewFinanceRepository(nil),
				users:       memory.NewUserRepository(nil),
				sessions:    memory.NewSessionRepository(),
			}, nil, nil
		}
		return repositories{
			teams:       memory.NewTeamRepository(memory.SeedTeams()),
			players:     memory.NewPlayerRepository(memory.SeedPlayers()),
			matches:     memory.NewMatchRepository(memory.SeedMatches()),
			suspensions: memory.NewSuspensionRepository(nil),
			finance:     memory.NewFinanceRepository(memory.SeedTransactions()),
			users:       memory.NewUserRepository(nil),
			sessions:    memory.NewSessionRepository(),
		}, nil, nil
	}
}

func openDB(ctx context.Context, cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBBinaryParameters)

	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithDBSystem("postgresql"),
		otelsql.WithDBName(dbNameFromURL(dsn)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	return db, nil
}
