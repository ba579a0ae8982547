package app

import (
	"context"
	"fmt"
	"os"

	"github.com/football-archive/pipeline/external/wikidata"
	"github.com/football-archive/pipeline/internal/config"
	"github.com/football-archive/pipeline/internal/infrastructure/repository/csvfile"
	"github.com/football-archive/pipeline/internal/observability"
	"github.com/football-archive/pipeline/internal/platform/logging"
	"github.com/football-archive/pipeline/internal/platform/resilience"
	"github.com/football-archive/pipeline/internal/usecase"
)

// App holds the services one command invocation needs. Every repository is
// file backed, so building it does no I/O.
type App struct {
	Config      config.Config
	Logger      *logging.Logger
	Catalog     *usecase.CatalogService
	Enrichment  *usecase.EnrichmentService
	SquadImport *usecase.SquadImportService
	Stats       *usecase.StatsService
}

func New(cfg config.Config, logger *logging.Logger) (*App, error) {
	if logger == nil {
		return nil, fmt.Errorf("logger is required")
	}
	strict := cfg.Strict()

	clubRepo := csvfile.NewClubRepository(cfg.ClubMasterPath, cfg.LeagueMasterPath)
	squadRepo := csvfile.NewSquadRepository(cfg.SquadsPath)
	callupRepo := csvfile.NewCallupRepository(cfg.CallupsPath)
	transferRepo := csvfile.NewTransferRepository(cfg.TransfersPath)
	eventRepo := csvfile.NewMatchEventRepository(cfg.MatchEventsPath)
	nameRepo := csvfile.NewNameMapRepository(cfg.NameMapPath, cfg.NameFailuresPath)
	tableRepo := csvfile.NewTableRepository()

	lookup := wikidata.NewClient(wikidata.ClientConfig{
		Endpoint:  cfg.LookupEndpoint,
		UserAgent: cfg.LookupUserAgent,
		Timeout:   cfg.LookupTimeout,
		Delay:     cfg.LookupDelay,
		Retry: resilience.RetryPolicy{
			MaxAttempts: cfg.LookupMaxAttempts,
			BaseDelay:   cfg.LookupBackoffBase,
			Multiplier:  cfg.LookupBackoffMultiplier,
			MaxDelay:    cfg.LookupBackoffMax,
		},
		CacheTTL: cfg.LookupCacheTTL,
		Logger:   logger.Named("wikidata"),
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.LookupCircuitEnabled,
			FailureThreshold: cfg.LookupCircuitFailureCount,
			OpenTimeout:      cfg.LookupCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.LookupCircuitHalfOpenMaxReq,
		},
	})

	return &App{
		Config: cfg,
		Logger: logger,
		Catalog: usecase.NewCatalogService(usecase.CatalogRepositories{
			Clubs:     clubRepo,
			Squads:    squadRepo,
			Callups:   callupRepo,
			Transfers: transferRepo,
			Events:    eventRepo,
			Names:     nameRepo,
		}, usecase.CatalogConfig{Strict: strict}, logger.Named("catalog")),
		Enrichment: usecase.NewEnrichmentService(nameRepo, lookup, tableRepo, usecase.EnrichmentConfig{
			Workers:  cfg.LookupWorkers,
			Cooldown: cfg.NameFailureCooldown,
			Strict:   strict,
			Source:   "wikidata",
			Targets:  []string{cfg.SquadsPath, cfg.CallupsPath},
		}, logger.Named("enrichment")),
		SquadImport: usecase.NewSquadImportService(tableRepo, clubRepo, nameRepo, usecase.SquadImportConfig{
			Strict:     strict,
			SquadsPath: cfg.SquadsPath,
		}, logger.Named("squad_import")),
		Stats: usecase.NewStatsService(eventRepo),
	}, nil
}

// NewLogger builds the process logger from config and installs it as the
// default.
func NewLogger(cfg config.Config) *logging.Logger {
	logger := logging.New(logging.Options{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
		Output: os.Stderr,
	}).With("service", cfg.ServiceName, "env", cfg.AppEnv)
	logging.SetDefault(logger)
	return logger
}

// StartTelemetry starts tracing and profiling when enabled. The returned
// function stops both and is safe to call once.
func StartTelemetry(cfg config.Config, logger *logging.Logger) (func(context.Context) error, error) {
	shutdownTracing, err := observability.InitUptrace(cfg, logger)
	if err != nil {
		return nil, fmt.Errorf("init uptrace: %w", err)
	}
	stopProfiling, err := observability.InitPyroscope(cfg, logger)
	if err != nil {
		_ = shutdownTracing(context.Background())
		return nil, fmt.Errorf("init pyroscope: %w", err)
	}

	return func(ctx context.Context) error {
		profErr := stopProfiling()
		if err := shutdownTracing(ctx); err != nil {
			return fmt.Errorf("shutdown uptrace: %w", err)
		}
		if profErr != nil {
			return fmt.Errorf("stop pyroscope: %w", profErr)
		}
		return nil
	}, nil
}
