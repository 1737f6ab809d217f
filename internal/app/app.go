package app

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"
	semconv "go.opentelemetry.io/otel/semconv/v1.26.0"

	"github.com/matchpulse/season-compare/external/footballdata"
	"github.com/matchpulse/season-compare/external/jobqueue"
	"github.com/matchpulse/season-compare/internal/config"
	"github.com/matchpulse/season-compare/internal/domain/fixture"
	"github.com/matchpulse/season-compare/internal/domain/mapping"
	cachedrepo "github.com/matchpulse/season-compare/internal/infrastructure/repository/cache"
	"github.com/matchpulse/season-compare/internal/infrastructure/repository/csvstore"
	"github.com/matchpulse/season-compare/internal/infrastructure/repository/memory"
	"github.com/matchpulse/season-compare/internal/infrastructure/repository/postgres"
	"github.com/matchpulse/season-compare/internal/interfaces/httpapi"
	basecache "github.com/matchpulse/season-compare/internal/platform/cache"
	"github.com/matchpulse/season-compare/internal/platform/logging"
	"github.com/matchpulse/season-compare/internal/platform/resilience"
	"github.com/matchpulse/season-compare/internal/usecase"
)

// stores bundles the data access surfaces the services run on. The read
// side may differ from the write side: in live mode reads go through the
// remote-hydrating source while writes still land on the local store.
type stores struct {
	fixtures        fixture.Source
	fixtureWriter   fixture.Writer
	standings       mapping.StandingsSource
	standingsWriter mapping.StandingsWriter
	closeDB         func() error
}

// Services bundles the use cases for callers that drive them directly,
// such as the CLI. Ingest is nil unless the football-data client is
// configured.
type Services struct {
	Seasons     *usecase.SeasonService
	Comparisons *usecase.ComparisonService
	Ingest      *usecase.IngestService
	Synth       *usecase.SynthService
	Batch       *usecase.BatchService
}

// NewServices builds the use cases on the configured data source. The
// returned cleanup releases resources the services hold, such as the
// database pool.
func NewServices(cfg config.Config, logger *logging.Logger) (*Services, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	var sharedCache *basecache.Store
	if cfg.CacheEnabled {
		sharedCache = basecache.NewStore(cfg.CacheTTL)
	}

	client := newFootballDataClient(cfg, logger)
	if cfg.FixtureSource == config.SourceLive && client == nil {
		return nil, nil, fmt.Errorf("FIXTURE_SOURCE=live requires FOOTBALL_DATA_ENABLED=true")
	}

	st, err := buildStores(cfg, logger, client, sharedCache)
	if err != nil {
		return nil, nil, err
	}

	svcs := &Services{
		Seasons:     usecase.NewSeasonService(st.fixtures),
		Comparisons: usecase.NewComparisonService(st.fixtures, st.standings, sharedCache, logger),
		Synth:       usecase.NewSynthService(st.fixtures, st.fixtureWriter, logger),
	}
	svcs.Batch = usecase.NewBatchService(svcs.Comparisons)
	if client != nil {
		svcs.Ingest = usecase.NewIngestService(client, st.fixtureWriter, st.standingsWriter, sharedCache, logger)
	}

	cleanup := func() {
		if st.closeDB == nil {
			return
		}
		if err := st.closeDB(); err != nil {
			logger.Error("close database", "error", err)
		}
	}

	return svcs, cleanup, nil
}

// NewHTTPServer wires the services and the HTTP router into a
// ready-to-run server. The returned cleanup releases resources the
// server holds, such as the database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	if logger == nil {
		logger = logging.Default()
	}

	svcs, cleanup, err := NewServices(cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	handler := httpapi.NewHandler(svcs.Seasons, svcs.Comparisons, svcs.Ingest, svcs.Batch, logger)
	router := httpapi.NewRouter(handler, logger, cfg.SwaggerEnabled, cfg.CORSAllowedOrigins, cfg.InternalJobToken, httpapi.RateLimitSettings{
		Enabled: cfg.RateLimitEnabled,
		RPS:     cfg.RateLimitRPS,
		Burst:   cfg.RateLimitBurst,
	})

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}

func newFootballDataClient(cfg config.Config, logger *logging.Logger) *footballdata.Client {
	if !cfg.FootballDataEnabled {
		return nil
	}
	return footballdata.NewClient(footballdata.ClientConfig{
		BaseURL:           cfg.FootballDataBaseURL,
		Token:             cfg.FootballDataToken,
		Timeout:           cfg.FootballDataTimeout,
		MaxRetries:        cfg.FootballDataMaxRetries,
		RequestsPerMinute: cfg.FootballDataRequestsPerMinute,
		Logger:            logger,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.FootballDataCircuitEnabled,
			FailureThreshold: cfg.FootballDataCircuitFailureCount,
			OpenTimeout:      cfg.FootballDataCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.FootballDataCircuitHalfOpenMaxReq,
		},
	})
}

func buildStores(cfg config.Config, logger *logging.Logger, client *footballdata.Client, sharedCache *basecache.Store) (stores, error) {
	var (
		fixtureStore   cachedrepo.FixtureStore
		standingsStore cachedrepo.StandingsStore
		closeDB        func() error
	)

	switch cfg.FixtureSource {
	case config.SourceMemory:
		fixtureStore = memory.NewFixtureRepository(memory.SeedFixtureSeasons())
		standingsStore = memory.NewStandingsRepository(memory.SeedDivisionStandings())
	case config.SourceCSV, config.SourceLive:
		fixtureStore = csvstore.NewFixtureStore(cfg.DataDir)
		standingsStore = csvstore.NewStandingsStore(cfg.DataDir)
	case config.SourcePostgres:
		db, err := openDB(cfg)
		if err != nil {
			return stores{}, err
		}
		fixtureStore = postgres.NewFixtureRepository(db)
		standingsStore = postgres.NewStandingRepository(db)
		closeDB = db.Close
	default:
		return stores{}, fmt.Errorf("unsupported fixture source %q", cfg.FixtureSource)
	}

	if sharedCache != nil {
		fixtureStore = cachedrepo.NewFixtureRepository(fixtureStore, sharedCache)
		standingsStore = cachedrepo.NewStandingsRepository(standingsStore, sharedCache)
	}

	st := stores{
		fixtures:        fixtureStore,
		fixtureWriter:   fixtureStore,
		standings:       standingsStore,
		standingsWriter: standingsStore,
		closeDB:         closeDB,
	}
	if cfg.FixtureSource == config.SourceLive {
		st.fixtures = footballdata.NewFixtureSource(client, fixtureStore, logger)
		st.standings = footballdata.NewStandingsSource(client, standingsStore, logger)
	}
	return st, nil
}

func openDB(cfg config.Config) (*sqlx.DB, error) {
	dsn := normalizeDBURL(cfg.DBURL, cfg.DBDisablePreparedBinary)
	db, err := otelsqlx.Open("postgres", dsn,
		otelsql.WithAttributes(semconv.DBSystemPostgreSQL),
		otelsql.WithDBName(dbNameFromURL(cfg.DBURL)),
		otelsql.WithQueryFormatter(formatDBQueryForTrace),
	)
	if err != nil {
		return nil, fmt.Errorf("open postgres: %w", err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping postgres: %w", err)
	}
	return db, nil
}

// ScheduleBootJobs enqueues the recurring season refresh and cache warm
// callbacks on the queue. Failures are logged and skipped so a queue
// outage cannot keep the API from serving.
func ScheduleBootJobs(ctx context.Context, cfg config.Config, logger *logging.Logger) {
	if !cfg.QStashEnabled {
		return
	}
	if logger == nil {
		logger = logging.Default()
	}

	publisher := jobqueue.NewQStashPublisher(jobqueue.QStashPublisherConfig{
		BaseURL:          cfg.QStashBaseURL,
		Token:            cfg.QStashToken,
		TargetBaseURL:    cfg.QStashTargetBaseURL,
		Retries:          cfg.QStashRetries,
		InternalJobToken: cfg.InternalJobToken,
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          cfg.QStashCircuitEnabled,
			FailureThreshold: cfg.QStashCircuitFailureCount,
			OpenTimeout:      cfg.QStashCircuitOpenTimeout,
			HalfOpenMaxReq:   cfg.QStashCircuitHalfOpenMaxReq,
		},
	}, logger)

	for _, season := range cfg.RefreshSeasons {
		jobID, err := publisher.EnqueueSeasonRefresh(ctx, season, cfg.RefreshDelay)
		if err != nil {
			logger.WarnContext(ctx, "enqueue season refresh failed", "season", season, "error", err)
			continue
		}
		logger.InfoContext(ctx, "season refresh scheduled", "season", season, "job_id", jobID)
	}

	if len(cfg.WarmPairs) == 0 {
		return
	}
	pairs := make([]usecase.SeasonPair, 0, len(cfg.WarmPairs))
	for _, p := range cfg.WarmPairs {
		pairs = append(pairs, usecase.SeasonPair{CurrentSeason: p.CurrentSeason, ComparisonSeason: p.ComparisonSeason})
	}

	// Warm after the refreshed data has landed.
	jobID, err := publisher.EnqueueCacheWarm(ctx, pairs, cfg.RefreshDelay+5*time.Minute)
	if err != nil {
		logger.WarnContext(ctx, "enqueue cache warm failed", "error", err)
		return
	}
	logger.InfoContext(ctx, "cache warm scheduled", "pair_count", len(pairs), "job_id", jobID)
}
