package config

import (
	"testing"
	"time"
)

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_BetterStackRequiresEndpointWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when BETTERSTACK_ENABLED=true without BETTERSTACK_ENDPOINT")
	}
}

func TestLoad_BetterStackConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("BETTERSTACK_ENABLED", "true")
	t.Setenv("BETTERSTACK_ENDPOINT", "s1765114.eu-fsn-3.betterstackdata.com")
	t.Setenv("BETTERSTACK_TOKEN", "token-123")
	t.Setenv("BETTERSTACK_TIMEOUT", "4s")
	t.Setenv("BETTERSTACK_MIN_LEVEL", "warn")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if !cfg.BetterStackEnabled {
		t.Fatalf("expected BetterStackEnabled=true")
	}
	if cfg.BetterStackEndpoint != "s1765114.eu-fsn-3.betterstackdata.com" {
		t.Fatalf("unexpected BetterStackEndpoint: %q", cfg.BetterStackEndpoint)
	}
	if cfg.BetterStackToken != "token-123" {
		t.Fatalf("unexpected BetterStackToken")
	}
	if cfg.BetterStackTimeout != 4*time.Second {
		t.Fatalf("unexpected BetterStackTimeout: %s", cfg.BetterStackTimeout)
	}
	if cfg.BetterStackMinLevel.String() != "warn" {
		t.Fatalf("unexpected BetterStackMinLevel: %s", cfg.BetterStackMinLevel.String())
	}
}

func TestLoad_DefaultsByEnv(t *testing.T) {
	t.Run("prod disables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvProd)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=false in prod by default")
		}
	})

	t.Run("dev enables swagger by default", func(t *testing.T) {
		t.Setenv("APP_ENV", EnvDev)
		t.Setenv("UPTRACE_ENABLED", "false")
		t.Setenv("SWAGGER_ENABLED", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.SwaggerEnabled {
			t.Fatalf("expected SwaggerEnabled=true in dev by default")
		}
	})
}

func TestLoad_FixtureSourceParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults to csv", func(t *testing.T) {
		t.Setenv("FIXTURE_SOURCE", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.FixtureSource != SourceCSV {
			t.Fatalf("unexpected default fixture source: %q", cfg.FixtureSource)
		}
		if cfg.DataDir != "data" {
			t.Fatalf("unexpected default data dir: %q", cfg.DataDir)
		}
	})

	t.Run("accepts postgres", func(t *testing.T) {
		t.Setenv("FIXTURE_SOURCE", "postgres")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.FixtureSource != SourcePostgres {
			t.Fatalf("unexpected fixture source: %q", cfg.FixtureSource)
		}
	})

	t.Run("rejects unknown source", func(t *testing.T) {
		t.Setenv("FIXTURE_SOURCE", "redis")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for unknown FIXTURE_SOURCE")
		}
	})

	t.Run("live requires the remote provider", func(t *testing.T) {
		t.Setenv("FIXTURE_SOURCE", "live")
		t.Setenv("FOOTBALL_DATA_ENABLED", "false")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when FIXTURE_SOURCE=live without FOOTBALL_DATA_ENABLED=true")
		}
	})

	t.Run("live with provider enabled", func(t *testing.T) {
		t.Setenv("FIXTURE_SOURCE", "live")
		t.Setenv("FOOTBALL_DATA_ENABLED", "true")
		t.Setenv("FOOTBALL_DATA_TOKEN", "token-abc")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.FixtureSource != SourceLive {
			t.Fatalf("unexpected fixture source: %q", cfg.FixtureSource)
		}
	})
}

func TestLoad_FootballDataConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("FOOTBALL_DATA_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.FootballDataEnabled {
			t.Fatalf("expected FootballDataEnabled=false by default")
		}
		if cfg.FootballDataBaseURL != "https://api.football-data.org/v4" {
			t.Fatalf("unexpected default base url: %q", cfg.FootballDataBaseURL)
		}
		if cfg.FootballDataRequestsPerMinute != 10 {
			t.Fatalf("unexpected default requests per minute: %d", cfg.FootballDataRequestsPerMinute)
		}
	})

	t.Run("enabled requires token", func(t *testing.T) {
		t.Setenv("FOOTBALL_DATA_ENABLED", "true")
		t.Setenv("FOOTBALL_DATA_TOKEN", "")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error when FOOTBALL_DATA_ENABLED=true without FOOTBALL_DATA_TOKEN")
		}
	})

	t.Run("enabled with valid values", func(t *testing.T) {
		t.Setenv("FOOTBALL_DATA_ENABLED", "true")
		t.Setenv("FOOTBALL_DATA_TOKEN", "token-abc")
		t.Setenv("FOOTBALL_DATA_TIMEOUT", "15s")
		t.Setenv("FOOTBALL_DATA_MAX_RETRIES", "2")
		t.Setenv("FOOTBALL_DATA_REQUESTS_PER_MINUTE", "30")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.FootballDataEnabled {
			t.Fatalf("expected FootballDataEnabled=true")
		}
		if cfg.FootballDataToken != "token-abc" {
			t.Fatalf("unexpected token: %q", cfg.FootballDataToken)
		}
		if cfg.FootballDataTimeout != 15*time.Second {
			t.Fatalf("unexpected timeout: %s", cfg.FootballDataTimeout)
		}
		if cfg.FootballDataMaxRetries != 2 {
			t.Fatalf("unexpected max retries: %d", cfg.FootballDataMaxRetries)
		}
		if cfg.FootballDataRequestsPerMinute != 30 {
			t.Fatalf("unexpected requests per minute: %d", cfg.FootballDataRequestsPerMinute)
		}
	})
}

func TestLoad_PprofDefaultsAddrWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PPROF_ENABLED", "true")
	t.Setenv("PPROF_ADDR", "  ")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PprofAddr != ":6060" {
		t.Fatalf("expected default pprof addr :6060, got %q", cfg.PprofAddr)
	}
}

func TestLoad_PyroscopeRequiresServerAddressWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PyroscopeAppNameDefaultsToServiceName(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("APP_SERVICE_NAME", "season-compare-api-test")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "http://localhost:4040")
	t.Setenv("PYROSCOPE_APP_NAME", "")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.PyroscopeAppName != "season-compare-api-test" {
		t.Fatalf("unexpected pyroscope app name: %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_CORSOriginsDefaultAndParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default wildcard", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 1 || cfg.CORSAllowedOrigins[0] != "*" {
			t.Fatalf("unexpected default CORS origins: %+v", cfg.CORSAllowedOrigins)
		}
	})

	t.Run("comma separated parsing", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", " https://a.example.com, http://localhost:5173 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.CORSAllowedOrigins) != 2 {
			t.Fatalf("unexpected CORS origins length: %d", len(cfg.CORSAllowedOrigins))
		}
		if cfg.CORSAllowedOrigins[0] != "https://a.example.com" {
			t.Fatalf("unexpected first CORS origin: %s", cfg.CORSAllowedOrigins[0])
		}
		if cfg.CORSAllowedOrigins[1] != "http://localhost:5173" {
			t.Fatalf("unexpected second CORS origin: %s", cfg.CORSAllowedOrigins[1])
		}
	})
}

func TestLoad_DBDisablePreparedBinaryResultParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("default true", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.DBDisablePreparedBinary {
			t.Fatalf("expected DBDisablePreparedBinary=true by default")
		}
	})

	t.Run("invalid value", func(t *testing.T) {
		t.Setenv("DB_DISABLE_PREPARED_BINARY_RESULT", "not-bool")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid DB_DISABLE_PREPARED_BINARY_RESULT")
		}
	})
}

func TestLoad_CacheConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("CACHE_ENABLED", "")
		t.Setenv("CACHE_TTL", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.CacheEnabled {
			t.Fatalf("expected cache enabled by default")
		}
		if cfg.CacheTTL != time.Hour {
			t.Fatalf("unexpected default cache ttl: %s", cfg.CacheTTL)
		}
	})

	t.Run("invalid ttl", func(t *testing.T) {
		t.Setenv("CACHE_TTL", "bad")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid CACHE_TTL")
		}
	})
}

func TestLoad_RateLimitConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_ENABLED", "")
		t.Setenv("RATE_LIMIT_RPS", "")
		t.Setenv("RATE_LIMIT_BURST", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.RateLimitEnabled {
			t.Fatalf("expected rate limit enabled by default")
		}
		if cfg.RateLimitRPS != 10 {
			t.Fatalf("unexpected default rate limit rps: %d", cfg.RateLimitRPS)
		}
		if cfg.RateLimitBurst != 20 {
			t.Fatalf("unexpected default rate limit burst: %d", cfg.RateLimitBurst)
		}
	})

	t.Run("rejects zero rps", func(t *testing.T) {
		t.Setenv("RATE_LIMIT_RPS", "0")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for RATE_LIMIT_RPS=0")
		}
	})
}

func TestLoad_QStashConfigParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("disabled by default", func(t *testing.T) {
		t.Setenv("QSTASH_ENABLED", "")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if cfg.QStashEnabled {
			t.Fatalf("expected QStashEnabled=false by default")
		}
	})

	t.Run("enabled requires token and target and internal token", func(t *testing.T) {
		t.Setenv("QSTASH_ENABLED", "true")
		t.Setenv("QSTASH_TOKEN", "")
		t.Setenv("QSTASH_TARGET_BASE_URL", "")
		t.Setenv("INTERNAL_JOB_TOKEN", "")

		if _, err := Load(); err == nil {
			t.Fatalf("expected error when QSTASH_ENABLED=true without required env")
		}
	})

	t.Run("enabled with required values", func(t *testing.T) {
		t.Setenv("QSTASH_ENABLED", "true")
		t.Setenv("QSTASH_TOKEN", "qstash-token")
		t.Setenv("QSTASH_TARGET_BASE_URL", "https://season-compare.fly.dev")
		t.Setenv("INTERNAL_JOB_TOKEN", "internal-job-token")
		t.Setenv("QSTASH_RETRIES", "2")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if !cfg.QStashEnabled {
			t.Fatalf("expected QStashEnabled=true")
		}
		if cfg.QStashRetries != 2 {
			t.Fatalf("unexpected qstash retries: %d", cfg.QStashRetries)
		}
		if cfg.InternalJobToken != "internal-job-token" {
			t.Fatalf("unexpected internal job token: %q", cfg.InternalJobToken)
		}
	})
}

func TestLoad_JobScheduleParsing(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")

	t.Run("defaults", func(t *testing.T) {
		t.Setenv("JOB_REFRESH_SEASONS", "")
		t.Setenv("JOB_REFRESH_DELAY", "")
		t.Setenv("JOB_WARM_PAIRS", "")

		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.RefreshSeasons) != 0 {
			t.Fatalf("expected no refresh seasons by default, got %+v", cfg.RefreshSeasons)
		}
		if cfg.RefreshDelay != 24*time.Hour {
			t.Fatalf("unexpected default refresh delay: %s", cfg.RefreshDelay)
		}
		if len(cfg.WarmPairs) != 0 {
			t.Fatalf("expected no warm pairs by default, got %+v", cfg.WarmPairs)
		}
	})

	t.Run("season list parsing", func(t *testing.T) {
		t.Setenv("JOB_REFRESH_SEASONS", " 2025, 2024 ")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.RefreshSeasons) != 2 || cfg.RefreshSeasons[0] != 2025 || cfg.RefreshSeasons[1] != 2024 {
			t.Fatalf("unexpected refresh seasons: %+v", cfg.RefreshSeasons)
		}
	})

	t.Run("invalid season list", func(t *testing.T) {
		t.Setenv("JOB_REFRESH_SEASONS", "2025,next")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid JOB_REFRESH_SEASONS")
		}
	})

	t.Run("warm pair parsing", func(t *testing.T) {
		t.Setenv("JOB_REFRESH_SEASONS", "")
		t.Setenv("JOB_WARM_PAIRS", "2025:2024, 2024:2023")
		cfg, err := Load()
		if err != nil {
			t.Fatalf("load config: %v", err)
		}
		if len(cfg.WarmPairs) != 2 {
			t.Fatalf("unexpected warm pairs length: %d", len(cfg.WarmPairs))
		}
		if cfg.WarmPairs[0] != (SeasonPair{CurrentSeason: 2025, ComparisonSeason: 2024}) {
			t.Fatalf("unexpected first warm pair: %+v", cfg.WarmPairs[0])
		}
		if cfg.WarmPairs[1] != (SeasonPair{CurrentSeason: 2024, ComparisonSeason: 2023}) {
			t.Fatalf("unexpected second warm pair: %+v", cfg.WarmPairs[1])
		}
	})

	t.Run("invalid warm pair", func(t *testing.T) {
		t.Setenv("JOB_WARM_PAIRS", "2025-2024")
		if _, err := Load(); err == nil {
			t.Fatalf("expected error for invalid JOB_WARM_PAIRS")
		}
	})
}
