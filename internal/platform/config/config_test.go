package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Defaults(t *testing.T) {
	t.Setenv("PGSQL_URL", "postgres://localhost/pension")
	t.Setenv("STORAGE_BACKEND", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, "postgres://localhost/pension", cfg.DatabaseURL)
	assert.Equal(t, time.Hour, cfg.JWTExpiryDuration)
	assert.Equal(t, 20, cfg.Projection.PensionDurationYears)
	assert.Equal(t, 60, cfg.Projection.RetirementAge)
}

func TestLoadConfig_Overrides(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "SQLite")
	t.Setenv("SQLITE_PATH", "/tmp/pension.db")
	t.Setenv("JWT_EXPIRY_DURATION", "15m")
	t.Setenv("SUMMARY_CACHE_TTL", "not-a-duration")
	t.Setenv("SUMMARY_CACHE_SIZE", "-4")
	t.Setenv("PENSION_DURATION_YEARS", "0")
	t.Setenv("PROJECTION_RETURN_RATE", "0.05")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, StorageSQLite, cfg.StorageBackend)
	assert.Equal(t, "/tmp/pension.db", cfg.SQLitePath)
	assert.Equal(t, 15*time.Minute, cfg.JWTExpiryDuration)
	assert.Equal(t, 30*time.Second, cfg.SummaryCacheTTL)
	assert.Equal(t, 1024, cfg.SummaryCacheSize)
	assert.Equal(t, 20, cfg.Projection.PensionDurationYears)
	assert.InDelta(t, 0.05, cfg.Projection.AnnualReturnRate, 1e-9)
}

func TestLoadConfig_InflationRateAboveMinusOne(t *testing.T) {
	for _, rate := range []string{"-1", "-2.5"} {
		t.Run(rate, func(t *testing.T) {
			t.Setenv("PROJECTION_INFLATION_RATE", rate)

			cfg, err := LoadConfig()
			require.NoError(t, err)
			assert.InDelta(t, 0.03, cfg.Projection.InflationRate, 1e-9)
		})
	}

	t.Setenv("PROJECTION_INFLATION_RATE", "-0.02")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.InDelta(t, -0.02, cfg.Projection.InflationRate, 1e-9)
}

func TestLoadConfig_UnknownBackendFallsBack(t *testing.T) {
	t.Setenv("STORAGE_BACKEND", "mongo")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, StoragePostgres, cfg.StorageBackend)
}

func TestSlogLevel(t *testing.T) {
	assert.Equal(t, slog.LevelDebug, (&Config{LogLevel: "debug"}).SlogLevel())
	assert.Equal(t, slog.LevelWarn, (&Config{LogLevel: "WARN"}).SlogLevel())
	assert.Equal(t, slog.LevelInfo, (&Config{LogLevel: "chatty"}).SlogLevel())
}
