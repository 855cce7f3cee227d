package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/panelledger/internal/infrastructure/config"
)

func noEnvFile(t *testing.T) {
	t.Helper()
	t.Setenv("ENV_FILE", filepath.Join(t.TempDir(), "missing.env"))
}

func TestLoadDefaults(t *testing.T) {
	noEnvFile(t)
	t.Setenv("DATABASE_URL", "")
	t.Setenv("STORAGE_BACKEND", "")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.NotEmpty(t, cfg.DatabaseURL)
	assert.Equal(t, config.StoragePostgres, cfg.StorageBackend)
	assert.Equal(t, "8080", cfg.HTTPPort)
	assert.False(t, cfg.RedisEnabled)
	assert.Equal(t, 5*time.Minute, cfg.CategoryCacheTTL)
	assert.Equal(t, 24*time.Hour, cfg.IdempotencyTTL)
	assert.Equal(t, 4, cfg.ReconcileConcurrency)
}

func TestLoadOverrides(t *testing.T) {
	noEnvFile(t)
	t.Setenv("STORAGE_BACKEND", "memory")
	t.Setenv("DATABASE_URL", "postgres://example")
	t.Setenv("REDIS_URL", "redis://example")
	t.Setenv("REDIS_ENABLED", "true")
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("DATABASE_TIMEOUT", "45s")
	t.Setenv("MIGRATE_ON_START", "false")
	t.Setenv("RECONCILE_CONCURRENCY", "16")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, config.StorageMemory, cfg.StorageBackend)
	assert.Equal(t, "postgres://example", cfg.DatabaseURL)
	assert.Equal(t, "redis://example", cfg.RedisURL)
	assert.True(t, cfg.RedisEnabled)
	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, 45*time.Second, cfg.DatabaseTimeout)
	assert.False(t, cfg.MigrateOnStart)
	assert.Equal(t, 16, cfg.ReconcileConcurrency)
}

func TestLoadEnvFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte("HTTP_PORT=7070\nLOG_LEVEL=debug\n"), 0o600))

	t.Setenv("ENV_FILE", path)
	t.Setenv("LOG_LEVEL", "error")
	// HTTP_PORT must be unset for the file to supply it.
	t.Setenv("HTTP_PORT", "")
	require.NoError(t, os.Unsetenv("HTTP_PORT"))

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.HTTPPort)
	assert.Equal(t, "error", cfg.LogLevel, "process environment wins over the file")
}

func TestLoadRejectsInvalid(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{"unknown backend", map[string]string{"STORAGE_BACKEND": "sqlite"}},
		{"min above max", map[string]string{"DATABASE_MIN_CONNS": "10", "DATABASE_MAX_CONNS": "2"}},
		{"zero concurrency", map[string]string{"RECONCILE_CONCURRENCY": "0"}},
		{"negative rate", map[string]string{"RATE_LIMIT_RPS": "-1"}},
		{"rate without burst", map[string]string{"RATE_LIMIT_RPS": "5", "RATE_LIMIT_BURST": "0"}},
		{"bad duration", map[string]string{"HTTP_READ_TIMEOUT": "soon"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noEnvFile(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := config.Load()
			assert.Error(t, err)
		})
	}
}
