package database

import (
	"context"
	"testing"
	"time"

	"storefront/internal/config"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testDatabaseConfig() config.DatabaseConfig {
	return config.DatabaseConfig{
		Host:              "localhost",
		Port:              5432,
		User:              "postgres",
		Password:          "secret",
		Database:          "storefront",
		MaxConnections:    20,
		MinConnections:    4,
		MaxConnLifetime:   600,
		MaxConnIdleTime:   5 * time.Minute,
		HealthCheckPeriod: 15 * time.Second,
	}
}

func TestPoolConfig(t *testing.T) {
	poolConfig, err := PoolConfig(testDatabaseConfig())

	require.NoError(t, err)
	assert.Equal(t, int32(20), poolConfig.MaxConns)
	assert.Equal(t, int32(4), poolConfig.MinConns)
	assert.Equal(t, 10*time.Minute, poolConfig.MaxConnLifetime)
	assert.Equal(t, 5*time.Minute, poolConfig.MaxConnIdleTime)
	assert.Equal(t, 15*time.Second, poolConfig.HealthCheckPeriod)
	assert.Equal(t, "localhost", poolConfig.ConnConfig.Host)
	assert.Equal(t, uint16(5432), poolConfig.ConnConfig.Port)
	assert.Equal(t, "storefront", poolConfig.ConnConfig.Database)
}

func TestPoolConfig_ZeroDurationsKeepDefaults(t *testing.T) {
	defaults, err := pgxpool.ParseConfig(testDatabaseConfig().ConnectionString())
	require.NoError(t, err)

	cfg := testDatabaseConfig()
	cfg.MaxConnLifetime = 0
	cfg.MaxConnIdleTime = 0
	cfg.HealthCheckPeriod = 0

	poolConfig, err := PoolConfig(cfg)

	require.NoError(t, err)
	assert.Equal(t, defaults.MaxConnLifetime, poolConfig.MaxConnLifetime)
	assert.Equal(t, defaults.MaxConnIdleTime, poolConfig.MaxConnIdleTime)
	assert.Equal(t, defaults.HealthCheckPeriod, poolConfig.HealthCheckPeriod)
}

func TestNewPool_CannotConnect(t *testing.T) {
	cfg := testDatabaseConfig()
	cfg.Host = "127.0.0.1"
	cfg.Port = 1

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	pool, err := NewPool(ctx, cfg, zerolog.Nop())

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to ping database")
	assert.Nil(t, pool)
}
