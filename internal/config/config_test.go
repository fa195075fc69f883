package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "STORE_BACKEND", "ORDER_STATUS_STRICT", "CACHE_TTL_SECONDS", "DB_PORT", "DATABASE_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	assert.Equal(t, "3000", cfg.Port)
	assert.Equal(t, "file", cfg.StoreBackend)
	assert.True(t, cfg.StrictOrderStatus)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Empty(t, cfg.DatabaseURL)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PORT", "8080")
	t.Setenv("STORE_BACKEND", "Postgres")
	t.Setenv("ORDER_STATUS_STRICT", "false")
	t.Setenv("DB_PORT", "not-a-number")
	t.Setenv("DATABASE_URL", "postgres://tavola:pw@db:5432/tavola?sslmode=disable")

	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "postgres", cfg.StoreBackend)
	assert.False(t, cfg.StrictOrderStatus)
	assert.Equal(t, 5432, cfg.DBPort)
	assert.Equal(t, "postgres://tavola:pw@db:5432/tavola?sslmode=disable", cfg.DatabaseURL)
}
