package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetEnvAsInt(t *testing.T) {
	t.Run("Parses a set variable", func(t *testing.T) {
		t.Setenv("TEST_POOL_SIZE", "40")
		assert.Equal(t, 40, GetEnvAsInt("TEST_POOL_SIZE", 25))
	})

	t.Run("Falls back when unset", func(t *testing.T) {
		assert.Equal(t, 25, GetEnvAsInt("TEST_POOL_SIZE_UNSET", 25))
	})

	t.Run("Falls back on a non-numeric value", func(t *testing.T) {
		t.Setenv("TEST_POOL_SIZE", "lots")
		assert.Equal(t, 25, GetEnvAsInt("TEST_POOL_SIZE", 25))
	})
}

func TestLoadAuditConfig(t *testing.T) {
	t.Run("Defaults to an enabled daily audit", func(t *testing.T) {
		cfg := LoadAuditConfig()
		assert.True(t, cfg.Enabled)
		assert.Equal(t, "0 0 3 * * *", cfg.CronSpec)
	})

	t.Run("Can be disabled", func(t *testing.T) {
		t.Setenv("STOCK_AUDIT_ENABLED", "false")
		cfg := LoadAuditConfig()
		assert.False(t, cfg.Enabled)
	})
}
