package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	require.Equal(t, "0.0.0.0:8080", cfg.ServerAddress)
	require.Equal(t, "info", cfg.LogLevel)
	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.Equal(t, 5*time.Minute, cfg.CacheTTL)
	require.False(t, cfg.SeedDemoData)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("SERVER_ADDRESS", "127.0.0.1:9090")
	t.Setenv("SESSION_TTL", "1h")
	t.Setenv("SEED_DEMO_DATA", "true")
	t.Setenv("LOG_PRETTY", "1")

	cfg := Load()

	require.Equal(t, "127.0.0.1:9090", cfg.ServerAddress)
	require.Equal(t, time.Hour, cfg.SessionTTL)
	require.True(t, cfg.SeedDemoData)
	require.True(t, cfg.LogPretty)
}

func TestLoadIgnoresMalformedValues(t *testing.T) {
	t.Setenv("SESSION_TTL", "soon")
	t.Setenv("SEED_DEMO_DATA", "yep")

	cfg := Load()

	require.Equal(t, 24*time.Hour, cfg.SessionTTL)
	require.False(t, cfg.SeedDemoData)
}
