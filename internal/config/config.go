// Package config loads application settings from environment variables with
// defaults. A .env file is honored when present.
package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config holds all settings for the API server.
type Config struct {
	ServerAddress string        // SERVER_ADDRESS, host:port
	PostgresConn  string        // POSTGRES_CONN, required
	RedisAddr     string        // REDIS_ADDR, empty disables the catalog cache
	KafkaBroker   string        // KAFKA_BROKER, empty disables event publishing
	LogLevel      string        // LOG_LEVEL: debug|info|warn|error
	LogPretty     bool          // LOG_PRETTY: console writer for dev
	SessionTTL    time.Duration // SESSION_TTL
	CacheTTL      time.Duration // CACHE_TTL for the product-type cache
	SeedDemoData  bool          // SEED_DEMO_DATA: create demo users at startup
}

// Load reads the environment (and .env, if any) and applies defaults.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		ServerAddress: getenv("SERVER_ADDRESS", "0.0.0.0:8080"),
		PostgresConn:  getenv("POSTGRES_CONN", ""),
		RedisAddr:     getenv("REDIS_ADDR", ""),
		KafkaBroker:   getenv("KAFKA_BROKER", ""),
		LogLevel:      getenv("LOG_LEVEL", "info"),
		LogPretty:     getbool("LOG_PRETTY", false),
		SessionTTL:    getdur("SESSION_TTL", 24*time.Hour),
		CacheTTL:      getdur("CACHE_TTL", 5*time.Minute),
		SeedDemoData:  getbool("SEED_DEMO_DATA", false),
	}
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getbool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return def
}

func getdur(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
