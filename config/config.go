package config

import (
	"os"
	"time"

	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Config collects everything the process reads from the environment.
// Defaults keep a bare `go run .` working against a local source service.
type Config struct {
	Port         string
	GinMode      string
	UpstreamURL  string
	SyncInterval time.Duration
	FetchTimeout time.Duration
	DBDSN        string // MySQL DSN for the ledger; empty falls back to SQLite
	DBPath       string
}

func Load() Config {
	return Config{
		Port:         getEnv("PORT", "8080"),
		GinMode:      getEnv("GIN_MODE", ""),
		UpstreamURL:  getEnv("UPSTREAM_URL", "http://localhost:9090"),
		SyncInterval: getDuration("SYNC_INTERVAL", 30*time.Second),
		FetchTimeout: getDuration("FETCH_TIMEOUT", 5*time.Second),
		DBDSN:        getEnv("DB_DSN", ""),
		DBPath:       getEnv("DB_PATH", "billiard.db"),
	}
}

// InitDB opens the ledger database: MySQL when a DSN is configured,
// otherwise a local SQLite file.
func InitDB(cfg Config) (*gorm.DB, error) {
	if cfg.DBDSN != "" {
		return gorm.Open(mysql.Open(cfg.DBDSN), &gorm.Config{})
	}
	return gorm.Open(sqlite.Open(cfg.DBPath), &gorm.Config{})
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return fallback
}
