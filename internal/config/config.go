// Package config provides runtime configuration values for the service.
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds configuration knobs for the HTTP server, storage, and auth.
type Config struct {
	HTTPAddr        string
	DBPath          string
	JWTSecret       string
	TokenDuration   time.Duration
	ShutdownTimeout time.Duration
	// DebtDueDays is how long after order creation a debt falls due.
	DebtDueDays int
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func atoienv(key string, def int) int {
	v := getenv(key, "")
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return n
}

func durenvh(key string, defHours int) time.Duration {
	return time.Duration(atoienv(key, defHours)) * time.Hour
}

func durenvs(key string, defSec int) time.Duration {
	return time.Duration(atoienv(key, defSec)) * time.Second
}

// Load collects configuration from environment with defaults.
func Load() Config {
	return Config{
		HTTPAddr:        getenv("HTTP_ADDR", ":8080"),
		DBPath:          getenv("DB_PATH", "./data/ledger.db"),
		JWTSecret:       getenv("JWT_SECRET", "dev-secret-change-me"),
		TokenDuration:   durenvh("TOKEN_TTL_HOURS", 24),
		ShutdownTimeout: durenvs("SHUTDOWN_TIMEOUT", 15),
		DebtDueDays:     atoienv("DEBT_DUE_DAYS", 30),
	}
}
