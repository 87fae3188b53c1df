package config

import (
	"os"
	"path/filepath"
	"time"
)

// Settings contains runtime configuration for the currency-exchange service
// connection and local storage. All values come from environment variables
// with sane defaults; Host is validated lazily by the commands that need it.
type Settings struct {
	Host           string
	Username       string
	Password       string
	RequestTimeout time.Duration
	DatabasePath   string
}

// Load reads settings from the environment.
func Load() Settings {
	return Settings{
		Host:           os.Getenv("CUREX_HOST"),
		Username:       os.Getenv("CUREX_USERNAME"),
		Password:       os.Getenv("CUREX_PASSWORD"),
		RequestTimeout: getDuration("CUREX_REQUEST_TIMEOUT", 10*time.Second),
		DatabasePath:   getEnv("CUREX_DATABASE_PATH", defaultDatabasePath()),
	}
}

func defaultDatabasePath() string {
	return filepath.Join(os.Getenv("HOME"), ".curex/curex.db")
}

func getEnv(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func getDuration(key string, def time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def
	}
	return d
}
