package config

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	DatabasePath string
	Port         string
	LogLevel     string
	FeedToken    string
}

// Load reads configuration from the environment, with a local .env file
// taking effect when present.
func Load() (Config, error) {
	if err := godotenv.Load(); err == nil {
		slog.Debug("loaded .env file")
	}

	return Config{
		DatabasePath: envOrDefault("DATABASE_PATH", "./data/diet-tracker.db"),
		Port:         envOrDefault("PORT", "8080"),
		LogLevel:     envOrDefault("LOG_LEVEL", "info"),
		FeedToken:    os.Getenv("FEED_TOKEN"),
	}, nil
}

// SlogLevel maps the configured level name onto slog's levels, defaulting
// to info for unknown values.
func (config Config) SlogLevel() slog.Level {
	switch config.LogLevel {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
