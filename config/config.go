package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config is the immutable application configuration, resolved once at
// startup and threaded through service construction.
type Config struct {
	Port string

	// Dhan credentials. Env picks which pair is active.
	DhanEnv         string // SANDBOX or LIVE
	DhanAccessToken string
	DhanClientID    string

	GeminiAPIKey string
	GeminiModel  string

	RedisURL      string
	DBPath        string
	WatchlistPath string
}

// Load reads .env (when present) and resolves the configuration.
func Load() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Debug("No .env file found, using environment")
	}

	env := os.Getenv("DHAN_ENV")
	if env != "LIVE" {
		env = "SANDBOX"
	}

	token := os.Getenv("DHAN_SANDBOX_ACCESS_TOKEN")
	clientID := os.Getenv("DHAN_SANDBOX_CLIENT_ID")
	if env == "LIVE" {
		token = os.Getenv("DHAN_LIVE_ACCESS_TOKEN")
		clientID = os.Getenv("DHAN_LIVE_CLIENT_ID")
	}

	return &Config{
		Port:            getEnv("PORT", "8080"),
		DhanEnv:         env,
		DhanAccessToken: token,
		DhanClientID:    clientID,
		GeminiAPIKey:    os.Getenv("GEMINI_API_KEY"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash-exp"),
		RedisURL:        os.Getenv("REDIS_URL"),
		DBPath:          getEnv("DB_PATH", "data/instruments.db"),
		WatchlistPath:   getEnv("WATCHLIST_PATH", "watchlist.yaml"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}
