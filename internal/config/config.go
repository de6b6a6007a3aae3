package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

// Config holds all runtime configuration loaded from the environment.
type Config struct {
	Port             string
	MongoURI         string
	MongoDB          string
	JWTSecret        string
	TokenExpiry      time.Duration
	DedupWindow      time.Duration
	HistoryRetention time.Duration
}

// LoadConfig reads configuration from a .env file (if present) and the environment.
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		logrus.Info("No .env file found, relying on environment variables")
	}

	return &Config{
		Port:             getEnv("PORT", "8080"),
		MongoURI:         getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:          getEnv("MONGO_DB", "community_board"),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenExpiry:      getDurationEnv("TOKEN_EXPIRY", 24*time.Hour),
		DedupWindow:      getDurationEnv("DEDUP_WINDOW", 10*time.Minute),
		HistoryRetention: getDurationEnv("HISTORY_RETENTION", 30*24*time.Hour),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		logrus.WithError(err).Warnf("Invalid duration for %s, using default %s", key, fallback)
		return fallback
	}
	return d
}
