package app

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/cobaltlabs/userhub/pkg/jwtx"
)

type Config struct {
	Issuer       string // Optional: issuer claim for tokens (default: userhub)
	DatabaseFile string // Optional: path to SQLite database file (default: ./userhub.db)

	// Token signing material. Deliberately NOT validated here: a missing
	// secret or lifetime surfaces as a configuration error on first use,
	// not at boot.
	AccessSecret  string
	AccessTTL     time.Duration
	RefreshSecret string
	RefreshTTL    time.Duration

	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	// A .env file is a dev convenience; absence is not an error.
	_ = godotenv.Load()

	return Config{
		Issuer:       getEnvOrDefault("USERHUB_ISSUER", "userhub"),
		DatabaseFile: getEnvOrDefault("USERHUB_DATABASE_FILE", "userhub.db"),

		AccessSecret:  os.Getenv(jwtx.EnvAccessSecret),
		AccessTTL:     getEnvDuration(jwtx.EnvAccessExpiresIn),
		RefreshSecret: os.Getenv(jwtx.EnvRefreshSecret),
		RefreshTTL:    getEnvDuration(jwtx.EnvRefreshExpiresIn),

		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvIntOrDefault(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	if intValue, err := strconv.Atoi(value); err == nil {
		return intValue
	}

	return defaultValue
}

// getEnvDuration returns zero when the variable is unset or unparsable, so
// the failure is reported by the first token operation rather than at boot.
func getEnvDuration(key string) time.Duration {
	return getEnvDurationOrDefault(key, 0)
}

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Bare integers count as seconds, matching common JWT expiry notation.
	if seconds, err := strconv.Atoi(value); err == nil {
		return time.Duration(seconds) * time.Second
	}

	return defaultValue
}
