package app

import (
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Issuer   string        // Required: issuer claim for tokens
	Audience []string      // Optional: audience claim for tokens (default: projecthub)
	TokenTTL time.Duration // Optional: identity token lifetime (default: 60m)
	KeyFile  string        // Optional: path to a PKCS8 Ed25519 key PEM; ephemeral key when unset

	DatabaseFile        string        // Optional: path to SQLite database file (default: ./projecthub.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	Env                 string        // Environment (dev, staging, prod) (default: dev)
	LogLevel            string        // Log level (debug, info, warn, error) (default: info)
	LogFormat           string        // Log format (json, text) (default: json)
	Port                int           // HTTP server port (default: 8080)
	ShutdownGracePeriod time.Duration // Graceful shutdown timeout (default: 10s)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:              getEnvOrDefault("AUTH_ISSUER", "projecthub"),
		TokenTTL:            getEnvDurationOrDefault("AUTH_TOKEN_TTL", 60*time.Minute),
		KeyFile:             os.Getenv("AUTH_KEY_FILE"), // Optional
		DatabaseFile:        getEnvOrDefault("DATABASE_FILE", "projecthub.db"),
		PepperFile:          getEnvOrDefault("PEPPER_FILE", "pepper"),
		Env:                 getEnvOrDefault("ENV", "dev"),
		LogLevel:            getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:           getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod: getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
	}

	// Comma-separated audience list
	audience := getEnvOrDefault("AUTH_AUDIENCE", "projecthub")
	for _, aud := range strings.Split(audience, ",") {
		if aud = strings.TrimSpace(aud); aud != "" {
			cfg.Audience = append(cfg.Audience, aud)
		}
	}

	return cfg
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

func getEnvDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}

	// Try parsing as duration (e.g., "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Try parsing as integer minutes (for backwards compatibility)
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
