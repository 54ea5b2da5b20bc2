package app

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/stallworks/identity/pkg/jwtx"
)

type Config struct {
	Issuer   string   // Required: issuer claim for access tokens
	Audience []string // Required: accepted audience values for access tokens

	SigningKeyFile      string        // Optional: path to an Ed25519 PKCS8 PEM key (default: ephemeral key per start)
	DatabaseFile        string        // Optional: path to SQLite database file (default: ./identity.db)
	PepperFile          string        // Optional: path to file containing pepper for password hashing (default: ./pepper)
	ConfirmationBaseURL string        // Required: base URL for confirmation links embedded in emails
	AccessTokenTTL      time.Duration // Optional: access token lifetime (default: 15m)
	SessionTTL          time.Duration // Optional: refresh session lifetime (default: 30m)

	Env                  string        // Environment (dev, staging, prod) (default: dev)
	LogLevel             string        // Log level (debug, info, warn, error) (default: info)
	LogFormat            string        // Log format (json, text) (default: json)
	Port                 int           // HTTP server port (default: 8080)
	ShutdownGracePeriod  time.Duration // Graceful shutdown timeout (default: 10s)
	HousekeepingInterval time.Duration // Housekeeping interval (default: 1h)
}

func LoadConfig() Config {
	cfg := Config{
		Issuer:         getEnvOrDefault("IDENTITY_ISSUER", "stallworks-identity"),
		SigningKeyFile: os.Getenv("IDENTITY_SIGNING_KEY_FILE"), // Optional: ephemeral when unset
		DatabaseFile:   getEnvOrDefault("IDENTITY_DATABASE_FILE", "identity.db"),
		PepperFile:     getEnvOrDefault("IDENTITY_PEPPER_FILE", "pepper"),
		ConfirmationBaseURL: getEnvOrDefault(
			"IDENTITY_CONFIRMATION_BASE_URL",
			"http://localhost:8080/confirm",
		),
		AccessTokenTTL:       getEnvDurationOrDefault("ACCESS_TOKEN_TTL", jwtx.DefaultAccessTokenTTL),
		SessionTTL:           getEnvDurationOrDefault("SESSION_TTL", jwtx.DefaultSessionTTL),
		Env:                  getEnvOrDefault("ENV", "dev"),
		LogLevel:             getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:            getEnvOrDefault("LOG_FORMAT", "json"),
		Port:                 getEnvIntOrDefault("PORT", 8080),
		ShutdownGracePeriod:  getEnvDurationOrDefault("SHUTDOWN_GRACE_PERIOD", 10*time.Second),
		HousekeepingInterval: getEnvDurationOrDefault("HOUSEKEEPING_INTERVAL", 1*time.Hour),
	}

	// Audience defaults to the issuer so a standalone deployment can verify
	// its own tokens without extra configuration.
	audience := getEnvOrDefault("IDENTITY_AUDIENCE", cfg.Issuer)
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

	// Parse as duration (e.g. "1h", "30m", "90s")
	if duration, err := time.ParseDuration(value); err == nil {
		return duration
	}

	// Fall back to integer minutes
	if minutes, err := strconv.Atoi(value); err == nil {
		return time.Duration(minutes) * time.Minute
	}

	return defaultValue
}
