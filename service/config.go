package service

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/loganlanou/userdesk/internal/reqres"
)

const defaultSessionSecret = "development-secret-change-me-please"

type Config struct {
	Environment string
	Port        string
	BaseURL     string
	DBPath      string
	LogLevel    slog.Level

	Session struct {
		Secret string
		// Idle list screens are unmounted after this long.
		ScreenTTL time.Duration
	}

	Reqres struct {
		BaseURL string
		APIKey  string
	}

	Login struct {
		// Password is the literal compared locally before any upstream call.
		Password string
		// RateLimit is login attempts per second per client IP.
		RateLimit int
	}
}

func LoadConfig() (*Config, error) {
	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Port:        getEnv("PORT", "8000"),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		DBPath:      getEnv("DB_PATH", "./db/userdesk.db"),
	}

	// Logging
	logLevel := getEnv("LOG_LEVEL", "info")
	if err := config.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return nil, fmt.Errorf("invalid LOG_LEVEL %q: %w", logLevel, err)
	}

	// Session
	config.Session.Secret = getEnv("SESSION_SECRET", defaultSessionSecret)
	config.Session.ScreenTTL = 30 * time.Minute
	if config.IsProduction() && config.Session.Secret == defaultSessionSecret {
		return nil, errors.New("SESSION_SECRET must be set in production")
	}

	// Upstream API
	config.Reqres.BaseURL = getEnv("REQRES_BASE_URL", reqres.DefaultBaseURL)
	config.Reqres.APIKey = getEnv("REQRES_API_KEY", "")

	// Login
	config.Login.Password = getEnv("LOGIN_PASSWORD", "cityslicka")
	limit := getEnv("LOGIN_RATE_LIMIT", "5")
	if n, err := strconv.Atoi(limit); err == nil && n > 0 {
		config.Login.RateLimit = n
	} else {
		config.Login.RateLimit = 5
	}

	return config, nil
}

// IsProduction reports whether cookies must be secure and secrets real.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
