package config

import (
	"fmt"
	"os"
	"time"

	"matchday/internal/constants"
	"matchday/internal/domain"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

type Config struct {
	SportsDBAPIKey  string
	SportsDBBaseURL string
	ServerPort      string
	LogLevel        string
	DefaultTimezone domain.Timezone
	SessionIdleTTL  time.Duration
}

func Load(logger zerolog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		logger.Debug().Msg(".env file not found, using environment variables or defaults")
	}

	tz, err := domain.ParseTimezone(getEnv("DEFAULT_TIMEZONE", string(domain.Pacific)))
	if err != nil {
		return nil, fmt.Errorf("DEFAULT_TIMEZONE: %w", err)
	}

	idle, err := time.ParseDuration(getEnv("SESSION_IDLE_TTL", constants.SessionIdleTTL.String()))
	if err != nil {
		return nil, fmt.Errorf("SESSION_IDLE_TTL: %w", err)
	}
	if idle <= 0 {
		return nil, fmt.Errorf("SESSION_IDLE_TTL must be positive")
	}

	cfg := &Config{
		SportsDBAPIKey:  getEnv("SPORTSDB_API_KEY", constants.SportsDBTestKey),
		SportsDBBaseURL: getEnv("SPORTSDB_BASE_URL", constants.SportsDBBaseURL),
		ServerPort:      getEnv("SERVER_PORT", "8080"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		DefaultTimezone: tz,
		SessionIdleTTL:  idle,
	}

	if cfg.SportsDBAPIKey == constants.SportsDBTestKey {
		logger.Warn().Msg("SPORTSDB_API_KEY not set, using the public test key")
	}

	logger.Info().
		Str("base_url", cfg.SportsDBBaseURL).
		Str("server_port", cfg.ServerPort).
		Str("log_level", cfg.LogLevel).
		Str("default_timezone", string(cfg.DefaultTimezone)).
		Dur("session_idle_ttl", cfg.SessionIdleTTL).
		Msg("configuration loaded")

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

var Module = fx.Provide(Load)
