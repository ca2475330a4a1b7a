package config

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/joho/godotenv"
	"go-simpler.org/env"
)

// Config holds all service configuration loaded from the environment.
//
// TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET are deliberately not validated
// here: the service starts and answers health checks without them, and the
// token source reports a configuration error the first time a Twitch call
// actually needs a token.
type Config struct {
	AppEnv    string `env:"APP_ENV" default:"development"`
	Port      string `env:"PORT" default:"8080"`
	LogLevel  string `env:"LOG_LEVEL" default:"info"`
	LogFormat string `env:"LOG_FORMAT" default:"text"`

	TwitchClientID     string `env:"TWITCH_CLIENT_ID"`
	TwitchClientSecret string `env:"TWITCH_CLIENT_SECRET"`
	TwitchTokenURL     string `env:"TWITCH_TOKEN_URL" default:"https://id.twitch.tv/oauth2/token"`
	TwitchAPIBaseURL   string `env:"TWITCH_API_BASE_URL" default:"https://api.twitch.tv/helix"`

	UpstreamTimeout time.Duration `env:"UPSTREAM_TIMEOUT" default:"8s"`
	BroadcastLimit  int           `env:"BROADCAST_LIMIT" default:"10"`

	RateLimitPerSecond float64 `env:"RATE_LIMIT_PER_SECOND" default:"5"`
	RateLimitBurst     int     `env:"RATE_LIMIT_BURST" default:"10"`
}

func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found, using environment variables")
	}

	var cfg Config
	if err := env.Load(&cfg, nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func validate(cfg *Config) error {
	if cfg.UpstreamTimeout <= 0 {
		return fmt.Errorf("UPSTREAM_TIMEOUT must be positive")
	}
	if cfg.BroadcastLimit < 1 || cfg.BroadcastLimit > 100 {
		return fmt.Errorf("BROADCAST_LIMIT must be between 1 and 100")
	}
	if cfg.RateLimitPerSecond <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_SECOND must be positive")
	}
	if cfg.RateLimitBurst < 1 {
		return fmt.Errorf("RATE_LIMIT_BURST must be at least 1")
	}
	return nil
}
