package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/pscheid92/shoutbot/internal/config"
	"github.com/pscheid92/shoutbot/internal/logging"
	"github.com/pscheid92/shoutbot/internal/server"
	"github.com/pscheid92/shoutbot/internal/shoutout"
	"github.com/pscheid92/shoutbot/internal/twitch"
)

const shutdownTimeout = 10 * time.Second

func setupConfig() *config.Config {
	cfg, err := config.Load()
	if err != nil {
		// Use log before slog is initialized
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func runGracefulShutdown(srv *server.Server) <-chan struct{} {
	done := make(chan struct{})
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	go func() {
		<-sigChan
		slog.Info("Shutdown signal received, cleaning up...")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			slog.Error("Server shutdown error", "error", err)
		}

		close(done)
	}()

	return done
}

func main() {
	clock := clockwork.NewRealClock()

	cfg := setupConfig()

	logging.InitLogger(cfg.LogLevel, cfg.LogFormat)
	slog.Info("Application starting", "env", cfg.AppEnv, "port", cfg.Port)

	if cfg.TwitchClientID == "" || cfg.TwitchClientSecret == "" {
		slog.Warn("Twitch credentials not configured, shoutouts will degrade to generic fallbacks")
	}

	tokens := twitch.NewAppTokenSource(
		cfg.TwitchClientID,
		cfg.TwitchClientSecret,
		cfg.TwitchTokenURL,
		cfg.UpstreamTimeout,
		clock,
	)
	client := twitch.NewClient(cfg.TwitchClientID, tokens, cfg.TwitchAPIBaseURL, cfg.UpstreamTimeout, cfg.BroadcastLimit)

	resolver := shoutout.NewCategoryResolver(client)
	composer := shoutout.NewComposer()
	svc := shoutout.NewService(client, resolver, composer)

	srv := server.NewServer(cfg, svc)

	done := runGracefulShutdown(srv)

	if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		slog.Error("Server error", "error", err)
		os.Exit(1)
	}

	<-done
	slog.Info("Application stopped")
}
