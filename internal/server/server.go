package server

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/pscheid92/shoutbot/internal/config"
	"github.com/pscheid92/shoutbot/internal/metrics"
	"github.com/pscheid92/shoutbot/internal/shoutout"
)

// shoutoutService is the application surface the HTTP layer depends on.
type shoutoutService interface {
	ResolveShoutout(ctx context.Context, username string) string
	Debug(ctx context.Context, username string) (*shoutout.Diagnostics, error)
}

type Server struct {
	echo      *echo.Echo
	config    *config.Config
	shoutouts shoutoutService
	startTime time.Time
}

func NewServer(cfg *config.Config, shoutouts shoutoutService) *Server {
	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	e.Use(middleware.Recover())
	e.Use(correlationMiddleware)
	e.Use(metrics.HTTPMiddleware())
	e.Use(ErrorHandlingMiddleware())

	srv := &Server{
		echo:      e,
		config:    cfg,
		shoutouts: shoutouts,
		startTime: time.Now(),
	}

	srv.registerRoutes()

	return srv
}

func (s *Server) Start() error {
	slog.Info("Starting server", "port", s.config.Port)
	return s.echo.Start(fmt.Sprintf(":%s", s.config.Port))
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.echo.Shutdown(ctx)
}
