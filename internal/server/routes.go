package server

import (
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func (s *Server) registerRoutes() {
	// Observability endpoints (never rate limited)
	s.echo.GET("/health/live", s.handleLiveness)
	s.echo.GET("/health/ready", s.handleReadiness)
	s.echo.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	s.echo.GET("/version", s.handleVersion)

	// Shoutout routes (per-IP rate limited)
	limiter := newRateLimiter(s.config.RateLimitPerSecond, s.config.RateLimitBurst)
	s.echo.GET("/shoutout/:username", s.handleShoutout, limiter)
	s.echo.GET("/debug/:username", s.handleDebug, limiter)
}
