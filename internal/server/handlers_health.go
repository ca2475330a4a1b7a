package server

import (
	"time"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/shoutbot/internal/version"
)

// handleLiveness reports process health. It works with or without Twitch
// credentials: a misconfigured service still starts and answers here.
func (s *Server) handleLiveness(c echo.Context) error {
	return c.JSON(200, map[string]any{
		"status":    "ok",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"uptime":    time.Since(s.startTime).Seconds(),
	})
}

// handleReadiness additionally checks that Twitch credentials are configured,
// since without them every shoutout degrades to the generic fallback.
func (s *Server) handleReadiness(c echo.Context) error {
	if s.config.TwitchClientID == "" || s.config.TwitchClientSecret == "" {
		return c.JSON(503, map[string]any{
			"status":       "unhealthy",
			"failed_check": "twitch_credentials",
			"error":        "TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET must be set",
		})
	}

	return c.JSON(200, map[string]string{"status": "ready"})
}

func (s *Server) handleVersion(c echo.Context) error {
	return c.JSON(200, version.Get())
}
