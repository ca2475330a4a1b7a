package server

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// handleShoutout renders the shoutout sentence as plain text. It always
// answers 200: validation failures, unknown users, and upstream outages all
// come back as human-readable sentences from the service.
func (s *Server) handleShoutout(c echo.Context) error {
	username := c.Param("username")
	message := s.shoutouts.ResolveShoutout(c.Request().Context(), username)
	return c.String(http.StatusOK, message)
}

// handleDebug exposes the raw upstream resources and the resolver's verdict.
// Unlike the shoutout route, errors surface here with real HTTP statuses.
func (s *Server) handleDebug(c echo.Context) error {
	username := c.Param("username")

	diag, err := s.shoutouts.Debug(c.Request().Context(), username)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, diag)
}
