package server

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/pscheid92/shoutbot/internal/config"
	"github.com/pscheid92/shoutbot/internal/domain"
	apperrors "github.com/pscheid92/shoutbot/internal/errors"
	"github.com/pscheid92/shoutbot/internal/shoutout"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockShoutoutService provides canned answers for handler tests.
type mockShoutoutService struct {
	message  string
	diag     *shoutout.Diagnostics
	debugErr error
}

func (m *mockShoutoutService) ResolveShoutout(ctx context.Context, username string) string {
	return m.message
}

func (m *mockShoutoutService) Debug(ctx context.Context, username string) (*shoutout.Diagnostics, error) {
	return m.diag, m.debugErr
}

func newTestServer(svc shoutoutService, cfg *config.Config) *Server {
	if cfg == nil {
		cfg = &config.Config{
			Port:               "8080",
			TwitchClientID:     "test_client",
			TwitchClientSecret: "test_secret",
			RateLimitPerSecond: 100,
			RateLimitBurst:     100,
		}
	}
	return NewServer(cfg, svc)
}

func TestHandleShoutout_AlwaysPlainText200(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/shoutout/shroud", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("shroud")

	srv := newTestServer(&mockShoutoutService{message: "Go check out shroud over at https://twitch.tv/shroud!"}, nil)
	err := srv.handleShoutout(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "https://twitch.tv/shroud")
}

func TestHandleDebug_Success(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/debug/shroud", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetParamNames("username")
	c.SetParamValues("shroud")

	diag := &shoutout.Diagnostics{
		User:       &domain.UserProfile{ID: "123", Login: "shroud"},
		Resolution: domain.Resolution{Category: domain.Specific("Valorant"), Live: true},
		Message:    "msg",
	}
	srv := newTestServer(&mockShoutoutService{diag: diag}, nil)
	err := srv.handleDebug(c)

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)

	var got shoutout.Diagnostics
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "shroud", got.User.Login)
	assert.True(t, got.Resolution.Live)
}

func TestHandleDebug_ErrorMappedByMiddleware(t *testing.T) {
	srv := newTestServer(&mockShoutoutService{
		debugErr: apperrors.NotFoundError("user not found on Twitch"),
	}, nil)

	req := httptest.NewRequest(http.MethodGet, "/debug/nosuchuser1", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "user not found on Twitch")
}

func TestHandleLiveness(t *testing.T) {
	srv := newTestServer(&mockShoutoutService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/live", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestHandleReadiness_CredentialsConfigured(t *testing.T) {
	srv := newTestServer(&mockShoutoutService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ready"}`, rec.Body.String())
}

func TestHandleReadiness_MissingCredentials(t *testing.T) {
	cfg := &config.Config{
		Port:               "8080",
		RateLimitPerSecond: 100,
		RateLimitBurst:     100,
	}
	srv := newTestServer(&mockShoutoutService{}, cfg)

	req := httptest.NewRequest(http.MethodGet, "/health/ready", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Contains(t, rec.Body.String(), "twitch_credentials")
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(&mockShoutoutService{}, nil)

	req := httptest.NewRequest(http.MethodGet, "/version", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "go_version")
}

func TestShoutoutRoute_EndToEndThroughRouter(t *testing.T) {
	srv := newTestServer(&mockShoutoutService{message: "hello from the router"}, nil)

	req := httptest.NewRequest(http.MethodGet, "/shoutout/shroud", nil)
	rec := httptest.NewRecorder()
	srv.echo.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "hello from the router", rec.Body.String())
}
