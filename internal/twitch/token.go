package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/jonboulle/clockwork"
	apperrors "github.com/pscheid92/shoutbot/internal/errors"
	"github.com/pscheid92/shoutbot/internal/metrics"
	"golang.org/x/sync/singleflight"
)

// expiryMargin is subtracted from the server-reported lifetime so a token is
// refreshed strictly before Twitch stops accepting it.
const expiryMargin = 60 * time.Second

// AppTokenSource caches a single app access token obtained via the client
// credentials grant. Concurrent callers observing an expired or absent token
// collapse into one refresh; everyone waits for its result.
type AppTokenSource struct {
	clientID     string
	clientSecret string
	tokenURL     string
	httpClient   *http.Client
	clock        clockwork.Clock
	group        singleflight.Group

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewAppTokenSource creates a token source for the given client credentials.
// Empty credentials are allowed here; Token reports a configuration error
// when a token is actually needed.
func NewAppTokenSource(clientID, clientSecret, tokenURL string, timeout time.Duration, clock clockwork.Clock) *AppTokenSource {
	return &AppTokenSource{
		clientID:     clientID,
		clientSecret: clientSecret,
		tokenURL:     tokenURL,
		httpClient:   &http.Client{Timeout: timeout},
		clock:        clock,
	}
}

// Token returns a valid app access token, refreshing it if the cached one is
// absent or within the expiry margin. A failed refresh leaves the prior cache
// state untouched and propagates the error to the caller.
func (ts *AppTokenSource) Token(ctx context.Context) (string, error) {
	if token, ok := ts.cached(); ok {
		metrics.TokenCacheHitsTotal.Inc()
		return token, nil
	}

	result, err, _ := ts.group.Do("app_token", func() (any, error) {
		// A concurrent caller may have refreshed while we waited for the flight.
		if token, ok := ts.cached(); ok {
			return token, nil
		}
		return ts.refresh(ctx)
	})
	if err != nil {
		return "", err
	}
	return result.(string), nil
}

func (ts *AppTokenSource) cached() (string, bool) {
	ts.mu.Lock()
	defer ts.mu.Unlock()
	if ts.token != "" && ts.clock.Now().Before(ts.expiresAt) {
		return ts.token, true
	}
	return "", false
}

func (ts *AppTokenSource) refresh(ctx context.Context) (string, error) {
	if ts.clientID == "" || ts.clientSecret == "" {
		return "", apperrors.ConfigurationError("TWITCH_CLIENT_ID and TWITCH_CLIENT_SECRET must be set")
	}

	data := url.Values{}
	data.Set("client_id", ts.clientID)
	data.Set("client_secret", ts.clientSecret)
	data.Set("grant_type", "client_credentials")

	req, err := http.NewRequestWithContext(ctx, "POST", ts.tokenURL, strings.NewReader(data.Encode()))
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return "", apperrors.UpstreamError("failed to create token request", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := ts.httpClient.Do(req)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return "", apperrors.UpstreamError("token request failed", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return "", apperrors.UpstreamError("failed to read token response", err)
	}

	if resp.StatusCode != http.StatusOK {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return "", apperrors.UpstreamError(
			fmt.Sprintf("token endpoint returned status %d", resp.StatusCode),
			fmt.Errorf("%s", string(body)),
		)
	}

	var result struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int    `json:"expires_in"`
	}
	if err := json.Unmarshal(body, &result); err != nil {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return "", apperrors.UpstreamError("failed to decode token response", err)
	}
	if result.AccessToken == "" {
		metrics.TokenRefreshesTotal.WithLabelValues("error").Inc()
		return "", apperrors.UpstreamError("token response contained no access token", nil)
	}

	ts.mu.Lock()
	ts.token = result.AccessToken
	ts.expiresAt = ts.clock.Now().Add(time.Duration(result.ExpiresIn)*time.Second - expiryMargin)
	ts.mu.Unlock()

	metrics.TokenRefreshesTotal.WithLabelValues("success").Inc()
	return result.AccessToken, nil
}
