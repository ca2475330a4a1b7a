package twitch

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/pscheid92/shoutbot/internal/domain"
	"github.com/pscheid92/shoutbot/internal/metrics"
)

// tokenSource provides a valid app access token for API calls.
type tokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client performs authenticated reads against the Twitch Helix API.
//
// Fail-soft contract: transport failures, non-200 responses, and parse
// failures are logged and converted to nil/empty results so the resolution
// pipeline degrades instead of aborting. The returned error is non-nil only
// when no bearer token could be obtained, which lets callers tell "upstream
// dark" apart from "user does not exist".
type Client struct {
	clientID       string
	tokens         tokenSource
	httpClient     *http.Client
	baseURL        string
	breaker        circuitbreaker.CircuitBreaker[[]byte]
	broadcastLimit int
}

// NewClient creates a Helix client. baseURL is injectable for tests.
func NewClient(clientID string, tokens tokenSource, baseURL string, timeout time.Duration, broadcastLimit int) *Client {
	return &Client{
		clientID:       clientID,
		tokens:         tokens,
		httpClient:     &http.Client{Timeout: timeout},
		baseURL:        baseURL,
		breaker:        newAPIBreaker(),
		broadcastLimit: broadcastLimit,
	}
}

// GetUserByLogin looks up a user by login name. Returns nil if the user does
// not exist or the call failed soft.
func (c *Client) GetUserByLogin(ctx context.Context, login string) (*domain.UserProfile, error) {
	body, err := c.get(ctx, "users", url.Values{"login": {login}})
	if err != nil {
		return nil, err
	}
	users := decodeEnvelope[domain.UserProfile]("users", body)
	if len(users) == 0 {
		return nil, nil
	}
	return &users[0], nil
}

// GetStream returns the user's live broadcast, or nil if they are offline.
func (c *Client) GetStream(ctx context.Context, userID string) (*domain.StreamSnapshot, error) {
	body, err := c.get(ctx, "streams", url.Values{"user_id": {userID}})
	if err != nil {
		return nil, err
	}
	streams := decodeEnvelope[domain.StreamSnapshot]("streams", body)
	if len(streams) == 0 {
		return nil, nil
	}
	return &streams[0], nil
}

// GetChannel returns the channel's persisted metadata (last known category),
// or nil if unavailable.
func (c *Client) GetChannel(ctx context.Context, broadcasterID string) (*domain.ChannelInfo, error) {
	body, err := c.get(ctx, "channels", url.Values{"broadcaster_id": {broadcasterID}})
	if err != nil {
		return nil, err
	}
	channels := decodeEnvelope[domain.ChannelInfo]("channels", body)
	if len(channels) == 0 {
		return nil, nil
	}
	return &channels[0], nil
}

// GetRecentBroadcasts returns the newest archived broadcasts for a user,
// newest-first, or an empty slice.
func (c *Client) GetRecentBroadcasts(ctx context.Context, userID string) ([]domain.BroadcastRecord, error) {
	query := url.Values{
		"user_id": {userID},
		"type":    {"archive"},
		"sort":    {"time"},
		"first":   {fmt.Sprintf("%d", c.broadcastLimit)},
	}
	body, err := c.get(ctx, "videos", query)
	if err != nil {
		return nil, err
	}
	return decodeEnvelope[domain.BroadcastRecord]("videos", body), nil
}

// get issues an authenticated GET for a resource. A nil body with nil error
// means the call failed soft. A non-nil error means no token was available.
func (c *Client) get(ctx context.Context, resource string, query url.Values) ([]byte, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	body, err := failsafe.Get(func() ([]byte, error) {
		return c.doRequest(ctx, resource, query, token)
	}, c.breaker)
	metrics.TwitchAPIRequestDuration.WithLabelValues(resource).Observe(time.Since(start).Seconds())

	if err != nil {
		slog.Warn("Twitch API call failed", "resource", resource, "error", err)
		metrics.TwitchAPIRequestsTotal.WithLabelValues(resource, "error").Inc()
		return nil, nil
	}
	return body, nil
}

func (c *Client) doRequest(ctx context.Context, resource string, query url.Values, token string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/"+resource, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s request: %w", resource, err)
	}
	req.URL.RawQuery = query.Encode()
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Client-Id", c.clientID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute %s request: %w", resource, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%s endpoint returned status %d", resource, resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s response: %w", resource, err)
	}
	return body, nil
}

// decodeEnvelope unwraps the Helix {data: [...]} envelope. Parse failures
// follow the fail-soft contract and yield an empty result.
func decodeEnvelope[T any](resource string, body []byte) []T {
	if body == nil {
		return nil
	}

	var envelope struct {
		Data []T `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		slog.Warn("Failed to decode Twitch API response", "resource", resource, "error", err)
		metrics.TwitchAPIRequestsTotal.WithLabelValues(resource, "error").Inc()
		return nil
	}

	if len(envelope.Data) == 0 {
		metrics.TwitchAPIRequestsTotal.WithLabelValues(resource, "empty").Inc()
		return nil
	}

	metrics.TwitchAPIRequestsTotal.WithLabelValues(resource, "ok").Inc()
	return envelope.Data
}
